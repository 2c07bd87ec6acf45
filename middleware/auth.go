package middleware

import (
	"net/http"
	"strconv"
	"strings"

	staffRepo "citaflow/database/repository/staff"
	"citaflow/models"
	"citaflow/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the session middleware.
const (
	ContextStaffKey   = "staffMember"
	ContextStaffIDKey = "staffID"
)

// SessionAuthMiddleware validates the bearer token and loads the staff
// member behind it into the request context. Inactive staff are rejected
// even with a valid token.
func SessionAuthMiddleware(staff staffRepo.StaffRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		staffID, err := strconv.Atoi(claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
			return
		}

		member, err := staff.GetByID(c.Request.Context(), staffID)
		if err != nil || member == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown staff member"})
			return
		}
		if !member.Active {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is inactive"})
			return
		}

		c.Set(ContextStaffKey, member)
		c.Set(ContextStaffIDKey, member.ID)
		c.Next()
	}
}

// RequireAgendaAccess gates agenda surfaces to admins, superusers and staff
// flagged as developers.
func RequireAgendaAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		member := CurrentStaff(c)
		if member == nil || !member.CanManageAgenda() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Agenda access denied"})
			return
		}
		c.Next()
	}
}

// CurrentStaff returns the authenticated staff member, nil when the session
// middleware did not run.
func CurrentStaff(c *gin.Context) *models.StaffMember {
	value, ok := c.Get(ContextStaffKey)
	if !ok {
		return nil
	}
	member, ok := value.(*models.StaffMember)
	if !ok {
		return nil
	}
	return member
}
