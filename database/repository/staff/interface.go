// File: database/repository/staff/interface.go
package staffRepo

import (
	"context"

	"citaflow/models"
)

// StaffRepository provides read access to the staff directory.
type StaffRepository interface {
	// GetByID fetches one staff member by internal numeric id.
	GetByID(ctx context.Context, id int) (*models.StaffMember, error)
	// GetByIDs fetches the staff members matching the given internal ids.
	// Unknown ids are simply absent from the result, never an error.
	GetByIDs(ctx context.Context, ids []int) ([]models.StaffMember, error)
	// List returns directory entries, optionally restricted to
	// developer-eligible and/or active staff.
	List(ctx context.Context, onlyDevelopers, onlyActive bool) ([]models.StaffMember, error)
}
