package appointment

import (
	"context"
	"fmt"
	"time"

	appointmentRepo "citaflow/database/repository/appointment"
	staffRepo "citaflow/database/repository/staff"
	planRepo "citaflow/database/repository/weeklyplan"
	"citaflow/models"
	"citaflow/services/achievement"
	"citaflow/services/availability"
	"citaflow/services/notification"
	"citaflow/services/provisioning"
	"citaflow/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// sideEffectTimeout bounds the detached post-commit work (notifications,
// achievements, plan sync) kicked off after a successful write.
const sideEffectTimeout = 15 * time.Second

// DefaultAppointmentService is the production lifecycle engine.
type DefaultAppointmentService struct {
	Repo         appointmentRepo.AppointmentRepository
	Staff        staffRepo.StaffRepository
	Availability availability.AvailabilityService
	Provisioner  provisioning.ProvisioningService
	Plans        planRepo.WeeklyPlanRepository
	Achievements achievement.AchievementService
	Notifier     notification.NotificationService
	Locker       StaffLocker
	// Location is the reporting timezone plan sync derives week cells in.
	Location *time.Location
	Now      func() time.Time
}

func (s *DefaultAppointmentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultAppointmentService) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.UTC
}

// resolveParticipants loads the agent and optional supervisor, requiring
// both to be bookable (known, active, linked to an external identity).
func (s *DefaultAppointmentService) resolveParticipants(ctx context.Context, req CreateRequest) ([]models.StaffMember, error) {
	ids := []int{req.AgentID}
	if req.SupervisorID != nil && *req.SupervisorID != req.AgentID {
		ids = append(ids, *req.SupervisorID)
	}

	members, err := s.Staff.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("loading participants: %w", err)
	}
	byID := make(map[int]models.StaffMember, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	resolved := make([]models.StaffMember, 0, len(ids))
	for _, id := range ids {
		member, ok := byID[id]
		if !ok {
			return nil, &NotFoundError{Resource: "staff", ID: fmt.Sprintf("%d", id)}
		}
		if !member.Active {
			return nil, &ValidationError{Field: "staff", Message: fmt.Sprintf("staff %d is inactive", id)}
		}
		if !member.HasAuth() {
			return nil, &ValidationError{Field: "staff", Message: fmt.Sprintf("staff %d has no linked account", id)}
		}
		resolved = append(resolved, member)
	}
	return resolved, nil
}

func (s *DefaultAppointmentService) Create(ctx context.Context, req CreateRequest) (*models.Appointment, error) {
	if !req.End.After(req.Start) {
		return nil, &ValidationError{Field: "end", Message: "end must be after start"}
	}

	participants, err := s.resolveParticipants(ctx, req)
	if err != nil {
		return nil, err
	}
	staffIDs := make([]int, len(participants))
	for i, p := range participants {
		staffIDs[i] = p.ID
	}

	// Serialize per involved staff member across the check-then-act window.
	// Without this, two concurrent bookings for the same slot both pass the
	// overlap check before either persists.
	release, err := s.Locker.AcquireStaff(ctx, staffIDs)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &BookingBusyError{Err: err}
	}
	defer release()

	view, err := s.Availability.GetBusyIntervals(ctx, staffIDs, &req.Start, &req.End)
	if err != nil {
		return nil, err
	}
	for _, interval := range view.Busy {
		if interval.Overlaps(req.Start, req.End) {
			return nil, &ConflictError{
				StaffID: interval.StaffID,
				Source:  interval.Source,
				Start:   interval.Start,
				End:     interval.End,
			}
		}
	}

	agent := participants[0]
	id := uuid.NewString()
	title := "Appointment"
	if req.ProspectName != nil && *req.ProspectName != "" {
		title = fmt.Sprintf("Appointment with %s", *req.ProspectName)
	}
	provisioned, err := s.Provisioner.Provision(ctx, provisioning.ProvisionRequest{
		AgentID:      agent.ID,
		AgentAuthID:  *agent.AuthID,
		Provider:     req.Provider,
		ExplicitURL:  req.MeetingURL,
		GenerateLink: req.GenerateLink,
		Start:        req.Start,
		End:          req.End,
		Title:        title,
		RequestID:    id,
	})
	if err != nil {
		return nil, err
	}

	now := s.now()
	appt := &models.Appointment{
		ID:              id,
		ProspectID:      req.ProspectID,
		ProspectName:    req.ProspectName,
		AgentID:         agent.ID,
		AgentAuthID:     *agent.AuthID,
		Start:           req.Start,
		End:             req.End,
		State:           models.AppointmentConfirmed,
		MeetingProvider: models.NormalizeProvider(req.Provider),
		ExternalEventID: provisioned.ExternalEventID,
		Notes:           req.Notes,
		RequestedBy:     req.RequestedBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if provisioned.URL != nil {
		appt.MeetingURL = *provisioned.URL
	}
	if len(participants) > 1 {
		supervisor := participants[1]
		appt.SupervisorID = &supervisor.ID
		appt.SupervisorAuthID = supervisor.AuthID
	}

	// Commit point. Everything before this is speculative; everything after
	// is best-effort.
	if err := s.Repo.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("persisting appointment: %w", err)
	}

	go s.afterConfirm(appt, participants)

	return appt, nil
}

// afterConfirm runs the fire-and-forget side of a booking on a detached
// context, so a client disconnect never truncates it and a failure never
// reaches the caller.
func (s *DefaultAppointmentService) afterConfirm(appt *models.Appointment, participants []models.StaffMember) {
	ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
	defer cancel()

	s.syncPlans(ctx, appt, participants)
	s.Notifier.AppointmentConfirmed(ctx, appt, participants)
	s.Achievements.EvaluateAfterConfirmation(ctx, participants[0])
}

// syncPlans mirrors the booking into each participant's weekly plan as an
// auto block so the intent grid shows the commitment.
func (s *DefaultAppointmentService) syncPlans(ctx context.Context, appt *models.Appointment, participants []models.StaffMember) {
	loc := s.location()
	start := appt.Start.In(loc)
	week := utils.WeekOf(start, loc)
	// Monday-based offset from the weekday, not from elapsed hours: a DST
	// transition earlier in the week must not shift the block a day.
	day := (int(start.Weekday()) + 6) % 7

	block := models.PlanBlock{
		Day:           day,
		Hour:          fmt.Sprintf("%d", start.Hour()),
		Activity:      models.ActivityAppointments,
		Origin:        models.OriginAuto,
		ProspectID:    appt.ProspectID,
		AppointmentID: &appt.ID,
		Notes:         appt.ProspectName,
	}
	for _, p := range participants {
		if err := s.Plans.UpsertAutoBlock(ctx, p.ID, week, block); err != nil {
			utils.GetLogger().Warn("weekly plan sync failed",
				zap.Int("staffId", p.ID), zap.String("appointmentId", appt.ID), zap.Error(err))
		}
	}
}

func (s *DefaultAppointmentService) Cancel(ctx context.Context, req CancelRequest) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		return nil, fmt.Errorf("loading appointment: %w", err)
	}
	if appt == nil {
		return nil, &NotFoundError{Resource: "appointment", ID: req.AppointmentID}
	}
	if appt.State == models.AppointmentCancelled {
		// Repeated cancels are safe retries, not errors.
		return appt, nil
	}

	changed, err := s.Repo.SetCancelled(ctx, appt.ID, req.Reason)
	if err != nil {
		return nil, fmt.Errorf("cancelling appointment: %w", err)
	}
	appt.State = models.AppointmentCancelled
	appt.CancelReason = req.Reason
	appt.UpdatedAt = s.now()
	if !changed {
		// A concurrent cancel won the transition; nothing left to do.
		return appt, nil
	}

	go s.afterCancel(appt)

	return appt, nil
}

// afterCancel tears down the remote meeting, removes mirrored plan blocks
// and notifies, all best-effort.
func (s *DefaultAppointmentService) afterCancel(appt *models.Appointment) {
	ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
	defer cancel()
	logger := utils.GetLogger()

	if err := s.Provisioner.CancelRemote(ctx, appt); err != nil {
		logger.Warn("remote meeting cleanup failed",
			zap.String("appointmentId", appt.ID), zap.Error(err))
	}

	staffIDs := []int{appt.AgentID}
	if appt.SupervisorID != nil {
		staffIDs = append(staffIDs, *appt.SupervisorID)
	}
	for _, id := range staffIDs {
		if err := s.Plans.RemoveAutoBlock(ctx, id, appt.ID); err != nil {
			logger.Warn("removing plan block failed",
				zap.Int("staffId", id), zap.String("appointmentId", appt.ID), zap.Error(err))
		}
	}

	members, err := s.Staff.GetByIDs(ctx, staffIDs)
	if err != nil {
		logger.Warn("loading participants for cancellation notice failed",
			zap.String("appointmentId", appt.ID), zap.Error(err))
		return
	}
	s.Notifier.AppointmentCancelled(ctx, appt, members)
}

func (s *DefaultAppointmentService) List(ctx context.Context, filter appointmentRepo.ListFilter) ([]models.Appointment, error) {
	return s.Repo.List(ctx, filter)
}
