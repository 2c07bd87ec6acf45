package notification

import (
	"context"
	"fmt"
	"time"

	"citaflow/config"
	notificationRepo "citaflow/database/repository/notification"
	"citaflow/models"
	"citaflow/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo   notificationRepo.NotificationRepository
	Mailer Mailer
	Now    func() time.Time
}

func NewDefaultNotificationService(repo notificationRepo.NotificationRepository, mailer Mailer) *DefaultNotificationService {
	return &DefaultNotificationService{Repo: repo, Mailer: mailer}
}

func (s *DefaultNotificationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// deliver stores the row, then pushes and mails best-effort. The stored row
// is the only part whose failure gets reported.
func (s *DefaultNotificationService) deliver(ctx context.Context, member models.StaffMember, kind, title, body string, data map[string]any, email bool) {
	logger := utils.GetLogger()
	now := s.now()

	row := &models.Notification{
		ID:        uuid.NewString(),
		StaffID:   member.ID,
		Type:      kind,
		Title:     title,
		Body:      body,
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Insert(ctx, row); err != nil {
		logger.Error("storing notification failed",
			zap.Int("staffId", member.ID), zap.String("type", kind), zap.Error(err))
		return
	}

	s.push(ctx, member, title, body, kind)

	if email && s.Mailer != nil && member.Email != "" {
		if err := s.Mailer.Send(ctx, member.Email, title, body); err != nil {
			logger.Warn("notification email failed",
				zap.Int("staffId", member.ID), zap.Error(err))
		}
	}
}

func (s *DefaultNotificationService) push(ctx context.Context, member models.StaffMember, title, body, kind string) {
	if utils.FCMClient == nil || member.FCMToken == "" {
		return
	}
	msg := &messaging.Message{
		Token: member.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{"type": kind},
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		utils.GetLogger().Warn("push delivery failed",
			zap.Int("staffId", member.ID), zap.Error(err))
	}
}

func (s *DefaultNotificationService) AppointmentConfirmed(ctx context.Context, appt *models.Appointment, involved []models.StaffMember) {
	title := "Appointment confirmed"
	body := renderConfirmedBody(appt)
	data := map[string]any{"appointmentId": appt.ID}
	for _, member := range involved {
		s.deliver(ctx, member, models.NotificationAppointmentConfirmed, title, body, data, true)
	}
}

func (s *DefaultNotificationService) AppointmentCancelled(ctx context.Context, appt *models.Appointment, involved []models.StaffMember) {
	title := "Appointment cancelled"
	body := renderCancelledBody(appt)
	data := map[string]any{"appointmentId": appt.ID}
	for _, member := range involved {
		s.deliver(ctx, member, models.NotificationAppointmentCancelled, title, body, data, true)
	}
}

func (s *DefaultNotificationService) Achievement(ctx context.Context, agent models.StaffMember, kind, period string) {
	var notifType, title, body string
	switch kind {
	case models.AchievementDaily:
		notifType = models.NotificationDailyAchievement
		title = "Daily goal reached"
		body = fmt.Sprintf("You confirmed 2 appointments on %s. Keep it up!", period)
	case models.AchievementWeekly:
		notifType = models.NotificationWeeklyAchievement
		title = "Weekly goal reached"
		body = fmt.Sprintf("Every day of %s has 2 or more confirmed appointments. Outstanding week!", period)
	default:
		return
	}
	s.deliver(ctx, agent, notifType, title, body, map[string]any{"period": period}, false)
}

func (s *DefaultNotificationService) List(ctx context.Context, staffID int, unreadOnly bool, limit int64) ([]models.Notification, int64, error) {
	rows, err := s.Repo.List(ctx, staffID, unreadOnly, limit)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.Repo.CountUnread(ctx, staffID)
	if err != nil {
		return nil, 0, err
	}
	return rows, unread, nil
}

func (s *DefaultNotificationService) MarkAllRead(ctx context.Context, staffID int) (int64, error) {
	return s.Repo.MarkAllRead(ctx, staffID)
}

func renderConfirmedBody(appt *models.Appointment) string {
	loc := config.AgendaLocation()
	when := fmt.Sprintf("%s to %s",
		appt.Start.In(loc).Format("Mon 02 Jan 15:04"),
		appt.End.In(loc).Format("15:04"))
	body := fmt.Sprintf("Appointment on %s", when)
	if appt.ProspectName != nil && *appt.ProspectName != "" {
		body = fmt.Sprintf("Appointment with %s on %s", *appt.ProspectName, when)
	}
	if appt.MeetingURL != "" {
		body += fmt.Sprintf(". Meeting link: %s", appt.MeetingURL)
	}
	return body
}

func renderCancelledBody(appt *models.Appointment) string {
	loc := config.AgendaLocation()
	body := fmt.Sprintf("Appointment on %s was cancelled",
		appt.Start.In(loc).Format("Mon 02 Jan 15:04"))
	if appt.CancelReason != nil && *appt.CancelReason != "" {
		body += fmt.Sprintf(": %s", *appt.CancelReason)
	}
	return body
}
