package achievement

import (
	"context"
	"time"

	appointmentRepo "citaflow/database/repository/appointment"
	notificationRepo "citaflow/database/repository/notification"
	"citaflow/models"
	"citaflow/services/notification"
	"citaflow/utils"

	"go.uber.org/zap"
)

// dailyThreshold is how many confirmed starts a day needs to count.
const dailyThreshold = 2

// AchievementService evaluates gamified thresholds after a confirmation.
type AchievementService interface {
	// EvaluateAfterConfirmation checks the daily and weekly thresholds for
	// the agent. It never returns an error: failures are logged and dropped
	// so the booking path stays unaffected.
	EvaluateAfterConfirmation(ctx context.Context, agent models.StaffMember)
}

// DefaultAchievementService is the production implementation. Sends are
// gated on persisted markers, not on the counts themselves; counts stay at
// or above the threshold after the first send, markers do not re-insert.
type DefaultAchievementService struct {
	Appointments appointmentRepo.AppointmentRepository
	Markers      notificationRepo.AchievementMarkerRepository
	Notifier     notification.NotificationService
	// Location is the reporting timezone both thresholds are evaluated in.
	Location *time.Location
	Now      func() time.Time
}

func (s *DefaultAchievementService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultAchievementService) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.UTC
}

func (s *DefaultAchievementService) EvaluateAfterConfirmation(ctx context.Context, agent models.StaffMember) {
	if !agent.HasAuth() {
		return
	}
	logger := utils.GetLogger()

	if err := s.evaluateDaily(ctx, agent); err != nil {
		logger.Warn("daily achievement evaluation failed",
			zap.Int("agentId", agent.ID), zap.Error(err))
	}
	if err := s.evaluateWeekly(ctx, agent); err != nil {
		logger.Warn("weekly achievement evaluation failed",
			zap.Int("agentId", agent.ID), zap.Error(err))
	}
}

func (s *DefaultAchievementService) evaluateDaily(ctx context.Context, agent models.StaffMember) error {
	loc := s.location()
	now := s.now().In(loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	count, err := s.Appointments.CountConfirmedStarting(ctx, *agent.AuthID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return err
	}
	if count < dailyThreshold {
		return nil
	}

	period := dayStart.Format("2006-01-02")
	claimed, err := s.Markers.Claim(ctx, agent.ID, models.AchievementDaily, period)
	if err != nil {
		return err
	}
	if claimed {
		s.Notifier.Achievement(ctx, agent, models.AchievementDaily, period)
	}
	return nil
}

func (s *DefaultAchievementService) evaluateWeekly(ctx context.Context, agent models.StaffMember) error {
	loc := s.location()
	week := utils.WeekOf(s.now(), loc)
	monday := utils.MondayOf(week, loc)

	// Every one of the 7 days needs the daily threshold; bail on the first
	// day that falls short.
	for day := 0; day < 7; day++ {
		dayStart := monday.AddDate(0, 0, day)
		count, err := s.Appointments.CountConfirmedStarting(ctx, *agent.AuthID, dayStart, dayStart.AddDate(0, 0, 1))
		if err != nil {
			return err
		}
		if count < dailyThreshold {
			return nil
		}
	}

	period := week.String()
	claimed, err := s.Markers.Claim(ctx, agent.ID, models.AchievementWeekly, period)
	if err != nil {
		return err
	}
	if claimed {
		s.Notifier.Achievement(ctx, agent, models.AchievementWeekly, period)
	}
	return nil
}
