package models

import "time"

// Notification kinds emitted by the agenda.
const (
	NotificationAppointmentConfirmed = "appointment_confirmed"
	NotificationAppointmentCancelled = "appointment_cancelled"
	NotificationDailyAchievement     = "daily_achievement"
	NotificationWeeklyAchievement    = "weekly_achievement"
)

// Notification is one stored in-app notification row. Push delivery is
// best-effort on top of the stored row.
type Notification struct {
	ID        string         `json:"id" bson:"id"`
	StaffID   int            `json:"staffId" bson:"staff_id"`
	Type      string         `json:"type" bson:"type"`
	Title     string         `json:"title" bson:"title"`
	Body      string         `json:"body" bson:"body"`
	Data      map[string]any `json:"data,omitempty" bson:"data,omitempty"`
	Read      bool           `json:"read" bson:"read"`
	CreatedAt time.Time      `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updated_at"`
}

// AchievementMarker records that a gamified notification was already sent for
// one (agent, kind, period) so retries and recounts stay at-most-once. The
// collection carries a unique index over those three fields.
type AchievementMarker struct {
	AgentID   int       `json:"agentId" bson:"agent_id"`
	Kind      string    `json:"kind" bson:"kind"`
	Period    string    `json:"period" bson:"period"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// Achievement marker kinds.
const (
	AchievementDaily  = "daily_two"
	AchievementWeekly = "weekly_two"
)
