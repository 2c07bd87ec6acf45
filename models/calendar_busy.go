package models

import "time"

// CalendarBusy is one pre-synced external calendar occupancy row, keyed by
// the owner's auth id. Rows are written by the external sync job; the agenda
// only reads them.
type CalendarBusy struct {
	AuthID   string    `json:"authId" bson:"auth_id"`
	Start    time.Time `json:"start" bson:"start"`
	End      time.Time `json:"end" bson:"end"`
	Provider string    `json:"provider,omitempty" bson:"provider,omitempty"`
	Summary  *string   `json:"summary,omitempty" bson:"summary,omitempty"`
	SyncedAt time.Time `json:"syncedAt" bson:"synced_at"`
}
