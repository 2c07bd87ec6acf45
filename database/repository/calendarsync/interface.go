// File: database/repository/calendarsync/interface.go
package calendarRepo

import (
	"context"
	"time"

	"citaflow/models"
)

// CalendarBusyRepository reads pre-synced external calendar occupancy rows.
//
// The window filter is deliberately loose: rows satisfying
// end >= from AND start <= to are returned, and the store may return rows
// with even looser bounds. Callers needing exact trimming re-filter close to
// where exactness matters (the booking overlap check).
type CalendarBusyRepository interface {
	FindBusy(ctx context.Context, authIDs []string, from, to *time.Time) ([]models.CalendarBusy, error)
}
