package domain

import (
	"time"

	"github.com/google/uuid"
)

// SchedulePoll is a group-scheduling request: respondents fill in tri-state
// availability over every slot between StartDate and EndDate (inclusive).
type SchedulePoll struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	OwnerName string    `json:"owner_name"`
	OwnerID   uuid.UUID `json:"owner_id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Deadline  time.Time `json:"deadline"`
	CreatedAt time.Time `json:"created_at"`
}

// Coordinates enumerates the poll's canonical slot grid over the default
// two-hour day partition.
func (p *SchedulePoll) Coordinates() ([]SlotCoordinate, error) {
	return GenerateCoordinates(p.StartDate, p.EndDate, DefaultDayPartition())
}

// Expired reports whether the retention grace period has lapsed: polls are
// purged once now is past end date + 1 month.
func (p *SchedulePoll) Expired(now time.Time) bool {
	end, err := time.ParseInLocation(DateLayout, p.EndDate, time.Local)
	if err != nil {
		return false
	}
	return now.After(end.AddDate(0, 1, 0))
}
