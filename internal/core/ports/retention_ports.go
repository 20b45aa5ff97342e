package ports

import (
	"context"
	"time"
)

// RetentionService is the background sweep that purges polls past their
// grace period along with every stored response.
type RetentionService interface {
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}
