package ports

import (
	"bus-electrification-service/internal/domain"
	"context"
)

// Storage for planning sessions. Implementations must serialize Update calls
// for the same session id.
type SessionStore interface {
	Create(ctx context.Context, s *domain.PlanningSession) error
	// Return a copy of the session that the caller may read freely.
	Get(ctx context.Context, id string) (*domain.PlanningSession, error)
	// Run fn with exclusive access to the stored session. Changes made by fn
	// are discarded when it returns an error.
	Update(ctx context.Context, id string, fn func(s *domain.PlanningSession) error) error
	Delete(ctx context.Context, id string) error
}
