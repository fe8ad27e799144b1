package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotOwned signals that an entity either does not exist or belongs to
// another user. The two cases are deliberately indistinguishable so that
// responses never confirm the existence of other tenants' data.
var ErrNotOwned = errors.New("not found or not owned by caller")

// findOwned runs an owner-scoped lookup and maps its not-found sentinel to
// ErrNotOwned. Every mutating operation authorizes through this helper
// before acting.
func findOwned[T any](
	ctx context.Context,
	lookup func(ctx context.Context, id, userID uuid.UUID) (*T, error),
	id, userID uuid.UUID,
	notFound error,
) (*T, error) {
	entity, err := lookup(ctx, id, userID)
	if err != nil {
		if errors.Is(err, notFound) {
			return nil, ErrNotOwned
		}
		return nil, fmt.Errorf("failed to authorize access: %w", err)
	}
	return entity, nil
}
