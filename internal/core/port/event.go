package port

import (
	"context"

	"github.com/rafaelleal24/stock/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type EventPort interface {
	Record(ctx context.Context, event domain.Event) error
}
