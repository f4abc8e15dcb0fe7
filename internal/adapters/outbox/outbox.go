package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rafaelleal24/stock/internal/core/domain"
	"github.com/rafaelleal24/stock/internal/core/port"
)

type Entry struct {
	ID         string
	EventName  string
	EntityName string
	EventData  []byte
	Attempts   int
}

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
type Repository interface {
	Insert(ctx context.Context, entry Entry) error
	FetchPending(ctx context.Context, limit int) ([]Entry, error)
	Delete(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, cause error) error
}

// Recorder stores domain events in the outbox. Called with a transaction
// context, the entry commits or rolls back together with the stock write.
type Recorder struct {
	outbox Repository
}

func NewRecorder(outbox Repository) port.EventPort {
	return &Recorder{outbox: outbox}
}

func (r *Recorder) Record(ctx context.Context, event domain.Event) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", event.GetName(), err)
	}

	return r.outbox.Insert(ctx, Entry{
		EventName:  event.GetName(),
		EntityName: event.GetEntityName(),
		EventData:  eventData,
	})
}
