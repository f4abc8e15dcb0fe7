package document

import (
	"time"

	"github.com/rafaelleal24/stock/internal/adapters/outbox"
)

// OutboxDocument is a stock event waiting to be relayed to the broker.
type OutboxDocument struct {
	ID         string    `bson:"_id"`
	EventName  string    `bson:"event_name"`
	EntityName string    `bson:"entity_name"`
	EventData  string    `bson:"event_data"`
	Attempts   int       `bson:"attempts"`
	LastError  string    `bson:"last_error,omitempty"`
	CreatedAt  time.Time `bson:"created_at"`
}

func (d OutboxDocument) GetID() string {
	return d.ID
}

func (d OutboxDocument) ToEntry() outbox.Entry {
	return outbox.Entry{
		ID:         d.ID,
		EventName:  d.EventName,
		EntityName: d.EntityName,
		EventData:  []byte(d.EventData),
		Attempts:   d.Attempts,
	}
}

func ToOutboxDocument(id string, entry outbox.Entry, createdAt time.Time) OutboxDocument {
	return OutboxDocument{
		ID:         id,
		EventName:  entry.EventName,
		EntityName: entry.EntityName,
		EventData:  string(entry.EventData),
		CreatedAt:  createdAt,
	}
}
