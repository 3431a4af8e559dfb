package outbox

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/rosterdesk/go/internal/db"
	"github.com/mcdev12/rosterdesk/go/internal/sqlutil"
)

type inserter interface {
	InsertOutboxEvent(ctx context.Context, arg db.InsertOutboxEventParams) error
}

// Insert writes ev through q. Callers pass queries bound to their own
// transaction so the event commits or rolls back with the mutation.
func Insert(ctx context.Context, q inserter, ev Event) error {
	err := q.InsertOutboxEvent(ctx, db.InsertOutboxEventParams{
		ID:          ev.ID,
		AggregateID: ev.TeamID,
		EventType:   string(ev.Type),
		Payload:     ev.Payload,
	})
	if err != nil {
		return fmt.Errorf("failed to insert %s outbox event: %w", ev.Type, err)
	}
	return nil
}

// Repository gives the relay locked access to unsent rows
type Repository struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) *Repository {
	return &Repository{db: database}
}

// ClaimBatch locks up to limit unsent rows, hands them to fn and marks the ids
// fn returns as sent, all in one transaction. Rows locked by another relay are skipped.
func (r *Repository) ClaimBatch(ctx context.Context, limit int32, fn func([]Event) []uuid.UUID) (int, error) {
	var claimed int
	err := sqlutil.Run(ctx, r.db, db.New(r.db).WithTx, func(q *db.Queries) error {
		rows, err := q.FetchUnsentOutbox(ctx, limit)
		if err != nil {
			return fmt.Errorf("failed to fetch unsent outbox events: %w", err)
		}
		claimed = len(rows)
		if len(rows) == 0 {
			return nil
		}

		events := make([]Event, len(rows))
		for i, row := range rows {
			events[i] = Event{
				ID:        row.ID,
				TeamID:    row.AggregateID,
				Type:      EventType(row.EventType),
				Payload:   row.Payload,
				CreatedAt: row.CreatedAt,
			}
		}

		sent := fn(events)
		if len(sent) == 0 {
			return nil
		}
		if err := q.MarkOutboxSent(ctx, sent); err != nil {
			return fmt.Errorf("failed to mark outbox events as sent: %w", err)
		}
		return nil
	})
	return claimed, err
}
