package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gatherhub/server/internal/domain/events"
	"github.com/gatherhub/server/internal/domain/ids"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ events.Repository = (*EventRepository)(nil)

type EventRepository struct {
	pool *pgxpool.Pool
}

const eventColumns = `ulid, title, description, event_date, location, image_url, tags, attendees, created_at, updated_at`

func (r *EventRepository) Insert(ctx context.Context, params events.InsertParams) (*events.Event, error) {
	ulid, err := ids.NewULID()
	if err != nil {
		return nil, fmt.Errorf("mint event id: %w", err)
	}

	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	row := r.pool.QueryRow(ctx, `
INSERT INTO events (ulid, title, description, event_date, location, image_url, tags, attendees)
VALUES ($1, $2, $3, $4, $5, $6, $7, '{}')
RETURNING `+eventColumns,
		ulid,
		params.Title,
		params.Description,
		params.Date,
		params.Location,
		params.ImageURL,
		tags,
	)

	event, err := scanEvent(row)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return event, nil
}

func (r *EventRepository) List(ctx context.Context, filters events.ListFilters) ([]events.Event, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+eventColumns+`
  FROM events
 WHERE ($1 = '' OR title ILIKE '%' || $2 || '%'
             OR description ILIKE '%' || $2 || '%'
             OR location ILIKE '%' || $2 || '%')
   AND ($3 = '' OR $3 = ANY(tags))
 ORDER BY created_at DESC
`, filters.Search, escapeILIKEPattern(filters.Search), filters.Tag)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	items := make([]events.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		items = append(items, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return items, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*events.Event, error) {
	ulid, err := normalizeULID(id)
	if err != nil {
		return nil, events.ErrNotFound
	}

	row := r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE ulid = $1`, ulid)
	event, err := scanEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, events.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (r *EventRepository) UpdateAttendees(ctx context.Context, id string, attendees []string) (*events.Event, error) {
	ulid, err := normalizeULID(id)
	if err != nil {
		return nil, events.ErrNotFound
	}
	if attendees == nil {
		attendees = []string{}
	}

	row := r.pool.QueryRow(ctx, `
UPDATE events
   SET attendees = $2, updated_at = now()
 WHERE ulid = $1
RETURNING `+eventColumns,
		ulid, attendees)

	event, err := scanEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, events.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update attendees: %w", err)
	}
	return event, nil
}

func (r *EventRepository) DeleteByID(ctx context.Context, id string) (*events.Event, error) {
	ulid, err := normalizeULID(id)
	if err != nil {
		return nil, events.ErrNotFound
	}

	row := r.pool.QueryRow(ctx, `DELETE FROM events WHERE ulid = $1 RETURNING `+eventColumns, ulid)
	event, err := scanEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, events.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete event: %w", err)
	}
	return event, nil
}

// normalizeULID uppercases a candidate id. A syntactically invalid id cannot
// match any stored record, so callers translate the error to not-found.
func normalizeULID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if err := ids.ValidateULID(id); err != nil {
		return "", err
	}
	return strings.ToUpper(id), nil
}

func scanEvent(row pgx.Row) (*events.Event, error) {
	var (
		event     events.Event
		eventDate pgtype.Timestamptz
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&eventDate,
		&event.Location,
		&event.ImageURL,
		&event.Tags,
		&event.Attendees,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	if eventDate.Valid {
		event.Date = eventDate.Time
	}
	if createdAt.Valid {
		event.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		event.UpdatedAt = updatedAt.Time
	}
	if event.Tags == nil {
		event.Tags = []string{}
	}
	if event.Attendees == nil {
		event.Attendees = []string{}
	}
	return &event, nil
}
