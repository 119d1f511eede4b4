package postgres

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gatherhub/server/internal/domain/events"
	"github.com/gatherhub/server/internal/domain/ids"
	"github.com/stretchr/testify/require"
)

func TestEventRepositoryInsert(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgres(t, ctx)
	repo := &EventRepository{pool: pool}

	date := time.Date(2026, 7, 10, 19, 0, 0, 0, time.UTC)
	created, err := repo.Insert(ctx, events.InsertParams{
		Title:       "Jazz in the Park",
		Description: "Live jazz",
		Date:        date,
		Location:    "Centennial Park",
		Tags:        []string{"jazz", "summer"},
	})
	require.NoError(t, err)
	require.True(t, ids.IsULID(created.ID))
	require.Equal(t, "Jazz in the Park", created.Title)
	require.True(t, created.Date.UTC().Equal(date))
	require.Equal(t, []string{"jazz", "summer"}, created.Tags)
	require.Equal(t, []string{}, created.Attendees)
	require.False(t, created.CreatedAt.IsZero())
	require.False(t, created.UpdatedAt.IsZero())
}

func TestEventRepositoryInsertNilTags(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgres(t, ctx)
	repo := &EventRepository{pool: pool}

	created, err := repo.Insert(ctx, events.InsertParams{
		Title:       "Board Games",
		Description: "Casual night",
		Date:        time.Now().UTC(),
		Location:    "Community Hall",
	})
	require.NoError(t, err)
	require.Equal(t, []string{}, created.Tags)
}

func TestEventRepositoryListSearch(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgres(t, ctx)
	repo := &EventRepository{pool: pool}

	date := time.Date(2026, 7, 10, 19, 0, 0, 0, time.UTC)
	jazzULID := seedEvent(t, ctx, pool, "Jazz in the Park", "Live music", "Centennial Park", []string{"music"}, date)
	galleryULID := seedEvent(t, ctx, pool, "Summer Expo", "Gallery showcase with jazz interludes", "Riverside Gallery", []string{"arts"}, date)
	locationULID := seedEvent(t, ctx, pool, "Open Mic", "Anyone can perform", "Jazz Cellar", []string{"music"}, date)
	_ = seedEvent(t, ctx, pool, "Winter Fest", "Snow fun", "City Arena", []string{"winter"}, date)

	// Case-insensitive match across title, description, and location.
	result, err := repo.List(ctx, events.ListFilters{Search: "JAZZ"})
	require.NoError(t, err)
	require.Len(t, result, 3)

	got := make([]string, 0, len(result))
	for _, event := range result {
		got = append(got, event.ID)
	}
	require.ElementsMatch(t, []string{jazzULID, galleryULID, locationULID}, got)
}

func TestEventRepositoryListSearchEscapesWildcards(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgres(t, ctx)
	repo := &EventRepository{pool: pool}

	date := time.Date(2026, 7, 10, 19, 0, 0, 0, time.UTC)
	literalULID := seedEvent(t, ctx, pool, "100% Improv", "No script", "Black Box", nil, date)
	_ = seedEvent(t, ctx, pool, "100 Poets", "Readings", "Library", nil, date)

	result, err := repo.List(ctx, events.ListFilters{Search: "100%"})
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Equal(t, literalULID, result[0].ID)
}

func TestEventRepositoryListTagMembership(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgres(t, ctx)
	repo := &EventRepository{pool: pool}

	date := time.Date(2026, 7, 10, 19, 0, 0, 0, time.UTC)
	jazzULID := seedEvent(t, ctx, pool, "Jazz in the Park", "Live music", "Centennial Park", []string{"music", "jazz"}, date)
	_ = seedEvent(t, ctx, pool, "Summer Expo", "Gallery showcase", "Riverside Gallery", []string{"arts"}, date)
	_ = seedEvent(t, ctx, pool, "Jazz History Talk", "Lecture", "Library", []string{"jazz-history"}, date)

	// Exact membership, not substring: "jazz" must not match "jazz-history".
	result, err := repo.List(ctx, events.ListFilters{Tag: "jazz"})
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Equal(t, jazzULID, result[0].ID)
}

func TestEventRepositoryListOrdering(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgres(t, ctx)
	repo := &EventRepository{pool: pool}

	date := time.Date(2026, 7, 10, 19, 0, 0, 0, time.UTC)
	oldest := seedEvent(t, ctx, pool, "First", "a", "Hall", nil, date)
	middle := seedEvent(t, ctx, pool, "Second", "b", "Hall", nil, date)
	newest := seedEvent(t, ctx, pool, "Third", "c", "Hall", nil, date)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	setEventCreatedAt(t, ctx, pool, oldest, base)
	setEventCreatedAt(t, ctx, pool, middle, base.Add(time.Hour))
	setEventCreatedAt(t, ctx, pool, newest, base.Add(2*time.Hour))

	result, err := repo.List(ctx, events.ListFilters{})
	require.NoError(t, err)
	require.Len(t, result, 3)
	require.Equal(t, newest, result[0].ID)
	require.Equal(t, middle, result[1].ID)
	require.Equal(t, oldest, result[2].ID)
}

func TestEventRepositoryListCombinedFilters(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgres(t, ctx)
	repo := &EventRepository{pool: pool}

	date := time.Date(2026, 7, 10, 19, 0, 0, 0, time.UTC)
	matchULID := seedEvent(t, ctx, pool, "Jazz in the Park", "Live music", "Centennial Park", []string{"music"}, date)
	_ = seedEvent(t, ctx, pool, "Jazz Brunch", "Live music", "Bistro", []string{"food"}, date)
	_ = seedEvent(t, ctx, pool, "Rock Night", "Loud", "Centennial Park", []string{"music"}, date)

	result, err := repo.List(ctx, events.ListFilters{Search: "jazz", Tag: "music"})
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Equal(t, matchULID, result[0].ID)
}

func TestEventRepositoryGetByID(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgres(t, ctx)
	repo := &EventRepository{pool: pool}

	date := time.Date(2026, 7, 10, 19, 0, 0, 0, time.UTC)
	ulidValue := seedEvent(t, ctx, pool, "Jazz in the Park", "Live music", "Centennial Park", []string{"music"}, date)

	event, err := repo.GetByID(ctx, ulidValue)
	require.NoError(t, err)
	require.Equal(t, ulidValue, event.ID)
	require.Equal(t, "Jazz in the Park", event.Title)

	// Lookups normalize case and surrounding whitespace.
	event, err = repo.GetByID(ctx, " "+strings.ToLower(ulidValue)+" ")
	require.NoError(t, err)
	require.Equal(t, ulidValue, event.ID)

	_, err = repo.GetByID(ctx, "01JZZZZZZZZZZZZZZZZZZZZZZZ")
	require.ErrorIs(t, err, events.ErrNotFound)

	_, err = repo.GetByID(ctx, "not-a-ulid")
	require.ErrorIs(t, err, events.ErrNotFound)
}

func TestEventRepositoryUpdateAttendees(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgres(t, ctx)
	repo := &EventRepository{pool: pool}

	date := time.Date(2026, 7, 10, 19, 0, 0, 0, time.UTC)
	ulidValue := seedEvent(t, ctx, pool, "Jazz in the Park", "Live music", "Centennial Park", []string{"music"}, date)

	updated, err := repo.UpdateAttendees(ctx, ulidValue, []string{"a@x.com", "b@x.com"})
	require.NoError(t, err)
	require.Equal(t, []string{"a@x.com", "b@x.com"}, updated.Attendees)
	require.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	fetched, err := repo.GetByID(ctx, ulidValue)
	require.NoError(t, err)
	require.Equal(t, []string{"a@x.com", "b@x.com"}, fetched.Attendees)

	_, err = repo.UpdateAttendees(ctx, "01JZZZZZZZZZZZZZZZZZZZZZZZ", []string{"a@x.com"})
	require.ErrorIs(t, err, events.ErrNotFound)
}

func TestEventRepositoryDeleteByID(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgres(t, ctx)
	repo := &EventRepository{pool: pool}

	date := time.Date(2026, 7, 10, 19, 0, 0, 0, time.UTC)
	ulidValue := seedEvent(t, ctx, pool, "Jazz in the Park", "Live music", "Centennial Park", []string{"music"}, date)

	deleted, err := repo.DeleteByID(ctx, ulidValue)
	require.NoError(t, err)
	require.Equal(t, ulidValue, deleted.ID)

	_, err = repo.GetByID(ctx, ulidValue)
	require.ErrorIs(t, err, events.ErrNotFound)

	_, err = repo.DeleteByID(ctx, ulidValue)
	require.ErrorIs(t, err, events.ErrNotFound)
}
