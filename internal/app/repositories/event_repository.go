package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akshat1423/scaleup-backend/internal/app/models"
	"github.com/akshat1423/scaleup-backend/internal/pkg/apperrors"
)

// EventRepository handles database operations for community events
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

var eventColumns = []string{
	"id", "community_id", "title", "description", "location", "starts_at", "ends_at", "created_by", "created_at",
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var event models.Event
	err := row.Scan(
		&event.ID,
		&event.CommunityID,
		&event.Title,
		&event.Description,
		&event.Location,
		&event.StartsAt,
		&event.EndsAt,
		&event.CreatedBy,
		&event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Create inserts a new event and returns its generated ID
func (r *EventRepository) Create(ctx context.Context, event *models.Event) (int64, error) {
	query := squirrel.Insert("events").
		Columns("community_id", "title", "description", "location", "starts_at", "ends_at", "created_by").
		Values(
			event.CommunityID,
			event.Title,
			event.Description,
			event.Location,
			event.StartsAt,
			event.EndsAt,
			event.CreatedBy,
		).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating event: %w", err)
	}
	return id, nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := squirrel.Select(eventColumns...).
		From("events").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	event, err := scanEvent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error getting event: %w", err)
	}
	return event, nil
}

// ListUpcomingByCommunity retrieves a community's events that end at or after
// the given time, soonest first
func (r *EventRepository) ListUpcomingByCommunity(ctx context.Context, communityID int64, after time.Time) ([]models.Event, error) {
	query := squirrel.Select(eventColumns...).
		From("events").
		Where("community_id = ?", communityID).
		Where("ends_at >= ?", after).
		OrderBy("starts_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		events = append(events, *event)
	}
	return events, rows.Err()
}

// CountByCommunityIDs retrieves event counts for multiple communities
func (r *EventRepository) CountByCommunityIDs(ctx context.Context, communityIDs []int64) (map[int64]int, error) {
	if len(communityIDs) == 0 {
		return make(map[int64]int), nil
	}

	query := squirrel.Select("community_id", "COUNT(*)").
		From("events").
		Where(squirrel.Eq{"community_id": communityIDs}).
		GroupBy("community_id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int, len(communityIDs))
	for rows.Next() {
		var communityID int64
		var count int
		if err := rows.Scan(&communityID, &count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		counts[communityID] = count
	}
	return counts, rows.Err()
}
