package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akshat1423/scaleup-backend/internal/app/models"
)

// AnnouncementRepository handles database operations for announcements
type AnnouncementRepository struct {
	db *pgxpool.Pool
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(db *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

var announcementColumns = []string{
	"id", "community_id", "title", "body", "pinned", "created_by", "created_at",
}

func scanAnnouncement(row pgx.Row) (*models.Announcement, error) {
	var announcement models.Announcement
	err := row.Scan(
		&announcement.ID,
		&announcement.CommunityID,
		&announcement.Title,
		&announcement.Body,
		&announcement.Pinned,
		&announcement.CreatedBy,
		&announcement.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &announcement, nil
}

// Create inserts a new announcement and returns its generated ID
func (r *AnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) (int64, error) {
	query := squirrel.Insert("announcements").
		Columns("community_id", "title", "body", "pinned", "created_by").
		Values(
			announcement.CommunityID,
			announcement.Title,
			announcement.Body,
			announcement.Pinned,
			announcement.CreatedBy,
		).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating announcement: %w", err)
	}
	return id, nil
}

// ListByCommunity retrieves a community's announcements, pinned first then
// newest first
func (r *AnnouncementRepository) ListByCommunity(ctx context.Context, communityID int64) ([]models.Announcement, error) {
	query := squirrel.Select(announcementColumns...).
		From("announcements").
		Where("community_id = ?", communityID).
		OrderBy("pinned DESC", "created_at DESC").
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

	var announcements []models.Announcement
	for rows.Next() {
		announcement, err := scanAnnouncement(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		announcements = append(announcements, *announcement)
	}
	return announcements, rows.Err()
}

// CountByCommunityIDs retrieves announcement counts for multiple communities
func (r *AnnouncementRepository) CountByCommunityIDs(ctx context.Context, communityIDs []int64) (map[int64]int, error) {
	if len(communityIDs) == 0 {
		return make(map[int64]int), nil
	}

	query := squirrel.Select("community_id", "COUNT(*)").
		From("announcements").
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
