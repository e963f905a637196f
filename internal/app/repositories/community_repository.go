package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akshat1423/scaleup-backend/internal/app/models"
	"github.com/akshat1423/scaleup-backend/internal/pkg/apperrors"
	"github.com/akshat1423/scaleup-backend/internal/pkg/dberrors"
)

// CommunityRepository handles database operations for communities
type CommunityRepository struct {
	db *pgxpool.Pool
}

// NewCommunityRepository creates a new CommunityRepository
func NewCommunityRepository(db *pgxpool.Pool) *CommunityRepository {
	return &CommunityRepository{db: db}
}

var communityColumns = []string{
	"id", "name", "parent_id", "description", "privacy_setting", "rules",
	"tags", "max_members", "member_count", "created_by", "created_at", "updated_at",
}

func scanCommunity(row pgx.Row) (*models.Community, error) {
	var community models.Community
	err := row.Scan(
		&community.ID,
		&community.Name,
		&community.ParentID,
		&community.Description,
		&community.PrivacySetting,
		&community.Rules,
		&community.Tags,
		&community.MaxMembers,
		&community.MemberCount,
		&community.CreatedBy,
		&community.CreatedAt,
		&community.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &community, nil
}

// Create inserts a new community and returns its generated ID
func (r *CommunityRepository) Create(ctx context.Context, community *models.Community) (int64, error) {
	query := squirrel.Insert("communities").
		Columns("name", "parent_id", "description", "privacy_setting", "rules", "tags", "max_members", "created_by").
		Values(
			community.Name,
			community.ParentID,
			community.Description,
			community.PrivacySetting,
			community.Rules,
			community.Tags,
			community.MaxMembers,
			community.CreatedBy,
		).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrResourceAlreadyExists
		}
		return 0, fmt.Errorf("error creating community: %w", err)
	}
	return id, nil
}

// GetByID retrieves a community by ID
func (r *CommunityRepository) GetByID(ctx context.Context, id int64) (*models.Community, error) {
	query := squirrel.Select(communityColumns...).
		From("communities").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	community, err := scanCommunity(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error getting community: %w", err)
	}
	return community, nil
}

// ListTopLevel retrieves root communities with pagination and an optional
// name search
func (r *CommunityRepository) ListTopLevel(ctx context.Context, search string, page, pageSize int) ([]models.Community, int64, error) {
	base := squirrel.Select(communityColumns...).
		From("communities").
		Where("parent_id IS NULL").
		PlaceholderFormat(squirrel.Dollar)

	countQuery := squirrel.Select("COUNT(*)").
		From("communities").
		Where("parent_id IS NULL").
		PlaceholderFormat(squirrel.Dollar)

	if search != "" {
		pattern := "%" + search + "%"
		base = base.Where("name ILIKE ?", pattern)
		countQuery = countQuery.Where("name ILIKE ?", pattern)
	}

	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting communities: %w", err)
	}

	offset := (page - 1) * pageSize
	base = base.OrderBy("created_at DESC", "id DESC").Limit(uint64(pageSize)).Offset(uint64(offset))

	sql, args, err = base.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var communities []models.Community
	for rows.Next() {
		community, err := scanCommunity(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		communities = append(communities, *community)
	}
	return communities, total, rows.Err()
}

// ListChildren retrieves the direct sub-communities of a parent
func (r *CommunityRepository) ListChildren(ctx context.Context, parentID int64) ([]models.Community, error) {
	query := squirrel.Select(communityColumns...).
		From("communities").
		Where("parent_id = ?", parentID).
		OrderBy("name ASC").
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

	var communities []models.Community
	for rows.Next() {
		community, err := scanCommunity(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		communities = append(communities, *community)
	}
	return communities, rows.Err()
}

// ListAll retrieves every community. Used by profile-based matching, which
// needs the full tag surface.
func (r *CommunityRepository) ListAll(ctx context.Context) ([]models.Community, error) {
	query := squirrel.Select(communityColumns...).
		From("communities").
		OrderBy("id ASC").
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

	var communities []models.Community
	for rows.Next() {
		community, err := scanCommunity(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		communities = append(communities, *community)
	}
	return communities, rows.Err()
}

// Update persists the editable fields of a community
func (r *CommunityRepository) Update(ctx context.Context, community *models.Community) error {
	query := squirrel.Update("communities").
		Set("name", community.Name).
		Set("description", community.Description).
		Set("privacy_setting", community.PrivacySetting).
		Set("rules", community.Rules).
		Set("tags", community.Tags).
		Set("max_members", community.MaxMembers).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", community.ID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating community: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// Delete removes a community and everything that cascades from it
func (r *CommunityRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("communities").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting community: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
