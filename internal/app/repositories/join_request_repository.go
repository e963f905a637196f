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

// JoinRequestRepository handles database operations for join requests
type JoinRequestRepository struct {
	db *pgxpool.Pool
}

// NewJoinRequestRepository creates a new JoinRequestRepository
func NewJoinRequestRepository(db *pgxpool.Pool) *JoinRequestRepository {
	return &JoinRequestRepository{db: db}
}

var joinRequestColumns = []string{
	"id", "community_id", "user_id", "message", "status", "reviewed_by", "reviewed_at", "created_at",
}

func scanJoinRequest(row pgx.Row) (*models.JoinRequest, error) {
	var request models.JoinRequest
	err := row.Scan(
		&request.ID,
		&request.CommunityID,
		&request.UserID,
		&request.Message,
		&request.Status,
		&request.ReviewedBy,
		&request.ReviewedAt,
		&request.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Create inserts a pending join request. A partial unique index on
// (community_id, user_id) WHERE status = 'PENDING' blocks duplicates.
func (r *JoinRequestRepository) Create(ctx context.Context, request *models.JoinRequest) (int64, error) {
	query := squirrel.Insert("join_requests").
		Columns("community_id", "user_id", "message", "status").
		Values(request.CommunityID, request.UserID, request.Message, models.JoinRequestPending).
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
			return 0, apperrors.ErrRequestAlreadyPending
		}
		return 0, fmt.Errorf("error creating join request: %w", err)
	}
	return id, nil
}

// GetByID retrieves a join request by ID
func (r *JoinRequestRepository) GetByID(ctx context.Context, id int64) (*models.JoinRequest, error) {
	query := squirrel.Select(joinRequestColumns...).
		From("join_requests").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	request, err := scanJoinRequest(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error getting join request: %w", err)
	}
	return request, nil
}

// ListPendingByCommunity retrieves the pending requests of a community,
// oldest first
func (r *JoinRequestRepository) ListPendingByCommunity(ctx context.Context, communityID int64) ([]models.JoinRequest, error) {
	query := squirrel.Select(joinRequestColumns...).
		From("join_requests").
		Where(squirrel.Eq{"community_id": communityID, "status": models.JoinRequestPending}).
		OrderBy("created_at ASC").
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

	var requests []models.JoinRequest
	for rows.Next() {
		request, err := scanJoinRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		requests = append(requests, *request)
	}
	return requests, rows.Err()
}

// Resolve moves a pending request to a terminal status. Returns
// ErrRequestAlreadyClosed if the request was resolved in the meantime.
func (r *JoinRequestRepository) Resolve(ctx context.Context, id int64, status models.JoinRequestStatus, reviewerID int64) error {
	query := squirrel.Update("join_requests").
		Set("status", status).
		Set("reviewed_by", reviewerID).
		Set("reviewed_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": models.JoinRequestPending}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error resolving join request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrRequestAlreadyClosed
	}
	return nil
}
