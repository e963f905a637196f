package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/akshat1423/scaleup-backend/internal/db"
	"github.com/akshat1423/scaleup-backend/internal/pkg/apperrors"
	"github.com/akshat1423/scaleup-backend/internal/pkg/dberrors"
)

// MembershipRepository handles database operations for community memberships.
// Joins and leaves run in a transaction that locks the community row, so the
// cached member_count and the membership rows can never drift apart and a
// capacity check cannot be raced past.
type MembershipRepository struct {
	database *db.PostgresDB
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(database *db.PostgresDB) *MembershipRepository {
	return &MembershipRepository{database: database}
}

// AddMember adds a user to a community. Returns ErrAlreadyMember if the user
// already belongs, ErrCapacityExceeded if the community is full, and
// ErrResourceNotFound if the community does not exist.
func (r *MembershipRepository) AddMember(ctx context.Context, communityID, userID int64) error {
	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var memberCount int
		var maxMembers *int
		err := tx.QueryRow(ctx,
			"SELECT member_count, max_members FROM communities WHERE id = $1 FOR UPDATE",
			communityID,
		).Scan(&memberCount, &maxMembers)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrResourceNotFound
			}
			return fmt.Errorf("error locking community: %w", err)
		}

		if maxMembers != nil && memberCount >= *maxMembers {
			return apperrors.ErrCapacityExceeded
		}

		_, err = tx.Exec(ctx,
			"INSERT INTO community_members (community_id, user_id) VALUES ($1, $2)",
			communityID, userID,
		)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrAlreadyMember
			}
			return fmt.Errorf("error inserting membership: %w", err)
		}

		_, err = tx.Exec(ctx,
			"UPDATE communities SET member_count = member_count + 1, updated_at = NOW() WHERE id = $1",
			communityID,
		)
		if err != nil {
			return fmt.Errorf("error updating member count: %w", err)
		}
		return nil
	})
}

// RemoveMember removes a user from a community. Returns ErrNotAMember if no
// membership row exists.
func (r *MembershipRepository) RemoveMember(ctx context.Context, communityID, userID int64) error {
	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var exists bool
		err := tx.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM communities WHERE id = $1 FOR UPDATE)",
			communityID,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("error locking community: %w", err)
		}
		if !exists {
			return apperrors.ErrResourceNotFound
		}

		tag, err := tx.Exec(ctx,
			"DELETE FROM community_members WHERE community_id = $1 AND user_id = $2",
			communityID, userID,
		)
		if err != nil {
			return fmt.Errorf("error deleting membership: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotAMember
		}

		_, err = tx.Exec(ctx,
			"UPDATE communities SET member_count = member_count - 1, updated_at = NOW() WHERE id = $1",
			communityID,
		)
		if err != nil {
			return fmt.Errorf("error updating member count: %w", err)
		}
		return nil
	})
}

// IsMember reports whether a user belongs to a community
func (r *MembershipRepository) IsMember(ctx context.Context, communityID, userID int64) (bool, error) {
	query := squirrel.Select("1").
		From("community_members").
		Where(squirrel.Eq{"community_id": communityID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var one int
	err = r.database.Pool.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking membership: %w", err)
	}
	return true, nil
}

// ListMemberIDs retrieves the user IDs of all members of a community
func (r *MembershipRepository) ListMemberIDs(ctx context.Context, communityID int64) ([]int64, error) {
	query := squirrel.Select("user_id").
		From("community_members").
		Where("community_id = ?", communityID).
		OrderBy("joined_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.database.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListUserCommunityIDs retrieves the IDs of all communities a user belongs to
func (r *MembershipRepository) ListUserCommunityIDs(ctx context.Context, userID int64) ([]int64, error) {
	query := squirrel.Select("community_id").
		From("community_members").
		Where("user_id = ?", userID).
		OrderBy("joined_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.database.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ShareCommunity reports whether two users belong to at least one common
// community
func (r *MembershipRepository) ShareCommunity(ctx context.Context, userA, userB int64) (bool, error) {
	var shared bool
	err := r.database.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM community_members a
			JOIN community_members b ON a.community_id = b.community_id
			WHERE a.user_id = $1 AND b.user_id = $2
		)`, userA, userB,
	).Scan(&shared)
	if err != nil {
		return false, fmt.Errorf("error checking shared community: %w", err)
	}
	return shared, nil
}
