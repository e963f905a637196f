package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/akshat1423/scaleup-backend/internal/app/models"
	"github.com/akshat1423/scaleup-backend/internal/db"
	"github.com/akshat1423/scaleup-backend/internal/pkg/apperrors"
)

// PollRepository handles database operations for polls and their votes
type PollRepository struct {
	database *db.PostgresDB
}

// NewPollRepository creates a new PollRepository
func NewPollRepository(database *db.PostgresDB) *PollRepository {
	return &PollRepository{database: database}
}

var pollColumns = []string{
	"id", "community_id", "question", "options", "allow_multiple_votes",
	"expires_at", "created_by", "created_at",
}

func scanPoll(row pgx.Row) (*models.Poll, error) {
	var poll models.Poll
	err := row.Scan(
		&poll.ID,
		&poll.CommunityID,
		&poll.Question,
		&poll.Options,
		&poll.AllowMultipleVotes,
		&poll.ExpiresAt,
		&poll.CreatedBy,
		&poll.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &poll, nil
}

// Create inserts a new poll and returns its generated ID
func (r *PollRepository) Create(ctx context.Context, poll *models.Poll) (int64, error) {
	query := squirrel.Insert("polls").
		Columns("community_id", "question", "options", "allow_multiple_votes", "expires_at", "created_by").
		Values(
			poll.CommunityID,
			poll.Question,
			poll.Options,
			poll.AllowMultipleVotes,
			poll.ExpiresAt,
			poll.CreatedBy,
		).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.database.Pool.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating poll: %w", err)
	}
	return id, nil
}

// GetByID retrieves a poll by ID
func (r *PollRepository) GetByID(ctx context.Context, id int64) (*models.Poll, error) {
	query := squirrel.Select(pollColumns...).
		From("polls").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	poll, err := scanPoll(r.database.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error getting poll: %w", err)
	}
	return poll, nil
}

// ListByCommunity retrieves a community's polls, newest first
func (r *PollRepository) ListByCommunity(ctx context.Context, communityID int64) ([]models.Poll, error) {
	query := squirrel.Select(pollColumns...).
		From("polls").
		Where("community_id = ?", communityID).
		OrderBy("created_at DESC").
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

	var polls []models.Poll
	for rows.Next() {
		poll, err := scanPoll(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		polls = append(polls, *poll)
	}
	return polls, rows.Err()
}

// AddVote appends a vote row without touching earlier votes. Used for polls
// that allow multiple votes per user.
func (r *PollRepository) AddVote(ctx context.Context, vote *models.PollVote) error {
	query := squirrel.Insert("poll_votes").
		Columns("poll_id", "user_id", "selected_options").
		Values(vote.PollID, vote.UserID, vote.SelectedOptions).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.database.Pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error inserting poll vote: %w", err)
	}
	return nil
}

// ReplaceVote atomically removes the user's previous votes on the poll and
// records the new one. Used for single-vote polls.
func (r *PollRepository) ReplaceVote(ctx context.Context, vote *models.PollVote) error {
	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			"DELETE FROM poll_votes WHERE poll_id = $1 AND user_id = $2",
			vote.PollID, vote.UserID,
		)
		if err != nil {
			return fmt.Errorf("error deleting previous vote: %w", err)
		}

		_, err = tx.Exec(ctx,
			"INSERT INTO poll_votes (poll_id, user_id, selected_options) VALUES ($1, $2, $3)",
			vote.PollID, vote.UserID, vote.SelectedOptions,
		)
		if err != nil {
			return fmt.Errorf("error inserting poll vote: %w", err)
		}
		return nil
	})
}

// ListVotes retrieves all vote rows for a poll
func (r *PollRepository) ListVotes(ctx context.Context, pollID int64) ([]models.PollVote, error) {
	query := squirrel.Select("id", "poll_id", "user_id", "selected_options", "voted_at").
		From("poll_votes").
		Where("poll_id = ?", pollID).
		OrderBy("voted_at ASC").
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

	var votes []models.PollVote
	for rows.Next() {
		var vote models.PollVote
		err := rows.Scan(&vote.ID, &vote.PollID, &vote.UserID, &vote.SelectedOptions, &vote.VotedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		votes = append(votes, vote)
	}
	return votes, rows.Err()
}

// CountByCommunityIDs retrieves poll counts for multiple communities
func (r *PollRepository) CountByCommunityIDs(ctx context.Context, communityIDs []int64) (map[int64]int, error) {
	if len(communityIDs) == 0 {
		return make(map[int64]int), nil
	}

	query := squirrel.Select("community_id", "COUNT(*)").
		From("polls").
		Where(squirrel.Eq{"community_id": communityIDs}).
		GroupBy("community_id").
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
