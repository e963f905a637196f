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
)

// PostRepository handles database operations for posts
type PostRepository struct {
	db *pgxpool.Pool
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{db: db}
}

var postColumns = []string{
	"id", "community_id", "user_id", "text", "upvotes", "downvotes", "created_at",
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var post models.Post
	err := row.Scan(
		&post.ID,
		&post.CommunityID,
		&post.UserID,
		&post.Text,
		&post.Upvotes,
		&post.Downvotes,
		&post.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Create inserts a new post and returns its generated ID
func (r *PostRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	query := squirrel.Insert("posts").
		Columns("community_id", "user_id", "text").
		Values(post.CommunityID, post.UserID, post.Text).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating post: %w", err)
	}
	return id, nil
}

// GetByID retrieves a post by ID
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := squirrel.Select(postColumns...).
		From("posts").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	post, err := scanPost(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error getting post: %w", err)
	}
	return post, nil
}

// ListByCommunity retrieves a community's posts, newest first, with pagination
func (r *PostRepository) ListByCommunity(ctx context.Context, communityID int64, page, pageSize int) ([]models.Post, int64, error) {
	countQuery := squirrel.Select("COUNT(*)").
		From("posts").
		Where("community_id = ?", communityID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting posts: %w", err)
	}

	offset := (page - 1) * pageSize
	query := squirrel.Select(postColumns...).
		From("posts").
		Where("community_id = ?", communityID).
		OrderBy("created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err = query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		posts = append(posts, *post)
	}
	return posts, total, rows.Err()
}

// ApplyVote increments the matching vote counter and returns the updated post.
// Counters only ever grow; there is no vote withdrawal.
func (r *PostRepository) ApplyVote(ctx context.Context, postID int64, up bool) (*models.Post, error) {
	column := "downvotes"
	if up {
		column = "upvotes"
	}

	sql := fmt.Sprintf(
		"UPDATE posts SET %s = %s + 1 WHERE id = $1 RETURNING id, community_id, user_id, text, upvotes, downvotes, created_at",
		column, column,
	)

	post, err := scanPost(r.db.QueryRow(ctx, sql, postID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error applying vote: %w", err)
	}
	return post, nil
}

// CountByCommunityIDs retrieves post counts for multiple communities
func (r *PostRepository) CountByCommunityIDs(ctx context.Context, communityIDs []int64) (map[int64]int, error) {
	if len(communityIDs) == 0 {
		return make(map[int64]int), nil
	}

	query := squirrel.Select("community_id", "COUNT(*)").
		From("posts").
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
