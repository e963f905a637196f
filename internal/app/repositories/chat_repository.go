package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akshat1423/scaleup-backend/internal/app/models"
)

// ChatRepository handles database operations for community chat messages
type ChatRepository struct {
	db *pgxpool.Pool
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{db: db}
}

// Create inserts a chat message and returns its generated ID
func (r *ChatRepository) Create(ctx context.Context, message *models.ChatMessage) (int64, error) {
	query := squirrel.Insert("chat_messages").
		Columns("community_id", "user_id", "body").
		Values(message.CommunityID, message.UserID, message.Body).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&message.ID, &message.CreatedAt); err != nil {
		return 0, fmt.Errorf("error creating chat message: %w", err)
	}
	return message.ID, nil
}

// ListByCommunity retrieves a page of a community's chat history, newest first
func (r *ChatRepository) ListByCommunity(ctx context.Context, communityID int64, page, pageSize int) ([]models.ChatMessage, int64, error) {
	countQuery := squirrel.Select("COUNT(*)").
		From("chat_messages").
		Where("community_id = ?", communityID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting chat messages: %w", err)
	}

	offset := (page - 1) * pageSize
	query := squirrel.Select("id", "community_id", "user_id", "body", "created_at").
		From("chat_messages").
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

	var messages []models.ChatMessage
	for rows.Next() {
		var message models.ChatMessage
		err := rows.Scan(&message.ID, &message.CommunityID, &message.UserID, &message.Body, &message.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		messages = append(messages, message)
	}
	return messages, total, rows.Err()
}
