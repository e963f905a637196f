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

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

var userColumns = []string{
	"id", "email", "password", "name", "biography", "major", "graduation_year",
	"location", "timezone", "phone_number", "linkedin_url", "github_url",
	"interests", "club_memberships", "enrolled_courses", "profile_picture_url",
	"privacy_settings", "friends", "impact", "badges", "created_at", "updated_at",
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.Name,
		&user.Biography,
		&user.Major,
		&user.GraduationYear,
		&user.Location,
		&user.Timezone,
		&user.PhoneNumber,
		&user.LinkedinURL,
		&user.GithubURL,
		&user.Interests,
		&user.ClubMemberships,
		&user.EnrolledCourses,
		&user.ProfilePictureURL,
		&user.PrivacySettings,
		&user.Friends,
		&user.Impact,
		&user.Badges,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user and returns its generated ID
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	query := squirrel.Insert("users").
		Columns("email", "password", "name", "privacy_settings").
		Values(user.Email, user.Password, user.Name, user.PrivacySettings).
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
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error creating user: %w", err)
	}
	return id, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := squirrel.Select(userColumns...).
		From("users").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := squirrel.Select(userColumns...).
		From("users").
		Where("email = ?", email).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user by email: %w", err)
	}
	return user, nil
}

// UpdateProfile persists the editable profile fields of a user
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	query := squirrel.Update("users").
		Set("name", user.Name).
		Set("biography", user.Biography).
		Set("major", user.Major).
		Set("graduation_year", user.GraduationYear).
		Set("location", user.Location).
		Set("timezone", user.Timezone).
		Set("phone_number", user.PhoneNumber).
		Set("linkedin_url", user.LinkedinURL).
		Set("github_url", user.GithubURL).
		Set("interests", user.Interests).
		Set("club_memberships", user.ClubMemberships).
		Set("enrolled_courses", user.EnrolledCourses).
		Set("profile_picture_url", user.ProfilePictureURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", user.ID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating user profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdatePrivacySettings replaces the stored per-field privacy overrides
func (r *UserRepository) UpdatePrivacySettings(ctx context.Context, userID int64, settings map[string]string) error {
	query := squirrel.Update("users").
		Set("privacy_settings", settings).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating privacy settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// IncrementImpact adds delta impact points to a user. Negative deltas clamp
// at zero.
func (r *UserRepository) IncrementImpact(ctx context.Context, userID int64, delta int) error {
	query := squirrel.Update("users").
		Set("impact", squirrel.Expr("GREATEST(impact + ?, 0)", delta)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error incrementing impact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// AddFriend records a friendship edge on both users
func (r *UserRepository) AddFriend(ctx context.Context, userID, friendID int64) error {
	query := squirrel.Update("users").
		Set("friends", squirrel.Expr("array_append(array_remove(friends, ?), ?)", friendID, friendID)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error adding friend: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
