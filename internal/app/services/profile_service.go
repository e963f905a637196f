package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/akshat1423/scaleup-backend/internal/app/models"
	"github.com/akshat1423/scaleup-backend/internal/app/models/dto"
	"github.com/akshat1423/scaleup-backend/internal/app/privacy"
	"github.com/akshat1423/scaleup-backend/internal/metrics"
	"github.com/akshat1423/scaleup-backend/internal/pkg/apperrors"
	"github.com/akshat1423/scaleup-backend/internal/pkg/validation"
)

// ProfileService defines the interface for profile viewing and editing
type ProfileService interface {
	ViewProfile(ctx context.Context, targetID, viewerID int64) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	UpdatePrivacySettings(ctx context.Context, userID int64, settings map[string]string) error
	GetCompletion(ctx context.Context, userID int64) (*dto.CompletionResponse, error)
	AddFriend(ctx context.Context, userID, friendID int64) error
}

type profileStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdatePrivacySettings(ctx context.Context, userID int64, settings map[string]string) error
	AddFriend(ctx context.Context, userID, friendID int64) error
}

type sharedCommunityChecker interface {
	ShareCommunity(ctx context.Context, userA, userB int64) (bool, error)
}

// profileServiceImpl implements ProfileService
type profileServiceImpl struct {
	userRepo       profileStore
	membershipRepo sharedCommunityChecker
	registry       *metrics.Registry
	logger         zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	userRepo profileStore,
	membershipRepo sharedCommunityChecker,
	registry *metrics.Registry,
	logger zerolog.Logger,
) ProfileService {
	return &profileServiceImpl{
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		registry:       registry,
		logger:         logger,
	}
}

// resolveRelationship determines the viewer's standing relative to the
// subject: self, then friend, then shared community member, then public
func (s *profileServiceImpl) resolveRelationship(ctx context.Context, target *models.User, viewerID int64) (privacy.Relationship, error) {
	if target.ID == viewerID {
		return privacy.RelationshipSelf, nil
	}
	for _, friendID := range target.Friends {
		if friendID == viewerID {
			return privacy.RelationshipFriend, nil
		}
	}
	shared, err := s.membershipRepo.ShareCommunity(ctx, target.ID, viewerID)
	if err != nil {
		return privacy.RelationshipPublic, err
	}
	if shared {
		return privacy.RelationshipCommunityMember, nil
	}
	return privacy.RelationshipPublic, nil
}

// ViewProfile returns the privacy-filtered projection of a user's profile as
// seen by the viewer
func (s *profileServiceImpl) ViewProfile(ctx context.Context, targetID, viewerID int64) (*dto.ProfileResponse, error) {
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	relationship, err := s.resolveRelationship(ctx, target, viewerID)
	if err != nil {
		return nil, err
	}

	policy := privacy.MergePolicy(target.PrivacySettings)
	projection := privacy.Project(target, policy, relationship)

	fields := make(map[string]any, len(projection))
	for field, value := range projection {
		fields[string(field)] = value
	}

	s.registry.ProfileProjectedTotal.WithLabelValues(string(relationship)).Inc()

	return &dto.ProfileResponse{
		UserID:       target.ID,
		Relationship: string(relationship),
		Fields:       fields,
	}, nil
}

// UpdateProfile applies the given field changes to the caller's own profile
// and returns the fresh self view
func (s *profileServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	problems := make(map[string]string)
	if req.GraduationYear != nil && !validation.ValidGraduationYear(*req.GraduationYear) {
		problems["graduationYear"] = "is out of range"
	}
	if req.LinkedinURL != nil && *req.LinkedinURL != "" && !validation.ValidURL(*req.LinkedinURL) {
		problems["linkedinUrl"] = "is not a valid URL"
	}
	if req.GithubURL != nil && *req.GithubURL != "" && !validation.ValidURL(*req.GithubURL) {
		problems["githubUrl"] = "is not a valid URL"
	}
	if req.ProfilePictureURL != nil && *req.ProfilePictureURL != "" && !validation.ValidURL(*req.ProfilePictureURL) {
		problems["profilePictureUrl"] = "is not a valid URL"
	}
	if req.Name != nil && *req.Name == "" {
		problems["name"] = "cannot be empty"
	}
	if len(problems) > 0 {
		return nil, apperrors.NewValidationError(problems)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Biography != nil {
		user.Biography = *req.Biography
	}
	if req.Major != nil {
		user.Major = *req.Major
	}
	if req.GraduationYear != nil {
		user.GraduationYear = req.GraduationYear
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.Timezone != nil {
		user.Timezone = *req.Timezone
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.LinkedinURL != nil {
		user.LinkedinURL = *req.LinkedinURL
	}
	if req.GithubURL != nil {
		user.GithubURL = *req.GithubURL
	}
	if req.Interests != nil {
		user.Interests = *req.Interests
	}
	if req.ClubMemberships != nil {
		user.ClubMemberships = *req.ClubMemberships
	}
	if req.EnrolledCourses != nil {
		user.EnrolledCourses = *req.EnrolledCourses
	}
	if req.ProfilePictureURL != nil {
		if *req.ProfilePictureURL == "" {
			user.ProfilePictureURL = nil
		} else {
			user.ProfilePictureURL = req.ProfilePictureURL
		}
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return s.ViewProfile(ctx, userID, userID)
}

// UpdatePrivacySettings validates and stores per-field visibility overrides.
// All problems are collected before rejecting, so the caller sees the full
// list at once.
func (s *profileServiceImpl) UpdatePrivacySettings(ctx context.Context, userID int64, settings map[string]string) error {
	if problems := privacy.ValidatePolicy(settings); len(problems) > 0 {
		return apperrors.NewValidationError(problems)
	}
	return s.userRepo.UpdatePrivacySettings(ctx, userID, settings)
}

// GetCompletion reports the caller's profile completion percentage and what
// to fill in next
func (s *profileServiceImpl) GetCompletion(ctx context.Context, userID int64) (*dto.CompletionResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	suggestions := privacy.Suggest(user)
	out := make([]dto.CompletionSuggestion, 0, len(suggestions))
	for _, suggestion := range suggestions {
		out = append(out, dto.CompletionSuggestion{
			Field:       string(suggestion.Field),
			DisplayName: suggestion.DisplayName,
			Description: suggestion.Description,
		})
	}

	return &dto.CompletionResponse{
		Percentage:  privacy.Completion(user),
		Suggestions: out,
	}, nil
}

// AddFriend records a mutual friendship between two users
func (s *profileServiceImpl) AddFriend(ctx context.Context, userID, friendID int64) error {
	if userID == friendID {
		return apperrors.NewBadRequestError("Cannot befriend yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, friendID); err != nil {
		return err
	}

	if err := s.userRepo.AddFriend(ctx, userID, friendID); err != nil {
		return err
	}
	if err := s.userRepo.AddFriend(ctx, friendID, userID); err != nil {
		return err
	}

	s.logger.Info().
		Int64("userId", userID).
		Int64("friendId", friendID).
		Msg("Friendship recorded")
	return nil
}
