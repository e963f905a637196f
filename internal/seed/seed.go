package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	appModels "github.com/akshat1423/scaleup-backend/internal/app/models"
	appRepos "github.com/akshat1423/scaleup-backend/internal/app/repositories"
	"github.com/akshat1423/scaleup-backend/internal/db"
	"github.com/akshat1423/scaleup-backend/internal/pkg/apperrors"
	"github.com/akshat1423/scaleup-backend/internal/pkg/auth"
)

// CreateDefaultData seeds a demo account and a starter community tree so a
// fresh install is browsable. Safe to run repeatedly.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(database.Pool)
	communityRepo := appRepos.NewCommunityRepository(database.Pool)
	membershipRepo := appRepos.NewMembershipRepository(database)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	demoPassword, err := auth.HashPassword("changeme123")
	if err != nil {
		return err
	}

	demoUser := &appModels.User{
		Email:    "demo@scaleup.app",
		Password: demoPassword,
		Name:     "Demo User",
		Major:    "Computer Science",
		Interests: []string{
			"robotics", "chess",
		},
		PrivacySettings: map[string]string{},
	}

	demoID, err := userRepo.Create(ctx, demoUser)
	if err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		lgr.Error().Err(err).Msg("Error creating demo user")
		finalErr = errors.Join(finalErr, err)
	} else if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		existing, errGet := userRepo.GetByEmail(ctx, demoUser.Email)
		if errGet != nil {
			lgr.Error().Err(errGet).Msg("Error looking up existing demo user")
			return errors.Join(finalErr, errGet)
		}
		demoID = existing.ID
	}

	if demoID == 0 {
		return finalErr
	}

	// Seed communities only on first run
	existing, _, err := communityRepo.ListTopLevel(ctx, "", 1, 1)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking existing communities")
		return errors.Join(finalErr, err)
	}
	if len(existing) > 0 {
		return finalErr
	}

	capacity := func(n int) *int { return &n }

	starterCommunities := []*appModels.Community{
		{
			Name:           "Robotics Club",
			Description:    "Builds and races robots all year round",
			PrivacySetting: appModels.CommunityPublic,
			Tags:           []string{"robotics", "engineering"},
			MaxMembers:     capacity(200),
			CreatedBy:      demoID,
		},
		{
			Name:           "Chess Society",
			Description:    "Weekly tournaments, all levels welcome",
			PrivacySetting: appModels.CommunityPublic,
			Tags:           []string{"chess", "games"},
			MaxMembers:     capacity(100),
			CreatedBy:      demoID,
		},
		{
			Name:           "Entrepreneurs Circle",
			Description:    "Invite-gated founders group",
			PrivacySetting: appModels.CommunityPrivate,
			Tags:           []string{"startups"},
			MaxMembers:     capacity(50),
			CreatedBy:      demoID,
		},
	}

	var roboticsID int64
	for _, community := range starterCommunities {
		id, err := communityRepo.Create(ctx, community)
		if err != nil {
			lgr.Error().Err(err).Str("name", community.Name).Msg("Error creating starter community")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if community.Name == "Robotics Club" {
			roboticsID = id
		}
		if err := membershipRepo.AddMember(ctx, id, demoID); err != nil && !errors.Is(err, apperrors.ErrAlreadyMember) {
			lgr.Error().Err(err).Str("name", community.Name).Msg("Error enrolling demo user")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// One sub-community under Robotics Club to show the hierarchy
	if roboticsID > 0 {
		subCommunity := &appModels.Community{
			Name:           "Drone Team",
			ParentID:       &roboticsID,
			Description:    "Competition drone build group",
			PrivacySetting: appModels.CommunityPublic,
			Tags:           []string{"drones"},
			MaxMembers:     capacity(40),
			CreatedBy:      demoID,
		}
		if subID, err := communityRepo.Create(ctx, subCommunity); err != nil {
			lgr.Error().Err(err).Msg("Error creating starter sub-community")
			finalErr = errors.Join(finalErr, err)
		} else if err := membershipRepo.AddMember(ctx, subID, demoID); err != nil && !errors.Is(err, apperrors.ErrAlreadyMember) {
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Msg("Default data check complete.")
	return finalErr
}
