package services

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/akshat1423/scaleup-backend/internal/app/models"
	"github.com/akshat1423/scaleup-backend/internal/app/models/dto"
	"github.com/akshat1423/scaleup-backend/internal/metrics"
	"github.com/akshat1423/scaleup-backend/internal/pkg/apperrors"
	"github.com/akshat1423/scaleup-backend/internal/pkg/helpers"
)

// InteractionService defines the interface for posts, votes, and polls
type InteractionService interface {
	CreatePost(ctx context.Context, communityID, userID int64, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	ListPosts(ctx context.Context, communityID, viewerID int64, page, pageSize int) (*dto.PostListResponse, error)
	VotePost(ctx context.Context, postID, voterID int64, direction string) (*dto.PostResponse, error)
	CreatePoll(ctx context.Context, communityID, userID int64, req *dto.CreatePollRequest) (*dto.PollResponse, error)
	ListPolls(ctx context.Context, communityID, viewerID int64) ([]dto.PollResponse, error)
	VotePoll(ctx context.Context, pollID, userID int64, selectedOptions []int) error
	TallyPoll(ctx context.Context, pollID, viewerID int64) (*dto.PollResultsResponse, error)
}

type postStore interface {
	Create(ctx context.Context, post *models.Post) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	ListByCommunity(ctx context.Context, communityID int64, page, pageSize int) ([]models.Post, int64, error)
	ApplyVote(ctx context.Context, postID int64, up bool) (*models.Post, error)
}

type pollStore interface {
	Create(ctx context.Context, poll *models.Poll) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Poll, error)
	ListByCommunity(ctx context.Context, communityID int64) ([]models.Poll, error)
	AddVote(ctx context.Context, vote *models.PollVote) error
	ReplaceVote(ctx context.Context, vote *models.PollVote) error
	ListVotes(ctx context.Context, pollID int64) ([]models.PollVote, error)
}

type impactWriter interface {
	IncrementImpact(ctx context.Context, userID int64, delta int) error
}

type membershipChecker interface {
	IsMember(ctx context.Context, communityID, userID int64) (bool, error)
}

type communityGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Community, error)
}

// interactionServiceImpl implements InteractionService
type interactionServiceImpl struct {
	postRepo       postStore
	pollRepo       pollStore
	membershipRepo membershipChecker
	communityRepo  communityGetter
	userRepo       impactWriter
	registry       *metrics.Registry
	logger         zerolog.Logger
	now            func() time.Time
}

// NewInteractionService creates a new InteractionService
func NewInteractionService(
	postRepo postStore,
	pollRepo pollStore,
	membershipRepo membershipChecker,
	communityRepo communityGetter,
	userRepo impactWriter,
	registry *metrics.Registry,
	logger zerolog.Logger,
) InteractionService {
	return &interactionServiceImpl{
		postRepo:       postRepo,
		pollRepo:       pollRepo,
		membershipRepo: membershipRepo,
		communityRepo:  communityRepo,
		userRepo:       userRepo,
		registry:       registry,
		logger:         logger,
		now:            time.Now,
	}
}

// requireReadAccess lets anyone read public communities but demands
// membership for private and restricted ones
func (s *interactionServiceImpl) requireReadAccess(ctx context.Context, communityID, userID int64) error {
	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return err
	}
	if community.PrivacySetting == models.CommunityPublic {
		return nil
	}
	return s.requireMembership(ctx, communityID, userID)
}

func (s *interactionServiceImpl) requireMembership(ctx context.Context, communityID, userID int64) error {
	isMember, err := s.membershipRepo.IsMember(ctx, communityID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return apperrors.ErrNotAMember
	}
	return nil
}

// CreatePost adds a post to a community on behalf of a member
func (s *interactionServiceImpl) CreatePost(ctx context.Context, communityID, userID int64, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	if err := s.requireMembership(ctx, communityID, userID); err != nil {
		return nil, err
	}

	post := &models.Post{
		CommunityID: communityID,
		UserID:      userID,
		Text:        req.Text,
	}
	id, err := s.postRepo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	created, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Int64("postId", id).
		Int64("communityId", communityID).
		Msg("Post created")

	response := toPostResponse(created)
	return &response, nil
}

// ListPosts retrieves a page of a community's posts
func (s *interactionServiceImpl) ListPosts(ctx context.Context, communityID, viewerID int64, page, pageSize int) (*dto.PostListResponse, error) {
	if err := s.requireReadAccess(ctx, communityID, viewerID); err != nil {
		return nil, err
	}

	posts, total, err := s.postRepo.ListByCommunity(ctx, communityID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, toPostResponse(&post))
	}

	return &dto.PostListResponse{
		Posts:      responses,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// VotePost registers a vote on a post. Vote counters are append only. An
// upvote from someone other than the author awards the author one impact
// point; downvotes and self-votes never change impact.
func (s *interactionServiceImpl) VotePost(ctx context.Context, postID, voterID int64, direction string) (*dto.PostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMembership(ctx, post.CommunityID, voterID); err != nil {
		return nil, err
	}

	up := direction == "up"
	updated, err := s.postRepo.ApplyVote(ctx, postID, up)
	if err != nil {
		return nil, err
	}

	if up && voterID != post.UserID {
		if err := s.userRepo.IncrementImpact(ctx, post.UserID, 1); err != nil {
			s.logger.Warn().Err(err).
				Int64("postId", postID).
				Int64("authorId", post.UserID).
				Msg("Failed to award impact for upvote")
		}
	}

	s.registry.PostVotesTotal.WithLabelValues(direction).Inc()

	response := toPostResponse(updated)
	return &response, nil
}

// CreatePoll adds a poll to a community on behalf of a member
func (s *interactionServiceImpl) CreatePoll(ctx context.Context, communityID, userID int64, req *dto.CreatePollRequest) (*dto.PollResponse, error) {
	if err := s.requireMembership(ctx, communityID, userID); err != nil {
		return nil, err
	}

	problems := make(map[string]string)
	if len(req.Options) < 2 {
		problems["options"] = "a poll needs at least two options"
	}
	if req.ExpiresAt != nil && req.ExpiresAt.Before(s.now()) {
		problems["expiresAt"] = "must be in the future"
	}
	if len(problems) > 0 {
		return nil, apperrors.NewValidationError(problems)
	}

	poll := &models.Poll{
		CommunityID:        communityID,
		Question:           req.Question,
		Options:            req.Options,
		AllowMultipleVotes: req.AllowMultipleVotes,
		ExpiresAt:          req.ExpiresAt,
		CreatedBy:          userID,
	}
	id, err := s.pollRepo.Create(ctx, poll)
	if err != nil {
		return nil, err
	}

	created, err := s.pollRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := s.toPollResponse(created)
	return &response, nil
}

// ListPolls retrieves a community's polls
func (s *interactionServiceImpl) ListPolls(ctx context.Context, communityID, viewerID int64) ([]dto.PollResponse, error) {
	if err := s.requireReadAccess(ctx, communityID, viewerID); err != nil {
		return nil, err
	}

	polls, err := s.pollRepo.ListByCommunity(ctx, communityID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PollResponse, 0, len(polls))
	for _, poll := range polls {
		responses = append(responses, s.toPollResponse(&poll))
	}
	return responses, nil
}

// VotePoll records a member's ballot. On single-vote polls a new ballot
// replaces the previous one; on multi-vote polls ballots accumulate.
func (s *interactionServiceImpl) VotePoll(ctx context.Context, pollID, userID int64, selectedOptions []int) error {
	poll, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return err
	}
	if err := s.requireMembership(ctx, poll.CommunityID, userID); err != nil {
		return err
	}
	if poll.Expired(s.now()) {
		return apperrors.ErrPollExpired
	}

	if len(selectedOptions) == 0 {
		return apperrors.NewValidationError(map[string]string{
			"selectedOptions": "at least one option is required",
		})
	}
	if !poll.AllowMultipleVotes && len(selectedOptions) > 1 {
		return apperrors.NewValidationError(map[string]string{
			"selectedOptions": "this poll accepts a single option",
		})
	}

	seen := make(map[int]struct{}, len(selectedOptions))
	for _, index := range selectedOptions {
		if index < 0 || index >= len(poll.Options) {
			return apperrors.NewValidationError(map[string]string{
				"selectedOptions": "option index out of range",
			})
		}
		if _, dup := seen[index]; dup {
			return apperrors.NewValidationError(map[string]string{
				"selectedOptions": "duplicate option index",
			})
		}
		seen[index] = struct{}{}
	}

	vote := &models.PollVote{
		PollID:          pollID,
		UserID:          userID,
		SelectedOptions: selectedOptions,
	}

	if poll.AllowMultipleVotes {
		err = s.pollRepo.AddVote(ctx, vote)
	} else {
		err = s.pollRepo.ReplaceVote(ctx, vote)
	}
	if err != nil {
		return err
	}

	s.registry.PollVotesTotal.Inc()
	return nil
}

// TallyPoll counts the recorded ballots per option. Percentages are shares of
// all ballots, so on multi-vote polls they can sum past 100.
func (s *interactionServiceImpl) TallyPoll(ctx context.Context, pollID, viewerID int64) (*dto.PollResultsResponse, error) {
	poll, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if err := s.requireReadAccess(ctx, poll.CommunityID, viewerID); err != nil {
		return nil, err
	}

	votes, err := s.pollRepo.ListVotes(ctx, pollID)
	if err != nil {
		return nil, err
	}

	optionCounts := make([]int, len(poll.Options))
	for _, vote := range votes {
		for _, index := range vote.SelectedOptions {
			if index < 0 || index >= len(optionCounts) {
				continue
			}
			optionCounts[index]++
		}
	}

	results := make([]dto.PollOptionTally, 0, len(poll.Options))
	for index, option := range poll.Options {
		percentage := 0.0
		if len(votes) > 0 {
			percentage = math.Round(float64(optionCounts[index])/float64(len(votes))*1000) / 10
		}
		results = append(results, dto.PollOptionTally{
			Index:      index,
			Option:     option,
			Votes:      optionCounts[index],
			Percentage: percentage,
		})
	}

	return &dto.PollResultsResponse{
		PollID:     poll.ID,
		Question:   poll.Question,
		TotalVotes: len(votes),
		Results:    results,
	}, nil
}

func toPostResponse(post *models.Post) dto.PostResponse {
	return dto.PostResponse{
		ID:          post.ID,
		CommunityID: post.CommunityID,
		UserID:      post.UserID,
		Text:        post.Text,
		Upvotes:     post.Upvotes,
		Downvotes:   post.Downvotes,
		Score:       post.Upvotes - post.Downvotes,
		CreatedAt:   post.CreatedAt,
	}
}

func (s *interactionServiceImpl) toPollResponse(poll *models.Poll) dto.PollResponse {
	return dto.PollResponse{
		ID:                 poll.ID,
		CommunityID:        poll.CommunityID,
		Question:           poll.Question,
		Options:            poll.Options,
		AllowMultipleVotes: poll.AllowMultipleVotes,
		ExpiresAt:          poll.ExpiresAt,
		Expired:            poll.Expired(s.now()),
		CreatedBy:          poll.CreatedBy,
		CreatedAt:          poll.CreatedAt,
	}
}
