package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/akshat1423/scaleup-backend/internal/app/models"
	"github.com/akshat1423/scaleup-backend/internal/app/models/dto"
	"github.com/akshat1423/scaleup-backend/internal/pkg/apperrors"
	"github.com/akshat1423/scaleup-backend/internal/pkg/cache"
	"github.com/akshat1423/scaleup-backend/internal/pkg/helpers"
)

// countTimeout bounds the fan-out that decorates listings with counts. When
// a count query cannot finish in time the listing degrades to zero counts
// instead of failing.
const countTimeout = 15 * time.Second

// CommunityService defines the interface for community operations
type CommunityService interface {
	CreateCommunity(ctx context.Context, req *dto.CreateCommunityRequest, creatorID int64) (*dto.CommunityDetailResponse, error)
	ListTopLevel(ctx context.Context, viewerID int64, search string, page, pageSize int) (*dto.CommunityListResponse, error)
	GetSubCommunities(ctx context.Context, parentID, viewerID int64) ([]dto.CommunityView, error)
	GetCommunityDetails(ctx context.Context, communityID, viewerID int64) (*dto.CommunityDetailResponse, error)
	UpdateCommunity(ctx context.Context, communityID, actorID int64, req *dto.UpdateCommunityRequest) (*dto.CommunityDetailResponse, error)
	DeleteCommunity(ctx context.Context, communityID, actorID int64) error
}

type communityStore interface {
	Create(ctx context.Context, community *models.Community) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Community, error)
	ListTopLevel(ctx context.Context, search string, page, pageSize int) ([]models.Community, int64, error)
	ListChildren(ctx context.Context, parentID int64) ([]models.Community, error)
	Update(ctx context.Context, community *models.Community) error
	Delete(ctx context.Context, id int64) error
}

type membershipReader interface {
	AddMember(ctx context.Context, communityID, userID int64) error
	IsMember(ctx context.Context, communityID, userID int64) (bool, error)
	ListMemberIDs(ctx context.Context, communityID int64) ([]int64, error)
	ListUserCommunityIDs(ctx context.Context, userID int64) ([]int64, error)
}

type communityCounter interface {
	CountByCommunityIDs(ctx context.Context, communityIDs []int64) (map[int64]int, error)
}

// communityServiceImpl implements CommunityService
type communityServiceImpl struct {
	communityRepo    communityStore
	membershipRepo   membershipReader
	postCounter      communityCounter
	pollCounter      communityCounter
	eventCounter     communityCounter
	announceCounter  communityCounter
	listingCache     cache.Cache
	listingCacheTTL  time.Duration
	logger           zerolog.Logger
}

// NewCommunityService creates a new CommunityService
func NewCommunityService(
	communityRepo communityStore,
	membershipRepo membershipReader,
	postCounter communityCounter,
	pollCounter communityCounter,
	eventCounter communityCounter,
	announceCounter communityCounter,
	listingCache cache.Cache,
	listingCacheTTL time.Duration,
	logger zerolog.Logger,
) CommunityService {
	return &communityServiceImpl{
		communityRepo:   communityRepo,
		membershipRepo:  membershipRepo,
		postCounter:     postCounter,
		pollCounter:     pollCounter,
		eventCounter:    eventCounter,
		announceCounter: announceCounter,
		listingCache:    listingCache,
		listingCacheTTL: listingCacheTTL,
		logger:          logger,
	}
}

func listingCacheKey(search string, page, pageSize int) string {
	return fmt.Sprintf("communities:top:%s:%d:%d", search, page, pageSize)
}

// CreateCommunity creates a community and enrolls the creator as its first
// member. Sub-communities can only hang off top-level parents; the tree is
// two levels deep.
func (s *communityServiceImpl) CreateCommunity(ctx context.Context, req *dto.CreateCommunityRequest, creatorID int64) (*dto.CommunityDetailResponse, error) {
	if req.ParentID != nil {
		parent, err := s.communityRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.ParentID != nil {
			return nil, apperrors.NewValidationError(map[string]string{
				"parentId": "sub-communities cannot have children of their own",
			})
		}
	}
	if req.MaxMembers != nil && *req.MaxMembers < 1 {
		return nil, apperrors.NewValidationError(map[string]string{
			"maxMembers": "must be at least 1",
		})
	}

	community := &models.Community{
		Name:           req.Name,
		ParentID:       req.ParentID,
		Description:    req.Description,
		PrivacySetting: models.CommunityPrivacy(req.PrivacySetting),
		Rules:          req.Rules,
		Tags:           req.Tags,
		MaxMembers:     req.MaxMembers,
		CreatedBy:      creatorID,
	}

	id, err := s.communityRepo.Create(ctx, community)
	if err != nil {
		return nil, err
	}

	if err := s.membershipRepo.AddMember(ctx, id, creatorID); err != nil {
		s.logger.Error().Err(err).
			Int64("communityId", id).
			Int64("userId", creatorID).
			Msg("Failed to enroll creator into new community")
	}

	s.listingCache.Delete(listingCacheKey("", 1, helpers.DefaultPageSize))
	s.logger.Info().
		Int64("communityId", id).
		Int64("createdBy", creatorID).
		Str("name", req.Name).
		Msg("Community created")

	return s.GetCommunityDetails(ctx, id, creatorID)
}

// ListTopLevel retrieves the paginated root community listing. Member counts
// and membership flags are always read live; only the post-count fan-out is
// cached briefly.
func (s *communityServiceImpl) ListTopLevel(ctx context.Context, viewerID int64, search string, page, pageSize int) (*dto.CommunityListResponse, error) {
	communities, total, err := s.communityRepo.ListTopLevel(ctx, search, page, pageSize)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(communities))
	for _, community := range communities {
		ids = append(ids, community.ID)
	}

	cacheKey := listingCacheKey(search, page, pageSize)
	var postCounts map[int64]int
	if !s.listingCache.Get(cacheKey, &postCounts) {
		postCounts = s.gatherPostCounts(ctx, ids)
		s.listingCache.Set(cacheKey, postCounts, s.listingCacheTTL)
	}

	memberOf := s.viewerCommunitySet(ctx, viewerID)

	views := make([]dto.CommunityView, 0, len(communities))
	for _, community := range communities {
		_, isMember := memberOf[community.ID]
		views = append(views, toCommunityView(&community, postCounts[community.ID], isMember))
	}

	return &dto.CommunityListResponse{
		Communities: views,
		Pagination:  helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// GetSubCommunities retrieves the direct children of a community
func (s *communityServiceImpl) GetSubCommunities(ctx context.Context, parentID, viewerID int64) ([]dto.CommunityView, error) {
	if _, err := s.communityRepo.GetByID(ctx, parentID); err != nil {
		return nil, err
	}

	children, err := s.communityRepo.ListChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(children))
	for _, child := range children {
		ids = append(ids, child.ID)
	}

	postCounts := s.gatherPostCounts(ctx, ids)
	memberOf := s.viewerCommunitySet(ctx, viewerID)

	views := make([]dto.CommunityView, 0, len(children))
	for _, child := range children {
		_, isMember := memberOf[child.ID]
		views = append(views, toCommunityView(&child, postCounts[child.ID], isMember))
	}
	return views, nil
}

// GetCommunityDetails retrieves the full view of one community, fanning out
// for member IDs and content counts concurrently
func (s *communityServiceImpl) GetCommunityDetails(ctx context.Context, communityID, viewerID int64) (*dto.CommunityDetailResponse, error) {
	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return nil, err
	}

	groupCtx, cancel := context.WithTimeout(ctx, countTimeout)
	defer cancel()

	var (
		memberIDs []int64
		isMember  bool
		counts    = make([]map[int64]int, 4)
	)
	ids := []int64{communityID}

	g, groupCtx := errgroup.WithContext(groupCtx)
	g.Go(func() error {
		var err error
		memberIDs, err = s.membershipRepo.ListMemberIDs(groupCtx, communityID)
		return err
	})
	g.Go(func() error {
		var err error
		isMember, err = s.membershipRepo.IsMember(groupCtx, communityID, viewerID)
		return err
	})
	for i, counter := range []communityCounter{s.postCounter, s.pollCounter, s.eventCounter, s.announceCounter} {
		i, counter := i, counter
		g.Go(func() error {
			result, err := counter.CountByCommunityIDs(groupCtx, ids)
			if err != nil {
				s.logger.Warn().Err(err).
					Int64("communityId", communityID).
					Msg("Count query failed, degrading to zero")
				result = map[int64]int{}
			}
			counts[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if memberIDs == nil {
		memberIDs = []int64{}
	}

	return &dto.CommunityDetailResponse{
		ID:                community.ID,
		Name:              community.Name,
		ParentID:          community.ParentID,
		Description:       community.Description,
		PrivacySetting:    string(community.PrivacySetting),
		Rules:             community.Rules,
		Tags:              community.Tags,
		MaxMembers:        community.MaxMembers,
		MemberCount:       community.MemberCount,
		MemberIDs:         memberIDs,
		PostCount:         counts[0][communityID],
		PollCount:         counts[1][communityID],
		EventCount:        counts[2][communityID],
		AnnouncementCount: counts[3][communityID],
		IsMember:          isMember,
		CreatedBy:         community.CreatedBy,
		CreatedAt:         community.CreatedAt,
	}, nil
}

// UpdateCommunity applies the given changes. Only the creator may update.
func (s *communityServiceImpl) UpdateCommunity(ctx context.Context, communityID, actorID int64, req *dto.UpdateCommunityRequest) (*dto.CommunityDetailResponse, error) {
	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return nil, err
	}
	if community.CreatedBy != actorID {
		return nil, apperrors.NewForbiddenError("Only the community creator can update it")
	}

	if req.Name != nil {
		community.Name = *req.Name
	}
	if req.Description != nil {
		community.Description = *req.Description
	}
	if req.PrivacySetting != nil {
		community.PrivacySetting = models.CommunityPrivacy(*req.PrivacySetting)
	}
	if req.Rules != nil {
		community.Rules = *req.Rules
	}
	if req.Tags != nil {
		community.Tags = *req.Tags
	}
	if req.MaxMembers != nil {
		if *req.MaxMembers < community.MemberCount {
			return nil, apperrors.NewValidationError(map[string]string{
				"maxMembers": "cannot be lower than the current member count",
			})
		}
		community.MaxMembers = req.MaxMembers
	}

	if err := s.communityRepo.Update(ctx, community); err != nil {
		return nil, err
	}

	s.listingCache.Delete(listingCacheKey("", 1, helpers.DefaultPageSize))
	return s.GetCommunityDetails(ctx, communityID, actorID)
}

// DeleteCommunity removes a community. Only the creator may delete.
func (s *communityServiceImpl) DeleteCommunity(ctx context.Context, communityID, actorID int64) error {
	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return err
	}
	if community.CreatedBy != actorID {
		return apperrors.NewForbiddenError("Only the community creator can delete it")
	}

	if err := s.communityRepo.Delete(ctx, communityID); err != nil {
		return err
	}

	s.listingCache.Delete(listingCacheKey("", 1, helpers.DefaultPageSize))
	s.logger.Info().
		Int64("communityId", communityID).
		Int64("deletedBy", actorID).
		Msg("Community deleted")
	return nil
}

// gatherPostCounts fetches post counts with a bounded context, returning an
// empty map instead of failing the listing
func (s *communityServiceImpl) gatherPostCounts(ctx context.Context, ids []int64) map[int64]int {
	countCtx, cancel := context.WithTimeout(ctx, countTimeout)
	defer cancel()

	counts, err := s.postCounter.CountByCommunityIDs(countCtx, ids)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Post count query failed, degrading to zero")
		return map[int64]int{}
	}
	return counts
}

// viewerCommunitySet resolves the set of communities the viewer belongs to,
// degrading to an empty set on failure
func (s *communityServiceImpl) viewerCommunitySet(ctx context.Context, viewerID int64) map[int64]struct{} {
	memberOf := make(map[int64]struct{})
	if viewerID == 0 {
		return memberOf
	}

	ids, err := s.membershipRepo.ListUserCommunityIDs(ctx, viewerID)
	if err != nil {
		s.logger.Warn().Err(err).
			Int64("viewerId", viewerID).
			Msg("Membership lookup failed, listing without membership flags")
		return memberOf
	}
	for _, id := range ids {
		memberOf[id] = struct{}{}
	}
	return memberOf
}

func toCommunityView(community *models.Community, postCount int, isMember bool) dto.CommunityView {
	return dto.CommunityView{
		ID:             community.ID,
		Name:           community.Name,
		ParentID:       community.ParentID,
		Description:    community.Description,
		PrivacySetting: string(community.PrivacySetting),
		Tags:           community.Tags,
		MemberCount:    community.MemberCount,
		PostCount:      postCount,
		IsMember:       isMember,
	}
}
