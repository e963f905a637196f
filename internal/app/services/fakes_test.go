package services

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/akshat1423/scaleup-backend/internal/app/models"
	"github.com/akshat1423/scaleup-backend/internal/pkg/apperrors"
)

// fakeStore is a single in-memory backing store shared by the fake
// repositories, so membership mutations are visible to every fake.
type fakeStore struct {
	users       map[int64]*models.User
	communities map[int64]*models.Community
	members     map[int64]map[int64]bool // communityID -> userID
	posts       map[int64]*models.Post
	polls       map[int64]*models.Poll
	pollVotes   []models.PollVote
	requests    map[int64]*models.JoinRequest
	nextID      int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       make(map[int64]*models.User),
		communities: make(map[int64]*models.Community),
		members:     make(map[int64]map[int64]bool),
		posts:       make(map[int64]*models.Post),
		polls:       make(map[int64]*models.Poll),
		requests:    make(map[int64]*models.JoinRequest),
		nextID:      1,
	}
}

func (f *fakeStore) id() int64 {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeStore) addUser(user *models.User) *models.User {
	if user.ID == 0 {
		user.ID = f.id()
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeStore) addCommunity(community *models.Community) *models.Community {
	if community.ID == 0 {
		community.ID = f.id()
	}
	f.communities[community.ID] = community
	if f.members[community.ID] == nil {
		f.members[community.ID] = make(map[int64]bool)
	}
	return community
}

// fakeMemberships implements the membership store contracts
type fakeMemberships struct{ store *fakeStore }

func (f *fakeMemberships) AddMember(_ context.Context, communityID, userID int64) error {
	community, ok := f.store.communities[communityID]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	members := f.store.members[communityID]
	if members[userID] {
		return apperrors.ErrAlreadyMember
	}
	if community.MaxMembers != nil && community.MemberCount >= *community.MaxMembers {
		return apperrors.ErrCapacityExceeded
	}
	members[userID] = true
	community.MemberCount++
	return nil
}

func (f *fakeMemberships) RemoveMember(_ context.Context, communityID, userID int64) error {
	community, ok := f.store.communities[communityID]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	members := f.store.members[communityID]
	if !members[userID] {
		return apperrors.ErrNotAMember
	}
	delete(members, userID)
	community.MemberCount--
	return nil
}

func (f *fakeMemberships) IsMember(_ context.Context, communityID, userID int64) (bool, error) {
	return f.store.members[communityID][userID], nil
}

func (f *fakeMemberships) ListMemberIDs(_ context.Context, communityID int64) ([]int64, error) {
	var ids []int64
	for id := range f.store.members[communityID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeMemberships) ListUserCommunityIDs(_ context.Context, userID int64) ([]int64, error) {
	var ids []int64
	for communityID, members := range f.store.members {
		if members[userID] {
			ids = append(ids, communityID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeMemberships) ShareCommunity(_ context.Context, userA, userB int64) (bool, error) {
	for _, members := range f.store.members {
		if members[userA] && members[userB] {
			return true, nil
		}
	}
	return false, nil
}

// fakeCommunities implements the community store contracts
type fakeCommunities struct{ store *fakeStore }

func (f *fakeCommunities) Create(_ context.Context, community *models.Community) (int64, error) {
	created := *community
	created.CreatedAt = time.Now()
	f.store.addCommunity(&created)
	community.ID = created.ID
	return created.ID, nil
}

func (f *fakeCommunities) GetByID(_ context.Context, id int64) (*models.Community, error) {
	community, ok := f.store.communities[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	copied := *community
	return &copied, nil
}

func (f *fakeCommunities) ListAll(_ context.Context) ([]models.Community, error) {
	var out []models.Community
	for _, community := range f.store.communities {
		out = append(out, *community)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCommunities) ListTopLevel(_ context.Context, search string, page, pageSize int) ([]models.Community, int64, error) {
	var out []models.Community
	for _, community := range f.store.communities {
		if community.ParentID == nil {
			out = append(out, *community)
		}
	}
	// newest first, matching the real repository ordering
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeCommunities) ListChildren(_ context.Context, parentID int64) ([]models.Community, error) {
	var out []models.Community
	for _, community := range f.store.communities {
		if community.ParentID != nil && *community.ParentID == parentID {
			out = append(out, *community)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCommunities) Update(_ context.Context, community *models.Community) error {
	if _, ok := f.store.communities[community.ID]; !ok {
		return apperrors.ErrResourceNotFound
	}
	copied := *community
	f.store.communities[community.ID] = &copied
	return nil
}

func (f *fakeCommunities) Delete(_ context.Context, id int64) error {
	if _, ok := f.store.communities[id]; !ok {
		return apperrors.ErrResourceNotFound
	}
	delete(f.store.communities, id)
	delete(f.store.members, id)
	return nil
}

// fakeUsers implements the user store contracts
type fakeUsers struct{ store *fakeStore }

func (f *fakeUsers) Create(_ context.Context, user *models.User) (int64, error) {
	for _, existing := range f.store.users {
		if existing.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	created := *user
	f.store.addUser(&created)
	return created.ID, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.store.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.store.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUsers) UpdateProfile(_ context.Context, user *models.User) error {
	if _, ok := f.store.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	copied := *user
	f.store.users[user.ID] = &copied
	return nil
}

func (f *fakeUsers) UpdatePrivacySettings(_ context.Context, userID int64, settings map[string]string) error {
	user, ok := f.store.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.PrivacySettings = settings
	return nil
}

func (f *fakeUsers) IncrementImpact(_ context.Context, userID int64, delta int) error {
	user, ok := f.store.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Impact += delta
	if user.Impact < 0 {
		user.Impact = 0
	}
	return nil
}

func (f *fakeUsers) AddFriend(_ context.Context, userID, friendID int64) error {
	user, ok := f.store.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	for _, existing := range user.Friends {
		if existing == friendID {
			return nil
		}
	}
	user.Friends = append(user.Friends, friendID)
	return nil
}

// fakePosts implements the post store contract
type fakePosts struct{ store *fakeStore }

func (f *fakePosts) Create(_ context.Context, post *models.Post) (int64, error) {
	created := *post
	created.ID = f.store.id()
	created.CreatedAt = time.Now()
	f.store.posts[created.ID] = &created
	return created.ID, nil
}

func (f *fakePosts) GetByID(_ context.Context, id int64) (*models.Post, error) {
	post, ok := f.store.posts[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	copied := *post
	return &copied, nil
}

func (f *fakePosts) ListByCommunity(_ context.Context, communityID int64, page, pageSize int) ([]models.Post, int64, error) {
	var out []models.Post
	for _, post := range f.store.posts {
		if post.CommunityID == communityID {
			out = append(out, *post)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakePosts) ApplyVote(_ context.Context, postID int64, up bool) (*models.Post, error) {
	post, ok := f.store.posts[postID]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	if up {
		post.Upvotes++
	} else {
		post.Downvotes++
	}
	copied := *post
	return &copied, nil
}

func (f *fakePosts) CountByCommunityIDs(_ context.Context, communityIDs []int64) (map[int64]int, error) {
	counts := make(map[int64]int)
	for _, post := range f.store.posts {
		counts[post.CommunityID]++
	}
	return counts, nil
}

// fakePolls implements the poll store contract
type fakePolls struct{ store *fakeStore }

func (f *fakePolls) Create(_ context.Context, poll *models.Poll) (int64, error) {
	created := *poll
	created.ID = f.store.id()
	created.CreatedAt = time.Now()
	f.store.polls[created.ID] = &created
	return created.ID, nil
}

func (f *fakePolls) GetByID(_ context.Context, id int64) (*models.Poll, error) {
	poll, ok := f.store.polls[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	copied := *poll
	return &copied, nil
}

func (f *fakePolls) ListByCommunity(_ context.Context, communityID int64) ([]models.Poll, error) {
	var out []models.Poll
	for _, poll := range f.store.polls {
		if poll.CommunityID == communityID {
			out = append(out, *poll)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakePolls) AddVote(_ context.Context, vote *models.PollVote) error {
	added := *vote
	added.ID = f.store.id()
	added.VotedAt = time.Now()
	f.store.pollVotes = append(f.store.pollVotes, added)
	return nil
}

func (f *fakePolls) ReplaceVote(ctx context.Context, vote *models.PollVote) error {
	kept := f.store.pollVotes[:0]
	for _, existing := range f.store.pollVotes {
		if existing.PollID == vote.PollID && existing.UserID == vote.UserID {
			continue
		}
		kept = append(kept, existing)
	}
	f.store.pollVotes = kept
	return f.AddVote(ctx, vote)
}

func (f *fakePolls) ListVotes(_ context.Context, pollID int64) ([]models.PollVote, error) {
	var out []models.PollVote
	for _, vote := range f.store.pollVotes {
		if vote.PollID == pollID {
			out = append(out, vote)
		}
	}
	return out, nil
}

func (f *fakePolls) CountByCommunityIDs(_ context.Context, communityIDs []int64) (map[int64]int, error) {
	counts := make(map[int64]int)
	for _, poll := range f.store.polls {
		counts[poll.CommunityID]++
	}
	return counts, nil
}

// fakeJoinRequests implements the join request store contract
type fakeJoinRequests struct{ store *fakeStore }

func (f *fakeJoinRequests) Create(_ context.Context, request *models.JoinRequest) (int64, error) {
	for _, existing := range f.store.requests {
		if existing.CommunityID == request.CommunityID &&
			existing.UserID == request.UserID &&
			existing.Status == models.JoinRequestPending {
			return 0, apperrors.ErrRequestAlreadyPending
		}
	}
	created := *request
	created.ID = f.store.id()
	created.Status = models.JoinRequestPending
	created.CreatedAt = time.Now()
	f.store.requests[created.ID] = &created
	return created.ID, nil
}

func (f *fakeJoinRequests) GetByID(_ context.Context, id int64) (*models.JoinRequest, error) {
	request, ok := f.store.requests[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	copied := *request
	return &copied, nil
}

func (f *fakeJoinRequests) ListPendingByCommunity(_ context.Context, communityID int64) ([]models.JoinRequest, error) {
	var out []models.JoinRequest
	for _, request := range f.store.requests {
		if request.CommunityID == communityID && request.Status == models.JoinRequestPending {
			out = append(out, *request)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeJoinRequests) Resolve(_ context.Context, id int64, status models.JoinRequestStatus, reviewerID int64) error {
	request, ok := f.store.requests[id]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	if request.Status != models.JoinRequestPending {
		return apperrors.ErrRequestAlreadyClosed
	}
	now := time.Now()
	request.Status = status
	request.ReviewedBy = &reviewerID
	request.ReviewedAt = &now
	return nil
}

// fakeNotifications records notifications in memory
type fakeNotifications struct {
	sent []models.Notification
}

func (f *fakeNotifications) Create(_ context.Context, notification *models.Notification) (int64, error) {
	created := *notification
	created.ID = int64(len(f.sent) + 1)
	f.sent = append(f.sent, created)
	return created.ID, nil
}

func (f *fakeNotifications) ListByUser(_ context.Context, userID int64, unreadOnly bool) ([]models.Notification, error) {
	var out []models.Notification
	for _, notification := range f.sent {
		if notification.UserID != userID {
			continue
		}
		if unreadOnly && notification.Read {
			continue
		}
		out = append(out, notification)
	}
	return out, nil
}

func (f *fakeNotifications) MarkRead(_ context.Context, notificationID, userID int64) error {
	for i := range f.sent {
		if f.sent[i].ID == notificationID && f.sent[i].UserID == userID {
			f.sent[i].Read = true
			return nil
		}
	}
	return apperrors.ErrResourceNotFound
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
