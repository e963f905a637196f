package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akshat1423/scaleup-backend/internal/app/models"
	"github.com/akshat1423/scaleup-backend/internal/app/models/dto"
	"github.com/akshat1423/scaleup-backend/internal/metrics"
	"github.com/akshat1423/scaleup-backend/internal/pkg/apperrors"
)

func newInteractionFixture(store *fakeStore) InteractionService {
	return NewInteractionService(
		&fakePosts{store: store},
		&fakePolls{store: store},
		&fakeMemberships{store: store},
		&fakeCommunities{store: store},
		&fakeUsers{store: store},
		metrics.NewRegistry(),
		testLogger(),
	)
}

func seedCommunityWithMembers(store *fakeStore, users ...*models.User) *models.Community {
	community := store.addCommunity(&models.Community{
		Name:           "General",
		PrivacySetting: models.CommunityPublic,
	})
	for _, user := range users {
		store.members[community.ID][user.ID] = true
		community.MemberCount++
	}
	return community
}

func TestVotePostAwardsImpact(t *testing.T) {
	store := newFakeStore()
	author := store.addUser(&models.User{Name: "Author"})
	voter := store.addUser(&models.User{Name: "Voter"})
	community := seedCommunityWithMembers(store, author, voter)
	service := newInteractionFixture(store)
	ctx := context.Background()

	post, err := service.CreatePost(ctx, community.ID, author.ID, &dto.CreatePostRequest{Text: "hello"})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	updated, err := service.VotePost(ctx, post.ID, voter.ID, "up")
	if err != nil {
		t.Fatalf("VotePost failed: %v", err)
	}
	if updated.Upvotes != 1 || updated.Downvotes != 0 {
		t.Fatalf("expected 1 upvote, got %+v", updated)
	}
	if got := store.users[author.ID].Impact; got != 1 {
		t.Fatalf("expected author impact 1 after upvote, got %d", got)
	}

	// Downvotes count but never cost the author impact
	updated, err = service.VotePost(ctx, post.ID, voter.ID, "down")
	if err != nil {
		t.Fatalf("VotePost down failed: %v", err)
	}
	if updated.Downvotes != 1 {
		t.Fatalf("expected 1 downvote, got %+v", updated)
	}
	if got := store.users[author.ID].Impact; got != 1 {
		t.Fatalf("downvote must not change impact, got %d", got)
	}
}

func TestVotePostSelfVote(t *testing.T) {
	store := newFakeStore()
	author := store.addUser(&models.User{Name: "Author"})
	community := seedCommunityWithMembers(store, author)
	service := newInteractionFixture(store)
	ctx := context.Background()

	post, err := service.CreatePost(ctx, community.ID, author.ID, &dto.CreatePostRequest{Text: "self"})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	updated, err := service.VotePost(ctx, post.ID, author.ID, "up")
	if err != nil {
		t.Fatalf("VotePost failed: %v", err)
	}
	if updated.Upvotes != 1 {
		t.Fatalf("self vote must still count, got %+v", updated)
	}
	if got := store.users[author.ID].Impact; got != 0 {
		t.Fatalf("self vote must not award impact, got %d", got)
	}
}

func TestCreatePostRequiresMembership(t *testing.T) {
	store := newFakeStore()
	outsider := store.addUser(&models.User{Name: "Outsider"})
	community := seedCommunityWithMembers(store)
	service := newInteractionFixture(store)

	_, err := service.CreatePost(context.Background(), community.ID, outsider.ID, &dto.CreatePostRequest{Text: "nope"})
	if !errors.Is(err, apperrors.ErrNotAMember) {
		t.Fatalf("expected ErrNotAMember, got %v", err)
	}
}

func TestVotePollSingleVoteReplaces(t *testing.T) {
	store := newFakeStore()
	member := store.addUser(&models.User{Name: "Member"})
	community := seedCommunityWithMembers(store, member)
	service := newInteractionFixture(store)
	ctx := context.Background()

	poll, err := service.CreatePoll(ctx, community.ID, member.ID, &dto.CreatePollRequest{
		Question: "Pizza?",
		Options:  []string{"yes", "no"},
	})
	if err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}

	if err := service.VotePoll(ctx, poll.ID, member.ID, []int{0}); err != nil {
		t.Fatalf("first vote failed: %v", err)
	}
	if err := service.VotePoll(ctx, poll.ID, member.ID, []int{1}); err != nil {
		t.Fatalf("second vote failed: %v", err)
	}

	tally, err := service.TallyPoll(ctx, poll.ID, member.ID)
	if err != nil {
		t.Fatalf("TallyPoll failed: %v", err)
	}
	if tally.TotalVotes != 1 {
		t.Fatalf("single-vote poll must keep one ballot, got %d", tally.TotalVotes)
	}
	if tally.Results[0].Votes != 0 || tally.Results[1].Votes != 1 {
		t.Fatalf("expected the new ballot to replace the old one, got %+v", tally.Results)
	}
	if tally.Results[1].Percentage != 100 {
		t.Fatalf("expected 100%% on the only voted option, got %v", tally.Results[1].Percentage)
	}
}

func TestVotePollMultiVoteAccumulates(t *testing.T) {
	store := newFakeStore()
	member := store.addUser(&models.User{Name: "Member"})
	community := seedCommunityWithMembers(store, member)
	service := newInteractionFixture(store)
	ctx := context.Background()

	poll, err := service.CreatePoll(ctx, community.ID, member.ID, &dto.CreatePollRequest{
		Question:           "Toppings?",
		Options:            []string{"cheese", "olives", "basil"},
		AllowMultipleVotes: true,
	})
	if err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}

	if err := service.VotePoll(ctx, poll.ID, member.ID, []int{0, 1}); err != nil {
		t.Fatalf("first ballot failed: %v", err)
	}
	if err := service.VotePoll(ctx, poll.ID, member.ID, []int{2}); err != nil {
		t.Fatalf("second ballot failed: %v", err)
	}

	tally, err := service.TallyPoll(ctx, poll.ID, member.ID)
	if err != nil {
		t.Fatalf("TallyPoll failed: %v", err)
	}
	if tally.TotalVotes != 2 {
		t.Fatalf("expected 2 ballots, got %d", tally.TotalVotes)
	}
	if tally.Results[0].Votes != 1 || tally.Results[1].Votes != 1 || tally.Results[2].Votes != 1 {
		t.Fatalf("expected selections to accumulate, got %+v", tally.Results)
	}
}

func TestVotePollExpired(t *testing.T) {
	store := newFakeStore()
	member := store.addUser(&models.User{Name: "Member"})
	community := seedCommunityWithMembers(store, member)
	service := newInteractionFixture(store)
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	poll := &models.Poll{
		CommunityID: community.ID,
		Question:    "Too late?",
		Options:     []string{"yes", "no"},
		ExpiresAt:   &past,
		CreatedBy:   member.ID,
	}
	pollID, err := (&fakePolls{store: store}).Create(ctx, poll)
	if err != nil {
		t.Fatalf("setup poll failed: %v", err)
	}

	err = service.VotePoll(ctx, pollID, member.ID, []int{0})
	if !errors.Is(err, apperrors.ErrPollExpired) {
		t.Fatalf("expected ErrPollExpired, got %v", err)
	}
}

func TestVotePollValidatesOptions(t *testing.T) {
	store := newFakeStore()
	member := store.addUser(&models.User{Name: "Member"})
	community := seedCommunityWithMembers(store, member)
	service := newInteractionFixture(store)
	ctx := context.Background()

	poll, err := service.CreatePoll(ctx, community.ID, member.ID, &dto.CreatePollRequest{
		Question: "Range?",
		Options:  []string{"a", "b"},
	})
	if err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}

	cases := []struct {
		name    string
		options []int
	}{
		{"out of range", []int{5}},
		{"negative", []int{-1}},
		{"empty", nil},
		{"multiple on single-vote poll", []int{0, 1}},
	}
	for _, tc := range cases {
		err := service.VotePoll(ctx, poll.ID, member.ID, tc.options)
		if !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}
