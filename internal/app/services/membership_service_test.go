package services

import (
	"context"
	"errors"
	"testing"

	"github.com/akshat1423/scaleup-backend/internal/app/models"
	"github.com/akshat1423/scaleup-backend/internal/metrics"
	"github.com/akshat1423/scaleup-backend/internal/pkg/apperrors"
)

func newMembershipFixture(store *fakeStore) (MembershipService, *fakeNotifications) {
	notifications := &fakeNotifications{}
	service := NewMembershipService(
		&fakeMemberships{store: store},
		&fakeCommunities{store: store},
		&fakeUsers{store: store},
		NewNotificationService(notifications, testLogger()),
		metrics.NewRegistry(),
		testLogger(),
	)
	return service, notifications
}

func TestJoinLeaveRoundTrip(t *testing.T) {
	store := newFakeStore()
	user := store.addUser(&models.User{Name: "Ada"})
	community := store.addCommunity(&models.Community{
		Name:           "Robotics",
		PrivacySetting: models.CommunityPublic,
	})
	service, notifications := newMembershipFixture(store)
	ctx := context.Background()

	if err := service.Join(ctx, community.ID, user.ID); err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if got := store.communities[community.ID].MemberCount; got != 1 {
		t.Fatalf("expected member count 1 after join, got %d", got)
	}
	if len(notifications.sent) != 1 || notifications.sent[0].Type != models.NotificationWelcome {
		t.Fatalf("expected one welcome notification, got %+v", notifications.sent)
	}

	if err := service.Join(ctx, community.ID, user.ID); !errors.Is(err, apperrors.ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember on second join, got %v", err)
	}
	if got := store.communities[community.ID].MemberCount; got != 1 {
		t.Fatalf("duplicate join must not change member count, got %d", got)
	}

	if err := service.Leave(ctx, community.ID, user.ID); err != nil {
		t.Fatalf("Leave failed: %v", err)
	}
	if got := store.communities[community.ID].MemberCount; got != 0 {
		t.Fatalf("expected member count 0 after leave, got %d", got)
	}

	if err := service.Leave(ctx, community.ID, user.ID); !errors.Is(err, apperrors.ErrNotAMember) {
		t.Fatalf("expected ErrNotAMember on second leave, got %v", err)
	}
}

func TestJoinRespectsPrivacyGate(t *testing.T) {
	store := newFakeStore()
	user := store.addUser(&models.User{Name: "Ada"})
	private := store.addCommunity(&models.Community{
		Name:           "Secret Society",
		PrivacySetting: models.CommunityPrivate,
	})
	restricted := store.addCommunity(&models.Community{
		Name:           "Board",
		PrivacySetting: models.CommunityRestricted,
	})
	service, _ := newMembershipFixture(store)
	ctx := context.Background()

	if err := service.Join(ctx, private.ID, user.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected permission denied for private community, got %v", err)
	}
	if err := service.Join(ctx, restricted.ID, user.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected permission denied for restricted community, got %v", err)
	}
	if store.communities[private.ID].MemberCount != 0 || store.communities[restricted.ID].MemberCount != 0 {
		t.Fatalf("privacy-gated joins must not add members")
	}
}

func TestJoinCapacity(t *testing.T) {
	store := newFakeStore()
	a := store.addUser(&models.User{Name: "A"})
	b := store.addUser(&models.User{Name: "B"})
	c := store.addUser(&models.User{Name: "C"})
	community := store.addCommunity(&models.Community{
		Name:           "Tiny",
		PrivacySetting: models.CommunityPublic,
		MaxMembers:     intPtr(2),
	})
	service, _ := newMembershipFixture(store)
	ctx := context.Background()

	if err := service.Join(ctx, community.ID, a.ID); err != nil {
		t.Fatalf("first join failed: %v", err)
	}
	if err := service.Join(ctx, community.ID, b.ID); err != nil {
		t.Fatalf("second join failed: %v", err)
	}
	if err := service.Join(ctx, community.ID, c.ID); !errors.Is(err, apperrors.ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	if got := store.communities[community.ID].MemberCount; got != 2 {
		t.Fatalf("expected member count 2, got %d", got)
	}

	// Freeing a seat lets the next join through
	if err := service.Leave(ctx, community.ID, a.ID); err != nil {
		t.Fatalf("leave failed: %v", err)
	}
	if err := service.Join(ctx, community.ID, c.ID); err != nil {
		t.Fatalf("join after freed seat failed: %v", err)
	}
}

func TestAutoJoinByProfileMatch(t *testing.T) {
	store := newFakeStore()
	user := store.addUser(&models.User{
		Name:      "Ada",
		Major:     "Robotics",
		Interests: []string{"chess", "climbing"},
	})
	robotics := store.addCommunity(&models.Community{
		Name:           "Robotics Club",
		PrivacySetting: models.CommunityPublic,
		Tags:           []string{"robotics", "engineering"},
	})
	chess := store.addCommunity(&models.Community{
		Name:           "Chess",
		PrivacySetting: models.CommunityPublic,
	})
	store.addCommunity(&models.Community{
		Name:           "Knitting",
		PrivacySetting: models.CommunityPublic,
		Tags:           []string{"yarn"},
	})
	privateClimbing := store.addCommunity(&models.Community{
		Name:           "Climbing",
		PrivacySetting: models.CommunityPrivate,
		Tags:           []string{"climbing"},
	})
	service, _ := newMembershipFixture(store)
	ctx := context.Background()

	joined, err := service.AutoJoinByProfileMatch(ctx, user.ID)
	if err != nil {
		t.Fatalf("AutoJoinByProfileMatch failed: %v", err)
	}

	want := map[int64]bool{robotics.ID: true, chess.ID: true}
	if len(joined) != len(want) {
		t.Fatalf("expected %d joins, got %v", len(want), joined)
	}
	for _, id := range joined {
		if !want[id] {
			t.Fatalf("unexpected community joined: %d", id)
		}
	}
	if store.members[privateClimbing.ID][user.ID] {
		t.Fatalf("auto join must skip private communities")
	}

	// Idempotent: running again joins nothing new and does not fail
	again, err := service.AutoJoinByProfileMatch(ctx, user.ID)
	if err != nil {
		t.Fatalf("second AutoJoinByProfileMatch failed: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("expected no new joins on repeat, got %v", again)
	}
	if got := store.communities[robotics.ID].MemberCount; got != 1 {
		t.Fatalf("repeat auto join must not inflate member count, got %d", got)
	}
}

func TestAutoJoinSkipsFullCommunities(t *testing.T) {
	store := newFakeStore()
	occupant := store.addUser(&models.User{Name: "First"})
	user := store.addUser(&models.User{Name: "Ada", Interests: []string{"chess"}})
	full := store.addCommunity(&models.Community{
		Name:           "Chess",
		PrivacySetting: models.CommunityPublic,
		MaxMembers:     intPtr(1),
	})
	service, _ := newMembershipFixture(store)
	ctx := context.Background()

	if err := service.Join(ctx, full.ID, occupant.ID); err != nil {
		t.Fatalf("setup join failed: %v", err)
	}

	joined, err := service.AutoJoinByProfileMatch(ctx, user.ID)
	if err != nil {
		t.Fatalf("AutoJoinByProfileMatch failed: %v", err)
	}
	if len(joined) != 0 {
		t.Fatalf("expected full community to be skipped, got %v", joined)
	}
}
