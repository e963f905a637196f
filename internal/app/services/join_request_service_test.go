package services

import (
	"context"
	"errors"
	"testing"

	"github.com/akshat1423/scaleup-backend/internal/app/models"
	"github.com/akshat1423/scaleup-backend/internal/metrics"
	"github.com/akshat1423/scaleup-backend/internal/pkg/apperrors"
)

func newJoinRequestFixture(store *fakeStore) (JoinRequestService, *fakeNotifications) {
	notifications := &fakeNotifications{}
	notificationService := NewNotificationService(notifications, testLogger())
	memberships := NewMembershipService(
		&fakeMemberships{store: store},
		&fakeCommunities{store: store},
		&fakeUsers{store: store},
		notificationService,
		metrics.NewRegistry(),
		testLogger(),
	)
	service := NewJoinRequestService(
		&fakeJoinRequests{store: store},
		&fakeCommunities{store: store},
		&fakeMemberships{store: store},
		memberships,
		notificationService,
		testLogger(),
	)
	return service, notifications
}

func seedPrivateCommunity(store *fakeStore, owner *models.User) *models.Community {
	community := store.addCommunity(&models.Community{
		Name:           "Sanctum",
		PrivacySetting: models.CommunityPrivate,
		CreatedBy:      owner.ID,
	})
	store.members[community.ID][owner.ID] = true
	community.MemberCount++
	return community
}

func TestRequestToJoinLifecycle(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser(&models.User{Name: "Owner"})
	applicant := store.addUser(&models.User{Name: "Applicant"})
	community := seedPrivateCommunity(store, owner)
	service, notifications := newJoinRequestFixture(store)
	ctx := context.Background()

	request, err := service.RequestToJoin(ctx, community.ID, applicant.ID, "let me in")
	if err != nil {
		t.Fatalf("RequestToJoin failed: %v", err)
	}
	if request.Status != string(models.JoinRequestPending) {
		t.Fatalf("expected pending status, got %s", request.Status)
	}

	// Duplicate pending requests are rejected
	_, err = service.RequestToJoin(ctx, community.ID, applicant.ID, "again")
	if !errors.Is(err, apperrors.ErrRequestAlreadyPending) {
		t.Fatalf("expected ErrRequestAlreadyPending, got %v", err)
	}

	resolved, err := service.Review(ctx, request.ID, owner.ID, true)
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	if resolved.Status != string(models.JoinRequestApproved) {
		t.Fatalf("expected approved, got %s", resolved.Status)
	}
	if !store.members[community.ID][applicant.ID] {
		t.Fatalf("approval must enroll the applicant")
	}
	if store.communities[community.ID].MemberCount != 2 {
		t.Fatalf("expected member count 2, got %d", store.communities[community.ID].MemberCount)
	}

	var sawApproval bool
	for _, notification := range notifications.sent {
		if notification.UserID == applicant.ID && notification.Type == models.NotificationJoinApproved {
			sawApproval = true
		}
	}
	if !sawApproval {
		t.Fatalf("expected approval notification, got %+v", notifications.sent)
	}

	// Terminal states stay terminal
	_, err = service.Review(ctx, request.ID, owner.ID, false)
	if !errors.Is(err, apperrors.ErrRequestAlreadyClosed) {
		t.Fatalf("expected ErrRequestAlreadyClosed, got %v", err)
	}
}

func TestRequestToJoinGates(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser(&models.User{Name: "Owner"})
	applicant := store.addUser(&models.User{Name: "Applicant"})
	public := store.addCommunity(&models.Community{Name: "Agora", PrivacySetting: models.CommunityPublic})
	restricted := store.addCommunity(&models.Community{Name: "Board", PrivacySetting: models.CommunityRestricted})
	private := seedPrivateCommunity(store, owner)
	service, _ := newJoinRequestFixture(store)
	ctx := context.Background()

	if _, err := service.RequestToJoin(ctx, public.ID, applicant.ID, ""); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("public community should reject request flow, got %v", err)
	}
	if _, err := service.RequestToJoin(ctx, restricted.ID, applicant.ID, ""); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("restricted community should deny requests, got %v", err)
	}
	if _, err := service.RequestToJoin(ctx, private.ID, owner.ID, ""); !errors.Is(err, apperrors.ErrAlreadyMember) {
		t.Fatalf("existing member should get ErrAlreadyMember, got %v", err)
	}
}

func TestReviewRequiresMembership(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser(&models.User{Name: "Owner"})
	applicant := store.addUser(&models.User{Name: "Applicant"})
	stranger := store.addUser(&models.User{Name: "Stranger"})
	community := seedPrivateCommunity(store, owner)
	service, _ := newJoinRequestFixture(store)
	ctx := context.Background()

	request, err := service.RequestToJoin(ctx, community.ID, applicant.ID, "")
	if err != nil {
		t.Fatalf("RequestToJoin failed: %v", err)
	}

	if _, err := service.Review(ctx, request.ID, stranger.ID, true); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("non-member reviewer must be denied, got %v", err)
	}
	if _, err := service.ListPending(ctx, community.ID, stranger.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("non-member must not list the queue, got %v", err)
	}

	pending, err := service.ListPending(ctx, community.ID, owner.ID)
	if err != nil {
		t.Fatalf("ListPending failed: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != request.ID {
		t.Fatalf("expected the filed request in the queue, got %v", pending)
	}
}

func TestReviewReject(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser(&models.User{Name: "Owner"})
	applicant := store.addUser(&models.User{Name: "Applicant"})
	community := seedPrivateCommunity(store, owner)
	service, notifications := newJoinRequestFixture(store)
	ctx := context.Background()

	request, err := service.RequestToJoin(ctx, community.ID, applicant.ID, "")
	if err != nil {
		t.Fatalf("RequestToJoin failed: %v", err)
	}

	resolved, err := service.Review(ctx, request.ID, owner.ID, false)
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	if resolved.Status != string(models.JoinRequestRejected) {
		t.Fatalf("expected rejected, got %s", resolved.Status)
	}
	if store.members[community.ID][applicant.ID] {
		t.Fatalf("rejection must not enroll the applicant")
	}

	var sawRejection bool
	for _, notification := range notifications.sent {
		if notification.UserID == applicant.ID && notification.Type == models.NotificationJoinRejected {
			sawRejection = true
		}
	}
	if !sawRejection {
		t.Fatalf("expected rejection notification")
	}
}
