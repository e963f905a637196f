package services

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/akshat1423/scaleup-backend/internal/app/models"
	"github.com/akshat1423/scaleup-backend/internal/app/models/dto"
	"github.com/akshat1423/scaleup-backend/internal/pkg/apperrors"
)

type fakeEvents struct {
	store  *fakeStore
	events map[int64]*models.Event
}

func newFakeEvents(store *fakeStore) *fakeEvents {
	return &fakeEvents{store: store, events: make(map[int64]*models.Event)}
}

func (f *fakeEvents) Create(_ context.Context, event *models.Event) (int64, error) {
	created := *event
	created.ID = f.store.id()
	created.CreatedAt = time.Now()
	f.events[created.ID] = &created
	return created.ID, nil
}

func (f *fakeEvents) GetByID(_ context.Context, id int64) (*models.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	copied := *event
	return &copied, nil
}

func (f *fakeEvents) ListUpcomingByCommunity(_ context.Context, communityID int64, after time.Time) ([]models.Event, error) {
	var out []models.Event
	for _, event := range f.events {
		if event.CommunityID == communityID && !event.EndsAt.Before(after) {
			out = append(out, *event)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

type fakeAnnouncements struct {
	store         *fakeStore
	announcements map[int64]*models.Announcement
}

func newFakeAnnouncements(store *fakeStore) *fakeAnnouncements {
	return &fakeAnnouncements{store: store, announcements: make(map[int64]*models.Announcement)}
}

func (f *fakeAnnouncements) Create(_ context.Context, announcement *models.Announcement) (int64, error) {
	created := *announcement
	created.ID = f.store.id()
	created.CreatedAt = time.Now()
	f.announcements[created.ID] = &created
	return created.ID, nil
}

func (f *fakeAnnouncements) ListByCommunity(_ context.Context, communityID int64) ([]models.Announcement, error) {
	var out []models.Announcement
	for _, announcement := range f.announcements {
		if announcement.CommunityID == communityID {
			out = append(out, *announcement)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type activityFixture struct {
	store         *fakeStore
	notifications *fakeNotifications
	service       ActivityService
}

func newActivityFixture() *activityFixture {
	store := newFakeStore()
	notifications := &fakeNotifications{}
	service := NewActivityService(
		newFakeEvents(store),
		newFakeAnnouncements(store),
		&fakeMemberships{store: store},
		&fakeCommunities{store: store},
		NewNotificationService(notifications, testLogger()),
		testLogger(),
	)
	return &activityFixture{store: store, notifications: notifications, service: service}
}

func (f *activityFixture) seedCommunity(creatorID int64, memberIDs ...int64) int64 {
	community := f.store.addCommunity(&models.Community{
		Name:           "Robotics Club",
		PrivacySetting: models.CommunityPublic,
		CreatedBy:      creatorID,
	})
	for _, id := range memberIDs {
		f.store.members[community.ID][id] = true
		community.MemberCount++
	}
	return community.ID
}

func TestCreateEventValidatesWindow(t *testing.T) {
	fixture := newActivityFixture()
	communityID := fixture.seedCommunity(1, 1)
	ctx := context.Background()
	starts := time.Now().Add(24 * time.Hour)

	_, err := fixture.service.CreateEvent(ctx, communityID, 1, &dto.CreateEventRequest{
		Title:    "Build night",
		StartsAt: starts,
		EndsAt:   starts.Add(-time.Hour),
	})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected validation failure for inverted window, got %v", err)
	}

	event, err := fixture.service.CreateEvent(ctx, communityID, 1, &dto.CreateEventRequest{
		Title:    "Build night",
		StartsAt: starts,
		EndsAt:   starts.Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if event.ID == 0 || event.Title != "Build night" {
		t.Fatalf("unexpected event response: %+v", event)
	}
}

func TestCreateEventRequiresMembership(t *testing.T) {
	fixture := newActivityFixture()
	communityID := fixture.seedCommunity(1, 1)
	starts := time.Now().Add(time.Hour)

	_, err := fixture.service.CreateEvent(context.Background(), communityID, 99, &dto.CreateEventRequest{
		Title:    "Crashed the party",
		StartsAt: starts,
		EndsAt:   starts.Add(time.Hour),
	})
	if !errors.Is(err, apperrors.ErrNotAMember) {
		t.Fatalf("expected ErrNotAMember, got %v", err)
	}
}

func TestListUpcomingEventsExcludesFinished(t *testing.T) {
	fixture := newActivityFixture()
	communityID := fixture.seedCommunity(1, 1)
	ctx := context.Background()

	impl := fixture.service.(*activityServiceImpl)
	past := time.Now().Add(-48 * time.Hour)
	if _, err := impl.eventRepo.Create(ctx, &models.Event{
		CommunityID: communityID,
		Title:       "Last semester kickoff",
		StartsAt:    past,
		EndsAt:      past.Add(time.Hour),
		CreatedBy:   1,
	}); err != nil {
		t.Fatalf("seeding past event: %v", err)
	}

	starts := time.Now().Add(time.Hour)
	if _, err := fixture.service.CreateEvent(ctx, communityID, 1, &dto.CreateEventRequest{
		Title:    "Demo day",
		StartsAt: starts,
		EndsAt:   starts.Add(time.Hour),
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	events, err := fixture.service.ListUpcomingEvents(ctx, communityID, 1)
	if err != nil {
		t.Fatalf("ListUpcomingEvents: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Demo day" {
		t.Fatalf("expected only the upcoming event, got %+v", events)
	}
}

func TestCreateAnnouncementCreatorOnlyAndFansOut(t *testing.T) {
	fixture := newActivityFixture()
	communityID := fixture.seedCommunity(1, 1, 2, 3)
	ctx := context.Background()

	_, err := fixture.service.CreateAnnouncement(ctx, communityID, 2, &dto.CreateAnnouncementRequest{
		Title: "Not my community",
		Body:  "should fail",
	})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for non-creator, got %v", err)
	}

	announcement, err := fixture.service.CreateAnnouncement(ctx, communityID, 1, &dto.CreateAnnouncementRequest{
		Title:  "Meeting moved",
		Body:   "We meet Thursday now",
		Pinned: true,
	})
	if err != nil {
		t.Fatalf("CreateAnnouncement: %v", err)
	}
	if !announcement.Pinned {
		t.Fatalf("expected pinned announcement")
	}

	// Members 2 and 3 are notified, the author is not
	if len(fixture.notifications.sent) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(fixture.notifications.sent))
	}
	for _, notification := range fixture.notifications.sent {
		if notification.UserID == 1 {
			t.Fatalf("author should not be notified of their own announcement")
		}
		if notification.Type != models.NotificationAnnouncement {
			t.Fatalf("unexpected notification type %q", notification.Type)
		}
	}

	announcements, err := fixture.service.ListAnnouncements(ctx, communityID, 2)
	if err != nil {
		t.Fatalf("ListAnnouncements: %v", err)
	}
	if len(announcements) != 1 {
		t.Fatalf("expected 1 announcement, got %d", len(announcements))
	}
}
