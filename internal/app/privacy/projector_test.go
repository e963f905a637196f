package privacy

import (
	"testing"

	"github.com/akshat1423/scaleup-backend/internal/app/models"
)

func fullProfile() *models.User {
	year := 2026
	picture := "https://cdn.example.com/p/42.png"
	return &models.User{
		ID:                42,
		Name:              "Ada Lovelace",
		Email:             "ada@campus.edu",
		Biography:         "First programmer",
		Major:             "Mathematics",
		GraduationYear:    &year,
		Location:          "London",
		Timezone:          "Europe/London",
		PhoneNumber:       "+44 20 1234 5678",
		LinkedinURL:       "https://linkedin.com/in/ada",
		GithubURL:         "https://github.com/ada",
		Interests:         []string{"analytical engines"},
		ClubMemberships:   []string{"math society"},
		EnrolledCourses:   []string{"CS101"},
		ProfilePictureURL: &picture,
	}
}

func TestIsFieldVisible(t *testing.T) {
	tests := []struct {
		level Level
		rel   Relationship
		want  bool
	}{
		{LevelPublic, RelationshipPublic, true},
		{LevelPublic, RelationshipCommunityMember, true},
		{LevelPublic, RelationshipFriend, true},
		{LevelPublic, RelationshipSelf, true},
		{LevelCommunityMembers, RelationshipPublic, false},
		{LevelCommunityMembers, RelationshipCommunityMember, true},
		{LevelCommunityMembers, RelationshipFriend, true},
		{LevelCommunityMembers, RelationshipSelf, true},
		{LevelFriends, RelationshipPublic, false},
		{LevelFriends, RelationshipCommunityMember, false},
		{LevelFriends, RelationshipFriend, true},
		{LevelFriends, RelationshipSelf, true},
		{LevelPrivate, RelationshipPublic, false},
		{LevelPrivate, RelationshipCommunityMember, false},
		{LevelPrivate, RelationshipFriend, false},
		{LevelPrivate, RelationshipSelf, true},
	}

	for _, tc := range tests {
		policy := Policy{FieldBiography: tc.level}
		if got := IsFieldVisible(FieldBiography, policy, tc.rel); got != tc.want {
			t.Errorf("level=%q rel=%q: expected %v, got %v", tc.level, tc.rel, tc.want, got)
		}
	}
}

func TestIsFieldVisibleFailsClosed(t *testing.T) {
	policy := Policy{FieldBiography: Level("everyone")}
	if IsFieldVisible(FieldBiography, policy, RelationshipSelf) {
		t.Fatalf("unknown level must not be visible, even to self")
	}
	if IsFieldVisible(FieldMajor, policy, RelationshipPublic) {
		t.Fatalf("field absent from policy must not be visible")
	}
}

func TestProjectSelfSeesEverythingPresent(t *testing.T) {
	user := fullProfile()
	policy := MergePolicy(map[string]string{
		"biography": "private",
		"email":     "friends",
		"interests": "community_members",
	})

	projected := Project(user, policy, RelationshipSelf)
	if len(projected) != len(Fields()) {
		t.Fatalf("self projection of a full profile: expected %d fields, got %d", len(Fields()), len(projected))
	}
}

func TestProjectExcludesRestrictedFields(t *testing.T) {
	user := fullProfile()
	policy := MergePolicy(map[string]string{"biography": "friends"})

	projected := Project(user, policy, RelationshipCommunityMember)
	if _, ok := projected[FieldBiography]; ok {
		t.Fatalf("biography at friends level must be hidden from a community member")
	}
	if _, ok := projected[FieldMajor]; !ok {
		t.Fatalf("public major should be visible to a community member")
	}
	// Defaults keep phone number private.
	if _, ok := projected[FieldPhoneNumber]; ok {
		t.Fatalf("phone number should stay private by default")
	}
}

func TestProjectNeverInventsAbsentFields(t *testing.T) {
	user := &models.User{ID: 7, Name: "Sparse", Email: "sparse@campus.edu"}
	projected := Project(user, DefaultPolicy(), RelationshipSelf)

	if len(projected) != 2 {
		t.Fatalf("expected only name and email, got %v", projected)
	}
	if _, ok := projected[FieldBiography]; ok {
		t.Fatalf("empty biography must not appear in the projection")
	}
}

func TestCompletion(t *testing.T) {
	if got := Completion(fullProfile()); got != 100 {
		t.Fatalf("full profile: expected 100, got %d", got)
	}
	if got := Completion(&models.User{}); got != 0 {
		t.Fatalf("empty profile: expected 0, got %d", got)
	}

	// 2 of 14 fields → round(14.28...) = 14.
	partial := &models.User{Name: "A", Email: "a@campus.edu"}
	if got := Completion(partial); got != 14 {
		t.Fatalf("partial profile: expected 14, got %d", got)
	}
}

func TestCompletionMonotonic(t *testing.T) {
	user := &models.User{Name: "A", Email: "a@campus.edu"}
	before := Completion(user)

	user.Biography = "now present"
	after := Completion(user)
	if after < before {
		t.Fatalf("filling a field decreased completion: %d -> %d", before, after)
	}

	user.Interests = []string{"go"}
	if final := Completion(user); final < after {
		t.Fatalf("filling a collection decreased completion: %d -> %d", after, final)
	}
}

func TestSuggestOrderAndContent(t *testing.T) {
	user := &models.User{Name: "A", Email: "a@campus.edu"}
	suggestions := Suggest(user)

	if len(suggestions) != len(Fields())-2 {
		t.Fatalf("expected %d suggestions, got %d", len(Fields())-2, len(suggestions))
	}
	// First incomplete field in canonical order is the profile picture.
	if suggestions[0].Field != FieldProfilePictureURL {
		t.Fatalf("expected first suggestion %q, got %q", FieldProfilePictureURL, suggestions[0].Field)
	}
	for _, s := range suggestions {
		if s.DisplayName == "" || s.Description == "" {
			t.Fatalf("suggestion for %q missing display text", s.Field)
		}
		if s.Field == FieldName || s.Field == FieldEmail {
			t.Fatalf("complete field %q must not be suggested", s.Field)
		}
	}

	// Deterministic: a second call yields the same order.
	again := Suggest(user)
	for i := range suggestions {
		if suggestions[i].Field != again[i].Field {
			t.Fatalf("suggestion order not stable at index %d", i)
		}
	}
}
