package privacy

import (
	"math"

	"github.com/akshat1423/scaleup-backend/internal/app/models"
)

// Relationship describes the viewer's standing relative to a profile subject
// at projection time.
type Relationship string

const (
	RelationshipPublic          Relationship = "public"
	RelationshipCommunityMember Relationship = "community_member"
	RelationshipFriend          Relationship = "friend"
	RelationshipSelf            Relationship = "self"
)

// IsFieldVisible reports whether a field may be shown to a viewer with the
// given relationship under the given policy. A missing or unknown level fails
// closed. Note there is no blanket self bypass: self sees everything because
// every level's rule admits self, not because the policy is skipped.
func IsFieldVisible(field Field, policy Policy, rel Relationship) bool {
	switch policy[field] {
	case LevelPublic:
		return true
	case LevelCommunityMembers:
		return rel == RelationshipCommunityMember || rel == RelationshipFriend || rel == RelationshipSelf
	case LevelFriends:
		return rel == RelationshipFriend || rel == RelationshipSelf
	case LevelPrivate:
		return rel == RelationshipSelf
	}
	return false
}

// Project filters a profile down to the fields the viewer may see. The result
// contains exactly the fields that are both visible under the policy and
// present on the profile; it never invents a field the profile does not carry.
func Project(user *models.User, policy Policy, rel Relationship) map[Field]any {
	projected := make(map[Field]any)
	for _, field := range fieldOrder {
		if !IsFieldVisible(field, policy, rel) {
			continue
		}
		if value, present := fieldValue(user, field); present {
			projected[field] = value
		}
	}
	return projected
}

// Completion returns the profile completion percentage (0..100) over the
// fixed field set. A field counts as complete when it holds a non-empty
// string, a non-nil value, or a non-empty collection.
func Completion(user *models.User) int {
	complete := 0
	for _, field := range fieldOrder {
		if _, present := fieldValue(user, field); present {
			complete++
		}
	}
	return int(math.Round(100 * float64(complete) / float64(len(fieldOrder))))
}

// Suggestion describes one incomplete profile field for the completion UI.
type Suggestion struct {
	Field       Field  `json:"field"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
}

var suggestionText = map[Field][2]string{
	FieldName:              {"Name", "Add your full name so people can recognize you"},
	FieldEmail:             {"Email", "Add a contact email address"},
	FieldProfilePictureURL: {"Profile picture", "Upload a profile picture"},
	FieldMajor:             {"Major", "Share what you are studying"},
	FieldGraduationYear:    {"Graduation year", "Add your expected graduation year"},
	FieldEnrolledCourses:   {"Courses", "List the courses you are enrolled in"},
	FieldBiography:         {"Biography", "Write a short bio about yourself"},
	FieldInterests:         {"Interests", "Add interests to find matching communities"},
	FieldClubMemberships:   {"Clubs", "List the clubs you are part of"},
	FieldLocation:          {"Location", "Share where you are based"},
	FieldTimezone:          {"Timezone", "Set your timezone for event scheduling"},
	FieldPhoneNumber:       {"Phone number", "Add a phone number"},
	FieldLinkedinURL:       {"LinkedIn", "Link your LinkedIn profile"},
	FieldGithubURL:         {"GitHub", "Link your GitHub profile"},
}

// Suggest returns one suggestion per incomplete field, in the canonical field
// order. The ordering is stable so callers can safely take the top N.
func Suggest(user *models.User) []Suggestion {
	suggestions := []Suggestion{}
	for _, field := range fieldOrder {
		if _, present := fieldValue(user, field); present {
			continue
		}
		text := suggestionText[field]
		suggestions = append(suggestions, Suggestion{
			Field:       field,
			DisplayName: text[0],
			Description: text[1],
		})
	}
	return suggestions
}

// fieldValue extracts a field's value from the profile and reports whether it
// is present (non-empty).
func fieldValue(user *models.User, field Field) (any, bool) {
	switch field {
	case FieldName:
		return user.Name, user.Name != ""
	case FieldEmail:
		return user.Email, user.Email != ""
	case FieldProfilePictureURL:
		if user.ProfilePictureURL == nil || *user.ProfilePictureURL == "" {
			return nil, false
		}
		return *user.ProfilePictureURL, true
	case FieldMajor:
		return user.Major, user.Major != ""
	case FieldGraduationYear:
		if user.GraduationYear == nil {
			return nil, false
		}
		return *user.GraduationYear, true
	case FieldEnrolledCourses:
		return user.EnrolledCourses, len(user.EnrolledCourses) > 0
	case FieldBiography:
		return user.Biography, user.Biography != ""
	case FieldInterests:
		return user.Interests, len(user.Interests) > 0
	case FieldClubMemberships:
		return user.ClubMemberships, len(user.ClubMemberships) > 0
	case FieldLocation:
		return user.Location, user.Location != ""
	case FieldTimezone:
		return user.Timezone, user.Timezone != ""
	case FieldPhoneNumber:
		return user.PhoneNumber, user.PhoneNumber != ""
	case FieldLinkedinURL:
		return user.LinkedinURL, user.LinkedinURL != ""
	case FieldGithubURL:
		return user.GithubURL, user.GithubURL != ""
	}
	return nil, false
}
