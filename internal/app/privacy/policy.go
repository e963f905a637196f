// Package privacy implements the field-level profile privacy policy and the
// per-viewer profile projection derived from it.
package privacy

import "fmt"

// Level is a per-field visibility policy value.
type Level string

const (
	LevelPublic           Level = "public"
	LevelCommunityMembers Level = "community_members"
	LevelFriends          Level = "friends"
	LevelPrivate          Level = "private"
)

// Field identifies a profile field governed by the privacy policy.
type Field string

const (
	FieldName              Field = "name"
	FieldEmail             Field = "email"
	FieldProfilePictureURL Field = "profilePictureUrl"
	FieldMajor             Field = "major"
	FieldGraduationYear    Field = "graduationYear"
	FieldEnrolledCourses   Field = "enrolledCourses"
	FieldBiography         Field = "biography"
	FieldInterests         Field = "interests"
	FieldClubMemberships   Field = "clubMemberships"
	FieldLocation          Field = "location"
	FieldTimezone          Field = "timezone"
	FieldPhoneNumber       Field = "phoneNumber"
	FieldLinkedinURL       Field = "linkedinUrl"
	FieldGithubURL         Field = "githubUrl"
)

// fieldOrder is the canonical field enumeration order. Projection output and
// completion suggestions must be deterministic, so every iteration over the
// field set goes through this slice.
var fieldOrder = []Field{
	FieldName,
	FieldEmail,
	FieldProfilePictureURL,
	FieldMajor,
	FieldGraduationYear,
	FieldEnrolledCourses,
	FieldBiography,
	FieldInterests,
	FieldClubMemberships,
	FieldLocation,
	FieldTimezone,
	FieldPhoneNumber,
	FieldLinkedinURL,
	FieldGithubURL,
}

// Fields returns the known profile fields in canonical order.
func Fields() []Field {
	out := make([]Field, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}

// Policy maps every known field to a visibility level.
type Policy map[Field]Level

// ValidLevel reports whether the value is one of the four policy levels.
func ValidLevel(level Level) bool {
	switch level {
	case LevelPublic, LevelCommunityMembers, LevelFriends, LevelPrivate:
		return true
	}
	return false
}

// DefaultPolicy returns the default visibility for every known field:
// everything public except timezone and phone number.
func DefaultPolicy() Policy {
	policy := make(Policy, len(fieldOrder))
	for _, field := range fieldOrder {
		policy[field] = LevelPublic
	}
	policy[FieldTimezone] = LevelPrivate
	policy[FieldPhoneNumber] = LevelPrivate
	return policy
}

// MergePolicy overlays user-supplied overrides onto the default policy.
// Missing fields fall back to their default; keys that do not name a known
// field are ignored. The result always covers the full field set, so callers
// never see a partially defined policy.
func MergePolicy(overrides map[string]string) Policy {
	policy := DefaultPolicy()
	if len(overrides) == 0 {
		return policy
	}
	for key, value := range overrides {
		field := Field(key)
		if _, known := policy[field]; !known {
			continue
		}
		policy[field] = Level(value)
	}
	return policy
}

// ValidatePolicy checks every supplied override and returns a field→message
// map covering all invalid entries. It never stops at the first failure; an
// empty map means the overrides are valid.
func ValidatePolicy(overrides map[string]string) map[string]string {
	problems := make(map[string]string)
	for key, value := range overrides {
		if !ValidLevel(Level(value)) {
			problems[key] = fmt.Sprintf("invalid privacy level %q: must be one of public, community_members, friends, private", value)
		}
	}
	return problems
}
