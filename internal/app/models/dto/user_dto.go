package dto

// UpdateProfileRequest carries the editable profile fields. Pointer fields
// distinguish "not sent" from "clear this value".
type UpdateProfileRequest struct {
	Name              *string   `json:"name,omitempty"`
	Biography         *string   `json:"biography,omitempty"`
	Major             *string   `json:"major,omitempty"`
	GraduationYear    *int      `json:"graduationYear,omitempty"`
	Location          *string   `json:"location,omitempty"`
	Timezone          *string   `json:"timezone,omitempty"`
	PhoneNumber       *string   `json:"phoneNumber,omitempty"`
	LinkedinURL       *string   `json:"linkedinUrl,omitempty"`
	GithubURL         *string   `json:"githubUrl,omitempty"`
	Interests         *[]string `json:"interests,omitempty"`
	ClubMemberships   *[]string `json:"clubMemberships,omitempty"`
	EnrolledCourses   *[]string `json:"enrolledCourses,omitempty"`
	ProfilePictureURL *string   `json:"profilePictureUrl,omitempty"`
}

// UpdatePrivacyRequest sets per-field visibility overrides. Keys are profile
// field names, values are visibility levels.
type UpdatePrivacyRequest struct {
	PrivacySettings map[string]string `json:"privacySettings" binding:"required"`
}

// ProfileResponse is a privacy-filtered view of another user's profile.
// Fields holds only the entries visible to the requesting viewer.
type ProfileResponse struct {
	UserID       int64          `json:"userId"`
	Relationship string         `json:"relationship" example:"community_member"`
	Fields       map[string]any `json:"fields"`
}

// CompletionSuggestion names one missing profile field
type CompletionSuggestion struct {
	Field       string `json:"field" example:"profilePictureUrl"`
	DisplayName string `json:"displayName" example:"Profile picture"`
	Description string `json:"description"`
}

// CompletionResponse reports profile completion progress
type CompletionResponse struct {
	Percentage  int                    `json:"percentage" example:"64"`
	Suggestions []CompletionSuggestion `json:"suggestions"`
}
