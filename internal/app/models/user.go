package models

import (
	"time"
)

// User defines the user model based on the 'users' table.
// PrivacySettings holds raw per-field overrides as stored; callers must merge
// them over the default policy before evaluating visibility.
type User struct {
	ID                int64             `json:"id" db:"id" example:"1"`
	Email             string            `json:"email" db:"email" example:"user@campus.edu"`
	Password          string            `json:"-" db:"password"`
	Name              string            `json:"name" db:"name" example:"John Doe"`
	Biography         string            `json:"biography,omitempty" db:"biography"`
	Major             string            `json:"major,omitempty" db:"major" example:"Computer Science"`
	GraduationYear    *int              `json:"graduationYear,omitempty" db:"graduation_year" example:"2026"`
	Location          string            `json:"location,omitempty" db:"location"`
	Timezone          string            `json:"timezone,omitempty" db:"timezone"`
	PhoneNumber       string            `json:"phoneNumber,omitempty" db:"phone_number"`
	LinkedinURL       string            `json:"linkedinUrl,omitempty" db:"linkedin_url"`
	GithubURL         string            `json:"githubUrl,omitempty" db:"github_url"`
	Interests         []string          `json:"interests,omitempty" db:"interests"`
	ClubMemberships   []string          `json:"clubMemberships,omitempty" db:"club_memberships"`
	EnrolledCourses   []string          `json:"enrolledCourses,omitempty" db:"enrolled_courses"`
	ProfilePictureURL *string           `json:"profilePictureUrl,omitempty" db:"profile_picture_url"`
	PrivacySettings   map[string]string `json:"privacySettings,omitempty" db:"privacy_settings"`
	Friends           []int64           `json:"friends,omitempty" db:"friends"`
	Impact            int               `json:"impact" db:"impact"`
	Badges            []string          `json:"badges,omitempty" db:"badges"`
	CreatedAt         time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time         `json:"updatedAt" db:"updated_at"`
}
