package domain

import "time"

// User represents a registered user
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Gender is the profile gender field
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// UserProfile is the single profile held per installation. Optional fields
// are pointers so an unset field serializes as absent, not as a zero value.
type UserProfile struct {
	Name               string    `json:"name"`
	DateOfBirth        *Date     `json:"dateOfBirth,omitempty"`
	Gender             *Gender   `json:"gender,omitempty"`
	Email              string    `json:"email"`
	Phone              *string   `json:"phone,omitempty"`
	ProfileImageURL    *string   `json:"profileImageUrl,omitempty"`
	TreatmentStartDate *Date     `json:"treatmentStartDate,omitempty"`
	HasSeenTutorial    *bool     `json:"hasSeenTutorial,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// ProfileUpdate is a partial profile change; nil fields are left untouched.
type ProfileUpdate struct {
	Name               *string
	DateOfBirth        *Date
	Gender             *Gender
	Email              *string
	Phone              *string
	ProfileImageURL    *string
	TreatmentStartDate *Date
	HasSeenTutorial    *bool
}
