package domain

import "time"

// DailyRecord is one logged intake event for a calendar day. The storage
// layer does not enforce one record per date; callers check with
// GetDailyRecordByDate before creating.
type DailyRecord struct {
	ID        string    `json:"id"`
	Date      Date      `json:"date"`
	Capsules  int       `json:"capsules"`
	Time      string    `json:"time"`
	Notes     *string   `json:"notes,omitempty"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewDailyRecord carries the caller-supplied fields of a record to create;
// id and timestamps are assigned by the storage service.
type NewDailyRecord struct {
	Date      Date
	Capsules  int
	Time      string
	Notes     *string
	Completed bool
}

// RecordUpdate is a partial record change; nil fields are left untouched.
type RecordUpdate struct {
	Date      *Date
	Capsules  *int
	Time      *string
	Notes     *string
	Completed *bool
}
