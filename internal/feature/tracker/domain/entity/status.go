// Package entity defines the records tracked for each user and the payloads that create and
// patch them.
package entity

// Status is the progress state of a tracked item.
type Status string

// Topic statuses, shared by DSA, CS and custom topics.
const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Project statuses. Projects start as planned instead of not_started.
const (
	ProjectPlanned    Status = "planned"
	ProjectInProgress Status = "in_progress"
	ProjectCompleted  Status = "completed"
)

// DefaultSectionIcon is the icon given to custom sections created without one.
const DefaultSectionIcon = "BookOpen"

func orDefault(s, fallback Status) Status {
	if s == "" {
		return fallback
	}
	return s
}
