package domain

import "time"

// Submission is one CSV upload sent to the remediation endpoint, kept as an
// operator audit trail.
type Submission struct {
	ID          string
	ProcessType string // ADD_REFRESH_TRIGGER | STOP_REFRESH
	MarketCode  string
	FileName    string
	FileSize    int64

	// Outcome. Status and Message come from the remote API; Error is set
	// instead when the call failed.
	Status         string
	Message        string
	RemoteID       string
	Error          string
	UpstreamStatus int

	CreatedAt time.Time
}

// Succeeded reports whether the remote API accepted the upload.
func (s Submission) Succeeded() bool { return s.Error == "" }
