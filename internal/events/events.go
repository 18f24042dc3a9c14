// Package events defines the topics and payloads exchanged between the API
// and the notification pipeline.
package events

import "time"

const (
	// TopicResumeParsed carries events emitted after a resume upload is
	// parsed and stored.
	TopicResumeParsed = "resume.parsed"
	// TopicApplicationSubmitted carries events emitted when a job
	// application is submitted.
	TopicApplicationSubmitted = "application.submitted"
)

// ResumeParsedEvent is emitted after a resume has been parsed and stored.
type ResumeParsedEvent struct {
	ResumeID string    `json:"resumeId"`
	UserID   string    `json:"userId"`
	FileName string    `json:"fileName"`
	ParsedAt time.Time `json:"parsedAt"`
}

// ApplicationSubmittedEvent is emitted when a job application is submitted.
type ApplicationSubmittedEvent struct {
	ApplicationID string    `json:"applicationId"`
	Reference     string    `json:"reference"`
	UserID        string    `json:"userId"`
	JobID         string    `json:"jobId"`
	JobTitle      string    `json:"jobTitle"`
	Company       string    `json:"company"`
	SubmittedAt   time.Time `json:"submittedAt"`
}
