package handlers

import (
	"mime/multipart"
	"time"

	"github.com/jobflow/jobflow/internal/application"
	"github.com/jobflow/jobflow/internal/job"
	"github.com/jobflow/jobflow/internal/notification"
	"github.com/jobflow/jobflow/internal/resume"
	"github.com/jobflow/jobflow/internal/user"
)

// RegisterRequest is the request body for creating an account.
type RegisterRequest struct {
	Body struct {
		Email       string         `doc:"Account email"            example:"jane@example.com" format:"email" json:"email"`
		Name        string         `doc:"Display name"             example:"Jane Doe"         json:"name"    minLength:"1"`
		Password    string         `doc:"Account password"         json:"password"            minLength:"8"`
		Skills      []string       `doc:"Initial skill list"       json:"skills,omitempty"`
		Preferences map[string]any `doc:"Job search preferences"   json:"preferences,omitempty"`
	}
}

// RegisterResponse returns the created account.
type RegisterResponse struct {
	Status int
	Body   *user.User
}

// LoginRequest is the request body for logging in.
type LoginRequest struct {
	Body struct {
		Email    string `doc:"Account email"    example:"jane@example.com" format:"email" json:"email"`
		Password string `doc:"Account password" json:"password"`
	}
}

// LoginResponse returns an access token and the account it belongs to.
type LoginResponse struct {
	Body struct {
		AccessToken string     `doc:"Bearer token for subsequent requests" json:"access_token"`
		TokenType   string     `doc:"Token type"                           example:"bearer" json:"token_type"`
		User        *user.User `doc:"The authenticated account"            json:"user"`
	}
}

// GetMeRequest has no parameters; the account comes from the bearer token.
type GetMeRequest struct{}

// UserResponse returns a single account profile.
type UserResponse struct {
	Body *user.User
}

// UpdateMeRequest is a partial profile update. Omitted fields are unchanged.
type UpdateMeRequest struct {
	Body struct {
		Name        *string        `doc:"Display name"           json:"name,omitempty"`
		Skills      []string       `doc:"Skill list"             json:"skills,omitempty"`
		Preferences map[string]any `doc:"Job search preferences" json:"preferences,omitempty"`
	}
}

// DeactivateMeRequest has no parameters.
type DeactivateMeRequest struct{}

// UploadResumeRequest carries a PDF resume as multipart form data under the
// "file" field.
type UploadResumeRequest struct {
	RawBody multipart.Form `contentType:"multipart/form-data"`
}

// ResumeResponse returns a single parsed resume.
type ResumeResponse struct {
	Status int
	Body   *resume.Resume
}

// ListResumesRequest has no parameters.
type ListResumesRequest struct{}

// ListResumesResponse returns the caller's resumes, newest first.
type ListResumesResponse struct {
	Body struct {
		Resumes []*resume.Resume `json:"resumes"`
	}
}

// GetResumeRequest identifies a resume by ID.
type GetResumeRequest struct {
	ID string `doc:"Resume ID" path:"id"`
}

// EnhanceResumeRequest identifies the resume to enhance.
type EnhanceResumeRequest struct {
	ID string `doc:"Resume ID" path:"id"`
}

// EnhanceResumeResponse returns AI improvement suggestions.
type EnhanceResumeResponse struct {
	Body *resume.Enhancement
}

// AnalyzeResumeRequest identifies the resume to score.
type AnalyzeResumeRequest struct {
	ID string `doc:"Resume ID" path:"id"`
}

// AnalyzeResumeResponse returns the ATS compatibility verdict.
type AnalyzeResumeResponse struct {
	Body *resume.ATSScore
}

// IngestJobRequest is the request body for adding a job posting.
type IngestJobRequest struct {
	Body struct {
		Title        string    `doc:"Job title"               example:"Senior Go Engineer" json:"title" minLength:"1"`
		Company      string    `doc:"Hiring company"          example:"Acme Corp"          json:"company" minLength:"1"`
		Location     string    `doc:"Job location"            example:"Berlin"             json:"location"`
		Description  string    `doc:"Full job description"    json:"description"`
		Requirements []string  `doc:"Listed requirements"     json:"requirements,omitempty"`
		SalaryRange  string    `doc:"Advertised salary range" json:"salary_range,omitempty"`
		JobType      string    `doc:"Employment type"         example:"Full-time"          json:"job_type,omitempty"`
		Remote       bool      `doc:"Remote position"         json:"remote,omitempty"`
		URL          string    `doc:"Original posting URL"    json:"url,omitempty"`
		Source       string    `doc:"Posting source"          example:"LinkedIn"           json:"source,omitempty"`
		PostedDate   time.Time `doc:"When the job was posted" json:"posted_date,omitempty"`
	}
}

// JobResponse returns a single job posting.
type JobResponse struct {
	Status int
	Body   *job.Job
}

// SearchJobsRequest holds job search filters. Empty filters match all
// active jobs.
type SearchJobsRequest struct {
	Keyword   string `doc:"Keyword matched against titles" example:"golang"    query:"keyword"`
	Location  string `doc:"Exact location filter"          example:"Berlin"    query:"location"`
	JobType   string `doc:"Employment type filter"         example:"Full-time" query:"job_type"`
	Remote    *bool  `doc:"Remote-only filter"             query:"remote"`
	MinSalary *int   `doc:"Minimum salary filter"          example:"90000"     query:"min_salary"`
	MaxSalary *int   `doc:"Maximum salary filter"          example:"150000"    query:"max_salary"`
	Offset    int    `doc:"Number of items to skip"        minimum:"0" query:"offset"`
	Limit     int    `default:"20" doc:"Maximum number of items to return" maximum:"100" minimum:"1" query:"limit"`
}

// SearchJobsResponse returns matching jobs, newest first.
type SearchJobsResponse struct {
	Body struct {
		Jobs  []*job.Job `json:"jobs"`
		Total int        `json:"total"`
	}
}

// GetJobRequest identifies a job by ID.
type GetJobRequest struct {
	ID string `doc:"Job ID" path:"id"`
}

// MatchJobsRequest identifies the resume to match jobs against.
type MatchJobsRequest struct {
	ResumeID string `doc:"Resume ID"                 path:"resumeId"`
	Offset   int    `doc:"Number of matches to skip" minimum:"0" query:"offset"`
	Limit    int    `doc:"Maximum matches returned"  maximum:"50" minimum:"1" query:"limit"`
}

// MatchJobsResponse returns scored matches, best first.
type MatchJobsResponse struct {
	Body struct {
		Matches []*job.Match `json:"matches"`
	}
}

// ApplyRequest submits an application for the job in the path.
type ApplyRequest struct {
	JobID string `doc:"Job ID" path:"id"`
	Body  struct {
		ResumeID    string `doc:"Resume to attach"     json:"resume_id" minLength:"1"`
		CoverLetter string `doc:"Optional cover letter" json:"cover_letter,omitempty"`
	}
}

// ApplicationResponse returns a single application.
type ApplicationResponse struct {
	Status int
	Body   *application.Application
}

// ListApplicationsRequest has no parameters.
type ListApplicationsRequest struct{}

// ListApplicationsResponse returns the caller's applications, newest first.
type ListApplicationsResponse struct {
	Body struct {
		Applications []*application.Application `json:"applications"`
	}
}

// GetApplicationRequest identifies an application by ID.
type GetApplicationRequest struct {
	ID string `doc:"Application ID" path:"id"`
}

// UpdateApplicationRequest is a partial application update. Omitted fields
// are unchanged.
type UpdateApplicationRequest struct {
	ID   string `doc:"Application ID" path:"id"`
	Body struct {
		Status        *string    `doc:"New status"           enum:"draft,submitted,under_review,interview_scheduled,interviewing,offer_received,accepted,rejected,withdrawn" json:"status,omitempty"`
		Notes         *string    `doc:"Private notes"        json:"notes,omitempty"`
		CoverLetter   *string    `doc:"Cover letter"         json:"cover_letter,omitempty"`
		InterviewDate *time.Time `doc:"Scheduled interview"  json:"interview_date,omitempty"`
	}
}

// WithdrawApplicationRequest identifies the application to withdraw.
type WithdrawApplicationRequest struct {
	ID string `doc:"Application ID" path:"id"`
}

// ListNotificationsRequest filters and pages the caller's inbox.
type ListNotificationsRequest struct {
	UnreadOnly bool `doc:"Only return unread notifications" query:"unread_only"`
	Offset     int  `doc:"Number of items to skip"          minimum:"0" query:"offset"`
	Limit      int  `default:"20" doc:"Maximum number of items to return" maximum:"100" minimum:"1" query:"limit"`
}

// ListNotificationsResponse returns the caller's notifications, newest first.
type ListNotificationsResponse struct {
	Body struct {
		Notifications []*notification.Notification `json:"notifications"`
		Unread        int                          `json:"unread"`
	}
}

// MarkNotificationReadRequest identifies the notification to mark read.
type MarkNotificationReadRequest struct {
	ID string `doc:"Notification ID" path:"id"`
}

// NotificationResponse returns a single notification.
type NotificationResponse struct {
	Body *notification.Notification
}

// MarkAllReadRequest has no parameters.
type MarkAllReadRequest struct{}

// MarkAllReadResponse reports how many notifications were marked read.
type MarkAllReadResponse struct {
	Body struct {
		MarkedRead int `json:"marked_read"`
	}
}

// GetPreferencesRequest has no parameters.
type GetPreferencesRequest struct{}

// PreferencesResponse returns the caller's notification preferences.
type PreferencesResponse struct {
	Body notification.Preferences
}

// UpdatePreferencesRequest replaces the caller's notification preferences.
type UpdatePreferencesRequest struct {
	Body notification.Preferences
}

// WelcomeRequest has no parameters.
type WelcomeRequest struct{}

// WelcomeResponse greets API visitors and points at the docs.
type WelcomeResponse struct {
	Body struct {
		Message string `example:"Welcome to the JobFlow API" json:"message"`
		Docs    string `example:"/docs"                      json:"docs"`
	}
}
