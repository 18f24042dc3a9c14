package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// Welcome greets API visitors at the root path.
func Welcome(_ context.Context, _ *WelcomeRequest) (*WelcomeResponse, error) {
	resp := &WelcomeResponse{}
	resp.Body.Message = "Welcome to the JobFlow API"
	resp.Body.Docs = "/docs"

	return resp, nil
}

// RegisterRoutes registers all API routes.
func RegisterRoutes(
	api huma.API,
	users *UserHandler,
	resumes *ResumeHandler,
	jobs *JobHandler,
	applications *ApplicationHandler,
	notifications *NotificationHandler,
) {
	huma.Register(api, huma.Operation{
		OperationID: "welcome",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "API welcome",
		Tags:        []string{"Meta"},
	}, Welcome)

	// Accounts
	huma.Register(api, huma.Operation{
		OperationID:   "register-user",
		Method:        http.MethodPost,
		Path:          "/api/v1/users/register",
		Summary:       "Register account",
		Description:   "Creates a new account with a hashed password.",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusCreated,
	}, users.Register)

	huma.Register(api, huma.Operation{
		OperationID: "login-user",
		Method:      http.MethodPost,
		Path:        "/api/v1/users/login",
		Summary:     "Log in",
		Description: "Verifies credentials and issues a bearer token.",
		Tags:        []string{"Users"},
	}, users.Login)

	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me",
		Summary:     "Get own profile",
		Tags:        []string{"Users"},
	}, users.GetMe)

	huma.Register(api, huma.Operation{
		OperationID: "update-profile",
		Method:      http.MethodPatch,
		Path:        "/api/v1/users/me",
		Summary:     "Update own profile",
		Tags:        []string{"Users"},
	}, users.UpdateMe)

	huma.Register(api, huma.Operation{
		OperationID: "deactivate-account",
		Method:      http.MethodPost,
		Path:        "/api/v1/users/me/deactivate",
		Summary:     "Deactivate own account",
		Tags:        []string{"Users"},
	}, users.DeactivateMe)

	// Resumes
	huma.Register(api, huma.Operation{
		OperationID:   "upload-resume",
		Method:        http.MethodPost,
		Path:          "/api/v1/resumes/upload",
		Summary:       "Upload resume",
		Description:   "Accepts a PDF resume, extracts its text and parses it into structured data.",
		Tags:          []string{"Resumes"},
		DefaultStatus: http.StatusCreated,
	}, resumes.Upload)

	huma.Register(api, huma.Operation{
		OperationID: "list-resumes",
		Method:      http.MethodGet,
		Path:        "/api/v1/resumes/me",
		Summary:     "List own resumes",
		Tags:        []string{"Resumes"},
	}, resumes.ListMine)

	huma.Register(api, huma.Operation{
		OperationID: "get-resume",
		Method:      http.MethodGet,
		Path:        "/api/v1/resumes/{id}",
		Summary:     "Get resume",
		Tags:        []string{"Resumes"},
	}, resumes.Get)

	huma.Register(api, huma.Operation{
		OperationID: "enhance-resume",
		Method:      http.MethodPost,
		Path:        "/api/v1/resumes/{id}/enhance",
		Summary:     "Enhance resume",
		Description: "Generates AI improvement suggestions, an ATS score and a skill assessment.",
		Tags:        []string{"Resumes"},
	}, resumes.Enhance)

	huma.Register(api, huma.Operation{
		OperationID: "analyze-resume",
		Method:      http.MethodPost,
		Path:        "/api/v1/resumes/{id}/analyze",
		Summary:     "Analyze ATS compatibility",
		Tags:        []string{"Resumes"},
	}, resumes.Analyze)

	// Jobs
	huma.Register(api, huma.Operation{
		OperationID:   "ingest-job",
		Method:        http.MethodPost,
		Path:          "/api/v1/jobs",
		Summary:       "Add job posting",
		Tags:          []string{"Jobs"},
		DefaultStatus: http.StatusCreated,
	}, jobs.Ingest)

	huma.Register(api, huma.Operation{
		OperationID: "search-jobs",
		Method:      http.MethodGet,
		Path:        "/api/v1/jobs/search",
		Summary:     "Search jobs",
		Tags:        []string{"Jobs"},
	}, jobs.Search)

	huma.Register(api, huma.Operation{
		OperationID: "match-jobs",
		Method:      http.MethodGet,
		Path:        "/api/v1/jobs/matches/{resumeId}",
		Summary:     "Match jobs to resume",
		Description: "Scores active jobs against a resume and returns the best matches.",
		Tags:        []string{"Jobs"},
	}, jobs.Match)

	huma.Register(api, huma.Operation{
		OperationID: "get-job",
		Method:      http.MethodGet,
		Path:        "/api/v1/jobs/{id}",
		Summary:     "Get job",
		Tags:        []string{"Jobs"},
	}, jobs.Get)

	huma.Register(api, huma.Operation{
		OperationID:   "apply-for-job",
		Method:        http.MethodPost,
		Path:          "/api/v1/jobs/{id}/apply",
		Summary:       "Apply for job",
		Tags:          []string{"Jobs", "Applications"},
		DefaultStatus: http.StatusCreated,
	}, applications.Apply)

	// Applications
	huma.Register(api, huma.Operation{
		OperationID: "list-applications",
		Method:      http.MethodGet,
		Path:        "/api/v1/applications",
		Summary:     "List own applications",
		Tags:        []string{"Applications"},
	}, applications.ListMine)

	huma.Register(api, huma.Operation{
		OperationID: "get-application",
		Method:      http.MethodGet,
		Path:        "/api/v1/applications/{id}",
		Summary:     "Get application",
		Tags:        []string{"Applications"},
	}, applications.Get)

	huma.Register(api, huma.Operation{
		OperationID: "update-application",
		Method:      http.MethodPatch,
		Path:        "/api/v1/applications/{id}",
		Summary:     "Update application",
		Tags:        []string{"Applications"},
	}, applications.Update)

	huma.Register(api, huma.Operation{
		OperationID: "withdraw-application",
		Method:      http.MethodDelete,
		Path:        "/api/v1/applications/{id}",
		Summary:     "Withdraw application",
		Tags:        []string{"Applications"},
	}, applications.Withdraw)

	// Notifications
	huma.Register(api, huma.Operation{
		OperationID: "list-notifications",
		Method:      http.MethodGet,
		Path:        "/api/v1/notifications",
		Summary:     "List notifications",
		Tags:        []string{"Notifications"},
	}, notifications.ListMine)

	huma.Register(api, huma.Operation{
		OperationID: "get-notification-preferences",
		Method:      http.MethodGet,
		Path:        "/api/v1/notifications/preferences",
		Summary:     "Get notification preferences",
		Tags:        []string{"Notifications"},
	}, notifications.GetPreferences)

	huma.Register(api, huma.Operation{
		OperationID: "update-notification-preferences",
		Method:      http.MethodPut,
		Path:        "/api/v1/notifications/preferences",
		Summary:     "Update notification preferences",
		Tags:        []string{"Notifications"},
	}, notifications.UpdatePreferences)

	huma.Register(api, huma.Operation{
		OperationID: "mark-all-notifications-read",
		Method:      http.MethodPost,
		Path:        "/api/v1/notifications/read-all",
		Summary:     "Mark all notifications read",
		Tags:        []string{"Notifications"},
	}, notifications.MarkAllRead)

	huma.Register(api, huma.Operation{
		OperationID: "mark-notification-read",
		Method:      http.MethodPost,
		Path:        "/api/v1/notifications/{id}/read",
		Summary:     "Mark notification read",
		Tags:        []string{"Notifications"},
	}, notifications.MarkRead)
}
