package http

import (
	"time"

	"github.com/aussiebroadwan/trigger/internal/dashboard/domain"
	"github.com/aussiebroadwan/trigger/pkg/triggersdk"
)

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Store string `json:"store"`
}

// ConfigResponse is the trigger API configuration with the secret masked.
type ConfigResponse struct {
	TriggerURL string `json:"triggerUrl"`
	AuthURL    string `json:"cbisA2aApiUrl"`
	AppID      string `json:"appId"`
	AppSecret  string `json:"appSecret"`
	DemoMode   bool   `json:"demoMode"`
}

func newConfigResponse(cfg triggersdk.ClientConfig) ConfigResponse {
	cfg = cfg.Redacted()
	return ConfigResponse{
		TriggerURL: cfg.TriggerURL,
		AuthURL:    cfg.AuthURL,
		AppID:      cfg.AppID,
		AppSecret:  cfg.AppSecret,
		DemoMode:   cfg.DemoMode,
	}
}

// ConfigUpdateRequest is a partial update; omitted fields are kept.
type ConfigUpdateRequest struct {
	TriggerURL *string `json:"triggerUrl,omitempty"`
	AuthURL    *string `json:"cbisA2aApiUrl,omitempty"`
	AppID      *string `json:"appId,omitempty"`
	AppSecret  *string `json:"appSecret,omitempty"`
	DemoMode   *bool   `json:"demoMode,omitempty"`
}

// GenerateTokenResponse reports a freshly generated token without echoing it.
type GenerateTokenResponse struct {
	TokenType string                 `json:"token_type"`
	ExpiresIn int64                  `json:"expires_in"`
	Status    triggersdk.TokenStatus `json:"status"`
}

// RemediationResponse is the remote API's answer to an upload.
type RemediationResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// SubmissionResponse is one entry of the upload audit trail.
type SubmissionResponse struct {
	ID             string    `json:"id"`
	ProcessType    string    `json:"process_type"`
	MarketCode     string    `json:"market_code"`
	FileName       string    `json:"file_name"`
	FileSize       int64     `json:"file_size"`
	Status         string    `json:"status,omitempty"`
	Message        string    `json:"message,omitempty"`
	RemoteID       string    `json:"remote_id,omitempty"`
	Error          string    `json:"error,omitempty"`
	UpstreamStatus int       `json:"upstream_status,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type SubmissionListResponse struct {
	Submissions []SubmissionResponse `json:"submissions"`
}

func newSubmissionResponse(s domain.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:             s.ID,
		ProcessType:    s.ProcessType,
		MarketCode:     s.MarketCode,
		FileName:       s.FileName,
		FileSize:       s.FileSize,
		Status:         s.Status,
		Message:        s.Message,
		RemoteID:       s.RemoteID,
		Error:          s.Error,
		UpstreamStatus: s.UpstreamStatus,
		CreatedAt:      s.CreatedAt,
	}
}
