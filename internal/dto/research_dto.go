package dto

import "time"

type CreateResearchSessionResponse struct {
	Id string `json:"id"`
}

// GenerateReportRequest is one "Generate" button press: the industry
// text, the caller's generation-service credential, and an optional
// model override (must be on the configured allow-list).
type GenerateReportRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Industry  string `json:"industry" validate:"max=200"`
	ApiKey    string `json:"api_key"`
	Model     string `json:"model,omitempty"`
}

type SourceDTO struct {
	Title     string `json:"title"`
	SourceUrl string `json:"source_url"`
}

type GenerateReportResponse struct {
	SessionId string      `json:"session_id"`
	Step      string      `json:"step"`
	Industry  string      `json:"industry"`
	Model     string      `json:"model"`
	Warning   string      `json:"warning,omitempty"`
	Sources   []SourceDTO `json:"sources"`
	Report    string      `json:"report"`
}

type GetSessionResponse struct {
	SessionId string      `json:"session_id"`
	Step      string      `json:"step"`
	Industry  string      `json:"industry"`
	Model     string      `json:"model"`
	Warning   string      `json:"warning,omitempty"`
	Sources   []SourceDTO `json:"sources"`
	Report    string      `json:"report"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type ModelOptionResponse struct {
	Id string `json:"id"`
}
