package dto

import (
	"encoding/json"

	"github.com/scriptgo/backend/internal/models"
)

type SaveScriptRequest struct {
	Title         string          `json:"title"`
	Platform      string          `json:"platform"`
	Tone          string          `json:"tone"`
	Language      string          `json:"language"`
	Length        string          `json:"length"`
	CustomLength  string          `json:"custom_length"`
	Content       json.RawMessage `json:"content"`
	ScheduledDate string          `json:"scheduled_date"` // YYYY-MM-DD, optional
}

type ScriptListResponse struct {
	Scripts []models.Script `json:"scripts"`
	Total   int64           `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

type GenerateScriptRequest struct {
	Platform string `json:"platform"`
	Topic    string `json:"topic"`
	Tone     string `json:"tone"`
	Length   string `json:"length"`
	Language string `json:"language"`
	Save     bool   `json:"save"`
}

type GenerateScriptResponse struct {
	Content  json.RawMessage `json:"content"`
	ScriptID string          `json:"script_id,omitempty"`
}

type GenerateCalendarRequest struct {
	Platform string `json:"platform"`
	Topic    string `json:"topic"`
	Tone     string `json:"tone"`
	Language string `json:"language"`
	Days     int    `json:"days"`
	SkipSave bool   `json:"skip_save"`
}

type CalendarScript struct {
	ID            string          `json:"id,omitempty"`
	Day           int             `json:"day"`
	Title         string          `json:"title"`
	Platform      string          `json:"platform"`
	Tone          string          `json:"tone"`
	Language      string          `json:"language"`
	Content       json.RawMessage `json:"content"`
	ScheduledDate string          `json:"scheduled_date"`
}

type GenerateCalendarResponse struct {
	Scripts []CalendarScript `json:"scripts"`
}

type SaveBundleRequest struct {
	Topic   string           `json:"topic"`
	Scripts []CalendarScript `json:"scripts"`
}

type CalendarDay struct {
	Day           int             `json:"day"`
	Title         string          `json:"title"`
	Content       json.RawMessage `json:"content"`
	ScheduledDate string          `json:"scheduled_date"`
	Status        string          `json:"status"` // completed, active, pending
}

type BundleCalendarResponse struct {
	ScriptID         string        `json:"script_id"`
	Title            string        `json:"title"`
	Days             []CalendarDay `json:"days"`
	CompletedThrough int           `json:"completed_through"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
