package models

import "time"

// Topic is a single normalized trending subject.
type Topic struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Rank   int    `json:"rank"`
}

// MoodResult is the outcome of facial emotion detection for one image.
// Label is "unknown" when no face was found or confidence was too low.
type MoodResult struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// StoryResult is the assembled output of one generation request.
type StoryResult struct {
	Story       string    `json:"story"`
	TopicsUsed  []string  `json:"topics_used"`
	Theme       string    `json:"theme"`
	Mood        string    `json:"mood,omitempty"`
	Source      string    `json:"source"`
	ModelName   string    `json:"model_name"`
	GeneratedAt time.Time `json:"generated_at"`
}

// StoryRecord is an archived story row.
type StoryRecord struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Theme     string    `json:"theme"`
	Mood      string    `json:"mood,omitempty"`
	Story     string    `json:"story"`
	Topics    []string  `json:"topics"`
	ModelName string    `json:"model_name"`
	CreatedAt time.Time `json:"created_at"`
}

// GenerateRequest is the wire request for POST /api/v1/generate.
// ImageB64 optionally carries a base64-encoded face photo.
type GenerateRequest struct {
	Source   string `json:"source"`
	Theme    string `json:"theme"`
	Limit    int    `json:"limit"`
	ImageB64 string `json:"image_b64,omitempty"`
}

// GenerateResponse is the wire response for POST /api/v1/generate.
// StatusCode is 0 on success; non-zero values identify the error kind.
type GenerateResponse struct {
	Story        string        `json:"story"`
	StatusCode   int           `json:"status_code"`
	ErrorMessage string        `json:"error_message,omitempty"`
	TopicsUsed   []string      `json:"topics_used,omitempty"`
	Metadata     StoryMetadata `json:"metadata"`
	DetectedMood string        `json:"detected_mood,omitempty"`
}

// StoryMetadata describes how a story was produced.
type StoryMetadata struct {
	GenerationTime string `json:"generation_time"`
	ModelName      string `json:"model_name"`
	Source         string `json:"source"`
	Theme          string `json:"theme"`
	Mood           string `json:"mood,omitempty"`
}
