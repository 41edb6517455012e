package models

import "time"

// Workspace represents a client workspace handled by the agency.
type Workspace struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	LogoURL   string    `json:"logo_url"`
	WhatsApp  string    `json:"whatsapp"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Group is a content board inside a workspace; it owns an ordered set of columns.
type Group struct {
	ID          int64     `json:"id"`
	WorkspaceID int64     `json:"workspace_id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
}

// InstagramInsight is a stored monthly metrics snapshot shown on the public dashboard.
type InstagramInsight struct {
	ID          int64  `json:"id"`
	WorkspaceID int64  `json:"workspace_id"`
	Month       string `json:"month"` // "2024-07"
	Followers   int    `json:"followers"`
	Engagement  int    `json:"engagement"`
	Reach       int    `json:"reach"`
}
