package models

import "time"

// LinkKind distinguishes the two public-link flavors. Approval links allow
// state transitions; dashboard links are read-only.
type LinkKind string

const (
	LinkApproval  LinkKind = "approval"
	LinkDashboard LinkKind = "dashboard"
)

// ShareToken is an opaque public-link token scoping exactly one
// (group, workspace) pair. Immutable after creation except the is_active flip.
type ShareToken struct {
	Token       string    `json:"token"`
	Kind        LinkKind  `json:"kind"`
	GroupID     int64     `json:"group_id"`
	WorkspaceID int64     `json:"workspace_id"`
	ExpiresAt   time.Time `json:"expires_at"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
