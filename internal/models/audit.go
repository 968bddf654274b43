package models

import "time"

// AuditEntry represents one audit log row.
type AuditEntry struct {
	ID           int       `json:"id"`
	UserID       string    `json:"userId"`
	Action       string    `json:"action"`       // create, delete
	ResourceType string    `json:"resourceType"` // place, record
	ResourceID   string    `json:"resourceId"`
	Details      string    `json:"details,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
