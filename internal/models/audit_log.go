package models

// AuditLog records one applied canvas operation.
type AuditLog struct {
	Base
	WorkspaceID  string `gorm:"type:uuid;not null;index" json:"workspace_id"`
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   uint   `json:"resource_id"`
	IPAddress    string `json:"ip_address"`
	Changes      string `json:"changes,omitempty"`
}
