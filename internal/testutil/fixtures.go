package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"dealcanvas/internal/models"
	"dealcanvas/internal/uuid"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NewWorkspaceID returns a fresh workspace identifier.
func NewWorkspaceID() string {
	return uuid.New()
}

// CreateTestAuditLog inserts an audit entry for the given workspace.
func CreateTestAuditLog(t *testing.T, db *gorm.DB, workspaceID, action string) *models.AuditLog {
	t.Helper()

	entry := &models.AuditLog{
		WorkspaceID:  workspaceID,
		Action:       action,
		ResourceType: "deal",
		ResourceID:   uint(nextID()),
		IPAddress:    "127.0.0.1",
		Changes:      fmt.Sprintf(`{"seq":%d}`, nextID()),
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test audit log: %v", err)
	}
	return entry
}
