package models

import "time"

// WorkspaceInfo describes one live canvas.
type WorkspaceInfo struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	LastSeenAt    time.Time `json:"last_seen_at"`
	DealCount     int       `json:"deal_count"`
	CashflowCount int       `json:"cashflow_count"`
}
