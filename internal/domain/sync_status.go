package domain

import "time"

type SyncState string

const (
	SyncStateIdle      SyncState = "idle"
	SyncStateChecking  SyncState = "checking"
	SyncStateFetching  SyncState = "fetching"
	SyncStateMerging   SyncState = "merging"
	SyncStatePersisted SyncState = "persisted"
	SyncStateFailed    SyncState = "failed"
)

// SyncStatus describes the most recent synchronization cycle.
type SyncStatus struct {
	State          SyncState `json:"state"`
	LastStoredDate string    `json:"last_stored_date,omitempty"`
	PointsAdded    int       `json:"points_added"`
	Error          *string   `json:"error,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}
