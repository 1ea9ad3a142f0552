package dto

// SyncStatusResponse reports connectivity, session and queue state.
type SyncStatusResponse struct {
	Online         bool   `json:"online"`
	Authenticated  bool   `json:"authenticated"`
	UserEmail      string `json:"userEmail,omitempty"`
	PendingActions int    `json:"pendingActions"`
	InFlight       int64  `json:"inFlight"`
}

// ReplayResponse reports the outcome of a manual queue replay.
type ReplayResponse struct {
	Applied int `json:"applied"`
	Failed  int `json:"failed"`
}
