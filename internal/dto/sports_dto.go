package dto

// ScheduleSyncDetail reports the outcome for one external game record.
type ScheduleSyncDetail struct {
	Opponent string `json:"opponent"`
	Date     string `json:"date"`
	Status   string `json:"status"`
	Reason   string `json:"reason,omitempty"`
	EventID  *uint  `json:"event_id,omitempty"`
}

// ScheduleSyncResponse summarises one sync run.
type ScheduleSyncResponse struct {
	Synced  int                  `json:"synced"`
	Skipped int                  `json:"skipped"`
	Failed  int                  `json:"failed"`
	Details []ScheduleSyncDetail `json:"details"`
}
