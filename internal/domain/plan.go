package domain

import "time"

// PlanResult is the plan-creation endpoint's reply. The backend either
// returns a plan id, or falls back to answering directly when the team has
// no workflow configured.
type PlanResult struct {
	PlanID         string `json:"plan_id"`
	ProcessingMode string `json:"processing_mode"`
	Response       string `json:"response"`
}

const ProcessingModeDirect = "direct"

func (r *PlanResult) IsDirectFallback() bool {
	return r.ProcessingMode == ProcessingModeDirect && r.Response != ""
}

// PlanRef is a locally recorded reference to a plan created from a chat.
type PlanRef struct {
	ID        int64
	ChatID    int64
	PlanID    string
	Message   string
	CreatedAt time.Time
}
