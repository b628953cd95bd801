package wizard

// OpenResponse reports the opened session. When a recoverable draft was
// found the snapshot is withheld until the prompt is answered.
type OpenResponse struct {
	RecoveryAvailable bool             `json:"recovery_available"`
	DraftAgeSeconds   int64            `json:"draft_age_seconds,omitempty"`
	Snapshot          *WizardSnapshot  `json:"snapshot,omitempty"`
	Summary           *SummaryResponse `json:"summary"`
}

// SummaryResponse is the derived view recomputed after every mutation: the
// totals partition, the step sequence with per-step readiness, and the
// guard's state
type SummaryResponse struct {
	Mode                 PricingMode     `json:"mode"`
	Step                 StepID          `json:"step"`
	StepIndex            int             `json:"step_index"`
	Steps                []StepID        `json:"steps"`
	Readiness            map[StepID]bool `json:"readiness"`
	Total                float64         `json:"total"`
	ComponentsTotal      float64         `json:"components_total"`
	VenueInclusionsTotal float64         `json:"venue_inclusions_total"`
	SubmissionState      string          `json:"submission_state"`
	RecoveryPending      bool            `json:"recovery_pending"`
	Revision             int64           `json:"revision"`
	Snapshot             *WizardSnapshot `json:"snapshot"`
}

// StepResponse reports the step the session landed on
type StepResponse struct {
	Step      StepID          `json:"step"`
	StepIndex int             `json:"step_index"`
	Steps     []StepID        `json:"steps"`
	Readiness map[StepID]bool `json:"readiness"`
}
