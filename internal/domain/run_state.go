package domain

import (
	"time"
)

// RunStatus represents the overall status of a release run
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// StepStatus represents the status of an individual step
type StepStatus string

const (
	StepStatusPending   StepStatus = "pending"
	StepStatusRunning   StepStatus = "running"
	StepStatusCompleted StepStatus = "completed"
	StepStatusSkipped   StepStatus = "skipped"
	StepStatusFailed    StepStatus = "failed"
)

// StepType identifies a release step
type StepType string

const (
	StepTypeResolveBase  StepType = "resolve_base_version"
	StepTypeResolveNew   StepType = "resolve_new_version"
	StepTypeWriteVersion StepType = "write_version"
	StepTypeCommit       StepType = "commit"
	StepTypeTag          StepType = "tag"
	StepTypePush         StepType = "push"
	StepTypePublish      StepType = "publish"
)

// RunState is the journal of one release run. Completed steps are never undone;
// the journal tells the operator what landed before a failure.
type RunState struct {
	RunID      string       `json:"run_id"`
	StartedAt  time.Time    `json:"started_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
	OldVersion string       `json:"old_version,omitempty"`
	NewVersion string       `json:"new_version,omitempty"`
	Steps      []StepRecord `json:"steps"`
	Status     RunStatus    `json:"status"`
	Error      string       `json:"error,omitempty"`
}

// StepRecord represents a single step in the run
type StepRecord struct {
	Type        StepType       `json:"type"`
	Status      StepStatus     `json:"status"`
	StartedAt   *time.Time     `json:"started_at,omitempty"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	Error       string         `json:"error,omitempty"`
}

// NewRunState creates a new run state
func NewRunState(runID string) *RunState {
	now := time.Now()
	return &RunState{
		RunID:     runID,
		StartedAt: now,
		UpdatedAt: now,
		Steps:     []StepRecord{},
		Status:    RunStatusPending,
	}
}

// AddStep registers a pending step
func (rs *RunState) AddStep(stepType StepType) {
	rs.Steps = append(rs.Steps, StepRecord{Type: stepType, Status: StepStatusPending})
	rs.UpdatedAt = time.Now()
}

// Step returns the record for a step type, or nil
func (rs *RunState) Step(stepType StepType) *StepRecord {
	for i := range rs.Steps {
		if rs.Steps[i].Type == stepType {
			return &rs.Steps[i]
		}
	}
	return nil
}

// MarkStepStarted marks a pending step as running
func (rs *RunState) MarkStepStarted(stepType StepType) {
	if step := rs.Step(stepType); step != nil && step.Status == StepStatusPending {
		now := time.Now()
		step.Status = StepStatusRunning
		step.StartedAt = &now
		rs.UpdatedAt = now
	}
}

// MarkStepCompleted marks a running step as completed
func (rs *RunState) MarkStepCompleted(stepType StepType, details map[string]any) {
	rs.finish(stepType, StepStatusCompleted, details, "")
}

// MarkStepSkipped marks a step as skipped
func (rs *RunState) MarkStepSkipped(stepType StepType) {
	rs.finish(stepType, StepStatusSkipped, nil, "")
}

// MarkStepFailed marks a step and the run as failed
func (rs *RunState) MarkStepFailed(stepType StepType, err error) {
	rs.finish(stepType, StepStatusFailed, nil, err.Error())
	rs.Status = RunStatusFailed
	rs.Error = err.Error()
}

func (rs *RunState) finish(stepType StepType, status StepStatus, details map[string]any, errMsg string) {
	step := rs.Step(stepType)
	if step == nil {
		return
	}
	now := time.Now()
	step.Status = status
	step.CompletedAt = &now
	step.Details = details
	step.Error = errMsg
	rs.UpdatedAt = now
}

// CompletedSteps returns the steps that completed, in execution order
func (rs *RunState) CompletedSteps() []StepRecord {
	var completed []StepRecord
	for _, step := range rs.Steps {
		if step.Status == StepStatusCompleted {
			completed = append(completed, step)
		}
	}
	return completed
}
