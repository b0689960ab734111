package orchestrator

import (
	"context"
	"fmt"

	"github.com/compozy/versionbump/internal/domain"
	"github.com/compozy/versionbump/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Step represents a single step in a release run
type Step struct {
	Name string
	Type domain.StepType
	// Enabled false records the step as skipped without running it.
	Enabled bool
	Execute func(ctx context.Context) (details map[string]any, err error)
}

// StepRunner runs release steps in order and journals their outcome.
// A failed step aborts the run; completed steps are left in place.
type StepRunner struct {
	runID     string
	stateRepo repository.StateRepository
	state     *domain.RunState
	steps     []Step
	logger    *zap.Logger
}

// NewStepRunner creates a runner with a fresh run ID
func NewStepRunner(stateRepo repository.StateRepository, logger *zap.Logger) *StepRunner {
	runID := uuid.New().String()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StepRunner{
		runID:     runID,
		stateRepo: stateRepo,
		state:     domain.NewRunState(runID),
		steps:     []Step{},
		logger:    logger.With(zap.String("run_id", runID)),
	}
}

// RunID returns the identifier of this run
func (s *StepRunner) RunID() string {
	return s.runID
}

// AddStep appends a step to the run
func (s *StepRunner) AddStep(step Step) {
	s.steps = append(s.steps, step)
	s.state.AddStep(step.Type)
}

// Execute runs every step in order. No step is retried.
func (s *StepRunner) Execute(ctx context.Context) error {
	s.state.Status = domain.RunStatusRunning
	if err := s.saveState(ctx); err != nil {
		return fmt.Errorf("failed to save initial state: %w", err)
	}
	for _, step := range s.steps {
		if err := ctx.Err(); err != nil {
			s.state.MarkStepFailed(step.Type, err)
			s.saveStateBestEffort(ctx)
			return fmt.Errorf("step '%s' canceled: %w", step.Name, err)
		}
		if !step.Enabled {
			s.state.MarkStepSkipped(step.Type)
			s.logger.Debug("step skipped", zap.String("step", string(step.Type)))
			s.saveStateBestEffort(ctx)
			continue
		}
		if err := s.executeStep(ctx, step); err != nil {
			s.state.MarkStepFailed(step.Type, err)
			s.logger.Error("step failed", zap.String("step", string(step.Type)), zap.Error(err))
			s.saveStateBestEffort(context.WithoutCancel(ctx))
			return fmt.Errorf("step '%s' failed: %w", step.Name, err)
		}
	}
	s.state.Status = domain.RunStatusCompleted
	s.saveStateBestEffort(ctx)
	return nil
}

func (s *StepRunner) executeStep(ctx context.Context, step Step) error {
	s.state.MarkStepStarted(step.Type)
	s.logger.Debug("step started", zap.String("step", string(step.Type)))
	s.saveStateBestEffort(ctx)
	details, err := step.Execute(ctx)
	if err != nil {
		return err
	}
	s.state.MarkStepCompleted(step.Type, details)
	s.logger.Info("step completed", zap.String("step", string(step.Type)), zap.Any("details", details))
	s.saveStateBestEffort(ctx)
	return nil
}

// saveStateBestEffort persists the state, logging rather than failing the run
func (s *StepRunner) saveStateBestEffort(ctx context.Context) {
	if err := s.saveState(ctx); err != nil {
		s.logger.Warn("failed to save run state", zap.Error(err))
	}
}

func (s *StepRunner) saveState(ctx context.Context) error {
	return s.stateRepo.Save(ctx, s.state)
}

// State returns the current run state
func (s *StepRunner) State() *domain.RunState {
	return s.state
}

// SetVersions records the resolved versions in the state
func (s *StepRunner) SetVersions(oldVersion, newVersion string) {
	if oldVersion != "" {
		s.state.OldVersion = oldVersion
	}
	if newVersion != "" {
		s.state.NewVersion = newVersion
	}
}
