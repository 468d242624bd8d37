package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	stageExecutionErrorTemplateConstant = "stage %s failed: %s"
	stageStartedMessageConstant         = "stage started"
	stageCompletedMessageConstant       = "stage completed"
	stageNameLogFieldConstant           = "stage"
	stageDurationLogFieldConstant       = "duration"
)

// Stage is a single sequential step of a repository workflow.
type Stage interface {
	Name() string
	Execute(executionContext context.Context) error
}

// Clock abstracts time acquisition for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time source.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// StageOutcome records a completed stage and how long it ran.
type StageOutcome struct {
	StageName string
	Duration  time.Duration
}

// StageError reports the stage at which a workflow halted.
type StageError struct {
	StageName string
	Cause     error
}

// Error describes the halted stage and its cause.
func (stageError StageError) Error() string {
	return fmt.Sprintf(stageExecutionErrorTemplateConstant, stageError.StageName, stageError.Cause)
}

// Unwrap exposes the underlying cause.
func (stageError StageError) Unwrap() error {
	return stageError.Cause
}

type stageFunc struct {
	stageName string
	action    func(executionContext context.Context) error
}

// NewStage wraps a named action as a Stage.
func NewStage(stageName string, action func(executionContext context.Context) error) Stage {
	return stageFunc{stageName: stageName, action: action}
}

// Name returns the stage name.
func (stage stageFunc) Name() string {
	return stage.stageName
}

// Execute runs the wrapped action.
func (stage stageFunc) Execute(executionContext context.Context) error {
	return stage.action(executionContext)
}

// Executor runs stages sequentially, stopping at the first failure.
type Executor struct {
	logger *zap.Logger
	clock  Clock
}

// NewExecutor constructs an Executor with the provided logger and clock.
func NewExecutor(logger *zap.Logger, clock Clock) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Executor{logger: logger, clock: clock}
}

// Run executes the stages in order and reports the outcome of every completed stage.
//
// The first failing stage halts the run; already completed outcomes are
// returned alongside a StageError naming the halted stage. No rollback is
// attempted.
func (executor *Executor) Run(executionContext context.Context, stages []Stage) ([]StageOutcome, error) {
	outcomes := make([]StageOutcome, 0, len(stages))

	for _, stage := range stages {
		if stage == nil {
			continue
		}
		if contextError := executionContext.Err(); contextError != nil {
			return outcomes, contextError
		}

		executor.logger.Debug(stageStartedMessageConstant, zap.String(stageNameLogFieldConstant, stage.Name()))
		stageStartTime := executor.clock.Now()

		executionError := stage.Execute(executionContext)
		stageDuration := executor.clock.Now().Sub(stageStartTime)

		if executionError != nil {
			return outcomes, StageError{StageName: stage.Name(), Cause: executionError}
		}

		outcomes = append(outcomes, StageOutcome{StageName: stage.Name(), Duration: stageDuration})
		executor.logger.Debug(stageCompletedMessageConstant,
			zap.String(stageNameLogFieldConstant, stage.Name()),
			zap.Duration(stageDurationLogFieldConstant, stageDuration),
		)
	}

	return outcomes, nil
}
