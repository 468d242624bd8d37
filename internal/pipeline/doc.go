// Package pipeline sequences the stages of grit repository workflows.
//
// An Executor runs named stages in order, measures their durations through an
// injectable Clock, and halts at the first failure with a StageError naming
// the stage that stopped the run.
package pipeline
