package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	stageColumnHeaderConstant       = "Stage"
	durationColumnHeaderConstant    = "Duration"
	totalRowLabelConstant           = "Total"
	summaryTitleTemplateConstant    = "%s summary for %s"
	objectStoreLineTemplateConstant = "Object store size: %s before, %s after (%s)"
	sizeSavedTemplateConstant       = "saved %s"
	sizeGrewTemplateConstant        = "grew by %s"
	sizeUnchangedLabelConstant      = "unchanged"
	noteLineTemplateConstant        = "  - %s"
	durationRoundingUnitConstant    = 10 * time.Millisecond
)

// StageSummary captures one executed stage for summary rendering.
type StageSummary struct {
	StageName string
	Duration  time.Duration
}

// ObjectStoreSizeChange captures repository object store sizes before and after history rewriting.
type ObjectStoreSizeChange struct {
	InitialBytes uint64
	FinalBytes   uint64
}

// RunSummary aggregates the information rendered after a workflow run completes.
type RunSummary struct {
	WorkflowName   string
	RepositoryName string
	Stages         []StageSummary
	SizeChange     *ObjectStoreSizeChange
	Notes          []string
}

// RunSummaryRenderer writes workflow run summaries as bordered tables with colored accents.
type RunSummaryRenderer struct {
	outputWriter io.Writer
}

// NewRunSummaryRenderer constructs a renderer that writes summaries to the provided writer.
func NewRunSummaryRenderer(outputWriter io.Writer) *RunSummaryRenderer {
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	return &RunSummaryRenderer{outputWriter: outputWriter}
}

// Render writes the title, the stage timing table, the object store size line, and any follow-up notes.
func (renderer *RunSummaryRenderer) Render(summary RunSummary) error {
	titleLine := color.New(color.FgCyan, color.Bold).Sprintf(summaryTitleTemplateConstant, summary.WorkflowName, summary.RepositoryName)
	if _, writeError := fmt.Fprintln(renderer.outputWriter, titleLine); writeError != nil {
		return writeError
	}
	if len(summary.Stages) > 0 {
		if _, writeError := fmt.Fprintln(renderer.outputWriter, renderer.renderStageTable(summary.Stages)); writeError != nil {
			return writeError
		}
	}
	if summary.SizeChange != nil {
		if _, writeError := fmt.Fprintln(renderer.outputWriter, renderer.renderSizeChange(*summary.SizeChange)); writeError != nil {
			return writeError
		}
	}
	for _, note := range summary.Notes {
		noteLine := color.New(color.FgYellow).Sprintf(noteLineTemplateConstant, note)
		if _, writeError := fmt.Fprintln(renderer.outputWriter, noteLine); writeError != nil {
			return writeError
		}
	}
	return nil
}

func (renderer *RunSummaryRenderer) renderStageTable(stages []StageSummary) string {
	summaryTable := table.NewWriter()
	summaryTable.SetStyle(table.StyleLight)
	summaryTable.AppendHeader(table.Row{stageColumnHeaderConstant, durationColumnHeaderConstant})
	totalDuration := time.Duration(0)
	for _, stage := range stages {
		summaryTable.AppendRow(table.Row{stage.StageName, formatStageDuration(stage.Duration)})
		totalDuration += stage.Duration
	}
	summaryTable.AppendFooter(table.Row{totalRowLabelConstant, formatStageDuration(totalDuration)})
	return summaryTable.Render()
}

func (renderer *RunSummaryRenderer) renderSizeChange(sizeChange ObjectStoreSizeChange) string {
	changeDescription := sizeUnchangedLabelConstant
	changeColor := color.New(color.FgCyan)
	switch {
	case sizeChange.FinalBytes < sizeChange.InitialBytes:
		changeDescription = fmt.Sprintf(sizeSavedTemplateConstant, humanize.IBytes(sizeChange.InitialBytes-sizeChange.FinalBytes))
		changeColor = color.New(color.FgGreen)
	case sizeChange.FinalBytes > sizeChange.InitialBytes:
		changeDescription = fmt.Sprintf(sizeGrewTemplateConstant, humanize.IBytes(sizeChange.FinalBytes-sizeChange.InitialBytes))
		changeColor = color.New(color.FgYellow)
	}
	return changeColor.Sprintf(objectStoreLineTemplateConstant, humanize.IBytes(sizeChange.InitialBytes), humanize.IBytes(sizeChange.FinalBytes), changeDescription)
}

func formatStageDuration(duration time.Duration) string {
	return duration.Round(durationRoundingUnitConstant).String()
}
