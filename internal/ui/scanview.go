// Package ui renders scan progress and results in the terminal.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/tonicapp/tonic/internal/orchestrator"
	"github.com/tonicapp/tonic/internal/scan"
)

// scanStages in execution order.
var scanStages = []orchestrator.Stage{
	orchestrator.StagePreparing,
	orchestrator.StageScanningDisk,
	orchestrator.StageCheckingApps,
	orchestrator.StageAnalyzingSystem,
}

type stageDoneMsg struct {
	stage    orchestrator.Stage
	progress float64
	err      error
}

type finalizedMsg struct {
	result *scan.Result
	err    error
}

type pollMsg time.Time

// ScanModel drives the staged scan and shows live partial totals. The
// orchestrator's accessors are polled while stages run in the
// background; that concurrent read path is exactly what the aggregate's
// lock exists for.
type ScanModel struct {
	ctx    context.Context
	cancel context.CancelFunc
	orch   *orchestrator.Orchestrator

	spinner spinner.Model
	bar     progress.Model

	stage     orchestrator.Stage
	pct       float64
	space     int64
	items     int
	startTime time.Time

	result *scan.Result
	err    error
	done   bool
}

// NewScanModel builds the scan view around an orchestrator.
func NewScanModel(ctx context.Context, orch *orchestrator.Orchestrator) *ScanModel {
	ctx, cancel := context.WithCancel(ctx)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = titleStyle

	return &ScanModel{
		ctx:       ctx,
		cancel:    cancel,
		orch:      orch,
		spinner:   s,
		bar:       progress.New(progress.WithDefaultGradient()),
		stage:     orchestrator.StagePreparing,
		startTime: time.Now(),
	}
}

// Result returns the finalized scan result, nil if cancelled or failed.
func (m *ScanModel) Result() *scan.Result { return m.result }

// Err returns the terminal error, if any.
func (m *ScanModel) Err() error { return m.err }

// Init starts the first stage and the poll loop.
func (m *ScanModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runStage(orchestrator.StagePreparing), pollTick())
}

// Update handles messages.
func (m *ScanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.cancel()
			m.err = orchestrator.ErrCancelled
			m.done = true
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pollMsg:
		if m.done {
			return m, nil
		}
		m.pct = m.orch.Progress()
		m.space = m.orch.SpaceFound()
		m.items = m.orch.FlaggedItems()
		return m, pollTick()

	case stageDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.done = true
			return m, tea.Quit
		}
		m.pct = msg.progress
		next := msg.stage + 1
		if next > orchestrator.StageAnalyzingSystem {
			return m, m.finalize()
		}
		m.stage = next
		return m, m.runStage(next)

	case finalizedMsg:
		m.done = true
		m.result = msg.result
		m.err = msg.err
		m.pct = 1.0
		return m, tea.Quit
	}

	return m, nil
}

// View renders the scan view.
func (m *ScanModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Tonic Smart Scan"))
	b.WriteString("\n\n")

	if !m.done {
		b.WriteString(m.spinner.View())
		b.WriteString(fmt.Sprintf(" %s... ", m.stage))
		b.WriteString(dimStyle.Render(fmt.Sprintf("(%s)", time.Since(m.startTime).Round(time.Second))))
		b.WriteString("\n\n")
	}

	b.WriteString(m.bar.ViewAs(m.pct))
	b.WriteString("\n\n")

	b.WriteString(dimStyle.Render("Space found: "))
	b.WriteString(valueStyle.Render(humanize.IBytes(uint64(m.space))))
	b.WriteString(dimStyle.Render("   Items flagged: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d", m.items)))
	b.WriteString("\n")

	if m.done && m.result != nil {
		b.WriteString("\n")
		b.WriteString(goodStyle.Render(fmt.Sprintf("Scan complete, health score %d", m.result.HealthScore)))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *ScanModel) runStage(stage orchestrator.Stage) tea.Cmd {
	return func() tea.Msg {
		p, err := m.orch.RunStage(m.ctx, stage)
		return stageDoneMsg{stage: stage, progress: p, err: err}
	}
}

func (m *ScanModel) finalize() tea.Cmd {
	return func() tea.Msg {
		result, err := m.orch.Finalize()
		return finalizedMsg{result: result, err: err}
	}
}

func pollTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}
