// Package ui renders interactive terminal views for the CLI.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"l5cond/internal/driver"
)

// payloadRow is one line of the batch view.
type payloadRow struct {
	name    string
	state   payloadState
	blocks  int
	diags   int
	elapsed time.Duration
	err     error
}

type payloadState uint8

const (
	stateQueued payloadState = iota
	stateDecoding
	stateGenerating
	stateDone
	stateFailed
)

func (s payloadState) String() string {
	switch s {
	case stateDecoding:
		return "decoding"
	case stateGenerating:
		return "generating"
	case stateDone:
		return "done"
	case stateFailed:
		return "failed"
	default:
		return "queued"
	}
}

func (s payloadState) final() bool {
	return s == stateDone || s == stateFailed
}

// weight is the share of a payload's work finished once it reaches s.
func (s payloadState) weight() float64 {
	switch s {
	case stateDecoding:
		return 0.3
	case stateGenerating:
		return 0.7
	case stateDone, stateFailed:
		return 1
	default:
		return 0
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	stateStyles = map[payloadState]lipgloss.Style{
		stateQueued:     lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		stateDecoding:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		stateGenerating: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		stateDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		stateFailed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

type batchView struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []payloadRow
	byName  map[string]int
	width   int
	closed  bool
}

type payloadEventMsg driver.Event
type streamClosedMsg struct{}

// NewProgressModel returns a Bubble Tea model listing each payload with its
// state, block count and diagnostics until events is closed.
func NewProgressModel(title string, names []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	rows := make([]payloadRow, len(names))
	byName := make(map[string]int, len(names))
	for i, name := range names {
		rows[i].name = name
		byName[name] = i
	}
	return &batchView{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		rows:    rows,
		byName:  byName,
		width:   80,
	}
}

func (v *batchView) Init() tea.Cmd {
	return tea.Batch(v.spinner.Tick, v.next())
}

func (v *batchView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case payloadEventMsg:
		return v, tea.Batch(v.apply(driver.Event(msg)), v.next())
	case streamClosedMsg:
		v.closed = true
		return v, tea.Quit
	case spinner.TickMsg:
		if v.closed {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			v.width = msg.Width
			v.bar.Width = msg.Width - 4
		}
		return v, nil
	case progress.FrameMsg:
		pm, cmd := v.bar.Update(msg)
		v.bar = pm.(progress.Model)
		return v, cmd
	}
	return v, nil
}

func (v *batchView) View() string {
	if len(v.rows) == 0 {
		return ""
	}
	t := v.totals()
	header := fmt.Sprintf("%s: %d/%d payloads, %d blocks, %d diagnostics", v.title, t.finished, len(v.rows), t.blocks, t.diags)
	if t.failed > 0 {
		header += fmt.Sprintf(", %d failed", t.failed)
	}
	if v.closed {
		header = "done " + header
	} else {
		header = v.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")
	// state(10) + counts(~24) + gutters
	nameWidth := max(v.width-40, 16)
	for _, r := range v.rows {
		b.WriteString(v.renderRow(r, nameWidth))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	if v.closed {
		b.WriteString(v.bar.ViewAs(1.0))
	} else {
		b.WriteString(v.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

func (v *batchView) renderRow(r payloadRow, nameWidth int) string {
	state := stateStyles[r.state].Render(fmt.Sprintf("%-10s", r.state))
	name := padRight(truncate(r.name, nameWidth), nameWidth)
	if !r.state.final() {
		return fmt.Sprintf("  %s %s", state, name)
	}
	if r.err != nil {
		return fmt.Sprintf("  %s %s %s", state, name, dimStyle.Render(truncate(r.err.Error(), 40)))
	}
	diags := fmt.Sprintf("%3d diag", r.diags)
	if r.diags > 0 {
		diags = warnStyle.Render(diags)
	}
	ms := dimStyle.Render(fmt.Sprintf("%6.1fms", float64(r.elapsed.Microseconds())/1000))
	return fmt.Sprintf("  %s %s %3d blk %s %s", state, name, r.blocks, diags, ms)
}

func (v *batchView) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-v.events
		if !ok {
			return streamClosedMsg{}
		}
		return payloadEventMsg(ev)
	}
}

type batchTotals struct {
	finished int
	failed   int
	blocks   int
	diags    int
}

func (v *batchView) totals() batchTotals {
	var t batchTotals
	for _, r := range v.rows {
		if r.state.final() {
			t.finished++
		}
		if r.state == stateFailed {
			t.failed++
		}
		t.blocks += r.blocks
		t.diags += r.diags
	}
	return t
}

// apply folds ev into its payload row. Events for unknown payloads are dropped.
func (v *batchView) apply(ev driver.Event) tea.Cmd {
	idx, ok := v.byName[ev.Item]
	if !ok {
		return nil
	}
	r := &v.rows[idx]
	r.state = stateFor(ev)
	if r.state.final() {
		r.blocks = ev.Blocks
		r.diags = ev.Diagnostics
		r.elapsed = ev.Elapsed
		r.err = ev.Err
	}

	sum := 0.0
	for _, row := range v.rows {
		sum += row.state.weight()
	}
	return v.bar.SetPercent(sum / float64(len(v.rows)))
}

func stateFor(ev driver.Event) payloadState {
	switch ev.Status {
	case driver.StatusDone:
		return stateDone
	case driver.StatusError:
		return stateFailed
	case driver.StatusWorking:
		if ev.Stage == driver.StageGenerate {
			return stateGenerating
		}
		return stateDecoding
	default:
		return stateQueued
	}
}

func padRight(value string, width int) string {
	if gap := width - runewidth.StringWidth(value); gap > 0 {
		return value + strings.Repeat(" ", gap)
	}
	return value
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
