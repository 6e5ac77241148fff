package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/linuxmatters/keyjive/internal/keyfinder"
)

// Groove colour palette 🎧
var (
	grooveViolet = lipgloss.Color("#8338EC") // Electric violet
	grooveBlue   = lipgloss.Color("#3A86FF") // Club blue
	grooveTeal   = lipgloss.Color("#06D6A0") // Neon teal
	grooveGold   = lipgloss.Color("#FFD166") // Strobe gold

	// Accent colours
	slateGray = lipgloss.Color("#8D99AE") // Slate for subtle text
)

// semitoneNames labels the chroma axis, with the A bin first to match
// the analysis engine's pitch-class ordering.
var semitoneNames = [12]string{"A", "Bb", "B", "C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab"}

// TrackStart signals that analysis of a track has begun
type TrackStart struct {
	Index int // 1-based position within the batch
	Total int
	Path  string
}

// TrackResult carries the outcome of one track's analysis
type TrackResult struct {
	Index   int
	Total   int
	Path    string
	Key     keyfinder.Key
	Tag     string    // key rendered in the requested notation
	Chroma  []float64 // 12-bin pitch class energies, A first
	Err     error
	Elapsed time.Duration
}

// BatchComplete signals the end of the batch run
type BatchComplete struct {
	Analysed int
	Failed   int
	Elapsed  time.Duration
}

// batchQuitMsg is sent when it's time to quit after showing completion
type batchQuitMsg struct{}

// maxVisibleResults limits the scrolling result list during a run;
// the completion screen still lists every track.
const maxVisibleResults = 8

// Model implements the Bubbletea model for batch key analysis
type Model struct {
	progressBar progress.Model

	current  *TrackStart
	results  []TrackResult
	complete *BatchComplete

	startTime       time.Time
	width           int
	height          int
	completionDelay time.Duration
	quitting        bool
}

// NewModel creates a new batch analysis UI model
func NewModel() *Model {
	// Groove gradient: electric violet → neon teal
	p := progress.New(
		progress.WithGradient(string(grooveViolet), string(grooveTeal)),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	return &Model{
		progressBar:     p,
		startTime:       time.Now(),
		completionDelay: 2 * time.Second,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progressBar.Width = min(msg.Width-30, 50)
		return m, nil

	case TrackStart:
		m.current = &msg
		return m, nil

	case TrackResult:
		m.current = nil
		m.results = append(m.results, msg)
		return m, nil

	case BatchComplete:
		m.complete = &msg
		m.quitting = true

		return m, tea.Tick(m.completionDelay, func(t time.Time) tea.Msg {
			return batchQuitMsg{}
		})

	case batchQuitMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		if m.complete != nil {
			return m, tea.Quit
		}
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the UI
func (m *Model) View() string {
	if m.complete != nil {
		return m.renderComplete()
	}
	return m.renderProgress()
}

func (m *Model) renderProgress() string {
	var s strings.Builder

	// Title
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(grooveTeal).
		Render("Keyjive 🎧")

	s.WriteString(title)
	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Foreground(grooveViolet).Render("Analysing Tracks"))
	s.WriteString("\n\n")

	// Progress bar over the whole batch
	total := m.total()
	done := len(m.results)
	if total > 0 {
		percent := float64(done) / float64(total)
		progressBar := m.progressBar.ViewAs(percent)

		s.WriteString("Progress: ")
		s.WriteString(progressBar)
		s.WriteString(fmt.Sprintf("  %d of %d", done, total))
		s.WriteString("\n")
		s.WriteString(lipgloss.NewStyle().Faint(true).Render(
			fmt.Sprintf("Elapsed: %s", formatDuration(time.Since(m.startTime)))))
		s.WriteString("\n\n")
	} else {
		s.WriteString(lipgloss.NewStyle().Faint(true).Render("Starting analysis...\n\n"))
	}

	// Recent results
	if len(m.results) > 0 {
		first := 0
		if len(m.results) > maxVisibleResults {
			first = len(m.results) - maxVisibleResults
		}
		for _, r := range m.results[first:] {
			s.WriteString(m.renderResultLine(r))
			s.WriteString("\n")
		}
		s.WriteString("\n")
	}

	// Track currently under analysis
	if m.current != nil {
		s.WriteString(lipgloss.NewStyle().Faint(true).Render("Analysing: "))
		s.WriteString(filepath.Base(m.current.Path))
		s.WriteString("\n")
	}

	// Chroma of the most recent successful track
	if last := m.lastChroma(); last != nil {
		s.WriteString("\n")
		s.WriteString(lipgloss.NewStyle().Faint(true).Render("Chroma:"))
		s.WriteString("\n")
		s.WriteString(renderChroma(last, 4))
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(grooveViolet).
		Padding(1, 2).
		Render(s.String())
}

func (m *Model) renderResultLine(r TrackResult) string {
	name := filepath.Base(r.Path)

	if r.Err != nil {
		mark := lipgloss.NewStyle().Bold(true).Foreground(grooveGold).Render("✗")
		return fmt.Sprintf("%s %-32s %s", mark, name,
			lipgloss.NewStyle().Faint(true).Render(r.Err.Error()))
	}

	mark := lipgloss.NewStyle().Bold(true).Foreground(grooveTeal).Render("✓")
	tag := lipgloss.NewStyle().Bold(true).Foreground(grooveGold).Render(r.Tag)
	elapsed := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("[%s]", formatDuration(r.Elapsed)))
	return fmt.Sprintf("%s %-32s %-12s %s", mark, name, tag, elapsed)
}

func (m *Model) renderComplete() string {
	var s strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(grooveTeal).
		Render("✓ Batch Complete!")
	if m.complete.Failed > 0 {
		title = lipgloss.NewStyle().
			Bold(true).
			Foreground(grooveGold).
			Render("Batch finished with errors")
	}

	s.WriteString(title)
	s.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().Faint(true)
	s.WriteString(labelStyle.Render(fmt.Sprintf("%d analysed, %d failed, in %s",
		m.complete.Analysed, m.complete.Failed, formatDuration(m.complete.Elapsed))))
	s.WriteString("\n\n")

	// Full listing, one line per track
	for _, r := range m.results {
		s.WriteString(m.renderResultLine(r))
		s.WriteString("\n")
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(grooveTeal).
		Padding(1, 2).
		Render(s.String()) + "\n"
}

// total reports the batch size from whichever message carried it last.
func (m *Model) total() int {
	if m.current != nil {
		return m.current.Total
	}
	if n := len(m.results); n > 0 {
		return m.results[n-1].Total
	}
	return 0
}

// lastChroma returns the chroma vector of the most recent successful
// result, or nil when every result so far failed.
func (m *Model) lastChroma() []float64 {
	for i := len(m.results) - 1; i >= 0; i-- {
		if m.results[i].Err == nil && len(m.results[i].Chroma) == 12 {
			return m.results[i].Chroma
		}
	}
	return nil
}

// renderChroma creates a groove-coloured visualisation of the 12 pitch
// class energies, one cell group per semitone with a note-name axis
func renderChroma(bins []float64, cellWidth int) string {
	if len(bins) == 0 || cellWidth < 1 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	// Groove gradient colours from low to high intensity
	grooveColors := []lipgloss.Color{
		lipgloss.Color("#2D2A55"), // Midnight indigo
		lipgloss.Color("#3D348B"), // Deep indigo
		lipgloss.Color("#5F3DC4"), // Violet
		lipgloss.Color("#8338EC"), // Electric violet
		lipgloss.Color("#3A86FF"), // Club blue
		lipgloss.Color("#00B4D8"), // Cyan
		lipgloss.Color("#06D6A0"), // Neon teal
		lipgloss.Color("#FFD166"), // Strobe gold
	}

	// Find max energy for normalisation
	maxEnergy := 0.0
	for _, b := range bins {
		if b > maxEnergy {
			maxEnergy = b
		}
	}

	if maxEnergy == 0 {
		maxEnergy = 1.0 // Avoid division by zero
	}

	var result strings.Builder
	for _, b := range bins {
		normalised := b / maxEnergy // 0.0 to 1.0
		blockIdx := int(normalised * float64(len(blocks)-1))
		if blockIdx >= len(blocks) {
			blockIdx = len(blocks) - 1
		}

		colorIdx := int(normalised * float64(len(grooveColors)-1))
		if colorIdx >= len(grooveColors) {
			colorIdx = len(grooveColors) - 1
		}

		cell := strings.Repeat(string(blocks[blockIdx]), cellWidth)
		result.WriteString(lipgloss.NewStyle().Foreground(grooveColors[colorIdx]).Render(cell))
	}

	// Note-name axis underneath
	result.WriteString("\n")
	axisStyle := lipgloss.NewStyle().Foreground(slateGray)
	for i := range bins {
		name := ""
		if i < len(semitoneNames) {
			name = semitoneNames[i]
		}
		result.WriteString(axisStyle.Render(fmt.Sprintf("%-*s", cellWidth, name)))
	}

	return result.String()
}

// Helper functions

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
