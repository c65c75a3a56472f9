// Package editor is the terminal authoring surface: a timeline with question
// markers, the question list, the question form, and a live preview of the
// branching playback.
package editor

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vidquiz/internal/authoring"
	"vidquiz/internal/export"
	"vidquiz/internal/logger"
	"vidquiz/internal/media"
	"vidquiz/internal/question"
)

type mode int

const (
	modeBrowse mode = iota
	modeForm
	modePreview
)

// ExportFunc writes an artifact and returns the path it was written to.
type ExportFunc func(ctx context.Context, mode export.Mode, video *media.Source, questions []question.Question) (string, error)

// SaveFunc persists the question set, typically to the question file.
type SaveFunc func(questions []question.Question) (string, error)

// Options configures the editor.
type Options struct {
	NoColor bool
	// Tick is the preview clock period. Each tick advances playback by the
	// same amount of media time.
	Tick     time.Duration
	Duration float64
	Labels   export.Labels
	Export   ExportFunc
	Save     SaveFunc
	Logger   *logger.Logger
	Rand     *rand.Rand
}

// Model is the bubbletea model of the editor.
type Model struct {
	session *authoring.Session
	opts    Options
	log     *logger.Logger

	mode     mode
	cursor   float64
	table    table.Model
	rows     []question.Question
	input    textinput.Model
	help     help.Model
	browse   browseKeys
	formKeys formKeys
	playKeys previewKeys

	form       *authoring.Form
	focus      int
	preview    *preview
	previewGen int

	status    string
	statusErr bool
	width     int
}

// NewModel builds an editor over session.
func NewModel(session *authoring.Session, opts Options) Model {
	if opts.Tick <= 0 {
		opts.Tick = 250 * time.Millisecond
	}
	if opts.Labels == (export.Labels{}) {
		opts.Labels = export.DefaultOptions().Labels
	}
	t := table.New(
		table.WithColumns(columnsForWidth(80)),
		table.WithFocused(true),
		table.WithHeight(8),
	)
	t.SetStyles(tableStyles(opts.NoColor))
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 500

	m := Model{
		session:  session,
		opts:     opts,
		log:      logger.OrNop(opts.Logger),
		table:    t,
		input:    input,
		help:     help.New(),
		browse:   newBrowseKeys(),
		formKeys: newFormKeys(),
		playKeys: newPreviewKeys(),
		width:    80,
	}
	m.refresh("")
	return m
}

// Init has no startup work.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update routes messages to the active mode.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.help.Width = typed.Width
		m.table.SetWidth(typed.Width)
		m.table.SetColumns(columnsForWidth(typed.Width))
		m.table.SetHeight(max(typed.Height-16, 3))
		m.input.Width = max(typed.Width-16, 20)
		return m, nil
	case exportDoneMsg:
		return m.finishExport(typed), nil
	case tickMsg:
		return m.tickPreview(typed)
	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.updateForm(typed)
		case modePreview:
			return m.updatePreview(typed)
		default:
			return m.updateBrowse(typed)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.browse
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, keys.Back):
		m.moveCursor(-10)
	case key.Matches(msg, keys.Forward):
		m.moveCursor(10)
	case key.Matches(msg, keys.Start):
		m.cursor = 0
	case key.Matches(msg, keys.Up):
		m.table.MoveUp(1)
	case key.Matches(msg, keys.Down):
		m.table.MoveDown(1)
	case key.Matches(msg, keys.Jump):
		if q, ok := m.highlighted(); ok {
			m.cursor = q.Meta().Time
		}
	case key.Matches(msg, keys.New):
		m.session.BeginCreate(m.cursor)
		m = m.openForm(authoring.NewForm(m.cursor))
	case key.Matches(msg, keys.Edit):
		q, ok := m.highlighted()
		if !ok {
			return m, nil
		}
		selected, err := m.session.Select(q.Meta().ID)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m = m.openForm(authoring.EditForm(selected))
	case key.Matches(msg, keys.Delete):
		q, ok := m.highlighted()
		if ok && m.session.Delete(q.Meta().ID) {
			m.refresh("")
			m.setStatus("Deleted question at " + formatClock(q.Meta().Time))
		}
	case key.Matches(msg, keys.Preview):
		return m.startPreview()
	case key.Matches(msg, keys.ExportHTML):
		return m.startExport(export.ModeHTML)
	case key.Matches(msg, keys.ExportZip):
		return m.startExport(export.ModeZip)
	case key.Matches(msg, keys.ExportDir):
		return m.startExport(export.ModeDir)
	case key.Matches(msg, keys.Save):
		m.saveQuestions()
	}
	return m, nil
}

func (m *Model) moveCursor(delta float64) {
	m.cursor = max(0, m.cursor+delta)
}

// highlighted returns the question under the table cursor.
func (m Model) highlighted() (question.Question, bool) {
	index := m.table.Cursor()
	if index < 0 || index >= len(m.rows) {
		return nil, false
	}
	return m.rows[index], true
}

// refresh reloads the question list and keeps the table cursor on id when
// it is given.
func (m *Model) refresh(id string) {
	m.rows = m.session.Questions()
	m.table.SetRows(rowsForQuestions(m.rows))
	if id == "" {
		if m.table.Cursor() >= len(m.rows) {
			m.table.SetCursor(max(len(m.rows)-1, 0))
		}
		return
	}
	if index := question.IndexOf(m.rows, id); index >= 0 {
		m.table.SetCursor(index)
	}
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

func (m *Model) saveQuestions() {
	if m.opts.Save == nil {
		m.setError(errors.New("no question file to save to"))
		return
	}
	path, err := m.opts.Save(m.session.Questions())
	if err != nil {
		m.setError(err)
		return
	}
	m.setStatus("Saved questions to " + path)
}

type exportDoneMsg struct {
	mode export.Mode
	path string
	err  error
}

func (m Model) startExport(mode export.Mode) (tea.Model, tea.Cmd) {
	if m.opts.Export == nil {
		m.setError(errors.New("export is not configured"))
		return m, nil
	}
	if m.session.Exporting() {
		m.setError(authoring.ErrExportInProgress)
		return m, nil
	}
	m.setStatus(fmt.Sprintf("Exporting %s...", mode))
	session, run := m.session, m.opts.Export
	return m, func() tea.Msg {
		var written string
		err := session.Export(context.Background(), mode, func(ctx context.Context, video *media.Source, questions []question.Question) error {
			path, err := run(ctx, mode, video, questions)
			written = path
			return err
		})
		return exportDoneMsg{mode: mode, path: written, err: err}
	}
}

func (m Model) finishExport(msg exportDoneMsg) Model {
	if msg.err != nil {
		m.setError(msg.err)
		return m
	}
	m.setStatus(fmt.Sprintf("Exported %s to %s", msg.mode, msg.path))
	return m
}

// View renders the active mode.
func (m Model) View() string {
	questions := m.rows
	selectedID := ""
	if q, ok := m.highlighted(); ok && m.mode == modeBrowse {
		selectedID = q.Meta().ID
	}
	cursor := m.cursor
	if m.mode == modePreview && m.preview != nil {
		cursor = m.preview.media.CurrentTime()
	}
	length := timelineLength(m.opts.Duration, cursor, questions)

	parts := []string{
		m.renderHeader(),
		renderTimeline(max(m.width-2, 10), length, cursor, questions, selectedID),
	}
	switch m.mode {
	case modeForm:
		parts = append(parts, m.renderForm(), m.help.View(m.formKeys))
	case modePreview:
		parts = append(parts, m.renderPreview(), m.help.View(m.playKeys))
	default:
		parts = append(parts, m.table.View(), m.help.View(m.browse))
	}
	if m.status != "" {
		color := lipgloss.Color("244")
		if m.statusErr {
			color = lipgloss.Color("196")
		}
		parts = append(parts, stylize(m.status, m.opts.NoColor, color))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader() string {
	line := "vidquiz"
	if video, ok := m.session.Video(); ok {
		line += " | " + video.Name + " (" + video.MIME + ")"
	} else {
		line += " | no video"
	}
	line += fmt.Sprintf(" | %d questions", len(m.rows))
	if m.session.Exporting() {
		line += " | exporting"
	}
	return stylize(line, m.opts.NoColor, lipgloss.Color("33"))
}
