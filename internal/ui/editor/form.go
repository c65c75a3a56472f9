package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vidquiz/internal/authoring"
	"vidquiz/internal/question"
)

type fieldKind int

const (
	fieldType fieldKind = iota
	fieldText
	fieldEntry
	fieldAnswer
)

type field struct {
	kind  fieldKind
	index int
}

// fields lists the focusable rows of the form for its current kind.
func (m Model) fields() []field {
	out := []field{{kind: fieldType}, {kind: fieldText}}
	if m.form.Kind() == question.KindTrueFalse {
		return append(out, field{kind: fieldAnswer})
	}
	for i := range m.form.Entries() {
		out = append(out, field{kind: fieldEntry, index: i})
	}
	return out
}

func (m Model) currentField() field {
	fields := m.fields()
	return fields[max(0, min(m.focus, len(fields)-1))]
}

func (m Model) openForm(form *authoring.Form) Model {
	m.mode = modeForm
	m.form = form
	m.status = ""
	m.setFocus(1)
	return m
}

// setFocus clamps focus to the form rows and binds the text input to the
// focused row.
func (m *Model) setFocus(index int) {
	fields := m.fields()
	m.focus = max(0, min(index, len(fields)-1))
	switch current := fields[m.focus]; current.kind {
	case fieldText:
		m.input.SetValue(m.form.Text())
		m.input.CursorEnd()
		m.input.Focus()
	case fieldEntry:
		m.input.SetValue(m.form.Entries()[current.index].Text)
		m.input.CursorEnd()
		m.input.Focus()
	default:
		m.input.Blur()
	}
}

func (m Model) closeForm(status string) Model {
	m.mode = modeBrowse
	m.form = nil
	m.focus = 0
	m.input.Blur()
	m.setStatus(status)
	return m
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.formKeys
	switch {
	case key.Matches(msg, keys.Cancel):
		m.session.ClearSelection()
		return m.closeForm("Cancelled"), nil
	case key.Matches(msg, keys.Save):
		return m.saveForm(), nil
	case key.Matches(msg, keys.Next):
		m.setFocus(m.focus + 1)
		return m, nil
	case key.Matches(msg, keys.Prev):
		m.setFocus(m.focus - 1)
		return m, nil
	}

	current := m.currentField()
	switch current.kind {
	case fieldType:
		step := 0
		if key.Matches(msg, keys.Left) {
			step = -1
		} else if key.Matches(msg, keys.Right) {
			step = 1
		}
		if step != 0 {
			if err := m.form.SetKind(nextKind(m.form.Kind(), step)); err != nil {
				m.setError(err)
			}
			m.setFocus(m.focus)
		}
		return m, nil
	case fieldAnswer:
		if key.Matches(msg, keys.Left, keys.Right) || msg.String() == " " {
			next := question.AnswerTrue
			if m.form.Correct() == question.AnswerTrue {
				next = question.AnswerFalse
			}
			if err := m.form.SetCorrect(next); err != nil {
				m.setError(err)
			}
		}
		return m, nil
	case fieldEntry:
		if handled := m.updateEntry(msg, current.index); handled {
			return m, nil
		}
	}
	return m.updateInput(msg, current)
}

// updateEntry applies the option commands. It reports whether msg was one.
func (m *Model) updateEntry(msg tea.KeyMsg, index int) bool {
	keys := m.formKeys
	var err error
	switch {
	case key.Matches(msg, keys.Add):
		if err = m.form.AddEntry(); err == nil {
			m.setFocus(len(m.fields()) - 1)
		}
	case key.Matches(msg, keys.Remove):
		if err = m.form.RemoveEntry(index); err == nil {
			m.setFocus(m.focus)
		}
	case key.Matches(msg, keys.Correct):
		err = m.form.SetCorrect(m.form.Entries()[index].ID)
	case key.Matches(msg, keys.MoveUp):
		if err = m.form.MoveEntry(index, index-1); err == nil {
			m.setFocus(m.focus - 1)
		}
	case key.Matches(msg, keys.MoveDown):
		if err = m.form.MoveEntry(index, index+1); err == nil {
			m.setFocus(m.focus + 1)
		}
	default:
		return false
	}
	if err != nil {
		m.setError(err)
	} else {
		m.status = ""
	}
	return true
}

// updateInput feeds msg to the text input and writes the value back.
func (m Model) updateInput(msg tea.KeyMsg, current field) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	switch current.kind {
	case fieldText:
		m.form.SetText(m.input.Value())
	case fieldEntry:
		if err := m.form.SetEntryText(current.index, m.input.Value()); err != nil {
			m.setError(err)
		}
	}
	return m, cmd
}

func (m Model) saveForm() Model {
	id, at := m.form.ID(), m.form.Time()
	if err := m.session.Save(m.form.Build()); err != nil {
		if errors.Is(err, question.ErrIncomplete) {
			m.setError(errors.New("question is incomplete"))
		} else {
			m.setError(err)
		}
		return m
	}
	m = m.closeForm("Saved question at " + formatClock(at))
	m.refresh(id)
	m.log.Debug("question saved from editor", "id", id)
	return m
}

func (m Model) renderForm() string {
	noColor := m.opts.NoColor
	var b strings.Builder
	title := "New question at " + formatClock(m.form.Time())
	if m.form.Editing() {
		title = "Editing question at " + formatClock(m.form.Time()) + " (kind locked)"
	}
	b.WriteString(bold(title, noColor))
	b.WriteByte('\n')

	for i, current := range m.fields() {
		focused := i == m.focus
		pointer := "  "
		if focused {
			pointer = "› "
		}
		b.WriteString(pointer)
		switch current.kind {
		case fieldType:
			b.WriteString("Kind:   < " + kindLabel(m.form.Kind()) + " >")
		case fieldText:
			b.WriteString("Text:   " + m.inputOr(focused, m.form.Text()))
		case fieldAnswer:
			trueLabel, falseLabel := m.opts.Labels.True, m.opts.Labels.False
			switch m.form.Correct() {
			case question.AnswerTrue:
				trueLabel = "[" + trueLabel + "]"
			case question.AnswerFalse:
				falseLabel = "[" + falseLabel + "]"
			}
			b.WriteString("Answer: " + trueLabel + "  " + falseLabel)
		case fieldEntry:
			entry := m.form.Entries()[current.index]
			marker := fmt.Sprintf("%d.", current.index+1)
			if m.form.Kind() == question.KindMultipleChoice {
				marker = "( )"
				if entry.ID == m.form.Correct() {
					marker = "(•)"
				}
			}
			b.WriteString(marker + " " + m.inputOr(focused, entry.Text))
		}
		b.WriteByte('\n')
	}

	if m.form.Kind() == question.KindOrdering {
		b.WriteString(stylize("  Items are listed in the correct order.", noColor, lipgloss.Color("242")))
		b.WriteByte('\n')
	}
	if problems := m.form.Problems(); len(problems) > 0 {
		for _, issue := range problems {
			b.WriteString(stylize("  ! "+issue.Field+": "+issue.Message, noColor, lipgloss.Color("208")))
			b.WriteByte('\n')
		}
	} else {
		b.WriteString(stylize("  Ready to save.", noColor, lipgloss.Color("34")))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) inputOr(focused bool, value string) string {
	if focused {
		return m.input.View()
	}
	if value == "" {
		return "(empty)"
	}
	return value
}
