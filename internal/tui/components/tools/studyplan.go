package tools

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/textinput"
	"charm.land/lipgloss/v2"

	"github.com/havenchat/haven/internal/conversation"
	"github.com/havenchat/haven/internal/tui/styles"
	"github.com/havenchat/haven/internal/tui/util"
)

// SubmitStudyPlanMsg carries a completed study plan form.
type SubmitStudyPlanMsg struct {
	Plan conversation.StudyPlan
}

// Form field indices.
const (
	fieldSubject = iota
	fieldGoal
	fieldMinutes
	fieldDays
	fieldCount
)

// StudyPlanForm collects the inputs for a study plan request.
type StudyPlanForm struct {
	inputs  [fieldCount]textinput.Model
	focused int
	errMsg  string
	width   int
	height  int
}

// NewStudyPlanForm creates the study plan form.
func NewStudyPlanForm() *StudyPlanForm {
	f := &StudyPlanForm{}

	placeholders := [fieldCount]string{
		"e.g. Biology",
		"e.g. Be ready for the mock exam",
		"e.g. 30",
		"e.g. 7",
	}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 120
		f.inputs[i] = ti
	}
	f.inputs[fieldSubject].Focus()

	return f
}

// Init initializes the form.
func (f *StudyPlanForm) Init() tea.Cmd {
	return textinput.Blink
}

// Reset clears all fields and refocuses the first one.
func (f *StudyPlanForm) Reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focused = fieldSubject
	f.errMsg = ""
	f.inputs[fieldSubject].Focus()
}

// SetSize sets the form dimensions.
func (f *StudyPlanForm) SetSize(width, height int) {
	f.width = width
	f.height = height
	for i := range f.inputs {
		f.inputs[i].SetWidth(40)
	}
}

// Update handles form events.
func (f *StudyPlanForm) Update(msg tea.Msg) (*StudyPlanForm, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			f.moveFocus(1)
			return f, nil
		case "shift+tab", "up":
			f.moveFocus(-1)
			return f, nil
		case "enter":
			if f.focused < fieldCount-1 {
				f.moveFocus(1)
				return f, nil
			}
			return f.submit()
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return f, cmd
}

func (f *StudyPlanForm) moveFocus(delta int) {
	f.inputs[f.focused].Blur()
	f.focused = (f.focused + delta + fieldCount) % fieldCount
	f.inputs[f.focused].Focus()
}

// submit validates the fields and emits the plan. Numeric fields must be
// positive integers; validation failures keep the form open.
func (f *StudyPlanForm) submit() (*StudyPlanForm, tea.Cmd) {
	subject := strings.TrimSpace(f.inputs[fieldSubject].Value())
	goal := strings.TrimSpace(f.inputs[fieldGoal].Value())
	if subject == "" || goal == "" {
		f.errMsg = "Please fill in the subject and your goal."
		return f, nil
	}

	minutes, err := strconv.Atoi(strings.TrimSpace(f.inputs[fieldMinutes].Value()))
	if err != nil || minutes < 1 {
		f.errMsg = "Minutes per day should be a positive number."
		return f, nil
	}
	days, err := strconv.Atoi(strings.TrimSpace(f.inputs[fieldDays].Value()))
	if err != nil || days < 1 {
		f.errMsg = "Days until the deadline should be a positive number."
		return f, nil
	}

	f.errMsg = ""
	plan := conversation.StudyPlan{
		Subject:       subject,
		Goal:          goal,
		MinutesPerDay: minutes,
		DaysUntilDue:  days,
	}
	return f, util.CmdHandler(SubmitStudyPlanMsg{Plan: plan})
}

// Cursor returns the cursor of the focused field.
func (f *StudyPlanForm) Cursor() *tea.Cursor {
	return f.inputs[f.focused].Cursor()
}

// View renders the form.
func (f *StudyPlanForm) View() string {
	th := styles.CurrentTheme()

	labels := [fieldCount]string{
		"Subject",
		"Goal",
		"Minutes per day",
		"Days until deadline",
	}

	var rows []string
	rows = append(rows, th.S().Title.Render("Study Plan"), "")
	for i := range f.inputs {
		labelStyle := th.S().Muted
		if i == f.focused {
			labelStyle = th.S().Primary
		}
		rows = append(rows, labelStyle.Render(labels[i]), f.inputs[i].View(), "")
	}

	if f.errMsg != "" {
		rows = append(rows, th.S().Warning.Render(f.errMsg), "")
	}
	rows = append(rows, th.S().Subtle.Render("tab next field • enter submit • esc close"))

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.Place(f.width, f.height, lipgloss.Center, lipgloss.Center, content)
}
