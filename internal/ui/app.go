// Package ui is the interactive terminal client. It drives a
// navigation.Controller, so every rule enforced there (login before any
// screen, per-user isolation, logout revocation) applies here unchanged.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fastygo/progress/domain"
	"github.com/fastygo/progress/internal/ui/styles"
	"github.com/fastygo/progress/usecase/activity"
	"github.com/fastygo/progress/usecase/navigation"
	"github.com/fastygo/progress/usecase/task"
)

type screen int

const (
	screenAuth screen = iota
	screenMenu
	screenTaskForm
	screenTaskList
	screenLogForm
	screenHabits
	screenDashboard
	screenExport
)

type action int

const (
	actLogin action = iota
	actSignUp
	actAddTask
	actListTasks
	actUpdateStatus
	actAddLog
	actListHabits
	actAddHabit
	actMarkHabit
	actDashboard
	actExport
	actLogout
)

// resultMsg carries the outcome of one controller call back into Update.
type resultMsg struct {
	act action
	out interface{}
	err error
}

type Model struct {
	ctl     *navigation.Controller
	timeout time.Duration
	styles  *styles.Styles
	keys    KeyMap

	screen    screen
	signingUp bool
	auth      *form
	taskForm  *form
	logForm   *form
	habitForm *form
	export    *form

	menuCursor  int
	tasks       []domain.Task
	taskCursor  int
	habits      []domain.HabitStatus
	habitCursor int
	dashboard   *domain.Dashboard

	status    string
	statusErr bool
	width     int
	height    int
}

// New builds the client. exportDir pre-fills the export screen.
func New(ctl *navigation.Controller, timeout time.Duration, exportDir string) *Model {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	m := &Model{
		ctl:     ctl,
		timeout: timeout,
		styles:  styles.NewStyles(),
		keys:    DefaultKeyMap(),
		auth: newForm(
			[2]string{"Username", "your name"},
			[2]string{"Password", ""},
		).masked(1),
		taskForm: newForm(
			[2]string{"Name", "Read chapter 3"},
			[2]string{"Category", "Study | Fitness | Project | Personal"},
			[2]string{"Priority", "High | Medium | Low"},
			[2]string{"Status", "Pending (default) | Completed"},
		),
		logForm: newForm(
			[2]string{"Hours", "2.5"},
			[2]string{"Notes", "what went well"},
			[2]string{"Mood", "1-5"},
			[2]string{"Date", "YYYY-MM-DD (default today)"},
		),
		habitForm: newForm([2]string{"New habit", "Drink water"}),
		export:    newForm([2]string{"Directory", "."}),
	}
	m.export.fields[0].input.SetValue(exportDir)
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.auth.setFocus(0)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case resultMsg:
		return m, m.handleResult(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		switch m.screen {
		case screenAuth:
			return m, m.updateAuth(msg)
		case screenMenu:
			return m, m.updateMenu(msg)
		case screenTaskForm:
			return m, m.updateForm(msg, m.taskForm, m.submitTask)
		case screenLogForm:
			return m, m.updateForm(msg, m.logForm, m.submitLog)
		case screenExport:
			return m, m.updateForm(msg, m.export, m.submitExport)
		case screenTaskList:
			return m, m.updateTaskList(msg)
		case screenHabits:
			return m, m.updateHabits(msg)
		case screenDashboard:
			if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Enter) {
				m.screen = screenMenu
			}
			return m, nil
		}
	}
	return m, nil
}

func (m *Model) call(act action, fn func(ctx context.Context) (interface{}, error)) tea.Cmd {
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		out, err := fn(ctx)
		return resultMsg{act: act, out: out, err: err}
	}
}

func (m *Model) selectScreen(act action, s navigation.Screen, input interface{}) tea.Cmd {
	return m.call(act, func(ctx context.Context) (interface{}, error) {
		return m.ctl.Select(ctx, s, input)
	})
}

func (m *Model) updateAuth(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Toggle):
		m.signingUp = !m.signingUp
		m.clearStatus()
		return nil
	case key.Matches(msg, m.keys.Back):
		return tea.Quit
	}
	return m.updateForm(msg, m.auth, m.submitAuth)
}

func (m *Model) submitAuth() tea.Cmd {
	username, password := m.auth.value(0), m.auth.fields[1].input.Value()
	if m.signingUp {
		return m.call(actSignUp, func(ctx context.Context) (interface{}, error) {
			return m.ctl.SignUp(ctx, username, password)
		})
	}
	return m.call(actLogin, func(ctx context.Context) (interface{}, error) {
		return nil, m.ctl.Login(ctx, username, password)
	})
}

func (m *Model) updateMenu(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.menuCursor < len(navigation.Menu)-1 {
			m.menuCursor++
		}
	case key.Matches(msg, m.keys.Enter):
		m.clearStatus()
		switch navigation.Menu[m.menuCursor] {
		case navigation.ScreenAddTask:
			m.screen = screenTaskForm
			m.taskForm.reset()
			return focusForm(m.taskForm)
		case navigation.ScreenTasks:
			return m.selectScreen(actListTasks, navigation.ScreenTasks, nil)
		case navigation.ScreenAddLog:
			m.screen = screenLogForm
			m.logForm.reset()
			return focusForm(m.logForm)
		case navigation.ScreenHabits:
			return m.selectScreen(actListHabits, navigation.ScreenHabits, nil)
		case navigation.ScreenDashboard:
			return m.selectScreen(actDashboard, navigation.ScreenDashboard, nil)
		case navigation.ScreenExport:
			m.screen = screenExport
			return focusForm(m.export)
		case navigation.ScreenLogout:
			return m.selectScreen(actLogout, navigation.ScreenLogout, nil)
		}
	}
	return nil
}

func focusForm(f *form) tea.Cmd { return f.setFocus(f.focus) }

// updateForm moves between fields and submits on enter in the last one.
func (m *Model) updateForm(msg tea.KeyMsg, f *form, submit func() tea.Cmd) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = screenMenu
		return nil
	case key.Matches(msg, m.keys.Enter):
		if f.onLast() {
			return submit()
		}
		return f.next()
	case key.Matches(msg, m.keys.Next):
		return f.next()
	case key.Matches(msg, m.keys.Prev):
		return f.prev()
	}
	return f.update(msg)
}

func (m *Model) submitTask() tea.Cmd {
	in := task.Input{
		Name:     m.taskForm.value(0),
		Category: m.taskForm.value(1),
		Priority: m.taskForm.value(2),
		Status:   m.taskForm.value(3),
	}
	return m.selectScreen(actAddTask, navigation.ScreenAddTask, in)
}

func (m *Model) submitLog() tea.Cmd {
	hours, err := strconv.ParseFloat(m.logForm.value(0), 64)
	if err != nil {
		m.setError(errors.New("hours must be a number"))
		return nil
	}
	mood, err := strconv.Atoi(m.logForm.value(2))
	if err != nil {
		m.setError(fmt.Errorf("mood must be a whole number between %d and %d", domain.MinMood, domain.MaxMood))
		return nil
	}
	in := activity.Input{
		Hours: hours,
		Notes: m.logForm.value(1),
		Mood:  mood,
		Date:  m.logForm.value(3),
	}
	return m.selectScreen(actAddLog, navigation.ScreenAddLog, in)
}

func (m *Model) submitExport() tea.Cmd {
	dir := m.export.value(0)
	if dir == "" {
		dir = "."
	}
	return m.selectScreen(actExport, navigation.ScreenExport, navigation.ExportInput{Dir: dir})
}

func (m *Model) updateTaskList(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = screenMenu
	case key.Matches(msg, m.keys.Up):
		if m.taskCursor > 0 {
			m.taskCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.taskCursor < len(m.tasks)-1 {
			m.taskCursor++
		}
	case key.Matches(msg, m.keys.Enter):
		if len(m.tasks) == 0 {
			return nil
		}
		t := m.tasks[m.taskCursor]
		next := domain.StatusCompleted
		if t.IsCompleted() {
			next = domain.StatusPending
		}
		return m.selectScreen(actUpdateStatus, navigation.ScreenUpdateStatus, navigation.StatusInput{TaskID: t.ID, Status: string(next)})
	}
	return nil
}

// updateHabits adds a habit when the input holds a title and otherwise
// checks in the selected one. Only arrow keys move, so j/k stay typeable.
func (m *Model) updateHabits(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = screenMenu
		return nil
	case msg.Type == tea.KeyUp:
		if m.habitCursor > 0 {
			m.habitCursor--
		}
		return nil
	case msg.Type == tea.KeyDown:
		if m.habitCursor < len(m.habits)-1 {
			m.habitCursor++
		}
		return nil
	case key.Matches(msg, m.keys.Enter):
		if title := m.habitForm.value(0); title != "" {
			return m.selectScreen(actAddHabit, navigation.ScreenAddHabit, navigation.HabitInput{Title: title})
		}
		if len(m.habits) == 0 {
			return nil
		}
		id := m.habits[m.habitCursor].ID
		return m.selectScreen(actMarkHabit, navigation.ScreenMarkHabit, navigation.MarkHabitInput{HabitID: id})
	}
	return m.habitForm.update(msg)
}

func (m *Model) handleResult(msg resultMsg) tea.Cmd {
	if msg.err != nil {
		if errors.Is(msg.err, domain.ErrUnauthorized) {
			if state, _ := m.ctl.State(); state == navigation.Unauthenticated {
				m.screen = screenAuth
				m.auth.reset()
			}
		}
		m.setError(msg.err)
		return nil
	}

	switch msg.act {
	case actSignUp:
		m.signingUp = false
		m.setOK("Account created. Log in to continue.")
		m.auth.fields[1].input.Reset()
	case actLogin:
		_, username := m.ctl.State()
		m.auth.reset()
		m.screen = screenMenu
		m.menuCursor = 0
		m.setOK("Logged in as " + username)
	case actAddTask:
		t := msg.out.(*domain.Task)
		m.screen = screenMenu
		m.setOK(fmt.Sprintf("Task %q added.", t.Name))
	case actListTasks:
		m.tasks = msg.out.([]domain.Task)
		if m.taskCursor >= len(m.tasks) {
			m.taskCursor = 0
		}
		m.screen = screenTaskList
	case actUpdateStatus:
		m.setOK("Status updated.")
		return m.selectScreen(actListTasks, navigation.ScreenTasks, nil)
	case actAddLog:
		e := msg.out.(*domain.LogEntry)
		m.screen = screenMenu
		m.setOK("Daily log saved for " + domain.FormatDate(e.Date) + ".")
	case actListHabits:
		m.habits = msg.out.([]domain.HabitStatus)
		if m.habitCursor >= len(m.habits) {
			m.habitCursor = 0
		}
		if m.screen != screenHabits {
			m.screen = screenHabits
			m.habitForm.reset()
			return focusForm(m.habitForm)
		}
	case actAddHabit:
		h := msg.out.(*domain.Habit)
		m.habitForm.reset()
		m.setOK(fmt.Sprintf("Habit %q added.", h.Title))
		return m.selectScreen(actListHabits, navigation.ScreenHabits, nil)
	case actMarkHabit:
		st := msg.out.(*domain.HabitStatus)
		m.setOK(fmt.Sprintf("%q done today, streak %d day(s).", st.Title, st.Streak))
		return m.selectScreen(actListHabits, navigation.ScreenHabits, nil)
	case actDashboard:
		m.dashboard = msg.out.(*domain.Dashboard)
		m.screen = screenDashboard
	case actExport:
		m.screen = screenMenu
		m.setOK("Exported " + strings.Join(msg.out.([]string), ", "))
	case actLogout:
		m.screen = screenAuth
		m.auth.reset()
		m.setOK("Logged out.")
	}
	return nil
}

func (m *Model) setOK(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(err error) {
	m.status, m.statusErr = err.Error(), true
}

func (m *Model) clearStatus() {
	m.status, m.statusErr = "", false
}

func (m *Model) View() string {
	var body, help string
	switch m.screen {
	case screenAuth:
		title := "Log in"
		if m.signingUp {
			title = "Sign up"
		}
		body = m.styles.Title.Render("Progress Tracker · "+title) + "\n" + m.auth.view(m.styles)
		help = "enter: submit · ctrl+t: switch login/sign up · esc: quit"
	case screenMenu:
		body = m.menuView()
		help = "↑/↓: move · enter: open · ctrl+c: quit"
	case screenTaskForm:
		body = m.styles.Title.Render("Add Task") + "\n" + m.taskForm.view(m.styles)
		help = "tab: next · enter on last field: save · esc: back"
	case screenLogForm:
		body = m.styles.Title.Render("Daily Log") + "\n" + m.logForm.view(m.styles)
		help = "tab: next · enter on last field: save · esc: back"
	case screenExport:
		body = m.styles.Title.Render("Export Data") + "\n" + m.export.view(m.styles)
		help = "enter: write tasks.csv and logs.csv · esc: back"
	case screenTaskList:
		body = m.taskListView()
		help = "↑/↓: move · enter: toggle completed · esc: back"
	case screenHabits:
		body = m.habitsView()
		help = "type a title + enter: add · ↑/↓ + enter: mark done today · esc: back"
	case screenDashboard:
		body = m.dashboardView()
		help = "esc: back"
	}

	if m.status != "" {
		style := m.styles.StatusOK
		if m.statusErr {
			style = m.styles.StatusErr
		}
		body += "\n\n" + style.Render(m.status)
	}
	body += "\n" + m.styles.Help.Render(help)

	content := lipgloss.NewStyle().Width(styles.ContentWidth(m.width)).Padding(1, 2).Render(body)
	return styles.CenterView(content, m.width, m.height)
}

func (m *Model) menuView() string {
	_, username := m.ctl.State()
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Menu") + m.styles.TitleMuted.Render("  "+username) + "\n")
	for i, s := range navigation.Menu {
		style := m.styles.ListItem
		if i == m.menuCursor {
			style = m.styles.ListSelected
		}
		b.WriteString(style.Render(string(s)) + "\n")
	}
	return b.String()
}

func (m *Model) taskListView() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Tasks") + "\n")
	if len(m.tasks) == 0 {
		b.WriteString(m.styles.TitleMuted.Render("No tasks yet."))
		return b.String()
	}
	for i, t := range m.tasks {
		mark := m.styles.Pending.Render("○")
		if t.IsCompleted() {
			mark = m.styles.Completed.Render("●")
		}
		line := fmt.Sprintf("%s %-28s %-9s %-6s %s", mark, t.Name, t.Category, t.Priority, domain.FormatDate(t.CreatedDate))
		style := m.styles.ListItem
		if i == m.taskCursor {
			style = m.styles.ListSelected
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}

func (m *Model) habitsView() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Habits") + "\n")
	b.WriteString(m.habitForm.view(m.styles) + "\n")
	if len(m.habits) == 0 {
		b.WriteString(m.styles.TitleMuted.Render("No habits yet."))
		return b.String()
	}
	for i, h := range m.habits {
		mark := m.styles.Pending.Render("○")
		if h.DoneToday {
			mark = m.styles.Completed.Render("●")
		}
		line := fmt.Sprintf("%s %-28s streak %d", mark, h.Title, h.Streak)
		style := m.styles.ListItem
		if i == m.habitCursor {
			style = m.styles.ListSelected
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}

func (m *Model) dashboardView() string {
	d := m.dashboard
	if d == nil {
		return ""
	}
	row := func(label, value string) string {
		return m.styles.MetricLabel.Render(label) + m.styles.MetricValue.Render(value)
	}
	rows := []string{
		m.styles.Title.Render("Dashboard"),
		row("Tasks completed", fmt.Sprintf("%d / %d (%.1f%%)", d.CompletedCount, d.TotalCount, d.CompletionPercent)),
		row("Hours logged", fmt.Sprintf("%.2f", d.TotalHours)),
		row("Average mood", fmt.Sprintf("%.2f", d.AverageMood)),
		row("Productivity score", fmt.Sprintf("%.2f", d.ProductivityScore)),
		row("Current streak", fmt.Sprintf("%d day(s)", d.CurrentStreak)),
		row("Habits done today", fmt.Sprintf("%d / %d", d.HabitsDoneToday, d.HabitCount)),
	}
	for _, s := range domain.Statuses {
		rows = append(rows, row("  "+string(s), strconv.Itoa(d.StatusCounts[s])))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
