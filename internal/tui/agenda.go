// Package tui implements the interactive terminal agenda.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/simtask/simtask/internal/config"
	"github.com/simtask/simtask/internal/date"
	"github.com/simtask/simtask/internal/history"
	"github.com/simtask/simtask/internal/notify"
	"github.com/simtask/simtask/internal/reminder"
	"github.com/simtask/simtask/internal/store"
	"github.com/simtask/simtask/internal/task"
)

// view represents the current screen state.
type view int

const (
	viewAgenda view = iota
	viewDetail
	viewConfirmDelete
)

const (
	keyEsc = "esc"

	agendaChrome = 2                // blank line + status bar below the list area
	errorChrome  = 1                // extra line when error toast is displayed
	tickInterval = 30 * time.Second // how often "due in" labels refresh
)

// Agenda is the top-level bubbletea model: tasks grouped into overdue,
// today, and upcoming sections, ordered by due instant.
type Agenda struct {
	cfg      *config.Config
	st       store.Store
	delivery notify.Delivery
	sched    *reminder.Scheduler

	tasks     []*task.Task
	sections  []section
	rows      []row // flattened sections for cursor navigation
	selected  int   // index into rows, always on a task row
	scrollOff int   // first visible row index

	alerts      map[string]int // pending alert count per task ID
	alertsToday int            // alerts firing today, for the status bar

	view   view
	width  int
	height int
	err    error
	now    func() time.Time

	// Delete confirmation.
	deleteID    string
	deleteTitle string
}

// section is one labeled group of the agenda.
type section struct {
	label string
	tasks []*task.Task
}

// row is one display line: either a section header or a task.
type row struct {
	header string     // non-empty for section header rows
	task   *task.Task // non-nil for task rows
}

// NewAgenda creates the agenda model over the given collaborators.
func NewAgenda(cfg *config.Config, st store.Store, delivery notify.Delivery) *Agenda {
	a := &Agenda{
		cfg:      cfg,
		st:       st,
		delivery: delivery,
		sched:    reminder.NewScheduler(delivery, reminder.PolicyFromConfig(cfg)),
		now:      time.Now,
	}
	a.reload()
	return a
}

// SetNow overrides the clock used for grouping and "due in" labels. Used by tests.
func (a *Agenda) SetNow(fn func() time.Time) {
	a.now = fn
	a.reload()
}

// WatchPaths returns the directories whose changes should refresh the agenda.
func (a *Agenda) WatchPaths() []string {
	return []string{a.cfg.TasksPath(), a.cfg.AlertsPath()}
}

// Init implements tea.Model.
func (a *Agenda) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (a *Agenda) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ensureVisible()
		return a, nil
	case ReloadMsg:
		a.reload()
		return a, nil
	case TickMsg:
		a.reload()
		return a, tickCmd()
	}
	return a, nil
}

// View implements tea.Model.
func (a *Agenda) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	switch a.view {
	case viewDetail:
		return a.viewDetail()
	case viewConfirmDelete:
		return a.viewDeleteConfirm()
	default:
		return a.viewAgenda()
	}
}

func (a *Agenda) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))) {
		return a, tea.Quit
	}

	switch a.view {
	case viewAgenda:
		return a.handleAgendaKey(msg)
	case viewDetail:
		return a.handleDetailKey(msg)
	case viewConfirmDelete:
		return a.handleDeleteKey(msg)
	}
	return a, nil
}

func (a *Agenda) handleAgendaKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", keyEsc:
		return a, tea.Quit
	case "j", "down":
		a.moveSelection(1)
	case "k", "up":
		a.moveSelection(-1)
	case "g", "home":
		a.selected = a.firstTaskRow()
		a.ensureVisible()
	case "G", "end":
		a.selected = a.lastTaskRow()
		a.ensureVisible()
	case "enter":
		if a.selectedTask() != nil {
			a.view = viewDetail
		}
	case "d", "D":
		a.handleDeleteStart()
	case "r":
		a.reload()
	}
	return a, nil
}

func (a *Agenda) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", keyEsc, "enter":
		a.view = viewAgenda
	case "d", "D":
		a.handleDeleteStart()
	}
	return a, nil
}

func (a *Agenda) handleDeleteStart() {
	if t := a.selectedTask(); t != nil {
		a.deleteID = t.ID
		a.deleteTitle = t.Title
		a.view = viewConfirmDelete
	}
}

func (a *Agenda) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return a.executeDelete()
	case "n", "N", keyEsc, "q":
		a.view = viewAgenda
	}
	return a, nil
}

// executeDelete revokes the task's alerts, removes the record, and reloads.
func (a *Agenda) executeDelete() (tea.Model, tea.Cmd) {
	if err := a.sched.Cancel(a.deleteID); err != nil {
		a.err = fmt.Errorf("cancelling reminders for %s: %w", a.deleteID, err)
		a.view = viewAgenda
		return a, nil
	}

	if err := a.st.Delete(a.deleteID); err != nil {
		a.err = fmt.Errorf("deleting task %s: %w", a.deleteID, err)
		a.view = viewAgenda
		return a, nil
	}
	history.LogMutation(a.cfg.Dir(), "delete", a.deleteID, a.deleteTitle)

	a.view = viewAgenda
	a.reload()
	return a, nil
}

// reload reads tasks and alerts and rebuilds the grouped sections.
func (a *Agenda) reload() {
	tasks, _, err := a.st.All()
	if err != nil {
		a.err = err
		return
	}
	a.err = nil
	store.SortByDueTime(tasks)
	a.tasks = tasks

	a.loadAlerts()
	a.buildSections()
	a.clampSelection()
}

// loadAlerts counts pending alerts per task. A broken spool dims the
// badges rather than blanking the agenda.
func (a *Agenda) loadAlerts() {
	a.alerts = make(map[string]int)
	a.alertsToday = 0

	regs, err := a.delivery.List()
	if err != nil {
		return
	}

	today := date.FromTime(a.now())
	for _, reg := range regs {
		a.alerts[reg.Payload.TaskID]++
		if notify.FireDate(reg.FireAt).Equal(today.Time) {
			a.alertsToday++
		}
	}
}

func (a *Agenda) buildSections() {
	today := date.FromTime(a.now())

	var overdue, due, upcoming []*task.Task
	for _, t := range a.tasks {
		switch {
		case t.Date.Before(today.Time):
			overdue = append(overdue, t)
		case t.Date.Equal(today.Time):
			due = append(due, t)
		default:
			upcoming = append(upcoming, t)
		}
	}

	a.sections = nil
	if len(overdue) > 0 {
		a.sections = append(a.sections, section{label: "Overdue", tasks: overdue})
	}
	if len(due) > 0 {
		a.sections = append(a.sections, section{label: "Today", tasks: due})
	}
	if len(upcoming) > 0 {
		a.sections = append(a.sections, section{label: "Upcoming", tasks: upcoming})
	}

	a.rows = nil
	for _, s := range a.sections {
		a.rows = append(a.rows, row{header: fmt.Sprintf("%s (%d)", s.label, len(s.tasks))})
		for _, t := range s.tasks {
			a.rows = append(a.rows, row{task: t})
		}
	}
}

// --- Selection ---

func (a *Agenda) selectedTask() *task.Task {
	if a.selected >= 0 && a.selected < len(a.rows) {
		return a.rows[a.selected].task
	}
	return nil
}

// moveSelection moves the cursor by delta, skipping header rows.
func (a *Agenda) moveSelection(delta int) {
	i := a.selected + delta
	for i >= 0 && i < len(a.rows) && a.rows[i].task == nil {
		i += delta
	}
	if i >= 0 && i < len(a.rows) {
		a.selected = i
		a.ensureVisible()
	}
}

func (a *Agenda) firstTaskRow() int {
	for i, r := range a.rows {
		if r.task != nil {
			return i
		}
	}
	return 0
}

func (a *Agenda) lastTaskRow() int {
	for i := len(a.rows) - 1; i >= 0; i-- {
		if a.rows[i].task != nil {
			return i
		}
	}
	return 0
}

// clampSelection keeps the cursor on a task row after a reload shrinks or
// regroups the list.
func (a *Agenda) clampSelection() {
	if len(a.rows) == 0 {
		a.selected = 0
		a.scrollOff = 0
		return
	}
	if a.selected >= len(a.rows) {
		a.selected = a.lastTaskRow()
	}
	if a.rows[a.selected].task == nil {
		a.moveSelection(1)
		if a.rows[a.selected].task == nil {
			a.selected = a.firstTaskRow()
		}
	}
	a.ensureVisible()
}

func (a *Agenda) chromeHeight() int {
	h := agendaChrome + 1 // title line
	if a.err != nil {
		h += errorChrome
	}
	return h
}

func (a *Agenda) visibleRows() int {
	n := a.height - a.chromeHeight()
	if n < 1 {
		return 1
	}
	return n
}

// ensureVisible adjusts the scroll offset so the selected row is on screen.
func (a *Agenda) ensureVisible() {
	vis := a.visibleRows()
	switch {
	case a.selected >= a.scrollOff+vis:
		a.scrollOff = a.selected - vis + 1
	case a.selected < a.scrollOff:
		a.scrollOff = a.selected
	}
	if a.scrollOff < 0 {
		a.scrollOff = 0
	}
}

// --- Messages ---

// ReloadMsg is sent by the file watcher to trigger an agenda refresh.
type ReloadMsg struct{}

// TickMsg is sent periodically to refresh "due in" labels and regroup
// sections across midnight.
type TickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return TickMsg{} })
}

// --- Styles ---

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("238"))

	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	bellStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("44"))

	priorityStyles = map[string]lipgloss.Style{
		"high":   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		"medium": lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		"low":    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}

	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)

// --- View rendering ---

func (a *Agenda) viewAgenda() string {
	title := titleStyle.Render(truncate("simtask — "+a.now().Format("Monday, January 2"), a.width))

	var lines []string
	if len(a.rows) == 0 {
		lines = append(lines, dimStyle.Render("  No tasks. Create one with 'simtask create'."))
	} else {
		end := a.scrollOff + a.visibleRows()
		if end > len(a.rows) {
			end = len(a.rows)
		}
		for i := a.scrollOff; i < end; i++ {
			lines = append(lines, a.renderRow(i))
		}
	}

	body := strings.Join(lines, "\n")

	// Pad the list area so the status bar stays pinned to the bottom.
	target := a.height - a.chromeHeight()
	if target > 0 {
		actual := strings.Count(body, "\n") + 1
		if actual < target {
			body += strings.Repeat("\n", target-actual)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body, "", a.renderStatusBar())
}

func (a *Agenda) renderRow(i int) string {
	r := a.rows[i]
	if r.header != "" {
		return sectionStyle.Width(a.width).Render(truncate(r.header, a.width-2)) //nolint:mnd // header padding
	}

	line := a.renderTaskLine(r.task)
	if i == a.selected {
		return selectedStyle.Width(a.width).Render(truncate("> "+line, a.width))
	}
	return truncate("  "+line, a.width)
}

// renderTaskLine builds one agenda line: time, title, priority, badges.
func (a *Agenda) renderTaskLine(t *task.Task) string {
	timeCol := "     "
	if t.Time != nil {
		timeCol = t.Time.String()
	}

	var parts []string
	parts = append(parts, dimStyle.Render(timeCol))

	today := date.FromTime(a.now())
	if !t.Date.Equal(today.Time) {
		parts = append(parts, dimStyle.Render(t.Date.Format("Jan 02")))
	}

	title := t.Title
	if t.Date.Before(today.Time) {
		title = overdueStyle.Render(title)
	}
	parts = append(parts, title)

	if t.Priority != "" {
		if st, ok := priorityStyles[t.Priority]; ok {
			parts = append(parts, st.Render("["+t.Priority+"]"))
		} else {
			parts = append(parts, "["+t.Priority+"]")
		}
	}
	if t.Category != "" {
		parts = append(parts, dimStyle.Render("("+t.Category+")"))
	}
	if n := a.alerts[t.ID]; n > 0 {
		parts = append(parts, bellStyle.Render("⏰"+strconv.Itoa(n)))
	}

	return strings.Join(parts, " ")
}

func (a *Agenda) renderStatusBar() string {
	status := fmt.Sprintf(" %d tasks | %d reminders today | enter:detail d:del r:refresh q:quit",
		len(a.tasks), a.alertsToday)
	status = truncate(status, a.width)

	if a.err != nil {
		errStr := errorStyle.Render(truncate("Error: "+a.err.Error(), a.width))
		return errStr + "\n" + statusBarStyle.Render(status)
	}
	return statusBarStyle.Render(status)
}

func (a *Agenda) viewDetail() string {
	t := a.selectedTask()
	if t == nil {
		a.view = viewAgenda
		return a.viewAgenda()
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(t.Title) + "\n\n")
	b.WriteString(fmt.Sprintf("  %-10s %s\n", "Date:", t.Date.Format("Monday, January 2, 2006")))
	if t.Time != nil {
		b.WriteString(fmt.Sprintf("  %-10s %s\n", "Time:", t.Time.Display()))
	}
	if t.Priority != "" {
		b.WriteString(fmt.Sprintf("  %-10s %s\n", "Priority:", t.Priority))
	}
	if t.Category != "" {
		b.WriteString(fmt.Sprintf("  %-10s %s\n", "Category:", t.Category))
	}
	b.WriteString(fmt.Sprintf("  %-10s %s\n", "Due in:", a.dueInLabel(t)))
	if n := a.alerts[t.ID]; n > 0 {
		b.WriteString(fmt.Sprintf("  %-10s %d pending\n", "Reminders:", n))
	}
	if t.Description != "" {
		b.WriteString("\n" + t.Description + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("enter/esc:back  d:delete"))

	return dialogStyle.Width(min(a.width-2, 72)).Render(b.String()) //nolint:mnd // dialog max width
}

// dueInLabel formats the time remaining until the task's due instant.
func (a *Agenda) dueInLabel(t *task.Task) string {
	now := a.now()
	d := t.DueAt(a.cfg.DefaultClock(), now.Location()).Sub(now)
	if d < 0 {
		return overdueStyle.Render(humanDuration(-d) + " overdue")
	}
	return humanDuration(d)
}

func (a *Agenda) viewDeleteConfirm() string {
	content := errorStyle.Render("Delete task?") + "\n\n" +
		fmt.Sprintf("  %s: %s", a.deleteID, a.deleteTitle) + "\n\n" +
		dimStyle.Render("Pending reminders are cancelled too.  y:yes  n:no")

	return dialogStyle.Render(content)
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	target := maxLen - 3 //nolint:mnd // room for "..."
	if target > len(runes) {
		target = len(runes)
	}
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}

// humanDuration formats a duration as a compact human-readable string.
// Examples: "<1m", "5m", "2h", "3d", "2w".
func humanDuration(d time.Duration) string {
	const (
		day  = 24 * time.Hour
		week = 7 * day
	)

	switch {
	case d < time.Minute:
		return "<1m"
	case d < time.Hour:
		return strconv.Itoa(int(d.Minutes())) + "m"
	case d < day:
		return strconv.Itoa(int(d.Hours())) + "h"
	case d < week:
		return strconv.Itoa(int(d/day)) + "d"
	default:
		return strconv.Itoa(int(d/week)) + "w"
	}
}
