package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/simtask/simtask/internal/agenda"
	"github.com/simtask/simtask/internal/notify"
	"github.com/simtask/simtask/internal/task"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	// Priority colors.
	priorityStyles = map[string]lipgloss.Style{
		"high":   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		"medium": lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		"low":    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}

	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	bellStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("44"))
)

// DisableColor strips all styling from table output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	priorityStyles = map[string]lipgloss.Style{}
	categoryStyle = lipgloss.NewStyle()
	overdueStyle = lipgloss.NewStyle()
	bellStyle = lipgloss.NewStyle()
}

// TaskTable renders a list of tasks as a formatted table.
func TaskTable(w io.Writer, tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	// Calculate column widths.
	const pad = 2
	idW, dateW, timeW, prioW, titleW, catW := 4, 12, 7, 10, 7, 10
	for _, t := range tasks {
		idW = max(idW, len(t.ID)+pad)
		prioW = max(prioW, len(t.Priority)+pad)
		titleW = max(titleW, min(len(t.Title)+pad, 50)) //nolint:mnd // max title column width
		catW = max(catW, min(len(t.Category)+pad, 20))  //nolint:mnd // max category column width
	}

	// Print header.
	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s %-*s %s",
		idW, "ID", dateW, "DATE", timeW, "TIME",
		prioW, "PRIORITY", titleW, "TITLE", catW, "CATEGORY", "REMINDER")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	// Print rows.
	for _, t := range tasks {
		title := t.Title
		const maxTitle = 48
		if len(title) > maxTitle {
			title = title[:maxTitle-3] + "..."
		}
		timeStr := dimStyle.Render("--")
		if t.Time != nil {
			timeStr = t.Time.String()
		}
		cat := t.Category
		if cat == "" {
			cat = dimStyle.Render("--")
		} else {
			cat = categoryStyle.Render(cat)
		}
		rem := dimStyle.Render("--")
		if t.ReminderScheduled {
			rem = bellStyle.Render("set")
		}

		row := fmt.Sprintf("%-*s %-*s %s %s %s %s %s",
			idW, t.ID,
			dateW, t.Date.String(),
			padRight(timeStr, timeW),
			padRight(styledValue(t.Priority, priorityStyles), prioW),
			padRight(title, titleW),
			padRight(cat, catW),
			rem)
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// TaskDetail renders a single task with full detail. renderedDesc, when
// non-empty, replaces the raw markdown description (e.g. glamour output).
func TaskDetail(w io.Writer, t *task.Task, renderedDesc string) {
	titleLine := fmt.Sprintf("Task %s: %s", t.ID, t.Title)
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", len(titleLine)))

	printField(w, "Date", t.Date.String())
	if t.Time != nil {
		printField(w, "Time", t.Time.String()+" ("+t.Time.Display()+")")
	} else {
		printField(w, "Time", dimStyle.Render("--"))
	}
	printField(w, "Priority", stringOrDashStyled(t.Priority, priorityStyles))
	if t.Category != "" {
		printField(w, "Category", categoryStyle.Render(t.Category))
	} else {
		printField(w, "Category", dimStyle.Render("--"))
	}
	if t.ReminderScheduled {
		printField(w, "Reminders", bellStyle.Render("scheduled"))
	} else {
		printField(w, "Reminders", dimStyle.Render("none"))
	}
	if t.SyncStatus != "" {
		printField(w, "Sync", t.SyncStatus)
	}
	printField(w, "Created", t.Created.Format("2006-01-02 15:04"))
	printField(w, "Updated", t.Updated.Format("2006-01-02 15:04"))

	desc := t.Description
	if renderedDesc != "" {
		desc = renderedDesc
	}
	if desc != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, desc)
	}
}

// AlertTable renders the currently registered alerts for display, ordered
// as given (callers sort by fire instant).
func AlertTable(w io.Writer, regs []notify.Registered, now time.Time) {
	if len(regs) == 0 {
		fmt.Fprintln(os.Stderr, "No reminders scheduled.")
		return
	}

	header := fmt.Sprintf("%-18s %-8s %-28s %s", "FIRES AT", "IN", "TASK", "TITLE")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, reg := range regs {
		in := FormatDuration(reg.FireAt.Sub(now))
		if reg.FireAt.Before(now) {
			in = overdueStyle.Render("overdue")
		}
		fmt.Fprintf(w, "%-18s %s %-28s %s\n",
			reg.FireAt.Format("2006-01-02 15:04"),
			padRight(in, 8), //nolint:mnd // column width
			reg.Payload.TaskID,
			reg.Payload.Title)
	}
}

// OverviewTable renders a day summary.
func OverviewTable(w io.Writer, o agenda.Overview) {
	title := "Agenda for " + o.Date.Format("Monday, January 2, 2006")
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(title))
	fmt.Fprintf(w, "Tasks: %d", o.TotalTasks)
	if o.Overdue > 0 {
		fmt.Fprintf(w, " (%s)", overdueStyle.Render(strconv.Itoa(o.Overdue)+" overdue"))
	}
	if o.Reminders > 0 {
		fmt.Fprintf(w, " | Reminders: %d", o.Reminders)
	}
	fmt.Fprintln(w)

	if len(o.Priorities) > 0 {
		parts := make([]string, 0, len(o.Priorities))
		for _, pc := range o.Priorities {
			parts = append(parts, styledValue(pc.Priority, priorityStyles)+"="+strconv.Itoa(pc.Count))
		}
		fmt.Fprintln(w, "Priority: "+strings.Join(parts, " "))
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

// FormatDuration renders a duration as human-readable "Xd Yh" or "Xh Ym".
func FormatDuration(d time.Duration) string {
	const hoursPerDay = 24
	days := int(d.Hours()) / hoursPerDay
	hours := int(d.Hours()) % hoursPerDay
	if days > 0 {
		return strconv.Itoa(days) + "d " + strconv.Itoa(hours) + "h"
	}
	minutes := int(d.Minutes()) % 60 //nolint:mnd // 60 minutes per hour
	return strconv.Itoa(hours) + "h " + strconv.Itoa(minutes) + "m"
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func stringOrDashStyled(s string, styles map[string]lipgloss.Style) string {
	if s == "" {
		return dimStyle.Render("--")
	}
	return styledValue(s, styles)
}

// styledValue renders s using a matching style from the map, or returns s unchanged.
func styledValue(s string, styles map[string]lipgloss.Style) string {
	if st, ok := styles[s]; ok {
		return st.Render(s)
	}
	return s
}
