package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/td0m/workday/internal/ui"
	"github.com/td0m/workday/pkg/dailylog"
	"github.com/td0m/workday/pkg/history"
	"github.com/td0m/workday/pkg/input"
	"github.com/td0m/workday/pkg/plan"
	"github.com/td0m/workday/pkg/score"
	"github.com/td0m/workday/pkg/task"
	"github.com/td0m/workday/pkg/task/date"
)

const (
	headerHeight = 3
	footerHeight = 1
)

type mode int

const (
	modeNormal mode = iota
	modeMeeting
	modeAdd
	modeEdit
)

const (
	tabTasks = iota
	tabPlan
	tabHistory
)

type app struct {
	env    *env
	loaded bool
	mode   mode

	viewport viewport.Model
	textin   textinput.Model
	tabs     ui.Tabs

	time      time.Time
	timeSetAt time.Time

	cursor  int
	all     []task.Task
	visible []task.Task
}

func (e *env) tui() error {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Width = 60

	a := &app{
		env:       e,
		textin:    ti,
		viewport:  viewport.Model{},
		tabs:      ui.NewTabs([]string{"Tasks", "Plan", "History"}),
		time:      e.now,
		timeSetAt: time.Now(),
	}

	// ask for today's meeting hours once per day
	has, err := e.days.Has(date.Of(e.now))
	if err != nil {
		return err
	}
	if !has {
		a.promptMeeting()
	}

	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}

func (m *app) now() time.Time {
	return m.time.Add(time.Since(m.timeSetAt))
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *app) Init() tea.Cmd {
	return tick()
}

func (m *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tickMsg:
		cmd = tick()
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight
		m.tabs.Width = msg.Width

		if !m.loaded {
			var err error
			m.all, err = m.env.store.List()
			if err != nil {
				m.env.log.Error("load tasks", zap.Error(err))
			}
			m.loaded = true
			m.updateVisible()
		}
		m.setCursor(m.cursor)
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			m.mode = modeNormal
		default:
			cmd = m.keyUpdate(msg)
		}
	}
	m.viewport.SetContent(m.content())
	return m, cmd
}

func (m *app) keyUpdate(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch m.mode {
	case modeMeeting:
		if msg.Type == tea.KeyEnter {
			h, err := strconv.ParseFloat(strings.TrimSpace(m.textin.Value()), 64)
			if err == nil && h >= 0 {
				day := date.Of(m.now())
				if err := m.env.days.Upsert(dailylog.New(day, h)); err != nil {
					m.env.log.Error("save daily log", zap.Error(err))
				}
				m.mode = modeNormal
			}
		} else {
			m.textin, cmd = m.textin.Update(msg)
		}
	case modeAdd, modeEdit:
		if msg.Type == tea.KeyEnter {
			m.submitInput()
			m.mode = modeNormal
		} else {
			m.textin, cmd = m.textin.Update(msg)
		}
	case modeNormal:
		switch msg.String() {
		case "q":
			return tea.Quit
		case "g":
			m.setCursor(0)
		case "G":
			m.setCursor(len(m.visible))
		case "ctrl+d":
			m.setCursor(m.cursor + 10)
		case "ctrl+u":
			m.setCursor(m.cursor - 10)
		case "j", "down":
			m.setCursor(m.cursor + 1)
		case "k", "up":
			m.setCursor(m.cursor - 1)
		case "alt+1", "1":
			m.setTab(tabTasks)
		case "alt+2", "2":
			m.setTab(tabPlan)
		case "alt+3", "3":
			m.setTab(tabHistory)
		case "tab":
			m.setTab((m.tabs.Value() + 1) % 3)
		case "m":
			m.promptMeeting()
		case "a":
			m.mode = modeAdd
			m.textin.SetValue("")
			m.textin.Focus()
		case "i":
			if t := m.atCursor(); t != nil {
				m.mode = modeEdit
				m.textin.SetValue(t.Name)
				m.textin.Focus()
				m.textin.SetCursor(len(t.Name))
			}
		case " ":
			m.withCursor(func(t *task.Task) {
				if t.IsTracking() {
					t.StopTracking(m.now())
				} else {
					t.StartTracking(m.now())
				}
			})
		case "t":
			m.withCursor(func(t *task.Task) { t.Complete(m.now()) })
		case "x", tea.KeyDelete.String():
			m.withCursor(func(t *task.Task) { t.Delete() })
		}
	}
	return cmd
}

func (m *app) promptMeeting() {
	m.mode = modeMeeting
	m.textin.SetValue("")
	m.textin.Focus()
}

// submitInput applies the add/edit input line: free words are the
// name, key:value pairs are metadata.
func (m *app) submitInput() {
	parsed := input.Parse(strings.Fields(m.textin.Value()))
	now := m.now()
	switch m.mode {
	case modeAdd:
		if parsed.Name == "" {
			return
		}
		t := task.New(parsed.Name, now)
		if err := applyMetadata(&t, parsed.Metadata, now); err != nil {
			m.env.log.Warn("bad metadata", zap.Error(err))
			return
		}
		m.all = append(m.all, t)
	case modeEdit:
		t := m.atCursor()
		if t == nil {
			return
		}
		if parsed.Name != "" {
			t.Name = parsed.Name
		}
		if err := applyMetadata(t, parsed.Metadata, now); err != nil {
			m.env.log.Warn("bad metadata", zap.Error(err))
			return
		}
	}
	m.save()
	m.updateVisible()
}

func (m *app) atCursor() *task.Task {
	if m.cursor >= len(m.visible) {
		return nil
	}
	id := m.visible[m.cursor].ID
	for i := range m.all {
		if m.all[i].ID == id {
			return &m.all[i]
		}
	}
	return nil
}

func (m *app) withCursor(f func(*task.Task)) {
	t := m.atCursor()
	if t == nil {
		return
	}
	f(t)
	m.save()
	m.updateVisible()
	m.setCursor(m.cursor)
}

func (m *app) save() {
	if err := m.env.store.Replace(m.all); err != nil {
		m.env.log.Error("save tasks", zap.Error(err))
	}
}

func (m *app) updateVisible() {
	var pending []task.Task
	for _, t := range m.all {
		if t.Status() == task.StatusPending {
			pending = append(pending, t)
		}
	}
	score.Sort(pending, score.Urgency, m.now())
	m.visible = pending
}

func (m *app) setTab(i int) {
	m.tabs.Set(i)
	m.setCursor(0)
}

func (m *app) setCursor(value int) {
	size := len(m.visible)
	m.cursor = clamp(value, 0, max(size-1, 0))
	if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.YOffset = m.cursor - m.viewport.Height + 1
	}
	if m.cursor < m.viewport.YOffset {
		m.viewport.YOffset = m.cursor
	}
}

func (m *app) content() string {
	switch m.tabs.Value() {
	case tabPlan:
		return m.viewPlan()
	case tabHistory:
		return m.viewHistory()
	default:
		return m.viewTasks()
	}
}

func (m *app) viewTasks() string {
	now := m.now()
	var b strings.Builder
	for i, t := range m.visible {
		title := ui.TaskTitle
		if i == m.cursor && m.tabs.Value() == tabTasks {
			title = title.Background(ui.Faded)
		}

		b.WriteString(ui.TaskMarker.Foreground(ui.PriorityColor(t.Priority)).Render("●"))
		if m.mode == modeEdit && i == m.cursor {
			b.WriteString(m.textin.View())
		} else {
			b.WriteString(title.Render(t.Name))
		}
		if t.Project != "" {
			b.WriteString(ui.TaskDivider)
			b.WriteString(ui.TaskProject.Render("@" + t.Project))
		}
		if t.Estimate != "" {
			b.WriteString(ui.TaskDivider)
			b.WriteString(ui.TaskEstimate.Render(t.Estimate))
		}
		if t.Due != nil {
			b.WriteString(ui.TaskDivider)
			c := ui.DueColor(ui.DueDays(*t.Due, now))
			b.WriteString(lipgloss.NewStyle().Foreground(c).Render(ui.FormatDue(*t.Due, now)))
		}
		if d := t.ElapsedTotal(now); d > 0 {
			b.WriteString(" ")
			b.WriteString(ui.FormatDuration(d))
		}
		if t.IsTracking() {
			b.WriteString(" ")
			b.WriteString(ui.TaskTimer.Render("▶"))
		}
		b.WriteString("\n")
	}
	if len(m.visible) == 0 {
		b.WriteString(ui.TaskProject.Render("  no pending tasks, press a to add one"))
	}
	return b.String()
}

func (m *app) viewPlan() string {
	now := m.now()
	meetings := m.env.days.Hours(date.Of(now))
	stats, entries := plan.Build(m.all, meetings, m.env.cfg.CapacityHours, now)

	var b strings.Builder
	fmt.Fprintf(&b, "  capacity %.1fh  meetings %.1fh  done %.1fh  remaining %.1fh\n\n",
		stats.TotalCapacity, stats.MeetingHours, stats.WorkDoneToday, stats.RemainingActiveCapacity)

	byID := map[task.ID]plan.Entry{}
	for _, en := range entries {
		byID[en.Task.ID] = en
	}
	for _, t := range m.visible {
		en := byID[t.ID]
		fit := "  "
		switch en.Fit {
		case plan.Fits:
			fit = ui.FitYes.Render("✓ ")
		case plan.DoesNotFit:
			fit = ui.FitNo.Render("✗ ")
		}
		b.WriteString("  " + fit + ui.TaskTitle.Render(t.Name))
		if en.RemainingHours > 0 {
			fmt.Fprintf(&b, "  %s", ui.TaskEstimate.Render(fmt.Sprintf("%.1fh left", en.RemainingHours)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *app) viewHistory() string {
	now := m.now()
	report := history.Aggregate(m.all, m.env.days.Hours, now)
	var b strings.Builder
	for _, w := range report {
		fmt.Fprintf(&b, "  %s\n", ui.TaskTitle.Render(fmt.Sprintf("week %d of %d", w.Week, w.Year)))
		fmt.Fprintf(&b, "  %s\n", ui.TaskEstimate.Render(
			fmt.Sprintf("est %.1fh  act %.1fh  mtg %.1fh", w.Stats.EstHours, w.Stats.ActHours, w.Stats.MeetingHours)))
		for _, d := range w.Days {
			fmt.Fprintf(&b, "    %s %s  %s\n", d.Date.Weekday(), d.Date,
				ui.TaskEstimate.Render(fmt.Sprintf("act %.1fh", d.Stats.ActHours)))
			for _, t := range d.Tasks {
				title := ui.TaskTitle
				if t.Status() == task.StatusCompleted {
					title = ui.DoneTitle
				}
				b.WriteString("      " + title.Render(t.Name) + "\n")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *app) View() string {
	m.tabs.Info = m.headerInfo()

	statusline := ""
	switch m.mode {
	case modeMeeting:
		statusline = "meeting hours today: " + m.textin.View()
	case modeAdd:
		statusline = "add: " + m.textin.View()
	case modeEdit:
		statusline = "edit: " + m.textin.View()
	}
	return m.tabs.View() + m.viewport.View() + "\n" + statusline
}

func (m *app) headerInfo() string {
	now := m.now()
	meetings := m.env.days.Hours(date.Of(now))
	stats, _ := plan.Build(m.all, meetings, m.env.cfg.CapacityHours, now)
	info := fmt.Sprintf("%.1fh / %.1fh", stats.WorkDoneToday, stats.TotalCapacity-stats.MeetingHours)
	for _, t := range m.all {
		if t.IsTracking() {
			info = ui.TaskTimer.Render("▶ "+t.Name) + "  " + info
			break
		}
	}
	return info
}

func clamp(v, low, high int) int {
	return min(high, max(low, v))
}
