package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"reconnect/internal/engine"
	"reconnect/internal/ui"
)

func (m boardModel) View() string {
	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.tab {
	case tabDashboard:
		b.WriteString(m.renderDashboard())
	case tabTasks:
		b.WriteString(m.renderTasks())
	case tabHabits:
		b.WriteString(m.renderHabits())
	case tabRewards:
		b.WriteString(m.renderRewards())
	}

	b.WriteString("\n\n")
	if m.adding {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	b.WriteString(m.lastLog)
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m boardModel) renderTabs() string {
	parts := make([]string, 0, tabCount+1)
	parts = append(parts, ui.Title.Render("ReConnect")+"  ")
	for t := tab(0); t < tabCount; t++ {
		if t == m.tab {
			parts = append(parts, ui.ActiveTab.Render(tabNames[t]))
		} else {
			parts = append(parts, ui.InactiveTab.Render(tabNames[t]))
		}
	}
	parts = append(parts, "  "+ui.Gold.Render(fmt.Sprintf("%s %d", ui.IconCoin, m.snap.stats.Credits)))
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m boardModel) renderDashboard() string {
	st := m.snap.stats
	lines := []string{
		ui.LabelValue("Level", st.Level),
		fmt.Sprintf("%s %s %.0f%%", ui.Key.Render("Progress:"), ui.ProgressBar(st.LevelProgress/100, 30), st.LevelProgress),
		ui.LabelValue("XP", fmt.Sprintf("%d (total %d, level span %d)", st.XP, st.TotalXP, st.LevelSpan)),
		ui.LabelValue("Credits", st.Credits),
		ui.LabelValue("Streak", fmt.Sprintf("%s %d", ui.IconFire, st.Streak)),
		ui.LabelValue("Tasks", fmt.Sprintf("%d done, %d open", st.CompletedTasks, st.OpenTasks)),
		ui.LabelValue("Habits today", fmt.Sprintf("%d/%d", st.HabitsToday, len(m.snap.habits))),
	}
	stats := ui.Panel.Render(strings.Join(lines, "\n"))

	act := []string{ui.H2.Render(ui.IconScroll + " Recent activity")}
	if len(m.snap.activity) == 0 {
		act = append(act, ui.Muted.Render("(nothing yet)"))
	}
	for _, a := range m.snap.activity {
		act = append(act, fmt.Sprintf("%s %s", ui.Muted.Render(a.Timestamp.Local().Format("Jan 2 15:04")), a.Text))
	}
	return lipgloss.JoinVertical(lipgloss.Left, stats, "", strings.Join(act, "\n"))
}

func (m boardModel) renderTasks() string {
	out := []string{ui.H2.Render("Tasks") + "  " + ui.Muted.Render("filter: "+filterLabel(m.currentFilter()))}
	tasks := m.snap.tasks
	if len(tasks) == 0 {
		out = append(out, ui.Muted.Render("(no tasks, press a to add one)"))
		return strings.Join(out, "\n")
	}
	for i, t := range tasks {
		row := fmt.Sprintf("%s %s  %s  %s  +%d XP",
			ui.CheckIcon(t.Completed),
			t.Title,
			ui.Muted.Render(engine.CategoryDisplayName(t.Category)),
			ui.DifficultyText(t.Difficulty),
			t.XPValue,
		)
		out = append(out, m.cursorRow(tabTasks, i, row))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderHabits() string {
	out := []string{ui.H2.Render("Habits")}
	if len(m.snap.habits) == 0 {
		out = append(out, ui.Muted.Render("(no habits yet, add one with `rc habit add`)"))
		return strings.Join(out, "\n")
	}
	for i, h := range m.snap.habits {
		row := fmt.Sprintf("%s %s %s  %s %d/%d  %s",
			ui.CheckIcon(engine.CompletedToday(h, m.snap.now)),
			h.Icon,
			h.Name,
			ui.ProgressBar(engine.HabitProgress(h), 14),
			h.Streak,
			h.Target,
			ui.Muted.Render(fmt.Sprintf("%d days logged", len(h.CompletedDays))),
		)
		out = append(out, m.cursorRow(tabHabits, i, row))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderRewards() string {
	out := []string{ui.H2.Render(ui.IconGift + " Rewards")}
	for i, r := range m.snap.rewards {
		cost := fmt.Sprintf("%d credits", r.Cost)
		if r.Cost > m.snap.stats.Credits {
			cost = ui.Muted.Render(cost)
		} else {
			cost = ui.Gold.Render(cost)
		}
		out = append(out, m.cursorRow(tabRewards, i, fmt.Sprintf("%-8s %-18s %s", r.Icon, r.Name, cost)))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) cursorRow(t tab, i int, row string) string {
	if m.cursor[t] == i {
		return ui.SelectedRow.Render("> ") + row
	}
	return "  " + row
}
