package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hasibul/akta/internal/engine"
	"github.com/hasibul/akta/internal/store"
)

// daysShown is the window of the per-day study chart.
const daysShown = 7

type statsModel struct {
	store  *store.Store
	width  int
	height int

	offset int // 7-day blocks back from today (0 = current)

	days          []store.DayTotal
	weekTotal     int64
	allTotal      int64
	subjectTotals []store.SubjectTotal
	streak        engine.Streak
	catalog       []engine.Achievement
	earned        map[int64]bool

	chart barchart.Model
}

func newStatsModel(s *store.Store) statsModel {
	return statsModel{
		store:  s,
		chart:  barchart.New(60, 12),
		earned: map[int64]bool{},
	}
}

func (r *statsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type statsDataMsg struct {
	days          []store.DayTotal
	weekTotal     int64
	allTotal      int64
	subjectTotals []store.SubjectTotal
	streak        engine.Streak
	catalog       []engine.Achievement
	earned        map[int64]bool
}

func (r statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		from, to := r.dateRange()
		days, _ := r.store.DailyTotals(from, to)
		week, _ := r.store.WeekTotal()
		all, _ := r.store.TotalSeconds()
		totals, _ := r.store.SubjectTotals()
		streak, _ := r.store.GetStreak()
		catalog, _ := r.store.ListAchievements()
		earned, _ := r.store.EarnedSet()

		return statsDataMsg{
			days:          days,
			weekTotal:     week,
			allTotal:      all,
			subjectTotals: totals,
			streak:        streak,
			catalog:       catalog,
			earned:        earned,
		}
	}
}

// dateRange spans local calendar days, the same day base the streak and goal
// trackers use, so the chart buckets match the dashboard's "today".
func (r statsModel) dateRange() (time.Time, time.Time) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := today.AddDate(0, 0, 1-daysShown*r.offset)
	return end.AddDate(0, 0, -daysShown), end
}

func (r statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		r.days = msg.days
		r.weekTotal = msg.weekTotal
		r.allTotal = msg.allTotal
		r.subjectTotals = msg.subjectTotals
		r.streak = msg.streak
		r.catalog = msg.catalog
		r.earned = msg.earned
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.offset++
			return r, r.refresh()
		case key.Matches(msg, keys.Right):
			if r.offset > 0 {
				r.offset--
			}
			return r, r.refresh()
		}
	}
	return r, nil
}

func (r *statsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if r.height > 34 {
		chartHeight = 14
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	from, to := r.dateRange()
	barStyle := lipgloss.NewStyle().Foreground(colorPrimary)

	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")
		label := d.Format("Mon 02")

		hours := 0.0
		for _, day := range r.days {
			if day.Date == dateStr {
				hours = float64(day.TotalSeconds) / 3600.0
			}
		}

		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{
				{Name: dateStr, Value: hours, Style: barStyle},
			},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r statsModel) view() string {
	w := r.width - 4

	from, to := r.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s",
		from.Format("Jan 02"), to.AddDate(0, 0, -1).Format("Jan 02, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Stats"), "  ", dateLabel,
	)

	chartView := r.chart.View()
	totalsView := r.renderTotals()
	subjectsView := r.renderSubjectTable()
	achievementsView := r.renderAchievements()

	nav := mutedStyle.Render("  ←/→: earlier/later")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", totalsView, "", subjectsView, "", achievementsView, "", nav,
		),
	)
}

func (r statsModel) renderTotals() string {
	week := fmt.Sprintf("  This week %s", highlightStyle.Render(formatHours(r.weekTotal)))
	all := fmt.Sprintf("  All time %s", highlightStyle.Render(formatHours(r.allTotal)))
	streak := fmt.Sprintf("  Streak %s",
		successStyle.Render(fmt.Sprintf("%d days (best %d)", r.streak.Current, r.streak.Longest)))
	return lipgloss.JoinHorizontal(lipgloss.Bottom, week, all, streak)
}

func (r statsModel) renderSubjectTable() string {
	title := titleStyle.Render("By Subject")
	if len(r.subjectTotals) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, mutedStyle.Render("  No sessions yet"))
	}

	var rows []string
	rows = append(rows, title)
	for _, st := range r.subjectTotals {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(st.Color)).Render("●")
		rows = append(rows, fmt.Sprintf("  %s %-20s %8s", dot, st.Name, formatHours(st.TotalSeconds)))
	}
	return strings.Join(rows, "\n")
}

func (r statsModel) renderAchievements() string {
	title := titleStyle.Render("Achievements")
	if len(r.catalog) == 0 {
		return title
	}

	earnedCount := 0
	var rows []string
	rows = append(rows, "")
	for _, a := range r.catalog {
		if r.earned[a.ID] {
			earnedCount++
			rows = append(rows, successStyle.Render(fmt.Sprintf("  %s %-18s %s", a.Icon, a.Name, a.Description)))
		} else {
			rows = append(rows, mutedStyle.Render(fmt.Sprintf("  🔒 %-18s %s", a.Name, a.Description)))
		}
	}
	rows[0] = lipgloss.JoinHorizontal(lipgloss.Bottom,
		title, mutedStyle.Render(fmt.Sprintf("  %d/%d", earnedCount, len(r.catalog))))
	return strings.Join(rows, "\n")
}
