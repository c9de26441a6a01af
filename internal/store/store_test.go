package store

import (
	"testing"
	"time"

	"github.com/hasibul/akta/internal/engine"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// insertSession is a test helper that inserts a session started startOffset
// seconds ago with the given duration.
func insertSession(t *testing.T, s *Store, subjectID int64, name, color string, startOffset, durationSecs int) int64 {
	t.Helper()
	start := time.Now().UTC().Add(time.Duration(-startOffset) * time.Second)
	return insertSessionAt(t, s, subjectID, name, color, start, durationSecs)
}

// insertSessionAt inserts a session with an explicit start time.
func insertSessionAt(t *testing.T, s *Store, subjectID int64, name, color string, start time.Time, durationSecs int) int64 {
	t.Helper()
	res, err := s.db.Exec(
		`INSERT INTO study_sessions (subject_id, subject_name, subject_color, duration, started_at) VALUES (?, ?, ?, ?, ?)`,
		subjectID, name, color, durationSecs, start.UTC().Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("insert session: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/akta.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestPragmasConfigured(t *testing.T) {
	s := newTestStore(t)

	var fk int
	s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if fk != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fk)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	// Running migrate again should be a no-op
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Subjects
// ============================================================

func TestCreateAndGetSubject(t *testing.T) {
	s := newTestStore(t)
	sub, err := s.CreateSubject("Mathematics", "#FF0000")
	if err != nil {
		t.Fatal(err)
	}
	if sub.Name != "Mathematics" || sub.Color != "#FF0000" {
		t.Fatalf("unexpected subject: %+v", sub)
	}
	if sub.ID == 0 {
		t.Fatal("expected non-zero ID")
	}
	if sub.CreatedAt.IsZero() {
		t.Fatal("CreatedAt should be set")
	}
}

func TestCreateSubjectDuplicateName(t *testing.T) {
	s := newTestStore(t)
	_, err := s.CreateSubject("Dup", "#111")
	if err != nil {
		t.Fatal(err)
	}
	_, err = s.CreateSubject("Dup", "#222")
	if err == nil {
		t.Fatal("expected error for duplicate subject name")
	}
}

func TestGetSubjectNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetSubject(999)
	if err == nil {
		t.Fatal("expected error for missing subject")
	}
}

func TestListSubjectsOrdered(t *testing.T) {
	s := newTestStore(t)
	s.CreateSubject("Physics", "#222")
	s.CreateSubject("Algebra", "#111")

	subjects, err := s.ListSubjects()
	if err != nil {
		t.Fatal(err)
	}
	if len(subjects) != 2 {
		t.Fatalf("expected 2 subjects, got %d", len(subjects))
	}
	// Creation order, not alphabetical
	if subjects[0].Name != "Physics" || subjects[1].Name != "Algebra" {
		t.Fatalf("expected creation order: got %s, %s", subjects[0].Name, subjects[1].Name)
	}
}

func TestListSubjectsEmpty(t *testing.T) {
	s := newTestStore(t)
	subjects, err := s.ListSubjects()
	if err != nil {
		t.Fatal(err)
	}
	if subjects != nil {
		t.Fatalf("expected nil slice, got %d items", len(subjects))
	}
}

func TestDeleteSubjectKeepsSessionSnapshot(t *testing.T) {
	s := newTestStore(t)
	sub, _ := s.CreateSubject("History", "#333")

	id, err := s.CreateSession(sub.ID, sub.Name, sub.Color, 600)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteSubject(sub.ID); err != nil {
		t.Fatal(err)
	}

	sess, err := s.GetSession(id)
	if err != nil {
		t.Fatal(err)
	}
	if sess.SubjectName != "History" || sess.SubjectColor != "#333" {
		t.Fatalf("snapshot should survive subject deletion: %+v", sess)
	}
	if sess.SubjectID != nil {
		t.Fatal("live subject reference should be cleared")
	}
}

// ============================================================
// Sessions
// ============================================================

func TestCreateAndGetSession(t *testing.T) {
	s := newTestStore(t)
	sub, _ := s.CreateSubject("Math", "#000")

	id, err := s.CreateSession(sub.ID, sub.Name, sub.Color, 1500)
	if err != nil {
		t.Fatal(err)
	}
	if id == 0 {
		t.Fatal("expected assigned id")
	}

	sess, err := s.GetSession(id)
	if err != nil {
		t.Fatal(err)
	}
	if sess.Duration != 1500 {
		t.Fatalf("expected duration 1500, got %d", sess.Duration)
	}
	if sess.SubjectID == nil || *sess.SubjectID != sub.ID {
		t.Fatal("session should reference subject")
	}
	if sess.StartedAt.IsZero() {
		t.Fatal("StartedAt should be set")
	}
}

func TestGetSessionNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetSession(999)
	if err == nil {
		t.Fatal("expected error for missing session")
	}
}

func TestListSessionsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	sub, _ := s.CreateSubject("Math", "#000")
	insertSession(t, s, sub.ID, "Math", "#000", 7200, 600)
	insertSession(t, s, sub.ID, "Math", "#000", 600, 300)

	sessions, err := s.ListSessions(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if !sessions[0].StartedAt.After(sessions[1].StartedAt) {
		t.Fatal("sessions should be newest first")
	}
}

func TestListSessionsWithLimit(t *testing.T) {
	s := newTestStore(t)
	sub, _ := s.CreateSubject("Math", "#000")
	for i := 0; i < 5; i++ {
		insertSession(t, s, sub.ID, "Math", "#000", i*100, 120)
	}

	sessions, _ := s.ListSessions(3)
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions with limit, got %d", len(sessions))
	}
}

func TestDeleteSession(t *testing.T) {
	s := newTestStore(t)
	sub, _ := s.CreateSubject("Math", "#000")
	id, _ := s.CreateSession(sub.ID, sub.Name, sub.Color, 600)

	if err := s.DeleteSession(id); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetSession(id); err == nil {
		t.Fatal("deleted session should be gone")
	}
}

// ============================================================
// Aggregates
// ============================================================

func TestTodayTotal(t *testing.T) {
	s := newTestStore(t)
	sub, _ := s.CreateSubject("Math", "#000")

	insertSession(t, s, sub.ID, "Math", "#000", 600, 3600)
	insertSession(t, s, sub.ID, "Math", "#000", 300, 1800)

	total, err := s.TodayTotal()
	if err != nil {
		t.Fatal(err)
	}
	if total != 5400 {
		t.Fatalf("expected 5400s, got %d", total)
	}
}

func TestTodayTotalEmpty(t *testing.T) {
	s := newTestStore(t)
	total, err := s.TodayTotal()
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 {
		t.Fatalf("expected 0 for empty, got %d", total)
	}
}

func TestTodayTotalExcludesOldSessions(t *testing.T) {
	s := newTestStore(t)
	sub, _ := s.CreateSubject("Math", "#000")

	insertSession(t, s, sub.ID, "Math", "#000", 3*24*3600, 3600)
	insertSession(t, s, sub.ID, "Math", "#000", 60, 600)

	total, _ := s.TodayTotal()
	if total != 600 {
		t.Fatalf("expected only today's 600s, got %d", total)
	}
}

func TestWeekTotal(t *testing.T) {
	s := newTestStore(t)
	sub, _ := s.CreateSubject("Math", "#000")

	insertSession(t, s, sub.ID, "Math", "#000", 2*24*3600, 3600)
	insertSession(t, s, sub.ID, "Math", "#000", 60, 600)
	insertSession(t, s, sub.ID, "Math", "#000", 20*24*3600, 9999)

	total, err := s.WeekTotal()
	if err != nil {
		t.Fatal(err)
	}
	if total != 4200 {
		t.Fatalf("expected 4200s in the last week, got %d", total)
	}
}

func TestSubjectTotals(t *testing.T) {
	s := newTestStore(t)
	m, _ := s.CreateSubject("Math", "#111")
	p, _ := s.CreateSubject("Physics", "#222")

	insertSession(t, s, m.ID, "Math", "#111", 600, 1800)
	insertSession(t, s, m.ID, "Math", "#111", 300, 1800)
	insertSession(t, s, p.ID, "Physics", "#222", 200, 7200)

	totals, err := s.SubjectTotals()
	if err != nil {
		t.Fatal(err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected 2 totals, got %d", len(totals))
	}
	// Largest first
	if totals[0].Name != "Physics" || totals[0].TotalSeconds != 7200 {
		t.Fatalf("unexpected first total: %+v", totals[0])
	}
	if totals[1].Name != "Math" || totals[1].TotalSeconds != 3600 {
		t.Fatalf("unexpected second total: %+v", totals[1])
	}
}

func TestTodayTotalUsesLocalDayBoundary(t *testing.T) {
	s := newTestStore(t)
	sub, _ := s.CreateSubject("Math", "#000")

	// One session just inside today's local midnight, one just before it.
	// Only the first counts toward today, whatever the UTC date says.
	dayStart := startOfDay(time.Now())
	insertSessionAt(t, s, sub.ID, "Math", "#000", dayStart.Add(30*time.Minute), 600)
	insertSessionAt(t, s, sub.ID, "Math", "#000", dayStart.Add(-30*time.Minute), 3600)

	total, err := s.TodayTotal()
	if err != nil {
		t.Fatal(err)
	}
	if total != 600 {
		t.Fatalf("expected 600s for today, got %d", total)
	}
}

func TestDailyTotals(t *testing.T) {
	s := newTestStore(t)
	sub, _ := s.CreateSubject("Math", "#000")

	insertSession(t, s, sub.ID, "Math", "#000", 600, 1800)
	insertSession(t, s, sub.ID, "Math", "#000", 300, 600)

	now := time.Now().UTC()
	from := now.Add(-24 * time.Hour)
	to := now.Add(24 * time.Hour)
	totals, err := s.DailyTotals(from, to)
	if err != nil {
		t.Fatal(err)
	}
	if len(totals) != 1 {
		t.Fatalf("expected 1 day, got %d", len(totals))
	}
	if totals[0].TotalSeconds != 2400 {
		t.Fatalf("expected 2400s, got %d", totals[0].TotalSeconds)
	}
}

func TestDailyTotalsBucketsByRangeLocation(t *testing.T) {
	s := newTestStore(t)
	sub, _ := s.CreateSubject("Math", "#000")

	// 23:00 UTC on March 10 is already 08:00 on March 11 at UTC+9. The
	// session must land in the March 11 bucket when the range is local to
	// that zone.
	east := time.FixedZone("UTC+9", 9*3600)
	insertSessionAt(t, s, sub.ID, "Math", "#000",
		time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC), 1800)

	from := time.Date(2026, 3, 10, 0, 0, 0, 0, east)
	totals, err := s.DailyTotals(from, from.AddDate(0, 0, 2))
	if err != nil {
		t.Fatal(err)
	}
	if len(totals) != 1 {
		t.Fatalf("expected 1 day, got %d", len(totals))
	}
	if totals[0].Date != "2026-03-11" {
		t.Fatalf("expected bucket 2026-03-11, got %s", totals[0].Date)
	}
	if totals[0].TotalSeconds != 1800 {
		t.Fatalf("expected 1800s, got %d", totals[0].TotalSeconds)
	}
}

func TestDailyTotalsEmpty(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()
	totals, err := s.DailyTotals(now.Add(-24*time.Hour), now.Add(24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if totals != nil {
		t.Fatal("expected nil for empty range")
	}
}

func TestSessionCountAndTotalSeconds(t *testing.T) {
	s := newTestStore(t)
	sub, _ := s.CreateSubject("Math", "#000")
	insertSession(t, s, sub.ID, "Math", "#000", 600, 1800)
	insertSession(t, s, sub.ID, "Math", "#000", 300, 1800)

	count, err := s.SessionCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("expected 2 sessions, got %d", count)
	}

	total, err := s.TotalSeconds()
	if err != nil {
		t.Fatal(err)
	}
	if total != 3600 {
		t.Fatalf("expected 3600s total, got %d", total)
	}
}

func TestStats(t *testing.T) {
	s := newTestStore(t)
	sub, _ := s.CreateSubject("Math", "#000")
	insertSession(t, s, sub.ID, "Math", "#000", 600, 7200)

	s.SaveStreak(engine.Streak{Current: 3, Longest: 5, LastActiveDate: "2026-03-10"})

	stats, err := s.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalHours != 2 {
		t.Fatalf("expected 2 hours, got %v", stats.TotalHours)
	}
	if stats.CurrentStreak != 3 {
		t.Fatalf("expected streak 3, got %d", stats.CurrentStreak)
	}
	if stats.SessionsCount != 1 {
		t.Fatalf("expected 1 session, got %d", stats.SessionsCount)
	}
}

// ============================================================
// Streak
// ============================================================

func TestStreakDefaults(t *testing.T) {
	s := newTestStore(t)
	st, err := s.GetStreak()
	if err != nil {
		t.Fatal(err)
	}
	if st.Current != 0 || st.Longest != 0 || st.LastActiveDate != "" {
		t.Fatalf("expected zero defaults, got %+v", st)
	}
}

func TestStreakSaveAndLoad(t *testing.T) {
	s := newTestStore(t)
	want := engine.Streak{Current: 4, Longest: 9, LastActiveDate: "2026-03-10"}
	if err := s.SaveStreak(want); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetStreak()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsDefaults(t *testing.T) {
	s := newTestStore(t)

	cfg := s.LoadSettings()
	want := engine.DefaultSettings()
	if cfg != want {
		t.Fatalf("expected defaults %+v, got %+v", want, cfg)
	}
}

func TestSaveAndLoadSettings(t *testing.T) {
	s := newTestStore(t)

	cfg := engine.Settings{
		WorkMinutes:             50,
		ShortBreakMinutes:       10,
		LongBreakMinutes:        30,
		SessionsBeforeLongBreak: 2,
		AutoStartBreak:          true,
		AutoStartWork:           true,
		SoundEnabled:            false,
		DailyGoalMinutes:        120,
	}
	if err := s.SaveSettings(cfg); err != nil {
		t.Fatal(err)
	}
	got := s.LoadSettings()
	if got != cfg {
		t.Fatalf("expected %+v, got %+v", cfg, got)
	}
}

func TestSetSettingOverwrite(t *testing.T) {
	s := newTestStore(t)

	s.SetSetting("key", "v1")
	s.SetSetting("key", "v2")
	val, _ := s.GetSetting("key")
	if val != "v2" {
		t.Fatalf("expected v2, got %s", val)
	}
}

func TestGetSettingNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetSetting("nonexistent")
	if err == nil {
		t.Fatal("expected error for missing setting")
	}
}

func TestGetAllSettings(t *testing.T) {
	s := newTestStore(t)
	all, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) < 10 {
		t.Fatalf("expected at least 10 default settings, got %d", len(all))
	}
	// Should be sorted by key
	for i := 1; i < len(all); i++ {
		if all[i-1].Key >= all[i].Key {
			t.Fatalf("settings not sorted: %s >= %s", all[i-1].Key, all[i].Key)
		}
	}
}

func TestGoalSaveAndLoad(t *testing.T) {
	s := newTestStore(t)

	g := s.LoadGoal()
	if g.TargetMinutes != 60 || g.Streak != 0 || g.LastCompletedDate != "" {
		t.Fatalf("unexpected goal defaults: %+v", g)
	}

	g.Streak = 5
	g.LastCompletedDate = "2026-03-10"
	if err := s.SaveGoal(g); err != nil {
		t.Fatal(err)
	}
	got := s.LoadGoal()
	if got.Streak != 5 || got.LastCompletedDate != "2026-03-10" {
		t.Fatalf("goal roundtrip failed: %+v", got)
	}
}

// ============================================================
// Achievements
// ============================================================

func TestListAchievementsSeeded(t *testing.T) {
	s := newTestStore(t)
	catalog, err := s.ListAchievements()
	if err != nil {
		t.Fatal(err)
	}
	if len(catalog) != 11 {
		t.Fatalf("expected 11 seeded achievements, got %d", len(catalog))
	}
	// Ordered by requirement value ascending
	for i := 1; i < len(catalog); i++ {
		if catalog[i-1].RequirementValue > catalog[i].RequirementValue {
			t.Fatalf("catalog not ordered: %d > %d", catalog[i-1].RequirementValue, catalog[i].RequirementValue)
		}
	}
}

func TestAwardAchievement(t *testing.T) {
	s := newTestStore(t)
	catalog, _ := s.ListAchievements()

	if err := s.AwardAchievement(catalog[0].ID); err != nil {
		t.Fatal(err)
	}
	earned, err := s.ListEarnedAchievements()
	if err != nil {
		t.Fatal(err)
	}
	if len(earned) != 1 || earned[0].AchievementID != catalog[0].ID {
		t.Fatalf("unexpected earned list: %+v", earned)
	}
	if earned[0].EarnedAt.IsZero() {
		t.Fatal("EarnedAt should be set")
	}
}

func TestAwardAchievementAtMostOnce(t *testing.T) {
	s := newTestStore(t)
	catalog, _ := s.ListAchievements()

	s.AwardAchievement(catalog[0].ID)
	if err := s.AwardAchievement(catalog[0].ID); err != nil {
		t.Fatalf("double award should be ignored, not fail: %v", err)
	}

	earned, _ := s.ListEarnedAchievements()
	if len(earned) != 1 {
		t.Fatalf("achievement must be earned at most once, got %d", len(earned))
	}
}

func TestEarnedSet(t *testing.T) {
	s := newTestStore(t)
	catalog, _ := s.ListAchievements()
	s.AwardAchievement(catalog[0].ID)
	s.AwardAchievement(catalog[1].ID)

	set, err := s.EarnedSet()
	if err != nil {
		t.Fatal(err)
	}
	if len(set) != 2 || !set[catalog[0].ID] || !set[catalog[1].ID] {
		t.Fatalf("unexpected earned set: %v", set)
	}
}

// ============================================================
// Todos
// ============================================================

func TestCreateAndListTodos(t *testing.T) {
	s := newTestStore(t)
	todo, err := s.CreateTodo("Review notes")
	if err != nil {
		t.Fatal(err)
	}
	if todo.Title != "Review notes" || todo.Completed {
		t.Fatalf("unexpected todo: %+v", todo)
	}

	todos, err := s.ListTodos()
	if err != nil {
		t.Fatal(err)
	}
	if len(todos) != 1 {
		t.Fatalf("expected 1 todo, got %d", len(todos))
	}
}

func TestCreateTodoEmptyTitle(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CreateTodo("   "); err == nil {
		t.Fatal("expected error for blank title")
	}
}

func TestSetTodoCompleted(t *testing.T) {
	s := newTestStore(t)
	todo, _ := s.CreateTodo("Read chapter 4")

	s.SetTodoCompleted(todo.ID, true)
	got, _ := s.GetTodo(todo.ID)
	if !got.Completed {
		t.Fatal("todo should be completed")
	}

	s.SetTodoCompleted(todo.ID, false)
	got, _ = s.GetTodo(todo.ID)
	if got.Completed {
		t.Fatal("todo should be uncompleted again")
	}
}

func TestDeleteTodo(t *testing.T) {
	s := newTestStore(t)
	todo, _ := s.CreateTodo("Old task")
	s.DeleteTodo(todo.ID)

	todos, _ := s.ListTodos()
	if len(todos) != 0 {
		t.Fatal("deleted todo should be gone")
	}
}

// ============================================================
// Close safety
// ============================================================

func TestCloseStore(t *testing.T) {
	s, _ := NewMemory()
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
