package store

import "time"

type Subject struct {
	ID        int64
	Name      string
	Color     string
	CreatedAt time.Time
}

// StudySession is one persisted interval of focused study. The subject name
// and color are snapshots taken at creation time, so renaming or deleting a
// subject never rewrites history.
type StudySession struct {
	ID           int64
	SubjectID    *int64
	SubjectName  string
	SubjectColor string
	Duration     int64 // seconds
	StartedAt    time.Time
}

type Todo struct {
	ID        int64
	Title     string
	Completed bool
	CreatedAt time.Time
}

type Setting struct {
	Key   string
	Value string
}

// SubjectTotal is the all-time study time attributed to one subject name.
type SubjectTotal struct {
	Name         string
	Color        string
	TotalSeconds int64
}

// DayTotal is the study time recorded on one calendar day.
type DayTotal struct {
	Date         string
	TotalSeconds int64
}
