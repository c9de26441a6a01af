package engine

// MinSessionSeconds is the accounting floor: intervals shorter than a minute
// never become sessions, so accidental taps do not pollute history.
const MinSessionSeconds = 60

// SelectedSubject is the subject a candidate session is attributed to,
// carrying the name/color snapshot that gets denormalized onto the record.
type SelectedSubject struct {
	ID    int64
	Name  string
	Color string
}

// SessionSink persists accepted sessions. *store.Store satisfies it.
type SessionSink interface {
	CreateSession(subjectID int64, subjectName, subjectColor string, durationSeconds int) (int64, error)
}

// Recorder applies the shared accounting rule for both timers: a candidate
// duration becomes a persisted session only when it meets the floor and a
// subject is selected. Rejections are silent.
type Recorder struct {
	sink    SessionSink
	subject *SelectedSubject
}

func NewRecorder(sink SessionSink) *Recorder {
	return &Recorder{sink: sink}
}

func (r *Recorder) Select(subject *SelectedSubject) { r.subject = subject }

func (r *Recorder) Subject() *SelectedSubject { return r.subject }

// Record accepts or discards a candidate duration. The bool reports whether
// the candidate passed the rule; the error is a persistence failure on an
// accepted candidate and never affects timer state.
func (r *Recorder) Record(durationSeconds int) (bool, error) {
	if durationSeconds < MinSessionSeconds || r.subject == nil {
		return false, nil
	}
	_, err := r.sink.CreateSession(r.subject.ID, r.subject.Name, r.subject.Color, durationSeconds)
	return true, err
}
