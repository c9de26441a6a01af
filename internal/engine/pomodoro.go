package engine

// Phase is one of the three pomodoro states.
type Phase int

const (
	PhaseWork Phase = iota
	PhaseShortBreak
	PhaseLongBreak
)

func (p Phase) String() string {
	switch p {
	case PhaseShortBreak:
		return "short break"
	case PhaseLongBreak:
		return "long break"
	default:
		return "work"
	}
}

// Settings holds the user-tunable pomodoro configuration. Durations are in
// minutes, matching how they are edited and stored.
type Settings struct {
	WorkMinutes             int
	ShortBreakMinutes       int
	LongBreakMinutes        int
	SessionsBeforeLongBreak int
	AutoStartBreak          bool
	AutoStartWork           bool
	SoundEnabled            bool
	DailyGoalMinutes        int
}

func DefaultSettings() Settings {
	return Settings{
		WorkMinutes:             25,
		ShortBreakMinutes:       5,
		LongBreakMinutes:        15,
		SessionsBeforeLongBreak: 4,
		AutoStartBreak:          false,
		AutoStartWork:           false,
		SoundEnabled:            true,
		DailyGoalMinutes:        60,
	}
}

// EventKind identifies a pomodoro side effect. Events are returned by the
// mutating operations and handled by the caller strictly after the tick that
// produced them; the state machine never blocks on their handling.
type EventKind int

const (
	// EventPhaseChanged fires whenever the machine enters a phase.
	EventPhaseChanged EventKind = iota
	// EventWorkComplete carries the study seconds to hand to accounting:
	// the configured duration on a natural zero-crossing, the observed
	// seconds on a skip.
	EventWorkComplete
	// EventBreakComplete fires when a break phase ends. Breaks never count
	// as study time.
	EventBreakComplete
	// EventChime asks the audio collaborator for a completion tone.
	EventChime
)

type Event struct {
	Kind    EventKind
	Phase   Phase // for EventPhaseChanged: the phase entered
	Seconds int   // for EventWorkComplete: accountable study seconds
}

// Pomodoro cycles work and break countdowns. Like Stopwatch it is driven by
// an external once-per-second Tick, so there is exactly one decrement source
// regardless of how often Start is pressed.
type Pomodoro struct {
	settings Settings

	phase             Phase
	secondsRemaining  int
	running           bool
	paused            bool
	completedSessions int
	totalWorkSeconds  int

	// remaining when the countdown last started; skip accounting measures
	// worked time against this.
	startRemaining int
}

func NewPomodoro(settings Settings) *Pomodoro {
	return &Pomodoro{
		settings:         settings,
		phase:            PhaseWork,
		secondsRemaining: settings.phaseSeconds(PhaseWork),
	}
}

func (s Settings) phaseSeconds(p Phase) int {
	switch p {
	case PhaseShortBreak:
		return s.ShortBreakMinutes * 60
	case PhaseLongBreak:
		return s.LongBreakMinutes * 60
	default:
		return s.WorkMinutes * 60
	}
}

func (p *Pomodoro) Phase() Phase           { return p.phase }
func (p *Pomodoro) SecondsRemaining() int  { return p.secondsRemaining }
func (p *Pomodoro) Running() bool          { return p.running }
func (p *Pomodoro) Paused() bool           { return p.paused }
func (p *Pomodoro) CompletedSessions() int { return p.completedSessions }
func (p *Pomodoro) TotalWorkSeconds() int  { return p.totalWorkSeconds }
func (p *Pomodoro) Settings() Settings     { return p.settings }

// active reports whether a countdown currently owns the tick.
func (p *Pomodoro) active() bool { return p.running && !p.paused }

func (p *Pomodoro) Start() {
	if p.active() {
		return
	}
	p.running = true
	p.paused = false
	p.startRemaining = p.secondsRemaining
}

func (p *Pomodoro) Pause() {
	if !p.active() {
		return
	}
	p.paused = true
}

func (p *Pomodoro) Resume() {
	if !p.paused {
		return
	}
	p.paused = false
}

// Tick counts down one second. Crossing zero completes the phase; the
// completion events come back to the caller in order.
func (p *Pomodoro) Tick() []Event {
	if !p.active() {
		return nil
	}
	if p.secondsRemaining > 0 {
		p.secondsRemaining--
	}
	if p.secondsRemaining > 0 {
		return nil
	}
	if p.phase == PhaseWork {
		// Natural completion reports the canonical configured duration,
		// not the literal ticked seconds.
		worked := p.settings.phaseSeconds(PhaseWork)
		p.totalWorkSeconds += worked
		events := []Event{{Kind: EventWorkComplete, Seconds: worked}}
		return append(events, p.completeWork()...)
	}
	events := []Event{{Kind: EventBreakComplete}}
	return append(events, p.completeBreak()...)
}

// Skip ends the current phase early. Partial work of at least a minute is
// reported to accounting; shorter work and breaks are discarded.
func (p *Pomodoro) Skip() []Event {
	var events []Event
	if p.phase == PhaseWork {
		worked := p.startRemaining - p.secondsRemaining
		if worked >= MinSessionSeconds {
			p.totalWorkSeconds += worked
			events = append(events, Event{Kind: EventWorkComplete, Seconds: worked})
		}
		return append(events, p.completeWork()...)
	}
	events = append(events, Event{Kind: EventBreakComplete})
	return append(events, p.completeBreak()...)
}

func (p *Pomodoro) completeWork() []Event {
	p.completedSessions++
	next := PhaseShortBreak
	// cycle can be 0 if the settings row was edited by hand; no long breaks then.
	if cycle := p.settings.SessionsBeforeLongBreak; cycle > 0 && p.completedSessions%cycle == 0 {
		next = PhaseLongBreak
	}
	events := p.chime()
	events = append(events, p.enterPhase(next)...)
	if p.settings.AutoStartBreak {
		p.Start()
	}
	return events
}

func (p *Pomodoro) completeBreak() []Event {
	events := p.chime()
	events = append(events, p.enterPhase(PhaseWork)...)
	if p.settings.AutoStartWork {
		p.Start()
	}
	return events
}

func (p *Pomodoro) chime() []Event {
	if !p.settings.SoundEnabled {
		return nil
	}
	return []Event{{Kind: EventChime}}
}

// enterPhase cancels any countdown and re-initializes remaining time for the
// new phase.
func (p *Pomodoro) enterPhase(next Phase) []Event {
	p.phase = next
	p.secondsRemaining = p.settings.phaseSeconds(next)
	p.running = false
	p.paused = false
	return []Event{{Kind: EventPhaseChanged, Phase: next}}
}

// SetPhase forces the machine into a phase, discarding any countdown.
func (p *Pomodoro) SetPhase(next Phase) []Event {
	return p.enterPhase(next)
}

// Reset restores the current phase's full duration without touching the
// completed-session count or accumulated work time.
func (p *Pomodoro) Reset() {
	p.secondsRemaining = p.settings.phaseSeconds(p.phase)
	p.running = false
	p.paused = false
}

// ResetAll returns to the initial state: work phase, nothing completed.
func (p *Pomodoro) ResetAll() {
	p.phase = PhaseWork
	p.secondsRemaining = p.settings.phaseSeconds(PhaseWork)
	p.running = false
	p.paused = false
	p.completedSessions = 0
	p.totalWorkSeconds = 0
}

// SetSettings swaps the configuration. An idle machine re-derives the
// current phase's remaining time immediately; an in-flight countdown keeps
// its remaining seconds untouched.
func (p *Pomodoro) SetSettings(s Settings) {
	p.settings = s
	if !p.running && !p.paused {
		p.secondsRemaining = s.phaseSeconds(p.phase)
	}
}
