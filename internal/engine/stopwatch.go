package engine

// Stopwatch is a free-running elapsed-seconds counter. It holds no tick
// source of its own: the owner feeds it one Tick per real second, so a
// second Start while already running can never double the tick rate.
type Stopwatch struct {
	elapsed int
	running bool
	paused  bool
}

func (s *Stopwatch) Start() {
	if s.running {
		return
	}
	s.running = true
	s.paused = false
}

func (s *Stopwatch) Pause() {
	if !s.running || s.paused {
		return
	}
	s.paused = true
}

func (s *Stopwatch) Resume() {
	if !s.paused {
		return
	}
	s.paused = false
}

// Stop freezes the counter without clearing it. The caller decides whether
// the elapsed time becomes a session before calling Reset.
func (s *Stopwatch) Stop() {
	s.running = false
	s.paused = false
}

func (s *Stopwatch) Reset() {
	s.elapsed = 0
	s.running = false
	s.paused = false
}

// Tick advances the counter by one second while running and unpaused.
func (s *Stopwatch) Tick() {
	if s.running && !s.paused {
		s.elapsed++
	}
}

func (s *Stopwatch) Elapsed() int { return s.elapsed }
func (s *Stopwatch) Running() bool { return s.running }
func (s *Stopwatch) Paused() bool  { return s.paused }
