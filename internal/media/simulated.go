package media

// Simulated is an in-memory media element. Time advances only through
// Advance, which makes playback deterministic in previews and tests.
// Simulated is not safe for concurrent use.
type Simulated struct {
	duration float64
	position float64
	paused   bool
	seeking  bool
}

// NewSimulated returns a paused element at 0. A zero duration means
// unbounded.
func NewSimulated(duration float64) *Simulated {
	return &Simulated{duration: duration, paused: true}
}

// CurrentTime returns the playback position in seconds.
func (m *Simulated) CurrentTime() float64 { return m.position }

// Duration returns the configured duration.
func (m *Simulated) Duration() float64 { return m.duration }

// Paused reports whether playback is paused.
func (m *Simulated) Paused() bool { return m.paused }

// Seeking reports whether a seek has not settled yet.
func (m *Simulated) Seeking() bool { return m.seeking }

// Ended reports whether the position reached the duration.
func (m *Simulated) Ended() bool {
	return m.duration > 0 && m.position >= m.duration
}

// Play resumes playback. Playing at the end restarts from 0.
func (m *Simulated) Play() {
	if m.Ended() {
		m.position = 0
	}
	m.paused = false
}

// Pause stops playback.
func (m *Simulated) Pause() { m.paused = true }

// Seek moves the position, clamped to [0, duration]. The element reports
// Seeking until the next Advance or Settle.
func (m *Simulated) Seek(t float64) {
	m.position = m.clamp(t)
	m.seeking = true
}

// Settle completes a pending seek.
func (m *Simulated) Settle() { m.seeking = false }

// Advance settles a pending seek and moves the position forward by seconds
// while playing. Reaching the end pauses the element.
func (m *Simulated) Advance(seconds float64) {
	m.seeking = false
	if m.paused || seconds <= 0 {
		return
	}
	m.position = m.clamp(m.position + seconds)
	if m.Ended() {
		m.paused = true
	}
}

func (m *Simulated) clamp(t float64) float64 {
	if t < 0 {
		return 0
	}
	if m.duration > 0 && t > m.duration {
		return m.duration
	}
	return t
}
