package effects

import "time"

const DefaultTypeInterval = 50 * time.Millisecond

// TypeWriter reveals text one rune per interval.
type TypeWriter struct {
	text     []rune
	shown    int
	interval time.Duration
	last     time.Time
}

func NewTypeWriter(text string, interval time.Duration) *TypeWriter {
	if interval <= 0 {
		interval = DefaultTypeInterval
	}
	return &TypeWriter{text: []rune(text), interval: interval}
}

func (tw *TypeWriter) Tick(now time.Time) bool {
	if tw.Done() {
		return false
	}
	if tw.last.IsZero() {
		tw.last = now
		tw.shown = 1
		return !tw.Done()
	}
	for now.Sub(tw.last) >= tw.interval && !tw.Done() {
		tw.last = tw.last.Add(tw.interval)
		tw.shown++
	}
	return !tw.Done()
}

// Stop reveals the rest of the text at once.
func (tw *TypeWriter) Stop() { tw.shown = len(tw.text) }

func (tw *TypeWriter) Done() bool { return tw.shown >= len(tw.text) }

func (tw *TypeWriter) Text() string { return string(tw.text[:tw.shown]) }
