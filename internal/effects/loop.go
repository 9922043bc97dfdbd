package effects

import "time"

// Task is a cooperative per-frame job. Tick advances one frame and
// reports whether the task wants another one.
type Task interface {
	Tick(now time.Time) bool
	Stop()
}

// Loop drives named tasks from the UI frame clock. A task that returns
// false from Tick, or is stopped, is dropped and never ticked again.
type Loop struct {
	names []string
	tasks map[string]Task
}

func NewLoop() *Loop {
	return &Loop{tasks: make(map[string]Task)}
}

// Start registers t under name, stopping any task already there.
func (l *Loop) Start(name string, t Task) {
	if old, ok := l.tasks[name]; ok {
		old.Stop()
	} else {
		l.names = append(l.names, name)
	}
	l.tasks[name] = t
}

func (l *Loop) Get(name string) (Task, bool) {
	t, ok := l.tasks[name]
	return t, ok
}

func (l *Loop) Stop(name string) {
	t, ok := l.tasks[name]
	if !ok {
		return
	}
	t.Stop()
	l.remove(name)
}

func (l *Loop) StopAll() {
	for _, name := range append([]string(nil), l.names...) {
		l.Stop(name)
	}
}

func (l *Loop) Tick(now time.Time) {
	for _, name := range append([]string(nil), l.names...) {
		t, ok := l.tasks[name]
		if !ok {
			continue
		}
		if !t.Tick(now) {
			l.remove(name)
		}
	}
}

// Active reports whether any task still needs frames.
func (l *Loop) Active() bool {
	return len(l.tasks) > 0
}

func (l *Loop) Len() int { return len(l.tasks) }

func (l *Loop) remove(name string) {
	delete(l.tasks, name)
	for i, n := range l.names {
		if n == name {
			l.names = append(l.names[:i], l.names[i+1:]...)
			return
		}
	}
}
