package ui

import "sync"

// Command is a UI mutation. Commands are posted from any goroutine and
// applied on the UI tick.
type Command interface {
	Apply(r *Registry)
}

// CommandFunc adapts a function to Command.
type CommandFunc func(r *Registry)

// Apply implements Command.
func (f CommandFunc) Apply(r *Registry) { f(r) }

// Poster accepts commands for the next UI tick.
type Poster interface {
	Post(cmd Command)
}

// Queue is a multi-producer, single-consumer list of pending commands.
type Queue struct {
	mu      sync.Mutex
	pending []Command
}

// Post appends cmd. Safe for concurrent use.
func (q *Queue) Post(cmd Command) {
	if cmd == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, cmd)
	q.mu.Unlock()
}

// Take removes and returns every pending command in posting order.
func (q *Queue) Take() []Command {
	q.mu.Lock()
	cmds := q.pending
	q.pending = nil
	q.mu.Unlock()
	return cmds
}

// Len returns the number of pending commands.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
