// Package systemtest provides a scripted system.Runner for tests.
package systemtest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/oshokin/installer-helpers/internal/service/system"
)

// Reply scripts the outcome of commands whose rendered line starts with a prefix.
type Reply struct {
	// Prefix is matched against "name arg1 arg2 ...".
	Prefix string
	// Result is returned as is.
	Result system.Result
	// Err is returned together with Result.
	Err error
}

// Recorder records every command and answers from its replies.
// Unmatched commands succeed with an empty result.
type Recorder struct {
	mu       sync.Mutex
	commands []system.Command
	replies  []Reply
	missing  map[string]bool
}

// NewRecorder creates a recorder answering with replies, first match wins.
func NewRecorder(replies ...Reply) *Recorder {
	return &Recorder{
		replies: replies,
		missing: make(map[string]bool),
	}
}

// Missing marks programs that LookPath will not find.
func (r *Recorder) Missing(names ...string) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range names {
		r.missing[name] = true
	}

	return r
}

// Run implements system.Runner.
func (r *Recorder) Run(_ context.Context, cmd system.Command) (system.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.commands = append(r.commands, cmd)

	line := Line(cmd)

	for _, reply := range r.replies {
		if strings.HasPrefix(line, reply.Prefix) {
			return reply.Result, reply.Err
		}
	}

	return system.Result{}, nil
}

// LookPath implements system.Runner.
func (r *Recorder) LookPath(name string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.missing[name] {
		return "", fmt.Errorf("%s: executable file not found in $PATH", name)
	}

	return "/usr/bin/" + name, nil
}

// Commands returns the recorded commands in order.
func (r *Recorder) Commands() []system.Command {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]system.Command(nil), r.commands...)
}

// Lines returns the recorded commands rendered by Line.
func (r *Recorder) Lines() []string {
	commands := r.Commands()
	lines := make([]string, 0, len(commands))

	for _, cmd := range commands {
		lines = append(lines, Line(cmd))
	}

	return lines
}

// Line renders a command as space-joined words, prefixed with "sudo " when privileged.
func Line(cmd system.Command) string {
	line := strings.Join(append([]string{cmd.Name}, cmd.Args...), " ")
	if cmd.Privileged {
		return "sudo " + line
	}

	return line
}
