package system

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/alessio/shellescape"

	"github.com/oshokin/installer-helpers/internal/logger"
)

// ErrCommandFailed wraps non-zero exits.
var ErrCommandFailed = errors.New("command failed")

// Command describes one program invocation.
type Command struct {
	// Name is the program to run.
	Name string
	// Args are passed verbatim, without a shell.
	Args []string
	// Stdin is fed to the program when not empty.
	Stdin string
	// Privileged runs the program through sudo when not already root.
	Privileged bool
	// Capture collects stdout into Result instead of streaming it.
	Capture bool
}

// Sudo returns a privileged copy of c.
func (c Command) Sudo() Command {
	c.Privileged = true
	return c
}

// Captured returns a copy of c whose stdout is collected.
func (c Command) Captured() Command {
	c.Capture = true
	return c
}

// New builds an unprivileged command.
func New(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// Result is what a finished command left behind.
type Result struct {
	// ExitCode is the process exit status, -1 if it never started.
	ExitCode int
	// Stdout holds the output of captured commands.
	Stdout string
	// Stderr holds everything the program wrote to stderr.
	Stderr string
}

// Runner executes commands. Tests substitute a recorder.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
	LookPath(name string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Stdout receives the output of non-captured commands.
	Stdout io.Writer
	// Stderr mirrors the error output of every command.
	Stderr io.Writer
	// Root skips the sudo prefix.
	Root bool
}

// NewExecRunner creates a runner attached to the process stdout and stderr.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Root:   os.Geteuid() == 0,
	}
}

// Argv returns the full argument vector, including sudo when needed.
func (r *ExecRunner) Argv(cmd Command) []string {
	argv := append([]string{cmd.Name}, cmd.Args...)
	if cmd.Privileged && !r.Root {
		argv = append([]string{"sudo"}, argv...)
	}

	return argv
}

// Run starts the command and waits for it.
// A non-zero exit yields ErrCommandFailed together with the populated Result.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	argv := r.Argv(cmd)

	logger.Infof(ctx, "$ %s", shellescape.QuoteCommand(argv))

	//nolint:gosec // Arguments are built by the installer, never by a shell.
	process := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stdout, stderr bytes.Buffer

	if cmd.Capture {
		process.Stdout = &stdout
	} else {
		process.Stdout = r.Stdout
	}

	process.Stderr = io.MultiWriter(&stderr, r.Stderr)

	if cmd.Stdin != "" {
		process.Stdin = bytes.NewBufferString(cmd.Stdin)
	}

	err := process.Run()

	result := Result{
		ExitCode: process.ProcessState.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return result, fmt.Errorf("%s: exit status %d: %w", argv[0], result.ExitCode, ErrCommandFailed)
		}

		return Result{ExitCode: -1}, fmt.Errorf("run %s: %w", argv[0], err)
	}

	return result, nil
}

// LookPath searches PATH for name.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
