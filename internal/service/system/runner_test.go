package system_test

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/installer-helpers/internal/service/system"
)

func TestArgv(t *testing.T) {
	t.Parallel()

	cmd := system.New("apt-get", "update", "-y").Sudo()

	user := &system.ExecRunner{}
	require.Equal(t, []string{"sudo", "apt-get", "update", "-y"}, user.Argv(cmd))

	root := &system.ExecRunner{Root: true}
	require.Equal(t, []string{"apt-get", "update", "-y"}, root.Argv(cmd))

	require.Equal(t, []string{"uname", "-r"}, user.Argv(system.New("uname", "-r")))
}

func TestExecRunnerCapture(t *testing.T) {
	t.Parallel()

	runner := &system.ExecRunner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	if _, err := runner.LookPath("sh"); err != nil {
		t.Skip("sh is not available")
	}

	result, err := runner.Run(context.Background(), system.New("sh", "-c", "echo hello").Captured())
	require.NoError(t, err)
	require.Equal(t, 0, result.ExitCode)
	require.Equal(t, "hello\n", result.Stdout)
}

func TestExecRunnerStreamsAndFeedsStdin(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	runner := &system.ExecRunner{Stdout: &stdout, Stderr: &stderr}
	if _, err := runner.LookPath("sh"); err != nil {
		t.Skip("sh is not available")
	}

	cmd := system.New("sh", "-c", "read answer; echo got $answer; echo oops >&2")
	cmd.Stdin = "y\n"

	result, err := runner.Run(context.Background(), cmd)
	require.NoError(t, err)
	require.Empty(t, result.Stdout)
	require.Equal(t, "oops\n", result.Stderr)
	require.Equal(t, "got y\n", stdout.String())
	require.Equal(t, "oops\n", stderr.String())
}

func TestExecRunnerExitCode(t *testing.T) {
	t.Parallel()

	runner := &system.ExecRunner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	if _, err := runner.LookPath("sh"); err != nil {
		t.Skip("sh is not available")
	}

	result, err := runner.Run(context.Background(), system.New("sh", "-c", "exit 3"))
	require.ErrorIs(t, err, system.ErrCommandFailed)
	require.Equal(t, 3, result.ExitCode)
}

func TestExecRunnerMissingProgram(t *testing.T) {
	t.Parallel()

	runner := &system.ExecRunner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	result, err := runner.Run(context.Background(), system.New("definitely-not-a-real-program-42"))
	require.Error(t, err)
	require.NotErrorIs(t, err, system.ErrCommandFailed)
	require.Equal(t, -1, result.ExitCode)
}

func TestRunningProcessesSkipsSelf(t *testing.T) {
	t.Parallel()

	self, err := os.Executable()
	require.NoError(t, err)

	found, err := system.RunningProcesses("VBoxSVC-that-never-runs")
	require.NoError(t, err)
	require.Empty(t, found)

	found, err = system.RunningProcesses(self)
	require.NoError(t, err)

	for _, process := range found {
		require.NotEqual(t, os.Getpid(), process.PID)
	}
}
