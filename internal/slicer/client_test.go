package slicer

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/slicelog/internal/record"
)

type fakeExecutor struct {
	output []byte
	err    error

	calls    int
	binary   string
	args     []string
	deadline bool
}

func (f *fakeExecutor) Output(ctx context.Context, binary string, args []string) ([]byte, error) {
	f.calls++
	f.binary = binary
	f.args = args
	_, f.deadline = ctx.Deadline()

	return f.output, f.err
}

func TestNew_RequiresBinary(t *testing.T) {
	_, err := New("   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slicer binary required")
}

func TestExtract_PassesPathVerbatim(t *testing.T) {
	fake := &fakeExecutor{output: []byte("Filament Color: Red\n")}

	c, err := New("/opt/orca/OrcaSlicer", WithExecutor(fake))
	require.NoError(t, err)

	path := filepath.Join("watched dir", "part.3mf")
	_, err = c.Extract(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, "/opt/orca/OrcaSlicer", fake.binary)
	assert.Equal(t, []string{path, "--info"}, fake.args)
	assert.False(t, fake.deadline)
}

func TestExtract_Scenario(t *testing.T) {
	fake := &fakeExecutor{
		output: []byte("Filament Color: Red\nFilament Used: 1200.5 mm\nEstimated Print Time: 1h 23m\n"),
	}

	c, err := New("orca", WithExecutor(fake))
	require.NoError(t, err)

	got, err := c.Extract(context.Background(), "/prints/part.3mf")
	require.NoError(t, err)

	assert.Equal(t, record.Record{
		FileName:      "part.3mf",
		FilamentColor: "Red",
		FilamentMM:    "1200.5",
		PrintTime:     "1h 23m",
	}, got)
}

func TestExtract_NoMatches(t *testing.T) {
	fake := &fakeExecutor{output: []byte("slicing done\n")}

	c, err := New("orca", WithExecutor(fake))
	require.NoError(t, err)

	got, err := c.Extract(context.Background(), "part.3mf")
	require.NoError(t, err)
	assert.Equal(t, record.New("part.3mf"), got)
}

func TestExtract_ExecutorErrorIsWrapped(t *testing.T) {
	fake := &fakeExecutor{err: exec.ErrNotFound}

	c, err := New("missing-slicer", WithExecutor(fake))
	require.NoError(t, err)

	_, err = c.Extract(context.Background(), "part.3mf")
	require.Error(t, err)
	assert.ErrorIs(t, err, exec.ErrNotFound)
	assert.NotErrorIs(t, err, ErrToolFailed)
	assert.Contains(t, err.Error(), "missing-slicer")
}

func TestExtract_TimeoutSetsDeadline(t *testing.T) {
	fake := &fakeExecutor{}

	c, err := New("orca", WithExecutor(fake), WithTimeout(time.Minute))
	require.NoError(t, err)

	_, err = c.Extract(context.Background(), "part.3mf")
	require.NoError(t, err)
	assert.True(t, fake.deadline)
}

func TestExtract_NonZeroExit(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	script := filepath.Join(t.TempDir(), "fail.sh")
	require.NoError(t, os.WriteFile(script, []byte("echo broken model\nexit 3\n"), 0o600))

	// The client invokes `<binary> <path> --info`; route it through sh so the
	// script path becomes the "input file".
	c, err := New(sh)
	require.NoError(t, err)

	_, err = c.Extract(context.Background(), script)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrToolFailed)

	var toolErr *ToolError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, 3, toolErr.ExitCode)
	assert.Contains(t, toolErr.Output, "broken model")
}

func TestExtract_RealProcessOutput(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	script := filepath.Join(t.TempDir(), "part.3mf")
	body := "echo 'Filament Color: Blue'\necho 'Filament Used: 88 mm' 1>&2\n"
	require.NoError(t, os.WriteFile(script, []byte(body), 0o600))

	c, err := New(sh)
	require.NoError(t, err)

	got, err := c.Extract(context.Background(), script)
	require.NoError(t, err)

	assert.Equal(t, "part.3mf", got.FileName)
	assert.Equal(t, "Blue", got.FilamentColor)
	assert.Equal(t, "88", got.FilamentMM, "stderr is part of the captured output")
	assert.Equal(t, record.NotAvailable, got.PrintTime)
}
