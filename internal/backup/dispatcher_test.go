package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"wither/internal/job"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExecutor struct {
	executed []string
	fail     map[string]error
}

func (f *fakeExecutor) Execute(_ context.Context, j *job.Job) (Status, error) {
	f.executed = append(f.executed, j.Identifier)
	if err, ok := f.fail[j.Identifier]; ok {
		return StatusFailed, err
	}
	return StatusSucceeded, nil
}

type recordedJob struct {
	identifier string
	status     Status
	err        error
}

type fakeRecorder struct {
	records []recordedJob
}

func (f *fakeRecorder) Record(j *job.Job, status Status, err error) {
	f.records = append(f.records, recordedJob{identifier: j.Identifier, status: status, err: err})
}

// writeJob creates <root>/<name>/.backup/spec.json for a valid or invalid job
func writeJob(t *testing.T, root, name, identifier string) string {
	t.Helper()
	source := filepath.Join(root, name)
	specDir := filepath.Join(source, job.SpecDirName)
	require.NoError(t, os.MkdirAll(specDir, 0o755))
	content := fmt.Sprintf(`{"type":"minecraft","identifier":%q,"path":%q,"daily":true,"hourly":true}`, identifier, source)
	path := filepath.Join(specDir, job.SpecFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDispatcher_RunsJobsInDiscoveryOrder(t *testing.T) {
	root := t.TempDir()
	writeJob(t, root, "a", "alpha")
	writeJob(t, root, "b", "beta")

	executor := &fakeExecutor{}
	recorder := &fakeRecorder{}
	dispatcher := NewDispatcher(job.DiscoveryOptions{Root: root}, executor, recorder, zerolog.Nop())

	require.NoError(t, dispatcher.Run(context.Background()))
	assert.Equal(t, []string{"alpha", "beta"}, executor.executed)
	assert.Equal(t, []recordedJob{
		{identifier: "alpha", status: StatusSucceeded},
		{identifier: "beta", status: StatusSucceeded},
	}, recorder.records)
}

func TestDispatcher_InvalidSpecAbortsBeforeAnyExecution(t *testing.T) {
	root := t.TempDir()
	writeJob(t, root, "a", "alpha")
	bad := writeJob(t, root, "b", "not valid")

	executor := &fakeExecutor{}
	dispatcher := NewDispatcher(job.DiscoveryOptions{Root: root}, executor, nil, zerolog.Nop())

	err := dispatcher.Run(context.Background())
	var specErr *job.SpecificationError
	require.True(t, errors.As(err, &specErr))
	assert.Equal(t, bad, specErr.File)
	assert.Empty(t, executor.executed)
}

func TestDispatcher_StopsAfterFailedJob(t *testing.T) {
	root := t.TempDir()
	writeJob(t, root, "a", "alpha")
	writeJob(t, root, "b", "beta")
	writeJob(t, root, "c", "gamma")

	helperErr := &HelperError{Helper: testHelper, Command: "sync-to-local", ExitCode: 1}
	executor := &fakeExecutor{fail: map[string]error{"beta": helperErr}}
	recorder := &fakeRecorder{}
	dispatcher := NewDispatcher(job.DiscoveryOptions{Root: root}, executor, recorder, zerolog.Nop())

	err := dispatcher.Run(context.Background())
	assert.ErrorIs(t, err, helperErr)
	assert.Equal(t, []string{"alpha", "beta"}, executor.executed)
	require.Len(t, recorder.records, 2)
	assert.Equal(t, StatusFailed, recorder.records[1].status)
}

func TestDispatcher_NoJobs(t *testing.T) {
	executor := &fakeExecutor{}
	dispatcher := NewDispatcher(job.DiscoveryOptions{Root: t.TempDir()}, executor, nil, zerolog.Nop())

	require.NoError(t, dispatcher.Run(context.Background()))
	assert.Empty(t, executor.executed)
}

func TestDispatcher_Load(t *testing.T) {
	root := t.TempDir()
	writeJob(t, root, "a", "alpha")

	dispatcher := NewDispatcher(job.DiscoveryOptions{Root: root}, &fakeExecutor{}, nil, zerolog.Nop())

	jobs, err := dispatcher.Load()
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "alpha", jobs[0].Identifier)
	assert.Equal(t, filepath.Join(root, "a"), jobs[0].Path)
}
