package relaunch_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/icopatch/pkg/types"
	"github.com/joshuapare/icopatch/relaunch"
)

type spawnCall struct {
	path string
	args []string
}

type fakeSpawner struct {
	calls []spawnCall
	err   error
}

func (f *fakeSpawner) Start(path string, args []string) error {
	f.calls = append(f.calls, spawnCall{path, args})
	return f.err
}

type fakeHost struct {
	exe     string
	copies  [][2]string
	removed []string
	sleeps  []time.Duration
	copyErr error
	rmErr   error
	onSleep func(n int) // called after the nth sleep is recorded
}

func (f *fakeHost) Executable() (string, error) { return f.exe, nil }

func (f *fakeHost) CopyExclusive(src, dst string) error {
	if f.copyErr != nil {
		return f.copyErr
	}
	f.copies = append(f.copies, [2]string{src, dst})
	return nil
}

func (f *fakeHost) Remove(path string) error {
	if f.rmErr != nil {
		return f.rmErr
	}
	f.removed = append(f.removed, path)
	return nil
}

func (f *fakeHost) Sleep(ctx context.Context, d time.Duration) error {
	f.sleeps = append(f.sleeps, d)
	if f.onSleep != nil {
		f.onSleep(len(f.sleeps))
	}
	return ctx.Err()
}

type patchCall struct {
	op       relaunch.Operation
	exe, ico string
}

type fakePatcher struct {
	calls []patchCall
	err   error
}

func (f *fakePatcher) Patch(op relaunch.Operation, exe, ico string) error {
	f.calls = append(f.calls, patchCall{op, exe, ico})
	return f.err
}

type rig struct {
	spawner *fakeSpawner
	host    *fakeHost
	patcher *fakePatcher
	trace   []relaunch.State
	orch    *relaunch.Orchestrator
}

func newRig(exe string) *rig {
	r := &rig{
		spawner: &fakeSpawner{},
		host:    &fakeHost{exe: exe},
		patcher: &fakePatcher{},
	}
	cfg := relaunch.DefaultConfig()
	cfg.TempName = func(exe string) string { return exe + ".4711.exe" }
	cfg.OnTransition = func(_, to relaunch.State) { r.trace = append(r.trace, to) }
	r.orch = relaunch.New(cfg, r.spawner, r.host, r.patcher)
	return r
}

func TestRun_SpawnsWorker(t *testing.T) {
	r := newRig(`C:\apps\tool.exe`)

	state, err := r.orch.Run(context.Background(), []string{"--icopatch:SetIcon"})
	require.NoError(t, err)
	assert.Equal(t, relaunch.StateDone, state)

	assert.Equal(t, [][2]string{{`C:\apps\tool.exe`, `C:\apps\tool.exe.4711.exe`}}, r.host.copies)
	require.Len(t, r.spawner.calls, 1)
	assert.Equal(t, `C:\apps\tool.exe.4711.exe`, r.spawner.calls[0].path)
	assert.Equal(t, []string{"--icopatch:SetIcon", "SetIcon", `C:\apps\tool.exe`}, r.spawner.calls[0].args)
	assert.Empty(t, r.host.sleeps, "first hop does not wait")
	assert.Empty(t, r.patcher.calls)
	assert.Equal(t, []relaunch.State{relaunch.StateSpawningWorker, relaunch.StateDone}, r.trace)
}

func TestRequest_SpawnsWorker(t *testing.T) {
	r := newRig("tool.exe")

	state, err := r.orch.Request(context.Background(), relaunch.OpRemoveIcon)
	require.NoError(t, err)
	assert.Equal(t, relaunch.StateDone, state)
	require.Len(t, r.spawner.calls, 1)
	assert.Equal(t, []string{"--icopatch:RemoveIcon", "RemoveIcon", "tool.exe"}, r.spawner.calls[0].args)

	_, err = r.orch.Request(context.Background(), relaunch.OpDelete)
	assert.ErrorIs(t, err, types.ErrRelaunch)
}

func TestRun_CopyFailureStops(t *testing.T) {
	r := newRig("tool.exe")
	r.host.copyErr = errors.New("file exists")

	state, err := r.orch.Run(context.Background(), []string{"--icopatch:AddIcon"})
	assert.Equal(t, relaunch.StateDone, state)
	assert.ErrorIs(t, err, types.ErrRelaunch)
	assert.ErrorContains(t, err, "file exists")
	assert.Empty(t, r.spawner.calls)
}

func TestRun_WorkerLaunchFailureRemovesCopy(t *testing.T) {
	r := newRig("tool.exe")
	r.spawner.err = errors.New("access denied")

	state, err := r.orch.Run(context.Background(), []string{"--icopatch:AddIcon"})
	assert.Equal(t, relaunch.StateDone, state)
	assert.ErrorIs(t, err, types.ErrRelaunch)
	assert.Equal(t, []string{"tool.exe.4711.exe"}, r.host.removed)
}

func TestRun_WorkerPatchesAndRequestsCleanup(t *testing.T) {
	r := newRig(`C:\apps\tool.exe.4711.exe`)

	state, err := r.orch.Run(context.Background(), []string{"--icopatch:SetIcon", "SetIcon", `C:\apps\tool.exe`})
	require.NoError(t, err)
	assert.Equal(t, relaunch.StateDone, state)

	assert.Equal(t, []patchCall{{relaunch.OpSetIcon, `C:\apps\tool.exe`, `C:\apps\tool.ico`}}, r.patcher.calls)
	require.Len(t, r.spawner.calls, 1)
	assert.Equal(t, `C:\apps\tool.exe`, r.spawner.calls[0].path)
	assert.Equal(t, []string{"--icopatch:SetIcon", "Delete", `C:\apps\tool.exe.4711.exe`}, r.spawner.calls[0].args)
	assert.Equal(t, []time.Duration{time.Second, time.Second}, r.host.sleeps)
	assert.Equal(t, []relaunch.State{
		relaunch.StateWorkerPerformingOperation,
		relaunch.StateWorkerRequestingCleanup,
		relaunch.StateDone,
	}, r.trace)
}

func TestRun_PatchFailureStillCleansUp(t *testing.T) {
	r := newRig("tool.exe.4711.exe")
	r.patcher.err = types.New(types.ErrKindFormat, "parse", "tool.ico", "truncated", nil)

	state, err := r.orch.Run(context.Background(), []string{"--icopatch:AddIcon", "AddIcon", "tool.exe"})
	assert.Equal(t, relaunch.StateDone, state)
	assert.ErrorIs(t, err, types.ErrFormat)
	require.Len(t, r.spawner.calls, 1, "cleanup hop must still be requested")
	assert.Equal(t, "Delete", r.spawner.calls[0].args[1])
}

func TestRun_CleanupLaunchFailure(t *testing.T) {
	r := newRig("tool.exe.4711.exe")
	r.spawner.err = errors.New("no such file")

	state, err := r.orch.Run(context.Background(), []string{"--icopatch:RemoveIcon", "RemoveIcon", "tool.exe"})
	assert.Equal(t, relaunch.StateDone, state)
	assert.ErrorIs(t, err, types.ErrRelaunch)
	assert.Len(t, r.patcher.calls, 1)
}

func TestRun_DeletesTemporaryCopy(t *testing.T) {
	r := newRig("tool.exe")

	state, err := r.orch.Run(context.Background(), []string{"--icopatch:SetIcon", "Delete", "tool.exe.4711.exe"})
	require.NoError(t, err)
	assert.Equal(t, relaunch.StateDone, state)
	assert.Equal(t, []string{"tool.exe.4711.exe"}, r.host.removed)
	assert.Equal(t, []time.Duration{time.Second}, r.host.sleeps)
	assert.Empty(t, r.spawner.calls)
	assert.Equal(t, []relaunch.State{relaunch.StateCleaningUp, relaunch.StateDone}, r.trace)
}

func TestRun_DeleteFailure(t *testing.T) {
	r := newRig("tool.exe")
	r.host.rmErr = errors.New("file not found")

	state, err := r.orch.Run(context.Background(), []string{"--icopatch:SetIcon", "Delete", "missing.exe"})
	assert.Equal(t, relaunch.StateDone, state)
	assert.ErrorIs(t, err, types.ErrCleanup)
}

func TestRun_Malformed(t *testing.T) {
	r := newRig("tool.exe")

	state, err := r.orch.Run(context.Background(), []string{"--icopatch:SetIcon", "SetIcon"})
	assert.Equal(t, relaunch.StateDone, state)
	assert.ErrorIs(t, err, types.ErrRelaunch)
	assert.Empty(t, r.spawner.calls)
	assert.Empty(t, r.patcher.calls)
	assert.Equal(t, []relaunch.State{relaunch.StateDone}, r.trace)
}

func TestRun_CancelledWorkerStillRequestsCleanup(t *testing.T) {
	r := newRig("tool.exe.4711.exe")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	state, err := r.orch.Run(ctx, []string{"--icopatch:SetIcon", "SetIcon", "tool.exe"})
	assert.Equal(t, relaunch.StateDone, state)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, r.patcher.calls)

	require.Len(t, r.spawner.calls, 1)
	assert.Equal(t, "tool.exe", r.spawner.calls[0].path)
	assert.Equal(t, []string{"--icopatch:SetIcon", "Delete", "tool.exe.4711.exe"}, r.spawner.calls[0].args)
	assert.Len(t, r.host.sleeps, 1, "no further delays after cancellation")
	assert.Equal(t, []relaunch.State{
		relaunch.StateWorkerPerformingOperation,
		relaunch.StateWorkerRequestingCleanup,
		relaunch.StateDone,
	}, r.trace)
}

func TestRun_CancelledBeforeCleanupRequest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := newRig("tool.exe.4711.exe")
	r.host.onSleep = func(n int) {
		if n == 2 {
			cancel()
		}
	}

	state, err := r.orch.Run(ctx, []string{"--icopatch:SetIcon", "SetIcon", "tool.exe"})
	assert.Equal(t, relaunch.StateDone, state)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, r.patcher.calls, 1)
	require.Len(t, r.spawner.calls, 1)
	assert.Equal(t, []string{"--icopatch:SetIcon", "Delete", "tool.exe.4711.exe"}, r.spawner.calls[0].args)
}

func TestRun_CancelledCleanupStillDeletes(t *testing.T) {
	r := newRig("tool.exe")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	state, err := r.orch.Run(ctx, []string{"--icopatch:SetIcon", "Delete", "tool.exe.4711.exe"})
	assert.Equal(t, relaunch.StateDone, state)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"tool.exe.4711.exe"}, r.host.removed)
}

func TestDefaultTempName(t *testing.T) {
	host := &fakeHost{exe: "tool.exe"}
	orch := relaunch.New(relaunch.Config{}, &fakeSpawner{}, host, &fakePatcher{})

	_, err := orch.Run(context.Background(), []string{"--icopatch:SetIcon"})
	require.NoError(t, err)
	require.Len(t, host.copies, 1)
	assert.Regexp(t, `^tool\.exe\.\d+\.exe$`, host.copies[0][1])
}
