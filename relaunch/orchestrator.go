package relaunch

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"

	"github.com/joshuapare/icopatch/internal/format"
	"github.com/joshuapare/icopatch/internal/logger"
	"github.com/joshuapare/icopatch/pkg/types"
)

// DefaultSettleDelay is the pause before every step after the first hop.
const DefaultSettleDelay = time.Second

// Spawner starts a process and returns without waiting for it.
type Spawner interface {
	Start(path string, args []string) error
}

// Host is the file system and process view of the running executable.
type Host interface {
	Executable() (string, error)
	// CopyExclusive copies src to dst and fails if dst already exists.
	CopyExclusive(src, dst string) error
	Remove(path string) error
	// Sleep pauses for d or until ctx is done.
	Sleep(ctx context.Context, d time.Duration) error
}

// Patcher applies op to the executable at exePath using the icon file at
// icoPath. icoPath is unused for OpRemoveIcon.
type Patcher interface {
	Patch(op Operation, exePath, icoPath string) error
}

// PatcherFunc adapts a function to Patcher.
type PatcherFunc func(op Operation, exePath, icoPath string) error

func (f PatcherFunc) Patch(op Operation, exePath, icoPath string) error {
	return f(op, exePath, icoPath)
}

// Config tunes the protocol. Zero fields take the defaults of DefaultConfig.
type Config struct {
	MarkerPrefix string        // Default: DefaultMarkerPrefix
	SettleDelay  time.Duration // Default: DefaultSettleDelay
	IconExt      string        // Default: ".ico"

	// TempName returns the path of the worker copy of exe.
	// Default: <exe>.<random>.exe
	TempName func(exe string) string

	// OnTransition, when set, observes every state change.
	OnTransition func(from, to State)
}

// DefaultConfig returns the protocol defaults.
func DefaultConfig() Config {
	return Config{
		MarkerPrefix: DefaultMarkerPrefix,
		SettleDelay:  DefaultSettleDelay,
		IconExt:      format.IconExt,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MarkerPrefix == "" {
		c.MarkerPrefix = d.MarkerPrefix
	}
	if c.SettleDelay <= 0 {
		c.SettleDelay = d.SettleDelay
	}
	if c.IconExt == "" {
		c.IconExt = d.IconExt
	}
	if c.TempName == nil {
		rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
		c.TempName = func(exe string) string {
			return fmt.Sprintf("%s.%d.exe", exe, rng.Uint32())
		}
	}
	return c
}

// Orchestrator runs one hop of the relaunch protocol per call.
type Orchestrator struct {
	cfg     Config
	spawner Spawner
	host    Host
	patcher Patcher
}

// New builds an orchestrator from its collaborators.
func New(cfg Config, spawner Spawner, host Host, patcher Patcher) *Orchestrator {
	return &Orchestrator{
		cfg:     cfg.withDefaults(),
		spawner: spawner,
		host:    host,
		patcher: patcher,
	}
}

// IconPath returns exePath with its extension replaced by ext.
func IconPath(exePath, ext string) string {
	return strings.TrimSuffix(exePath, filepath.Ext(exePath)) + ext
}

// hop is the mutable state of one Run.
type hop struct {
	o         *Orchestrator
	state     State
	tok       Token
	errs      []error
	cancelled bool
}

func (h *hop) to(next State) {
	from := h.state
	h.state = next
	logger.Info("relaunch transition", "from", from, "to", next, "group", h.tok.Group, "path", h.tok.Path)
	if h.o.cfg.OnTransition != nil {
		h.o.cfg.OnTransition(from, next)
	}
}

func (h *hop) fail(kind types.ErrKind, op, path, msg string, cause error) {
	err := types.New(kind, op, path, msg, cause)
	logger.Error("relaunch step failed", "state", h.state, "err", err)
	h.errs = append(h.errs, err)
}

// Run executes the hop described by args (argv without the program name)
// and returns the final state with every error met on the way.
func (o *Orchestrator) Run(ctx context.Context, args []string) (State, error) {
	h := &hop{o: o, state: StateInitial}
	tok, err := Parse(o.cfg.MarkerPrefix, args)
	if err != nil {
		h.fail(types.ErrKindRelaunch, "parse", "", "malformed relaunch arguments", err)
		h.to(StateDone)
		return h.state, errors.Join(h.errs...)
	}
	h.tok = tok

	switch tok.Op {
	case OpNone:
		h.to(StateSpawningWorker)
	case OpDelete:
		h.to(StateCleaningUp)
	default:
		h.to(StateWorkerPerformingOperation)
	}
	return h.run(ctx)
}

// Request starts the protocol for group from the original executable, as a
// bare marker would.
func (o *Orchestrator) Request(ctx context.Context, group Operation) (State, error) {
	h := &hop{o: o, state: StateInitial, tok: Token{Group: group}}
	if !group.IsGroup() {
		h.fail(types.ErrKindRelaunch, "request", "", fmt.Sprintf("%s is not a relaunch group", group), nil)
		h.to(StateDone)
		return h.state, errors.Join(h.errs...)
	}
	h.to(StateSpawningWorker)
	return h.run(ctx)
}

func (h *hop) run(ctx context.Context) (State, error) {
	for h.state != StateDone {
		switch h.state {
		case StateSpawningWorker:
			h.spawnWorker()
		case StateWorkerPerformingOperation:
			h.perform(ctx)
		case StateWorkerRequestingCleanup:
			h.requestCleanup(ctx)
		case StateCleaningUp:
			h.cleanup(ctx)
		default:
			h.fail(types.ErrKindState, "run", "", fmt.Sprintf("unexpected state %s", h.state), nil)
			h.to(StateDone)
		}
	}
	return h.state, errors.Join(h.errs...)
}

// settle sleeps before a step and reports whether the full delay elapsed.
// A cancelled context is recorded once; later steps of the hop still run
// without waiting so the worker copy is always handed to a cleanup hop.
func (h *hop) settle(ctx context.Context) bool {
	if h.cancelled {
		return false
	}
	if err := h.o.host.Sleep(ctx, h.o.cfg.SettleDelay); err != nil {
		h.cancelled = true
		h.errs = append(h.errs, err)
		logger.Warn("relaunch hop cancelled, finishing without delays", "state", h.state, "err", err)
		return false
	}
	return true
}

func (h *hop) spawnWorker() {
	defer h.to(StateDone)

	exe, err := h.o.host.Executable()
	if err != nil {
		h.fail(types.ErrKindRelaunch, "spawn worker", "", "cannot resolve own executable", err)
		return
	}
	temp := h.o.cfg.TempName(exe)
	if err := h.o.host.CopyExclusive(exe, temp); err != nil {
		h.fail(types.ErrKindRelaunch, "spawn worker", temp, "cannot copy executable", err)
		return
	}

	args := Token{Group: h.tok.Group, Op: h.tok.Group, Path: exe}.Args(h.o.cfg.MarkerPrefix)
	logger.Info("spawning worker", "worker", temp, "args", args)
	if err := h.o.spawner.Start(temp, args); err != nil {
		h.fail(types.ErrKindRelaunch, "spawn worker", temp, "cannot start worker", err)
		if rmErr := h.o.host.Remove(temp); rmErr != nil {
			logger.Warn("cannot remove unused worker copy", "path", temp, "err", rmErr)
		}
	}
}

func (h *hop) perform(ctx context.Context) {
	defer h.to(StateWorkerRequestingCleanup)
	if !h.settle(ctx) {
		logger.Warn("skipping patch", "op", h.tok.Op, "exe", h.tok.Path)
		return
	}
	icoPath := IconPath(h.tok.Path, h.o.cfg.IconExt)
	logger.Info("patching target", "op", h.tok.Op, "exe", h.tok.Path, "ico", icoPath)
	if err := h.o.patcher.Patch(h.tok.Op, h.tok.Path, icoPath); err != nil {
		// The worker copy must still be cleaned up.
		logger.Error("patch failed", "op", h.tok.Op, "exe", h.tok.Path, "err", err)
		h.errs = append(h.errs, err)
	}
}

func (h *hop) requestCleanup(ctx context.Context) {
	defer h.to(StateDone)
	h.settle(ctx)

	self, err := h.o.host.Executable()
	if err != nil {
		h.fail(types.ErrKindRelaunch, "request cleanup", "", "cannot resolve own executable", err)
		return
	}
	args := Token{Group: h.tok.Group, Op: OpDelete, Path: self}.Args(h.o.cfg.MarkerPrefix)
	if err := h.o.spawner.Start(h.tok.Path, args); err != nil {
		h.fail(types.ErrKindRelaunch, "request cleanup", h.tok.Path, "cannot start cleanup hop", err)
	}
}

func (h *hop) cleanup(ctx context.Context) {
	defer h.to(StateDone)
	h.settle(ctx)

	if err := h.o.host.Remove(h.tok.Path); err != nil {
		h.fail(types.ErrKindCleanup, "delete", h.tok.Path, "cannot delete temporary copy", err)
		return
	}
	logger.Info("deleted temporary copy", "path", h.tok.Path)
}
