package script

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"go.starlark.net/lib/math"
	"go.starlark.net/starlark"

	"github.com/leapstack-labs/samplechart/pkg/core"
	"github.com/leapstack-labs/samplechart/pkg/source"
)

// Name is the registered source type.
const Name = "starlark"

// EntryPoint is the function the script must define.
const EntryPoint = "dataset"

// Source calls the script's dataset function once per fetch.
type Source struct {
	logger *slog.Logger
	path   string
	fn     starlark.Callable
	pool   *threadPool
}

// New creates a script source.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Source{logger: logger, pool: newThreadPool(0, logger)}
}

// Name returns the source type.
func (s *Source) Name() string { return Name }

// Open loads and executes the script at cfg.Path.
func (s *Source) Open(_ context.Context, cfg source.Config) error {
	if cfg.Path == "" {
		return fmt.Errorf("source.script is required for the %s source", Name)
	}
	content, err := os.ReadFile(cfg.Path)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	return s.Load(cfg.Path, content, cfg.Seed, cfg.Options)
}

// Load executes src and binds its dataset function.
func (s *Source) Load(filename string, src []byte, seed int64, options map[string]string) error {
	predeclared := starlark.StringDict{
		"seed":    starlark.MakeInt64(seed),
		"options": optionsDict(options),
		"math":    math.Module,
	}

	thread := s.pool.get("load:" + filename)
	globals, err := starlark.ExecFile(thread, filename, src, predeclared) //nolint:staticcheck // SA1019: will migrate to ExecFileOptions later
	s.pool.put(thread, false)
	if err != nil {
		return fmt.Errorf("starlark execution error: %w", err)
	}

	fn, ok := globals[EntryPoint].(starlark.Callable)
	if !ok {
		return fmt.Errorf("%s does not define a %s(size) function", filename, EntryPoint)
	}
	globals.Freeze()

	s.path = filename
	s.fn = fn
	return nil
}

// Close is a no-op.
func (s *Source) Close() error { return nil }

// GetDataSet calls dataset(sampleSize). Cancelling ctx interrupts the script.
func (s *Source) GetDataSet(ctx context.Context, sampleSize string) (*core.Dataset, error) {
	if s.fn == nil {
		return nil, fmt.Errorf("script is not loaded")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	thread := s.pool.get(EntryPoint + ":" + sampleSize)
	cancelled := false
	stop := context.AfterFunc(ctx, func() { thread.Cancel(ctx.Err().Error()) })
	defer func() {
		if !stop() {
			cancelled = true
		}
		s.pool.put(thread, cancelled)
	}()

	v, err := starlark.Call(thread, s.fn, starlark.Tuple{starlark.String(sampleSize)}, nil)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%s(%q): %w", EntryPoint, sampleSize, err)
	}
	if v == starlark.None {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownSampleSize, sampleSize)
	}

	ds, err := toDataset(v)
	if err != nil {
		return nil, fmt.Errorf("%s(%q): %w", EntryPoint, sampleSize, err)
	}
	s.logger.Debug("script returned dataset", slog.String("sample_size", sampleSize), slog.Int("points", ds.Len()))
	return ds, nil
}
