package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/samplechart/pkg/core"
	"github.com/leapstack-labs/samplechart/pkg/source"
)

// Name is the registered source type.
const Name = "file"

// Extensions lists the file extensions searched for a dataset, in order.
var Extensions = []string{".yaml", ".yml", ".json"}

// Source reads {dir}/{sampleSize}.yaml (or .yml/.json) and caches the result.
// With watching enabled, the cache entry for a file is dropped when it changes.
type Source struct {
	dir    string
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string]*core.Dataset
	// gens counts invalidations per size; a load only lands in the cache
	// if no invalidation happened while it was reading.
	gens map[string]uint64

	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
}

// New creates a file source.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Source{
		logger: logger,
		cache:  make(map[string]*core.Dataset),
		gens:   make(map[string]uint64),
	}
}

// Name returns the source type.
func (s *Source) Name() string { return Name }

// Open checks the directory and starts the watcher when cfg.Watch is set.
func (s *Source) Open(_ context.Context, cfg source.Config) error {
	if cfg.Dir == "" {
		return fmt.Errorf("source.dir is required for the %s source", Name)
	}
	info, err := os.Stat(cfg.Dir)
	if err != nil {
		return fmt.Errorf("datasets directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("datasets directory %s is not a directory", cfg.Dir)
	}
	s.dir = cfg.Dir

	if cfg.Watch {
		if err := s.watch(); err != nil {
			return err
		}
	}
	return nil
}

// Close stops the watcher.
func (s *Source) Close() error {
	if s.watcher == nil {
		return nil
	}
	close(s.done)
	err := s.watcher.Close()
	s.wg.Wait()
	s.watcher = nil
	return err
}

// GetDataSet returns the dataset for sampleSize, reading it on first use.
func (s *Source) GetDataSet(ctx context.Context, sampleSize string) (*core.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.ContainsAny(sampleSize, `/\`) || sampleSize == "" || sampleSize == "." || sampleSize == ".." {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownSampleSize, sampleSize)
	}

	s.mu.RLock()
	ds, ok := s.cache[sampleSize]
	gen := s.gens[sampleSize]
	s.mu.RUnlock()
	if ok {
		return ds, nil
	}

	ds, err := s.load(sampleSize)
	if err != nil {
		return nil, err
	}
	s.store(sampleSize, gen, ds)
	return ds, nil
}

// store caches ds unless sampleSize was invalidated after gen was read.
func (s *Source) store(sampleSize string, gen uint64, ds *core.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gens[sampleSize] != gen {
		return
	}
	s.cache[sampleSize] = ds
}

func (s *Source) load(sampleSize string) (*core.Dataset, error) {
	for _, ext := range Extensions {
		path := filepath.Join(s.dir, sampleSize+ext)
		content, err := os.ReadFile(path) //nolint:gosec // path is confined to the datasets directory
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		s.logger.Debug("loaded dataset file", slog.String("path", path))
		ds, err := Parse(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		return ds, nil
	}
	return nil, fmt.Errorf("%w: %q (no dataset file in %s)", core.ErrUnknownSampleSize, sampleSize, s.dir)
}

// document distinguishes a missing column from an empty one.
type document struct {
	XColumn *core.Column `yaml:"xColumn"`
	YColumn *core.Column `yaml:"yColumn"`
}

// Parse decodes a YAML or JSON dataset document.
func Parse(content []byte) (*core.Dataset, error) {
	var doc document
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("malformed dataset: %w", err)
	}
	if doc.XColumn == nil {
		return nil, fmt.Errorf("%w: xColumn", core.ErrMissingColumn)
	}
	if doc.YColumn == nil {
		return nil, fmt.Errorf("%w: yColumn", core.ErrMissingColumn)
	}
	return &core.Dataset{XColumn: *doc.XColumn, YColumn: *doc.YColumn}, nil
}

// Invalidate drops the cached dataset for sampleSize.
func (s *Source) Invalidate(sampleSize string) {
	s.mu.Lock()
	delete(s.cache, sampleSize)
	s.gens[sampleSize]++
	s.mu.Unlock()
}

func (s *Source) watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", s.dir, err)
	}

	s.watcher = watcher
	s.done = make(chan struct{})
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.watchLoop(watcher)
	}()
	return nil
}

func (s *Source) watchLoop(watcher *fsnotify.Watcher) {
	for {
		select {
		case <-s.done:
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			ext := filepath.Ext(event.Name)
			if !isDatasetExt(ext) {
				continue
			}
			size := strings.TrimSuffix(filepath.Base(event.Name), ext)
			s.logger.Debug("dataset file changed", slog.String("file", event.Name), slog.String("op", event.Op.String()))
			s.Invalidate(size)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

func isDatasetExt(ext string) bool {
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// WriteDataset stores ds as {dir}/{sampleSize}.yaml in the layout Parse reads.
func WriteDataset(dir, sampleSize string, ds *core.Dataset) error {
	content, err := yaml.Marshal(document{XColumn: &ds.XColumn, YColumn: &ds.YColumn})
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, sampleSize+".yaml"), content, 0o600)
}
