package generator

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/leapstack-labs/samplechart/pkg/core"
	"github.com/leapstack-labs/samplechart/pkg/source"
)

// Name is the registered source type.
const Name = "generator"

// Sizes maps each sample size label to its point count.
var Sizes = map[string]int{
	core.SampleSmall:  10,
	core.SampleMedium: 100,
	core.SampleLarge:  1000,
}

// Source produces deterministic datasets: x counts up from zero and y follows
// a noisy sine wave. The same seed and label always produce the same values.
type Source struct {
	seed   int64
	logger *slog.Logger
}

// New creates a generator source.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Source{logger: logger}
}

// Name returns the source type.
func (s *Source) Name() string { return Name }

// Open records the seed.
func (s *Source) Open(_ context.Context, cfg source.Config) error {
	s.seed = cfg.Seed
	return nil
}

// Close is a no-op.
func (s *Source) Close() error { return nil }

// GetDataSet generates the dataset for sampleSize.
func (s *Source) GetDataSet(ctx context.Context, sampleSize string) (*core.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n, ok := Sizes[sampleSize]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownSampleSize, sampleSize)
	}

	s.logger.Debug("generating dataset", slog.String("sample_size", sampleSize), slog.Int("points", n))
	return Generate(n, s.seed^labelSeed(sampleSize)), nil
}

// Generate builds an n-point dataset from seed.
func Generate(n int, seed int64) *core.Dataset {
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(n)))

	xs := make([]float64, n)
	ys := make([]float64, n)
	period := math.Max(float64(n)/4, 1)
	for i := 0; i < n; i++ {
		xs[i] = float64(i)
		wave := 10 * math.Sin(2*math.Pi*float64(i)/period)
		noise := rng.NormFloat64()
		ys[i] = math.Round((wave+noise)*100) / 100
	}
	return core.NewDataset(xs, ys)
}

func labelSeed(label string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(label))
	return int64(h.Sum64())
}
