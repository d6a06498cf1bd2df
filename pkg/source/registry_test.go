package source

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/samplechart/pkg/core"
)

type stubSource struct {
	opened  Config
	openErr error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Open(_ context.Context, cfg Config) error {
	s.opened = cfg
	return s.openErr
}

func (s *stubSource) GetDataSet(_ context.Context, _ string) (*core.Dataset, error) {
	return core.NewDataset([]float64{1}, []float64{2}), nil
}

func (s *stubSource) Close() error { return nil }

func TestUnknownSourceError_Error(t *testing.T) {
	err := &UnknownSourceError{
		Type:      "fake",
		Available: []string{"file", "generator"},
	}

	msg := err.Error()
	assert.Contains(t, msg, "fake", "error should mention the unknown type")
	assert.Contains(t, msg, "generator", "error should list available sources")
	assert.Contains(t, msg, "samplechart.yaml", "error should mention config file")
}

func TestRegister(t *testing.T) {
	Register("test_source_internal", func(_ *slog.Logger) Source { return &stubSource{} })

	assert.True(t, IsRegistered("test_source_internal"))
	assert.Contains(t, List(), "test_source_internal")

	factory, ok := Get("test_source_internal")
	assert.True(t, ok)
	assert.NotNil(t, factory)
}

func TestNew(t *testing.T) {
	stub := &stubSource{}
	Register("test_source_new", func(_ *slog.Logger) Source { return stub })

	src, err := New(context.Background(), Config{Type: "test_source_new", Dir: "data"}, nil)
	require.NoError(t, err)
	assert.Same(t, stub, src)
	assert.Equal(t, "data", stub.opened.Dir)
}

func TestNew_Errors(t *testing.T) {
	Register("test_source_broken", func(_ *slog.Logger) Source {
		return &stubSource{openErr: errors.New("boom")}
	})

	tests := []struct {
		name    string
		cfg     Config
		wantMsg string
	}{
		{"empty type", Config{}, "source type not specified"},
		{"unknown type", Config{Type: "nope"}, `unknown source type "nope"`},
		{"open fails", Config{Type: "test_source_broken"}, "failed to open test_source_broken source: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(context.Background(), tt.cfg, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestFetcherFunc(t *testing.T) {
	var got string
	f := FetcherFunc(func(_ context.Context, size string) (*core.Dataset, error) {
		got = size
		return nil, nil
	})

	_, err := f.GetDataSet(context.Background(), "large")
	require.NoError(t, err)
	assert.Equal(t, "large", got)
}
