package script

import (
	"log/slog"
	"sync"

	"go.starlark.net/starlark"
)

// threadPool reuses Starlark threads across dataset calls.
type threadPool struct {
	mu      sync.Mutex
	threads []*starlark.Thread
	maxSize int
	logger  *slog.Logger
}

func newThreadPool(maxSize int, logger *slog.Logger) *threadPool {
	if maxSize <= 0 {
		maxSize = 4
	}
	return &threadPool{
		threads: make([]*starlark.Thread, 0, maxSize),
		maxSize: maxSize,
		logger:  logger,
	}
}

func (p *threadPool) get(name string) *starlark.Thread {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.threads) > 0 {
		thread := p.threads[len(p.threads)-1]
		p.threads = p.threads[:len(p.threads)-1]
		thread.Name = name
		return thread
	}

	return &starlark.Thread{
		Name: name,
		Print: func(t *starlark.Thread, msg string) {
			p.logger.Debug("script print", slog.String("thread", t.Name), slog.String("msg", msg))
		},
	}
}

// put returns a thread for reuse. Cancelled threads cannot run again and are dropped.
func (p *threadPool) put(thread *starlark.Thread, cancelled bool) {
	if cancelled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.threads) < p.maxSize {
		thread.Name = ""
		p.threads = append(p.threads, thread)
	}
}

func (p *threadPool) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.threads)
}
