package server

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type blockingService struct {
	started chan struct{}
	stop    chan struct{}
	once    sync.Once
}

func newBlockingService() *blockingService {
	return &blockingService{
		started: make(chan struct{}),
		stop:    make(chan struct{}),
	}
}

func (s *blockingService) Start() error {
	close(s.started)
	<-s.stop
	return nil
}

func (s *blockingService) Stop() {
	s.once.Do(func() { close(s.stop) })
}

func TestLifecycleStopsServicesOnContextCancel(t *testing.T) {
	l := NewLifecycle(zap.NewNop())
	svc := newBlockingService()
	l.Add("test", svc)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	select {
	case <-svc.started:
	case <-time.After(2 * time.Second):
		t.Fatal("service never started")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("lifecycle did not shut down")
	}
}

func TestLifecycleStopsInReverseOrder(t *testing.T) {
	l := NewLifecycle(zap.NewNop())
	var mu sync.Mutex
	var stopped []string

	record := func(name string) *FuncService {
		return &FuncService{
			StartFn: func() error { return nil },
			StopFn: func() {
				mu.Lock()
				stopped = append(stopped, name)
				mu.Unlock()
			},
		}
	}
	l.Add("first", record("first"))
	l.Add("second", record("second"))
	l.Add("third", record("third"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, l.Run(ctx))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"third", "second", "first"}, stopped)
}

func TestLifecycleShutsDownOnServiceError(t *testing.T) {
	l := NewLifecycle(zap.NewNop())
	l.Add("failing", &FuncService{
		StartFn: func() error { return assert.AnError },
		StopFn:  func() {},
	})

	done := make(chan error, 1)
	go func() { done <- l.Run(context.Background()) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("lifecycle did not shut down after service error")
	}
}
