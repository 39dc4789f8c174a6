package observability

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"syscall"
	"testing"
	"time"
)

func TestRegisterShutdownFunc(t *testing.T) {
	logger := NewLogger(ErrorLevel, &bytes.Buffer{})
	sm := NewShutdownManager(logger, nil, time.Second)

	sm.RegisterShutdownFunc(func(ctx context.Context) error { return nil })
	sm.RegisterShutdownFunc(func(ctx context.Context) error { return nil })

	if len(sm.shutdownFuncs) != 2 {
		t.Errorf("shutdownFuncs = %d, want 2", len(sm.shutdownFuncs))
	}
}

func TestDefaultTimeout(t *testing.T) {
	logger := NewLogger(ErrorLevel, &bytes.Buffer{})
	sm := NewShutdownManager(logger, nil, 0)

	if sm.shutdownTimeout != 30*time.Second {
		t.Errorf("shutdownTimeout = %v, want 30s", sm.shutdownTimeout)
	}
}

func TestWaitForShutdownRunsFuncs(t *testing.T) {
	logger := NewLogger(ErrorLevel, &bytes.Buffer{})
	sm := NewShutdownManager(logger, nil, 2*time.Second)

	var calls int32
	sm.RegisterShutdownFunc(func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	sm.RegisterShutdownFunc(func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	done := make(chan error, 1)
	go func() {
		done <- sm.WaitForShutdown()
	}()

	// Give the manager a moment to install its signal handler.
	time.Sleep(50 * time.Millisecond)
	syscall.Kill(syscall.Getpid(), syscall.SIGTERM)

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("WaitForShutdown() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("WaitForShutdown() did not return")
	}

	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("shutdown funcs ran %d times, want 2", calls)
	}
}

func TestWaitForShutdownReportsErrors(t *testing.T) {
	logger := NewLogger(ErrorLevel, &bytes.Buffer{})
	sm := NewShutdownManager(logger, nil, 2*time.Second)

	sm.RegisterShutdownFunc(func(ctx context.Context) error {
		return errors.New("close failed")
	})

	done := make(chan error, 1)
	go func() {
		done <- sm.WaitForShutdown()
	}()

	time.Sleep(50 * time.Millisecond)
	syscall.Kill(syscall.Getpid(), syscall.SIGTERM)

	select {
	case err := <-done:
		if err == nil {
			t.Error("WaitForShutdown() = nil, want error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("WaitForShutdown() did not return")
	}
}
