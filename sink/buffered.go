// Package sink buffers outbound frames between the business layer and the
// transport write pump. Fan-out never touches a socket directly; it hands
// frames to a sink and moves on.
package sink

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"chat-relay/contract"
	apperrors "chat-relay/errors"
)

// BufferedSink is the per-connection outbound queue. Deliver enqueues a
// frame for the write pump; a full buffer means the consumer is too slow
// and Deliver gives up after the delivery timeout instead of blocking the
// fan-out goroutine forever.
type BufferedSink struct {
	frames    chan contract.Frame
	done      chan struct{}
	closeOnce sync.Once
	timeout   time.Duration
	log       *slog.Logger
}

func NewBufferedSink(log *slog.Logger, size int, timeout time.Duration) *BufferedSink {
	return &BufferedSink{
		frames:  make(chan contract.Frame, size),
		done:    make(chan struct{}),
		timeout: timeout,
		log:     log,
	}
}

// Deliver implements the EventSink interface.
func (s *BufferedSink) Deliver(ctx context.Context, frame contract.Frame) error {
	select {
	case <-s.done:
		return apperrors.ErrSinkClosed
	default:
	}

	select {
	case s.frames <- frame:
		return nil
	default:
	}

	// Buffer full: wait a bounded time for the write pump to drain.
	timer := time.NewTimer(s.timeout)
	defer timer.Stop()
	select {
	case s.frames <- frame:
		return nil
	case <-s.done:
		return apperrors.ErrSinkClosed
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		s.log.Warn("frame dropped, slow consumer", "event", frame.Event)
		return apperrors.ErrSlowConsumer
	}
}

// Frames exposes the queue to the write pump.
func (s *BufferedSink) Frames() <-chan contract.Frame {
	return s.frames
}

// Done is closed when the sink is shut; the write pump must stop reading.
func (s *BufferedSink) Done() <-chan struct{} {
	return s.done
}

// Close shuts the queue. Idempotent. Producers blocked in Deliver are
// released with ErrSinkClosed.
func (s *BufferedSink) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}
