package biometric

import (
	"context"
	"time"
)

//go:generate mockgen -source=capturer.go -destination=mock/capturer_mock.go -package=mock

// Capturer abstracts the fingerprint enrollment device. Capture blocks
// until enrollment completes, the context is cancelled, or the device fails.
type Capturer interface {
	Capture(ctx context.Context) error
}

// SimulatedCapturer stands in for real hardware: it succeeds after a fixed
// delay unless the context is cancelled first.
type SimulatedCapturer struct {
	Delay time.Duration
}

func NewSimulatedCapturer(delay time.Duration) *SimulatedCapturer {
	if delay <= 0 {
		delay = 3 * time.Second
	}
	return &SimulatedCapturer{Delay: delay}
}

func (c *SimulatedCapturer) Capture(ctx context.Context) error {
	timer := time.NewTimer(c.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
