package anymotion

import (
	"context"
	"time"

	"github.com/reusedev/anymotion-cli/internal/consts"
)

// Outcome is the client-side result of waiting for a job. OutcomeTimeout is
// never reported by the server.
type Outcome string

const (
	OutcomeSuccess Outcome = "SUCCESS"
	OutcomeFailure Outcome = "FAILURE"
	OutcomeTimeout Outcome = "TIMEOUT"
)

func (o Outcome) String() string {
	return string(o)
}

type PollResult struct {
	Outcome  Outcome
	Envelope *Envelope // last response seen
	Attempts int
}

// FailureDetail returns the server's failure description, if any.
func (r PollResult) FailureDetail() string {
	if r.Envelope == nil {
		return ""
	}
	detail, _ := r.Envelope.OptString("failureDetail")
	return detail
}

type fetchFunc func(ctx context.Context, jobURL string) (*Envelope, error)

type Poller struct {
	RequestInterval time.Duration
	MaxAttempts     int

	fetch fetchFunc
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPoller clamps interval to at least one second and derives the attempt
// budget as max(1, timeout/interval).
func NewPoller(interval, timeout int, fetch fetchFunc) *Poller {
	interval = max(1, interval)
	return &Poller{
		RequestInterval: time.Duration(interval) * time.Second,
		MaxAttempts:     max(1, timeout/interval),
		fetch:           fetch,
		sleep:           sleepContext,
	}
}

// Poll fetches jobURL until its execStatus is terminal or the attempt budget
// runs out. Request errors abort polling and are returned as is.
func (p *Poller) Poll(ctx context.Context, jobURL string) (PollResult, error) {
	var last *Envelope
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		env, err := p.fetch(ctx, jobURL)
		if err != nil {
			return PollResult{}, err
		}
		last = env
		switch env.Status() {
		case consts.Success:
			return PollResult{Outcome: OutcomeSuccess, Envelope: env, Attempts: attempt}, nil
		case consts.Failure:
			return PollResult{Outcome: OutcomeFailure, Envelope: env, Attempts: attempt}, nil
		}
		if attempt == p.MaxAttempts {
			break
		}
		if err := p.sleep(ctx, p.RequestInterval); err != nil {
			return PollResult{}, err
		}
	}
	return PollResult{Outcome: OutcomeTimeout, Envelope: last, Attempts: p.MaxAttempts}, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
