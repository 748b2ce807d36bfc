package base

import (
	"context"

	ierr "github.com/flexprice/azpay/internal/errors"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/pool"
)

// Future is the pending result of an asynchronous invocation
type Future struct {
	done chan struct{}
	env  *Envelope
	err  error
}

// InvokeAsync starts the named operation in the background
func (c *Client) InvokeAsync(ctx context.Context, name string, params any, opts ...CallOption) *Future {
	f := &Future{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		var wg conc.WaitGroup
		wg.Go(func() {
			f.env, f.err = c.Invoke(ctx, name, params, opts...)
		})
		if recovered := wg.WaitAndRecover(); recovered != nil {
			f.env = nil
			f.err = ierr.NewErrorf("operation %s panicked: %v", name, recovered.Value).
				WithReportableDetails(map[string]any{
					"gateway":   c.name,
					"operation": name,
					"stack":     string(recovered.Stack),
				}).
				Mark(ierr.ErrSystem)
		}
	}()

	return f
}

// Done is closed once the result is available
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the invocation finishes or ctx is done
func (f *Future) Wait(ctx context.Context) (*Envelope, error) {
	select {
	case <-f.done:
		return f.env, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// BatchCall is one entry of InvokeAll
type BatchCall struct {
	Operation string
	Params    any
	Options   []CallOption
}

// BatchResult pairs a BatchCall with its outcome
type BatchResult struct {
	Operation string
	Envelope  *Envelope
	Err       error
}

// InvokeAll runs calls concurrently with at most maxConcurrency in flight.
// Results are returned in the order of calls; one failure does not cancel the rest.
func (c *Client) InvokeAll(ctx context.Context, calls []BatchCall, maxConcurrency int) []BatchResult {
	results := make([]BatchResult, len(calls))

	p := pool.New().WithContext(ctx)
	if maxConcurrency > 0 {
		p = p.WithMaxGoroutines(maxConcurrency)
	}

	for i, call := range calls {
		p.Go(func(ctx context.Context) error {
			env, err := c.Invoke(ctx, call.Operation, call.Params, call.Options...)
			results[i] = BatchResult{Operation: call.Operation, Envelope: env, Err: err}
			return nil
		})
	}
	_ = p.Wait()

	return results
}
