package hook

import (
	"log"
	"time"

	"github.com/ayusman/mudra/internal/handpose"
)

// DefaultTimeoutMs is the default hook execution timeout.
const DefaultTimeoutMs = 5000

// Result is the outcome of dispatching an event to one hook.
type Result struct {
	Hook     string
	Response *Response
	Err      error
}

// Runner dispatches flip events to all subscribed hooks.
type Runner struct {
	manager  *Manager
	executor *Executor
}

// NewRunner creates a Runner over the given manager with the default
// execution timeout.
func NewRunner(manager *Manager) *Runner {
	return &Runner{
		manager:  manager,
		executor: NewExecutor(DefaultTimeoutMs),
	}
}

// NewRunnerWithExecutor creates a Runner with a custom executor.
func NewRunnerWithExecutor(manager *Manager, executor *Executor) *Runner {
	return &Runner{manager: manager, executor: executor}
}

// Dispatch sends the flip event to every subscribed hook in turn and
// returns one Result per hook run. Hook failures are logged and do not
// stop dispatch to the remaining hooks.
func (r *Runner) Dispatch(event handpose.FlipEvent) []Result {
	req := &Request{
		Event:     "flip",
		Hand:      string(event.Hand),
		Direction: string(event.Direction),
		Velocity:  event.Velocity,
		Message:   event.Message(),
		Timestamp: time.Now().UnixMilli(),
	}

	var results []Result
	for _, h := range r.manager.List() {
		if !h.Subscribed(string(event.Hand)) {
			continue
		}

		resp, err := r.executor.Execute(h, req)
		if err != nil {
			log.Printf("hook %s failed: %v", h.Manifest.Name, err)
		} else if !resp.Success {
			log.Printf("hook %s reported error: %s", h.Manifest.Name, resp.Error)
		}

		results = append(results, Result{
			Hook:     h.Manifest.Name,
			Response: resp,
			Err:      err,
		})
	}

	return results
}
