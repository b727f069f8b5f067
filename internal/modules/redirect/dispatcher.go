package redirect

import "time"

// Navigator performs one navigation attempt. Implementations either
// execute the side effect directly (tests) or record the step for the
// browser to replay (Plan).
type Navigator interface {
	SameTab(url string) error
	NewTab(url string) error
	AnchorClick(url string) error
}

type State string

const (
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

type Attempt struct {
	Strategy string `json:"strategy"`
	Error    string `json:"error,omitempty"`
}

// DispatchResult is always terminal: either Succeeded or Failed, never
// indeterminate. RetryURL backs the manual "open now" affordance and is
// set on both outcomes because popup blockers can defeat a nominally
// successful dispatch. CompletionDelayMS is how long the client should
// wait after a successful attempt before resolving the page to its
// terminal state; the server never blocks on it.
type DispatchResult struct {
	State             State       `json:"state"`
	Device            DeviceClass `json:"device"`
	Attempts          []Attempt   `json:"attempts"`
	RetryURL          string      `json:"retry_url"`
	CompletionDelayMS int64       `json:"completion_delay_ms"`
}

type Dispatcher struct {
	// completionDelay approximates "navigation has had a chance to
	// occur". It is shipped to the client with the result rather than
	// slept on here.
	completionDelay time.Duration
}

const DefaultCompletionDelay = time.Second

func NewDispatcher(completionDelay time.Duration) *Dispatcher {
	return &Dispatcher{completionDelay: completionDelay}
}

// Dispatch runs the device-specific strategy chain against nav.
//
// Mobile: same-tab navigation, falling back to a new context.
// Desktop: anchor-click open (some browsers only allow the new tab when
// it originates from a real anchor click), falling back to a direct
// new-tab open.
func (d *Dispatcher) Dispatch(nav Navigator, url string, device DeviceClass) DispatchResult {
	res := DispatchResult{Device: device, RetryURL: url}

	type step struct {
		name string
		fn   func(string) error
	}
	var chain []step
	if device == DeviceMobile {
		chain = []step{
			{"same_tab", nav.SameTab},
			{"new_tab", nav.NewTab},
		}
	} else {
		chain = []step{
			{"anchor_click", nav.AnchorClick},
			{"new_tab", nav.NewTab},
		}
	}

	for _, s := range chain {
		if err := s.fn(url); err != nil {
			res.Attempts = append(res.Attempts, Attempt{Strategy: s.name, Error: err.Error()})
			continue
		}
		res.Attempts = append(res.Attempts, Attempt{Strategy: s.name})
		res.State = StateSucceeded
		res.CompletionDelayMS = d.completionDelay.Milliseconds()
		return res
	}

	res.State = StateFailed
	return res
}

// Plan is a Navigator that records the steps for the client to execute;
// recording never fails, so the first strategy of the chain wins.
type Plan struct {
	Steps []string
}

func NewPlan() *Plan { return &Plan{} }

func (p *Plan) SameTab(url string) error {
	p.Steps = append(p.Steps, "same_tab")
	return nil
}

func (p *Plan) NewTab(url string) error {
	p.Steps = append(p.Steps, "new_tab")
	return nil
}

func (p *Plan) AnchorClick(url string) error {
	p.Steps = append(p.Steps, "anchor_click")
	return nil
}
