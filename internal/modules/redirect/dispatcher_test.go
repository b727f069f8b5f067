package redirect

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// failingNavigator fails the named strategies and records every attempt.
type failingNavigator struct {
	fail  map[string]bool
	calls []string
}

func (n *failingNavigator) attempt(name string) error {
	n.calls = append(n.calls, name)
	if n.fail[name] {
		return errors.New(name + " blocked")
	}
	return nil
}

func (n *failingNavigator) SameTab(url string) error     { return n.attempt("same_tab") }
func (n *failingNavigator) NewTab(url string) error      { return n.attempt("new_tab") }
func (n *failingNavigator) AnchorClick(url string) error { return n.attempt("anchor_click") }

func TestDispatch_MobileChain(t *testing.T) {
	d := NewDispatcher(0)
	nav := &failingNavigator{fail: map[string]bool{}}

	res := d.Dispatch(nav, "https://g.page/r/demo", DeviceMobile)

	assert.Equal(t, StateSucceeded, res.State)
	assert.Equal(t, []string{"same_tab"}, nav.calls)
	assert.Equal(t, "https://g.page/r/demo", res.RetryURL)
}

func TestDispatch_MobileFallsBackToNewTab(t *testing.T) {
	d := NewDispatcher(0)
	nav := &failingNavigator{fail: map[string]bool{"same_tab": true}}

	res := d.Dispatch(nav, "https://g.page/r/demo", DeviceMobile)

	assert.Equal(t, StateSucceeded, res.State)
	assert.Equal(t, []string{"same_tab", "new_tab"}, nav.calls)
	assert.Equal(t, "same_tab", res.Attempts[0].Strategy)
	assert.NotEmpty(t, res.Attempts[0].Error)
	assert.Empty(t, res.Attempts[1].Error)
}

func TestDispatch_DesktopAnchorClickFirst(t *testing.T) {
	d := NewDispatcher(0)
	nav := &failingNavigator{fail: map[string]bool{}}

	res := d.Dispatch(nav, "https://g.page/r/demo", DeviceDesktop)

	assert.Equal(t, StateSucceeded, res.State)
	assert.Equal(t, []string{"anchor_click"}, nav.calls)
}

func TestDispatch_DesktopAnchorClickFailureFallsBack(t *testing.T) {
	d := NewDispatcher(0)
	nav := &failingNavigator{fail: map[string]bool{"anchor_click": true}}

	res := d.Dispatch(nav, "https://g.page/r/demo", DeviceDesktop)

	assert.Equal(t, StateSucceeded, res.State)
	assert.Equal(t, []string{"anchor_click", "new_tab"}, nav.calls)
}

func TestDispatch_AllStrategiesFailIsTerminal(t *testing.T) {
	d := NewDispatcher(0)
	nav := &failingNavigator{fail: map[string]bool{"same_tab": true, "new_tab": true}}

	res := d.Dispatch(nav, "https://g.page/r/demo", DeviceMobile)

	assert.Equal(t, StateFailed, res.State)
	assert.Len(t, res.Attempts, 2)
	// the retry URL survives total failure so the manual button still works
	assert.Equal(t, "https://g.page/r/demo", res.RetryURL)
}

func TestDispatch_ShipsCompletionDelayWithoutBlocking(t *testing.T) {
	d := NewDispatcher(DefaultCompletionDelay)
	nav := &failingNavigator{fail: map[string]bool{}}

	start := time.Now()
	res := d.Dispatch(nav, "https://g.page/r/demo", DeviceMobile)

	assert.Less(t, time.Since(start), DefaultCompletionDelay)
	assert.Equal(t, StateSucceeded, res.State)
	assert.Equal(t, DefaultCompletionDelay.Milliseconds(), res.CompletionDelayMS)
}

func TestDispatch_NoCompletionDelayOnFailure(t *testing.T) {
	d := NewDispatcher(DefaultCompletionDelay)
	nav := &failingNavigator{fail: map[string]bool{"same_tab": true, "new_tab": true}}

	res := d.Dispatch(nav, "https://g.page/r/demo", DeviceMobile)

	assert.Equal(t, StateFailed, res.State)
	assert.Zero(t, res.CompletionDelayMS)
}

func TestDispatch_PlanRecordsFirstStrategyOnly(t *testing.T) {
	d := NewDispatcher(0)

	plan := NewPlan()
	res := d.Dispatch(plan, "https://g.page/r/demo", DeviceMobile)
	assert.Equal(t, StateSucceeded, res.State)
	assert.Equal(t, []string{"same_tab"}, plan.Steps)

	plan = NewPlan()
	res = d.Dispatch(plan, "https://g.page/r/demo", DeviceDesktop)
	assert.Equal(t, StateSucceeded, res.State)
	assert.Equal(t, []string{"anchor_click"}, plan.Steps)
}
