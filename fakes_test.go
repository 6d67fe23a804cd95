// ABOUTME: Test doubles for the automation bridge, tray item, timer and recovery collaborators.
// ABOUTME: All fakes are safe for use from the presenter's worker goroutines.

package main

import (
	"context"
	"sync"
	"time"
)

type fakeAutomation struct {
	mu      sync.Mutex
	dark    bool
	readErr error
	flipErr error
	reads   int
	flips   int

	// flipGate, when set, blocks FlipAppearanceFlag until it is closed.
	flipGate chan struct{}

	// readGate, when set, blocks ReadAppearanceFlag until it is closed. The
	// value returned is the one current when the read started.
	readGate chan struct{}
}

func (f *fakeAutomation) ReadAppearanceFlag(ctx context.Context) (bool, error) {
	f.mu.Lock()
	f.reads++
	dark, err, gate := f.dark, f.readErr, f.readGate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return false, err
	}
	return dark, nil
}

func (f *fakeAutomation) FlipAppearanceFlag(ctx context.Context) error {
	f.mu.Lock()
	f.flips++
	gate := f.flipGate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.flipErr != nil {
		return f.flipErr
	}
	f.dark = !f.dark
	return nil
}

func (f *fakeAutomation) set(fn func(f *fakeAutomation)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeAutomation) Reads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}

func (f *fakeAutomation) Flips() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flips
}

type fakeItem struct {
	mu      sync.Mutex
	renders []AppearanceState
}

func (f *fakeItem) Render(state AppearanceState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renders = append(f.renders, state)
}

func (f *fakeItem) Renders() []AppearanceState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]AppearanceState(nil), f.renders...)
}

func (f *fakeItem) Last() AppearanceState {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.renders) == 0 {
		return Unknown
	}
	return f.renders[len(f.renders)-1]
}

type fakeTimer struct {
	mu     sync.Mutex
	delays []time.Duration
	chans  []chan time.Time
}

func (f *fakeTimer) After(d time.Duration) <-chan time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan time.Time, 1)
	f.delays = append(f.delays, d)
	f.chans = append(f.chans, ch)
	return ch
}

func (f *fakeTimer) Armed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.chans)
}

func (f *fakeTimer) Delays() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Duration(nil), f.delays...)
}

// Fire triggers the most recently armed timer.
func (f *fakeTimer) Fire() {
	f.mu.Lock()
	ch := f.chans[len(f.chans)-1]
	f.mu.Unlock()
	ch <- time.Now()
}

type fakePolicy struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakePolicy) Accessory() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "accessory")
}

func (f *fakePolicy) Regular() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "regular")
}

func (f *fakePolicy) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakePrompt struct {
	mu       sync.Mutex
	answer   bool
	titles   []string
	messages []string

	// gate, when set, keeps the dialog open until it is closed.
	gate chan struct{}
}

func (f *fakePrompt) AskOpenSettings(title, message string) bool {
	f.mu.Lock()
	f.titles = append(f.titles, title)
	f.messages = append(f.messages, message)
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.answer
}

func (f *fakePrompt) Titles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.titles...)
}

type fakeOpener struct {
	mu   sync.Mutex
	err  error
	urls []string
}

func (f *fakeOpener) OpenURL(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, url)
	return f.err
}

func (f *fakeOpener) URLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.urls...)
}
