// Package testing provides test doubles for driving monitors deterministically.
package testing

import (
	"context"
	"sync"

	"github.com/battletracker/battletracker/internal/battlemetrics"
)

// Response is one scripted fetch result.
type Response struct {
	Server *battlemetrics.Server
	Err    error
}

// FakeFetcher returns scripted responses per server id. Once a script is
// exhausted its last response repeats.
type FakeFetcher struct {
	mu      sync.Mutex
	scripts map[string][]Response
	calls   map[string]int
	ctxs    []context.Context
}

// NewFakeFetcher creates an empty fetcher. Unscripted ids fail.
func NewFakeFetcher() *FakeFetcher {
	return &FakeFetcher{
		scripts: make(map[string][]Response),
		calls:   make(map[string]int),
	}
}

// Players scripts successive successful fetches with the given player counts.
func (f *FakeFetcher) Players(id, name string, counts ...int) *FakeFetcher {
	for _, c := range counts {
		f.Then(id, Response{Server: &battlemetrics.Server{
			ID:      id,
			Name:    name,
			Players: c,
			Time:    battlemetrics.TimeUnavailable,
		}})
	}
	return f
}

// Fail scripts a failing fetch.
func (f *FakeFetcher) Fail(id string, err error) *FakeFetcher {
	return f.Then(id, Response{Err: err})
}

// Then appends a response to id's script.
func (f *FakeFetcher) Then(id string, r Response) *FakeFetcher {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scripts[id] = append(f.scripts[id], r)
	return f
}

// Fetch returns the next scripted response for id.
func (f *FakeFetcher) Fetch(ctx context.Context, id string) (*battlemetrics.Server, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := f.calls[id]
	f.calls[id] = n + 1
	f.ctxs = append(f.ctxs, ctx)

	script := f.scripts[id]
	if len(script) == 0 {
		return nil, context.DeadlineExceeded
	}
	if n >= len(script) {
		n = len(script) - 1
	}
	r := script[n]
	if r.Server != nil {
		s := *r.Server
		return &s, r.Err
	}
	return nil, r.Err
}

// Calls returns how many times id was fetched.
func (f *FakeFetcher) Calls(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[id]
}

// Contexts returns the contexts passed to Fetch, in call order.
func (f *FakeFetcher) Contexts() []context.Context {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]context.Context(nil), f.ctxs...)
}
