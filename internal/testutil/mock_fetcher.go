package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/ptxxdxxd/ascii-telescope/internal/render"
	"github.com/ptxxdxxd/ascii-telescope/internal/solar"
)

// MockFetcher implements solar.Fetcher for testing.
type MockFetcher struct {
	mu     sync.Mutex
	Result *solar.Result
	Err    error
	Calls  int
}

func (m *MockFetcher) Fetch(_ context.Context, _ []solar.Source, _ time.Duration) (*solar.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

// SetResult swaps the canned result in a thread-safe manner.
func (m *MockFetcher) SetResult(res *solar.Result, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Result = res
	m.Err = err
}

// GetCalls returns the number of Fetch calls in a thread-safe manner.
func (m *MockFetcher) GetCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

// GradientResult builds a canned fetch result over a left-to-right
// gradient grid, attributed to the named source.
func GradientResult(w, h int, sourceName string) *solar.Result {
	g := render.NewGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Set(x, y, float64(x)*255/float64(w-1))
		}
	}
	return &solar.Result{
		Grid:      g,
		Source:    solar.Source{Name: sourceName, URL: "https://example.com/sun.jpg"},
		Raw:       []byte{0xFF, 0xD8, 0xFF},
		FetchedAt: time.Now().UTC(),
	}
}
