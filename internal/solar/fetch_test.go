package solar_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ptxxdxxd/ascii-telescope/internal/solar"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// solarPNG returns a small valid PNG with a recognizable bright pixel.
func solarPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	img.Pix[0] = 255
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// countingServer serves a fixed handler and counts requests.
func countingServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func imageHandler(data []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	}
}

func statusHandler(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
	}
}

func TestFetch_FirstSourceWins(t *testing.T) {
	good, goodCalls := countingServer(t, imageHandler(solarPNG(t)))
	backup, backupCalls := countingServer(t, imageHandler(solarPNG(t)))

	client := solar.NewClient(http.DefaultClient, quietLogger())
	sources := []solar.Source{
		{Name: "primary", URL: good.URL},
		{Name: "backup", URL: backup.URL},
	}

	res, err := client.Fetch(context.Background(), sources, 5*time.Second)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if res.Source.Name != "primary" {
		t.Errorf("winning source = %q, want primary", res.Source.Name)
	}
	if res.Grid.W != 8 || res.Grid.H != 8 {
		t.Errorf("grid size = %dx%d, want 8x8", res.Grid.W, res.Grid.H)
	}
	if goodCalls.Load() != 1 {
		t.Errorf("primary hit %d times, want 1", goodCalls.Load())
	}
	if backupCalls.Load() != 0 {
		t.Errorf("backup hit %d times, want 0 (short-circuit)", backupCalls.Load())
	}
}

func TestFetch_FallsBackInOrder(t *testing.T) {
	down, downCalls := countingServer(t, statusHandler(http.StatusInternalServerError))
	missing, missingCalls := countingServer(t, statusHandler(http.StatusNotFound))
	good, goodCalls := countingServer(t, imageHandler(solarPNG(t)))
	spare, spareCalls := countingServer(t, imageHandler(solarPNG(t)))

	client := solar.NewClient(http.DefaultClient, quietLogger())
	sources := []solar.Source{
		{Name: "down", URL: down.URL},
		{Name: "missing", URL: missing.URL},
		{Name: "good", URL: good.URL},
		{Name: "spare", URL: spare.URL},
	}

	res, err := client.Fetch(context.Background(), sources, 5*time.Second)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if res.Source.Name != "good" {
		t.Errorf("winning source = %q, want good", res.Source.Name)
	}
	if len(res.Attempts) != 2 {
		t.Fatalf("recorded attempts = %d, want 2 (the sources that failed first)", len(res.Attempts))
	}
	if res.Attempts[0].Source.Name != "down" || res.Attempts[1].Source.Name != "missing" {
		t.Errorf("attempt order = %q, %q, want down, missing",
			res.Attempts[0].Source.Name, res.Attempts[1].Source.Name)
	}
	if downCalls.Load() != 1 || missingCalls.Load() != 1 || goodCalls.Load() != 1 {
		t.Errorf("attempt counts = %d/%d/%d, want 1/1/1",
			downCalls.Load(), missingCalls.Load(), goodCalls.Load())
	}
	if spareCalls.Load() != 0 {
		t.Errorf("spare hit %d times, want 0 (short-circuit after success)", spareCalls.Load())
	}
}

func TestFetch_AllSourcesFail(t *testing.T) {
	down, _ := countingServer(t, statusHandler(http.StatusBadGateway))
	missing, _ := countingServer(t, statusHandler(http.StatusNotFound))
	garbage, _ := countingServer(t, imageHandler([]byte("this is not an image")))

	client := solar.NewClient(http.DefaultClient, quietLogger())
	sources := []solar.Source{
		{Name: "down", URL: down.URL},
		{Name: "missing", URL: missing.URL},
		{Name: "garbage", URL: garbage.URL},
	}

	_, err := client.Fetch(context.Background(), sources, 5*time.Second)
	var failure *solar.FetchFailure
	if !errors.As(err, &failure) {
		t.Fatalf("err = %v, want *FetchFailure", err)
	}
	if len(failure.Attempts) != 3 {
		t.Fatalf("attempts = %d, want 3 (one per source)", len(failure.Attempts))
	}
	for i, want := range []string{"down", "missing", "garbage"} {
		if failure.Attempts[i].Source.Name != want {
			t.Errorf("attempt %d source = %q, want %q", i, failure.Attempts[i].Source.Name, want)
		}
	}

	var netErr *solar.NetworkError
	if !errors.As(failure.Attempts[0].Err, &netErr) {
		t.Errorf("attempt 0 err = %v, want *NetworkError", failure.Attempts[0].Err)
	} else if netErr.Status != http.StatusBadGateway {
		t.Errorf("attempt 0 status = %d, want 502", netErr.Status)
	}

	var decErr *solar.DecodeError
	if !errors.As(failure.Attempts[2].Err, &decErr) {
		t.Errorf("attempt 2 err = %v, want *DecodeError", failure.Attempts[2].Err)
	}
}

func TestFetch_PerSourceTimeout(t *testing.T) {
	slow, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	})
	good, _ := countingServer(t, imageHandler(solarPNG(t)))

	client := solar.NewClient(http.DefaultClient, quietLogger())
	sources := []solar.Source{
		{Name: "slow", URL: slow.URL},
		{Name: "good", URL: good.URL},
	}

	start := time.Now()
	res, err := client.Fetch(context.Background(), sources, 100*time.Millisecond)
	if err != nil {
		t.Fatalf("Fetch should fall back past the slow source: %v", err)
	}
	if res.Source.Name != "good" {
		t.Errorf("winning source = %q, want good", res.Source.Name)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("fetch took %s, timeout did not bound the slow source", elapsed)
	}
}

func TestFetch_SendsUserAgent(t *testing.T) {
	var gotUA string
	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		imageHandler(solarPNG(t))(w, r)
	})

	client := solar.NewClient(http.DefaultClient, quietLogger())
	_, err := client.Fetch(context.Background(), []solar.Source{{Name: "x", URL: srv.URL}}, 5*time.Second)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotUA == "" || gotUA == "Go-http-client/1.1" {
		t.Errorf("User-Agent = %q, want a browser-style agent", gotUA)
	}
}

func TestFetch_NoSources(t *testing.T) {
	client := solar.NewClient(http.DefaultClient, quietLogger())
	if _, err := client.Fetch(context.Background(), nil, time.Second); err == nil {
		t.Fatal("empty source list should return error")
	}
}

func TestFetch_CancelledContextStopsIteration(t *testing.T) {
	srv, calls := countingServer(t, imageHandler(solarPNG(t)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := solar.NewClient(http.DefaultClient, quietLogger())
	sources := []solar.Source{
		{Name: "a", URL: srv.URL},
		{Name: "b", URL: srv.URL},
		{Name: "c", URL: srv.URL},
	}

	_, err := client.Fetch(ctx, sources, time.Second)
	if err == nil {
		t.Fatal("fetch with cancelled context should fail")
	}
	if calls.Load() > 1 {
		t.Errorf("server hit %d times, cancelled context should stop iteration", calls.Load())
	}
}

func TestDefaultCatalog_Ordered(t *testing.T) {
	catalog := solar.DefaultCatalog()
	if len(catalog) == 0 {
		t.Fatal("default catalog should not be empty")
	}
	if catalog[0].Name != "NASA SDO HMI Continuum" {
		t.Errorf("preferred source = %q, want the SDO continuum", catalog[0].Name)
	}
	for i, s := range catalog {
		if s.Name == "" || s.URL == "" {
			t.Errorf("catalog entry %d has empty name or url: %+v", i, s)
		}
	}
}
