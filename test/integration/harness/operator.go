package harness

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// FakeOperator is an httptest server standing in for the card operator
type FakeOperator struct {
	Server *httptest.Server

	mu          sync.Mutex
	body        string
	calls       []string
	cookie      string
	fetchStatus int
	refreshFail bool
}

// NewFakeOperator starts a fake operator that serves the given card usage.
// The server is closed when the test completes.
func NewFakeOperator(tb testing.TB, card string, usedMB, freeMB float64, expirationTime string) *FakeOperator {
	tb.Helper()

	op := &FakeOperator{
		body: fmt.Sprintf(`{"code":200,"data":{"card":%q,"used":%v,"free":%v,"expirationTime":%q}}`,
			card, usedMB, freeMB, expirationTime),
		fetchStatus: http.StatusOK,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/app/client/card/refresh", func(w http.ResponseWriter, r *http.Request) {
		op.record("refresh")
		op.mu.Lock()
		fail := op.refreshFail
		op.mu.Unlock()
		if fail {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"code":200}`)
	})
	mux.HandleFunc("/app/client/card/get", func(w http.ResponseWriter, r *http.Request) {
		op.record("fetch")
		op.mu.Lock()
		op.cookie = r.Header.Get("Cookie")
		status, body := op.fetchStatus, op.body
		op.mu.Unlock()
		if status != http.StatusOK {
			http.Error(w, "unavailable", status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	})

	op.Server = httptest.NewServer(mux)
	tb.Cleanup(op.Server.Close)
	return op
}

// URL returns the base URL to pass as base_url
func (o *FakeOperator) URL() string {
	return o.Server.URL
}

// FailFetch makes the fetch endpoint answer with status
func (o *FakeOperator) FailFetch(status int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fetchStatus = status
}

// FailRefresh makes the refresh endpoint answer 503
func (o *FakeOperator) FailRefresh() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.refreshFail = true
}

// Calls returns the endpoints hit so far, in order
func (o *FakeOperator) Calls() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.calls...)
}

// LastCookie returns the Cookie header of the last fetch
func (o *FakeOperator) LastCookie() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cookie
}

func (o *FakeOperator) record(call string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, call)
}
