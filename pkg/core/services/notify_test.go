package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/choreworld/choreworld/pkg/clients/ntfyclient"
	"github.com/choreworld/choreworld/pkg/core/model"
)

type recordedRequest struct {
	Path  string
	Body  string
	Title string
	Tags  string
}

// recordingServer captures every ntfy publish it receives.
func recordingServer(t *testing.T, status int) (*httptest.Server, func() []recordedRequest) {
	t.Helper()

	var mu sync.Mutex
	var requests []recordedRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		requests = append(requests, recordedRequest{
			Path:  r.URL.Path,
			Body:  string(body),
			Title: r.Header.Get("Title"),
			Tags:  r.Header.Get("Tags"),
		})
		mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)

	return server, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), requests...)
	}
}

func TestNotify(t *testing.T) {
	server, requests := recordingServer(t, http.StatusOK)

	cfg := testConfig(writeGroupsFile(t))
	// Sunday 2021-04-18 → offset 1: dishes→Bob, trash→Carol, bins→Alice
	calc := fixedCalculator(time.Date(2021, time.April, 18, 0, 0, 0, 0, time.UTC))
	endpoints := Endpoints{
		"chch": {
			"Alice": server.URL + "/alice",
			"Bob":   server.URL + "/bob",
			"Carol": server.URL + "/carol",
		},
	}

	sent, failed, err := Notify(context.Background(), cfg, calc, ntfyclient.NewClient(zap.NewNop()), endpoints, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, failed)
	require.Len(t, sent, 3)

	byPerson := make(map[string]recordedRequest)
	for _, r := range requests() {
		byPerson[r.Path] = r
	}
	require.Len(t, byPerson, 3)

	assert.Equal(t, "Bob, your chores for the week are: dishes", byPerson["/bob"].Body)
	assert.Equal(t, "Carol, your chores for the week are: trash", byPerson["/carol"].Body)
	assert.Equal(t, "Alice, your chores for the week are: bins", byPerson["/alice"].Body)

	for _, r := range byPerson {
		assert.Equal(t, "choreworld", r.Title)
		assert.Equal(t, "broom,sparkles", r.Tags)
	}
}

func TestNotify_MissingEndpoint(t *testing.T) {
	server, requests := recordingServer(t, http.StatusOK)

	cfg := testConfig(writeGroupsFile(t))
	calc := fixedCalculator(time.Date(2021, time.April, 18, 0, 0, 0, 0, time.UTC))
	endpoints := Endpoints{
		"chch": {
			"Alice": server.URL + "/alice",
			"Bob":   server.URL + "/bob",
			// Carol has no endpoint
		},
	}

	sent, failed, err := Notify(context.Background(), cfg, calc, ntfyclient.NewClient(zap.NewNop()), endpoints, zap.NewNop())
	require.NoError(t, err)

	assert.Len(t, sent, 2)
	require.Len(t, failed, 1)
	assert.Equal(t, "Carol", failed[0].Person)
	assert.Contains(t, failed[0].Error, "no endpoint")
	assert.Len(t, requests(), 2)
}

func TestNotify_DeliveryFailureDoesNotAbort(t *testing.T) {
	server, requests := recordingServer(t, http.StatusInternalServerError)

	cfg := testConfig(writeGroupsFile(t))
	calc := fixedCalculator(time.Date(2021, time.April, 18, 0, 0, 0, 0, time.UTC))
	endpoints := Endpoints{
		"chch": {
			"Alice": server.URL + "/alice",
			"Bob":   server.URL + "/bob",
			"Carol": server.URL + "/carol",
		},
	}

	sent, failed, err := Notify(context.Background(), cfg, calc, ntfyclient.NewClient(zap.NewNop()), endpoints, zap.NewNop())
	require.NoError(t, err)

	assert.Empty(t, sent)
	assert.Len(t, failed, 3)
	assert.Len(t, requests(), 3, "every person was still attempted")
}

func TestHumanizeChores(t *testing.T) {
	chores := func(names ...string) []model.Chore {
		out := make([]model.Chore, len(names))
		for i, n := range names {
			out[i] = model.Chore{ID: n, Name: n}
		}
		return out
	}

	tests := []struct {
		name     string
		chores   []model.Chore
		expected string
	}{
		{"none", nil, ""},
		{"one", chores("Dishes"), "dishes"},
		{"two", chores("Dishes", "Trash"), "dishes and trash"},
		{"three", chores("Dishes", "Trash", "Bins"), "dishes, trash, and bins"},
		{"four", chores("A", "B", "C", "D"), "a, b, c, and d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HumanizeChores(tt.chores))
		})
	}
}
