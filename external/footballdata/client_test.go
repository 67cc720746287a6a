package footballdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/pl-predictor/internal/platform/logging"
	"github.com/riskibarqy/pl-predictor/internal/platform/resilience"
	"github.com/riskibarqy/pl-predictor/internal/usecase"
)

const matchdayPayload = `{
  "filters": {"matchday": "1"},
  "matches": [
    {
      "id": 497410,
      "utcDate": "2024-08-16T19:00:00Z",
      "status": "FINISHED",
      "matchday": 1,
      "homeTeam": {"id": 66, "name": "Manchester United FC", "shortName": "Man United"},
      "awayTeam": {"id": 63, "name": "Fulham FC", "shortName": "Fulham"},
      "score": {"winner": "HOME_TEAM", "fullTime": {"home": 1, "away": 0}, "halfTime": {"home": 0, "away": 0}}
    },
    {
      "id": 497411,
      "utcDate": "2024-08-17T11:30:00Z",
      "status": "IN_PLAY",
      "matchday": 1,
      "homeTeam": {"id": 349, "name": "Ipswich Town FC"},
      "awayTeam": {"id": 64, "name": "Liverpool FC"},
      "score": {"winner": null, "fullTime": {"home": 0, "away": null}}
    },
    {
      "id": 497412,
      "utcDate": "",
      "status": "SCHEDULED",
      "matchday": 1,
      "homeTeam": {"id": null, "name": null},
      "awayTeam": {"id": 57, "name": "Arsenal FC"},
      "score": {"fullTime": {"home": null, "away": null}}
    }
  ]
}`

func newTestClient(serverURL string, maxRetries int) *Client {
	return NewClient(ClientConfig{
		BaseURL:      serverURL,
		Token:        "secret-token",
		Timeout:      2 * time.Second,
		MaxRetries:   maxRetries,
		RetryBackoff: time.Millisecond,
		Logger:       logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})
}

func TestFetchGameweekMatches_MapsPayload(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/competitions/PL/matches", r.URL.Path)
		require.Equal(t, "1", r.URL.Query().Get("matchday"))
		require.Equal(t, "secret-token", r.Header.Get("X-Auth-Token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(matchdayPayload))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)
	matches, err := client.FetchGameweekMatches(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	first := matches[0]
	require.Equal(t, int64(497410), first.ExternalID)
	require.Equal(t, "Manchester United FC", first.HomeTeam)
	require.Equal(t, "Fulham FC", first.AwayTeam)
	require.Equal(t, "FINISHED", first.Status)
	require.NotNil(t, first.KickoffUTC)
	require.Equal(t, "2024-08-16T19:00:00Z", *first.KickoffUTC)
	home, away, ok := first.FinalScore()
	require.True(t, ok)
	require.Equal(t, 1, home)
	require.Equal(t, 0, away)

	_, _, ok = matches[1].FinalScore()
	require.False(t, ok)
	require.NotNil(t, matches[1].FullTimeHome)
	require.Nil(t, matches[1].FullTimeAway)

	require.Empty(t, matches[2].HomeTeam)
	require.Nil(t, matches[2].KickoffUTC)
}

func TestFetchGameweekMatches_MissingTokenSendsNothing(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Logger: logging.NewNop()})
	_, err := client.FetchGameweekMatches(context.Background(), 1)
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	require.Zero(t, hits.Load())
}

func TestFetchGameweekMatches_NonRetryableStatus(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"The resource you are looking for is restricted.","errorCode":403}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)
	_, err := client.FetchGameweekMatches(context.Background(), 4)
	require.Error(t, err)
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	require.Contains(t, err.Error(), "status=403")
	require.Contains(t, err.Error(), "restricted")
	require.Equal(t, int32(1), hits.Load())
}

func TestFetchGameweekMatches_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"message":"You reached your request limit."}`))
			return
		}
		_, _ = w.Write([]byte(`{"matches":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 2)
	matches, err := client.FetchGameweekMatches(context.Background(), 2)
	require.NoError(t, err)
	require.Empty(t, matches)
	require.Equal(t, int32(3), hits.Load())
}

func TestFetchGameweekMatches_CircuitOpensAfterTransientFailures(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)
	for range 2 {
		_, err := client.FetchGameweekMatches(context.Background(), 5)
		require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	}

	_, err := client.FetchGameweekMatches(context.Background(), 5)
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	require.Contains(t, err.Error(), "temporarily unavailable")
	require.Equal(t, int32(2), hits.Load())
}

func TestFetchGameweekMatches_MalformedBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"matches": [`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)
	_, err := client.FetchGameweekMatches(context.Background(), 1)
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
}

func TestMatchesURL(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{BaseURL: "https://api.football-data.org/v4/", Competition: "ELC"})
	require.Equal(t, "https://api.football-data.org/v4/competitions/ELC/matches?matchday=12", client.matchesURL(12))
}

func TestSanitizeSensitiveText(t *testing.T) {
	t.Parallel()

	got := sanitizeSensitiveText("dial failed X-Auth-Token: abc123 for secret-token", "secret-token")
	require.False(t, strings.Contains(got, "abc123"))
	require.False(t, strings.Contains(got, "secret-token"))
	require.Contains(t, got, "REDACTED")

	long := abbreviateBody([]byte(strings.Repeat("x", maxBodyPreview+50)), "")
	require.Len(t, long, maxBodyPreview+3)
}
