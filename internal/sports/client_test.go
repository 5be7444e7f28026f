package sports

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const schedulePayload = `{
  "events": [
    {
      "date": "2025-03-08T19:30Z",
      "name": "Harbor City at Rivertown",
      "shortName": "HC @ RVT",
      "competitions": [
        {
          "venue": {"fullName": "Rivertown Arena"},
          "competitors": [
            {"homeAway": "home", "team": {"displayName": "Rivertown", "abbreviation": "RVT"}},
            {"homeAway": "away", "team": {"displayName": "Harbor City", "abbreviation": "HC"}}
          ],
          "broadcasts": [{"names": ["SportsNet"]}]
        }
      ]
    },
    {
      "date": "not-a-date",
      "name": "broken entry",
      "shortName": "X @ Y",
      "competitions": []
    }
  ]
}`

func TestClientFetchScheduleParsesGames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/teams/rivertown/schedule", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(schedulePayload))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), zerolog.Nop())
	games, err := client.FetchSchedule(context.Background(), "rivertown")
	require.NoError(t, err)
	require.Len(t, games, 1)
	require.Equal(t, "Harbor City", games[0].Opponent)
	require.Equal(t, "Rivertown Arena", games[0].Venue)
	require.Equal(t, "SportsNet", games[0].TV)
}

func TestClientFetchScheduleUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), zerolog.Nop())
	_, err := client.FetchSchedule(context.Background(), "rivertown")
	require.Error(t, err)
}
