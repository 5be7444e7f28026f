package sports

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Game is one entry of the external team schedule.
type Game struct {
	Opponent string    `json:"opponent"`
	Date     time.Time `json:"date"`
	Home     bool      `json:"home"`
	Venue    string    `json:"venue"`
	TV       string    `json:"tv"`
}

// ScheduleSource fetches the upcoming team schedule from an external API.
type ScheduleSource interface {
	FetchSchedule(ctx context.Context, team string) ([]Game, error)
}

// Client talks to an ESPN-style scoreboard JSON API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient constructs a schedule client. A nil http client falls back to a
// default with a conservative timeout.
func NewClient(baseURL string, httpClient *http.Client, logger zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger.With().Str("component", "sports_client").Logger(),
	}
}

type scheduleEnvelope struct {
	Events []struct {
		Date         string `json:"date"`
		Name         string `json:"name"`
		ShortName    string `json:"shortName"`
		Competitions []struct {
			Venue struct {
				FullName string `json:"fullName"`
			} `json:"venue"`
			Competitors []struct {
				HomeAway string `json:"homeAway"`
				Team     struct {
					DisplayName string `json:"displayName"`
					Abbrev      string `json:"abbreviation"`
				} `json:"team"`
			} `json:"competitors"`
			Broadcasts []struct {
				Names []string `json:"names"`
			} `json:"broadcasts"`
		} `json:"competitions"`
	} `json:"events"`
}

// FetchSchedule retrieves and flattens the schedule for the given team slug.
func (c *Client) FetchSchedule(ctx context.Context, team string) ([]Game, error) {
	url := fmt.Sprintf("%s/teams/%s/schedule", c.baseURL, strings.TrimSpace(team))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build schedule request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("schedule api returned status %d", resp.StatusCode)
	}

	var envelope scheduleEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode schedule payload: %w", err)
	}

	games := make([]Game, 0, len(envelope.Events))
	for _, event := range envelope.Events {
		date, err := parseEventDate(event.Date)
		if err != nil {
			c.logger.Warn().Str("raw_date", event.Date).Msg("skipping game with unparseable date")
			continue
		}

		game := Game{Date: date}
		if len(event.Competitions) > 0 {
			competition := event.Competitions[0]
			game.Venue = competition.Venue.FullName
			for _, competitor := range competition.Competitors {
				if strings.EqualFold(competitor.HomeAway, "away") {
					game.Opponent = competitor.Team.DisplayName
				} else if strings.EqualFold(competitor.HomeAway, "home") && game.Opponent == "" {
					// Filled below when our team is away.
					continue
				}
			}
			if len(competition.Broadcasts) > 0 && len(competition.Broadcasts[0].Names) > 0 {
				game.TV = competition.Broadcasts[0].Names[0]
			}
		}
		if game.Opponent == "" {
			game.Opponent = strings.TrimSpace(event.ShortName)
		}
		if game.Opponent == "" {
			c.logger.Warn().Str("event", event.Name).Msg("skipping game without opponent")
			continue
		}

		games = append(games, game)
	}

	return games, nil
}

func parseEventDate(raw string) (time.Time, error) {
	layouts := []string{time.RFC3339, "2006-01-02T15:04Z", "2006-01-02"}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format %q", raw)
}
