// Package roster fetches draftable team pools from the RobotEvents v2 API.
package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://www.robotevents.com/api/v2"

// ErrEventNotFound is returned when no event matches the given SKU
var ErrEventNotFound = errors.New("event not found")

// Config holds configuration for the RobotEvents client
type Config struct {
	// Token is the RobotEvents API bearer token
	Token string

	// BaseURL overrides the API root, used in tests
	BaseURL string

	// HTTPClient overrides the default HTTP client
	HTTPClient *http.Client
}

// Client talks to the RobotEvents API
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// New creates a new RobotEvents client
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	return &Client{
		token:      cfg.Token,
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

type eventPage struct {
	Data []struct {
		ID int `json:"id"`
	} `json:"data"`
}

type teamPage struct {
	Data []struct {
		Number string `json:"number"`
	} `json:"data"`
	Meta struct {
		CurrentPage int `json:"current_page"`
		LastPage    int `json:"last_page"`
	} `json:"meta"`
}

// FetchTeamPool resolves an event SKU to the list of registered team
// numbers, following pagination until the last page.
func (c *Client) FetchTeamPool(ctx context.Context, sku string) ([]string, error) {
	if sku == "" {
		return nil, errors.New("event sku cannot be empty")
	}

	eventID, err := c.eventIDBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}

	var numbers []string
	page := 1
	for {
		teams, err := c.teamsPage(ctx, eventID, page)
		if err != nil {
			return nil, err
		}
		for _, team := range teams.Data {
			numbers = append(numbers, team.Number)
		}
		if page >= teams.Meta.LastPage {
			break
		}
		page++
	}

	return numbers, nil
}

func (c *Client) eventIDBySKU(ctx context.Context, sku string) (int, error) {
	query := url.Values{}
	query.Set("sku[]", sku)

	var events eventPage
	if err := c.get(ctx, "/events", query, &events); err != nil {
		return 0, err
	}
	if len(events.Data) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrEventNotFound, sku)
	}
	return events.Data[0].ID, nil
}

func (c *Client) teamsPage(ctx context.Context, eventID, page int) (*teamPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", "250")

	var teams teamPage
	path := fmt.Sprintf("/events/%d/teams", eventID)
	if err := c.get(ctx, path, query, &teams); err != nil {
		return nil, err
	}
	return &teams, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.URL.RawQuery = query.Encode()
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("robotevents returned status %d for %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
