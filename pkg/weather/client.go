package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.open-meteo.com"

var ErrWeatherUnavailable = errors.New("weather service unavailable")

// Observation is a current-conditions reading for a location.
type Observation struct {
	Code        int
	Description string
	Temperature float64
}

// String renders the reading the way the form's weather field expects it.
func (o Observation) String() string {
	return fmt.Sprintf("%s · %.0f°C", o.Description, o.Temperature)
}

// Client fetches current conditions from the Open-Meteo forecast API,
// which needs no API key.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithBaseURL is used by tests to point at a local server.
func NewClientWithBaseURL(baseURL string) *Client {
	client := NewClient()
	client.baseURL = baseURL
	return client
}

type currentConditions struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
}

// Current returns the present conditions at the given coordinates.
func (c *Client) Current(ctx context.Context, latitude, longitude float64) (Observation, error) {
	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%.4f", latitude))
	query.Set("longitude", fmt.Sprintf("%.4f", longitude))
	query.Set("current", "temperature_2m,weather_code")

	requestURL := c.baseURL + "/v1/forecast?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return Observation{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Observation{}, fmt.Errorf("%w: %v", ErrWeatherUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Observation{}, fmt.Errorf("%w: reading response: %v", ErrWeatherUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return Observation{}, fmt.Errorf("%w: status %d", ErrWeatherUnavailable, resp.StatusCode)
	}

	var conditions currentConditions
	if err := json.Unmarshal(body, &conditions); err != nil {
		return Observation{}, fmt.Errorf("%w: decoding response: %v", ErrWeatherUnavailable, err)
	}

	return Observation{
		Code:        conditions.Current.WeatherCode,
		Description: describeCode(conditions.Current.WeatherCode),
		Temperature: conditions.Current.Temperature,
	}, nil
}

// describeCode maps a WMO weather interpretation code to display text.
func describeCode(code int) string {
	switch code {
	case 0:
		return "Clear sky"
	case 1:
		return "Mainly clear"
	case 2:
		return "Partly cloudy"
	case 3:
		return "Overcast"
	case 45, 48:
		return "Fog"
	case 51, 53, 55:
		return "Drizzle"
	case 56, 57:
		return "Freezing drizzle"
	case 61, 63, 65:
		return "Rain"
	case 66, 67:
		return "Freezing rain"
	case 71, 73, 75:
		return "Snow"
	case 77:
		return "Snow grains"
	case 80, 81, 82:
		return "Rain showers"
	case 85, 86:
		return "Snow showers"
	case 95:
		return "Thunderstorm"
	case 96, 99:
		return "Thunderstorm with hail"
	default:
		return "Unknown conditions"
	}
}
