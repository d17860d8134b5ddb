package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/geo-locator/internal/resilience"
)

// ErrNoResult is returned when the provider has no result for a coordinate.
var ErrNoResult = eris.New("geocode: no result")

// ErrNoAddress is returned when a result lacks a usable city or state.
var ErrNoAddress = eris.New("geocode: no city/state components")

// googleGeocodeResponse is the JSON response from the Google Geocoding API.
type googleGeocodeResponse struct {
	Results      []googleResult `json:"results"`
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

type googleResult struct {
	AddressComponents []addressComponent `json:"address_components"`
	FormattedAddress  string             `json:"formatted_address"`
}

type addressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

func (a addressComponent) hasType(t string) bool {
	for _, typ := range a.Types {
		if typ == t {
			return true
		}
	}
	return false
}

// cityFallbackTypes are tried in order when no locality component exists.
var cityFallbackTypes = []string{"sublocality", "neighborhood", "administrative_area_level_2"}

// ReverseGeocode looks up the city and state for a coordinate.
func (c *googleClient) ReverseGeocode(ctx context.Context, lat, lng float64) (*ReverseResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "geocode: rate limit")
	}

	params := url.Values{
		"latlng": {formatLatLng(lat, lng)},
		"key":    {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: build request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, resilience.StatusError("geocode", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: read body")
	}

	var gr googleGeocodeResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return nil, eris.Wrap(err, "geocode: parse response")
	}

	switch gr.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, ErrNoResult
	case "OVER_QUERY_LIMIT", "UNKNOWN_ERROR":
		return nil, resilience.NewTransientError(
			eris.Errorf("geocode: provider status %s: %s", gr.Status, gr.ErrorMessage), http.StatusTooManyRequests)
	default:
		return nil, eris.Errorf("geocode: provider status %s: %s", gr.Status, gr.ErrorMessage)
	}
	if len(gr.Results) == 0 {
		return nil, ErrNoResult
	}

	result := gr.Results[0]
	city, state := extractCityState(result.AddressComponents)
	if city == "" || state == "" {
		return nil, ErrNoAddress
	}

	return &ReverseResult{
		City:             city,
		State:            state,
		FormattedAddress: result.FormattedAddress,
	}, nil
}

// extractCityState picks the locality name (or the first fallback type) and
// the short state code from address components.
func extractCityState(components []addressComponent) (city, state string) {
	for _, comp := range components {
		switch {
		case comp.hasType("locality"):
			if city == "" {
				city = comp.LongName
			}
		case comp.hasType("administrative_area_level_1"):
			if state == "" {
				state = comp.ShortName
			}
		}
	}
	if city != "" {
		return city, state
	}

	for _, t := range cityFallbackTypes {
		for _, comp := range components {
			if comp.hasType(t) {
				return comp.LongName, state
			}
		}
	}
	return "", state
}

func formatLatLng(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', 6, 64) + "," + strconv.FormatFloat(lng, 'f', 6, 64)
}
