package nws

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/sun-table-etl/internal/domain"
)

// Client implements domain.CoordinateResolver using the National Weather
// Service NDFD zip code lookup.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an NWS lookup client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// Resolve converts a 5-digit zip code to coordinates.
func (c *Client) Resolve(ctx context.Context, zip string) (domain.Coordinates, error) {
	if err := domain.ValidateZipCode(zip); err != nil {
		return domain.Coordinates{}, err
	}

	params := url.Values{"listZipCodeList": {zip}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("zip code lookup request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.Coordinates{}, fmt.Errorf("nws API error: status %d: %s", resp.StatusCode, body)
	}

	var doc dwml
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode response: %w", err)
	}

	list := strings.TrimSpace(doc.LatLonList)
	// Multiple zips come back space separated; only one is ever requested.
	if first, _, ok := strings.Cut(list, " "); ok {
		list = first
	}
	if list == "" || list == "," {
		return domain.Coordinates{}, fmt.Errorf("zip code %s: no coordinates returned", zip)
	}

	coords, err := domain.ParseCoordinates(list)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("zip code %s: %w", zip, err)
	}
	c.logger.Debug("resolved zip code", "zip", zip, "coords", coords.String())
	return coords, nil
}

// NWS DWML response types.

type dwml struct {
	XMLName    xml.Name `xml:"dwml"`
	LatLonList string   `xml:"latLonList"`
}
