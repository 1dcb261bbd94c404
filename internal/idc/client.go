// Package idc fetches collection metadata from the Imaging Data
// Commons listing API.
package idc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// CollectionIDPrefix marks the collections belonging to this data
// node's namespace.
const CollectionIDPrefix = "icdc_"

// Collection is one entry from the IDC listing. Description may
// contain HTML markup.
type Collection struct {
	CollectionID string `json:"collection_id"`
	Description  string `json:"description"`
}

type listingResponse struct {
	Collections []Collection `json:"collections"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Collections fetches the full listing and keeps only entries whose
// collection id carries the node's namespace prefix.
func (c *Client) Collections(ctx context.Context) ([]Collection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/collections", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create IDC request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch IDC collections: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("IDC API returned status %d: %s", resp.StatusCode, string(body))
	}

	var decoded listingResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode IDC response: %w", err)
	}

	filtered := make([]Collection, 0, len(decoded.Collections))
	for _, col := range decoded.Collections {
		if strings.Contains(col.CollectionID, CollectionIDPrefix) {
			filtered = append(filtered, col)
		}
	}

	return filtered, nil
}
