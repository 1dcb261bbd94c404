// Package registry queries the CRDC data-node registry for clinical
// study records. Unlike the imaging-archive clients, a failure here is
// fatal to the whole run.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrBackendUnreachable signals that the primary study query failed.
// The pipeline must not proceed with partial study data.
var ErrBackendUnreachable = errors.New("registry backend unreachable")

// Study is one clinical study record. Immutable for the duration of a
// pipeline run.
type Study struct {
	Designation          string `json:"clinical_study_designation"`
	ImageCollectionCount int    `json:"numberOfImageCollections"`
	CRDCNodeCount        int    `json:"numberOfCRDCNodes"`
}

const studiesQuery = `{
  studiesByProgram {
    clinical_study_designation
    numberOfImageCollections
    numberOfCRDCNodes
  }
}`

type graphQLRequest struct {
	Query string `json:"query"`
}

type studiesResponse struct {
	Data struct {
		StudiesByProgram []Study `json:"studiesByProgram"`
	} `json:"data"`
}

// Client issues the fixed study query against the registry's GraphQL
// endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Studies fetches the full study list. Any transport, status, or
// decode failure wraps ErrBackendUnreachable. A response without
// data.studiesByProgram decodes to a nil slice, which downstream code
// tolerates.
func (c *Client) Studies(ctx context.Context) ([]Study, error) {
	body, err := json.Marshal(graphQLRequest{Query: studiesQuery})
	if err != nil {
		return nil, fmt.Errorf("%w: encode query: %v", ErrBackendUnreachable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnreachable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: registry returned status %d: %s", ErrBackendUnreachable, resp.StatusCode, string(b))
	}

	var decoded studiesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrBackendUnreachable, err)
	}

	return decoded.Data.StudiesByProgram, nil
}
