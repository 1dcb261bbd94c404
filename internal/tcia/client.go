// Package tcia fetches collection names and series-level metadata from
// The Cancer Imaging Archive API.
package tcia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// collectionKeyword marks the collections belonging to this data node.
const collectionKeyword = "ICDC"

// Series is one series-level record for a collection. ImageCount
// arrives string-encoded and is parsed during aggregation.
type Series struct {
	ImageCount       string `json:"ImageCount"`
	PatientID        string `json:"PatientID"`
	Modality         string `json:"Modality"`
	BodyPartExamined string `json:"BodyPartExamined"`
}

// CollectionsData maps a collection name to its series records. A
// collection whose fetch failed maps to an empty list.
type CollectionsData map[string][]Series

type collectionEntry struct {
	Collection string `json:"Collection"`
}

type Client struct {
	baseURL     string
	httpClient  *http.Client
	concurrency int
}

func NewClient(baseURL string, timeout time.Duration, concurrency int) *Client {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		concurrency: concurrency,
	}
}

// CollectionNames fetches the collection listing and keeps only names
// containing the node keyword.
func (c *Client) CollectionNames(ctx context.Context) ([]string, error) {
	var entries []collectionEntry
	if err := c.getJSON(ctx, c.baseURL+"/getCollectionValues", &entries); err != nil {
		return nil, fmt.Errorf("failed to fetch TCIA collections: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(e.Collection, collectionKeyword) {
			names = append(names, e.Collection)
		}
	}

	return names, nil
}

// SeriesForCollection fetches series-level metadata for one named
// collection.
func (c *Client) SeriesForCollection(ctx context.Context, name string) ([]Series, error) {
	var series []Series
	endpoint := c.baseURL + "/getSeries/" + url.PathEscape(name)
	if err := c.getJSON(ctx, endpoint, &series); err != nil {
		return nil, fmt.Errorf("failed to fetch series for %q: %w", name, err)
	}

	return series, nil
}

// CollectionsData fans out over names with bounded concurrency and
// accumulates name -> series list. A failing name yields an empty list
// for that key; no short-circuit on partial failure. Map key order is
// irrelevant to callers.
func (c *Client) CollectionsData(ctx context.Context, names []string) CollectionsData {
	type fetched struct {
		name   string
		series []Series
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, c.concurrency)
	results := make(chan fetched, len(names))

	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			series, err := c.SeriesForCollection(ctx, name)
			if err != nil {
				slog.Warn("Series fetch failed, treating collection as empty", "collection", name, "err", err)
				series = []Series{}
			}
			results <- fetched{name: name, series: series}
		}(name)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	data := make(CollectionsData, len(names))
	for r := range results {
		data[r.name] = r.series
	}

	return data
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("TCIA API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode TCIA response: %w", err)
	}

	return nil
}
