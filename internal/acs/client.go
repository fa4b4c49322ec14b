// Package acs fetches tract-level demographic estimates from the Census
// Bureau's American Community Survey 5-year API.
package acs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/capital-ej/ejatlas-cli/internal/fetcher"
	"github.com/capital-ej/ejatlas-cli/internal/model"
)

// ErrNoData indicates the API has no data for the requested year/geography.
// It is fatal to the render and never retried.
var ErrNoData = eris.New("acs: no data for requested year and geography")

// Jam values the API substitutes for unavailable estimates.
// https://www.census.gov/data/developers/data-sets/acs-1year/notes-on-acs-estimate-and-annotation-values.html
var jamValues = map[string]bool{
	"-666666666": true,
	"-888888888": true,
	"-999999999": true,
	"-222222222": true,
	"-333333333": true,
	"-555555555": true,
}

// Query describes one ACS tract-level request.
type Query struct {
	Year       int
	Variables  []string // estimate variable codes, e.g. B19013_001E
	StateFIPS  string
	CountyFIPS []string
}

// Client talks to the ACS 5-year detailed tables endpoint.
type Client struct {
	baseURL string
	apiKey  string
	fetcher fetcher.Fetcher
}

// NewClient creates an ACS client. apiKey may be empty; the API allows a
// small anonymous quota.
func NewClient(baseURL, apiKey string, f fetcher.Fetcher) *Client {
	return &Client{baseURL: baseURL, apiKey: apiKey, fetcher: f}
}

// FetchTracts returns one TractRecord per (tract, variable) pair for the
// queried counties, including each estimate's margin of error.
func (c *Client) FetchTracts(ctx context.Context, q Query) ([]model.TractRecord, error) {
	if len(q.Variables) == 0 {
		return nil, eris.New("acs: query has no variables")
	}

	log := zap.L().With(zap.String("component", "acs"), zap.Int("year", q.Year))

	rawURL := c.buildURL(q)
	log.Info("fetching ACS tract estimates",
		zap.Strings("variables", q.Variables),
		zap.Strings("counties", q.CountyFIPS),
	)

	body, err := c.fetcher.Download(ctx, rawURL)
	if err != nil {
		return nil, eris.Wrap(err, "acs: fetch")
	}
	defer body.Close() //nolint:errcheck

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, eris.Wrap(err, "acs: read response")
	}

	records, err := parseResponse(data, q.Variables)
	if err != nil {
		return nil, err
	}

	log.Info("ACS fetch complete", zap.Int("records", len(records)))
	return records, nil
}

// buildURL assembles the detailed-tables request. Margin-of-error variables
// (E suffix swapped for M) are requested alongside every estimate.
func (c *Client) buildURL(q Query) string {
	get := []string{"NAME"}
	for _, v := range q.Variables {
		get = append(get, v, MarginVariable(v))
	}

	params := url.Values{}
	params.Set("get", strings.Join(get, ","))
	params.Add("for", "tract:*")
	params.Add("in", "state:"+q.StateFIPS)
	params.Add("in", "county:"+strings.Join(q.CountyFIPS, ","))
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	return fmt.Sprintf("%s/%d/acs/acs5?%s", c.baseURL, q.Year, params.Encode())
}

// parseResponse decodes the API's array-of-arrays wire format:
// [[header], [row1], [row2], ...].
func parseResponse(data []byte, variables []string) ([]model.TractRecord, error) {
	if len(data) == 0 {
		return nil, ErrNoData
	}

	var raw [][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		// The API reports unknown years and geographies as a plain-text
		// error page rather than JSON.
		return nil, eris.Wrapf(ErrNoData, "acs: non-tabular response: %.120s", string(data))
	}

	if len(raw) < 2 {
		return nil, ErrNoData
	}

	header := raw[0]
	colIdx := make(map[string]int, len(header))
	for i, col := range header {
		colIdx[col] = i
	}

	var records []model.TractRecord
	for _, row := range raw[1:] {
		state := cell(row, colIdx, "state")
		county := cell(row, colIdx, "county")
		tract := cell(row, colIdx, "tract")
		geoid := state + county + tract
		name := cell(row, colIdx, "NAME")

		for _, v := range variables {
			records = append(records, model.TractRecord{
				GEOID:         geoid,
				Name:          name,
				Variable:      v,
				Estimate:      parseEstimate(cell(row, colIdx, v)),
				MarginOfError: parseEstimate(cell(row, colIdx, MarginVariable(v))),
				StateFIPS:     state,
				CountyFIPS:    county,
				TractCode:     tract,
			})
		}
	}

	return records, nil
}

// MarginVariable returns the margin-of-error code for an estimate code
// (trailing E becomes M).
func MarginVariable(estimate string) string {
	if strings.HasSuffix(estimate, "E") {
		return estimate[:len(estimate)-1] + "M"
	}
	return estimate + "M"
}

// parseEstimate converts a raw cell to a numeric estimate.
// Empty cells, "null", and jam values all map to nil.
func parseEstimate(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" || jamValues[s] {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func cell(row []string, colIdx map[string]int, name string) string {
	i, ok := colIdx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
