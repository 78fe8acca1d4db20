package crawl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/policypilot/policypilot/config"
)

// JobState tracks a crawl job through its lifecycle. Completed, failed and
// timed out are terminal; a terminal job is never polled again.
type JobState string

const (
	StateSubmitted JobState = "submitted"
	StateRunning   JobState = "running"
	StateCompleted JobState = "completed"
	StateFailed    JobState = "failed"
	StateTimedOut  JobState = "timed_out"
)

func (s JobState) Terminal() bool {
	return s == StateCompleted || s == StateFailed || s == StateTimedOut
}

// Page is one crawled page, immutable once produced.
type Page struct {
	SourceURL string
	Title     string
	Markdown  string
}

// Job is the poller's view of one asynchronous crawl.
type Job struct {
	ID    string
	State JobState
	Pages []Page
}

// ErrNoJobID is returned when the crawl service acknowledges a submission
// without inline data and without a job identifier to poll.
var ErrNoJobID = errors.New("No crawl job ID returned")

// PageFetcher retrieves the pages behind a URL. Implemented by Client
// (remote crawl service) and DirectFetcher (headless browser fallback).
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]Page, error)
}

// Client drives a Firecrawl-style asynchronous crawl API: submit a job,
// then poll its status until a terminal state or the attempt budget runs
// out.
type Client struct {
	baseURL      string
	apiKey       string
	pageLimit    int
	pollInterval time.Duration
	maxPolls     int
	httpClient   *http.Client
	logger       *log.Logger
}

// NewClient creates a crawl client from configuration.
func NewClient(cfg config.CrawlConfig, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(log.Writer(), "[CRAWL] ", log.LstdFlags)
	}
	pageLimit := cfg.PageLimit
	if pageLimit <= 0 {
		pageLimit = 20
	}
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	maxPolls := cfg.MaxPolls
	if maxPolls <= 0 {
		maxPolls = 30
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:      cfg.BaseURL,
		apiKey:       cfg.APIKey,
		pageLimit:    pageLimit,
		pollInterval: pollInterval,
		maxPolls:     maxPolls,
		httpClient:   &http.Client{Timeout: timeout},
		logger:       logger,
	}
}

type pageData struct {
	Markdown string `json:"markdown"`
	Metadata struct {
		Title     string `json:"title"`
		SourceURL string `json:"sourceURL"`
	} `json:"metadata"`
}

type submitResponse struct {
	Success bool       `json:"success"`
	ID      string     `json:"id"`
	Data    []pageData `json:"data"`
	Error   string     `json:"error"`
}

type statusResponse struct {
	Status string     `json:"status"`
	Data   []pageData `json:"data"`
	Error  string     `json:"error"`
}

// ValidateURL rejects anything that is not plain http or https before any
// network call is made.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme %q: only http and https are allowed", u.Scheme)
	}
	return nil
}

// Fetch submits a crawl for rawURL and drives it to a terminal state.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]Page, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	job, err := c.submit(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if job.State.Terminal() {
		crawlOutcomes.WithLabelValues(string(job.State)).Inc()
		return job.Pages, nil
	}

	return c.poll(ctx, job)
}

// submit starts a crawl job. If the service answers with inline page data
// the job completes synchronously.
func (c *Client) submit(ctx context.Context, rawURL string) (*Job, error) {
	body := map[string]any{
		"url":   rawURL,
		"limit": c.pageLimit,
		"scrapeOptions": map[string]any{
			"formats": []string{"markdown"},
		},
	}
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal crawl request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/crawl", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create crawl request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to submit crawl: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("crawl submission returned status %d: %s", resp.StatusCode, string(b))
	}

	var submitted submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&submitted); err != nil {
		return nil, fmt.Errorf("failed to parse crawl submission response: %w", err)
	}

	if len(submitted.Data) > 0 {
		return &Job{ID: submitted.ID, State: StateCompleted, Pages: toPages(submitted.Data)}, nil
	}
	if submitted.ID == "" {
		return nil, ErrNoJobID
	}
	return &Job{ID: submitted.ID, State: StateSubmitted}, nil
}

// poll checks job status on a fixed interval until a terminal state or the
// attempt budget is exhausted. A failed status check counts as a transient
// miss and consumes one attempt.
func (c *Client) poll(ctx context.Context, job *Job) ([]Page, error) {
	for attempt := 0; attempt < c.maxPolls; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}

		status, err := c.status(ctx, job.ID)
		if err != nil {
			c.logger.Printf("crawl %s status check failed (attempt %d/%d): %v", job.ID, attempt+1, c.maxPolls, err)
			job.State = StateRunning
			continue
		}

		switch status.Status {
		case "completed":
			job.State = StateCompleted
			job.Pages = toPages(status.Data)
			crawlOutcomes.WithLabelValues(string(StateCompleted)).Inc()
			return job.Pages, nil
		case "failed":
			job.State = StateFailed
			crawlOutcomes.WithLabelValues(string(StateFailed)).Inc()
			return nil, fmt.Errorf("crawl job failed: %s", status.Error)
		default:
			job.State = StateRunning
		}
	}

	job.State = StateTimedOut
	crawlOutcomes.WithLabelValues(string(StateTimedOut)).Inc()
	return nil, fmt.Errorf("crawl job timed out after %d attempts", c.maxPolls)
}

func (c *Client) status(ctx context.Context, id string) (*statusResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/crawl/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create status request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to check status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("status check returned %d", resp.StatusCode)
	}

	var status statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to parse status response: %w", err)
	}
	return &status, nil
}

func toPages(data []pageData) []Page {
	pages := make([]Page, 0, len(data))
	for _, d := range data {
		pages = append(pages, Page{
			SourceURL: d.Metadata.SourceURL,
			Title:     d.Metadata.Title,
			Markdown:  d.Markdown,
		})
	}
	return pages
}
