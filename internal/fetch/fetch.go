// Package fetch retrieves schedule pages over HTTP with conditional requests
// and a disk-backed cache, so repeated scans of an unchanged page cost one
// 304 round trip.
package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	appLog "schedlink/internal/log"
)

// Page identifies a single configured schedule page.
type Page struct {
	// ID is an internal identifier used for de-dup and logging.
	ID string
	// URL is the schedule page address.
	URL string
}

// Result is the outcome of fetching a single page.
type Result struct {
	Page      Page
	Body      []byte // HTML payload, freshly fetched or from cache
	FromCache bool   // true when the cached body was reused (304 or network failure)
}

// cacheMeta holds HTTP cache metadata for a single page URL.
type cacheMeta struct {
	URL          string    `json:"url"`
	ETag         string    `json:"etag,omitempty"`
	LastModified string    `json:"last_modified,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Fetcher fetches schedule pages honoring ETag / Last-Modified, with a disk
// cache keyed by a hash of the URL.
type Fetcher struct {
	client   *http.Client
	cacheDir string
}

// New creates a Fetcher storing cache entries under cacheDir
// (e.g. "/var/lib/schedlink/page-cache").
func New(cacheDir string) *Fetcher {
	if cacheDir == "" {
		// Relative fallback so development runs without root permissions.
		cacheDir = "./var/page-cache"
	}
	return &Fetcher{
		client:   &http.Client{Timeout: 15 * time.Second},
		cacheDir: cacheDir,
	}
}

// FetchAll fetches every page and returns the successful results. Per-page
// failures are logged and collected; one bad page never aborts the batch.
func (f *Fetcher) FetchAll(ctx context.Context, pages []Page) ([]Result, []error) {
	results := make([]Result, 0, len(pages))
	var errs []error

	for _, p := range pages {
		res, err := f.FetchOne(ctx, p)
		if err != nil {
			errs = append(errs, err)
			appLog.Error("page fetch failed", err, "id", p.ID, "url", redactURL(p.URL))
			continue
		}
		results = append(results, res)
	}
	return results, errs
}

// FetchOne fetches a single page, sending conditional headers from the cache
// and falling back to the cached body on network or server failure.
func (f *Fetcher) FetchOne(ctx context.Context, p Page) (Result, error) {
	if p.URL == "" {
		return Result{}, errors.New("page URL is empty")
	}

	dir := filepath.Join(f.cacheDir, urlKey(p.URL))
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return Result{}, err
	}

	meta := loadMeta(dir)
	cached, _ := os.ReadFile(filepath.Join(dir, "body.html"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return Result{}, err
	}
	if meta.ETag != "" {
		req.Header.Set("If-None-Match", meta.ETag)
	}
	if meta.LastModified != "" {
		req.Header.Set("If-Modified-Since", meta.LastModified)
	}

	appLog.Debug("page fetch start", "id", p.ID, "url", redactURL(p.URL))

	resp, err := f.client.Do(req)
	if err != nil {
		if len(cached) > 0 {
			appLog.Warn("page fetch network error, using cached body", "id", p.ID, "url", redactURL(p.URL), "err", err)
			return Result{Page: p, Body: cached, FromCache: true}, nil
		}
		return Result{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return Result{}, readErr
		}
		newMeta := cacheMeta{
			URL:          p.URL,
			ETag:         resp.Header.Get("ETag"),
			LastModified: resp.Header.Get("Last-Modified"),
		}
		if err := saveCache(dir, newMeta, body); err != nil {
			// The fresh body is still usable even if caching it failed.
			appLog.Error("page cache save failed", err, "id", p.ID, "url", redactURL(p.URL))
		}
		appLog.Info("page fetch success", "id", p.ID, "url", redactURL(p.URL), "bytes", len(body))
		return Result{Page: p, Body: body}, nil

	case http.StatusNotModified:
		if len(cached) == 0 {
			return Result{}, errors.New("received 304 Not Modified but no cached body available")
		}
		appLog.Info("page not modified, using cache", "id", p.ID, "url", redactURL(p.URL))
		return Result{Page: p, Body: cached, FromCache: true}, nil

	default:
		if len(cached) > 0 {
			appLog.Warn("page fetch non-OK, using cached body", "id", p.ID, "url", redactURL(p.URL), "status", resp.StatusCode)
			return Result{Page: p, Body: cached, FromCache: true}, nil
		}
		return Result{}, errors.New(resp.Status)
	}
}

// urlKey derives a stable cache directory name from a URL.
func urlKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:8])
}

func loadMeta(dir string) cacheMeta {
	var meta cacheMeta
	data, err := os.ReadFile(filepath.Join(dir, "meta.json"))
	if err != nil {
		return meta
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return cacheMeta{}
	}
	return meta
}

func saveCache(dir string, meta cacheMeta, body []byte) error {
	// Body first so meta never points at a missing body.
	if err := os.WriteFile(filepath.Join(dir, "body.html"), body, 0o600); err != nil {
		return err
	}
	meta.UpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(&meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "meta.json"), data, 0o600)
}

// redactURL hides path and query of a page URL for logging.
func redactURL(u string) string {
	const redactedSuffix = "/...(redacted)"

	i := -1
	for idx := 0; idx+2 < len(u); idx++ {
		if u[idx:idx+3] == "://" {
			i = idx + 3
			break
		}
	}
	if i == -1 {
		return "http://...(redacted)"
	}
	j := i
	for j < len(u) && u[j] != '/' {
		j++
	}
	return u[:j] + redactedSuffix
}
