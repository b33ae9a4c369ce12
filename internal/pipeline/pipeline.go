// Package pipeline composes the scan → parse → stamp → link stages into the
// per-page workflow: every session that parses gets a calendar link, every
// session that does not is logged and skipped, and nothing aborts the batch.
package pipeline

import (
	"context"

	"schedlink/internal/config"
	"schedlink/internal/fetch"
	"schedlink/internal/gcal"
	appLog "schedlink/internal/log"
	"schedlink/internal/model"
	"schedlink/internal/parse"
	"schedlink/internal/scan"
	"schedlink/internal/stamp"
)

// Options controls how extracted day blocks are turned into links.
type Options struct {
	// OffsetHours is the fixed wall-clock-to-UTC offset.
	OffsetHours int
	// PageURL is embedded in each link's details field.
	PageURL string
}

// Build converts extracted day blocks into session links. A day block whose
// date text fails to parse loses all its sessions; a session whose time text
// fails to parse loses only itself. Both cases are logged as skips.
func Build(blocks []model.DayBlock, opts Options) []model.SessionLink {
	var links []model.SessionLink

	for _, block := range blocks {
		date, err := parse.DateText(block.DateText)
		if err != nil {
			appLog.Warn("skipping day block", "date_text", block.DateText, "reason", err)
			continue
		}

		for _, sess := range block.Sessions {
			tr, err := parse.TimeRangeText(sess.TimeText)
			if err != nil {
				appLog.Warn("skipping session", "title", sess.Title, "time_text", sess.TimeText, "reason", err)
				continue
			}

			startStamp := stamp.UTCStamp(date, tr.Start, opts.OffsetHours)
			endStamp := stamp.UTCStamp(date, tr.End, opts.OffsetHours)

			links = append(links, model.SessionLink{
				Title:      sess.Title,
				Venue:      sess.Venue,
				Date:       date,
				Times:      tr,
				StartStamp: startStamp,
				EndStamp:   endStamp,
				URL: gcal.Link(gcal.Event{
					Title:      sess.Title,
					StartStamp: startStamp,
					EndStamp:   endStamp,
					PageURL:    opts.PageURL,
					Venue:      sess.Venue,
				}),
			})
		}
	}

	return links
}

// Runner drives the full pipeline across all configured pages.
type Runner struct {
	cfg     *config.Config
	fetcher *fetch.Fetcher
}

func NewRunner(cfg *config.Config) *Runner {
	return &Runner{
		cfg:     cfg,
		fetcher: fetch.New(cfg.CacheDir),
	}
}

// Run scans every configured page and returns the combined session links.
// Per-page failures (fetch errors, scan errors) are logged and skipped.
func (r *Runner) Run(ctx context.Context) []model.SessionLink {
	sel := r.selectors()
	var all []model.SessionLink

	for _, page := range r.cfg.Pages {
		src, err := r.sourceFor(ctx, page, sel)
		if err != nil {
			appLog.Error("page skipped", err, "id", page.ID, "url", page.URL)
			continue
		}

		blocks, err := src.Blocks(ctx)
		if err != nil {
			appLog.Error("scan failed, page skipped", err, "id", page.ID)
			continue
		}

		links := Build(blocks, Options{
			OffsetHours: r.cfg.OffsetHours,
			PageURL:     page.URL,
		})
		appLog.Info("page scanned", "id", page.ID, "day_blocks", len(blocks), "links", len(links))
		all = append(all, links...)
	}

	return all
}

func (r *Runner) sourceFor(ctx context.Context, page config.PageConfig, sel scan.Selectors) (scan.Source, error) {
	if page.Live {
		return &scan.ChromiumSource{URL: page.URL, Sel: sel}, nil
	}
	res, err := r.fetcher.FetchOne(ctx, fetch.Page{ID: page.ID, URL: page.URL})
	if err != nil {
		return nil, err
	}
	return scan.NewHTMLSource(res.Body, sel), nil
}

// selectors overlays configured class names onto the defaults.
func (r *Runner) selectors() scan.Selectors {
	sel := scan.DefaultSelectors()
	c := r.cfg.Selectors
	if c.Day != "" {
		sel.Day = c.Day
	}
	if c.Date != "" {
		sel.Date = c.Date
	}
	if c.Session != "" {
		sel.Session = c.Session
	}
	if c.Title != "" {
		sel.Title = c.Title
	}
	if c.Time != "" {
		sel.Time = c.Time
	}
	if c.Venue != "" {
		sel.Venue = c.Venue
	}
	return sel
}
