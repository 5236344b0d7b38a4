package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/use-agent/reviewui/metrics"
	"github.com/use-agent/reviewui/models"
	"github.com/use-agent/reviewui/render"
)

// Backend is the scraping service the controller talks to.
// *client.Client satisfies it.
type Backend interface {
	Scrape(ctx context.Context, req *models.ScrapeRequest) (*models.ScrapeResponse, error)
	Export(ctx context.Context, req *models.ExportRequest) (*models.Blob, error)
}

// Options tune a Controller.
type Options struct {
	// AllowOverlappingSubmits keeps the form enabled while a scrape is in
	// flight. Results are then applied only for the most recently issued
	// submission; older ones are discarded when they settle.
	AllowOverlappingSubmits bool

	// Downloader receives exports triggered through the export button.
	Downloader Downloader

	Metrics *metrics.Metrics
}

// Controller mediates between page events and the backend. It owns the
// reviews currently displayed and renders every change into its Page.
type Controller struct {
	backend      Backend
	page         *Page
	blobs        *BlobStore
	downloader   Downloader
	metrics      *metrics.Metrics
	allowOverlap bool

	mu       sync.Mutex
	reviews  []models.Review
	issued   uint64 // sequence number of the latest submission
	inFlight int
}

// NewController creates a Controller rendering into page.
func NewController(backend Backend, page *Page, opts Options) *Controller {
	return &Controller{
		backend:      backend,
		page:         page,
		blobs:        NewBlobStore(),
		downloader:   opts.Downloader,
		metrics:      opts.Metrics,
		allowOverlap: opts.AllowOverlappingSubmits,
	}
}

// Bind registers the controller's command handlers: form submission and the
// export button. Both read their inputs from the page's form controls.
func (c *Controller) Bind(d *Dispatcher) {
	d.On(ScrapeForm, EventSubmit, func(ctx context.Context) error {
		return c.SubmitScrape(ctx,
			c.page.Value(ProductURL),
			c.page.Value(WebsiteSelect),
			c.page.Value(MaxReviews),
		)
	})
	d.On(ExportButton, EventClick, func(ctx context.Context) error {
		return c.TriggerExport(ctx, c.page.Value(WebsiteSelect))
	})
}

// Page returns the page the controller renders into.
func (c *Controller) Page() *Page {
	return c.page
}

// Reviews returns a copy of the reviews currently displayed.
func (c *Controller) Reviews() []models.Review {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Review(nil), c.reviews...)
}

// State reports whether a submission is in flight.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight > 0 {
		return StateLoading
	}
	return StateIdle
}

// ValidateURL reports whether raw is a well-formed absolute URL.
func ValidateURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return err
	}
	if u.Scheme == "" {
		return fmt.Errorf("url %q has no scheme", raw)
	}
	if u.Host == "" && u.Opaque == "" {
		return fmt.Errorf("url %q has no host", raw)
	}
	if p := u.Port(); p != "" {
		if _, err := strconv.ParseUint(p, 10, 16); err != nil {
			return fmt.Errorf("url %q has an invalid port", raw)
		}
	}
	return nil
}

// SubmitScrape validates rawURL, asks the backend for reviews and renders
// the outcome. The returned error is a *models.UIError whose Message is the
// banner text, or nil on success.
func (c *Controller) SubmitScrape(ctx context.Context, rawURL, website, maxReviews string) error {
	if err := ValidateURL(rawURL); err != nil {
		c.ShowError(models.MsgInvalidURL)
		return c.fail("scrape", models.NewUIError(models.ErrCodeInvalidURL, models.MsgInvalidURL, err))
	}

	seq, ok := c.begin()
	if !ok {
		slog.Debug("submit ignored while a scrape is in flight", "url", rawURL)
		return c.fail("scrape", models.NewUIError(models.ErrCodeSubmitInFlight, "", nil))
	}
	defer c.finish()

	slog.Info("scrape submitted", "url", rawURL, "website", website, "max_reviews", maxReviews, "seq", seq)
	resp, err := c.backend.Scrape(ctx, &models.ScrapeRequest{
		URL:        rawURL,
		Website:    website,
		MaxReviews: maxReviews,
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.issued {
		slog.Debug("discarding superseded scrape result", "seq", seq, "latest", c.issued)
		return c.fail("scrape", models.NewUIError(models.ErrCodeSuperseded, "", err))
	}

	if err != nil {
		msg := models.MsgScrapeFailPrefix + err.Error()
		c.ShowError(msg)
		slog.Warn("scrape failed", "url", rawURL, "error", err)
		return c.fail("scrape", models.NewUIError(models.ErrCodeTransport, msg, err))
	}
	if resp.Error != "" {
		c.ShowError(resp.Error)
		slog.Info("backend rejected scrape", "url", rawURL, "error", resp.Error)
		return c.fail("scrape", models.NewUIError(models.ErrCodeServer, resp.Error,
			&models.BackendError{Message: resp.Error}))
	}

	c.reviews = append([]models.Review(nil), resp.Reviews...)
	c.RenderReviews(c.reviews)
	c.page.SetText(ReviewCount, fmt.Sprintf("(%d reviews)", resp.Count))
	c.page.Show(ResultsSection)

	slog.Info("scrape rendered", "url", rawURL, "count", resp.Count, "rows", len(resp.Reviews))
	c.metrics.IncAction("scrape", "ok")
	return nil
}

// TriggerExport exports the reviews stored for website and hands the
// spreadsheet to the controller's Downloader.
func (c *Controller) TriggerExport(ctx context.Context, website string) error {
	return c.ExportTo(ctx, website, c.downloader)
}

// ExportTo is TriggerExport with an explicit downloader, for front-ends
// that deliver each export differently.
func (c *Controller) ExportTo(ctx context.Context, website string, dl Downloader) error {
	blob, err := c.backend.Export(ctx, &models.ExportRequest{Website: website})
	if err != nil {
		var be *models.BackendError
		if errors.As(err, &be) {
			c.ShowError(be.Message)
			slog.Info("backend rejected export", "website", website, "status", be.StatusCode, "error", be.Message)
			return c.fail("export", models.NewUIError(models.ErrCodeServer, be.Message, err))
		}
		return c.exportError(website, err)
	}

	filename := website + "_reviews.xlsx"
	href := c.blobs.Create(blob)
	defer c.blobs.Revoke(href)

	a := Anchor{Href: href, Download: filename}
	if err := a.Click(ctx, c.blobs, dl); err != nil {
		return c.exportError(website, err)
	}

	slog.Info("export downloaded", "website", website, "file", filename, "bytes", blob.Size())
	c.metrics.AddExportBytes(blob.Size())
	c.metrics.IncAction("export", "ok")
	return nil
}

// RenderReviews replaces the table rows with one row per review.
func (c *Controller) RenderReviews(reviews []models.Review) {
	c.page.ClearChildren(ReviewsList)
	c.page.AppendHTML(ReviewsList, render.Rows(reviews))
	c.metrics.AddReviewsRendered(len(reviews))
}

// ShowError reveals the error banner with message as plain text.
func (c *Controller) ShowError(message string) {
	c.page.Show(ErrorBanner)
	c.page.SetText(ErrorMessage, message)
}

func (c *Controller) exportError(website string, err error) error {
	msg := models.MsgExportFailPrefix + err.Error()
	c.ShowError(msg)
	slog.Warn("export failed", "website", website, "error", err)
	return c.fail("export", models.NewUIError(models.ErrCodeTransport, msg, err))
}

// begin moves to Loading and issues a sequence number. It refuses when a
// submission is already in flight and overlapping is not allowed.
func (c *Controller) begin() (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight > 0 && !c.allowOverlap {
		return 0, false
	}
	c.inFlight++
	c.issued++

	c.page.Show(Loading)
	c.page.Hide(ErrorBanner)
	if !c.allowOverlap {
		c.page.SetDisabled(ScrapeForm, true)
	}
	return c.issued, true
}

// finish leaves Loading once the last in-flight submission has settled.
func (c *Controller) finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight--
	if c.inFlight == 0 {
		c.page.Hide(Loading)
		c.page.SetDisabled(ScrapeForm, false)
	}
}

func (c *Controller) fail(action string, e *models.UIError) error {
	c.metrics.IncAction(action, e.Code)
	return e
}
