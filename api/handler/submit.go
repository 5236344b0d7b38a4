package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/reviewui/session"
	"github.com/use-agent/reviewui/ui"
)

// scrapeForm carries the fields of the #scrapeForm element.
type scrapeForm struct {
	ProductURL string `form:"productUrl"`
	Website    string `form:"websiteSelect"`
	MaxReviews string `form:"maxReviews"`
}

// Submit returns a handler for POST /ui/scrape.
//
// Flow:
//  1. Copy the posted form values into the session page.
//  2. Dispatch the form's submit event and wait for it to settle.
//  3. Re-render the page.
//
// The scrape itself is detached from the HTTP request: if the browser goes
// away the result still lands on the session page.
func Submit(store *session.Store, opts PageOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c, store, opts)

		var form scrapeForm
		// Missing fields stay empty and fail URL validation downstream.
		_ = c.ShouldBind(&form)

		sess.Page.SetValue(ui.ProductURL, form.ProductURL)
		sess.Page.SetValue(ui.WebsiteSelect, form.Website)
		sess.Page.SetValue(ui.MaxReviews, form.MaxReviews)

		task := sess.Dispatcher.Dispatch(context.WithoutCancel(c.Request.Context()), ui.ScrapeForm, ui.EventSubmit)
		err := task.Wait(c.Request.Context())
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			slog.Info("client left before scrape settled", "session", sess.ID)
			return
		}

		renderPage(c, statusFor(err), sess, opts)
	}
}
