package handler

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/reviewui/models"
	"github.com/use-agent/reviewui/session"
	"github.com/use-agent/reviewui/ui"
)

// PageOptions are the settings shared by the page handlers.
type PageOptions struct {
	// CookieName names the session cookie.
	CookieName string

	// Websites populates the site selector.
	Websites []string
}

// PageView is the data passed to the index.html template.
type PageView struct {
	Websites []string

	Website    string
	ProductURL string
	MaxReviews string

	SubmitDisabled bool
	LoadingVisible bool
	ErrorVisible   bool
	ErrorMessage   string
	ResultsVisible bool
	ReviewCount    string

	// ReviewRows is produced by the renderer, which escapes every scraped
	// field. It is the only markup inserted unescaped.
	ReviewRows template.HTML
}

// Index returns a handler for GET /. It renders the caller's page,
// starting a session on first visit.
func Index(store *session.Store, opts PageOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c, store, opts)
		renderPage(c, http.StatusOK, sess, opts)
	}
}

// NewPageView flattens a page snapshot for the template.
func NewPageView(p *ui.Page, websites []string) PageView {
	els := p.Snapshot()
	return PageView{
		Websites:       websites,
		Website:        els[ui.WebsiteSelect].Value,
		ProductURL:     els[ui.ProductURL].Value,
		MaxReviews:     els[ui.MaxReviews].Value,
		SubmitDisabled: els[ui.ScrapeForm].Disabled,
		LoadingVisible: els[ui.Loading].Visible,
		ErrorVisible:   els[ui.ErrorBanner].Visible,
		ErrorMessage:   els[ui.ErrorMessage].Text,
		ResultsVisible: els[ui.ResultsSection].Visible,
		ReviewCount:    els[ui.ReviewCount].Text,
		ReviewRows:     template.HTML(els[ui.ReviewsList].HTML),
	}
}

func renderPage(c *gin.Context, status int, sess *session.Session, opts PageOptions) {
	c.HTML(status, "index.html", NewPageView(sess.Page, opts.Websites))
}

// currentSession resolves the session cookie, creating a session and
// setting the cookie when it is missing or expired.
func currentSession(c *gin.Context, store *session.Store, opts PageOptions) *session.Session {
	id, _ := c.Cookie(opts.CookieName)
	sess, created := store.GetOrCreate(id)
	if created {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(opts.CookieName, sess.ID, 0, "/", "", false, true)
	}
	return sess
}

// statusFor maps a controller outcome to the HTTP status of the re-rendered
// page.
func statusFor(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var ue *models.UIError
	if !errors.As(err, &ue) {
		return http.StatusInternalServerError
	}
	switch ue.Code {
	case models.ErrCodeInvalidURL:
		return http.StatusBadRequest // 400
	case models.ErrCodeSubmitInFlight, models.ErrCodeSuperseded:
		return http.StatusConflict // 409
	default:
		return http.StatusBadGateway // 502
	}
}
