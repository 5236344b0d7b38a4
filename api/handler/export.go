package handler

import (
	"context"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/reviewui/models"
	"github.com/use-agent/reviewui/session"
	"github.com/use-agent/reviewui/ui"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Export returns a handler for POST /ui/export.
//
// On success the spreadsheet is streamed back as an attachment named
// <website>_reviews.xlsx. On failure the page is re-rendered with the error
// banner.
func Export(store *session.Store, opts PageOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c, store, opts)

		website := c.PostForm("websiteSelect")
		if website == "" {
			website = sess.Page.Value(ui.WebsiteSelect)
		}
		sess.Page.SetValue(ui.WebsiteSelect, website)

		attach := ui.DownloadFunc(func(_ context.Context, filename string, blob *models.Blob) error {
			contentType := blob.ContentType
			if contentType == "" {
				contentType = xlsxContentType
			}
			c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
			c.Data(http.StatusOK, contentType, blob.Data)
			return nil
		})

		if err := sess.Controller.ExportTo(c.Request.Context(), website, attach); err != nil {
			renderPage(c, statusFor(err), sess, opts)
		}
	}
}
