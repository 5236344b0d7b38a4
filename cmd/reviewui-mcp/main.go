package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/use-agent/reviewui/client"
	"github.com/use-agent/reviewui/config"
	"github.com/use-agent/reviewui/logging"
	"github.com/use-agent/reviewui/models"
	"github.com/use-agent/reviewui/render"
	"github.com/use-agent/reviewui/ui"
)

func main() {
	cfg := config.Load()
	// stdout carries the MCP protocol; logs go to stderr.
	logging.Init(cfg.Log, os.Stderr)

	cl := client.New(cfg.Backend.BaseURL, client.WithTimeout(cfg.Backend.Timeout))
	page := ui.NewPage()
	page.SetValue(ui.WebsiteSelect, cfg.UI.DefaultWebsite)
	page.SetValue(ui.MaxReviews, cfg.UI.DefaultMaxReviews)
	ctrl := ui.NewController(cl, page, ui.Options{
		AllowOverlappingSubmits: cfg.UI.AllowOverlappingSubmits,
	})

	s := server.NewMCPServer(
		"reviewui",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	scrapeTool := mcp.NewTool("scrape_reviews",
		mcp.WithDescription("Ask the review scraping backend for the reviews of a product page and return them as a Markdown table. Replaces the previously scraped reviews."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Absolute URL of the product page"),
		),
		mcp.WithString("website",
			mcp.Description(fmt.Sprintf("Website the product belongs to (default: %q)", cfg.UI.DefaultWebsite)),
			mcp.Enum(cfg.UI.Websites...),
		),
		mcp.WithString("max_reviews",
			mcp.Description(fmt.Sprintf("Maximum number of reviews to scrape (default: %s)", cfg.UI.DefaultMaxReviews)),
		),
	)
	s.AddTool(scrapeTool, handleScrapeReviews(ctrl, cfg.UI))

	exportTool := mcp.NewTool("export_reviews",
		mcp.WithDescription("Download the spreadsheet of stored reviews for a website and save it as <website>_reviews.xlsx."),
		mcp.WithString("website",
			mcp.Description(fmt.Sprintf("Website whose reviews to export (default: %q)", cfg.UI.DefaultWebsite)),
			mcp.Enum(cfg.UI.Websites...),
		),
		mcp.WithString("output_dir",
			mcp.Description(fmt.Sprintf("Directory to save the spreadsheet in (default: %q)", cfg.UI.DownloadDir)),
		),
	)
	s.AddTool(exportTool, handleExportReviews(ctrl, cfg.UI))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func handleScrapeReviews(ctrl *ui.Controller, defaults config.UIConfig) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}
		website := request.GetString("website", defaults.DefaultWebsite)
		maxReviews := request.GetString("max_reviews", defaults.DefaultMaxReviews)

		if err := ctrl.SubmitScrape(ctx, url, website, maxReviews); err != nil {
			return mcp.NewToolResultError(bannerText(ctrl, err)), nil
		}

		md, err := render.Markdown(ctrl.Reviews())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to render reviews: %v", err)), nil
		}
		label := ctrl.Page().Get(ui.ReviewCount).Text
		return mcp.NewToolResultText(fmt.Sprintf("Reviews %s from %s\n\n%s", label, url, md)), nil
	}
}

func handleExportReviews(ctrl *ui.Controller, defaults config.UIConfig) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		website := request.GetString("website", defaults.DefaultWebsite)
		dir := request.GetString("output_dir", defaults.DownloadDir)

		abs, err := filepath.Abs(dir)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid output_dir: %v", err)), nil
		}
		dl := ui.DirDownloader{Dir: abs}

		if err := ctrl.ExportTo(ctx, website, dl); err != nil {
			return mcp.NewToolResultError(bannerText(ctrl, err)), nil
		}
		return mcp.NewToolResultText("Saved " + dl.Path(website+"_reviews.xlsx")), nil
	}
}

// bannerText returns the message a user would see for err.
func bannerText(ctrl *ui.Controller, err error) string {
	var ue *models.UIError
	if errors.As(err, &ue) {
		switch ue.Code {
		case models.ErrCodeSubmitInFlight:
			return "another scrape is still in progress; try again when it finishes"
		case models.ErrCodeSuperseded:
			return "a newer scrape replaced this one"
		}
		if ue.Message != "" {
			return ue.Message
		}
	}
	if msg := ctrl.Page().Get(ui.ErrorMessage).Text; msg != "" {
		return msg
	}
	return err.Error()
}
