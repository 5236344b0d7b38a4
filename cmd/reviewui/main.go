package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/use-agent/reviewui/client"
	"github.com/use-agent/reviewui/config"
	"github.com/use-agent/reviewui/logging"
	"github.com/use-agent/reviewui/models"
	"github.com/use-agent/reviewui/render"
	"github.com/use-agent/reviewui/ui"
)

func main() {
	cfg := config.Load()

	productURL := flag.String("url", "", "Product page URL to scrape reviews from")
	website := flag.String("website", cfg.UI.DefaultWebsite, "Website the product belongs to")
	maxReviews := flag.String("max", cfg.UI.DefaultMaxReviews, "Maximum number of reviews to scrape")
	export := flag.Bool("export", false, "Download the spreadsheet of stored reviews for -website")
	outDir := flag.String("out", cfg.UI.DownloadDir, "Directory receiving exported spreadsheets")
	backend := flag.String("backend", cfg.Backend.BaseURL, "Scraping backend base URL")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if cfg.Log.Format == "json" && os.Getenv("REVIEWUI_LOG_FORMAT") == "" {
		cfg.Log.Format = "text"
	}
	logging.Init(cfg.Log, os.Stderr)

	if *productURL == "" && !*export {
		fmt.Fprintln(os.Stderr, "nothing to do: pass -url to scrape and/or -export to download")
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cl := client.New(*backend, client.WithTimeout(cfg.Backend.Timeout))
	page := ui.NewPage()
	dl := ui.DirDownloader{Dir: *outDir}
	ctrl := ui.NewController(cl, page, ui.Options{Downloader: dl})
	d := ui.NewDispatcher()
	ctrl.Bind(d)

	page.SetValue(ui.WebsiteSelect, *website)
	page.SetValue(ui.MaxReviews, *maxReviews)
	page.SetValue(ui.ProductURL, *productURL)

	failed := false

	if *productURL != "" {
		err := d.Dispatch(ctx, ui.ScrapeForm, ui.EventSubmit).Wait(ctx)
		if err != nil {
			reportError(os.Stderr, page, err)
			failed = true
		} else if err := printResults(os.Stdout, ctrl); err != nil {
			fmt.Fprintf(os.Stderr, "render results: %v\n", err)
			failed = true
		}
	}

	if *export && !failed {
		if err := d.Dispatch(ctx, ui.ExportButton, ui.EventClick).Wait(ctx); err != nil {
			reportError(os.Stderr, page, err)
			failed = true
		} else {
			fmt.Fprintf(os.Stdout, "saved %s\n", dl.Path(*website+"_reviews.xlsx"))
		}
	}

	if failed {
		os.Exit(1)
	}
}

// printResults writes the reviews table and the count label.
func printResults(w io.Writer, ctrl *ui.Controller) error {
	md, err := render.Markdown(ctrl.Reviews())
	if err != nil {
		return err
	}
	fmt.Fprintln(w, md)
	fmt.Fprintln(w, ctrl.Page().Get(ui.ReviewCount).Text)
	return nil
}

// reportError prints the banner text when the page shows one, and the raw
// error otherwise.
func reportError(w io.Writer, page *ui.Page, err error) {
	var ue *models.UIError
	if errors.As(err, &ue) && page.Visible(ui.ErrorBanner) {
		fmt.Fprintf(w, "error: %s\n", page.Get(ui.ErrorMessage).Text)
		return
	}
	fmt.Fprintf(w, "error: %v\n", err)
}
