// Command feedctl prints the merged image feed the way the site shows it and
// hashes admin passwords for the config.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"bio_showcase/internal/config"
	"bio_showcase/internal/contentapi"
	"bio_showcase/internal/domain/models"
	"bio_showcase/internal/feed"
	"bio_showcase/internal/services/auth"

	"github.com/fatih/color"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("feedctl", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		baseURL  = fs.String("url", "http://localhost:8080", "content API base url")
		category = fs.String("category", "all", "category or bucket to show")
		search   = fs.String("q", "", "search query")
		limit    = fs.Int("limit", feed.DefaultPageSize, "entries to print, 0 for all")
		timeout  = fs.Duration("timeout", 5*time.Second, "request timeout")
		chips    = fs.Bool("categories", false, "print category chips instead of entries")
		password = fs.String("hash-password", "", "print a bcrypt hash for the admin config and exit")
		verbose  = fs.Bool("v", false, "log fetch errors")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *password != "" {
		hash, err := auth.HashPassword(*password)
		if err != nil {
			color.New(color.FgRed).Fprintln(stderr, err)
			return 1
		}
		fmt.Fprintln(stdout, string(hash))
		return 0
	}

	level := slog.LevelError + 1
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	client := contentapi.New(log, config.ContentAPIConfig{
		BaseURL:      *baseURL,
		GalleryPath:  "/api/v1/gallery",
		AwardsPath:   "/api/v1/awards",
		ServicesPath: "/api/v1/services",
		AboutPath:    "/api/v1/about",
		Timeout:      *timeout,
	}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	entries := feed.NewNormalizer().Normalize(client.FetchAll(ctx, contentapi.GalleryQuery{}))

	if *chips {
		printChips(stdout, feed.Categories(entries))
		return 0
	}

	visible := feed.Filter(entries, *category, *search)
	shown := visible
	if *limit > 0 && len(shown) > *limit {
		shown = shown[:*limit]
	}

	printEntries(stdout, shown)

	summary := color.New(color.Faint)
	summary.Fprintf(stdout, "%d of %d shown (%d in feed)\n", len(shown), len(visible), len(entries))
	if len(visible) == 0 {
		color.New(color.FgYellow).Fprintln(stdout, "nothing matches")
	}

	return 0
}

func printEntries(w io.Writer, entries []models.MediaEntry) {
	id := color.New(color.FgCyan)
	title := color.New(color.Bold)
	meta := color.New(color.Faint)

	for i, e := range entries {
		fmt.Fprintf(w, "%3d ", i+1)
		id.Fprintf(w, "%-28s ", e.ID)
		title.Fprintf(w, "%s", e.Title)
		meta.Fprintf(w, "  [%s/%s] %s", e.SourceType, e.Category, e.Timestamp.Format("2006-01-02"))
		if fit, ok := feed.FitForEntry(e); ok {
			meta.Fprintf(w, " %s", fit.Orientation)
		}
		fmt.Fprintln(w)
		meta.Fprintf(w, "    %s\n", e.ImageURL)
	}
}

func printChips(w io.Writer, chips []feed.CategoryCount) {
	coarse := color.New(color.FgGreen, color.Bold)
	fine := color.New(color.FgGreen)

	for _, chip := range chips {
		if chip.Coarse {
			coarse.Fprintf(w, "%-16s %d\n", chip.Category, chip.Count)
			continue
		}
		fine.Fprintf(w, "  %-14s %d\n", chip.Category, chip.Count)
	}
}
