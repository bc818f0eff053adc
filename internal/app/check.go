package app

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"github.com/five82/phrasebook/internal/catalog"
	"github.com/five82/phrasebook/internal/phrases"
)

const checkConcurrency = 4

// CheckResult is the outcome of fetching one category.
type CheckResult struct {
	Category catalog.Category
	Count    int
	Err      error
	Skipped  bool
}

// CheckCatalog fetches every category's document in parallel. Results are
// returned in catalog order; individual failures are reported per result.
func CheckCatalog(ctx context.Context, f phrases.Fetcher, cat *catalog.Catalog) []CheckResult {
	results := make([]CheckResult, cat.Len())
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(checkConcurrency)
	for i, c := range cat.Categories() {
		results[i].Category = c
		if !c.HasResource() {
			results[i].Skipped = true
			continue
		}
		g.Go(func() error {
			coll, err := f.FetchCollection(gctx, c.Resource)
			if err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Count = coll.Len()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Check fetches every category from the configured server and writes a
// table to w. It fails if any category could not be fetched.
func Check(ctx context.Context, opts Options, w io.Writer) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}
	log := stderrLogger(cfg.LogLevel)

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	client, err := phrases.NewClient(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return fmt.Errorf("init phrase client: %w", err)
	}

	results := CheckCatalog(ctx, client, cat)
	failed := writeCheck(w, results)
	for _, r := range results {
		if r.Err != nil {
			log.Warn().Err(r.Err).Str("page", r.Category.Path).Str("resource", r.Category.Resource).Msg("category fetch failed")
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d categories failed", failed, len(results))
	}
	return nil
}

func writeCheck(w io.Writer, results []CheckResult) int {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PAGE\tRESOURCE\tRESULT")
	failed := 0
	for _, r := range results {
		var result string
		switch {
		case r.Skipped:
			result = "no resource"
		case r.Err != nil:
			failed++
			result = "error: " + r.Err.Error()
		case r.Count == 1:
			result = "1 phrase"
		default:
			result = fmt.Sprintf("%d phrases", r.Count)
		}
		resource := r.Category.Resource
		if resource == "" {
			resource = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Category.Path, resource, result)
	}
	_ = tw.Flush()
	return failed
}
