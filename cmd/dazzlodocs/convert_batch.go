package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"golang.org/x/sync/errgroup"

	"github.com/Neelp4258/DazzloDocs"
)

// fileConverter is the part of *dazzlodocs.Converter the batch needs.
type fileConverter interface {
	ConvertFile(ctx context.Context, inputPath, outputPath string, opts *dazzlodocs.Options) (*dazzlodocs.Result, error)
}

// Compile-time interface implementation check.
var _ fileConverter = (*dazzlodocs.Converter)(nil)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Pages      int
	Size       int64
	Err        error
	Duration   time.Duration
}

// convertBatch converts files concurrently, at most workers at a time.
// Every file gets a result; one failure does not stop the others.
func convertBatch(ctx context.Context, conv fileConverter, files []FileToConvert, opts *dazzlodocs.Options, workers int, exactPages bool) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]ConversionResult, len(files))

	var g errgroup.Group
	g.SetLimit(max(1, min(workers, len(files))))

	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = ConversionResult{InputPath: f.InputPath, OutputPath: f.OutputPath, Err: err}
				return nil
			}
			results[i] = convertFile(ctx, conv, f, opts, exactPages)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// convertFile converts a single file and returns the result.
func convertFile(ctx context.Context, conv fileConverter, f FileToConvert, opts *dazzlodocs.Options, exactPages bool) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	res, err := conv.ConvertFile(ctx, f.InputPath, f.OutputPath, opts)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	result.Pages = res.Pages
	result.Size = res.Size
	if exactPages {
		if n, err := countPages(f.OutputPath); err == nil {
			result.Pages = n
		}
	}

	result.Duration = time.Since(start)
	return result
}

// countPages counts pages with a full PDF parser, where PageCount only scans
// for the page tree's /Count entry.
func countPages(path string) (int, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- output path written by this run
	if err != nil {
		return 0, err
	}
	n, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return 0, fmt.Errorf("counting pages in %s: %w", path, err)
	}
	return n, nil
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Pages     int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
			summary.Pages += r.Pages
		}
	}
	return summary
}

// firstError returns the error of the first failed conversion, in input order.
func firstError(results []ConversionResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

// printResults outputs conversion results and returns the failure count.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%s, %s, %v)\n", r.InputPath, r.OutputPath,
				pluralPages(r.Pages), humanize.Bytes(uint64(r.Size)), r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s (%s)\n", r.OutputPath, pluralPages(r.Pages))
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed, %s\n", summary.Succeeded, summary.Failed, pluralPages(summary.Pages))
	}

	return summary.Failed
}

func pluralPages(n int) string {
	if n == 1 {
		return "1 page"
	}
	return fmt.Sprintf("%d pages", n)
}
