package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/kherring/docbrief/llm"
	"github.com/kherring/docbrief/markdown"
	"github.com/kherring/docbrief/notion"
)

type specification struct {
	OpenAIKey      string `envconfig:"OPENAI_API_KEY"`
	NotionToken    string `envconfig:"NOTION_TOKEN"`
	NotionDatabase string `envconfig:"NOTION_DATABASE_ID"`
	Model          string `default:"gpt-4o-mini"`
	DbFile         string `default:"summaries.db"`
}

var spec specification

type publishFunc func(ctx context.Context, title string, sourceURL string, content string) (string, error)

// pipeline carries everything processURLs needs for one run.
type pipeline struct {
	summarize summarizeFunc
	repo      Repo
	publish   publishFunc // nil when Notion publishing is off
	outFile   string
	model     string
	section   string
	force     bool
}

type runStats struct {
	processed int
	cached    int
	errors    int
	published int
	tokensIn  int
	tokensOut int
}

func main() {
	err := envconfig.Process("docbrief", &spec)
	if err != nil {
		log.Fatal("error reading environment variables:", err)
	}

	outFile := flag.String("o", "summaries.txt", "file the summary records are appended to")
	modelFlag := flag.String("model", "", "model used for summaries (overrides the environment)")
	dbFlag := flag.String("db", "", "path to the summary cache database (overrides the environment)")
	fetchMode := flag.Bool("fetch", false, "fetch each document locally and attach the bytes to the model request")
	extractMode := flag.Bool("extract", false, "convert fetched HTML to markdown locally instead of calling a model")
	force := flag.Bool("force", false, "summarize again even when the cache has an entry")
	noNotion := flag.Bool("no-notion", false, "skip Notion publishing")
	section := flag.String("section", "", "publish only the named section of each summary")
	listCount := flag.Int("list", 0, "print the most recent cached summaries and exit")
	flag.Parse()

	if *modelFlag != "" {
		spec.Model = *modelFlag
	}
	if *dbFlag != "" {
		spec.DbFile = *dbFlag
	}
	if *fetchMode && *extractMode {
		log.Fatal("-fetch and -extract are mutually exclusive")
	}

	repo, err := NewRepo(spec.DbFile)
	if err != nil {
		log.Fatal("error initializing database interface:", err)
	}
	defer repo.Close()

	ctx := context.Background()

	if *listCount > 0 {
		if err := listRecent(ctx, repo, *listCount); err != nil {
			log.Fatal("error listing summaries:", err)
		}
		return
	}

	urls := flag.Args()
	if len(urls) == 0 {
		log.Fatal("no URLs to summarize")
	}

	summarize, err := newPipelineSummarizer(spec, *fetchMode, *extractMode)
	if err != nil {
		log.Fatal("error initializing summarizer:", err)
	}

	var publish publishFunc
	if !*noNotion && spec.NotionToken != "" && spec.NotionDatabase != "" {
		client := notion.New(spec.NotionToken, spec.NotionDatabase)
		publish = client.Publish
	}

	model := spec.Model
	if *extractMode {
		model = ""
	}

	stats, err := processURLs(ctx, urls, pipeline{
		summarize: summarize,
		repo:      repo,
		publish:   publish,
		outFile:   *outFile,
		model:     model,
		section:   *section,
		force:     *force,
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\nRun summary:\n")
	fmt.Printf("  Processed: %d\n", stats.processed)
	fmt.Printf("  From cache: %d\n", stats.cached)
	fmt.Printf("  Errors: %d\n", stats.errors)
	if publish != nil {
		fmt.Printf("  Published: %d\n", stats.published)
	}
	if stats.tokensIn > 0 || stats.tokensOut > 0 {
		fmt.Printf("  Model tokens: %d in, %d out\n", stats.tokensIn, stats.tokensOut)
	}

	if abs, err := filepath.Abs(*outFile); err == nil {
		fmt.Printf("\nSaved summaries to: %s\n", abs)
	}
}

func processURLs(ctx context.Context, urls []string, p pipeline) (runStats, error) {
	var stats runStats
	total := len(urls)

	for i, u := range urls {
		fmt.Printf("[%d/%d] Summarizing: %s\n", i+1, total, u)
		stats.processed++

		var summary, title string
		cached := false
		if !p.force {
			if s, ok := p.repo.Get(ctx, u); ok {
				summary, title = s.Summary, s.Title
				cached = true
				stats.cached++
				fmt.Printf("  ✓ Cache hit\n")
			}
		}

		if !cached {
			var usage llm.Usage
			text, err := p.summarize(ctx, u, &usage)
			if err != nil {
				text = errorSummary(u, err)
				fmt.Printf("  ✗ Failed: %v\n", err)
			}
			summary = text

			if usage != (llm.Usage{}) {
				stats.tokensIn += usage.InputTokens
				stats.tokensOut += usage.OutputTokens
				if err := p.repo.RecordUsage(ctx, u, p.model, usage); err != nil {
					log.Printf("error recording usage for %s: %v", u, err)
				}
			}
		}

		if err := appendRecord(p.outFile, u, summary); err != nil {
			return stats, fmt.Errorf("failed to write summary for %s: %w", u, err)
		}

		if isErrorSummary(summary) {
			stats.errors++
			continue
		}

		if title == "" {
			title = pageTitle(summary, u)
		}

		if !cached {
			if err := p.repo.Insert(ctx, Summary{Url: u, Title: title, Summary: summary, Model: p.model}); err != nil {
				log.Printf("error caching summary for %s: %v", u, err)
			}
		}

		if p.publish != nil {
			content := summary
			if p.section != "" {
				if body, ok := markdown.Section(summary, p.section); ok {
					content = body
				}
			}
			pageID, err := p.publish(ctx, title, u, content)
			if err != nil {
				log.Printf("error publishing %s: %v", u, err)
				continue
			}
			stats.published++
			fmt.Printf("  ✓ Published: %s\n", pageID)
		}
	}

	return stats, nil
}

var recordSeparator = strings.Repeat("=", 80)

// appendRecord writes one summary record to the output file, creating the
// parent directory on first use.
func appendRecord(outFile string, url string, summary string) error {
	if dir := filepath.Dir(outFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(outFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "URL: %s\nSummary:\n%s\n%s\n\n", url, summary, recordSeparator)
	return err
}

// pageTitle derives the destination page title: the summary's first heading
// when it has one, then the last url path segment, then the url itself.
func pageTitle(summary string, rawURL string) string {
	if title, ok := markdown.Title(summary); ok {
		return title
	}
	if parsed, err := url.Parse(rawURL); err == nil {
		if base := path.Base(parsed.Path); base != "" && base != "/" && base != "." {
			return base
		}
	}
	return rawURL
}

func listRecent(ctx context.Context, repo Repo, count int) error {
	summaries, err := repo.Recent(ctx, count)
	if err != nil {
		return err
	}
	for _, s := range summaries {
		if s.Model != "" {
			fmt.Printf("%s\n  %s (%s)\n", s.Url, s.Title, s.Model)
		} else {
			fmt.Printf("%s\n  %s\n", s.Url, s.Title)
		}
	}
	return nil
}
