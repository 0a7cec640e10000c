package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/kherring/docbrief/markdown"
	"github.com/kherring/docbrief/notion"
)

type specification struct {
	NotionToken    string `envconfig:"NOTION_TOKEN"`
	NotionDatabase string `envconfig:"NOTION_DATABASE_ID"`
}

var spec specification

func main() {
	err := envconfig.Process("docbrief", &spec)
	if err != nil {
		log.Fatal("error reading environment variables:", err)
	}

	title := flag.String("title", "", "page title (default: the first heading, then the file name)")
	sourceURL := flag.String("url", "", "value for the page's URL property")
	flag.Parse()

	if spec.NotionToken == "" || spec.NotionDatabase == "" {
		log.Fatal("NOTION_TOKEN and NOTION_DATABASE_ID must be set")
	}
	if flag.NArg() != 1 {
		log.Fatal("usage: publish [-title title] [-url url] <file.md | ->")
	}

	name := flag.Arg(0)
	content, err := readContent(name)
	if err != nil {
		log.Fatal("error reading markdown:", err)
	}

	client := notion.New(spec.NotionToken, spec.NotionDatabase)
	pageID, err := client.Publish(context.Background(), pageTitle(*title, content, name), *sourceURL, content)
	if err != nil {
		log.Fatal("error publishing page:", err)
	}
	fmt.Println(pageID)
}

func readContent(name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(name)
	return string(data), err
}

// pageTitle falls back from the explicit flag to the content's first
// heading to the file name.
func pageTitle(override string, content string, fileName string) string {
	if override != "" {
		return override
	}
	if title, ok := markdown.Title(content); ok {
		return title
	}
	if fileName == "-" {
		return "Untitled"
	}
	base := filepath.Base(fileName)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
