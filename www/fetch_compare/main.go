package main

import (
	"context"
	"fmt"

	"github.com/kherring/docbrief/www"
)

var urls = [...]string{
	"https://www.berkshirehathaway.com/letters/2024ltr.pdf",
	"https://go.dev/blog/error-handling-and-go",
	//"https://arxiv.org/pdf/1706.03762",
	//"https://www.bis.org/publ/arpdf/ar2024e.pdf",
	//"https://blog.cloudflare.com/how-we-built-pingora/",
}

func FetchTest(fetcher www.FetcherFunc, name string) {
	fmt.Printf("%s ============================\n", name)
	errors := 0
	successes := 0
	for _, url := range urls {
		bytes, finalURL, err := fetcher(context.Background(), url)
		if err != nil {
			fmt.Printf("%s error: %v\n", url, err)
			errors++
		} else {
			fmt.Printf("%s success length: %d final: %s\n", url, len(bytes), finalURL)
			successes++
		}
	}
	fmt.Printf("%s: successes:%d errors:%d\n", name, successes, errors)
}

func main() {
	FetchTest(www.Fetcher, "Fetcher")
	FetchTest(www.FetcherSpoof, "FetcherSpoof")
	FetchTest(www.FetcherCurl, "FetcherCurl")
}
