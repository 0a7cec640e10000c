package main

import "github.com/kherring/docbrief/llm"

type LlmParams struct {
	llm.Params
	URLPrompt      string
	DocumentPrompt string
}

// summarizerParams fixes the sampling policy for summary requests; only the
// model varies with configuration.
func summarizerParams(model string) LlmParams {
	return LlmParams{
		Params: llm.Params{
			Model:           model,
			Temperature:     0.3,
			MaxOutputTokens: 800,
		},
		URLPrompt:      `You are a concise document summariser. Read the document at the provided URL directly and return a clear, structured summary with key points, important details, and conclusions.`,
		DocumentPrompt: `You are a concise document summariser. Read the attached document and return a clear, structured summary with key points, important details, and conclusions.`,
	}
}
