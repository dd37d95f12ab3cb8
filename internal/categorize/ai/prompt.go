// Package ai holds the LLM-backed categorize.Classifier implementations and
// the decorators that bound how often they are called.
package ai

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a helpful assistant that classifies merchants into spending categories."

func buildPrompt(merchant string, categories []string) string {
	return fmt.Sprintf(
		"Classify the following merchant into one of these spending categories: %s.\n"+
			"Answer with the category name only, exactly as written in the list.\n"+
			"Merchant: %s\n"+
			"Category:",
		strings.Join(categories, ", "), merchant,
	)
}
