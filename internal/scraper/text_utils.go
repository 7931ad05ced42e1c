// Package scraper provides text processing utilities for content extraction.
package scraper

import (
	"strings"
)

// CleanWhitespace removes excessive whitespace from text content
func CleanWhitespace(text string) string {
	if text == "" {
		return ""
	}

	// Remove excessive whitespace
	cleaned := strings.ReplaceAll(text, TripleNewline, DoubleNewline)
	cleaned = strings.ReplaceAll(cleaned, DoubleSpace, SingleSpace)
	cleaned = strings.TrimSpace(cleaned)

	return cleaned
}

// CleanTextContent removes common noise patterns from text content
func CleanTextContent(text string) string {
	if text == "" {
		return ""
	}

	// Remove very short lines that are likely UI elements
	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		// Keep lines that are longer than 20 characters or are empty (for spacing)
		if len(line) == 0 || len(line) > 20 {
			cleanedLines = append(cleanedLines, line)
		}
	}

	cleaned := strings.Join(cleanedLines, "\n")
	return CleanWhitespace(cleaned)
}

// CalculateContentMetrics calculates basic content quality metrics
func CalculateContentMetrics(content string) (wordCount, paragraphCount, avgParagraphLength int) {
	if content == "" {
		return 0, 0, 0
	}

	// Count paragraphs (non-empty lines)
	lines := strings.Split(content, "\n")
	paragraphCount = 0
	totalChars := 0

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) > 0 {
			paragraphCount++
			totalChars += len(line)
		}
	}

	// Rough word count estimation (5 chars per word average)
	wordCount = len(strings.ReplaceAll(content, " ", "")) / 5

	// Average paragraph length
	if paragraphCount > 0 {
		avgParagraphLength = totalChars / paragraphCount
	}

	return wordCount, paragraphCount, avgParagraphLength
}

// ContainsAny checks if a string contains any of the substrings (case-insensitive)
func ContainsAny(s string, substrings []string) bool {
	sLower := strings.ToLower(s)
	for _, substr := range substrings {
		if strings.Contains(sLower, strings.ToLower(substr)) {
			return true
		}
	}
	return false
}

// IsCloudflareBlock checks if the error indicates Cloudflare blocking
func IsCloudflareBlock(err error) bool {
	if err == nil {
		return false
	}
	return ContainsAny(err.Error(), CloudflarePatterns)
}

// BuildStructuredText always returns an empty string; it does not read
// doc or elements.
func BuildStructuredText(doc interface{}, elements string) string {
	return ""
}
