// Package textutil provides the tokenization rules used for review text.
package textutil

import (
	"regexp"
	"strings"
)

// tokenizeRe matches Python's (?u)\b\w\w+\b: runs of two or more word characters.
var tokenizeRe = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize extracts bag-of-words tokens from text. Single-character runs are dropped.
func Tokenize(text string) []string {
	return tokenizeRe.FindAllString(text, -1)
}

// wordRe keeps inner apostrophes so contractions like "don't" stay one word,
// matching the entries of imdb.vocab.
var wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+(?:'[\p{L}\p{N}_]+)*`)

// Words lowercases text and splits it into vocabulary words.
func Words(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}

var (
	newlineRe    = regexp.MustCompile(`[\n\r]`)
	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
)

// NormalizeWhitespaces replaces newlines and multiple whitespace with a single space.
func NormalizeWhitespaces(text string) string {
	text = newlineRe.ReplaceAllString(text, " ")
	return multiSpaceRe.ReplaceAllString(text, " ")
}
