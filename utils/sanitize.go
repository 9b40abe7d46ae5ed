package utils

import "github.com/microcosm-cc/bluemonday"

var sanitizer = bluemonday.StrictPolicy()

// Sanitize strips any HTML from user supplied text (display names, challenge
// titles) to prevent stored XSS in clients rendering them.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
