// Package common provides shared components and helpers for UI features.
package common

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// SizeLabel returns the display label for a sample size, e.g. "medium" -> "Medium".
func SizeLabel(size string) string {
	return titleCaser.String(strings.ReplaceAll(size, "_", " "))
}
