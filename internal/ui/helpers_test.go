package ui

import (
	"regexp"

	"github.com/mattn/go-runewidth"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

func runeWidth(s string) int {
	return runewidth.StringWidth(s)
}
