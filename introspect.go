package dazzlodocs

import (
	"regexp"
	"strconv"
)

var pageCountPattern = regexp.MustCompile(`/Count\s+(\d+)`)

// PageCount returns an approximate page count for a PDF by reading the first
// /Count entry in the raw bytes. It is not a PDF parser: the first entry is
// usually the root page tree, which holds the total.
//
// Returns 1 when no entry is found or the value is not a positive integer.
func PageCount(pdf []byte) int {
	m := pageCountPattern.FindSubmatch(pdf)
	if m == nil {
		return 1
	}
	n, err := strconv.Atoi(string(m[1]))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
