package document

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// TabWidth is the number of cells a tab occupies when displayed.
const TabWidth = 4

// GraphemeCount returns the number of grapheme clusters in s.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Graphemes splits s into grapheme clusters.
func Graphemes(s string) []string {
	clusters := make([]string, 0, len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.StepString(s, state)
		clusters = append(clusters, cluster)
	}
	return clusters
}

// GraphemeToByteOffset converts a grapheme index to a byte offset.
// Indexes past the end return len(s).
func GraphemeToByteOffset(s string, graphemeIdx int) int {
	if graphemeIdx <= 0 {
		return 0
	}

	idx := 0
	state := -1
	original := s
	for len(s) > 0 {
		_, rest, _, newState := uniseg.StepString(s, state)
		idx++
		if idx == graphemeIdx {
			return len(original) - len(rest)
		}
		s = rest
		state = newState
	}
	return len(original)
}

// GraphemeDisplayWidth returns the cell width of one cluster.
// ASCII = 1, CJK and emoji = 2, tab = TabWidth.
func GraphemeDisplayWidth(cluster string) int {
	switch cluster {
	case "":
		return 0
	case "\t":
		return TabWidth
	}
	return runewidth.StringWidth(cluster)
}

// StringDisplayWidth returns the cell width of s.
func StringDisplayWidth(s string) int {
	width := 0
	for _, cluster := range Graphemes(s) {
		width += GraphemeDisplayWidth(cluster)
	}
	return width
}
