package tui

import (
	"strconv"
	"strings"

	"github.com/takaishi/rgjump/search"
)

// filterResults returns the indexes of results matching every word of
// filter, case-insensitively, against label, description and path.
func filterResults(results []*search.SearchResult, filter string) []int {
	terms := strings.Fields(strings.ToLower(filter))
	indexes := make([]int, 0, len(results))
	for i, r := range results {
		if matchesAll(r, terms) {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

func matchesAll(r *search.SearchResult, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	haystack := strings.ToLower(r.Label + " " + r.Description + " " + r.File)
	for _, t := range terms {
		if !strings.Contains(haystack, t) {
			return false
		}
	}
	return true
}

// statusText summarises a result set, e.g. "12 matches in 3 files"
func statusText(shown, total int, results []*search.SearchResult, indexes []int) string {
	files := make(map[string]struct{})
	for _, i := range indexes {
		files[results[i].File] = struct{}{}
	}

	text := strconv.Itoa(shown) + " match"
	if shown != 1 {
		text += "es"
	}
	text += " in " + strconv.Itoa(len(files)) + " file"
	if len(files) != 1 {
		text += "s"
	}
	if shown != total {
		text += " (" + strconv.Itoa(total) + " total)"
	}
	return text
}
