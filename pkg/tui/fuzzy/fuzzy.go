// ABOUTME: Thin wrapper over sahilm/fuzzy for filtering listings and search fallbacks
// ABOUTME: Filter keeps the original order for an empty pattern and ranks by score otherwise

package fuzzy

import "github.com/sahilm/fuzzy"

// Match represents a single fuzzy match result.
type Match struct {
	Str            string
	Index          int
	MatchedIndexes []int
	Score          int
}

// Source is anything with indexed strings, e.g. a directory listing.
type Source = fuzzy.Source

// Find matches pattern against items, best score first.
func Find(pattern string, items []string) []Match {
	return convert(fuzzy.Find(pattern, items))
}

// FindFrom matches pattern against a custom source, best score first.
func FindFrom(pattern string, data Source) []Match {
	return convert(fuzzy.FindFrom(pattern, data))
}

// Filter returns the indexes of data that match pattern. An empty pattern
// keeps every index in its original order.
func Filter(pattern string, data Source) []int {
	if pattern == "" {
		idx := make([]int, data.Len())
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	matches := fuzzy.FindFrom(pattern, data)
	idx := make([]int, len(matches))
	for i, m := range matches {
		idx[i] = m.Index
	}
	return idx
}

func convert(results fuzzy.Matches) []Match {
	matches := make([]Match, len(results))
	for i, r := range results {
		matches[i] = Match{
			Str:            r.Str,
			Index:          r.Index,
			MatchedIndexes: r.MatchedIndexes,
			Score:          r.Score,
		}
	}
	return matches
}
