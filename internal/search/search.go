package search

import (
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/reel/internal/domain"
)

// Result is a filter hit with match metadata for highlighting
type Result struct {
	Entry          domain.FavoriteEntry
	MatchedIndexes []int // Byte positions in the title that matched
	Score          int   // Higher is better
}

// Index implements sahilm/fuzzy.Source over entry titles
type Index struct {
	entries     []domain.FavoriteEntry
	lowerTitles []string // Pre-computed lowercase titles
}

// NewIndex builds an index over entries, keeping their order
func NewIndex(entries []domain.FavoriteEntry) *Index {
	idx := &Index{
		entries:     entries,
		lowerTitles: make([]string, len(entries)),
	}
	for i, e := range entries {
		idx.lowerTitles[i] = strings.ToLower(e.GetTitle())
	}
	return idx
}

// String returns the lowercase title at index i (implements fuzzy.Source)
func (idx *Index) String(i int) string { return idx.lowerTitles[i] }

// Len returns the number of entries (implements fuzzy.Source)
func (idx *Index) Len() int { return len(idx.entries) }

// Filter returns the entries whose title fuzzily matches query, best first.
// An empty query returns every entry in index order.
func (idx *Index) Filter(query string) []Result {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		results := make([]Result, len(idx.entries))
		for i, e := range idx.entries {
			results[i] = Result{Entry: e}
		}
		return results
	}

	matches := fuzzy.FindFrom(query, idx)
	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Entry:          idx.entries[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}

// Rank reorders remote search results by how closely their titles match
// query. Entries the query does not match keep their relative order after
// the matches.
func Rank(query string, entries []domain.FavoriteEntry) []domain.FavoriteEntry {
	query = strings.TrimSpace(query)
	if query == "" || len(entries) < 2 {
		return entries
	}

	titles := make([]string, len(entries))
	for i, e := range entries {
		titles[i] = e.GetTitle()
	}

	ranks := lfuzzy.RankFindNormalizedFold(query, titles)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	out := make([]domain.FavoriteEntry, 0, len(entries))
	used := make([]bool, len(entries))
	for _, r := range ranks {
		if used[r.OriginalIndex] {
			continue
		}
		used[r.OriginalIndex] = true
		out = append(out, entries[r.OriginalIndex])
	}
	for i, e := range entries {
		if !used[i] {
			out = append(out, e)
		}
	}
	return out
}
