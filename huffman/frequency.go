package huffman

import (
	"fmt"
	"sort"
	"sync"
)

// FrequencyTable counts occurrences of each intensity value.
// Only values that occur are reported; Total equals the pixel count.
type FrequencyTable struct {
	counts   [256]int64
	distinct int
	total    int64
}

// SymbolCount is one FrequencyTable entry
type SymbolCount struct {
	Value byte
	Count int64
}

// CountFrequencies builds the frequency table of a grid
func CountFrequencies(g *Grid) (*FrequencyTable, error) {
	if g == nil || g.Len() == 0 {
		return nil, ErrEmptyInput
	}
	ft := &FrequencyTable{}
	ft.add(g.Pix)
	return ft, nil
}

// CountFrequenciesParallel counts disjoint row bands concurrently and
// merges the partial tables. workers <= 1 counts on the calling goroutine.
func CountFrequenciesParallel(g *Grid, workers int) (*FrequencyTable, error) {
	if g == nil || g.Len() == 0 {
		return nil, ErrEmptyInput
	}
	if workers > g.Rows {
		workers = g.Rows
	}
	if workers <= 1 {
		return CountFrequencies(g)
	}

	partials := make([]FrequencyTable, workers)
	band := (g.Rows + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * band
		end := start + band
		if end > g.Rows {
			end = g.Rows
		}
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(part *FrequencyTable, pix []byte) {
			defer wg.Done()
			part.add(pix)
		}(&partials[w], g.Pix[start*g.Cols:end*g.Cols])
	}
	wg.Wait()

	ft := &FrequencyTable{}
	for i := range partials {
		ft.Merge(&partials[i])
	}
	return ft, nil
}

// NewFrequencyTable builds a table from explicit counts.
// Zero counts are dropped; negative counts are rejected.
func NewFrequencyTable(counts map[byte]int64) (*FrequencyTable, error) {
	ft := &FrequencyTable{}
	for v, c := range counts {
		if c < 0 {
			return nil, fmt.Errorf("%w: value %d has count %d", ErrInvalidFrequency, v, c)
		}
		if c == 0 {
			continue
		}
		ft.counts[v] = c
		ft.distinct++
		ft.total += c
	}
	return ft, nil
}

func (ft *FrequencyTable) add(pix []byte) {
	var local [256]int64
	for _, p := range pix {
		local[p]++
	}
	for v, c := range local {
		if c == 0 {
			continue
		}
		if ft.counts[v] == 0 {
			ft.distinct++
		}
		ft.counts[v] += c
		ft.total += c
	}
}

// Merge adds the counts of other into ft
func (ft *FrequencyTable) Merge(other *FrequencyTable) {
	for v, c := range other.counts {
		if c == 0 {
			continue
		}
		if ft.counts[v] == 0 {
			ft.distinct++
		}
		ft.counts[v] += c
		ft.total += c
	}
}

// Count returns the count for v and whether v occurs
func (ft *FrequencyTable) Count(v byte) (int64, bool) {
	c := ft.counts[v]
	return c, c > 0
}

// Len returns the number of distinct values
func (ft *FrequencyTable) Len() int {
	return ft.distinct
}

// Total returns the sum of all counts
func (ft *FrequencyTable) Total() int64 {
	return ft.total
}

// Values returns the distinct values in ascending order
func (ft *FrequencyTable) Values() []byte {
	values := make([]byte, 0, ft.distinct)
	for v, c := range ft.counts {
		if c > 0 {
			values = append(values, byte(v))
		}
	}
	return values
}

// Entries returns every (value, count) pair in ascending value order
func (ft *FrequencyTable) Entries() []SymbolCount {
	entries := make([]SymbolCount, 0, ft.distinct)
	for v, c := range ft.counts {
		if c > 0 {
			entries = append(entries, SymbolCount{Value: byte(v), Count: c})
		}
	}
	return entries
}

// MostFrequent returns up to k entries ordered by count descending,
// ties broken by ascending value
func (ft *FrequencyTable) MostFrequent(k int) []SymbolCount {
	entries := ft.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if k >= 0 && k < len(entries) {
		entries = entries[:k]
	}
	return entries
}
