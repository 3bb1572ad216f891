package index

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"pdsite/internal/domain/content"
	"sort"
)

// sortPlaybook orders entries with an explicit order first (ascending, ties
// by title), then the rest by title using English collation. Equal keys keep
// their scan order.
func sortPlaybook(entries []content.Entry) {
	col := collate.New(language.English)
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Meta, entries[j].Meta
		switch {
		case a.HasOrder() && b.HasOrder():
			if *a.Order != *b.Order {
				return *a.Order < *b.Order
			}
		case a.HasOrder():
			return true
		case b.HasOrder():
			return false
		}
		return col.CompareString(a.Title, b.Title) < 0
	})
}
