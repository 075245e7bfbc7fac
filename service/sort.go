// service/sort.go
package service

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dev-mohitbeniwal/listpane/model"
)

// newCollator orders display names the way SharePoint's "$orderby=Title asc"
// does: case-insensitive, linguistic rather than byte order.
func newCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}

func sortTitles(titles []string) {
	col := newCollator()
	sort.SliceStable(titles, func(i, j int) bool {
		return col.CompareString(titles[i], titles[j]) < 0
	})
}

// sortColumns orders by display name, then by internal name for equal display names.
func sortColumns(columns []model.KeyValuePair[string, string]) {
	col := newCollator()
	sort.SliceStable(columns, func(i, j int) bool {
		if c := col.CompareString(columns[i].Value, columns[j].Value); c != 0 {
			return c < 0
		}
		return columns[i].Key < columns[j].Key
	})
}
