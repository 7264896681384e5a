package merger

import (
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dgallion1/pagemerge/internal/page"
)

var trailingDigits = regexp.MustCompile(`\d+$`)

// OrderKey extracts the page number from a document name: the maximal run of
// decimal digits at the end of the name stem ("page_1153.md" -> 1153).
// Names without trailing digits get key 0.
func OrderKey(name string) int {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	digits := trailingDigits.FindString(stem)
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		// Digit run too long for an int; treat as unnumbered.
		return 0
	}
	return n
}

// SortDocuments orders pages by OrderKey. The sort is stable, so equal or
// missing keys keep their existing relative order.
func SortDocuments(docs []page.Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		return OrderKey(docs[i].Name) < OrderKey(docs[j].Name)
	})
}
