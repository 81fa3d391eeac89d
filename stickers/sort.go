package stickers

import (
	"regexp"
	"sort"
	"strings"
)

// Order selects how files are sorted before indices are assigned.
type Order int

const (
	// Natural compares digit runs by value, so 2.svg sorts before 10.svg.
	Natural Order = iota

	// Lexical compares file names byte by byte.
	Lexical
)

func (o Order) String() string {
	switch o {
	case Natural:
		return "natural"
	case Lexical:
		return "lexical"
	}
	return "unknown"
}

// ParseOrder is the inverse of Order.String.
func ParseOrder(s string) (Order, bool) {
	switch strings.ToLower(s) {
	case "natural", "":
		return Natural, true
	case "lexical":
		return Lexical, true
	}
	return 0, false
}

func sortNames(names []string, o Order) {
	if o == Lexical {
		sort.Strings(names)
		return
	}
	sort.SliceStable(names, func(i, j int) bool {
		return naturalLess(names[i], names[j])
	})
}

var digitsRE = regexp.MustCompile(`[0-9]+`)

// naturalKey splits s into alternating text and digit runs, always starting
// and ending with a (possibly empty) text run.
func naturalKey(s string) []string {
	var parts []string
	last := 0
	for _, loc := range digitsRE.FindAllStringIndex(s, -1) {
		parts = append(parts, strings.ToLower(s[last:loc[0]]), s[loc[0]:loc[1]])
		last = loc[1]
	}
	return append(parts, strings.ToLower(s[last:]))
}

func naturalLess(a, b string) bool {
	ka, kb := naturalKey(a), naturalKey(b)
	for i := 0; i < len(ka) && i < len(kb); i++ {
		var c int
		if i%2 == 1 {
			c = compareDigits(ka[i], kb[i])
		} else {
			c = strings.Compare(ka[i], kb[i])
		}
		if c != 0 {
			return c < 0
		}
	}
	if len(ka) != len(kb) {
		return len(ka) < len(kb)
	}
	// Equal keys, e.g. "01" and "1": fall back to the raw names.
	return a < b
}

func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
