package catalog

import (
	"sync"

	"github.com/mcoot/patchworkgame-go/internal/model"
)

func def(variants []Variant, rows ...string) Definition {
	return Definition{Shape: model.ParseShape(rows...), Variants: variants}
}

func v(cost, time, income int) Variant {
	return Variant{ButtonCost: cost, TimeCost: time, ButtonIncome: income}
}

func vs(variants ...Variant) []Variant {
	return variants
}

var classicDefinitions = []Definition{
	def(vs(v(2, 1, 0)), "XX"),
	def(vs(v(2, 2, 0)), "XXX"),
	def(vs(v(3, 1, 0), v(1, 3, 0)), "XX", "X."),
	def(vs(v(3, 3, 1)), "XXXX"),
	def(vs(v(4, 2, 1), v(4, 6, 2)), "XXX", "X.."),
	def(vs(v(2, 2, 0)), "XXX", ".X."),
	def(vs(v(3, 2, 1), v(7, 6, 3)), "XX.", ".XX"),
	def(vs(v(6, 5, 2)), "XX", "XX"),
	def(vs(v(7, 1, 1)), "XXXXX"),
	def(vs(v(10, 3, 2)), "XXXX", "X..."),
	def(vs(v(10, 5, 3)), "XXX", "X..", "X.."),
	def(vs(v(5, 4, 2)), ".X.", "XXX", ".X."),
	def(vs(v(1, 2, 0)), "XXX", "X.X"),
	def(vs(v(5, 5, 2)), "XXX", ".X.", ".X."),
	def(vs(v(10, 4, 3)), "XX.", ".XX", "..X"),
	def(vs(v(3, 4, 1)), "XXXX", ".X.."),
	def(vs(v(2, 2, 0)), "XX", "XX", "X."),
	def(vs(v(2, 3, 1)), "XX.", ".X.", ".XX"),
	def(vs(v(2, 2, 0)), ".XX", "XX.", ".X."),
	def(vs(v(2, 3, 0)), "XXX.", "..XX"),
	def(vs(v(1, 5, 1)), "XXXX", "X..X"),
	def(vs(v(8, 6, 3)), "XXX", "XXX"),
	def(vs(v(7, 4, 2)), ".XX.", "XXXX"),
	def(vs(v(7, 2, 2)), "X...", "XXXX", "X..."),
	def(vs(v(4, 2, 0)), "XX..", ".XXX"),
	def(vs(v(3, 6, 2)), ".X.", "XXX", "X.X"),
	def(vs(v(1, 2, 0)), "X..", "XXX", "..X"),
	def(vs(v(0, 3, 1)), ".X..", "XXXX", ".X.."),
	def(vs(v(3, 6, 2)), "X.X", "XXX", "X.X"),
	def(vs(v(5, 3, 1)), ".XX.", "XXXX", ".XX."),
	def(vs(v(10, 5, 3)), "XXXX", "XX.."),
}

var compactDefinitions = []Definition{
	def(vs(v(2, 1, 0)), "XX"),
	def(vs(v(1, 1, 0)), "X"),
	def(vs(v(2, 2, 0)), "XXX"),
	def(vs(v(3, 1, 0), v(1, 3, 0)), "XX", "X."),
	def(vs(v(3, 3, 1)), "XXXX"),
	def(vs(v(4, 2, 1)), "XXX", "X.."),
	def(vs(v(2, 2, 0)), "XXX", ".X."),
	def(vs(v(3, 2, 1)), "XX.", ".XX"),
	def(vs(v(6, 5, 2)), "XX", "XX"),
	def(vs(v(5, 4, 2)), ".X.", "XXX", ".X."),
	def(vs(v(1, 2, 0)), "XXX", "X.X"),
	def(vs(v(2, 3, 1)), "XX.", ".X.", ".XX"),
	def(vs(v(4, 3, 1)), "XX", "XX", "X."),
}

var (
	classicOnce sync.Once
	classic     *Catalog
	compactOnce sync.Once
	compact     *Catalog
)

// Classic returns the full catalog used for 9x9 and 11x11 boards by default
func Classic() *Catalog {
	classicOnce.Do(func() {
		classic = MustNew(NameClassic, classicDefinitions)
	})
	return classic
}

// Compact returns a smaller catalog suited to quick 7x7 matches
func Compact() *Catalog {
	compactOnce.Do(func() {
		compact = MustNew(NameCompact, compactDefinitions)
	})
	return compact
}
