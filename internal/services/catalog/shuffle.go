package catalog

import (
	"github.com/mcoot/patchworkgame-go/internal/dependencies/random"
	"github.com/mcoot/patchworkgame-go/internal/model"
)

// IsStarter reports whether the patch is the 1x2 opening patch that always
// begins the market
func IsStarter(p model.Patch) bool {
	return p.Shape.Equal(starterShape) &&
		p.ButtonCost == 2 && p.TimeCost == 1 && p.ButtonIncome == 0
}

var starterShape = model.ParseShape("XX")

// Shuffle returns a Fisher-Yates permutation of the patches driven by rng
func Shuffle(patches []model.Patch, rng random.Random) []model.Patch {
	out := make([]model.Patch, len(patches))
	copy(out, patches)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// NewDeck shuffles the catalog into a market deck and moves the starter
// patch, if any, to the front
func NewDeck(c *Catalog, rng random.Random) []model.Patch {
	deck := Shuffle(c.patches, rng)
	for i, p := range deck {
		if IsStarter(p) {
			copy(deck[1:i+1], deck[:i])
			deck[0] = p
			break
		}
	}
	return deck
}

// SeededDeck builds the market deck reproducibly from a seed
func SeededDeck(c *Catalog, seed uint32) []model.Patch {
	return NewDeck(c, random.NewSeeded(seed))
}
