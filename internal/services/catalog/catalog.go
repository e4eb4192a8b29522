package catalog

import (
	"errors"
	"fmt"

	"github.com/mcoot/patchworkgame-go/internal/model"
)

// Catalog names
const (
	NameClassic = "classic"
	NameCompact = "compact"
)

// Variant is one price/time/income combination available for a shape
type Variant struct {
	ButtonCost   int
	TimeCost     int
	ButtonIncome int
}

// Definition is a patch shape with one or more variants
type Definition struct {
	Shape    model.Shape
	Variants []Variant
}

// Catalog is an immutable set of market patches with sequential IDs
type Catalog struct {
	name    string
	patches []model.Patch
	byID    map[model.PatchID]model.Patch
}

// New validates the definitions and instantiates one patch per variant,
// numbering them 1..N in definition order.
func New(name string, defs []Definition) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, errors.New("catalog: no patch definitions")
	}

	seenShapes := make(map[string]int, len(defs))
	c := &Catalog{
		name: name,
		byID: make(map[model.PatchID]model.Patch),
	}

	for i, def := range defs {
		if def.Shape.CellCount() == 0 {
			return nil, fmt.Errorf("catalog: definition %d has an empty shape", i)
		}
		key := def.Shape.String()
		if prev, ok := seenShapes[key]; ok {
			return nil, fmt.Errorf("catalog: definition %d duplicates the shape of definition %d", i, prev)
		}
		seenShapes[key] = i

		if len(def.Variants) == 0 {
			return nil, fmt.Errorf("catalog: definition %d has no variants", i)
		}
		seenVariants := make(map[Variant]struct{}, len(def.Variants))
		for _, v := range def.Variants {
			if v.ButtonCost < 0 || v.TimeCost < 0 || v.ButtonIncome < 0 {
				return nil, fmt.Errorf("catalog: definition %d has a negative variant %+v", i, v)
			}
			if _, ok := seenVariants[v]; ok {
				return nil, fmt.Errorf("catalog: definition %d repeats variant %+v", i, v)
			}
			seenVariants[v] = struct{}{}

			patch := model.Patch{
				ID:           model.PatchID(len(c.patches) + 1),
				Shape:        def.Shape,
				ButtonCost:   v.ButtonCost,
				TimeCost:     v.TimeCost,
				ButtonIncome: v.ButtonIncome,
			}
			c.patches = append(c.patches, patch)
			c.byID[patch.ID] = patch
		}
	}

	return c, nil
}

// MustNew is New for static catalogs; an invalid catalog is a programming error
func MustNew(name string, defs []Definition) *Catalog {
	c, err := New(name, defs)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns a shipped catalog by name. An empty name selects the classic catalog.
func Lookup(name string) (*Catalog, error) {
	switch name {
	case "", NameClassic:
		return Classic(), nil
	case NameCompact:
		return Compact(), nil
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownCatalog, name)
	}
}

// Name returns the catalog name
func (c *Catalog) Name() string {
	return c.name
}

// Patches returns a copy of the catalog's patches in ID order
func (c *Catalog) Patches() []model.Patch {
	out := make([]model.Patch, len(c.patches))
	copy(out, c.patches)
	return out
}

// Len returns the number of patches
func (c *Catalog) Len() int {
	return len(c.patches)
}

// Patch returns the market patch with the given ID
func (c *Catalog) Patch(id model.PatchID) (model.Patch, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// LeatherPatches creates the leather patch slots for a board size, with IDs
// -(slotIndex+1)
func LeatherPatches(boardSize int) ([]model.LeatherPatchOnTrack, error) {
	cfg, err := model.LookupBoardConfig(boardSize)
	if err != nil {
		return nil, err
	}
	slots := make([]model.LeatherPatchOnTrack, len(cfg.LeatherPositions))
	for i, pos := range cfg.LeatherPositions {
		slots[i] = model.LeatherPatchOnTrack{
			Position: pos,
			PatchID:  model.LeatherPatchID(i),
		}
	}
	return slots, nil
}
