package builder

import "sort"

// gmadCategories is the set of element categories the GMAD grammar defines
// out of the box.
var gmadCategories = []string{
	"marker",
	"drift",
	"rf",
	"rfcavity",
	"sbend",
	"rbend",
	"hkicker",
	"vkicker",
	"kicker",
	"tkicker",
	"quadrupole",
	"sextupole",
	"octupole",
	"decapole",
	"multipole",
	"thinmultipole",
	"solenoid",
	"rcol",
	"jcol",
	"ecol",
	"degrader",
	"muonspoiler",
	"shield",
	"dump",
	"gap",
	"crystalcol",
	"undulator",
	"transform3d",
	"element",
	"laser",
	"gas",
	"spec",
	"wirescanner",
	"thinrmatrix",
	"rmatrix",
	"paralleltransporter",
}

// lengthBearing lists the categories that carry a physical length and
// therefore support splitting. Thin or purely logical categories (markers,
// transforms, the generic "element") are not splittable.
var lengthBearing = map[string]bool{
	"drift":       true,
	"rf":          true,
	"rfcavity":    true,
	"sbend":       true,
	"rbend":       true,
	"hkicker":     true,
	"vkicker":     true,
	"kicker":      true,
	"tkicker":     true,
	"quadrupole":  true,
	"sextupole":   true,
	"octupole":    true,
	"decapole":    true,
	"multipole":   true,
	"solenoid":    true,
	"rcol":        true,
	"jcol":        true,
	"ecol":        true,
	"degrader":    true,
	"muonspoiler": true,
	"shield":      true,
	"dump":        true,
	"gap":         true,
	"crystalcol":  true,
	"undulator":   true,
	"wirescanner": true,
}

// CategoryRegistry is the set of element categories known to a builder. It
// is append-only: callers may register new categories at runtime but never
// remove the seeded ones.
type CategoryRegistry struct {
	names map[string]bool
}

// NewCategoryRegistry returns a registry seeded with the GMAD category set.
func NewCategoryRegistry() *CategoryRegistry {
	r := &CategoryRegistry{names: make(map[string]bool, len(gmadCategories))}
	for _, name := range gmadCategories {
		r.names[name] = true
	}
	return r
}

// Register adds a category name. Registering a known name is a no-op.
func (r *CategoryRegistry) Register(name string) {
	r.names[name] = true
}

// Known reports whether name is a registered category.
func (r *CategoryRegistry) Known(name string) bool {
	return r.names[name]
}

// Names returns all registered categories in sorted order.
func (r *CategoryRegistry) Names() []string {
	names := make([]string, 0, len(r.names))
	for name := range r.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
