package domain

import "fmt"

// RegularVariant is the implicit default variant of every product
const RegularVariant = "regular"

type Variant struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type CatalogEntry struct {
	ProductID   string    `json:"id" yaml:"id"`             // apple, banana, ...
	DisplayName string    `json:"name" yaml:"name"`         // Shown in basket lines
	Glyph       string    `json:"emoji" yaml:"emoji"`       // Single emoji shown before the name
	Variants    []Variant `json:"variants" yaml:"variants"` // Ordered, "regular" first
}

// Variant returns the variant with the given id
func (e CatalogEntry) Variant(variantID string) (Variant, bool) {
	for _, v := range e.Variants {
		if v.ID == variantID {
			return v, true
		}
	}
	return Variant{}, false
}

// Catalog is the immutable product reference list, keyed by product id
type Catalog struct {
	entries []CatalogEntry
	byID    map[string]int
}

// NewCatalog validates entries and builds a catalog.
// Entries without a "regular" variant get one prepended.
func NewCatalog(entries []CatalogEntry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]CatalogEntry, 0, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}

	for _, entry := range entries {
		if entry.ProductID == "" {
			return nil, fmt.Errorf("catalog entry %q has no product id", entry.DisplayName)
		}
		if _, exists := c.byID[entry.ProductID]; exists {
			return nil, fmt.Errorf("duplicate product id %q in catalog", entry.ProductID)
		}

		seen := make(map[string]struct{}, len(entry.Variants))
		variants := make([]Variant, 0, len(entry.Variants)+1)
		for _, v := range entry.Variants {
			if _, dup := seen[v.ID]; dup {
				return nil, fmt.Errorf("duplicate variant %q for product %q", v.ID, entry.ProductID)
			}
			seen[v.ID] = struct{}{}
			variants = append(variants, v)
		}
		if _, ok := seen[RegularVariant]; !ok {
			variants = append([]Variant{{ID: RegularVariant, Name: "Regular"}}, variants...)
		}
		entry.Variants = variants

		c.byID[entry.ProductID] = len(c.entries)
		c.entries = append(c.entries, entry)
	}

	return c, nil
}

// Lookup returns the catalog entry for a product id
func (c *Catalog) Lookup(productID string) (CatalogEntry, bool) {
	i, ok := c.byID[productID]
	if !ok {
		return CatalogEntry{}, false
	}
	return c.entries[i], true
}

func (c *Catalog) Contains(productID string) bool {
	_, ok := c.byID[productID]
	return ok
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

// DefaultEntries is the built-in fruit stand assortment
var DefaultEntries = []CatalogEntry{
	{
		ProductID:   "apple",
		DisplayName: "Apple",
		Glyph:       "🍏",
		Variants: []Variant{
			{ID: "regular", Name: "Regular"},
			{ID: "caramel", Name: "Caramel Coated"},
			{ID: "candy", Name: "Candy Coated"},
			{ID: "chocolate", Name: "Chocolate Dipped"},
		},
	},
	{
		ProductID:   "banana",
		DisplayName: "Banana",
		Glyph:       "🍌",
		Variants: []Variant{
			{ID: "regular", Name: "Regular"},
			{ID: "chocolate", Name: "Chocolate Covered"},
			{ID: "nutella", Name: "Nutella Filled"},
			{ID: "frozen", Name: "Frozen"},
		},
	},
	{
		ProductID:   "lemon",
		DisplayName: "Lemon",
		Glyph:       "🍋",
		Variants: []Variant{
			{ID: "regular", Name: "Regular"},
			{ID: "candied", Name: "Candied"},
			{ID: "glazed", Name: "Honey Glazed"},
			{ID: "preserved", Name: "Preserved"},
		},
	},
	{
		ProductID:   "strawberry",
		DisplayName: "Strawberry",
		Glyph:       "🍓",
		Variants: []Variant{
			{ID: "regular", Name: "Regular"},
			{ID: "stick", Name: "On a Stick"},
			{ID: "chocolate", Name: "Chocolate Covered"},
			{ID: "whipped", Name: "With Whipped Cream"},
		},
	},
	{
		ProductID:   "grapes",
		DisplayName: "Grapes",
		Glyph:       "🍇",
		Variants: []Variant{
			{ID: "regular", Name: "Regular"},
			{ID: "seedless", Name: "Seedless"},
			{ID: "frozen", Name: "Frozen"},
			{ID: "juice", Name: "Juice Ready"},
		},
	},
}

// DefaultCatalog builds the built-in catalog
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultEntries)
	if err != nil {
		panic(fmt.Sprintf("default catalog is invalid: %v", err))
	}
	return c
}
