// Package basket turns the persisted basket into the grouped summary the
// presentation layer renders.
package basket

import (
	"fruitshop/basket/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Summary is everything a renderer needs to draw the basket
type Summary struct {
	Lines    []domain.GroupedLine   `json:"lines"`    // One per (product, variant), first-seen order
	Requests []domain.RequestedItem `json:"requests"` // Never grouped, basket order
}

func (s Summary) IsEmpty() bool {
	return len(s.Lines) == 0 && len(s.Requests) == 0
}

// TotalQuantity counts catalog units across all lines
func (s Summary) TotalQuantity() int {
	total := 0
	for _, line := range s.Lines {
		total += line.Quantity
	}
	return total
}

type lineKey struct {
	productID string
	variantID string
}

// Aggregate groups catalog picks by product and variant, keeping the order
// in which each pair first appears, and passes requested items through.
// Picks of products missing from the catalog and entries that cannot be
// normalized are left out.
func Aggregate(catalog *domain.Catalog, entries []domain.RawEntry) Summary {
	summary := Summary{
		Lines:    make([]domain.GroupedLine, 0),
		Requests: make([]domain.RequestedItem, 0),
	}

	indexByKey := make(map[lineKey]int, len(entries))
	for _, raw := range entries {
		entry, err := domain.Normalize(raw)
		if err != nil {
			log.Debugf("Skipping basket entry %s: %v", raw, err)
			continue
		}

		switch e := entry.(type) {
		case domain.CatalogPick:
			key := lineKey{productID: e.ProductID, variantID: e.VariantID}
			if i, ok := indexByKey[key]; ok {
				summary.Lines[i].Quantity++
				continue
			}
			indexByKey[key] = len(summary.Lines)
			summary.Lines = append(summary.Lines, domain.GroupedLine{
				ProductID: e.ProductID,
				VariantID: e.VariantID,
				Quantity:  1,
			})

		case domain.RequestedItem:
			summary.Requests = append(summary.Requests, e)
		}
	}

	return dropUnknownProducts(catalog, summary)
}

// Catalog membership is checked after grouping: an entry may have been
// stored against a product that has since left the catalog.
func dropUnknownProducts(catalog *domain.Catalog, summary Summary) Summary {
	kept := summary.Lines[:0]
	for _, line := range summary.Lines {
		if !catalog.Contains(line.ProductID) {
			log.Debugf("Dropping basket line for unknown product %q", line.ProductID)
			continue
		}
		kept = append(kept, line)
	}
	summary.Lines = kept
	return summary
}
