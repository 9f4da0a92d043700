package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// CustomEntryType marks a persisted requested item
const CustomEntryType = "custom"

var ErrUnrecognizedEntry = errors.New("unrecognized basket entry")

// RawEntry is a basket entry exactly as persisted. Legacy shapes are kept
// verbatim so older baskets stay readable; use Normalize to interpret it.
type RawEntry []byte

func (r RawEntry) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	return r, nil
}

func (r *RawEntry) UnmarshalJSON(data []byte) error {
	if r == nil {
		return errors.New("domain.RawEntry: UnmarshalJSON on nil pointer")
	}
	*r = append((*r)[0:0], data...)
	return nil
}

func (r RawEntry) String() string {
	return string(r)
}

// Equal reports whether both entries hold the same JSON text
func (r RawEntry) Equal(other RawEntry) bool {
	return bytes.Equal(r, other)
}

// BasketEntry is either a CatalogPick or a RequestedItem
type BasketEntry interface {
	isBasketEntry()
}

type CatalogPick struct {
	ProductID string `json:"product"`
	VariantID string `json:"variant"`
}

type RequestedItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Link        string `json:"link"` // Empty when no reference was given
}

func (CatalogPick) isBasketEntry() {}
func (RequestedItem) isBasketEntry() {}

// Normalize converts any persisted entry shape into its canonical form:
// a bare string is a legacy product pick, an object with type "custom" is
// a requested item, any other object is a product pick. Object keys are
// matched exactly.
func Normalize(raw RawEntry) (BasketEntry, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, ErrUnrecognizedEntry
	}

	switch trimmed[0] {
	case '"':
		var productID string
		if err := json.Unmarshal(trimmed, &productID); err != nil {
			return nil, errors.Join(ErrUnrecognizedEntry, err)
		}
		return CatalogPick{ProductID: productID, VariantID: RegularVariant}, nil

	case '{':
		var object map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &object); err != nil {
			return nil, errors.Join(ErrUnrecognizedEntry, err)
		}
		fields, err := stringFields(object)
		if err != nil {
			return nil, errors.Join(ErrUnrecognizedEntry, err)
		}

		if fields["type"] == CustomEntryType {
			return RequestedItem{
				ID:          fields["id"],
				Name:        fields["name"],
				Description: fields["description"],
				Link:        fields["link"],
			}, nil
		}

		pick := CatalogPick{ProductID: fields["product"], VariantID: RegularVariant}
		if variant, ok := fields["variant"]; ok {
			pick.VariantID = variant
		}
		return pick, nil

	default:
		return nil, ErrUnrecognizedEntry
	}
}

var entryKeys = []string{"type", "id", "name", "description", "link", "product", "variant"}

// stringFields pulls the known keys out of a stored object. Null values
// count as absent; any other non-string value is an error.
func stringFields(object map[string]json.RawMessage) (map[string]string, error) {
	fields := make(map[string]string, len(entryKeys))
	for _, key := range entryKeys {
		value, ok := object[key]
		if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			continue
		}

		var text string
		if err := json.Unmarshal(value, &text); err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		fields[key] = text
	}
	return fields, nil
}

// NewPickEntry builds the raw shape written when a catalog product is added
func NewPickEntry(productID, variantID string) RawEntry {
	if variantID == "" {
		variantID = RegularVariant
	}
	data, _ := json.Marshal(CatalogPick{ProductID: productID, VariantID: variantID})
	return data
}

// NewRequestEntry builds the raw shape written when a requested item is added
func NewRequestEntry(item RequestedItem) RawEntry {
	data, _ := json.Marshal(struct {
		Type string `json:"type"`
		RequestedItem
	}{
		Type:          CustomEntryType,
		RequestedItem: item,
	})
	return data
}

// NewLegacyEntry builds the bare product id shape used by early baskets
func NewLegacyEntry(productID string) RawEntry {
	data, _ := json.Marshal(productID)
	return data
}
