// Package render draws basket summaries and orders as HTML fragments.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"fruitshop/basket/internal/basket"
	"fruitshop/basket/internal/domain"
)

const requestGlyph = "📝"

var templates = template.Must(template.New("render").Parse(`
{{- define "basket" -}}
<ul id="basketList">
{{- if .Empty}}
<li>No products in basket.</li>
{{- else}}
{{- range .Lines}}
<li><span class="basket-emoji">{{.Glyph}}</span> <span class="basket-item-quantity">{{.Quantity}}</span><span>{{.Label}}</span></li>
{{- end}}
{{- if .Requests}}
<li class="requested-section-header"><strong>Requested Items</strong></li>
{{- range .Requests}}
<li class="requested-item">
<div class="requested-item-content">
<div class="requested-item-main">
<span class="requested-emoji">{{$.RequestGlyph}}</span>
<div class="requested-item-info">
<strong>{{.Name}}</strong>
<p class="requested-item-desc">{{.Description}}</p>
{{- if .Link}}
<p class="requested-item-link"><a href="{{.Link}}" target="_blank" rel="noopener noreferrer">View reference</a></p>
{{- end}}
</div>
</div>
<span class="required-badge">Request</span>
</div>
<div class="requested-item-actions">
<button class="edit-requested-item-btn" data-id="{{.ID}}" aria-label="Edit {{.Name}}">Edit</button>
<button class="remove-requested-item-btn" data-id="{{.ID}}" aria-label="Remove {{.Name}}">Remove</button>
</div>
</li>
{{- end}}
{{- end}}
{{- end}}
</ul>
{{- end -}}

{{- define "order" -}}
<div class="order-summary">
<h2>Order Summary</h2>
<p class="order-date">Ordered on {{.Date}} at {{.Time}}</p>
<ul class="order-items">
{{- range .Lines}}
<li><span class="order-item-emoji">{{.Glyph}}</span> <span class="order-item-quantity">{{.Quantity}}</span>{{.Label}}</li>
{{- end}}
{{- if .Requests}}
<li class="order-requested-header"><strong>Requested Items</strong></li>
{{- range .Requests}}
<li class="order-requested-item"><span class="order-item-emoji">{{$.RequestGlyph}}</span> {{.Name}}</li>
{{- end}}
{{- end}}
</ul>
</div>
{{- end -}}
`))

// lineView is a grouped line resolved against the catalog
type lineView struct {
	Glyph    string
	Quantity string // "2x " when more than one, empty otherwise
	Label    string // "Apple - Caramel Coated"
}

type basketView struct {
	Empty        bool
	Lines        []lineView
	Requests     []domain.RequestedItem
	RequestGlyph string
}

type orderView struct {
	Date         string
	Time         string
	Lines        []lineView
	Requests     []domain.RequestedItem
	RequestGlyph string
}

// Basket renders the basket list. Lines for products missing from the
// catalog have already been removed by the aggregator. The placeholder
// shows only when the slot holds no entries at all, so a basket of unknown
// products renders as an empty list.
func Basket(catalog *domain.Catalog, summary basket.Summary, stored int) (string, error) {
	view := basketView{
		Empty:        stored == 0,
		Lines:        lineViews(catalog, summary.Lines),
		Requests:     summary.Requests,
		RequestGlyph: requestGlyph,
	}
	return execute("basket", view)
}

// OrderSummary renders the last order, grouped the same way as the basket
func OrderSummary(catalog *domain.Catalog, order *domain.Order) (string, error) {
	if order == nil {
		return "", nil
	}

	summary := basket.Aggregate(catalog, order.Items)
	view := orderView{
		Date:         order.Date,
		Time:         order.Time,
		Lines:        lineViews(catalog, summary.Lines),
		Requests:     summary.Requests,
		RequestGlyph: requestGlyph,
	}
	return execute("order", view)
}

// Indicator is the badge text for the basket link, empty when hidden
func Indicator(count int) string {
	if count <= 0 {
		return ""
	}
	return strconv.Itoa(count)
}

func lineViews(catalog *domain.Catalog, lines []domain.GroupedLine) []lineView {
	views := make([]lineView, 0, len(lines))
	for _, line := range lines {
		product, ok := catalog.Lookup(line.ProductID)
		if !ok {
			continue
		}

		label := product.DisplayName
		if variant, ok := product.Variant(line.VariantID); ok {
			label += " - " + variant.Name
		}

		quantity := ""
		if line.Quantity > 1 {
			quantity = strconv.Itoa(line.Quantity) + "x "
		}

		views = append(views, lineView{
			Glyph:    product.Glyph,
			Quantity: quantity,
			Label:    label,
		})
	}
	return views
}

func execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
