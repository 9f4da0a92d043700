package render

import (
	"strings"
	"testing"
	"time"

	"fruitshop/basket/internal/basket"
	"fruitshop/basket/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

// TestBasket_Empty verifies the placeholder line for an empty basket.
func TestBasket_Empty(t *testing.T) {
	t.Parallel()

	html, err := Basket(domain.DefaultCatalog(), basket.Aggregate(domain.DefaultCatalog(), nil), 0)
	require.NoError(t, err)

	doc := parse(t, html)
	items := doc.Find("#basketList li")
	require.Equal(t, 1, items.Length())
	assert.Equal(t, "No products in basket.", items.Text())
}

// TestBasket_Lines verifies glyphs, quantity labels and variant names.
func TestBasket_Lines(t *testing.T) {
	t.Parallel()

	catalog := domain.DefaultCatalog()
	summary := basket.Aggregate(catalog, []domain.RawEntry{
		domain.NewPickEntry("apple", "regular"),
		domain.NewPickEntry("banana", "regular"),
		domain.NewPickEntry("apple", "regular"),
		domain.NewPickEntry("apple", "caramel"),
		domain.NewPickEntry("lemon", "mystery"),
		domain.NewPickEntry("dragonfruit", "regular"),
	})

	html, err := Basket(catalog, summary, 6)
	require.NoError(t, err)

	doc := parse(t, html)
	var labels, quantities, glyphs []string
	doc.Find("#basketList li").Each(func(_ int, s *goquery.Selection) {
		labels = append(labels, s.Find("span").Last().Text())
		quantities = append(quantities, s.Find(".basket-item-quantity").Text())
		glyphs = append(glyphs, s.Find(".basket-emoji").Text())
	})

	assert.Equal(t, []string{"Apple - Regular", "Banana - Regular", "Apple - Caramel Coated", "Lemon"}, labels)
	assert.Equal(t, []string{"2x ", "", "", ""}, quantities)
	assert.Equal(t, []string{"🍏", "🍌", "🍏", "🍋"}, glyphs)
	assert.Equal(t, 0, doc.Find(".requested-section-header").Length())
}

// TestBasket_Requests verifies requested items carry their affordances and optional link.
func TestBasket_Requests(t *testing.T) {
	t.Parallel()

	catalog := domain.DefaultCatalog()
	summary := basket.Aggregate(catalog, []domain.RawEntry{
		domain.NewRequestEntry(domain.RequestedItem{ID: "custom-1", Name: "Kiwi", Description: "Green <b>fuzzy</b>"}),
		domain.NewRequestEntry(domain.RequestedItem{ID: "custom-2", Name: "Mango", Description: "Ripe", Link: "https://example.com/mango"}),
	})

	html, err := Basket(catalog, summary, 2)
	require.NoError(t, err)

	doc := parse(t, html)
	require.Equal(t, 1, doc.Find(".requested-section-header").Length())

	items := doc.Find("li.requested-item")
	require.Equal(t, 2, items.Length())

	first := items.Eq(0)
	assert.Equal(t, "Kiwi", first.Find("strong").Text())
	assert.Equal(t, "Green <b>fuzzy</b>", first.Find(".requested-item-desc").Text(), "user text must be escaped")
	assert.Equal(t, 0, first.Find(".requested-item-link").Length())
	id, ok := first.Find(".remove-requested-item-btn").Attr("data-id")
	require.True(t, ok)
	assert.Equal(t, "custom-1", id)

	second := items.Eq(1)
	href, ok := second.Find(".requested-item-link a").Attr("href")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/mango", href)
	editID, _ := second.Find(".edit-requested-item-btn").Attr("data-id")
	assert.Equal(t, "custom-2", editID)
}

// TestBasket_OnlyUnknownProducts verifies a non-empty basket of unknown products renders an empty list, not the placeholder.
func TestBasket_OnlyUnknownProducts(t *testing.T) {
	t.Parallel()

	catalog := domain.DefaultCatalog()
	entries := []domain.RawEntry{
		domain.NewPickEntry("dragonfruit", "regular"),
		domain.NewLegacyEntry("durian"),
	}
	summary := basket.Aggregate(catalog, entries)
	require.True(t, summary.IsEmpty())

	html, err := Basket(catalog, summary, len(entries))
	require.NoError(t, err)

	doc := parse(t, html)
	assert.Equal(t, 1, doc.Find("#basketList").Length())
	assert.Equal(t, 0, doc.Find("#basketList li").Length())
	assert.NotContains(t, html, "No products in basket.")
}

// TestOrderSummary verifies the order view groups items and lists requests.
func TestOrderSummary(t *testing.T) {
	t.Parallel()

	catalog := domain.DefaultCatalog()
	order := &domain.Order{
		Items: []domain.RawEntry{
			domain.NewLegacyEntry("strawberry"),
			domain.NewPickEntry("strawberry", "regular"),
			domain.NewRequestEntry(domain.RequestedItem{ID: "custom-1", Name: "Kiwi", Description: "d"}),
		},
		CreatedAt: time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC),
		Date:      "3/5/2024",
		Time:      "2:07:09 PM",
	}

	html, err := OrderSummary(catalog, order)
	require.NoError(t, err)

	doc := parse(t, html)
	assert.Equal(t, "Order Summary", doc.Find(".order-summary h2").Text())
	assert.Equal(t, "Ordered on 3/5/2024 at 2:07:09 PM", doc.Find(".order-date").Text())

	lines := doc.Find(".order-items li")
	require.Equal(t, 3, lines.Length())
	assert.Equal(t, "2x ", lines.Eq(0).Find(".order-item-quantity").Text())
	assert.Contains(t, lines.Eq(0).Text(), "Strawberry - Regular")
	assert.Contains(t, doc.Find(".order-requested-item").Text(), "Kiwi")
}

// TestOrderSummary_NoOrder verifies nothing is rendered without an order.
func TestOrderSummary_NoOrder(t *testing.T) {
	t.Parallel()

	html, err := OrderSummary(domain.DefaultCatalog(), nil)
	require.NoError(t, err)
	assert.Empty(t, html)
}

// TestIndicator verifies the badge is hidden for an empty basket.
func TestIndicator(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Indicator(0))
	assert.Equal(t, "3", Indicator(3))
}
