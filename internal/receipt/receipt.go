// Package receipt turns raw model output from a receipt photo into priced,
// categorized, carbon-scored items. Everything here is pure; the service
// layer owns the model call and persistence.
package receipt

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/ecotrack-backend/internal/aijson"
	"github.com/yungbote/ecotrack-backend/internal/carbon"
)

type Item struct {
	ItemName       string `json:"item_name"`
	Category       string `json:"category"`
	Quantity       int    `json:"quantity"`
	Price          string `json:"price,omitempty"`
	CarbonEmission int    `json:"carbon_emission"` // grams
	Confidence     int    `json:"confidence"`      // 0-100
}

type Analysis struct {
	StoreName    string `json:"store_name"`
	PurchaseDate string `json:"purchase_date"`
	TotalAmount  string `json:"total_amount"`
	Items        []Item `json:"items"`
	TotalCarbon  int    `json:"total_carbon"` // grams, sum over items
	ItemCount    int    `json:"item_count"`
	RawResponse  string `json:"-"`
}

// Saving is one substitution opportunity: what the category currently emits,
// what it would emit after the swap, and the difference.
type Saving struct {
	Category  string `json:"category"`
	Current   int    `json:"current"`
	Potential int    `json:"potential"`
	Savings   int    `json:"savings"`
}

// AnalysisPrompt returns the fixed instruction block sent with every receipt
// image. The category list must stay in sync with carbon.ShoppingFactors.
func AnalysisPrompt() string {
	return `You are an expert receipt analyzer and environmental consultant. Analyze this receipt image and extract the following information:

1. Store/merchant name
2. Purchase date (if visible)
3. Total amount paid
4. List of all items purchased with their quantities

For EACH item, you must:
- Identify the product name
- Categorize it into one of these categories: electronics, electronics-accessory, clothing, shoes, personal-care, cleaning-supplies, packaged-food, fresh-food, beverages, snacks-candy, dairy-products, meat-products, household-items, books, toys, furniture, office-supplies, other
- Estimate quantity (if not explicitly shown, assume 1)
- Extract price if visible
- Rate your confidence in the categorization (0-100)

IMPORTANT RULES:
1. Be specific with categories - use the exact category names provided
2. For food items, distinguish between fresh-food, packaged-food, snacks-candy, dairy-products, and meat-products
3. For unclear items, use your best judgment and lower the confidence score
4. If an item name is abbreviated or unclear, expand it to the most likely full name

Respond ONLY in valid JSON format:
{
  "storeName": "extracted store name or 'Unknown Store'",
  "purchaseDate": "YYYY-MM-DD or 'Unknown'",
  "totalAmount": "extracted total or 'N/A'",
  "items": [
    {
      "itemName": "full product name",
      "category": "one of the specified categories",
      "quantity": number,
      "price": "price as string or null",
      "confidence": number between 0-100
    }
  ]
}

If the image is not a receipt or is too blurry to read, return:
{
  "error": "Unable to process receipt",
  "storeName": "Unknown Store",
  "purchaseDate": "Unknown",
  "totalAmount": "N/A",
  "items": []
}`
}

// ItemCarbon computes a scanned item's emissions from its category factor.
// Unknown categories use the "other" factor; the receipt is never failed over
// one bad category.
func ItemCarbon(category string, quantity int) int {
	if quantity < 1 {
		quantity = 1
	}
	return carbon.CalculateEmission(float64(carbon.ShoppingFactor(category)), float64(quantity))
}

// ParseAnalysis normalizes and validates raw model output for a receipt.
// Failures are the typed aijson errors; callers surface them as a "try a
// clearer image" message and persist nothing.
func ParseAnalysis(raw string) (*Analysis, error) {
	obj, err := aijson.ExtractObject(raw)
	if err != nil {
		return nil, err
	}

	itemsVal, ok := aijson.Array(obj["items"])
	if !ok {
		return nil, &aijson.ValidationError{Field: "items", Reason: "missing or not an array"}
	}

	items := make([]Item, 0, len(itemsVal))
	totalCarbon := 0
	for _, v := range itemsVal {
		entry, ok := v.(map[string]any)
		if !ok {
			continue
		}
		quantity, ok := aijson.Int(entry["quantity"])
		if !ok || quantity < 1 {
			quantity = 1
		}
		category := strings.TrimSpace(aijson.Str(entry["category"]))
		if category == "" {
			category = "other"
		}
		name := strings.TrimSpace(aijson.Str(entry["itemName"]))
		if name == "" {
			name = "Unknown Item"
		}
		confidence, ok := aijson.Int(entry["confidence"])
		if !ok {
			confidence = 70
		}
		grams := ItemCarbon(category, quantity)
		items = append(items, Item{
			ItemName:       aijson.Truncate(name, aijson.MaxFreeTextLen),
			Category:       category,
			Quantity:       quantity,
			Price:          aijson.Truncate(strings.TrimSpace(aijson.Str(entry["price"])), aijson.MaxFreeTextLen),
			CarbonEmission: grams,
			Confidence:     aijson.ClampInt(confidence, 0, 100),
		})
		totalCarbon += grams
	}

	storeName := strings.TrimSpace(aijson.Str(obj["storeName"]))
	if storeName == "" {
		storeName = "Unknown Store"
	}
	purchaseDate := strings.TrimSpace(aijson.Str(obj["purchaseDate"]))
	if purchaseDate == "" {
		purchaseDate = time.Now().UTC().Format("2006-01-02")
	}
	totalAmount := strings.TrimSpace(aijson.Str(obj["totalAmount"]))
	if totalAmount == "" {
		totalAmount = "N/A"
	}

	return &Analysis{
		StoreName:    aijson.Truncate(storeName, aijson.MaxFreeTextLen),
		PurchaseDate: aijson.Truncate(purchaseDate, aijson.MaxFreeTextLen),
		TotalAmount:  aijson.Truncate(totalAmount, aijson.MaxFreeTextLen),
		Items:        items,
		TotalCarbon:  totalCarbon,
		ItemCount:    len(items),
		RawResponse:  raw,
	}, nil
}

// highEmissionThreshold marks single items worth calling out, in grams.
const highEmissionThreshold = 5000

// Insights derives short human-readable observations from a receipt's items.
func Insights(items []Item) []string {
	insights := []string{}

	categoryTotals := map[string]int{}
	for _, item := range items {
		categoryTotals[item.Category] += item.CarbonEmission
	}

	topCategory := ""
	topTotal := 0
	for cat, total := range categoryTotals {
		if total > topTotal || (total == topTotal && topCategory != "" && cat < topCategory) {
			topCategory = cat
			topTotal = total
		}
	}
	if topCategory != "" && topTotal > 0 {
		name := strings.ReplaceAll(topCategory, "-", " ")
		insights = append(insights, name+" items contributed the most to your carbon footprint on this receipt")
	}

	highCount := 0
	for _, item := range items {
		if item.CarbonEmission > highEmissionThreshold {
			highCount++
		}
	}
	if highCount == 1 {
		insights = append(insights, "1 item had high carbon emissions (>5kg CO₂)")
	} else if highCount > 1 {
		insights = append(insights, strconv.Itoa(highCount)+" items had high carbon emissions (>5kg CO₂)")
	}

	hasCategory := func(cat string) bool {
		for _, item := range items {
			if item.Category == cat {
				return true
			}
		}
		return false
	}
	if hasCategory("electronics") {
		insights = append(insights, "Consider buying refurbished electronics to reduce carbon by up to 70%")
	}
	if hasCategory("meat-products") {
		insights = append(insights, "Swapping some meat products for plant-based alternatives can significantly reduce your footprint")
	}
	if hasCategory("packaged-food") {
		insights = append(insights, "Fresh, local produce typically has a lower carbon footprint than packaged foods")
	}

	return insights
}

// Substitution policies. The retain ratios are fixed domain constants.
var savingPolicies = []struct {
	category string
	label    string
	retain   float64
}{
	{"electronics", "Electronics (buy refurbished)", 0.3},
	{"meat-products", "Meat (switch to plant-based)", 0.2},
	{"packaged-food", "Packaged Food (buy fresh/local)", 0.6},
}

// PotentialSavings reports, per substitution policy, how much of the
// receipt's footprint could be avoided. Categories with no emissions are
// skipped.
func PotentialSavings(items []Item) []Saving {
	savings := []Saving{}
	for _, policy := range savingPolicies {
		current := 0
		for _, item := range items {
			if item.Category == policy.category {
				current += item.CarbonEmission
			}
		}
		if current <= 0 {
			continue
		}
		potential := int(math.Round(float64(current) * policy.retain))
		savings = append(savings, Saving{
			Category:  policy.label,
			Current:   current,
			Potential: potential,
			Savings:   current - potential,
		})
	}
	return savings
}
