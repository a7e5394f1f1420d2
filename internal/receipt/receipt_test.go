package receipt

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/yungbote/ecotrack-backend/internal/aijson"
)

func TestParseAnalysisFencedResponse(t *testing.T) {
	raw := "```json\n" + `{
		"storeName": "Campus Mart",
		"purchaseDate": "2026-03-14",
		"totalAmount": "$42.10",
		"items": [
			{"itemName": "Wireless Mouse", "category": "electronics", "quantity": 1, "price": "$25.00", "confidence": 95},
			{"itemName": "Trail Mix", "category": "snacks-candy", "quantity": 2, "price": "$8.00", "confidence": 80}
		]
	}` + "\n```"

	analysis, err := ParseAnalysis(raw)
	if err != nil {
		t.Fatalf("ParseAnalysis: %v", err)
	}
	if analysis.StoreName != "Campus Mart" {
		t.Fatalf("store name = %q", analysis.StoreName)
	}
	if analysis.ItemCount != 2 {
		t.Fatalf("item count = %d, want 2", analysis.ItemCount)
	}
	// electronics 50000*1 + snacks-candy 800*2
	if analysis.TotalCarbon != 50000+1600 {
		t.Fatalf("total carbon = %d, want %d", analysis.TotalCarbon, 50000+1600)
	}
	if analysis.Items[0].CarbonEmission != 50000 {
		t.Fatalf("mouse carbon = %d, want 50000", analysis.Items[0].CarbonEmission)
	}
	sum := 0
	for _, item := range analysis.Items {
		sum += item.CarbonEmission
	}
	if sum != analysis.TotalCarbon {
		t.Fatalf("item sum %d != total %d", sum, analysis.TotalCarbon)
	}
}

func TestParseAnalysisDefaults(t *testing.T) {
	raw := `{"items": [{"itemName": "  ", "category": "mystery-goods", "quantity": 0, "confidence": 250}]}`

	analysis, err := ParseAnalysis(raw)
	if err != nil {
		t.Fatalf("ParseAnalysis: %v", err)
	}
	if analysis.StoreName != "Unknown Store" {
		t.Fatalf("store name = %q", analysis.StoreName)
	}
	if analysis.PurchaseDate != time.Now().UTC().Format("2006-01-02") {
		t.Fatalf("purchase date = %q, want today", analysis.PurchaseDate)
	}
	if analysis.TotalAmount != "N/A" {
		t.Fatalf("total amount = %q", analysis.TotalAmount)
	}
	item := analysis.Items[0]
	if item.ItemName != "Unknown Item" {
		t.Fatalf("item name = %q", item.ItemName)
	}
	if item.Quantity != 1 {
		t.Fatalf("quantity = %d, want 1", item.Quantity)
	}
	// unknown category falls back to "other" (2000g)
	if item.CarbonEmission != 2000 {
		t.Fatalf("carbon = %d, want 2000", item.CarbonEmission)
	}
	if item.Confidence != 100 {
		t.Fatalf("confidence = %d, want clamped 100", item.Confidence)
	}
}

func TestParseAnalysisUnreadableReceipt(t *testing.T) {
	raw := `{"error": "Unable to process receipt", "storeName": "Unknown Store", "items": []}`

	_, err := ParseAnalysis(raw)
	var semErr *aijson.SemanticError
	if !errors.As(err, &semErr) {
		t.Fatalf("err = %v, want SemanticError", err)
	}
}

func TestParseAnalysisMissingItems(t *testing.T) {
	_, err := ParseAnalysis(`{"storeName": "Campus Mart"}`)
	var valErr *aijson.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if valErr.Field != "items" {
		t.Fatalf("field = %q, want items", valErr.Field)
	}
}

func TestParseAnalysisGarbage(t *testing.T) {
	_, err := ParseAnalysis("sorry, I can't read that")
	var parseErr *aijson.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("err = %v, want ParseError", err)
	}
}

func TestPotentialSavingsRatios(t *testing.T) {
	items := []Item{
		{Category: "electronics", CarbonEmission: 50000},
		{Category: "meat-products", CarbonEmission: 10000},
		{Category: "packaged-food", CarbonEmission: 1000},
		{Category: "books", CarbonEmission: 5000},
	}

	savings := PotentialSavings(items)
	if len(savings) != 3 {
		t.Fatalf("got %d savings entries, want 3", len(savings))
	}

	electronics := savings[0]
	if electronics.Current != 50000 || electronics.Potential != 15000 || electronics.Savings != 35000 {
		t.Fatalf("electronics = %+v", electronics)
	}
	meat := savings[1]
	if meat.Potential != 2000 || meat.Savings != 8000 {
		t.Fatalf("meat = %+v", meat)
	}
	packaged := savings[2]
	if packaged.Potential != 600 || packaged.Savings != 400 {
		t.Fatalf("packaged = %+v", packaged)
	}
}

func TestPotentialSavingsSkipsAbsentCategories(t *testing.T) {
	savings := PotentialSavings([]Item{{Category: "books", CarbonEmission: 5000}})
	if len(savings) != 0 {
		t.Fatalf("got %d savings entries, want 0", len(savings))
	}
}

func TestInsightsHighEmissionAndCategories(t *testing.T) {
	items := []Item{
		{Category: "electronics", CarbonEmission: 50000},
		{Category: "meat-products", CarbonEmission: 7000},
		{Category: "fresh-food", CarbonEmission: 400},
	}

	insights := Insights(items)
	joined := strings.Join(insights, "\n")
	if !strings.Contains(joined, "electronics items contributed the most") {
		t.Fatalf("missing top-category insight: %v", insights)
	}
	if !strings.Contains(joined, "2 items had high carbon emissions") {
		t.Fatalf("missing high-emission insight: %v", insights)
	}
	if !strings.Contains(joined, "refurbished electronics") {
		t.Fatalf("missing electronics tip: %v", insights)
	}
	if !strings.Contains(joined, "plant-based") {
		t.Fatalf("missing meat tip: %v", insights)
	}
}

func TestInsightsEmpty(t *testing.T) {
	if got := Insights(nil); len(got) != 0 {
		t.Fatalf("insights for empty receipt = %v", got)
	}
}

func TestAnalysisPromptListsAllCategories(t *testing.T) {
	prompt := AnalysisPrompt()
	for _, cat := range []string{"electronics", "meat-products", "snacks-candy", "other"} {
		if !strings.Contains(prompt, cat) {
			t.Fatalf("prompt missing category %q", cat)
		}
	}
	if !strings.Contains(prompt, "valid JSON") {
		t.Fatal("prompt missing JSON instruction")
	}
}
