package carbon

// Emission factors are reference data: grams of CO2 per unit of activity.
// They are resolved once at log time; stored logs keep the computed grams so
// historical entries stay stable if a factor is ever revised.

type Category string

const (
	CategoryTransport Category = "transport"
	CategoryFood      Category = "food"
	CategoryEnergy    Category = "energy"
	CategoryShopping  Category = "shopping"
)

type Factor struct {
	Category     Category
	ActivityName string
	GramsPerUnit int
	Unit         string
	Description  string
}

// DefaultActivities is the predefined activity catalog seeded into the
// database on first boot. Values are averages in grams of CO2.
var DefaultActivities = []Factor{
	// Transport
	{CategoryTransport, "Car (petrol)", 192, "km", "Average petrol car emissions per kilometer"},
	{CategoryTransport, "Car (diesel)", 171, "km", "Average diesel car emissions per kilometer"},
	{CategoryTransport, "Car (electric)", 53, "km", "Average electric car emissions per kilometer"},
	{CategoryTransport, "Bus", 89, "km", "Public bus emissions per kilometer"},
	{CategoryTransport, "Train", 41, "km", "Train emissions per kilometer"},
	{CategoryTransport, "Motorcycle", 103, "km", "Motorcycle emissions per kilometer"},
	{CategoryTransport, "Bicycle", 0, "km", "Zero emissions"},
	{CategoryTransport, "Walking", 0, "km", "Zero emissions"},

	// Food
	{CategoryFood, "Beef", 27000, "kg", "Beef production emissions per kg"},
	{CategoryFood, "Lamb", 39200, "kg", "Lamb production emissions per kg"},
	{CategoryFood, "Pork", 12100, "kg", "Pork production emissions per kg"},
	{CategoryFood, "Chicken", 6900, "kg", "Chicken production emissions per kg"},
	{CategoryFood, "Fish", 5000, "kg", "Fish production emissions per kg"},
	{CategoryFood, "Cheese", 13500, "kg", "Cheese production emissions per kg"},
	{CategoryFood, "Milk", 1900, "liter", "Milk production emissions per liter"},
	{CategoryFood, "Eggs", 4500, "kg", "Eggs production emissions per kg"},
	{CategoryFood, "Rice", 4000, "kg", "Rice production emissions per kg"},
	{CategoryFood, "Vegetables", 500, "kg", "Average vegetable production emissions per kg"},
	{CategoryFood, "Fruits", 400, "kg", "Average fruit production emissions per kg"},
	{CategoryFood, "Plant-based meal", 1500, "meal", "Average plant-based meal emissions"},

	// Energy
	{CategoryEnergy, "Electricity (grid)", 475, "kwh", "Grid electricity emissions per kWh"},
	{CategoryEnergy, "Natural gas", 202, "kwh", "Natural gas emissions per kWh"},
	{CategoryEnergy, "Heating oil", 277, "liter", "Heating oil emissions per liter"},
	{CategoryEnergy, "Solar power", 0, "kwh", "Zero emissions from solar"},

	// Shopping
	{CategoryShopping, "New clothing (cotton)", 5000, "item", "Average cotton garment emissions"},
	{CategoryShopping, "New clothing (synthetic)", 7000, "item", "Average synthetic garment emissions"},
	{CategoryShopping, "Electronics", 50000, "item", "Average electronics device emissions"},
	{CategoryShopping, "Second-hand item", 500, "item", "Reduced emissions from reuse"},
	{CategoryShopping, "Plastic bottle", 82, "item", "Single-use plastic bottle emissions"},
	{CategoryShopping, "Paper product", 1000, "kg", "Paper production emissions per kg"},
}

// ShoppingFactors maps receipt item categories to per-item grams of CO2.
// The key set is the category vocabulary the receipt-analysis prompt allows.
var ShoppingFactors = map[string]int{
	"electronics":           50000,
	"electronics-accessory": 5000,
	"clothing":              5000,
	"shoes":                 7000,
	"personal-care":         2000,
	"cleaning-supplies":     1500,
	"packaged-food":         1000,
	"fresh-food":            500,
	"beverages":             500,
	"snacks-candy":          800,
	"dairy-products":        1900,
	"meat-products":         5000,
	"household-items":       3000,
	"books":                 1500,
	"toys":                  4000,
	"furniture":             50000,
	"office-supplies":       1000,
	"other":                 2000,
}

// ShoppingFactor returns the per-item factor for a receipt category. Unknown
// categories fall back to "other" rather than failing the whole receipt.
func ShoppingFactor(category string) int {
	if f, ok := ShoppingFactors[category]; ok {
		return f
	}
	return ShoppingFactors["other"]
}
