// Package grocery classifies ingredients into shopping categories, consolidates
// shopping lists into grams and maps categories to the shop types used by the
// nearby-shops collaborator.
package grocery

// Shopping categories.
const (
	CategoryMeat      = "meat"
	CategorySeafood   = "seafood"
	CategoryDairy     = "dairy"
	CategoryBakery    = "bakery"
	CategoryProduce   = "produce"
	CategoryBeverages = "beverages"
	CategorySweets    = "sweets"
	CategorySpices    = "spices"
	CategoryOther     = "other"
)

// Shop types understood by the geo collaborator.
const (
	ShopButcher       = "butcher"
	ShopSeafood       = "seafood"
	ShopDairy         = "dairy"
	ShopBakery        = "bakery"
	ShopGreengrocer   = "greengrocer"
	ShopBeverages     = "beverages"
	ShopConfectionery = "confectionery"
	ShopSpices        = "spices"
	ShopSupermarket   = "supermarket"
)

// CanonicalUnit is the unit every consolidated quantity is expressed in.
const CanonicalUnit = "g"

var categoryOrder = []string{
	CategoryMeat,
	CategorySeafood,
	CategoryDairy,
	CategoryBakery,
	CategoryProduce,
	CategoryBeverages,
	CategorySweets,
	CategorySpices,
	CategoryOther,
}

var shopTypeByCategory = map[string]string{
	CategoryMeat:      ShopButcher,
	CategorySeafood:   ShopSeafood,
	CategoryDairy:     ShopDairy,
	CategoryBakery:    ShopBakery,
	CategoryProduce:   ShopGreengrocer,
	CategoryBeverages: ShopBeverages,
	CategorySweets:    ShopConfectionery,
	CategorySpices:    ShopSpices,
	CategoryOther:     ShopSupermarket,
}

// categoryByShopType is the inverse of shopTypeByCategory.
var categoryByShopType map[string]string

// priority maps a provider category tag to its shopping category. Keys are
// lower-case and matched exactly; the recipe provider client folds tags
// (spoonacular.foldTags) before they reach Classify.
var priority = map[string]string{
	"meat":        CategoryMeat,
	"beef":        CategoryMeat,
	"pork":        CategoryMeat,
	"poultry":     CategoryMeat,
	"chicken":     CategoryMeat,
	"lamb":        CategoryMeat,
	"sausage":     CategoryMeat,
	"cured meat":  CategoryMeat,
	"seafood":     CategorySeafood,
	"fish":        CategorySeafood,
	"shellfish":   CategorySeafood,
	"dairy":       CategoryDairy,
	"cheese":      CategoryDairy,
	"milk":        CategoryDairy,
	"yogurt":      CategoryDairy,
	"cream":       CategoryDairy,
	"butter":      CategoryDairy,
	"eggs":        CategoryDairy,
	"bakery":      CategoryBakery,
	"bread":       CategoryBakery,
	"baked goods": CategoryBakery,
	"pastry":      CategoryBakery,
	"produce":     CategoryProduce,
	"fruit":       CategoryProduce,
	"fruits":      CategoryProduce,
	"vegetable":   CategoryProduce,
	"vegetables":  CategoryProduce,
	"herbs":       CategoryProduce,
	"fresh herbs": CategoryProduce,

	"beverages":           CategoryBeverages,
	"beverage":            CategoryBeverages,
	"drinks":              CategoryBeverages,
	"alcoholic beverages": CategoryBeverages,
	"wine":                CategoryBeverages,
	"beer":                CategoryBeverages,
	"coffee":              CategoryBeverages,
	"tea":                 CategoryBeverages,

	"sweets":                CategorySweets,
	"candy":                 CategorySweets,
	"chocolate":             CategorySweets,
	"sweet snacks":          CategorySweets,
	"spices":                CategorySpices,
	"spices and seasonings": CategorySpices,
	"seasoning":             CategorySpices,
	"seasonings":            CategorySpices,
}

func init() {
	categoryByShopType = make(map[string]string, len(shopTypeByCategory))
	for category, shop := range shopTypeByCategory {
		if prev, dup := categoryByShopType[shop]; dup {
			panic("grocery: shop type " + shop + " mapped from both " + prev + " and " + category)
		}
		categoryByShopType[shop] = category
	}
}

// Categories returns every shopping category in display order.
func Categories() []string {
	out := make([]string, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// ShopTypes returns every shop type, ordered like Categories.
func ShopTypes() []string {
	out := make([]string, 0, len(categoryOrder))
	for _, c := range categoryOrder {
		out = append(out, shopTypeByCategory[c])
	}
	return out
}

// IsCanonicalUnit reports whether unit already denotes grams.
func IsCanonicalUnit(unit string) bool {
	switch unit {
	case "g", "gram", "grams":
		return true
	}
	return false
}
