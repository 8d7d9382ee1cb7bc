package matching

import (
	"strings"

	"lostandfound-backend/internal/models"
)

// Category is one of the fixed item taxonomy members.
type Category string

const (
	CategoryPhone       Category = "phone"
	CategoryBag         Category = "bag"
	CategoryWatch       Category = "watch"
	CategoryJewelry     Category = "jewelry"
	CategoryKeys        Category = "keys"
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryDocuments   Category = "documents"
	CategoryOther       Category = "other"
)

type categoryLexicon struct {
	category Category
	keywords []string
	brands   []string
}

// taxonomy is a slice, not a map: classification ties are broken by
// declaration order, first entry wins.
var taxonomy = []categoryLexicon{
	{
		category: CategoryPhone,
		keywords: []string{"phone", "mobile", "smartphone", "iphone", "android", "samsung", "huawei", "xiaomi", "oppo", "vivo", "realme", "oneplus", "nokia", "infinix", "tecno"},
		brands:   []string{"apple", "samsung", "huawei", "xiaomi", "oppo", "vivo", "realme", "oneplus", "nokia", "infinix", "tecno", "motorola", "lg", "sony"},
	},
	{
		category: CategoryBag,
		keywords: []string{"bag", "backpack", "purse", "handbag", "satchel", "briefcase", "tote", "clutch", "wallet", "pouch"},
		brands:   []string{"nike", "adidas", "puma", "gucci", "prada", "louis vuitton", "coach", "michael kors"},
	},
	{
		category: CategoryWatch,
		keywords: []string{"watch", "timepiece", "smartwatch", "wristwatch", "clock"},
		brands:   []string{"rolex", "omega", "casio", "seiko", "apple watch", "samsung watch", "fitbit", "garmin", "fossil"},
	},
	{
		category: CategoryJewelry,
		keywords: []string{"ring", "necklace", "bracelet", "earring", "pendant", "chain", "jewelry", "jewellery"},
		brands:   []string{"tiffany", "cartier", "pandora", "swarovski"},
	},
	{
		category: CategoryKeys,
		keywords: []string{"key", "keys", "keychain", "car key", "house key", "remote"},
		brands:   []string{"toyota", "honda", "suzuki", "hyundai", "kia", "nissan", "mazda"},
	},
	{
		category: CategoryElectronics,
		keywords: []string{"laptop", "tablet", "headphones", "earbuds", "charger", "cable", "adapter", "powerbank", "speaker"},
		brands:   []string{"apple", "dell", "hp", "lenovo", "asus", "acer", "sony", "bose", "jbl"},
	},
	{
		category: CategoryClothing,
		keywords: []string{"shirt", "jacket", "coat", "sweater", "hoodie", "pants", "jeans", "dress", "skirt", "shoes", "sneakers"},
		brands:   []string{"nike", "adidas", "zara", "h&m", "uniqlo", "gap", "levis"},
	},
	{
		category: CategoryDocuments,
		keywords: []string{"id", "passport", "license", "card", "certificate", "document", "paper", "cnic", "driving license"},
		brands:   []string{},
	},
	{
		category: CategoryOther,
		keywords: []string{"item", "thing", "object", "stuff"},
		brands:   []string{},
	},
}

// compatiblePairs lists category pairs that may still match across
// categories. Symmetric: both directions are present.
var compatiblePairs = map[Category][]Category{
	CategoryPhone:       {CategoryElectronics},
	CategoryElectronics: {CategoryPhone},
	CategoryBag:         {CategoryClothing},
	CategoryClothing:    {CategoryBag},
	CategoryJewelry:     {CategoryWatch},
	CategoryWatch:       {CategoryJewelry},
}

// Compatibility prior scores fed back into the scorer as a bonus signal.
const (
	priorSameCategory = 1.0
	priorRelatedPair  = 0.7
	priorCatchAll     = 0.3
	priorIncompatible = 0.0
)

// Classify maps an item's name and description to a taxonomy category.
// Keyword substring hits score 2 points, brand hits 1 point; the highest
// total wins, ties resolved by taxonomy order. All-zero text falls back
// to the catch-all category. Pure function of its inputs.
func Classify(name, description string) Category {
	text := strings.ToLower(name + " " + description)

	best := CategoryOther
	bestScore := 0
	for _, entry := range taxonomy {
		score := 0
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				score += 2
			}
		}
		for _, brand := range entry.brands {
			if strings.Contains(text, brand) {
				score++
			}
		}
		if score > bestScore {
			best = entry.category
			bestScore = score
		}
	}
	if bestScore == 0 {
		return CategoryOther
	}
	return best
}

// CompatibleCategories decides whether two categories are eligible to
// match at all, and with what prior score. Order-independent.
func CompatibleCategories(a, b Category) (bool, float64) {
	if a == b {
		return true, priorSameCategory
	}
	for _, related := range compatiblePairs[a] {
		if related == b {
			return true, priorRelatedPair
		}
	}
	if a == CategoryOther || b == CategoryOther {
		return true, priorCatchAll
	}
	return false, priorIncompatible
}

// Compatible classifies both reports and runs the compatibility gate.
// Incompatibility is a hard veto upstream: the scorer returns 0 without
// touching any other signal.
func Compatible(lost *models.LostItem, found *models.FoundItem) (bool, float64, Category, Category) {
	lostCat := Classify(lost.ItemName, lost.Description)
	foundCat := Classify(found.ItemName, found.Description)
	ok, prior := CompatibleCategories(lostCat, foundCat)
	return ok, prior, lostCat, foundCat
}
