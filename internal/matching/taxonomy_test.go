package matching

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		itemName    string
		description string
		want        Category
	}{
		{"phone by keyword", "iPhone 13", "black smartphone with cracked screen", CategoryPhone},
		{"bag by keyword", "Backpack", "blue nike backpack with laptop sleeve", CategoryBag},
		{"watch by brand", "Casio", "digital casio with metal strap", CategoryWatch},
		{"keys", "Car keys", "toyota remote on a keychain", CategoryKeys},
		{"documents", "Passport", "green passport with visa stamps", CategoryDocuments},
		{"unknown falls to catch-all", "Zorbulator", "strange gadgetless widget", CategoryOther},
		{"empty falls to catch-all", "", "", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.itemName, tt.description)
			if got != tt.want {
				t.Errorf("Classify(%q, %q) = %q, want %q", tt.itemName, tt.description, got, tt.want)
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	first := Classify("samsung device", "black samsung")
	for i := 0; i < 100; i++ {
		if got := Classify("samsung device", "black samsung"); got != first {
			t.Fatalf("classification changed between runs: %q then %q", first, got)
		}
	}
}

// "apple" alone scores one brand point for both phone and electronics;
// the earlier taxonomy entry must win the tie.
func TestClassifyTieBreakByOrder(t *testing.T) {
	if got := Classify("apple", ""); got != CategoryPhone {
		t.Errorf("Classify tie = %q, want %q", got, CategoryPhone)
	}
}

func TestCompatibleCategories(t *testing.T) {
	tests := []struct {
		a, b  Category
		ok    bool
		prior float64
	}{
		{CategoryPhone, CategoryPhone, true, 1.0},
		{CategoryPhone, CategoryElectronics, true, 0.7},
		{CategoryBag, CategoryClothing, true, 0.7},
		{CategoryJewelry, CategoryWatch, true, 0.7},
		{CategoryOther, CategoryDocuments, true, 0.3},
		{CategoryKeys, CategoryOther, true, 0.3},
		{CategoryDocuments, CategoryBag, false, 0.0},
		{CategoryPhone, CategoryClothing, false, 0.0},
	}

	for _, tt := range tests {
		ok, prior := CompatibleCategories(tt.a, tt.b)
		if ok != tt.ok || prior != tt.prior {
			t.Errorf("CompatibleCategories(%q, %q) = (%v, %v), want (%v, %v)",
				tt.a, tt.b, ok, prior, tt.ok, tt.prior)
		}

		// The gate must be order-independent.
		okRev, priorRev := CompatibleCategories(tt.b, tt.a)
		if okRev != ok || priorRev != prior {
			t.Errorf("CompatibleCategories(%q, %q) asymmetric: (%v, %v) vs (%v, %v)",
				tt.b, tt.a, okRev, priorRev, ok, prior)
		}
	}
}
