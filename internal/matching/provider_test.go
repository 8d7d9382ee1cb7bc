package matching

import (
	"context"
	"testing"
)

func TestLexicalTextSimilarity(t *testing.T) {
	p := NewLexicalProvider()
	ctx := context.Background()

	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"exact match", "black wallet", "black wallet", 1.0},
		{"case and space insensitive", "  Black Wallet ", "black wallet", 1.0},
		{"containment", "black leather wallet", "wallet", 0.8},
		{"containment reversed", "wallet", "black leather wallet", 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.TextSimilarity(ctx, tt.a, tt.b)
			if err != nil {
				t.Fatalf("TextSimilarity: %v", err)
			}
			if got != tt.want {
				t.Errorf("TextSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestLexicalTextSimilarityBlend(t *testing.T) {
	p := NewLexicalProvider()
	ctx := context.Background()

	// Shared words but no containment: the blend must land strictly
	// between no-overlap and exact.
	got, err := p.TextSimilarity(ctx, "black phone cracked screen", "phone with black case")
	if err != nil {
		t.Fatalf("TextSimilarity: %v", err)
	}
	if got <= 0 || got >= 0.8 {
		t.Errorf("blended similarity = %v, want in (0, 0.8)", got)
	}

	// Completely unrelated text scores near zero.
	unrelated, err := p.TextSimilarity(ctx, "umbrella", "xyzzy")
	if err != nil {
		t.Fatalf("TextSimilarity: %v", err)
	}
	if unrelated >= got {
		t.Errorf("unrelated similarity %v >= related similarity %v", unrelated, got)
	}
}

func TestLexicalImageSignals(t *testing.T) {
	p := NewLexicalProvider()
	ctx := context.Background()

	img, err := p.ImageSimilarity(ctx, "a.jpg", "b.jpg")
	if err != nil || img != 0.5 {
		t.Errorf("ImageSimilarity = (%v, %v), want (0.5, nil)", img, err)
	}

	ti, err := p.TextImageSimilarity(ctx, "black wallet", "b.jpg")
	if err != nil || ti != 0.0 {
		t.Errorf("TextImageSimilarity = (%v, %v), want (0, nil)", ti, err)
	}
}

func TestExtractColors(t *testing.T) {
	p := NewLexicalProvider()

	colors := p.ExtractColors("Black leather wallet, slightly worn (dark Brown strap).")
	if len(colors) != 2 {
		t.Fatalf("expected 2 colors, got %v", colors)
	}
	for _, want := range []string{"black", "brown"} {
		if _, ok := colors[want]; !ok {
			t.Errorf("expected color %q in %v", want, colors)
		}
	}

	if got := p.ExtractColors("plain wallet with no stated hue"); len(got) != 0 {
		t.Errorf("expected no colors, got %v", got)
	}
}

func TestEnhanceTextForCaption(t *testing.T) {
	got := enhanceTextForCaption("Black Phone")
	want := "a photo of black phone mobile phone smartphone device"
	if got != want {
		t.Errorf("enhanceTextForCaption = %q, want %q", got, want)
	}

	if got := enhanceTextForCaption(""); got != "" {
		t.Errorf("empty text enhanced to %q, want empty", got)
	}
}

func TestApplyDescriptorBoost(t *testing.T) {
	// Color + material hits: factor 1.18.
	got := applyDescriptorBoost("black leather wallet", 0.5)
	if got != 0.5*1.18 {
		t.Errorf("boosted = %v, want %v", got, 0.5*1.18)
	}

	// All four descriptor classes together sum to 1.28, under the cap.
	all := applyDescriptorBoost("large round black leather thing", 0.5)
	if all != 0.5*1.28 {
		t.Errorf("full boost = %v, want %v", all, 0.5*1.28)
	}

	// Result never exceeds 1.0.
	if got := applyDescriptorBoost("black leather", 0.95); got != 1.0 {
		t.Errorf("clamped boost = %v, want 1.0", got)
	}

	// No descriptors, no change.
	if got := applyDescriptorBoost("wallet", 0.5); got != 0.5 {
		t.Errorf("unboosted = %v, want 0.5", got)
	}
}
