package matching

import (
	"context"
	"strings"
)

// SimilarityProvider is the capability set the scorer draws its signals
// from. Two implementations exist: EmbeddingProvider backed by the
// inference sidecar, and LexicalProvider used when the sidecar is
// unavailable. The variant is selected once at construction time, never
// dispatched per call.
type SimilarityProvider interface {
	TextSimilarity(ctx context.Context, a, b string) (float64, error)
	ImageSimilarity(ctx context.Context, keyA, keyB string) (float64, error)
	TextImageSimilarity(ctx context.Context, text, key string) (float64, error)
	ExtractColors(text string) map[string]struct{}
}

// colorVocabulary is the fixed lexicon for color-token extraction.
var colorVocabulary = map[string]struct{}{
	"black": {}, "white": {}, "red": {}, "green": {}, "blue": {}, "yellow": {},
	"pink": {}, "purple": {}, "orange": {}, "brown": {}, "gray": {}, "grey": {},
	"gold": {}, "silver": {}, "maroon": {}, "navy": {}, "beige": {}, "teal": {},
	"cyan": {}, "magenta": {}, "violet": {}, "indigo": {}, "turquoise": {},
	"crimson": {}, "scarlet": {}, "emerald": {}, "lime": {}, "olive": {},
	"coral": {}, "salmon": {}, "khaki": {}, "tan": {}, "bronze": {},
	"copper": {}, "platinum": {}, "cream": {}, "ivory": {},
}

// extractColorTokens tokenizes text, strips punctuation, lowercases and
// intersects with the color vocabulary. Shared by both provider variants.
func extractColorTokens(text string) map[string]struct{} {
	colors := make(map[string]struct{})
	for _, word := range strings.Fields(text) {
		word = strings.ToLower(strings.Trim(word, ".,!?:;()[]{}\"'-"))
		if _, ok := colorVocabulary[word]; ok {
			colors[word] = struct{}{}
		}
	}
	return colors
}

// LexicalProvider is the fallback similarity variant. No model calls:
// text similarity is a word-overlap/sequence blend, image similarity is
// a neutral constant and text-to-image yields no evidence. It never
// returns an error.
type LexicalProvider struct{}

// NewLexicalProvider creates the fallback provider.
func NewLexicalProvider() *LexicalProvider {
	return &LexicalProvider{}
}

// TextSimilarity scores two texts with exact-match and containment
// short-circuits, then a blend of Jaccard word overlap and character
// sequence similarity.
func (p *LexicalProvider) TextSimilarity(_ context.Context, a, b string) (float64, error) {
	textA := strings.ToLower(strings.TrimSpace(a))
	textB := strings.ToLower(strings.TrimSpace(b))

	if textA == textB {
		return 1.0, nil
	}
	if strings.Contains(textA, textB) || strings.Contains(textB, textA) {
		return 0.8, nil
	}

	wordsA := fieldSet(textA)
	wordsB := fieldSet(textB)
	common := 0
	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			common++
		}
	}

	seq := sequenceRatio(textA, textB)
	if common > 0 {
		union := len(wordsA) + len(wordsB) - common
		jaccard := float64(common) / float64(union)
		blended := jaccard*0.7 + seq*0.3
		if blended > seq {
			return blended, nil
		}
	}
	return seq, nil
}

// ImageSimilarity returns a fixed neutral constant: no pixel comparison
// is attempted without the embedding models.
func (p *LexicalProvider) ImageSimilarity(_ context.Context, _, _ string) (float64, error) {
	return 0.5, nil
}

// TextImageSimilarity returns 0: no evidence, not a confirmed mismatch.
// The scenario weighting upstream accounts for that.
func (p *LexicalProvider) TextImageSimilarity(_ context.Context, _, _ string) (float64, error) {
	return 0.0, nil
}

// ExtractColors works lexically in both variants.
func (p *LexicalProvider) ExtractColors(text string) map[string]struct{} {
	return extractColorTokens(text)
}

func fieldSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(text) {
		set[w] = struct{}{}
	}
	return set
}
