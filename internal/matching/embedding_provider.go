package matching

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"

	"lostandfound-backend/internal/embedding"
)

// visualSynonyms expands item keywords with phrases joint text/image
// embedding models resolve well. Raw report text tends to be terse;
// caption-like text scores noticeably better. Ordered so enhancement is
// deterministic.
var visualSynonyms = []struct {
	keyword  string
	synonyms string
}{
	{"phone", "mobile phone smartphone device"},
	{"bag", "handbag backpack purse luggage"},
	{"wallet", "leather wallet purse money holder"},
	{"keys", "key chain metal keys car keys"},
	{"watch", "wristwatch timepiece clock"},
	{"laptop", "computer notebook laptop device"},
	{"glasses", "eyeglasses spectacles reading glasses"},
	{"book", "notebook book diary journal"},
	{"bottle", "water bottle drink container"},
	{"umbrella", "rain umbrella weather protection"},
}

// Descriptor vocabularies scanned for the text-to-image confidence boost.
var (
	boostColors    = []string{"red", "blue", "green", "black", "white", "yellow", "brown", "gray", "pink", "purple", "orange"}
	boostMaterials = []string{"leather", "metal", "plastic", "wooden", "fabric", "cotton", "silk"}
	boostSizes     = []string{"small", "large", "big", "tiny", "huge", "medium"}
	boostShapes    = []string{"round", "square", "rectangular", "oval", "circular"}
)

const maxDescriptorBoost = 1.3

// EmbeddingProvider is the model-backed similarity variant. Text
// similarity inference failures are substituted with the lexical
// fallback value per call; image and text-to-image failures are
// returned to the scorer, which applies the critical-signal sentinel in
// the scenarios where those signals carry the primary weight.
type EmbeddingProvider struct {
	client   *embedding.Client
	fallback *LexicalProvider
	logger   *zap.Logger
}

// NewEmbeddingProvider creates the model-backed provider.
func NewEmbeddingProvider(client *embedding.Client, logger *zap.Logger) *EmbeddingProvider {
	return &EmbeddingProvider{
		client:   client,
		fallback: NewLexicalProvider(),
		logger:   logger,
	}
}

// TextSimilarity returns the sentence-embedding cosine similarity,
// degrading to the lexical blend when inference fails. Callers never
// see the inference error.
func (p *EmbeddingProvider) TextSimilarity(ctx context.Context, a, b string) (float64, error) {
	score, err := p.client.TextSimilarity(ctx, a, b)
	if err != nil {
		p.logger.Warn("Text similarity inference failed, using lexical fallback", zap.Error(err))
		return p.fallback.TextSimilarity(ctx, a, b)
	}
	return score, nil
}

// ImageSimilarity returns the image-embedding cosine similarity of two
// stored photos.
func (p *EmbeddingProvider) ImageSimilarity(ctx context.Context, keyA, keyB string) (float64, error) {
	return p.client.ImageSimilarity(ctx, keyA, keyB)
}

// TextImageSimilarity compares a report's text against a stored photo.
// The text is rewritten into caption form before inference, and the raw
// similarity is boosted when the original text names concrete visual
// descriptors.
func (p *EmbeddingProvider) TextImageSimilarity(ctx context.Context, text, key string) (float64, error) {
	enhanced := enhanceTextForCaption(text)

	score, err := p.client.TextImageSimilarity(ctx, enhanced, key)
	if err != nil {
		return 0, err
	}

	boosted := applyDescriptorBoost(text, score)
	p.logger.Debug("Text-to-image similarity",
		zap.String("enhanced_text", enhanced),
		zap.Float64("base", score),
		zap.Float64("boosted", boosted))
	return boosted, nil
}

// ExtractColors works lexically in both variants.
func (p *EmbeddingProvider) ExtractColors(text string) map[string]struct{} {
	return extractColorTokens(text)
}

// enhanceTextForCaption lowercases the text, appends visual synonym
// phrases for known item keywords and prefixes a photographic-caption
// template phrase.
func enhanceTextForCaption(text string) string {
	if text == "" {
		return ""
	}

	enhanced := strings.ToLower(strings.TrimSpace(text))
	for _, entry := range visualSynonyms {
		if strings.Contains(enhanced, entry.keyword) {
			enhanced = enhanced + " " + entry.synonyms
		}
	}
	return "a photo of " + enhanced
}

// applyDescriptorBoost multiplies the raw similarity by a bounded factor
// built from color, material, size and shape descriptor hits in the
// original (unenhanced) text, clamping the result to 1.0.
func applyDescriptorBoost(text string, base float64) float64 {
	if text == "" {
		return base
	}
	lower := strings.ToLower(text)

	factor := 1.0
	if containsAny(lower, boostColors) {
		factor += 0.10
	}
	if containsAny(lower, boostMaterials) {
		factor += 0.08
	}
	if containsAny(lower, boostSizes) {
		factor += 0.05
	}
	if containsAny(lower, boostShapes) {
		factor += 0.05
	}

	boosted := base * math.Min(factor, maxDescriptorBoost)
	return math.Min(boosted, 1.0)
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
