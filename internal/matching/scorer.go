package matching

import (
	"context"
	"math"

	"go.uber.org/zap"

	"lostandfound-backend/internal/models"
)

// Scenario is the photo-presence configuration of a lost/found pair. It
// determines which primary similarity signal dominates and which
// acceptance threshold applies.
type Scenario string

const (
	// ScenarioImageToImage: both reports carry photos.
	ScenarioImageToImage Scenario = "IMAGE_TO_IMAGE"
	// ScenarioTextToImage: only the found report carries a photo.
	ScenarioTextToImage Scenario = "TEXT_TO_IMAGE"
	// ScenarioTextOnly: no usable visual evidence path. A lost-only
	// photo degrades here too, since the primary visual path needs the
	// found item's photo.
	ScenarioTextOnly Scenario = "TEXT_ONLY"
)

// DetectScenario selects the scoring scenario from photo presence.
func DetectScenario(lost *models.LostItem, found *models.FoundItem) Scenario {
	switch {
	case lost.HasPhoto() && found.HasPhoto():
		return ScenarioImageToImage
	case !lost.HasPhoto() && found.HasPhoto():
		return ScenarioTextToImage
	default:
		return ScenarioTextOnly
	}
}

// Weights holds the signal weights of the fusion pipeline. The values
// were tuned empirically in production; they are configuration, not
// invariants.
type Weights struct {
	Image          float64 `yaml:"image"`
	TextImage      float64 `yaml:"text_image"`
	Description    float64 `yaml:"description"`
	Name           float64 `yaml:"name"`
	Location       float64 `yaml:"location"`
	Date           float64 `yaml:"date"`
	AdditionalInfo float64 `yaml:"additional_info"`
	CategoryPrior  float64 `yaml:"category_prior"`
}

// DefaultWeights returns the production-tuned signal weights.
func DefaultWeights() Weights {
	return Weights{
		Image:          0.55,
		TextImage:      0.50,
		Description:    0.30,
		Name:           0.25,
		Location:       0.12,
		Date:           0.08,
		AdditionalInfo: 0.05,
		CategoryPrior:  0.15,
	}
}

const (
	// lowVisualConfidence is the primary-signal value below which the
	// running score is cut (x0.5 for image-to-image, x0.6 for
	// text-to-image).
	lowVisualConfidence = 0.30
	// failedComparisonScore distinguishes "comparison failed" from
	// "confirmed mismatch": near zero, never absolute zero.
	failedComparisonScore = 0.1
	// colorMismatchFactor is the strict penalty for contradictory
	// stated colors.
	colorMismatchFactor = 0.3
	// colorBonusPerMatch and colorBonusCap bound the shared-color bonus.
	colorBonusPerMatch = 0.08
	colorBonusCap      = 0.20
)

// Result is the outcome of scoring one lost/found pair.
type Result struct {
	Confidence    float64
	Scenario      Scenario
	MatchType     string
	Compatible    bool
	LostCategory  Category
	FoundCategory Category
}

// Scorer fuses category, text, image, geographic, temporal and color
// signals into a single bounded confidence score. Stateless; one
// instance serves both report-creation entry points.
type Scorer struct {
	provider SimilarityProvider
	weights  Weights
	logger   *zap.Logger
}

// NewScorer creates a scorer over the given similarity provider.
func NewScorer(provider SimilarityProvider, weights Weights, logger *zap.Logger) *Scorer {
	return &Scorer{
		provider: provider,
		weights:  weights,
		logger:   logger,
	}
}

// Score computes the match confidence for a lost/found pair in [0,1].
// Category incompatibility is an absolute veto. Individual signals are
// guarded: a failing non-primary signal is omitted, a failing primary
// visual signal short-circuits with the failed-comparison sentinel.
func (s *Scorer) Score(ctx context.Context, lost *models.LostItem, found *models.FoundItem) Result {
	scenario := DetectScenario(lost, found)

	compatible, prior, lostCat, foundCat := Compatible(lost, found)
	result := Result{
		Scenario:      scenario,
		Compatible:    compatible,
		LostCategory:  lostCat,
		FoundCategory: foundCat,
	}
	if !compatible {
		s.logger.Debug("Categories incompatible, rejecting pair",
			zap.String("lost_category", string(lostCat)),
			zap.String("found_category", string(foundCat)))
		return result
	}

	score := 0.0

	switch scenario {
	case ScenarioImageToImage:
		imageScore, err := s.provider.ImageSimilarity(ctx, lost.PhotoKey, found.PhotoKey)
		if err != nil {
			s.logger.Warn("Image comparison failed", zap.Error(err))
			result.Confidence = failedComparisonScore
			result.MatchType = matchTypeFor(result.Confidence)
			return result
		}
		score += imageScore * s.weights.Image
		if imageScore < lowVisualConfidence {
			score *= 0.5
		}

	case ScenarioTextToImage:
		lostText := lost.ItemName + " " + lost.Description
		textImageScore, err := s.provider.TextImageSimilarity(ctx, lostText, found.PhotoKey)
		if err != nil {
			s.logger.Warn("Text-to-image comparison failed", zap.Error(err))
			result.Confidence = failedComparisonScore
			result.MatchType = matchTypeFor(result.Confidence)
			return result
		}
		score += textImageScore * s.weights.TextImage
		if textImageScore < lowVisualConfidence {
			score *= 0.6
		}
	}

	if lost.Description != "" && found.Description != "" {
		if sim, err := s.provider.TextSimilarity(ctx, lost.Description, found.Description); err == nil {
			score += sim * s.weights.Description
		} else {
			s.logger.Warn("Description similarity failed, omitting signal", zap.Error(err))
		}
	}

	if lost.ItemName != "" && found.ItemName != "" {
		if sim, err := s.provider.TextSimilarity(ctx, lost.ItemName, found.ItemName); err == nil {
			score += sim * s.weights.Name
		} else {
			s.logger.Warn("Name similarity failed, omitting signal", zap.Error(err))
		}
	}

	if lost.HasCoordinates() && found.HasCoordinates() {
		proximity := LocationProximity(*lost.Latitude, *lost.Longitude, *found.Latitude, *found.Longitude)
		score += proximity * s.weights.Location
	}

	if !lost.DateLost.IsZero() && !found.DateFound.IsZero() {
		score += DateProximity(lost.DateLost, found.DateFound) * s.weights.Date
	}

	lostColors := s.provider.ExtractColors(lost.ItemName + " " + lost.Description)
	foundColors := s.provider.ExtractColors(found.ItemName + " " + found.Description)
	if len(lostColors) > 0 && len(foundColors) > 0 {
		shared := 0
		for c := range lostColors {
			if _, ok := foundColors[c]; ok {
				shared++
			}
		}
		if shared == 0 {
			// Contradictory stated colors almost always mean different items.
			score *= colorMismatchFactor
		} else {
			score += math.Min(float64(shared)*colorBonusPerMatch, colorBonusCap)
		}
	}

	if lost.AdditionalInfo != "" && found.AdditionalInfo != "" {
		if sim, err := s.provider.TextSimilarity(ctx, lost.AdditionalInfo, found.AdditionalInfo); err == nil {
			score += sim * s.weights.AdditionalInfo
		} else {
			s.logger.Warn("Additional info similarity failed, omitting signal", zap.Error(err))
		}
	}

	score += prior * s.weights.CategoryPrior

	result.Confidence = math.Max(0, math.Min(score, 1.0))
	result.MatchType = matchTypeFor(result.Confidence)

	s.logger.Debug("Scored pair",
		zap.Int64("lost_item_id", lost.ID),
		zap.Int64("found_item_id", found.ID),
		zap.String("scenario", string(scenario)),
		zap.Float64("confidence", result.Confidence))

	return result
}

// matchTypeFor bands a confidence score into the match-type label.
func matchTypeFor(score float64) string {
	switch {
	case score >= 0.9:
		return models.MatchTypeCombined
	case score >= 0.8:
		return models.MatchTypeDescription
	case score >= 0.6:
		return models.MatchTypeLocation
	default:
		return models.MatchTypeImage
	}
}
