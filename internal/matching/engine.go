package matching

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"lostandfound-backend/internal/models"
	"lostandfound-backend/internal/notifier"
	"lostandfound-backend/internal/repository"
)

// Thresholds are the scenario-specific acceptance bars. Two comparable
// photos demand stronger evidence than a text-only pair. Tuned
// empirically; kept configurable.
type Thresholds struct {
	ImageToImage float64 `yaml:"image_to_image"`
	TextToImage  float64 `yaml:"text_to_image"`
	TextOnly     float64 `yaml:"text_only"`
}

// DefaultThresholds returns the production-tuned acceptance thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ImageToImage: 0.65,
		TextToImage:  0.45,
		TextOnly:     0.40,
	}
}

// For returns the acceptance threshold for a scenario.
func (t Thresholds) For(scenario Scenario) float64 {
	switch scenario {
	case ScenarioImageToImage:
		return t.ImageToImage
	case ScenarioTextToImage:
		return t.TextToImage
	default:
		return t.TextOnly
	}
}

// Engine runs the match search loop for newly created reports. It is
// invoked inline on the report write path from both entry points and
// blocks until every active counterpart has been scored. Idempotent:
// existing pairs are skipped, and the matches table enforces pair
// uniqueness underneath.
type Engine struct {
	items      repository.ItemRepository
	matches    repository.MatchRepository
	scorer     *Scorer
	thresholds Thresholds
	dispatcher notifier.Dispatcher
	logger     *zap.Logger
}

// NewEngine creates a match search engine.
func NewEngine(
	items repository.ItemRepository,
	matches repository.MatchRepository,
	scorer *Scorer,
	thresholds Thresholds,
	dispatcher notifier.Dispatcher,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		items:      items,
		matches:    matches,
		scorer:     scorer,
		thresholds: thresholds,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// FindMatchesForLost scans all active found reports for a lost report,
// in creation order, and materializes every pair that clears its
// scenario threshold. Returns the number of matches created.
func (e *Engine) FindMatchesForLost(ctx context.Context, lost *models.LostItem) (int, error) {
	founds, err := e.items.ListActiveFound()
	if err != nil {
		return 0, err
	}

	e.logger.Info("Searching matches for lost item",
		zap.Int64("lost_item_id", lost.ID),
		zap.String("item_name", lost.ItemName),
		zap.Int("candidates", len(founds)))

	created := 0
	for _, found := range founds {
		if e.evaluatePair(ctx, lost, found) {
			created++
		}
	}
	return created, nil
}

// FindMatchesForFound scans all active lost reports for a found report.
// Symmetric counterpart of FindMatchesForLost; both feed the same scorer.
func (e *Engine) FindMatchesForFound(ctx context.Context, found *models.FoundItem) (int, error) {
	losts, err := e.items.ListActiveLost()
	if err != nil {
		return 0, err
	}

	e.logger.Info("Searching matches for found item",
		zap.Int64("found_item_id", found.ID),
		zap.String("item_name", found.ItemName),
		zap.Int("candidates", len(losts)))

	created := 0
	for _, lost := range losts {
		if e.evaluatePair(ctx, lost, found) {
			created++
		}
	}
	return created, nil
}

// evaluatePair scores one candidate pair and persists a match when the
// confidence clears the scenario threshold. Per-candidate failures are
// logged and never abort the surrounding loop.
func (e *Engine) evaluatePair(ctx context.Context, lost *models.LostItem, found *models.FoundItem) bool {
	exists, err := e.matches.Exists(lost.ID, found.ID)
	if err != nil {
		e.logger.Error("Failed to check for existing match",
			zap.Int64("lost_item_id", lost.ID),
			zap.Int64("found_item_id", found.ID),
			zap.Error(err))
		return false
	}
	if exists {
		return false
	}

	result := e.scorer.Score(ctx, lost, found)
	threshold := e.thresholds.For(result.Scenario)

	e.logger.Debug("Candidate evaluated",
		zap.Int64("lost_item_id", lost.ID),
		zap.Int64("found_item_id", found.ID),
		zap.Float64("confidence", result.Confidence),
		zap.Float64("threshold", threshold))

	if result.Confidence < threshold {
		return false
	}

	match := &models.Match{
		LostItemID:      lost.ID,
		FoundItemID:     found.ID,
		MatchType:       result.MatchType,
		ConfidenceScore: result.Confidence,
		Status:          models.MatchStatusPending,
	}
	if err := e.matches.Create(match); err != nil {
		if errors.Is(err, repository.ErrDuplicateMatch) {
			// Lost a race with a concurrent creation of the same pair.
			return false
		}
		e.logger.Error("Failed to create match",
			zap.Int64("lost_item_id", lost.ID),
			zap.Int64("found_item_id", found.ID),
			zap.Error(err))
		return false
	}

	e.logger.Info("Match created",
		zap.Int64("match_id", match.ID),
		zap.String("match_type", match.MatchType),
		zap.Float64("confidence", match.ConfidenceScore))

	// Fire-and-forget: delivery problems never stop the scan.
	if e.dispatcher != nil {
		if err := e.dispatcher.NotifyMatch(ctx, match, lost, found); err != nil {
			e.logger.Error("Match notification failed", zap.Int64("match_id", match.ID), zap.Error(err))
		}
	}
	return true
}
