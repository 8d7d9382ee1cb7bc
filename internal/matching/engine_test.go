package matching

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"lostandfound-backend/internal/models"
	"lostandfound-backend/internal/repository"
)

type fakeItemRepo struct {
	lost  []*models.LostItem
	found []*models.FoundItem
}

func (f *fakeItemRepo) CreateLost(item *models.LostItem) error {
	f.lost = append(f.lost, item)
	return nil
}

func (f *fakeItemRepo) CreateFound(item *models.FoundItem) error {
	f.found = append(f.found, item)
	return nil
}

func (f *fakeItemRepo) GetLostByID(int64) (*models.LostItem, error)   { return nil, nil }
func (f *fakeItemRepo) GetFoundByID(int64) (*models.FoundItem, error) { return nil, nil }
func (f *fakeItemRepo) ListLost() ([]*models.LostItem, error)         { return f.lost, nil }
func (f *fakeItemRepo) ListFound() ([]*models.FoundItem, error)       { return f.found, nil }
func (f *fakeItemRepo) ListActiveLost() ([]*models.LostItem, error)   { return f.lost, nil }
func (f *fakeItemRepo) ListActiveFound() ([]*models.FoundItem, error) { return f.found, nil }
func (f *fakeItemRepo) UpdateLostStatus(int64, string) error          { return nil }
func (f *fakeItemRepo) UpdateFoundStatus(int64, string) error         { return nil }

type pairKey struct{ lost, found int64 }

type fakeMatchRepo struct {
	matches map[pairKey]*models.Match
	nextID  int64
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[pairKey]*models.Match)}
}

func (f *fakeMatchRepo) Create(match *models.Match) error {
	key := pairKey{match.LostItemID, match.FoundItemID}
	if _, ok := f.matches[key]; ok {
		return repository.ErrDuplicateMatch
	}
	f.nextID++
	match.ID = f.nextID
	f.matches[key] = match
	return nil
}

func (f *fakeMatchRepo) Exists(lostItemID, foundItemID int64) (bool, error) {
	_, ok := f.matches[pairKey{lostItemID, foundItemID}]
	return ok, nil
}

func (f *fakeMatchRepo) GetByID(int64) (*models.Match, error)       { return nil, nil }
func (f *fakeMatchRepo) ListForUser(int64) ([]*models.Match, error) { return nil, nil }
func (f *fakeMatchRepo) UpdateStatus(int64, string) error           { return nil }
func (f *fakeMatchRepo) CompleteForLostItem(int64) (int64, error)   { return 0, nil }
func (f *fakeMatchRepo) CompleteForFoundItem(int64) (int64, error)  { return 0, nil }

type fakeDispatcher struct {
	notified int
	err      error
}

func (f *fakeDispatcher) NotifyMatch(context.Context, *models.Match, *models.LostItem, *models.FoundItem) error {
	f.notified++
	return f.err
}

func newTestEngine(items *fakeItemRepo, matches *fakeMatchRepo, provider SimilarityProvider, dispatcher *fakeDispatcher) *Engine {
	scorer := NewScorer(provider, DefaultWeights(), zap.NewNop())
	return NewEngine(items, matches, scorer, DefaultThresholds(), dispatcher, zap.NewNop())
}

func strongPair() (*models.LostItem, *models.FoundItem) {
	lost := &models.LostItem{
		ID:          1,
		ItemName:    "Black iPhone",
		Description: "black apple iphone with cracked screen",
		DateLost:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:      models.ItemStatusActive,
	}
	found := &models.FoundItem{
		ID:          1,
		ItemName:    "iPhone",
		Description: "black apple iphone found on a bench",
		PhotoKey:    "photos/2024-06-02/found.jpg",
		DateFound:   time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
		Status:      models.ItemStatusActive,
	}
	return lost, found
}

func TestEngineCreatesMatchAboveThreshold(t *testing.T) {
	lost, found := strongPair()
	items := &fakeItemRepo{found: []*models.FoundItem{found}}
	matches := newFakeMatchRepo()
	dispatcher := &fakeDispatcher{}

	engine := newTestEngine(items, matches, &stubProvider{text: 0.8, textImage: 0.62}, dispatcher)

	created, err := engine.FindMatchesForLost(context.Background(), lost)
	if err != nil {
		t.Fatalf("FindMatchesForLost: %v", err)
	}
	if created != 1 {
		t.Fatalf("created = %d, want 1", created)
	}

	match, ok := matches.matches[pairKey{lost.ID, found.ID}]
	if !ok {
		t.Fatal("expected match persisted for the pair")
	}
	if match.Status != models.MatchStatusPending {
		t.Errorf("match status = %q, want %q", match.Status, models.MatchStatusPending)
	}
	if dispatcher.notified != 1 {
		t.Errorf("notified = %d, want 1", dispatcher.notified)
	}
}

func TestEngineSkipsBelowThreshold(t *testing.T) {
	lost, found := strongPair()
	items := &fakeItemRepo{found: []*models.FoundItem{found}}
	matches := newFakeMatchRepo()

	// Weak signals on a text-to-image pair stay under the 0.45 bar.
	engine := newTestEngine(items, matches, &stubProvider{text: 0.1, textImage: 0.1}, &fakeDispatcher{})

	created, err := engine.FindMatchesForLost(context.Background(), lost)
	if err != nil {
		t.Fatalf("FindMatchesForLost: %v", err)
	}
	if created != 0 {
		t.Errorf("created = %d, want 0", created)
	}
	if len(matches.matches) != 0 {
		t.Errorf("persisted %d matches, want 0", len(matches.matches))
	}
}

func TestEngineIdempotentRerun(t *testing.T) {
	lost, found := strongPair()
	items := &fakeItemRepo{found: []*models.FoundItem{found}}
	matches := newFakeMatchRepo()
	dispatcher := &fakeDispatcher{}

	engine := newTestEngine(items, matches, &stubProvider{text: 0.8, textImage: 0.62}, dispatcher)

	first, err := engine.FindMatchesForLost(context.Background(), lost)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := engine.FindMatchesForLost(context.Background(), lost)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if first != 1 || second != 0 {
		t.Errorf("runs created (%d, %d), want (1, 0)", first, second)
	}
	if dispatcher.notified != 1 {
		t.Errorf("notified = %d, want 1 (no re-notification on rerun)", dispatcher.notified)
	}
}

func TestEngineNotificationFailureDoesNotStopScan(t *testing.T) {
	lost, found := strongPair()
	found2 := *found
	found2.ID = 2
	items := &fakeItemRepo{found: []*models.FoundItem{found, &found2}}
	matches := newFakeMatchRepo()
	dispatcher := &fakeDispatcher{err: errors.New("smtp down")}

	engine := newTestEngine(items, matches, &stubProvider{text: 0.8, textImage: 0.62}, dispatcher)

	created, err := engine.FindMatchesForLost(context.Background(), lost)
	if err != nil {
		t.Fatalf("FindMatchesForLost: %v", err)
	}
	if created != 2 {
		t.Errorf("created = %d, want 2 despite notification failures", created)
	}
	if dispatcher.notified != 2 {
		t.Errorf("notified = %d, want 2 attempts", dispatcher.notified)
	}
}

func TestEngineFindMatchesForFound(t *testing.T) {
	lost, found := strongPair()
	items := &fakeItemRepo{lost: []*models.LostItem{lost}}
	matches := newFakeMatchRepo()

	engine := newTestEngine(items, matches, &stubProvider{text: 0.8, textImage: 0.62}, &fakeDispatcher{})

	created, err := engine.FindMatchesForFound(context.Background(), found)
	if err != nil {
		t.Fatalf("FindMatchesForFound: %v", err)
	}
	if created != 1 {
		t.Errorf("created = %d, want 1", created)
	}
}

func TestEngineNilDispatcher(t *testing.T) {
	lost, found := strongPair()
	items := &fakeItemRepo{found: []*models.FoundItem{found}}
	matches := newFakeMatchRepo()

	scorer := NewScorer(&stubProvider{text: 0.8, textImage: 0.62}, DefaultWeights(), zap.NewNop())
	engine := NewEngine(items, matches, scorer, DefaultThresholds(), nil, zap.NewNop())

	created, err := engine.FindMatchesForLost(context.Background(), lost)
	if err != nil {
		t.Fatalf("FindMatchesForLost: %v", err)
	}
	if created != 1 {
		t.Errorf("created = %d, want 1", created)
	}
}
