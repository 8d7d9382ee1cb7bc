package repository

import (
	"lostandfound-backend/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const lostItemColumns = `id, item_name, description, location, latitude, longitude, photo_key,
	additional_info, reporter_name, reporter_email, contact, posted_by, date_lost, status, created_at`

const foundItemColumns = `id, item_name, description, location, latitude, longitude, photo_key,
	additional_info, reporter_name, reporter_email, contact, posted_by, date_found, status, created_at`

type ItemRepository interface {
	CreateLost(item *models.LostItem) error
	CreateFound(item *models.FoundItem) error
	GetLostByID(id int64) (*models.LostItem, error)
	GetFoundByID(id int64) (*models.FoundItem, error)
	ListLost() ([]*models.LostItem, error)
	ListFound() ([]*models.FoundItem, error)
	ListActiveLost() ([]*models.LostItem, error)
	ListActiveFound() ([]*models.FoundItem, error)
	UpdateLostStatus(id int64, status string) error
	UpdateFoundStatus(id int64, status string) error
}

type itemRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewItemRepository(db *sqlx.DB, logger *zap.Logger) ItemRepository {
	return &itemRepository{db: db, logger: logger}
}

func (r *itemRepository) CreateLost(item *models.LostItem) error {
	query := `INSERT INTO lost_items (item_name, description, location, latitude, longitude, photo_key,
	            additional_info, reporter_name, reporter_email, contact, posted_by, date_lost, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	          RETURNING id, created_at`
	return r.db.QueryRowx(query, item.ItemName, item.Description, item.Location, item.Latitude,
		item.Longitude, item.PhotoKey, item.AdditionalInfo, item.ReporterName, item.ReporterEmail,
		item.Contact, item.PostedBy, item.DateLost, item.Status).Scan(&item.ID, &item.CreatedAt)
}

func (r *itemRepository) CreateFound(item *models.FoundItem) error {
	query := `INSERT INTO found_items (item_name, description, location, latitude, longitude, photo_key,
	            additional_info, reporter_name, reporter_email, contact, posted_by, date_found, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	          RETURNING id, created_at`
	return r.db.QueryRowx(query, item.ItemName, item.Description, item.Location, item.Latitude,
		item.Longitude, item.PhotoKey, item.AdditionalInfo, item.ReporterName, item.ReporterEmail,
		item.Contact, item.PostedBy, item.DateFound, item.Status).Scan(&item.ID, &item.CreatedAt)
}

func (r *itemRepository) GetLostByID(id int64) (*models.LostItem, error) {
	var item models.LostItem
	err := r.db.Get(&item, `SELECT `+lostItemColumns+` FROM lost_items WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) GetFoundByID(id int64) (*models.FoundItem, error) {
	var item models.FoundItem
	err := r.db.Get(&item, `SELECT `+foundItemColumns+` FROM found_items WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) ListLost() ([]*models.LostItem, error) {
	var items []*models.LostItem
	err := r.db.Select(&items, `SELECT `+lostItemColumns+` FROM lost_items ORDER BY created_at DESC`)
	return items, err
}

func (r *itemRepository) ListFound() ([]*models.FoundItem, error) {
	var items []*models.FoundItem
	err := r.db.Select(&items, `SELECT `+foundItemColumns+` FROM found_items ORDER BY created_at DESC`)
	return items, err
}

// ListActiveLost returns active lost reports in creation order, so the
// match search scans candidates deterministically.
func (r *itemRepository) ListActiveLost() ([]*models.LostItem, error) {
	var items []*models.LostItem
	err := r.db.Select(&items,
		`SELECT `+lostItemColumns+` FROM lost_items WHERE status = $1 ORDER BY created_at ASC, id ASC`,
		models.ItemStatusActive)
	return items, err
}

// ListActiveFound returns active found reports in creation order.
func (r *itemRepository) ListActiveFound() ([]*models.FoundItem, error) {
	var items []*models.FoundItem
	err := r.db.Select(&items,
		`SELECT `+foundItemColumns+` FROM found_items WHERE status = $1 ORDER BY created_at ASC, id ASC`,
		models.ItemStatusActive)
	return items, err
}

func (r *itemRepository) UpdateLostStatus(id int64, status string) error {
	_, err := r.db.Exec(`UPDATE lost_items SET status = $1 WHERE id = $2`, status, id)
	return err
}

func (r *itemRepository) UpdateFoundStatus(id int64, status string) error {
	_, err := r.db.Exec(`UPDATE found_items SET status = $1 WHERE id = $2`, status, id)
	return err
}
