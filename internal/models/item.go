package models

import "time"

// Report statuses shared by lost and found items.
const (
	ItemStatusActive   = "active"
	ItemStatusResolved = "resolved"
	ItemStatusInactive = "inactive"
)

// LostItem is a report filed by someone who lost an item.
type LostItem struct {
	ID             int64     `db:"id" json:"id"`
	ItemName       string    `db:"item_name" json:"item_name"`
	Description    string    `db:"description" json:"description"`
	Location       string    `db:"location" json:"location"`
	Latitude       *float64  `db:"latitude" json:"latitude"`
	Longitude      *float64  `db:"longitude" json:"longitude"`
	PhotoKey       string    `db:"photo_key" json:"photo_key"`
	AdditionalInfo string    `db:"additional_info" json:"additional_info"`
	ReporterName   string    `db:"reporter_name" json:"reporter_name"`
	ReporterEmail  string    `db:"reporter_email" json:"reporter_email"`
	Contact        string    `db:"contact" json:"contact"`
	PostedBy       int64     `db:"posted_by" json:"posted_by"`
	DateLost       time.Time `db:"date_lost" json:"date_lost"`
	Status         string    `db:"status" json:"status"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// HasPhoto reports whether the lost report carries a photo reference.
func (i *LostItem) HasPhoto() bool { return i.PhotoKey != "" }

// HasCoordinates reports whether the latitude/longitude pair is present.
func (i *LostItem) HasCoordinates() bool { return i.Latitude != nil && i.Longitude != nil }

// FoundItem is a report filed by someone who found an item.
type FoundItem struct {
	ID             int64     `db:"id" json:"id"`
	ItemName       string    `db:"item_name" json:"item_name"`
	Description    string    `db:"description" json:"description"`
	Location       string    `db:"location" json:"location"`
	Latitude       *float64  `db:"latitude" json:"latitude"`
	Longitude      *float64  `db:"longitude" json:"longitude"`
	PhotoKey       string    `db:"photo_key" json:"photo_key"`
	AdditionalInfo string    `db:"additional_info" json:"additional_info"`
	ReporterName   string    `db:"reporter_name" json:"reporter_name"`
	ReporterEmail  string    `db:"reporter_email" json:"reporter_email"`
	Contact        string    `db:"contact" json:"contact"`
	PostedBy       int64     `db:"posted_by" json:"posted_by"`
	DateFound      time.Time `db:"date_found" json:"date_found"`
	Status         string    `db:"status" json:"status"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// HasPhoto reports whether the found report carries a photo reference.
func (i *FoundItem) HasPhoto() bool { return i.PhotoKey != "" }

// HasCoordinates reports whether the latitude/longitude pair is present.
func (i *FoundItem) HasCoordinates() bool { return i.Latitude != nil && i.Longitude != nil }
