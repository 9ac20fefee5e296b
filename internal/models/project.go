package models

import (
	"time"

	"gorm.io/gorm"
)

// Project is an entry of the browse catalog
type Project struct {
	ID        uint           `gorm:"primarykey" json:"-"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Slug        string   `gorm:"type:varchar(120);uniqueIndex" json:"slug"`
	Title       string   `gorm:"type:varchar(255)" json:"title"`
	Summary     string   `gorm:"type:text" json:"summary"`
	Description string   `gorm:"type:text" json:"description"` // Markdown
	Tags        []string `gorm:"serializer:json" json:"tags"`
	RepoURL     string   `gorm:"type:varchar(500)" json:"repo_url,omitempty"`
	DemoURL     string   `gorm:"type:varchar(500)" json:"demo_url,omitempty"`
	ImageURL    string   `gorm:"type:varchar(500)" json:"image_url,omitempty"`
	Featured    bool     `gorm:"default:false" json:"featured"`
	SortOrder   int      `gorm:"default:0" json:"sort_order"`
}
