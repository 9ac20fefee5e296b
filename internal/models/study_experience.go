package models

import (
	"time"

	"gorm.io/gorm"
)

// StudyExperience is one entry of the education timeline on the home page
type StudyExperience struct {
	ID        uint           `gorm:"primarykey" json:"-"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Institution string   `gorm:"type:varchar(255);uniqueIndex:idx_study_institution_degree" json:"institution"`
	Degree      string   `gorm:"type:varchar(255);uniqueIndex:idx_study_institution_degree" json:"degree"`
	Field       string   `gorm:"type:varchar(255)" json:"field,omitempty"`
	Location    string   `gorm:"type:varchar(255)" json:"location,omitempty"`
	Start       string   `gorm:"type:varchar(20)" json:"start"`
	End         string   `gorm:"type:varchar(20)" json:"end"` // "Present" while ongoing
	Highlights  []string `gorm:"serializer:json" json:"highlights,omitempty"`
	SortOrder   int      `gorm:"default:0" json:"sort_order"`
}

// Period formats the study period for display.
func (s StudyExperience) Period() string {
	switch {
	case s.Start == "" && s.End == "":
		return ""
	case s.End == "":
		return s.Start
	case s.Start == "":
		return s.End
	}
	return s.Start + " – " + s.End
}
