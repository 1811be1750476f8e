// models/division.go
package models

import "time"

// Division is an age/gender competitive bracket. A nil Gender or age bound
// leaves that dimension unrestricted. When more than one division matches an
// athlete, the lowest SortOrder wins.
type Division struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:100"`
	Gender    *Gender   `json:"gender,omitempty" gorm:"size:10"`
	AgeMin    *int      `json:"age_min,omitempty"`
	AgeMax    *int      `json:"age_max,omitempty"`
	SortOrder int       `json:"sort_order" gorm:"not null;default:0;index"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Division) TableName() string {
	return "divisions"
}
