// models/models.go - Core Models (Challenge removed - defined in challenge.go)
package models

import (
	"time"
)

// Domain represents a skill axis (e.g. Strength, Endurance) XP is split across
type Domain struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;uniqueIndex;size:100"`
	Description string    `json:"description" gorm:"type:text"`
	Icon        string    `json:"icon" gorm:"size:50"`
	Color       string    `json:"color" gorm:"size:20"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Equipment represents a piece of gym equipment a challenge may require
type Equipment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;uniqueIndex;size:100"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
}

// Gym represents a gym that can own challenges and hold members
type Gym struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	Name        string      `json:"name" gorm:"not null;size:100"`
	Description string      `json:"description" gorm:"type:text"`
	JoinCode    string      `json:"join_code" gorm:"unique;size:10"`
	IsActive    bool        `json:"is_active" gorm:"default:true;index"`
	Equipment   []Equipment `json:"equipment,omitempty" gorm:"many2many:gym_equipment"`
	Members     []GymMember `json:"members,omitempty" gorm:"foreignKey:GymID"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type GymRole string

const (
	GymRoleOwner  GymRole = "owner"
	GymRoleCoach  GymRole = "coach"
	GymRoleMember GymRole = "member"
)

// GymMember represents an athlete's membership in a gym
type GymMember struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	GymID     uint      `json:"gym_id" gorm:"not null;index"`
	Gym       *Gym      `json:"gym,omitempty" gorm:"foreignKey:GymID"`
	AthleteID uint      `json:"athlete_id" gorm:"not null;index"`
	Athlete   *Athlete  `json:"athlete,omitempty" gorm:"foreignKey:AthleteID"`
	Role      GymRole   `json:"role" gorm:"not null;default:'member'"`
	IsActive  bool      `json:"is_active" gorm:"default:true;index"`
	JoinedAt  time.Time `json:"joined_at" gorm:"not null"`
}

// Athlete represents a platform user
type Athlete struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Username    string     `gorm:"uniqueIndex;not null" json:"username"`
	Email       *string    `gorm:"uniqueIndex" json:"email,omitempty"`
	DisplayName string     `json:"display_name"`
	Avatar      string     `json:"avatar"`
	Gender      *Gender    `gorm:"size:10" json:"gender,omitempty"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	IsCoach     bool       `gorm:"default:false" json:"is_coach"`

	// Progression
	TotalXP int `gorm:"default:0" json:"total_xp"`

	// Disciplines the athlete trains; drives the "for you" catalog partition
	Disciplines []Domain `gorm:"many2many:athlete_disciplines" json:"disciplines,omitempty"`

	DomainXP    []AthleteDomainXP `gorm:"foreignKey:AthleteID" json:"domain_xp,omitempty"`
	Submissions []Submission      `gorm:"foreignKey:AthleteID" json:"submissions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AthleteDomainXP is the per-domain XP ledger row for an athlete
type AthleteDomainXP struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AthleteID uint      `gorm:"not null;uniqueIndex:idx_athlete_domain" json:"athlete_id"`
	DomainID  uint      `gorm:"not null;uniqueIndex:idx_athlete_domain" json:"domain_id"`
	Domain    *Domain   `gorm:"foreignKey:DomainID" json:"domain,omitempty"`
	XP        int       `gorm:"default:0" json:"xp"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Domain) TableName() string {
	return "domains"
}

func (Equipment) TableName() string {
	return "equipment"
}

func (Gym) TableName() string {
	return "gyms"
}

func (GymMember) TableName() string {
	return "gym_members"
}

func (Athlete) TableName() string {
	return "athletes"
}

func (AthleteDomainXP) TableName() string {
	return "athlete_domain_xp"
}
