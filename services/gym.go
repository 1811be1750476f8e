// services/gym.go - Gym membership and inventory reads
package services

import (
	"apexfit/models"

	"gorm.io/gorm"
)

// GymService answers the membership and inventory questions the eligibility
// rules depend on. Membership management itself (joining, roles, admin forms)
// lives outside the core.
type GymService struct {
	db *gorm.DB
}

func NewGymService(db *gorm.DB) *GymService {
	return &GymService{db: db}
}

// GetGymByID retrieves an active gym or a NotFoundError.
func (s *GymService) GetGymByID(gymID uint) (*models.Gym, error) {
	var gym models.Gym
	err := s.db.Where("id = ? AND is_active = ?", gymID, true).First(&gym).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &NotFoundError{Resource: "gym"}
		}
		return nil, err
	}
	return &gym, nil
}

// ActiveGymIDs returns the set of gyms the athlete is an active member of.
func (s *GymService) ActiveGymIDs(athleteID uint) (map[uint]bool, error) {
	var ids []uint
	err := s.db.Model(&models.GymMember{}).
		Where("athlete_id = ? AND is_active = ?", athleteID, true).
		Pluck("gym_id", &ids).Error
	if err != nil {
		return nil, err
	}

	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// IsActiveMember reports whether the athlete actively belongs to the gym.
func (s *GymService) IsActiveMember(athleteID, gymID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.GymMember{}).
		Where("athlete_id = ? AND gym_id = ? AND is_active = ?", athleteID, gymID, true).
		Count(&count).Error
	return count > 0, err
}

// IsCoachAt reports whether the athlete holds a coach or owner role at the
// gym; used to authorize submission review.
func (s *GymService) IsCoachAt(athleteID, gymID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.GymMember{}).
		Where("athlete_id = ? AND gym_id = ? AND is_active = ? AND role IN ?",
			athleteID, gymID, true, []models.GymRole{models.GymRoleOwner, models.GymRoleCoach}).
		Count(&count).Error
	return count > 0, err
}

// GymInventory returns the gym's equipment inventory as an ID set.
func (s *GymService) GymInventory(gymID uint) (map[uint]bool, error) {
	var ids []uint
	err := s.db.Table("gym_equipment").
		Where("gym_id = ?", gymID).
		Pluck("equipment_id", &ids).Error
	if err != nil {
		return nil, err
	}

	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
