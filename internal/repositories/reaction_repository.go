package repositories

import (
	"errors"

	"xconfess_backend/internal/models"

	"gorm.io/gorm"
)

var ErrReactionNotFound = errors.New("reaction not found")

type ReactionRepository interface {
	// Create inserts the reaction atomically. The id and creation timestamp
	// are assigned during the insert when not already set.
	Create(reaction *models.Reaction) error
	FindByID(id string) (*models.Reaction, error)
	FindByConfessionID(confessionID string) ([]models.Reaction, error)
	CountByConfessionID(confessionID string) (int64, error)
}

type ReactionRepositoryImpl struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &ReactionRepositoryImpl{db: db}
}

func (r *ReactionRepositoryImpl) Create(reaction *models.Reaction) error {
	return r.db.Create(reaction).Error
}

func (r *ReactionRepositoryImpl) FindByID(id string) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.First(&reaction, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReactionNotFound
		}
		return nil, err
	}
	return &reaction, nil
}

func (r *ReactionRepositoryImpl) FindByConfessionID(confessionID string) ([]models.Reaction, error) {
	var reactions []models.Reaction
	err := r.db.Where("confession_id = ?", confessionID).
		Order("created_at DESC").
		Find(&reactions).Error
	return reactions, err
}

func (r *ReactionRepositoryImpl) CountByConfessionID(confessionID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Reaction{}).
		Where("confession_id = ?", confessionID).
		Count(&count).Error
	return count, err
}
