package repositories

import (
	"errors"

	"xconfess_backend/internal/models"

	"gorm.io/gorm"
)

var ErrConfessionNotFound = errors.New("confession not found")

type ConfessionRepository interface {
	Create(confession *models.AnonymousConfession) error
	FindByID(id string) (*models.AnonymousConfession, error)
	// FindByIDWithAuthor eager-loads the author relation. The returned
	// confession's User is nil for fully anonymous posts.
	FindByIDWithAuthor(id string) (*models.AnonymousConfession, error)
	FindAll(page, pageSize int) ([]models.AnonymousConfession, int64, error)
	Delete(id string) error
}

type ConfessionRepositoryImpl struct {
	db *gorm.DB
}

func NewConfessionRepository(db *gorm.DB) ConfessionRepository {
	return &ConfessionRepositoryImpl{db: db}
}

func (r *ConfessionRepositoryImpl) Create(confession *models.AnonymousConfession) error {
	return r.db.Create(confession).Error
}

func (r *ConfessionRepositoryImpl) FindByID(id string) (*models.AnonymousConfession, error) {
	var confession models.AnonymousConfession
	err := r.db.Preload("Reactions").First(&confession, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConfessionNotFound
		}
		return nil, err
	}
	return &confession, nil
}

func (r *ConfessionRepositoryImpl) FindByIDWithAuthor(id string) (*models.AnonymousConfession, error) {
	var confession models.AnonymousConfession
	err := r.db.Preload("User").First(&confession, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConfessionNotFound
		}
		return nil, err
	}
	return &confession, nil
}

func (r *ConfessionRepositoryImpl) FindAll(page, pageSize int) ([]models.AnonymousConfession, int64, error) {
	var confessions []models.AnonymousConfession

	var total int64
	if err := r.db.Model(&models.AnonymousConfession{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Preload("Reactions").
		Order("created_at DESC").
		Limit(pageSize).Offset(offset).
		Find(&confessions).Error

	return confessions, total, err
}

func (r *ConfessionRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.AnonymousConfession{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConfessionNotFound
	}
	return nil
}
