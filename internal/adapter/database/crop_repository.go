package database

import (
	"context"

	"github.com/agrotech/farm-api/internal/domain/model"
	"gorm.io/gorm"
)

// CropRepository implementa repository.CropRepository sobre GORM
type CropRepository struct {
	db *gorm.DB
}

// NewCropRepository cria o repositório de culturas
func NewCropRepository(db *gorm.DB) *CropRepository {
	return &CropRepository{db: db}
}

func (r *CropRepository) CreateMany(ctx context.Context, crops []*model.Crop) error {
	return translateError(r.db.WithContext(ctx).Create(crops).Error)
}

func (r *CropRepository) FindByID(ctx context.Context, id uint) (*model.Crop, error) {
	var crop model.Crop
	if err := r.db.WithContext(ctx).First(&crop, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &crop, nil
}

func (r *CropRepository) FindByFarm(ctx context.Context, farmID uint) ([]*model.Crop, error) {
	var crops []*model.Crop
	err := r.db.WithContext(ctx).
		Where("farm_id = ?", farmID).
		Order("created_at DESC").
		Find(&crops).Error
	if err != nil {
		return nil, translateError(err)
	}
	return crops, nil
}

func (r *CropRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (*model.Crop, error) {
	result := r.db.WithContext(ctx).Model(&model.Crop{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, translateError(result.Error)
	}
	return r.FindByID(ctx, id)
}

func (r *CropRepository) Delete(ctx context.Context, id uint) error {
	return translateError(r.db.WithContext(ctx).Delete(&model.Crop{}, id).Error)
}

func (r *CropRepository) DeleteByFarm(ctx context.Context, farmID uint) error {
	return translateError(r.db.WithContext(ctx).
		Where("farm_id = ?", farmID).
		Delete(&model.Crop{}).Error)
}

func (r *CropRepository) DeleteByOwner(ctx context.Context, userID uint) error {
	producers := r.db.Model(&model.Producer{}).Select("id").Where("user_id = ?", userID)
	farms := r.db.Model(&model.Farm{}).Select("id").Where("producer_id IN (?)", producers)
	return translateError(r.db.WithContext(ctx).
		Where("farm_id IN (?)", farms).
		Delete(&model.Crop{}).Error)
}

func (r *CropRepository) CountByName(ctx context.Context) ([]model.CropCount, error) {
	var counts []model.CropCount
	err := r.db.WithContext(ctx).
		Model(&model.Crop{}).
		Select("name, COUNT(*) AS total").
		Group("name").
		Order("total DESC").
		Scan(&counts).Error
	if err != nil {
		return nil, translateError(err)
	}
	return counts, nil
}
