package database

import (
	"context"

	"github.com/agrotech/farm-api/internal/domain/model"
	"github.com/agrotech/farm-api/internal/domain/repository"
	"gorm.io/gorm"
)

// FarmRepository implementa repository.FarmRepository sobre GORM
type FarmRepository struct {
	db *gorm.DB
}

// NewFarmRepository cria o repositório de fazendas
func NewFarmRepository(db *gorm.DB) *FarmRepository {
	return &FarmRepository{db: db}
}

func (r *FarmRepository) Create(ctx context.Context, farm *model.Farm) error {
	return translateError(r.db.WithContext(ctx).Create(farm).Error)
}

func (r *FarmRepository) FindByID(ctx context.Context, id uint) (*model.Farm, error) {
	var farm model.Farm
	if err := r.db.WithContext(ctx).First(&farm, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &farm, nil
}

func (r *FarmRepository) FindByProducer(ctx context.Context, producerID uint, offset, limit int) ([]*model.Farm, error) {
	var farms []*model.Farm
	err := r.db.WithContext(ctx).
		Where("producer_id = ?", producerID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&farms).Error
	if err != nil {
		return nil, translateError(err)
	}
	return farms, nil
}

func (r *FarmRepository) CountByProducer(ctx context.Context, producerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Farm{}).
		Where("producer_id = ?", producerID).
		Count(&count).Error
	if err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// ownedFarms restringe a consulta às fazendas cujos produtores pertencem
// ao usuário informado
func (r *FarmRepository) ownedFarms(ctx context.Context, userID uint) *gorm.DB {
	sub := r.db.Model(&model.Producer{}).Select("id").Where("user_id = ?", userID)
	return r.db.WithContext(ctx).Where("producer_id IN (?)", sub)
}

// UpdateOwned atualiza condicionado ao dono transitivo em uma única
// escrita, eliminando a janela entre verificação e ação.
func (r *FarmRepository) UpdateOwned(ctx context.Context, id, userID uint, fields map[string]interface{}) (*model.Farm, error) {
	result := r.ownedFarms(ctx, userID).
		Model(&model.Farm{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return nil, translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *FarmRepository) DeleteOwned(ctx context.Context, id, userID uint) error {
	result := r.ownedFarms(ctx, userID).
		Where("id = ?", id).
		Delete(&model.Farm{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *FarmRepository) DeleteByOwner(ctx context.Context, userID uint) error {
	return translateError(r.ownedFarms(ctx, userID).Delete(&model.Farm{}).Error)
}

func (r *FarmRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Farm{}).Count(&count).Error; err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

func (r *FarmRepository) SumAreas(ctx context.Context) (total, arable, vegetation float64, err error) {
	var sums struct {
		Total      float64
		Arable     float64
		Vegetation float64
	}
	err = r.db.WithContext(ctx).
		Model(&model.Farm{}).
		Select("COALESCE(SUM(total_area), 0) AS total, COALESCE(SUM(arable_area), 0) AS arable, COALESCE(SUM(vegetation_area), 0) AS vegetation").
		Scan(&sums).Error
	if err != nil {
		return 0, 0, 0, translateError(err)
	}
	return sums.Total, sums.Arable, sums.Vegetation, nil
}

func (r *FarmRepository) CountByState(ctx context.Context) ([]model.StateCount, error) {
	var counts []model.StateCount
	err := r.db.WithContext(ctx).
		Model(&model.Farm{}).
		Select("state, COUNT(*) AS total").
		Group("state").
		Order("total DESC").
		Scan(&counts).Error
	if err != nil {
		return nil, translateError(err)
	}
	return counts, nil
}
