package database

import (
	"context"

	"github.com/agrotech/farm-api/internal/domain/model"
	"github.com/agrotech/farm-api/internal/domain/repository"
	"gorm.io/gorm"
)

// ProducerRepository implementa repository.ProducerRepository sobre GORM
type ProducerRepository struct {
	db *gorm.DB
}

// NewProducerRepository cria o repositório de produtores
func NewProducerRepository(db *gorm.DB) *ProducerRepository {
	return &ProducerRepository{db: db}
}

func (r *ProducerRepository) Create(ctx context.Context, producer *model.Producer) error {
	return translateError(r.db.WithContext(ctx).Create(producer).Error)
}

func (r *ProducerRepository) FindByID(ctx context.Context, id uint) (*model.Producer, error) {
	var producer model.Producer
	if err := r.db.WithContext(ctx).Preload("Farms").First(&producer, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &producer, nil
}

func (r *ProducerRepository) FindByOwner(ctx context.Context, userID uint) ([]*model.Producer, error) {
	var producers []*model.Producer
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&producers).Error
	if err != nil {
		return nil, translateError(err)
	}
	return producers, nil
}

func (r *ProducerRepository) FindDuplicate(ctx context.Context, cpfOrCnpj string, userID, excludeID uint) (*model.Producer, error) {
	query := r.db.WithContext(ctx).
		Where("cpf_or_cnpj = ? AND user_id = ?", cpfOrCnpj, userID)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var producer model.Producer
	if err := query.First(&producer).Error; err != nil {
		return nil, translateError(err)
	}
	return &producer, nil
}

// UpdateOwned atualiza condicionado ao dono em uma única escrita,
// eliminando a janela entre verificação e ação.
func (r *ProducerRepository) UpdateOwned(ctx context.Context, id, userID uint, fields map[string]interface{}) (*model.Producer, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Producer{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if result.Error != nil {
		return nil, translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *ProducerRepository) DeleteOwned(ctx context.Context, id, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Producer{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProducerRepository) DeleteByOwner(ctx context.Context, userID uint) error {
	return translateError(r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.Producer{}).Error)
}
