package model

import "time"

// Farm é uma fazenda pertencente a um produtor (e, transitivamente, ao
// usuário dono do produtor). Invariante: arableArea + vegetationArea
// nunca excede totalArea.
type Farm struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:120;not null" json:"name"`
	City           string    `gorm:"size:120;not null" json:"city"`
	State          string    `gorm:"size:2;not null;index" json:"state"`
	TotalArea      float64   `gorm:"not null" json:"totalArea"`
	ArableArea     float64   `gorm:"not null" json:"arableArea"`
	VegetationArea float64   `gorm:"not null" json:"vegetationArea"`
	ProducerID     uint      `gorm:"not null;index" json:"producerId"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Crops          []Crop    `gorm:"foreignKey:FarmID" json:"crops,omitempty"`
}

// TableName define o nome da tabela
func (Farm) TableName() string {
	return "farms"
}

// LandUse agrega as somas de uso do solo de todas as fazendas
type LandUse struct {
	ArableArea     float64 `json:"arableArea"`
	VegetationArea float64 `json:"vegetationArea"`
}

// StateCount é a contagem de fazendas por estado
type StateCount struct {
	State string `json:"state"`
	Total int64  `json:"total"`
}
