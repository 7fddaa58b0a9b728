package model

import "time"

// Crop é uma cultura plantada em uma fazenda
type Crop struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:120;not null;index" json:"name"`
	FarmID    uint      `gorm:"not null;index" json:"farmId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName define o nome da tabela
func (Crop) TableName() string {
	return "crops"
}

// CropCount é a contagem de culturas por nome
type CropCount struct {
	Name  string `json:"name"`
	Total int64  `json:"total"`
}
