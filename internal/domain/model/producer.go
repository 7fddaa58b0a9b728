package model

import "time"

// Producer é um produtor rural pertencente a exatamente um usuário.
// O CPF/CNPJ é único por usuário dono, não globalmente.
type Producer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	CpfOrCnpj string    `gorm:"size:14;not null;uniqueIndex:idx_producers_owner_document" json:"cpfOrCnpj"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_producers_owner_document" json:"userId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Farms     []Farm    `gorm:"foreignKey:ProducerID" json:"farms,omitempty"`
}

// TableName define o nome da tabela
func (Producer) TableName() string {
	return "producers"
}

// DeletedProducer é o resumo devolvido após uma exclusão bem-sucedida
type DeletedProducer struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// IsValidCpfOrCnpj valida o tamanho do documento (11 dígitos para CPF,
// 14 para CNPJ)
func IsValidCpfOrCnpj(value string) bool {
	return len(value) == 11 || len(value) == 14
}
