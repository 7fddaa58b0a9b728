package model

import "time"

// Role é o papel de um usuário no sistema
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleFarmer Role = "FARMER"
)

// Valid verifica se o valor pertence ao conjunto de papéis declarado
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleFarmer:
		return true
	}
	return false
}

// User é a representação de banco de dados de um usuário.
// O hash de senha nunca é serializado para fora.
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:120;not null" json:"name"`
	Email     string     `gorm:"uniqueIndex;size:160;not null" json:"email"`
	Password  string     `gorm:"not null" json:"-"`
	Role      Role       `gorm:"type:varchar(10);not null;default:FARMER" json:"role"`
	Superuser bool       `gorm:"not null;default:false" json:"superuser"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
	Producers []Producer `gorm:"foreignKey:UserID" json:"producers,omitempty"`
}

// TableName define o nome da tabela
func (User) TableName() string {
	return "users"
}

// UserView é a projeção de um usuário sem material de credencial
type UserView struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Superuser bool      `json:"superuser"`
	CreatedAt time.Time `json:"createdAt"`
}

// View retorna a projeção sanitizada do usuário
func (u *User) View() *UserView {
	return &UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Superuser: u.Superuser,
		CreatedAt: u.CreatedAt,
	}
}
