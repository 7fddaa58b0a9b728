package model

// Principal é a identidade autenticada anexada a cada requisição.
// É apenas um token de capacidade: nunca é persistido e é passado
// explicitamente a cada chamada de serviço.
type Principal struct {
	ID        uint `json:"id"`
	Role      Role `json:"role"`
	Superuser bool `json:"superuser"`
}

// IsAdmin verifica se o principal tem papel administrativo
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
