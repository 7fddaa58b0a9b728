package security

import (
	"os"
)

// GetJWTSecret obtém o segredo JWT na seguinte ordem:
// 1. Variável de ambiente JWT_SECRET_KEY
// 2. Variável de ambiente AGROTECH_AUTH_JWTSECRET
// Retorna vazio quando nenhuma fonte está definida; nesse caso o chamador
// decide entre falhar ou usar o valor vindo do arquivo de configuração.
func GetJWTSecret() string {
	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		return secret
	}

	return os.Getenv("AGROTECH_AUTH_JWTSECRET")
}
