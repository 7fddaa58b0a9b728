package farm

import "github.com/agrotech/farm-api/pkg/apperrors"

// CheckAreas valida a aritmética de uso do solo de uma fazenda.
// A soma das áreas agricultável e de vegetação não pode exceder a área
// total; igualdade exata é permitida. Em atualizações parciais o chamador
// deve mesclar os valores persistidos antes de chamar.
func CheckAreas(arable, vegetation, total float64) error {
	if arable+vegetation > total {
		return apperrors.Conflict("a soma das áreas agricultável e de vegetação não pode exceder a área total")
	}
	return nil
}
