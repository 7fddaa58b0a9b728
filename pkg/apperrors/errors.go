package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifica um erro de domínio. O conjunto é fechado: toda falha de
// regra de negócio é exatamente um desses tipos.
type Kind int

const (
	// KindInternal é o fallback para falhas que não são problema do chamador
	// (erros de infraestrutura propagados sem mapeamento).
	KindInternal Kind = iota

	// KindNotFound indica recurso inexistente — ou existente mas oculto
	// para quem não é o dono.
	KindNotFound

	// KindForbidden indica que a autoridade de papel ou de posse negou a operação.
	KindForbidden

	// KindConflict indica violação de unicidade, de invariante de área ou
	// bloqueio de exclusão em cascata.
	KindConflict

	// KindBadRequest indica entrada malformada (papel inválido, parâmetro ausente).
	KindBadRequest
)

// Error representa um erro de domínio com tipo fechado
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implementa a interface error
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap permite usar errors.Is e errors.As
func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus mapeia o tipo do erro para a família de status HTTP correspondente
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// New cria um novo Error
func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NotFound cria um erro de recurso não encontrado
func NotFound(message string) *Error {
	if message == "" {
		message = "recurso não encontrado"
	}
	return New(KindNotFound, message, nil)
}

// Forbidden cria um erro de acesso negado
func Forbidden(message string) *Error {
	if message == "" {
		message = "acesso negado"
	}
	return New(KindForbidden, message, nil)
}

// Conflict cria um erro de conflito
func Conflict(message string) *Error {
	return New(KindConflict, message, nil)
}

// BadRequest cria um erro de requisição inválida
func BadRequest(message string) *Error {
	return New(KindBadRequest, message, nil)
}

// Wrap anexa a causa original preservando o tipo
func Wrap(kind Kind, message string, err error) *Error {
	return New(kind, message, err)
}

// KindOf extrai o tipo de um erro qualquer. Erros que não são *Error
// são tratados como internos.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind verifica se o erro carrega o tipo informado
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
