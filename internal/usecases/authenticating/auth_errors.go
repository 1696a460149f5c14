package authenticating

import (
	"errors"
	"fmt"

	"github.com/vfg2006/meta-ads-dashboard-api/pkg/apiErrors"
)

var (
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrUserDisabled       = errors.New("usuário desativado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrUserAlreadyExists  = errors.New("usuário já existe")

	// JWT do cabeçalho Authorization
	ErrInvalidToken = errors.New("token inválido")
	ErrExpiredToken = errors.New("token expirado")

	// cadastro
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")
	ErrWeakPassword        = errors.New("senha fraca")

	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// códigos da API para erros que chegam sem AuthError em volta
var sentinelCodes = []struct {
	err  error
	code string
}{
	{ErrInvalidCredentials, apiErrors.ErrInvalidCredentials},
	{ErrUserDisabled, apiErrors.ErrUserDisabled},
	{ErrUserNotFound, apiErrors.ErrUserNotFound},
	{ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists},
	{ErrExpiredToken, apiErrors.ErrExpiredToken},
	{ErrInvalidToken, apiErrors.ErrInvalidToken},
	{ErrMissingRequiredData, apiErrors.ErrMissingRequiredData},
	{ErrWeakPassword, apiErrors.ErrInvalidFormat},
	{ErrDatabaseOperation, apiErrors.ErrDatabaseOperation},
}

// AuthError carrega o código da API e, no login, o usuário envolvido
type AuthError struct {
	Err     error
	Code    string
	UserID  int
	Details string
}

func (e *AuthError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// APIDetails é o campo details da resposta de erro
func (e *AuthError) APIDetails() any {
	if e.UserID == 0 {
		return nil
	}
	return map[string]any{"user_id": e.UserID}
}

// APICode devolve o código da API para err, ou "" quando não é um erro de autenticação
func APICode(err error) string {
	var authErr *AuthError
	if errors.As(err, &authErr) && authErr.Code != "" {
		return authErr.Code
	}

	for _, sentinel := range sentinelCodes {
		if errors.Is(err, sentinel.err) {
			return sentinel.code
		}
	}

	return ""
}

func NewAuthError(baseErr error, code string, details string) *AuthError {
	return &AuthError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

// NewUserAuthError inclui o ID do usuário, devolvido em details na resposta
func NewUserAuthError(baseErr error, code string, userID int, details string) *AuthError {
	return &AuthError{
		Err:     baseErr,
		Code:    code,
		UserID:  userID,
		Details: details,
	}
}
