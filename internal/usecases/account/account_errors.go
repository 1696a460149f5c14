package account

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de credenciais
var (
	// Erros de validação
	ErrAccountIDRequired   = errors.New("account ID is required")
	ErrAccessTokenRequired = errors.New("access token is required")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("database operation error")
	ErrSaveCredentials   = errors.New("error saving credentials")
	ErrFetchCredentials  = errors.New("error fetching credentials from database")
)

// AccountError é um erro com contexto adicional para credenciais
type AccountError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	UserID  int    // Usuário dono das credenciais (quando aplicável)
	Details string // Detalhes adicionais
}

func (e *AccountError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AccountError) Unwrap() error {
	return e.Err
}

// NewAccountError cria um novo AccountError
func NewAccountError(err error, code string, details string) *AccountError {
	return &AccountError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewUserAccountError cria um novo AccountError com o usuário envolvido
func NewUserAccountError(err error, code string, userID int, details string) *AccountError {
	return &AccountError{
		Err:     err,
		Code:    code,
		UserID:  userID,
		Details: details,
	}
}
