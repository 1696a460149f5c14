package reporting

import "errors"

var (
	// ErrNoCredentials é devolvido antes de qualquer acesso ao cache ou à API
	ErrNoCredentials = errors.New("credenciais do Meta Ads não configuradas")
	ErrInvalidQuery  = errors.New("consulta inválida")
)
