package metadomain

import (
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

const errorPrefix = "Meta Ads API Error: "

// códigos da Graph API para limite de requisições
var rateLimitCodes = map[int64]bool{
	4:     true,
	17:    true,
	32:    true,
	613:   true,
	80004: true,
}

// APIError é qualquer resposta não-200 da Graph API
type APIError struct {
	Status    int
	Code      int64
	Subcode   int64
	Type      string
	Message   string
	FBTraceID string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsTokenExpired verifica se o erro é de token expirado ou inválido
func (e *APIError) IsTokenExpired() bool {
	// 190 é token expirado; 460, 463 e 467 são subcódigos OAuth de sessão inválida
	return e.Code == 190 ||
		(e.Type == "OAuthException" && (e.Subcode == 460 || e.Subcode == 463 || e.Subcode == 467))
}

func (e *APIError) IsRateLimited() bool {
	return rateLimitCodes[e.Code] || e.Status == http.StatusTooManyRequests
}

// IsUnavailable indica recurso inexistente ou sem permissão (anúncio
// removido, acesso revogado). Limite, 5xx e token inválido não entram.
func (e *APIError) IsUnavailable() bool {
	if e.IsRateLimited() || e.IsTokenExpired() || e.Status >= http.StatusInternalServerError {
		return false
	}

	if e.Status == http.StatusNotFound {
		return true
	}

	// 100 objeto inexistente ou campo inválido, 10 e 200-299 permissão
	return e.Code == 100 || e.Code == 10 || (e.Code >= 200 && e.Code <= 299)
}

// ParseAPIError extrai o objeto error do corpo. Sem mensagem no corpo,
// usa o status HTTP.
func ParseAPIError(status int, body []byte) *APIError {
	parsed := gjson.ParseBytes(body)

	message := parsed.Get("error.message").String()
	if message == "" {
		message = fmt.Sprintf("status %d %s", status, http.StatusText(status))
	}

	return &APIError{
		Status:    status,
		Code:      parsed.Get("error.code").Int(),
		Subcode:   parsed.Get("error.error_subcode").Int(),
		Type:      parsed.Get("error.type").String(),
		Message:   errorPrefix + message,
		FBTraceID: parsed.Get("error.fbtrace_id").String(),
	}
}
