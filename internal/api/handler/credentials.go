package handler

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/meta-ads-dashboard-api/internal/usecases/account"
	"github.com/vfg2006/meta-ads-dashboard-api/pkg/apiErrors"
)

type SaveCredentialsRequest struct {
	AccountID   string `json:"accountId"`
	AccessToken string `json:"accessToken"`
}

// GetCredentials devolve null quando a conta ainda não foi configurada.
// O token nunca é devolvido, apenas se ele existe.
func GetCredentials(service account.AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		status, err := service.GetCredentials(r.Context(), claims.UserID)
		if err != nil {
			handleAccountError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, status)
	}
}

func SaveCredentials(service account.AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req SaveCredentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		status, err := service.SaveCredentials(r.Context(), claims.UserID, req.AccountID, req.AccessToken)
		if err != nil {
			handleAccountError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, status)
	}
}

func DeleteCredentials(service account.AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(w, r)
		if !ok {
			return
		}

		if err := service.DeleteCredentials(r.Context(), claims.UserID); err != nil {
			handleAccountError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func handleAccountError(w http.ResponseWriter, err error) {
	var accountErr *account.AccountError
	if errors.As(err, &accountErr) && accountErr.Code != "" {
		apiErrors.WriteError(w, accountErr.Code, accountErr.Error(), nil)
		return
	}

	logrus.WithError(err).Error("handler: erro nas credenciais")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao processar credenciais", nil)
}
