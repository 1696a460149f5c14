package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/meta-ads-dashboard-api/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/meta-ads-dashboard-api/pkg/apiErrors"
)

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(service *mocks.MockAuthenticator)
		wantStatus int
		validate   func(t *testing.T, body string)
	}{
		{
			name: "sucesso",
			body: `{"email":"ana@exemplo.com","password":"Senha123"}`,
			setup: func(service *mocks.MockAuthenticator) {
				service.EXPECT().LoginUser(gomock.Any(), "ana@exemplo.com", "Senha123").Return("jwt-token", nil)
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, body string) {
				assert.JSONEq(t, `{"token":"jwt-token"}`, body)
			},
		},
		{
			name: "senha incorreta",
			body: `{"email":"ana@exemplo.com","password":"errada"}`,
			setup: func(service *mocks.MockAuthenticator) {
				service.EXPECT().LoginUser(gomock.Any(), "ana@exemplo.com", "errada").
					Return("", authenticating.NewUserAuthError(authenticating.ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, 3, "Senha incorreta"))
			},
			wantStatus: http.StatusUnauthorized,
			validate: func(t *testing.T, body string) {
				assert.Contains(t, body, apiErrors.ErrInvalidCredentials)
				assert.Contains(t, body, `"user_id":3`)
			},
		},
		{
			name:       "corpo inválido",
			body:       `nada`,
			setup:      func(service *mocks.MockAuthenticator) {},
			wantStatus: http.StatusBadRequest,
			validate: func(t *testing.T, body string) {
				assert.Contains(t, body, apiErrors.ErrInvalidRequest)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := mocks.NewMockAuthenticator(ctrl)
			tt.setup(service)

			rec := serve(Authentication(service), newRequest(http.MethodPost, "/v1/login", tt.body, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			tt.validate(t, rec.Body.String())
		})
	}
}

func TestRegister(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockAuthenticator(ctrl)

	service.EXPECT().
		CreateUser(gomock.Any(), gomock.Cond(func(u *domain.User) bool {
			return u.Email == "ana@exemplo.com" && u.PasswordHash == "Senha123" && u.Name == "Ana"
		})).
		Return(&domain.User{ID: 9, Name: "Ana", Email: "ana@exemplo.com", Active: true, RoleID: 3}, nil)

	body := `{"name":"Ana","lastname":"Souza","email":"ana@exemplo.com","password":"Senha123"}`
	rec := serve(Authentication(service), newRequest(http.MethodPost, "/v1/register", body, nil))

	require.Equal(t, http.StatusCreated, rec.Code)

	var user domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, 9, user.ID)
	assert.Empty(t, user.PasswordHash)
}

func TestRegister_ExistingUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockAuthenticator(ctrl)

	service.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
		Return(nil, authenticating.NewAuthError(authenticating.ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, "Email já cadastrado"))

	rec := serve(Authentication(service), newRequest(http.MethodPost, "/v1/register", `{"email":"a@b.com"}`, nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrUserAlreadyExists, decodeAPIError(t, rec).Code)
}

func TestGetMe(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockAuthenticator(ctrl)

	service.EXPECT().GetUserProfile(gomock.Any(), clientClaims.UserID).
		Return(&domain.User{ID: clientClaims.UserID, Email: "ana@exemplo.com"}, nil)

	rec := serve(Authentication(service), newRequest(http.MethodGet, "/v1/me", "", clientClaims))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"ana@exemplo.com"`)
}
