package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vfg2006/sales-analytics-api/internal/config"
	"github.com/vfg2006/sales-analytics-api/internal/domain"
	"github.com/vfg2006/sales-analytics-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-analytics-api/pkg/apiErrors"
)

func testAuthenticator(t *testing.T) authenticating.Authenticator {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3nh4-f0rte"), bcrypt.MinCost)
	require.NoError(t, err)

	return authenticating.NewService(&config.Config{
		Auth: config.Auth{Secret: "test-secret", TokenTTLHour: 1},
		Users: []config.ConfigUser{
			{
				Name:         "Admin",
				Email:        "admin@example.com",
				PasswordHash: string(hash),
				RoleID:       domain.RoleAdmin,
				Active:       true,
			},
		},
	})
}

func TestLogin(t *testing.T) {
	service := testAuthenticator(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "Credenciais válidas retornam o token",
			body:       `{"email":"admin@example.com","password":"s3nh4-f0rte"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "Senha errada responde 401",
			body:       `{"email":"admin@example.com","password":"errada"}`,
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrInvalidCredentials,
		},
		{
			name:       "Campos ausentes respondem 400",
			body:       `{"email":"admin@example.com"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrMissingRequiredData,
		},
		{
			name:       "Corpo malformado responde 400",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/login", strings.NewReader(tt.body))

			rec := httptest.NewRecorder()
			Login(service)(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeAPIError(t, rec.Body).Code)
				return
			}

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["token"])
		})
	}
}
