package authenticating_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/insights-exporter/internal/config"
	"github.com/vfg2006/insights-exporter/internal/domain"
	"github.com/vfg2006/insights-exporter/internal/usecases/authenticating"
	"github.com/vfg2006/insights-exporter/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/insights-exporter/pkg/apiErrors"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const secret = "segredo-de-teste"

func testConfig() *config.Config {
	return &config.Config{SecretKey: secret}
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginUser(t *testing.T) {
	activeUser := &domain.User{
		ID:           7,
		Name:         "Ana",
		Email:        "ana@exemplo.com",
		PasswordHash: hashed(t, "senha-forte"),
		Active:       true,
		RoleID:       2,
		Timezone:     "Asia/Tokyo",
	}

	tests := []struct {
		name     string
		email    string
		password string
		setup    func(repo *mocks.MockUserReader)
		wantCode string
	}{
		{
			name:     "Login com sucesso normaliza o e-mail",
			email:    "  ANA@exemplo.com ",
			password: "senha-forte",
			setup: func(repo *mocks.MockUserReader) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "ana@exemplo.com").Return(activeUser, nil)
			},
		},
		{
			name:     "Campos obrigatórios ausentes",
			email:    "",
			password: "",
			setup:    func(repo *mocks.MockUserReader) {},
			wantCode: apiErrors.ErrMissingRequiredData,
		},
		{
			name:     "Usuário inexistente",
			email:    "ninguem@exemplo.com",
			password: "x",
			setup: func(repo *mocks.MockUserReader) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "ninguem@exemplo.com").Return(nil, nil)
			},
			wantCode: apiErrors.ErrUserNotFound,
		},
		{
			name:     "Usuário desativado",
			email:    "ana@exemplo.com",
			password: "senha-forte",
			setup: func(repo *mocks.MockUserReader) {
				disabled := *activeUser
				disabled.Active = false
				repo.EXPECT().GetUserByEmail(gomock.Any(), "ana@exemplo.com").Return(&disabled, nil)
			},
			wantCode: apiErrors.ErrUserDisabled,
		},
		{
			name:     "Senha incorreta",
			email:    "ana@exemplo.com",
			password: "errada",
			setup: func(repo *mocks.MockUserReader) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "ana@exemplo.com").Return(activeUser, nil)
			},
			wantCode: apiErrors.ErrInvalidCredentials,
		},
		{
			name:     "Falha no banco",
			email:    "ana@exemplo.com",
			password: "senha-forte",
			setup: func(repo *mocks.MockUserReader) {
				repo.EXPECT().GetUserByEmail(gomock.Any(), "ana@exemplo.com").Return(nil, errors.New("conexão recusada"))
			},
			wantCode: apiErrors.ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockUserReader(ctrl)
			tt.setup(repo)

			service := authenticating.NewService(repo, testConfig())
			token, err := service.LoginUser(t.Context(), tt.email, tt.password)

			if tt.wantCode != "" {
				var authErr *authenticating.AuthError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, tt.wantCode, authErr.Code)
				assert.Empty(t, token)
				return
			}

			require.NoError(t, err)
			claims, err := service.ValidateToken(token)
			require.NoError(t, err)
			assert.Equal(t, 7, claims.UserID)
			assert.Equal(t, 2, claims.UserRoleID)
			assert.Equal(t, "Asia/Tokyo", claims.UserTimezone)
		})
	}
}

func TestValidateToken(t *testing.T) {
	service := authenticating.NewService(nil, testConfig())

	sign := func(t *testing.T, key string, expiresAt time.Time) string {
		t.Helper()
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, domain.Claims{
			UserID: 7,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(expiresAt),
			},
		})
		signed, err := token.SignedString([]byte(key))
		require.NoError(t, err)
		return signed
	}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "Token válido", token: sign(t, secret, time.Now().Add(time.Hour))},
		{name: "Token expirado", token: sign(t, secret, time.Now().Add(-time.Hour)), wantErr: authenticating.ErrExpiredToken},
		{name: "Assinatura com outra chave", token: sign(t, "outra", time.Now().Add(time.Hour)), wantErr: authenticating.ErrInvalidToken},
		{name: "Token malformado", token: "abc.def", wantErr: authenticating.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 7, claims.UserID)
		})
	}
}

func TestGetUserProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserReader(ctrl)

	repo.EXPECT().GetUserByID(gomock.Any(), 7).Return(&domain.User{ID: 7, PasswordHash: "hash"}, nil)
	repo.EXPECT().GetUserByID(gomock.Any(), 8).Return(nil, nil)

	service := authenticating.NewService(repo, testConfig())

	user, err := service.GetUserProfile(t.Context(), 7)
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)

	_, err = service.GetUserProfile(t.Context(), 8)
	assert.ErrorIs(t, err, authenticating.ErrUserNotFound)
}
