// Package authenticating autentica os usuários do dashboard declarados na
// configuração e emite/valida os tokens JWT usados pela API.
package authenticating

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/vfg2006/sales-analytics-api/internal/config"
	"github.com/vfg2006/sales-analytics-api/internal/domain"
)

// Authenticator autentica usuários e valida tokens emitidos no login.
type Authenticator interface {
	LoginUser(email, password string) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	GetUserByEmail(email string) (*domain.User, error)
}

type Service struct {
	cfg   *config.Config
	users map[string]*domain.User
}

// NewService cria o serviço de autenticação a partir dos usuários declarados
// na configuração. Não há cadastro em tempo de execução nem banco de dados.
func NewService(cfg *config.Config) Authenticator {
	users := make(map[string]*domain.User, len(cfg.Users))
	for _, u := range cfg.Users {
		email := handleEmail(u.Email)
		users[email] = &domain.User{
			Name:         u.Name,
			Email:        email,
			PasswordHash: u.PasswordHash,
			Active:       u.Active,
			RoleID:       u.RoleID,
		}
	}

	logrus.WithFields(logrus.Fields{
		"users": len(users),
	}).Info("Usuários do dashboard carregados da configuração")

	return &Service{cfg: cfg, users: users}
}

// LoginUser valida as credenciais e emite um token JWT com validade limitada.
func (s *Service) LoginUser(email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrMissingRequiredData
	}

	user, ok := s.users[handleEmail(email)]
	if !ok {
		// Mesma resposta de credenciais inválidas para não revelar quais
		// emails existem
		return "", ErrInvalidCredentials
	}

	if !user.Active {
		return "", ErrUserDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.generateToken(user)
}

// GetUserByEmail retorna o usuário declarado na configuração para o email.
func (s *Service) GetUserByEmail(email string) (*domain.User, error) {
	user, ok := s.users[handleEmail(email)]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// generateToken emite o JWT assinado com o segredo da configuração.
func (s *Service) generateToken(user *domain.User) (string, error) {
	ttl := time.Duration(s.cfg.Auth.TokenTTLHour) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	claims := domain.Claims{
		UserName:   user.Name,
		UserEmail:  user.Email,
		UserActive: user.Active,
		UserRoleID: user.RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.Secret))
}

// ValidateToken verifica a assinatura e a validade do token e devolve as
// claims do usuário.
func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// handleEmail normaliza o email para efeito de comparação
func handleEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
