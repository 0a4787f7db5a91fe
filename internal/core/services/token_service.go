package services

import (
	"time"

	"github.com/zahintraders/poultry_trading_app/internal/core/domain"
	portssvc "github.com/zahintraders/poultry_trading_app/internal/core/ports/services"
	"github.com/zahintraders/poultry_trading_app/internal/utils"
)

// TokenService issues signed access tokens carrying the user's role claim.
type TokenService struct {
	secret string
	expiry time.Duration
	issuer string
}

func NewTokenService(secret string, expiry time.Duration, issuer string) *TokenService {
	return &TokenService{secret: secret, expiry: expiry, issuer: issuer}
}

var _ portssvc.TokenSvcFacade = (*TokenService)(nil)

func (s *TokenService) GenerateAccessToken(user *domain.User) (string, time.Time, error) {
	return utils.GenerateJWT(user.UserID, string(user.Role), s.secret, s.expiry, s.issuer)
}
