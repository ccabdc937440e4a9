// Package jwt выпускает и проверяет bearer-токены администраторов.
package jwt

import (
	"time"
)

// Maker описывает генерацию и разбор токенов администратора.
type Maker interface {
	GenerateToken(adminID string) (string, error)
	ParseToken(tokenStr string) (*AdminClaims, error)
}

// MakerImpl подписывает токены секретным ключом из конфига и задаёт им время жизни.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewJWTMaker создаёт MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
		now:       time.Now,
	}
}
