package jwts

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenInvalid = errors.New("token not valid")

type CustomClaims struct {
	Player string `json:"player"`
	jwt.RegisteredClaims
}

// NewClaims 签发给玩家的声明，expire <= 0 表示不过期
func NewClaims(player string, expire time.Duration) *CustomClaims {
	now := time.Now()
	claims := &CustomClaims{
		Player: player,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  player,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if expire > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(expire))
	}
	return claims
}

func GetToken(claims *CustomClaims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken 校验签名和过期时间，返回玩家名
func ParseToken(token, secret string) (string, error) {
	claims := new(CustomClaims)
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !parsed.Valid || claims.Player == "" {
		return "", ErrTokenInvalid
	}
	return claims.Player, nil
}
