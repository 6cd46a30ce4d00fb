package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken выпускает токен с subject = email, идентификатором и именем
// пользователя. Срок действия вычисляется как "сейчас + tokenTTL".
func (m *MakerImpl) GenerateToken(email, name string, userID int64) (string, error) {
	claims := CustomClaims{
		UserID: userID,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secretKey))
}

// ParseToken разбирает токен, проверяет подпись и срок действия,
// возвращает CustomClaims, если токен корректен. Метод подписи
// ограничен HMAC: токен с другим алгоритмом отклоняется.
func (m *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}

// IsValid нормализует любую ошибку разбора или проверки в false.
func (m *MakerImpl) IsValid(tokenStr string) bool {
	_, err := m.ParseToken(tokenStr)
	return err == nil
}

// Subject повторно разбирает токен и извлекает из него subject (email).
func (m *MakerImpl) Subject(tokenStr string) (string, error) {
	claims, err := m.ParseToken(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}
