// Package jwt реализует выпуск и проверку JWT токенов сессии.
//
// Токен самодостаточен: он несёт email пользователя (subject), его
// идентификатор, отображаемое имя и срок действия. Состояние на сервере
// не хранится, токен остаётся валидным до естественного истечения.
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
type CustomClaims struct {
	UserID               int64  `json:"userid"` // Идентификатор пользователя
	Name                 string `json:"name"`   // Отображаемое имя
	jwt.RegisteredClaims        // Стандартные claims (Subject = email, ExpiresAt и пр.)
}

// Maker описывает интерфейс выпуска и проверки токенов сессии.
type Maker interface {
	// GenerateToken выпускает подписанный токен для пользователя.
	GenerateToken(email, name string, userID int64) (string, error)
	// IsValid сообщает, действителен ли токен. Любая ошибка разбора,
	// подписи или истечения нормализуется в false.
	IsValid(tokenStr string) bool
	// Subject извлекает subject (email) из токена.
	// Контракт вызывающего: сначала IsValid.
	Subject(tokenStr string) (string, error)
	// ParseToken разбирает токен и возвращает его claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует Maker на основе симметричного ключа HS256
// и времени жизни токена.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// DefaultTTL время жизни токена, если оно не задано в конфигурации.
const DefaultTTL = 2400 * time.Minute

// NewMaker создаёт новый MakerImpl. При нулевом ttl используется DefaultTTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
