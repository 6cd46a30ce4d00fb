// Package auth содержит логику бизнес-уровня для работы с пользователями
// и аутентификацией: регистрация с проверкой уникальности email,
// вход по email и паролю и выпуск токена сессии.
package auth

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/finance-ledger/internal/errs"
	"github.com/magabrotheeeer/finance-ledger/internal/lib/jwt"
	"github.com/magabrotheeeer/finance-ledger/internal/lib/password"
	"github.com/magabrotheeeer/finance-ledger/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// SaveUser сохраняет нового пользователя и возвращает его с назначенным ID.
	SaveUser(ctx context.Context, user models.User) (*models.User, error)
	// FindUserByEmail возвращает пользователя по email или nil, если не найден.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	// FindUserByID возвращает пользователя по ID или nil, если не найден.
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
	// ExistsByEmail сообщает, зарегистрирован ли email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// AuthService отвечает за регистрацию, вход и выпуск токенов сессии.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Register создает нового пользователя с хэшированием пароля.
// Если email уже занят, возвращает ValidationError и не обращается
// к сохранению. Уникальность дополнительно гарантируется ограничением
// в базе данных.
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword string) (*models.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewValidation("a user is already registered with this email")
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
	}
	saved, err := s.users.SaveUser(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info("registered new user", slog.Int64("id", saved.ID))
	return saved, nil
}

// Login проверяет учётные данные пользователя и выпускает токен сессии.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (token string, user *models.User, err error) {
	user, err = s.users.FindUserByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, errs.NewAuthentication("user not found for the given email")
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, errs.NewAuthentication("invalid password")
	}

	token, err = s.jwtMaker.GenerateToken(user.Email, user.Name, user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// FindUserByID возвращает пользователя по ID. Отсутствие пользователя
// не считается ошибкой: возвращается (nil, nil). Метод реализует
// ledger.UserProvider поверх репозитория пользователей.
func (s *AuthService) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.users.FindUserByID(ctx, id)
}

// FindByEmail возвращает пользователя по email, (nil, nil) при отсутствии.
// Используется аутентификационным middleware для восстановления личности
// по subject токена.
func (s *AuthService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.FindUserByEmail(ctx, email)
}
