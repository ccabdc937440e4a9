// Package services содержит вход администратора, смену пароля и заведение
// первой учётной записи.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/publication-admin/internal/lib/apperr"
	"github.com/magabrotheeeer/publication-admin/internal/lib/jwt"
	"github.com/magabrotheeeer/publication-admin/internal/lib/password"
)

// AdminRepository описывает контракт хранилища администраторов.
type AdminRepository interface {
	// AdminPasswordHash возвращает хэш пароля или apperr.ErrNotFound.
	AdminPasswordHash(ctx context.Context, adminID string) (string, error)

	// SetAdminPassword сохраняет новый хэш пароля.
	SetAdminPassword(ctx context.Context, adminID, hash string) error

	// CreateAdminIfNone добавляет администратора, если их ещё нет.
	CreateAdminIfNone(ctx context.Context, adminID, hash string) (bool, error)
}

// AuthService отвечает за вход администратора и смену пароля.
type AuthService struct {
	admins   AdminRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(admins AdminRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		admins:   admins,
		jwtMaker: jwtMaker,
	}
}

// Login проверяет пароль администратора и выпускает токен.
// Неизвестное имя и неверный пароль одинаково дают apperr.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, error) {
	const op = "services.auth.Login"
	hash, err := s.admins.AdminPasswordHash(ctx, username)
	if errors.Is(err, apperr.ErrNotFound) {
		return "", fmt.Errorf("%s: %w", op, apperr.ErrUnauthorized)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(hash, rawPassword); err != nil {
		return "", fmt.Errorf("%s: %w", op, apperr.ErrUnauthorized)
	}
	token, err := s.jwtMaker.GenerateToken(username)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// ChangePassword меняет пароль администратора после проверки текущего.
func (s *AuthService) ChangePassword(ctx context.Context, adminID, current, next string) error {
	const op = "services.auth.ChangePassword"
	hash, err := s.admins.AdminPasswordHash(ctx, adminID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(hash, current); err != nil {
		return fmt.Errorf("%s: current password is incorrect: %w", op, apperr.ErrUnauthorized)
	}
	newHash, err := password.GetHash(next)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.admins.SetAdminPassword(ctx, adminID, newHash); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// EnsureBootstrapAdmin заводит администратора из конфига, если таблица пуста.
// Пустые имя или пароль означают, что заводить никого не нужно.
func (s *AuthService) EnsureBootstrapAdmin(ctx context.Context, username, rawPassword string) (bool, error) {
	const op = "services.auth.EnsureBootstrapAdmin"
	if username == "" || rawPassword == "" {
		return false, nil
	}
	hash, err := password.GetHash(rawPassword)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	created, err := s.admins.CreateAdminIfNone(ctx, username, hash)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}
