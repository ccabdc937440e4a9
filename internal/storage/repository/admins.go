package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/publication-admin/internal/lib/apperr"
)

// AdminPasswordHash возвращает хэш пароля администратора.
func (s *Storage) AdminPasswordHash(ctx context.Context, adminID string) (string, error) {
	const op = "storage.AdminPasswordHash"
	if err := checkCtx(ctx, op); err != nil {
		return "", err
	}
	var hash string
	if err := namedGet(ctx, s.DB, &hash,
		`SELECT password_hash FROM admins WHERE id = :id`, map[string]any{"id": adminID}); err != nil {
		return "", mapErr(op, err)
	}
	return hash, nil
}

// SetAdminPassword меняет хэш пароля администратора.
func (s *Storage) SetAdminPassword(ctx context.Context, adminID, hash string) error {
	const op = "storage.SetAdminPassword"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	n, err := namedExec(ctx, s.DB, `UPDATE admins SET password_hash = :hash WHERE id = :id`,
		map[string]any{"id": adminID, "hash": hash})
	return requireAffected(op, n, err)
}

// CreateAdminIfNone добавляет администратора, только если таблица пуста.
// Возвращает true, если запись была создана.
func (s *Storage) CreateAdminIfNone(ctx context.Context, adminID, hash string) (bool, error) {
	const op = "storage.CreateAdminIfNone"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}
	if adminID == "" || hash == "" {
		return false, fmt.Errorf("%s: %w", op, apperr.ErrInvalid)
	}
	n, err := namedExec(ctx, s.DB,
		`INSERT INTO admins (id, password_hash)
		 SELECT :id, :hash WHERE NOT EXISTS (SELECT 1 FROM admins)`,
		map[string]any{"id": adminID, "hash": hash})
	if err != nil {
		return false, mapErr(op, err)
	}
	return n > 0, nil
}
