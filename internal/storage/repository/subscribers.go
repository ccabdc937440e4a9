package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/magabrotheeeer/publication-admin/internal/models"
)

const subscriberColumns = `id, title, first_name, last_name, company, department, address1, address2,
	country_id, phone, sector_interest, email, username, password_hash, type, status,
	payment_method, paid, joined_at`

// ListSubscribers возвращает всех подписчиков, новые первыми.
func (s *Storage) ListSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	const op = "storage.ListSubscribers"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	out := []models.Subscriber{}
	if err := sqlx.SelectContext(ctx, s.DB, &out,
		`SELECT `+subscriberColumns+` FROM subscribers ORDER BY id DESC`); err != nil {
		return nil, mapErr(op, err)
	}
	return out, nil
}

// GetSubscriber возвращает подписчика по id.
func (s *Storage) GetSubscriber(ctx context.Context, id int) (*models.Subscriber, error) {
	const op = "storage.GetSubscriber"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	var sub models.Subscriber
	if err := namedGet(ctx, s.DB, &sub,
		`SELECT `+subscriberColumns+` FROM subscribers WHERE id = :id`, map[string]any{"id": id}); err != nil {
		return nil, mapErr(op, err)
	}
	return &sub, nil
}

// CreateSubscriber сохраняет подписчика и возвращает его id.
// Занятый username даёт apperr.ErrConflict.
func (s *Storage) CreateSubscriber(ctx context.Context, sub models.Subscriber) (int, error) {
	const op = "storage.CreateSubscriber"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}
	var id int
	err := namedGet(ctx, s.DB, &id,
		`INSERT INTO subscribers (title, first_name, last_name, company, department, address1, address2,
			country_id, phone, sector_interest, email, username, password_hash, type, status,
			payment_method, paid, joined_at)
		 VALUES (:title, :first_name, :last_name, :company, :department, :address1, :address2,
			:country_id, :phone, :sector_interest, :email, :username, :password_hash, :type, :status,
			:payment_method, :paid, :joined_at)
		 RETURNING id`, sub)
	if err != nil {
		return 0, mapErr(op, err)
	}
	return id, nil
}

// UpdateSubscriber меняет профиль подписчика. Пустой password_hash оставляет прежний пароль.
// При смене username строки прав переносятся на новое имя в той же транзакции.
func (s *Storage) UpdateSubscriber(ctx context.Context, sub models.Subscriber) error {
	const op = "storage.UpdateSubscriber"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		var oldUsername string
		if err := namedGet(ctx, tx, &oldUsername,
			`SELECT username FROM subscribers WHERE id = :id FOR UPDATE`, map[string]any{"id": sub.ID}); err != nil {
			return err
		}
		if _, err := namedExec(ctx, tx,
			`UPDATE subscribers SET title = :title, first_name = :first_name, last_name = :last_name,
				company = :company, department = :department, address1 = :address1, address2 = :address2,
				country_id = :country_id, phone = :phone, sector_interest = :sector_interest, email = :email,
				username = :username, type = :type, status = :status, payment_method = :payment_method,
				paid = :paid,
				password_hash = COALESCE(NULLIF(:password_hash, ''), password_hash)
			 WHERE id = :id`, sub); err != nil {
			return err
		}
		if oldUsername == sub.Username {
			return nil
		}
		arg := map[string]any{"old_username": oldUsername, "new_username": sub.Username}
		for _, table := range entitlementTables {
			if _, err := namedExec(ctx, tx,
				`UPDATE `+table+` SET username = :new_username WHERE username = :old_username`, arg); err != nil {
				return fmt.Errorf("%s: %w", table, err)
			}
		}
		return nil
	})
	if err != nil {
		return mapErr(op, err)
	}
	return nil
}

// SetSubscriberStatus меняет статус учётной записи.
func (s *Storage) SetSubscriberStatus(ctx context.Context, id int, status string) error {
	const op = "storage.SetSubscriberStatus"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	n, err := namedExec(ctx, s.DB, `UPDATE subscribers SET status = :status WHERE id = :id`,
		map[string]any{"id": id, "status": status})
	return requireAffected(op, n, err)
}

// SetSubscriberPaid отмечает оплату.
func (s *Storage) SetSubscriberPaid(ctx context.Context, id int, paid bool) error {
	const op = "storage.SetSubscriberPaid"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	n, err := namedExec(ctx, s.DB, `UPDATE subscribers SET paid = :paid WHERE id = :id`,
		map[string]any{"id": id, "paid": paid})
	return requireAffected(op, n, err)
}

// DeleteSubscriber удаляет подписчика вместе со всеми строками прав в одной транзакции.
// Возвращает username удалённого подписчика.
func (s *Storage) DeleteSubscriber(ctx context.Context, id int) (string, error) {
	const op = "storage.DeleteSubscriber"
	if err := checkCtx(ctx, op); err != nil {
		return "", err
	}
	var username string
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := namedGet(ctx, tx, &username,
			`SELECT username FROM subscribers WHERE id = :id FOR UPDATE`, map[string]any{"id": id}); err != nil {
			return err
		}
		arg := map[string]any{"username": username, "id": id}
		for _, table := range entitlementTables {
			if _, err := namedExec(ctx, tx, `DELETE FROM `+table+` WHERE username = :username`, arg); err != nil {
				return fmt.Errorf("%s: %w", table, err)
			}
		}
		_, err := namedExec(ctx, tx, `DELETE FROM subscribers WHERE id = :id`, arg)
		return err
	})
	if err != nil {
		return "", mapErr(op, err)
	}
	return username, nil
}
