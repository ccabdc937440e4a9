// Package users управляет учётными записями подписчиков.
package users

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/publication-admin/internal/lib/apperr"
	"github.com/magabrotheeeer/publication-admin/internal/lib/password"
	"github.com/magabrotheeeer/publication-admin/internal/lib/sl"
	"github.com/magabrotheeeer/publication-admin/internal/models"
	"github.com/magabrotheeeer/publication-admin/internal/notify"
)

// Repository хранилище подписчиков.
type Repository interface {
	ListSubscribers(ctx context.Context) ([]models.Subscriber, error)
	GetSubscriber(ctx context.Context, id int) (*models.Subscriber, error)
	CreateSubscriber(ctx context.Context, sub models.Subscriber) (int, error)
	UpdateSubscriber(ctx context.Context, sub models.Subscriber) error
	SetSubscriberStatus(ctx context.Context, id int, status string) error
	SetSubscriberPaid(ctx context.Context, id int, paid bool) error
	DeleteSubscriber(ctx context.Context, id int) (string, error)
}

// SubscriberDeleted событие об удалении подписчика.
type SubscriberDeleted struct {
	UserID    int       `json:"userId"`
	Username  string    `json:"username"`
	DeletedAt time.Time `json:"deletedAt"`
}

// Service подписчики.
type Service struct {
	repo      Repository
	publisher notify.Publisher
	log       *slog.Logger
	now       func() time.Time
}

// NewService создаёт Service.
func NewService(repo Repository, publisher notify.Publisher, log *slog.Logger) *Service {
	return &Service{repo: repo, publisher: publisher, log: log, now: time.Now}
}

// List возвращает всех подписчиков.
func (s *Service) List(ctx context.Context) ([]models.Subscriber, error) {
	const op = "services.users.List"
	out, err := s.repo.ListSubscribers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// Get возвращает подписчика.
func (s *Service) Get(ctx context.Context, id int) (*models.Subscriber, error) {
	const op = "services.users.Get"
	sub, err := s.repo.GetSubscriber(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

func fromInput(in models.SubscriberInput) models.Subscriber {
	sub := models.Subscriber{
		Title:          in.Title,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Company:        in.Company,
		Department:     in.Department,
		Address1:       in.Address1,
		Address2:       in.Address2,
		CountryID:      in.CountryID,
		Phone:          in.Phone,
		SectorInterest: in.SectorInterest,
		Email:          in.Email,
		Username:       in.Username,
		Type:           in.Type,
		Status:         in.Status,
		PaymentMethod:  in.PaymentMethod,
		Paid:           in.Paid,
	}
	if sub.Type == "" {
		sub.Type = models.TypeNormal
	}
	if sub.Status == "" {
		sub.Status = models.StatusNew
	}
	return sub
}

// Create заводит подписчика. Занятое имя пользователя даёт apperr.ErrConflict.
func (s *Service) Create(ctx context.Context, in models.SubscriberInput) (int, error) {
	const op = "services.users.Create"
	if in.Password == "" {
		return 0, fmt.Errorf("%s: %w", op, apperr.Invalidf("password is required"))
	}
	sub := fromInput(in)
	hash, err := password.GetHash(in.Password)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	sub.PasswordHash = hash

	id, err := s.repo.CreateSubscriber(ctx, sub)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// Update меняет профиль подписчика. Пустой пароль оставляет прежний.
func (s *Service) Update(ctx context.Context, id int, in models.SubscriberInput) error {
	const op = "services.users.Update"
	sub := fromInput(in)
	sub.ID = id
	if in.Password != "" {
		hash, err := password.GetHash(in.Password)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		sub.PasswordHash = hash
	}
	if err := s.repo.UpdateSubscriber(ctx, sub); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SetStatus меняет статус учётной записи.
func (s *Service) SetStatus(ctx context.Context, id int, status string) error {
	const op = "services.users.SetStatus"
	if status != models.StatusActive && status != models.StatusNew {
		return fmt.Errorf("%s: %w", op, apperr.Invalidf("status must be %q or %q", models.StatusActive, models.StatusNew))
	}
	if err := s.repo.SetSubscriberStatus(ctx, id, status); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SetPaid меняет признак оплаты.
func (s *Service) SetPaid(ctx context.Context, id int, paid bool) error {
	const op = "services.users.SetPaid"
	if err := s.repo.SetSubscriberPaid(ctx, id, paid); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete удаляет подписчика вместе со всеми его правами.
func (s *Service) Delete(ctx context.Context, id int) error {
	const op = "services.users.Delete"
	username, err := s.repo.DeleteSubscriber(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	event := SubscriberDeleted{UserID: id, Username: username, DeletedAt: s.now()}
	if err := s.publisher.Publish(ctx, notify.RoutingSubscriberDeleted, event); err != nil {
		s.log.Warn("failed to publish subscriber deletion", slog.String("username", username), sl.Err(err))
	}
	return nil
}
