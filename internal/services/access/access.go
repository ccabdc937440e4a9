// Package access считает и изменяет права подписчиков по категориям:
// ежемесячный дайджест, дополнительные получатели, поиск и статистика.
package access

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/publication-admin/internal/lib/apperr"
	"github.com/magabrotheeeer/publication-admin/internal/lib/sl"
	"github.com/magabrotheeeer/publication-admin/internal/metrics"
	"github.com/magabrotheeeer/publication-admin/internal/models"
	"github.com/magabrotheeeer/publication-admin/internal/notify"
)

// Repository хранилище подписчиков и строк прав.
type Repository interface {
	GetSubscriber(ctx context.Context, id int) (*models.Subscriber, error)
	AccessSnapshot(ctx context.Context, username string, now time.Time) (*models.AccessSnapshot, error)
	ApplyGrantOps(ctx context.Context, username string, ops []models.GrantOp) error
}

// Service калькулятор и мутатор прав.
type Service struct {
	repo      Repository
	publisher notify.Publisher
	log       *slog.Logger
	now       func() time.Time
}

// NewService создаёт Service.
func NewService(repo Repository, publisher notify.Publisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// Get возвращает текущие права подписчика.
func (s *Service) Get(ctx context.Context, userID int) (*models.Access, error) {
	const op = "services.access.Get"
	sub, err := s.repo.GetSubscriber(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	snap, err := s.repo.AccessSnapshot(ctx, sub.Username, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a := FromSnapshot(snap)
	a.UserID = sub.ID
	a.Username = sub.Username
	return a, nil
}

// Update применяет изменения прав одной транзакцией и возвращает пересчитанные права.
func (s *Service) Update(ctx context.Context, userID int, req models.AccessUpdate) (*models.Access, error) {
	const op = "services.access.Update"
	if err := validate(req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sub, err := s.repo.GetSubscriber(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	ops := Plan(req, now)
	if err := s.repo.ApplyGrantOps(ctx, sub.Username, ops); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(ops) > 0 {
		metrics.AccessUpdatesTotal.Inc()
		event := models.AccessChanged{UserID: sub.ID, Username: sub.Username, ChangedAt: now}
		if err := s.publisher.Publish(ctx, notify.RoutingAccessUpdated, event); err != nil {
			s.log.Warn("failed to publish access update", slog.String("op", op), sl.Err(err))
		}
	}

	snap, err := s.repo.AccessSnapshot(ctx, sub.Username, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a := FromSnapshot(snap)
	a.UserID = sub.ID
	a.Username = sub.Username
	return a, nil
}

func validate(req models.AccessUpdate) error {
	if req.MonthlyNews.Grant && !req.MonthlyNews.Remove && req.MonthlyNews.Duration < 1 {
		return apperr.Invalidf("monthly news duration must be at least one year")
	}
	if req.StatsAccess.Grant && !req.StatsAccess.Remove && req.StatsAccess.Duration < 1 {
		return apperr.Invalidf("stats access duration must be at least one year")
	}
	return nil
}

// FromSnapshot переводит агрегаты хранилища в права по категориям.
func FromSnapshot(snap *models.AccessSnapshot) *models.Access {
	a := &models.Access{
		MonthlyNews:  window(snap.MonthlyNews),
		SearchAccess: window(snap.Search),
		StatsAccess:  window(snap.Stats),
		ExtraCopies: models.ExtraCopies{
			HasAccess: snap.ExtraCopies.Count > 0,
			Copies:    snap.ExtraCopies.MaxCopies,
			Emails:    snap.ExtraCopies.Emails,
		},
		OtherReports: models.OtherReports{
			CentralEuropean: snap.CentralEuropean > 0,
			PolishChemical:  snap.PolishChemical > 0,
		},
	}
	if a.ExtraCopies.Emails == nil {
		a.ExtraCopies.Emails = []string{}
	}
	return a
}

func window(g models.GrantAggregate) models.Window {
	if g.Count == 0 {
		return models.Window{}
	}
	return models.Window{HasAccess: true, EndDate: g.MaxEnd}
}
