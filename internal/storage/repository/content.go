package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/magabrotheeeer/publication-admin/internal/models"
)

// ListEvents возвращает мероприятия, новые первыми.
func (s *Storage) ListEvents(ctx context.Context) ([]models.Event, error) {
	const op = "storage.ListEvents"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	out := []models.Event{}
	if err := sqlx.SelectContext(ctx, s.DB, &out,
		`SELECT id, title, link, venue, display FROM events ORDER BY id DESC`); err != nil {
		return nil, mapErr(op, err)
	}
	return out, nil
}

// GetEvent возвращает мероприятие по id.
func (s *Storage) GetEvent(ctx context.Context, id int) (*models.Event, error) {
	const op = "storage.GetEvent"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	var e models.Event
	if err := namedGet(ctx, s.DB, &e, `SELECT id, title, link, venue, display FROM events WHERE id = :id`,
		map[string]any{"id": id}); err != nil {
		return nil, mapErr(op, err)
	}
	return &e, nil
}

// CreateEvent сохраняет мероприятие.
func (s *Storage) CreateEvent(ctx context.Context, e models.Event) (int, error) {
	const op = "storage.CreateEvent"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}
	var id int
	if err := namedGet(ctx, s.DB, &id,
		`INSERT INTO events (title, link, venue, display) VALUES (:title, :link, :venue, :display) RETURNING id`,
		e); err != nil {
		return 0, mapErr(op, err)
	}
	return id, nil
}

// UpdateEvent меняет мероприятие.
func (s *Storage) UpdateEvent(ctx context.Context, e models.Event) error {
	const op = "storage.UpdateEvent"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	n, err := namedExec(ctx, s.DB,
		`UPDATE events SET title = :title, link = :link, venue = :venue, display = :display WHERE id = :id`, e)
	return requireAffected(op, n, err)
}

// DeleteEvent удаляет мероприятие.
func (s *Storage) DeleteEvent(ctx context.Context, id int) error {
	const op = "storage.DeleteEvent"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	n, err := namedExec(ctx, s.DB, `DELETE FROM events WHERE id = :id`, map[string]any{"id": id})
	return requireAffected(op, n, err)
}

// SetEventDisplay переключает видимость мероприятия.
func (s *Storage) SetEventDisplay(ctx context.Context, id int, display bool) error {
	const op = "storage.SetEventDisplay"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	n, err := namedExec(ctx, s.DB, `UPDATE events SET display = :display WHERE id = :id`,
		map[string]any{"id": id, "display": display})
	return requireAffected(op, n, err)
}

// ListLinks возвращает ссылки.
func (s *Storage) ListLinks(ctx context.Context) ([]models.Link, error) {
	const op = "storage.ListLinks"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	out := []models.Link{}
	if err := sqlx.SelectContext(ctx, s.DB, &out,
		`SELECT id, title, url, display FROM links ORDER BY id DESC`); err != nil {
		return nil, mapErr(op, err)
	}
	return out, nil
}

// GetLink возвращает ссылку по id.
func (s *Storage) GetLink(ctx context.Context, id int) (*models.Link, error) {
	const op = "storage.GetLink"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	var l models.Link
	if err := namedGet(ctx, s.DB, &l, `SELECT id, title, url, display FROM links WHERE id = :id`,
		map[string]any{"id": id}); err != nil {
		return nil, mapErr(op, err)
	}
	return &l, nil
}

// CreateLink сохраняет ссылку.
func (s *Storage) CreateLink(ctx context.Context, l models.Link) (int, error) {
	const op = "storage.CreateLink"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}
	var id int
	if err := namedGet(ctx, s.DB, &id,
		`INSERT INTO links (title, url, display) VALUES (:title, :url, :display) RETURNING id`, l); err != nil {
		return 0, mapErr(op, err)
	}
	return id, nil
}

// UpdateLink меняет ссылку.
func (s *Storage) UpdateLink(ctx context.Context, l models.Link) error {
	const op = "storage.UpdateLink"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	n, err := namedExec(ctx, s.DB,
		`UPDATE links SET title = :title, url = :url, display = :display WHERE id = :id`, l)
	return requireAffected(op, n, err)
}

// DeleteLink удаляет ссылку.
func (s *Storage) DeleteLink(ctx context.Context, id int) error {
	const op = "storage.DeleteLink"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	n, err := namedExec(ctx, s.DB, `DELETE FROM links WHERE id = :id`, map[string]any{"id": id})
	return requireAffected(op, n, err)
}

// SetLinkDisplay переключает видимость ссылки.
func (s *Storage) SetLinkDisplay(ctx context.Context, id int, display bool) error {
	const op = "storage.SetLinkDisplay"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	n, err := namedExec(ctx, s.DB, `UPDATE links SET display = :display WHERE id = :id`,
		map[string]any{"id": id, "display": display})
	return requireAffected(op, n, err)
}

// ListPages возвращает статические страницы.
func (s *Storage) ListPages(ctx context.Context) ([]models.Page, error) {
	const op = "storage.ListPages"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	out := []models.Page{}
	if err := sqlx.SelectContext(ctx, s.DB, &out, `SELECT id, name FROM pages ORDER BY id`); err != nil {
		return nil, mapErr(op, err)
	}
	return out, nil
}

// ListPageContent возвращает блоки страницы.
func (s *Storage) ListPageContent(ctx context.Context, pageID int) ([]models.PageContent, error) {
	const op = "storage.ListPageContent"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	out := []models.PageContent{}
	if err := namedSelect(ctx, s.DB, &out,
		`SELECT id, page_id, content FROM page_contents WHERE page_id = :page_id ORDER BY id`,
		map[string]any{"page_id": pageID}); err != nil {
		return nil, mapErr(op, err)
	}
	return out, nil
}

// CreatePageContent добавляет блок на страницу.
func (s *Storage) CreatePageContent(ctx context.Context, pc models.PageContent) (int, error) {
	const op = "storage.CreatePageContent"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}
	var id int
	if err := namedGet(ctx, s.DB, &id,
		`INSERT INTO page_contents (page_id, content) VALUES (:page_id, :content) RETURNING id`, pc); err != nil {
		return 0, mapErr(op, err)
	}
	return id, nil
}

// UpdatePageContent меняет блок страницы.
func (s *Storage) UpdatePageContent(ctx context.Context, pc models.PageContent) error {
	const op = "storage.UpdatePageContent"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	n, err := namedExec(ctx, s.DB,
		`UPDATE page_contents SET page_id = :page_id, content = :content WHERE id = :id`, pc)
	return requireAffected(op, n, err)
}

// DeletePageContent удаляет блок страницы.
func (s *Storage) DeletePageContent(ctx context.Context, id int) error {
	const op = "storage.DeletePageContent"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	n, err := namedExec(ctx, s.DB, `DELETE FROM page_contents WHERE id = :id`, map[string]any{"id": id})
	return requireAffected(op, n, err)
}

// ListSearchKeywords возвращает подсказки поиска.
func (s *Storage) ListSearchKeywords(ctx context.Context) ([]models.SearchKeyword, error) {
	const op = "storage.ListSearchKeywords"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	out := []models.SearchKeyword{}
	if err := sqlx.SelectContext(ctx, s.DB, &out,
		`SELECT id, user_key, suggested_key, display FROM search_keywords ORDER BY id DESC`); err != nil {
		return nil, mapErr(op, err)
	}
	return out, nil
}

// CreateSearchKeyword сохраняет подсказку.
func (s *Storage) CreateSearchKeyword(ctx context.Context, k models.SearchKeyword) (int, error) {
	const op = "storage.CreateSearchKeyword"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}
	var id int
	if err := namedGet(ctx, s.DB, &id,
		`INSERT INTO search_keywords (user_key, suggested_key, display)
		 VALUES (:user_key, :suggested_key, :display) RETURNING id`, k); err != nil {
		return 0, mapErr(op, err)
	}
	return id, nil
}

// UpdateSearchKeyword меняет подсказку.
func (s *Storage) UpdateSearchKeyword(ctx context.Context, k models.SearchKeyword) error {
	const op = "storage.UpdateSearchKeyword"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	n, err := namedExec(ctx, s.DB,
		`UPDATE search_keywords SET user_key = :user_key, suggested_key = :suggested_key WHERE id = :id`, k)
	return requireAffected(op, n, err)
}

// ToggleSearchKeyword инвертирует видимость подсказки и возвращает новое значение.
func (s *Storage) ToggleSearchKeyword(ctx context.Context, id int) (bool, error) {
	const op = "storage.ToggleSearchKeyword"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}
	var display bool
	if err := namedGet(ctx, s.DB, &display,
		`UPDATE search_keywords SET display = NOT display WHERE id = :id RETURNING display`,
		map[string]any{"id": id}); err != nil {
		return false, mapErr(op, err)
	}
	return display, nil
}

// DeleteSearchKeyword удаляет подсказку.
func (s *Storage) DeleteSearchKeyword(ctx context.Context, id int) error {
	const op = "storage.DeleteSearchKeyword"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	n, err := namedExec(ctx, s.DB, `DELETE FROM search_keywords WHERE id = :id`, map[string]any{"id": id})
	return requireAffected(op, n, err)
}

// ListContacts возвращает обращения. limit 0 означает все.
func (s *Storage) ListContacts(ctx context.Context, limit, offset int) ([]models.Contact, int, error) {
	const op = "storage.ListContacts"
	if err := checkCtx(ctx, op); err != nil {
		return nil, 0, err
	}
	var total int
	if err := sqlx.GetContext(ctx, s.DB, &total, `SELECT COUNT(*) FROM contacts`); err != nil {
		return nil, 0, mapErr(op, err)
	}
	query := `SELECT id, name, email, company, phone, message, created_at FROM contacts ORDER BY id DESC`
	arg := map[string]any{}
	if limit > 0 {
		query += ` LIMIT :limit OFFSET :offset`
		arg["limit"] = limit
		arg["offset"] = offset
	}
	out := []models.Contact{}
	if err := namedSelect(ctx, s.DB, &out, query, arg); err != nil {
		return nil, 0, mapErr(op, err)
	}
	return out, total, nil
}

// DeleteContact удаляет обращение.
func (s *Storage) DeleteContact(ctx context.Context, id int) error {
	const op = "storage.DeleteContact"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	n, err := namedExec(ctx, s.DB, `DELETE FROM contacts WHERE id = :id`, map[string]any{"id": id})
	return requireAffected(op, n, err)
}

// ListCostOptions возвращает варианты регистрации.
func (s *Storage) ListCostOptions(ctx context.Context) ([]models.CostOption, error) {
	const op = "storage.ListCostOptions"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	out := []models.CostOption{}
	if err := sqlx.SelectContext(ctx, s.DB, &out, `SELECT id, name FROM cost_options ORDER BY id`); err != nil {
		return nil, mapErr(op, err)
	}
	return out, nil
}

// ListCostPrices возвращает цены варианта регистрации.
func (s *Storage) ListCostPrices(ctx context.Context, optionID int) ([]models.CostPrice, error) {
	const op = "storage.ListCostPrices"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	out := []models.CostPrice{}
	if err := namedSelect(ctx, s.DB, &out,
		`SELECT id, name, price, option_id FROM cost_prices WHERE option_id = :option_id ORDER BY id`,
		map[string]any{"option_id": optionID}); err != nil {
		return nil, mapErr(op, err)
	}
	return out, nil
}

// GetCostPrice возвращает цену по id.
func (s *Storage) GetCostPrice(ctx context.Context, id int) (*models.CostPrice, error) {
	const op = "storage.GetCostPrice"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	var p models.CostPrice
	if err := namedGet(ctx, s.DB, &p, `SELECT id, name, price, option_id FROM cost_prices WHERE id = :id`,
		map[string]any{"id": id}); err != nil {
		return nil, mapErr(op, err)
	}
	return &p, nil
}

// UpdateCostPrice меняет название и сумму цены.
func (s *Storage) UpdateCostPrice(ctx context.Context, p models.CostPrice) error {
	const op = "storage.UpdateCostPrice"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	n, err := namedExec(ctx, s.DB, `UPDATE cost_prices SET name = :name, price = :price WHERE id = :id`, p)
	return requireAffected(op, n, err)
}
