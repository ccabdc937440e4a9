package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/magabrotheeeer/publication-admin/internal/models"
)

// ListProducts возвращает справочник продуктов.
func (s *Storage) ListProducts(ctx context.Context) ([]models.Product, error) {
	const op = "storage.ListProducts"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	out := []models.Product{}
	if err := sqlx.SelectContext(ctx, s.DB, &out,
		`SELECT id, name, product_group, display FROM products ORDER BY name, id`); err != nil {
		return nil, mapErr(op, err)
	}
	return out, nil
}

// CreateProduct добавляет продукт со следующим свободным id.
func (s *Storage) CreateProduct(ctx context.Context, p models.Product) (int, error) {
	const op = "storage.CreateProduct"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}
	var id int
	if err := namedGet(ctx, s.DB, &id,
		`INSERT INTO products (id, name, product_group, display)
		 VALUES ((SELECT COALESCE(MAX(id), 0) + 1 FROM products), :name, :product_group, :display)
		 RETURNING id`, p); err != nil {
		return 0, mapErr(op, err)
	}
	return id, nil
}

// SetProductDisplay переключает видимость продукта.
func (s *Storage) SetProductDisplay(ctx context.Context, id int, display bool) error {
	const op = "storage.SetProductDisplay"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	n, err := namedExec(ctx, s.DB, `UPDATE products SET display = :display WHERE id = :id`,
		map[string]any{"id": id, "display": display})
	return requireAffected(op, n, err)
}

// ListCompanies возвращает справочник производителей.
func (s *Storage) ListCompanies(ctx context.Context) ([]models.Company, error) {
	const op = "storage.ListCompanies"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	out := []models.Company{}
	if err := sqlx.SelectContext(ctx, s.DB, &out,
		`SELECT id, name, location, country_id, display FROM companies ORDER BY name, id`); err != nil {
		return nil, mapErr(op, err)
	}
	return out, nil
}

// CreateCompany добавляет производителя со следующим свободным id.
func (s *Storage) CreateCompany(ctx context.Context, c models.Company) (int, error) {
	const op = "storage.CreateCompany"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}
	var id int
	if err := namedGet(ctx, s.DB, &id,
		`INSERT INTO companies (id, name, location, country_id, display)
		 VALUES ((SELECT COALESCE(MAX(id), 0) + 1 FROM companies), :name, :location, :country_id, :display)
		 RETURNING id`, c); err != nil {
		return 0, mapErr(op, err)
	}
	return id, nil
}

// SetCompanyDisplay переключает видимость производителя.
func (s *Storage) SetCompanyDisplay(ctx context.Context, id int, display bool) error {
	const op = "storage.SetCompanyDisplay"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	n, err := namedExec(ctx, s.DB, `UPDATE companies SET display = :display WHERE id = :id`,
		map[string]any{"id": id, "display": display})
	return requireAffected(op, n, err)
}

// ListCountries возвращает справочник стран.
func (s *Storage) ListCountries(ctx context.Context) ([]models.Country, error) {
	const op = "storage.ListCountries"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	out := []models.Country{}
	if err := sqlx.SelectContext(ctx, s.DB, &out, `SELECT id, name FROM countries ORDER BY name`); err != nil {
		return nil, mapErr(op, err)
	}
	return out, nil
}
