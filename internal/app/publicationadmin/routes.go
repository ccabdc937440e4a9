package publicationadmin

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/publication-admin/internal/config"
	"github.com/magabrotheeeer/publication-admin/internal/http/handlers/access"
	"github.com/magabrotheeeer/publication-admin/internal/http/handlers/articles"
	"github.com/magabrotheeeer/publication-admin/internal/http/handlers/auth"
	"github.com/magabrotheeeer/publication-admin/internal/http/handlers/catalog"
	"github.com/magabrotheeeer/publication-admin/internal/http/handlers/content"
	"github.com/magabrotheeeer/publication-admin/internal/http/handlers/health"
	"github.com/magabrotheeeer/publication-admin/internal/http/handlers/imports"
	"github.com/magabrotheeeer/publication-admin/internal/http/handlers/issues"
	"github.com/magabrotheeeer/publication-admin/internal/http/handlers/news"
	"github.com/magabrotheeeer/publication-admin/internal/http/handlers/users"
	"github.com/magabrotheeeer/publication-admin/internal/http/middlewarectx"
)

// Services бизнес-логика, которую обслуживают маршруты.
type Services struct {
	Auth     auth.Service
	Users    users.Service
	Access   access.Service
	Importer imports.Service
	News     news.Service
	Issues   issues.Service
	Articles articles.Service
	Content  content.Service
	Catalog  catalog.Service
}

// RouteDeps зависимости маршрутизатора.
type RouteDeps struct {
	Services     Services
	Tokens       middlewarectx.TokenParser
	LoginLimiter *rate.Limiter
	DB           health.Pinger
	Publishing   config.Publishing
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, deps RouteDeps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.Metrics,
	)

	s := deps.Services
	authHandler := auth.New(logger, s.Auth)

	r.Route("/api/admin", func(r chi.Router) {
		r.With(middlewarectx.RateLimitMiddleware(deps.LoginLimiter, logger)).
			Post("/login", authHandler.Login)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(deps.Tokens, logger))

			r.Post("/change-password", authHandler.ChangePassword)

			usersHandler := users.New(logger, s.Users)
			accessHandler := access.New(logger, s.Access)
			r.Route("/users", func(r chi.Router) {
				r.Get("/", usersHandler.List)
				r.Post("/", usersHandler.Create)
				r.Route("/{userId}", func(r chi.Router) {
					r.Get("/", usersHandler.Get)
					r.Put("/", usersHandler.Update)
					r.Delete("/", usersHandler.Delete)
					r.Put("/status", usersHandler.SetStatus)
					r.Put("/payment", usersHandler.SetPaid)
					r.Get("/access", accessHandler.Get)
					r.Put("/access", accessHandler.Update)
				})
			})

			r.Post("/excel-import", imports.New(logger, s.Importer, deps.Publishing.MaxWorkbookBytes).ServeHTTP)

			for _, series := range deps.Publishing.NewsSeries {
				h := news.New(logger, s.News, series.Path, deps.Publishing.MaxPDFBytes)
				r.Route("/"+series.Path, func(r chi.Router) {
					r.Get("/", h.List)
					r.Post("/", h.Create)
					r.Get("/{id}", h.Get)
					r.Put("/{id}", h.Update)
					r.Delete("/{id}", h.Delete)
					r.Patch("/{id}/sample", h.SetSample)
				})
			}

			issuesHandler := issues.New(logger, s.Issues)
			r.Get("/issues/initial-data", issuesHandler.InitialData)
			r.Get("/issues/{year}/{month}", issuesHandler.Get)
			r.Post("/issues", issuesHandler.Save)

			articlesHandler := articles.New(logger, s.Articles)
			r.Route("/articles", func(r chi.Router) {
				r.Get("/", articlesHandler.List)
				r.Post("/", articlesHandler.Create)
				r.Post("/delete-bulk", articlesHandler.DeleteMany)
				r.Get("/{id}", articlesHandler.Get)
				r.Put("/{id}", articlesHandler.Update)
				r.Delete("/{id}", articlesHandler.Delete)
				r.Patch("/{id}/scrolling", articlesHandler.SetScrolling)
			})

			registerContent(r, content.New(logger, s.Content))

			catalogHandler := catalog.New(logger, s.Catalog)
			r.Get("/products", catalogHandler.Products)
			r.Post("/products", catalogHandler.CreateProduct)
			r.Put("/products/display", catalogHandler.SetProductDisplay)
			r.Get("/companies", catalogHandler.Companies)
			r.Post("/companies", catalogHandler.CreateCompany)
			r.Put("/companies/display", catalogHandler.SetCompanyDisplay)
			r.Get("/countries", catalogHandler.Countries)
		})
	})

	r.Handle("/health", health.New(logger, deps.DB))
	r.Handle("/metrics", promhttp.Handler())
}

func registerContent(r chi.Router, h *content.Handler) {
	r.Route("/events", func(r chi.Router) {
		r.Get("/", h.Events)
		r.Post("/", h.CreateEvent)
		r.Put("/display", h.SetEventDisplay)
		r.Get("/{id}", h.Event)
		r.Put("/{id}", h.UpdateEvent)
		r.Delete("/{id}", h.DeleteEvent)
	})
	r.Route("/links", func(r chi.Router) {
		r.Get("/", h.Links)
		r.Post("/", h.CreateLink)
		r.Put("/display", h.SetLinkDisplay)
		r.Get("/{id}", h.Link)
		r.Put("/{id}", h.UpdateLink)
		r.Delete("/{id}", h.DeleteLink)
	})

	r.Get("/pages", h.Pages)
	r.Get("/pagecontent/{id}", h.PageContent)
	r.Post("/pagecontent", h.CreatePageContent)
	r.Put("/pagecontent", h.UpdatePageContent)
	r.Delete("/pagecontent/{id}", h.DeletePageContent)

	r.Route("/search-keywords", func(r chi.Router) {
		r.Get("/", h.SearchKeywords)
		r.Post("/", h.CreateSearchKeyword)
		r.Put("/{id}", h.UpdateSearchKeyword)
		r.Put("/{id}/toggle", h.ToggleSearchKeyword)
		r.Delete("/{id}", h.DeleteSearchKeyword)
	})

	r.Get("/contacts", h.Contacts)
	r.Delete("/contacts/{id}", h.DeleteContact)

	r.Get("/cost-management/options", h.CostOptions)
	r.Get("/cost-management/options/{optionId}/prices", h.CostPrices)
	r.Get("/cost-management/prices/{priceId}", h.CostPrice)
	r.Put("/cost-management/prices/{priceId}", h.UpdateCostPrice)
}
