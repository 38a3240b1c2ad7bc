package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"estoquerapido/internal/config"
	"estoquerapido/internal/handler"
	"estoquerapido/internal/middleware"
	"estoquerapido/internal/websocket"
)

func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	authHandler *handler.AuthHandler,
	companyHandler *handler.CompanyHandler,
	categoryHandler *handler.CategoryHandler,
	productHandler *handler.ProductHandler,
	paymentMethodHandler *handler.PaymentMethodHandler,
	recycleBinHandler *handler.RecycleBinHandler,
	hub *websocket.Hub,
	health http.HandlerFunc,
) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", health)

	r.With(authMiddleware.RequireAuth).Get("/ws", func(w http.ResponseWriter, req *http.Request) {
		websocket.ServeWS(hub, w, req)
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/login", authHandler.Login)
			auth.With(authMiddleware.RequireAuth).Get("/me", authHandler.Me)
		})

		api.Group(func(authed chi.Router) {
			authed.Use(authMiddleware.RequireAuth)

			authed.Route("/companies", func(companies chi.Router) {
				companies.With(authMiddleware.RequireRoles("admin")).Post("/", companyHandler.Create)
				companies.Get("/{id}", companyHandler.Get)
				companies.Put("/{id}", companyHandler.Update)
				mountLifecycle(companies, companyHandler.Delete, companyHandler.Archive,
					companyHandler.Restore, companyHandler.Deactivate, companyHandler.Activate)
			})

			authed.Route("/categories", func(categories chi.Router) {
				categories.Get("/", categoryHandler.List)
				categories.Post("/", categoryHandler.Create)
				categories.Get("/{id}", categoryHandler.Get)
				categories.Put("/{id}", categoryHandler.Update)
				mountLifecycle(categories, categoryHandler.Delete, categoryHandler.Archive,
					categoryHandler.Restore, categoryHandler.Deactivate, categoryHandler.Activate)
			})

			authed.Route("/products", func(products chi.Router) {
				products.Get("/", productHandler.List)
				products.Get("/low-stock", productHandler.LowStock)
				products.Post("/", productHandler.Create)
				products.Get("/{id}", productHandler.Get)
				products.Put("/{id}", productHandler.Update)
				products.Post("/{id}/image", productHandler.UploadImage)
				mountLifecycle(products, productHandler.Delete, productHandler.Archive,
					productHandler.Restore, productHandler.Deactivate, productHandler.Activate)
			})

			authed.Route("/payment-methods", func(methods chi.Router) {
				methods.Get("/", paymentMethodHandler.List)
				methods.Post("/", paymentMethodHandler.Create)
				methods.Get("/{id}", paymentMethodHandler.Get)
				methods.Put("/{id}", paymentMethodHandler.Update)
				mountLifecycle(methods, paymentMethodHandler.Delete, paymentMethodHandler.Archive,
					paymentMethodHandler.Restore, paymentMethodHandler.Deactivate, paymentMethodHandler.Activate)
			})

			authed.Route("/recycle-bin", func(bin chi.Router) {
				bin.Get("/", recycleBinHandler.All)
				bin.Get("/counts", recycleBinHandler.Counts)
				bin.Get("/{kind}", recycleBinHandler.List)
			})
		})
	})

	return r
}

// mountLifecycle attaches the status transition endpoints every recyclable
// kind exposes.
func mountLifecycle(r chi.Router, del, archive, restore, deactivate, activate http.HandlerFunc) {
	r.Delete("/{id}", del)
	r.Post("/{id}/archive", archive)
	r.Post("/{id}/restore", restore)
	r.Post("/{id}/deactivate", deactivate)
	r.Post("/{id}/activate", activate)
}
