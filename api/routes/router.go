package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cartwheelhq/shopcarts-backend/api/controllers"
	"github.com/cartwheelhq/shopcarts-backend/api/middleware"
	"github.com/cartwheelhq/shopcarts-backend/internal/products"
	"github.com/cartwheelhq/shopcarts-backend/internal/shopcarts"
	"github.com/cartwheelhq/shopcarts-backend/pkg/config"
	"github.com/cartwheelhq/shopcarts-backend/pkg/db"
	"github.com/cartwheelhq/shopcarts-backend/pkg/logger"
	"github.com/cartwheelhq/shopcarts-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	gatherer prometheus.Gatherer,
	httpMetrics *metrics.HTTPMetrics,
	cartService shopcarts.Service,
	productService products.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
	)

	gate := middleware.APIKey(cfg.Auth, logg)
	jsonOnly := middleware.RequireJSON(logg)

	r.Get("/", controllers.Index())
	r.Get("/health", controllers.Health())
	r.Get("/health/ready", controllers.HealthReady(logg, dbP))
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/shopcarts", func(r chi.Router) {
		r.Get("/", controllers.ListShopcarts(cartService, logg))
		r.With(gate, jsonOnly).Post("/", controllers.CreateShopcart(cartService, logg))

		r.Route("/{userID}", func(r chi.Router) {
			r.Get("/", controllers.GetShopcart(cartService, logg))
			r.With(gate, jsonOnly).Put("/", controllers.ReplaceShopcart(cartService, logg))
			r.With(gate).Delete("/", controllers.DeleteShopcart(cartService, logg))
			r.Put("/empty", controllers.EmptyShopcart(cartService, logg))

			r.Route("/items", func(r chi.Router) {
				r.With(jsonOnly).Post("/", controllers.AddProduct(productService, logg))
				r.Get("/", controllers.ListProducts(productService, logg))
				r.Get("/{productID}", controllers.GetProduct(productService, logg))
				r.Put("/{productID}", controllers.UpdateProduct(productService, logg))
				r.Delete("/{productID}", controllers.DeleteProduct(productService, logg))
			})
		})
	})

	return r
}
