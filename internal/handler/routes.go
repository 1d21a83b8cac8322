package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/msomdec/product-catalog/internal/service"
)

// NewRouter wires every route to its handler behind the shared middleware
// stack. allowedOrigins of ["*"] allows any origin.
func NewRouter(auth *service.AuthService, products *service.ProductService, db Pinger, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(SecurityHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", HandleHealthz)
	r.Get("/readyz", HandleReadyz(db))

	authHandler := NewAuthHandler(auth)
	productHandler := NewProductHandler(products)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.HandleSignup)
			r.Post("/login", authHandler.HandleLogin)
			r.Method(http.MethodGet, "/me", RequireAuth(auth, http.HandlerFunc(authHandler.HandleMe)))
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", productHandler.HandleCreate)
			r.Get("/", productHandler.HandleList)
			r.Get("/{id}", productHandler.HandleGet)
			r.Put("/{id}", productHandler.HandleUpdate)
			r.Delete("/{id}", productHandler.HandleDelete)
		})
	})

	return r
}
