package routes

import (
	"net/http"
	"time"

	gql "github.com/graphql-go/graphql"

	"github.com/aureajoias/aurea/app/controllers"
	"github.com/aureajoias/aurea/app/graphql"
	"github.com/aureajoias/aurea/pkg/metrics"
	"github.com/aureajoias/aurea/pkg/middleware"
	"github.com/aureajoias/aurea/pkg/reqid"
	"github.com/aureajoias/aurea/pkg/response"
	"github.com/aureajoias/aurea/pkg/router"
	"github.com/aureajoias/aurea/pkg/ws"
)

// Deps carries everything the route table wires together.
type Deps struct {
	Auth       *controllers.AuthController
	Products   *controllers.ProductController
	Categories *controllers.CategoryController
	Bulk       *controllers.BulkController
	Schema     gql.Schema
	Hub        *ws.Hub
}

// RegisterAPI mounts the full HTTP surface on r.
func RegisterAPI(r *router.Router, deps Deps) {
	r.Use(
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)

	r.Get("/healthz", "healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
	r.Mount("/metrics", metrics.Handler())
	r.Mount("/storage", http.StripPrefix("/storage/", http.FileServer(http.Dir("storage"))))

	api := r.Group("/api")

	// Public catalog.
	api.Get("/products", "products.list", deps.Products.List)
	api.Get("/products/featured", "products.featured", deps.Products.ListFeatured)
	api.Get("/products/{id}", "products.show", deps.Products.Get)
	api.Get("/products/{id}/whatsapp-link", "products.whatsapp", deps.Products.WhatsAppLink)
	api.Get("/categories", "categories.list", deps.Categories.List)
	api.Get("/categories/{slug}", "categories.show", deps.Categories.Get)
	api.Get("/categories/{slug}/products", "categories.products", deps.Categories.Products)
	api.Post("/graphql", "graphql", graphql.Handler(deps.Schema))

	// Auth.
	authGroup := api.Group("/auth")
	authGroup.Post("/register", "auth.register", deps.Auth.Register)
	authGroup.Post("/login", "auth.login", deps.Auth.Login)
	authGroup.Post("/logout", "auth.logout", deps.Auth.Logout)
	authGroup.Get("/me", "auth.me", deps.Auth.Me, middleware.Auth)

	// Admin back-office: valid token AND is_admin.
	admin := api.Group("/admin", middleware.Auth, middleware.Admin)
	admin.Get("/products", "admin.products.list", deps.Products.ListAll)
	admin.Post("/products", "admin.products.create", deps.Products.Create)
	admin.Put("/products/{id}", "admin.products.update", deps.Products.Update)
	admin.Delete("/products/{id}", "admin.products.delete", deps.Products.Delete)
	admin.Post("/products/bulk", "admin.products.bulk", deps.Bulk.Create)
	admin.Post("/categories", "admin.categories.create", deps.Categories.Create)
	admin.Put("/categories/{id}", "admin.categories.update", deps.Categories.Update)
	admin.Delete("/categories/{id}", "admin.categories.delete", deps.Categories.Delete)

	// Bulk progress websocket. Token auth happens at upgrade time via the
	// Auth middleware chain.
	admin.Get("/bulk/ws", "admin.bulk.ws", func(w http.ResponseWriter, r *http.Request) {
		ws.Upgrade(w, r, deps.Hub)
	})
}
