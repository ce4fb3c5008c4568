package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	catalogctrl "almacen/internal/catalog/controller"
	directoryctrl "almacen/internal/directory/controller"
	operationctrl "almacen/internal/operation/controller"
	recipectrl "almacen/internal/recipe/controller"
	reportctrl "almacen/internal/report/controller"
)

func NewRouter(
	catalog *catalogctrl.CatalogController,
	recipes *recipectrl.RecipeController,
	operations *operationctrl.OperationController,
	reports *reportctrl.ReportController,
	directory *directoryctrl.DirectoryController,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Post("/", catalog.CreateProduct)
			r.Get("/", catalog.ListProducts)
			r.Get("/search", catalog.SearchProducts)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Put("/{name}", recipes.SetRecipe)
			r.Get("/{name}", recipes.GetRecipe)
			r.Get("/{name}/cost", recipes.GetRecipeCost)
		})

		r.Post("/purchases", operations.RecordPurchase)
		r.Post("/productions", operations.RecordProduction)
		r.Post("/tickets", operations.RecordTicket)
		r.Post("/adjustments", operations.AdjustStock)

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", reports.CurrentInventory)
			r.Get("/low-stock", reports.LowStock)
			r.Get("/{name}/kardex", reports.Kardex)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/sales", reports.DetailedSales)
			r.Get("/waste", reports.DetailedWaste)
			r.Get("/purchases", reports.DetailedPurchases)
			r.Get("/top-products", reports.TopProducts)
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.Post("/", directory.CreateSupplier)
			r.Get("/", directory.ListSuppliers)
			r.Delete("/{name}", directory.DeactivateSupplier)
		})

		r.Route("/cashiers", func(r chi.Router) {
			r.Post("/", directory.CreateCashier)
			r.Get("/", directory.ListCashiers)
			r.Delete("/{name}", directory.DeactivateCashier)
		})
	})

	logger.Info("router initialized")

	return r
}
