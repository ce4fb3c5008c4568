package catalog

import (
	"database/sql"

	"go.uber.org/zap"

	"almacen/internal/catalog/controller"
	"almacen/internal/catalog/repository"
	"almacen/internal/catalog/service"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.CatalogController {
	repo := repository.NewMySQLProductsRepository(db)
	svc := service.NewCatalogService(repo, logger)
	return controller.NewCatalogController(svc, logger)
}
