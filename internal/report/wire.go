package report

import (
	"database/sql"

	"go.uber.org/zap"

	catalogrepo "almacen/internal/catalog/repository"
	costingrepo "almacen/internal/costing/repository"
	costingsvc "almacen/internal/costing/service"
	inventoryrepo "almacen/internal/inventory/repository"
	reciperepo "almacen/internal/recipe/repository"
	"almacen/internal/report/controller"
	"almacen/internal/report/repository"
	"almacen/internal/report/service"
)

func NewModule(db *sql.DB, branchID int, logger *zap.Logger) *controller.ReportController {
	products := catalogrepo.NewMySQLProductsRepository(db)
	costing := costingsvc.NewCostingEngine(
		products,
		reciperepo.NewMySQLRecipesRepository(db),
		costingrepo.NewMySQLPurchaseHistoryRepository(db),
		logger,
	)

	svc := service.NewReportService(
		repository.NewMySQLReportsRepository(db),
		products,
		inventoryrepo.NewMySQLLedgerRepository(db),
		costing,
		logger,
	)

	return controller.NewReportController(svc, branchID, logger)
}
