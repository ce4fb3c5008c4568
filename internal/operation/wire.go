package operation

import (
	"database/sql"

	"go.uber.org/zap"

	catalogrepo "almacen/internal/catalog/repository"
	directoryrepo "almacen/internal/directory/repository"
	"almacen/internal/infrastructure/mysql"
	inventoryrepo "almacen/internal/inventory/repository"
	inventorysvc "almacen/internal/inventory/service"
	"almacen/internal/operation/controller"
	"almacen/internal/operation/repository"
	"almacen/internal/operation/service"
	reciperepo "almacen/internal/recipe/repository"
)

func NewModule(db *sql.DB, branchID int, logger *zap.Logger) *controller.OperationController {
	ledger := inventorysvc.NewLedger(inventoryrepo.NewMySQLLedgerRepository(db))

	svc := service.NewOperationService(
		mysql.NewTxRunner(db),
		catalogrepo.NewMySQLProductsRepository(db),
		reciperepo.NewMySQLRecipesRepository(db),
		ledger,
		directoryrepo.NewMySQLSuppliersRepository(db),
		directoryrepo.NewMySQLCashiersRepository(db),
		repository.NewMySQLPurchasesRepository(db),
		repository.NewMySQLProductionsRepository(db),
		repository.NewMySQLTicketsRepository(db),
		logger,
	)

	return controller.NewOperationController(svc, branchID, logger)
}
