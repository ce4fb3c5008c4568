package directory

import (
	"database/sql"

	"go.uber.org/zap"

	"almacen/internal/directory/controller"
	"almacen/internal/directory/repository"
	"almacen/internal/directory/service"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.DirectoryController {
	suppliers := repository.NewMySQLSuppliersRepository(db)
	cashiers := repository.NewMySQLCashiersRepository(db)
	svc := service.NewDirectoryService(suppliers, cashiers, logger)
	return controller.NewDirectoryController(svc, logger)
}
