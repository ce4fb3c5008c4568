package recipe

import (
	"database/sql"

	"go.uber.org/zap"

	catalogrepo "almacen/internal/catalog/repository"
	costingrepo "almacen/internal/costing/repository"
	costingsvc "almacen/internal/costing/service"
	"almacen/internal/infrastructure/mysql"
	"almacen/internal/recipe/controller"
	"almacen/internal/recipe/repository"
	"almacen/internal/recipe/service"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.RecipeController {
	products := catalogrepo.NewMySQLProductsRepository(db)
	recipes := repository.NewMySQLRecipesRepository(db)
	purchases := costingrepo.NewMySQLPurchaseHistoryRepository(db)

	svc := service.NewRecipeService(mysql.NewTxRunner(db), products, recipes, logger)
	costing := costingsvc.NewCostingEngine(products, recipes, purchases, logger)

	return controller.NewRecipeController(svc, costing, logger)
}
