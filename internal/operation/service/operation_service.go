package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"almacen/internal/domain"
	"almacen/internal/dto"
	apperrors "almacen/internal/errors"
	"almacen/internal/infrastructure/mysql"
)

type TransactionManager interface {
	InTx(ctx context.Context, fn func(tx mysql.Executor) error) error
}

type ProductsRepository interface {
	FindByID(ctx context.Context, id int) (*domain.Product, error)
	FindByName(ctx context.Context, name string) (*domain.Product, error)
	UpdateLastCost(ctx context.Context, ex mysql.Executor, productID int, cost decimal.Decimal) error
}

type RecipesRepository interface {
	GetByProductID(ctx context.Context, productID int) ([]domain.RecipeLine, error)
}

type Ledger interface {
	BalanceForUpdate(ctx context.Context, ex mysql.Executor, productID, branchID int) (decimal.Decimal, error)
	AssertSufficient(ctx context.Context, ex mysql.Executor, productID int, productName string, branchID int, required decimal.Decimal) (decimal.Decimal, error)
	ApplyDelta(ctx context.Context, ex mysql.Executor, m domain.Movement) error
}

type SuppliersRepository interface {
	FindActiveByName(ctx context.Context, name string) (*domain.Supplier, error)
}

type CashiersRepository interface {
	FindActiveByName(ctx context.Context, name string) (*domain.Cashier, error)
}

type PurchasesRepository interface {
	Insert(ctx context.Context, ex mysql.Executor, p domain.Purchase) (int64, error)
	InsertLine(ctx context.Context, ex mysql.Executor, line domain.PurchaseLine) error
	UpdateTotal(ctx context.Context, ex mysql.Executor, purchaseID int64, total decimal.Decimal) error
}

type ProductionsRepository interface {
	Insert(ctx context.Context, ex mysql.Executor, b domain.ProductionBatch) (int64, error)
}

type TicketsRepository interface {
	Insert(ctx context.Context, ex mysql.Executor, t domain.Ticket) (int64, error)
	InsertLine(ctx context.Context, ex mysql.Executor, line domain.TicketLine) error
	UpdateTotal(ctx context.Context, ex mysql.Executor, ticketID int64, total decimal.Decimal) error
}

// OperationService implements the four mutating business operations. Each
// one is a single transaction: validate, lock the balances that will shrink,
// apply every delta and side record, commit. A failure anywhere rolls the
// whole operation back.
type OperationService struct {
	txManager   TransactionManager
	products    ProductsRepository
	recipes     RecipesRepository
	ledger      Ledger
	suppliers   SuppliersRepository
	cashiers    CashiersRepository
	purchases   PurchasesRepository
	productions ProductionsRepository
	tickets     TicketsRepository
	logger      *zap.Logger
}

func NewOperationService(
	txManager TransactionManager,
	products ProductsRepository,
	recipes RecipesRepository,
	ledger Ledger,
	suppliers SuppliersRepository,
	cashiers CashiersRepository,
	purchases PurchasesRepository,
	productions ProductionsRepository,
	tickets TicketsRepository,
	logger *zap.Logger,
) *OperationService {
	return &OperationService{
		txManager:   txManager,
		products:    products,
		recipes:     recipes,
		ledger:      ledger,
		suppliers:   suppliers,
		cashiers:    cashiers,
		purchases:   purchases,
		productions: productions,
		tickets:     tickets,
		logger:      logger,
	}
}

type purchaseLine struct {
	product   *domain.Product
	quantity  decimal.Decimal
	totalCost decimal.Decimal
	unitCost  decimal.Decimal
}

func (s *OperationService) RecordPurchase(ctx context.Context, branchID int, req dto.RecordPurchaseRequest) (*dto.RecordPurchaseResponse, error) {
	if len(req.Lines) == 0 {
		return nil, apperrors.NewValidationError("lines are required", apperrors.ValidationDetail{
			Field:   "lines",
			Message: "lines must not be empty",
		})
	}

	var supplierID *int
	if req.Supplier != "" {
		supplier, err := s.suppliers.FindActiveByName(ctx, req.Supplier)
		if err != nil {
			return nil, err
		}
		supplierID = &supplier.ID
	}

	lines := make([]purchaseLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		if !l.Quantity.IsPositive() {
			return nil, apperrors.NewValidationError("quantity must be positive", apperrors.ValidationDetail{
				Field:   "quantity",
				Message: fmt.Sprintf("line for %q must have a quantity greater than zero", l.Product),
			})
		}
		if l.TotalCost.IsNegative() {
			return nil, apperrors.NewValidationError("total cost must not be negative", apperrors.ValidationDetail{
				Field:   "totalCost",
				Message: fmt.Sprintf("line for %q must have a cost of zero or more", l.Product),
			})
		}

		product, err := s.products.FindByName(ctx, l.Product)
		if err != nil {
			return nil, err
		}

		lines = append(lines, purchaseLine{
			product:   product,
			quantity:  l.Quantity,
			totalCost: l.TotalCost,
			unitCost:  l.TotalCost.Div(l.Quantity),
		})
	}

	// Lock balances in product-id order to avoid deadlocks between
	// concurrent operations touching the same products.
	sort.Slice(lines, func(i, j int) bool { return lines[i].product.ID < lines[j].product.ID })

	var (
		purchaseID int64
		total      = decimal.Zero
	)
	err := s.txManager.InTx(ctx, func(tx mysql.Executor) error {
		var err error
		purchaseID, err = s.purchases.Insert(ctx, tx, domain.Purchase{
			BranchID:   branchID,
			SupplierID: supplierID,
			Total:      decimal.Zero,
			Note:       req.Note,
		})
		if err != nil {
			return err
		}

		for _, line := range lines {
			err := s.purchases.InsertLine(ctx, tx, domain.PurchaseLine{
				PurchaseID: purchaseID,
				ProductID:  line.product.ID,
				Quantity:   line.quantity,
				TotalCost:  line.totalCost,
				UnitCost:   line.unitCost,
			})
			if err != nil {
				return err
			}

			if err := s.products.UpdateLastCost(ctx, tx, line.product.ID, line.unitCost); err != nil {
				return err
			}

			if _, err := s.ledger.BalanceForUpdate(ctx, tx, line.product.ID, branchID); err != nil {
				return err
			}

			err = s.ledger.ApplyDelta(ctx, tx, domain.Movement{
				ProductID: line.product.ID,
				BranchID:  branchID,
				Delta:     domain.ToBase(line.product.Unit, line.quantity),
				Reason:    domain.ReasonPurchase,
				RefTable:  "Purchases",
				RefID:     &purchaseID,
				Note:      req.Note,
			})
			if err != nil {
				return err
			}

			total = total.Add(line.totalCost)
		}

		return s.purchases.UpdateTotal(ctx, tx, purchaseID, total)
	})
	if err != nil {
		return nil, s.classify(err, "recording purchase")
	}

	s.logger.Info("purchase recorded",
		zap.Int64("purchaseId", purchaseID),
		zap.Int("branchId", branchID),
		zap.Int("lineCount", len(lines)),
		zap.String("total", total.String()),
	)

	return &dto.RecordPurchaseResponse{PurchaseID: purchaseID, Total: total}, nil
}

func (s *OperationService) RecordProduction(ctx context.Context, branchID int, req dto.RecordProductionRequest) (*dto.RecordProductionResponse, error) {
	if !req.Quantity.IsPositive() {
		return nil, apperrors.NewValidationError("quantity must be positive", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity to produce must be greater than zero",
		})
	}

	product, err := s.products.FindByName(ctx, req.Product)
	if err != nil {
		return nil, err
	}
	if product.Category != domain.CategoryManufactured {
		return nil, apperrors.NewConsistencyError(
			fmt.Sprintf("only %q products can be produced", domain.CategoryManufactured))
	}

	recipeLines, err := s.recipes.GetByProductID(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	if len(recipeLines) == 0 {
		return nil, apperrors.NewNoRecipeError(product.Name)
	}

	sort.Slice(recipeLines, func(i, j int) bool { return recipeLines[i].ComponentID < recipeLines[j].ComponentID })

	var batchID int64
	err = s.txManager.InTx(ctx, func(tx mysql.Executor) error {
		// Every component is checked, under lock, before anything moves.
		for _, line := range recipeLines {
			required := line.QtyPerUnit.Mul(req.Quantity)
			if _, err := s.ledger.AssertSufficient(ctx, tx, line.ComponentID, line.ComponentName, branchID, required); err != nil {
				return err
			}
		}

		var err error
		batchID, err = s.productions.Insert(ctx, tx, domain.ProductionBatch{
			ProductID: product.ID,
			BranchID:  branchID,
			Quantity:  req.Quantity,
			Note:      req.Note,
		})
		if err != nil {
			return err
		}

		for _, line := range recipeLines {
			required := line.QtyPerUnit.Mul(req.Quantity)
			err := s.ledger.ApplyDelta(ctx, tx, domain.Movement{
				ProductID: line.ComponentID,
				BranchID:  branchID,
				Delta:     required.Neg(),
				Reason:    domain.ReasonProduction,
				RefTable:  "Productions",
				RefID:     &batchID,
				Note:      req.Note,
			})
			if err != nil {
				return err
			}
		}

		if _, err := s.ledger.BalanceForUpdate(ctx, tx, product.ID, branchID); err != nil {
			return err
		}

		return s.ledger.ApplyDelta(ctx, tx, domain.Movement{
			ProductID: product.ID,
			BranchID:  branchID,
			Delta:     domain.ToBase(product.Unit, req.Quantity),
			Reason:    domain.ReasonProduction,
			RefTable:  "Productions",
			RefID:     &batchID,
			Note:      req.Note,
		})
	})
	if err != nil {
		return nil, s.classify(err, "recording production")
	}

	s.logger.Info("production recorded",
		zap.Int64("batchId", batchID),
		zap.String("product", product.Name),
		zap.String("quantity", req.Quantity.String()),
		zap.Int("branchId", branchID),
	)

	return &dto.RecordProductionResponse{BatchID: batchID}, nil
}

type ticketLine struct {
	product  *domain.Product
	quantity decimal.Decimal
}

func (s *OperationService) RecordTicket(ctx context.Context, branchID int, req dto.RecordTicketRequest) (*dto.RecordTicketResponse, error) {
	ticketType, ok := domain.ParseTicketType(req.Type)
	if !ok {
		return nil, apperrors.NewValidationError("unknown ticket type", apperrors.ValidationDetail{
			Field:   "type",
			Message: "type must be 'VENTA' or 'MERMA'",
		})
	}
	if len(req.Lines) == 0 {
		return nil, apperrors.NewValidationError("lines are required", apperrors.ValidationDetail{
			Field:   "lines",
			Message: "lines must not be empty",
		})
	}

	var cashier *string
	if req.Cashier != "" {
		c, err := s.cashiers.FindActiveByName(ctx, req.Cashier)
		if err != nil {
			return nil, err
		}
		cashier = &c.Name
	}

	lines := make([]ticketLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		if !l.Quantity.IsPositive() {
			return nil, apperrors.NewValidationError("quantity must be positive", apperrors.ValidationDetail{
				Field:   "quantity",
				Message: fmt.Sprintf("line for product %d must have a quantity greater than zero", l.ProductID),
			})
		}

		product, err := s.products.FindByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.Sellable {
			return nil, apperrors.NewConsistencyError(
				fmt.Sprintf("product %q is not sellable", product.Name))
		}

		lines = append(lines, ticketLine{product: product, quantity: l.Quantity})
	}

	sort.Slice(lines, func(i, j int) bool { return lines[i].product.ID < lines[j].product.ID })

	reason := domain.ReasonSale
	if ticketType == domain.TicketWaste {
		reason = domain.ReasonWaste
	}

	var (
		ticketID int64
		total    = decimal.Zero
	)
	err := s.txManager.InTx(ctx, func(tx mysql.Executor) error {
		var err error
		ticketID, err = s.tickets.Insert(ctx, tx, domain.Ticket{
			Type:     ticketType,
			BranchID: branchID,
			Cashier:  cashier,
			Total:    decimal.Zero,
			Note:     req.Note,
		})
		if err != nil {
			return err
		}

		for _, line := range lines {
			required := domain.ToBase(line.product.Unit, line.quantity)
			if _, err := s.ledger.AssertSufficient(ctx, tx, line.product.ID, line.product.Name, branchID, required); err != nil {
				return err
			}

			// Waste is charged at zero but the catalog price still gets
			// snapshotted so the loss can be valued later.
			unitPrice := line.product.Price
			if ticketType == domain.TicketWaste {
				unitPrice = decimal.Zero
			}
			subtotal := unitPrice.Mul(line.quantity)

			err := s.tickets.InsertLine(ctx, tx, domain.TicketLine{
				TicketID:     ticketID,
				ProductID:    line.product.ID,
				Quantity:     line.quantity,
				UnitPrice:    unitPrice,
				CatalogPrice: line.product.Price,
				Subtotal:     subtotal,
			})
			if err != nil {
				return err
			}

			err = s.ledger.ApplyDelta(ctx, tx, domain.Movement{
				ProductID: line.product.ID,
				BranchID:  branchID,
				Delta:     required.Neg(),
				Reason:    reason,
				RefTable:  "Tickets",
				RefID:     &ticketID,
				Note:      req.Note,
			})
			if err != nil {
				return err
			}

			total = total.Add(subtotal)
		}

		return s.tickets.UpdateTotal(ctx, tx, ticketID, total)
	})
	if err != nil {
		return nil, s.classify(err, "recording ticket")
	}

	s.logger.Info("ticket recorded",
		zap.Int64("ticketId", ticketID),
		zap.String("type", string(ticketType)),
		zap.Int("branchId", branchID),
		zap.Int("lineCount", len(lines)),
		zap.String("total", total.String()),
	)

	return &dto.RecordTicketResponse{TicketID: ticketID, Total: total}, nil
}

// AdjustStock is the escape hatch for corrections. It is the only operation
// allowed to drive a balance negative, and its movements are tagged AJUSTE
// so audits can tell them apart.
func (s *OperationService) AdjustStock(ctx context.Context, branchID int, req dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	if req.Delta.IsZero() {
		return nil, apperrors.NewValidationError("delta must not be zero", apperrors.ValidationDetail{
			Field:   "delta",
			Message: "delta must be a non-zero signed quantity",
		})
	}

	product, err := s.products.FindByName(ctx, req.Product)
	if err != nil {
		return nil, err
	}

	deltaBase := domain.ToBase(product.Unit, req.Delta)

	var balance decimal.Decimal
	err = s.txManager.InTx(ctx, func(tx mysql.Executor) error {
		before, err := s.ledger.BalanceForUpdate(ctx, tx, product.ID, branchID)
		if err != nil {
			return err
		}

		err = s.ledger.ApplyDelta(ctx, tx, domain.Movement{
			ProductID: product.ID,
			BranchID:  branchID,
			Delta:     deltaBase,
			Reason:    domain.ReasonAdjustment,
			RefTable:  "Inventory",
			Note:      req.Note,
		})
		if err != nil {
			return err
		}

		balance = before.Add(deltaBase)
		return nil
	})
	if err != nil {
		return nil, s.classify(err, "adjusting stock")
	}

	s.logger.Warn("stock adjusted",
		zap.String("product", product.Name),
		zap.Int("branchId", branchID),
		zap.String("deltaBase", deltaBase.String()),
		zap.String("balance", balance.String()),
	)

	return &dto.AdjustStockResponse{Balance: balance}, nil
}

// classify keeps typed business errors as-is and wraps storage failures.
func (s *OperationService) classify(err error, action string) error {
	if _, ok := apperrors.IsValidationError(err); ok {
		return err
	}
	if _, ok := apperrors.IsNotFoundError(err); ok {
		return err
	}
	if _, ok := apperrors.IsConsistencyError(err); ok {
		return err
	}
	if _, ok := apperrors.IsInsufficientStockError(err); ok {
		return err
	}
	if _, ok := apperrors.IsNoRecipeError(err); ok {
		return err
	}
	if mysql.IsDeadlock(err) {
		return apperrors.NewInternalError(action+": transaction conflict", err)
	}
	return apperrors.NewInternalError(action, err)
}
