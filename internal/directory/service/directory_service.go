package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"almacen/internal/domain"
	"almacen/internal/dto"
	apperrors "almacen/internal/errors"
	"almacen/internal/infrastructure/mysql"
)

type SuppliersRepository interface {
	Insert(ctx context.Context, s domain.Supplier) (int, error)
	ListActive(ctx context.Context) ([]domain.Supplier, error)
	Deactivate(ctx context.Context, name string) error
}

type CashiersRepository interface {
	Insert(ctx context.Context, c domain.Cashier) (int, error)
	ListActive(ctx context.Context) ([]domain.Cashier, error)
	Deactivate(ctx context.Context, name string) error
}

type DirectoryService struct {
	suppliers SuppliersRepository
	cashiers  CashiersRepository
	logger    *zap.Logger
}

func NewDirectoryService(suppliers SuppliersRepository, cashiers CashiersRepository, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{
		suppliers: suppliers,
		cashiers:  cashiers,
		logger:    logger,
	}
}

func (s *DirectoryService) CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest) (int, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return 0, apperrors.NewValidationError("name is required", apperrors.ValidationDetail{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	supplier := domain.Supplier{Name: name}
	if req.Phone != "" {
		supplier.Phone = &req.Phone
	}
	if req.Contact != "" {
		supplier.Contact = &req.Contact
	}

	id, err := s.suppliers.Insert(ctx, supplier)
	if err != nil {
		if mysql.IsDuplicateEntry(err) {
			return 0, apperrors.NewValidationError("supplier name already in use", apperrors.ValidationDetail{
				Field:   "name",
				Message: "name must be unique",
			})
		}
		return 0, apperrors.NewInternalError("inserting supplier", err)
	}

	s.logger.Info("supplier created", zap.Int("supplierId", id), zap.String("name", name))
	return id, nil
}

func (s *DirectoryService) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	return s.suppliers.ListActive(ctx)
}

func (s *DirectoryService) DeactivateSupplier(ctx context.Context, name string) error {
	return s.suppliers.Deactivate(ctx, name)
}

func (s *DirectoryService) CreateCashier(ctx context.Context, req dto.CreateCashierRequest) (int, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return 0, apperrors.NewValidationError("name is required", apperrors.ValidationDetail{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	id, err := s.cashiers.Insert(ctx, domain.Cashier{Name: name})
	if err != nil {
		if mysql.IsDuplicateEntry(err) {
			return 0, apperrors.NewValidationError("cashier name already in use", apperrors.ValidationDetail{
				Field:   "name",
				Message: "name must be unique",
			})
		}
		return 0, apperrors.NewInternalError("inserting cashier", err)
	}

	s.logger.Info("cashier created", zap.Int("cashierId", id), zap.String("name", name))
	return id, nil
}

func (s *DirectoryService) ListCashiers(ctx context.Context) ([]domain.Cashier, error) {
	return s.cashiers.ListActive(ctx)
}

func (s *DirectoryService) DeactivateCashier(ctx context.Context, name string) error {
	return s.cashiers.Deactivate(ctx, name)
}
