package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skladets/internal/models"
	"skladets/internal/store"

	"go.uber.org/zap"
)

type OperationInput struct {
	ProductID     uint
	Type          models.OperationType
	Quantity      int64
	Date          time.Time // нулевое значение - текущий момент
	FromWarehouse string
	ToWarehouse   string
	Responsible   string
	Note          string
}

// RecordOperation appends an operation to the journal and applies its effect
// to the product's stock: receipts add, issues and write-offs subtract,
// transfers only record the warehouse labels. Stock may go negative.
func (s *Service) RecordOperation(ctx context.Context, in OperationInput) (*models.Operation, *models.Stock, error) {
	var verr ValidationError
	if !in.Type.Valid() {
		verr.add("type", ErrInvalidOperationType, "Выберите тип операции")
	}
	if in.Quantity < 1 {
		verr.add("quantity", ErrInvalidQuantity, "Количество должно быть не меньше 1")
	}
	if in.ProductID == 0 {
		verr.add("product_id", ErrProductNotFound, "Выберите товар")
	} else if _, err := s.repo.GetProduct(ctx, in.ProductID); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, nil, err
		}
		verr.add("product_id", ErrProductNotFound, "Товар не найден")
	}
	if !verr.empty() {
		return nil, nil, &verr
	}

	date := in.Date
	if date.IsZero() {
		date = s.now()
	}

	op := &models.Operation{
		ProductID:     in.ProductID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		Date:          date,
		FromWarehouse: strings.TrimSpace(in.FromWarehouse),
		ToWarehouse:   strings.TrimSpace(in.ToWarehouse),
		Responsible:   strings.TrimSpace(in.Responsible),
		Note:          strings.TrimSpace(in.Note),
	}

	stock, err := s.repo.AppendOperation(ctx, op)
	if err != nil {
		return nil, nil, fmt.Errorf("операция не сохранена: %w", err)
	}

	s.log.Info("операция записана",
		zap.Uint("operation_id", op.ID),
		zap.Uint("product_id", op.ProductID),
		zap.String("type", string(op.Type)),
		zap.Int64("quantity", op.Quantity),
		zap.Int64("stock_quantity", stock.Quantity),
	)
	if stock.Quantity < 0 {
		s.log.Warn("отрицательный остаток",
			zap.Uint("product_id", op.ProductID),
			zap.Int64("stock_quantity", stock.Quantity),
		)
	}
	return op, stock, nil
}
