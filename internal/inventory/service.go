package inventory

import (
	"context"
	"errors"

	"github.com/ilmsadmin/zbase-sub005/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProductMissing = errors.New("Product not found")
	ErrNegativeStock  = errors.New("Stock cannot go negative")
)

type Service struct {
	DB *gorm.DB
}

// StockView is the listing row: the stock level with its product summary and
// a low-stock flag derived from the reorder point.
type StockView struct {
	models.StockLevel
	LowStock bool `json:"low_stock"`
}

// ViewStock lists stock levels with product summaries, lowest quantity first.
func (s *Service) ViewStock(ctx context.Context) ([]StockView, error) {
	var levels []models.StockLevel
	if err := s.DB.WithContext(ctx).
		Preload("Product").
		Order("quantity ASC").
		Find(&levels).Error; err != nil {
		return nil, err
	}
	views := make([]StockView, 0, len(levels))
	for _, l := range levels {
		views = append(views, StockView{StockLevel: l, LowStock: l.Quantity <= l.ReorderPoint})
	}
	return views, nil
}

// AdjustStock applies a signed delta to a product's on-hand quantity, creating
// the stock row on first receipt. Read and write share one transaction so
// concurrent adjustments cannot interleave into a negative balance.
func (s *Service) AdjustStock(ctx context.Context, productID uint, delta int, reorderPoint *int) (*models.StockLevel, error) {
	var level models.StockLevel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Product
		if err := tx.Select("id").First(&p, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductMissing
			}
			return err
		}

		err := tx.Where("product_id = ?", productID).First(&level).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			level = models.StockLevel{ProductID: productID}
		case err != nil:
			return err
		}

		newQty := level.Quantity + delta
		if newQty < 0 {
			return ErrNegativeStock
		}
		level.Quantity = newQty
		if reorderPoint != nil {
			level.ReorderPoint = *reorderPoint
		}
		return tx.Save(&level).Error
	})
	if err != nil {
		return nil, err
	}
	return &level, nil
}
