package transactions

import (
	"context"
	"errors"
	"time"

	"github.com/ilmsadmin/zbase-sub005/internal/models"

	"gorm.io/gorm"
)

var (
	ErrInvalidAmount    = errors.New("Amount must be positive")
	ErrInvalidDirection = errors.New("Direction must be in or out")
	ErrMethodRequired   = errors.New("Payment method is required")
	ErrInvoiceMissing   = errors.New("Invoice not found")
)

type Service struct {
	DB *gorm.DB
}

type CreateTransactionInput struct {
	InvoiceID *uint   `json:"invoice_id"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	Direction string  `json:"direction"`
	Reference *string `json:"reference"`
}

func (s *Service) Create(ctx context.Context, in CreateTransactionInput) (*models.Transaction, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if in.Method == "" {
		return nil, ErrMethodRequired
	}
	direction := in.Direction
	if direction == "" {
		direction = models.TxDirectionIn
	}
	if direction != models.TxDirectionIn && direction != models.TxDirectionOut {
		return nil, ErrInvalidDirection
	}
	if in.InvoiceID != nil {
		var inv models.Invoice
		if err := s.DB.WithContext(ctx).Select("id").First(&inv, *in.InvoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvoiceMissing
			}
			return nil, err
		}
	}

	tx := &models.Transaction{
		InvoiceID: in.InvoiceID,
		Amount:    in.Amount,
		Method:    in.Method,
		Direction: direction,
		Reference: in.Reference,
	}
	if err := s.DB.WithContext(ctx).Create(tx).Error; err != nil {
		return nil, err
	}
	return tx, nil
}

// FormattedTx is the listing shape: the transaction plus invoice code and
// customer name pulled from the related rows.
type FormattedTx struct {
	TxID         uint      `json:"tx_id"`
	Amount       float64   `json:"amount"`
	Method       string    `json:"method"`
	Direction    string    `json:"direction"`
	Reference    *string   `json:"reference"`
	CreatedAt    time.Time `json:"created_at"`
	InvoiceID    *uint     `json:"invoice_id"`
	InvoiceCode  *string   `json:"invoice_code"`
	CustomerName *string   `json:"customer_name"`
}

// List returns transactions newest first, optionally narrowed to one invoice,
// each shaped with its invoice code and customer name.
func (s *Service) List(ctx context.Context, invoiceID *uint) ([]FormattedTx, error) {
	q := s.DB.WithContext(ctx).Model(&models.Transaction{})
	if invoiceID != nil {
		q = q.Where("invoice_id = ?", *invoiceID)
	}
	var txs []models.Transaction
	if err := q.Order("created_at DESC").Find(&txs).Error; err != nil {
		return nil, err
	}
	if len(txs) == 0 {
		return []FormattedTx{}, nil
	}

	invoiceIDs := map[uint]bool{}
	for _, tx := range txs {
		if tx.InvoiceID != nil {
			invoiceIDs[*tx.InvoiceID] = true
		}
	}
	invoiceByID := map[uint]models.Invoice{}
	if len(invoiceIDs) > 0 {
		ids := make([]uint, 0, len(invoiceIDs))
		for id := range invoiceIDs {
			ids = append(ids, id)
		}
		var invs []models.Invoice
		if err := s.DB.WithContext(ctx).Preload("Customer").Where("id IN ?", ids).Find(&invs).Error; err != nil {
			return nil, err
		}
		for _, inv := range invs {
			invoiceByID[inv.ID] = inv
		}
	}

	out := make([]FormattedTx, 0, len(txs))
	for _, tx := range txs {
		f := FormattedTx{
			TxID:      tx.ID,
			Amount:    tx.Amount,
			Method:    tx.Method,
			Direction: tx.Direction,
			Reference: tx.Reference,
			CreatedAt: tx.CreatedAt,
			InvoiceID: tx.InvoiceID,
		}
		if tx.InvoiceID != nil {
			if inv, ok := invoiceByID[*tx.InvoiceID]; ok {
				code := inv.Code
				f.InvoiceCode = &code
				if inv.Customer != nil {
					name := inv.Customer.FullName
					f.CustomerName = &name
				}
			}
		}
		out = append(out, f)
	}
	return out, nil
}
