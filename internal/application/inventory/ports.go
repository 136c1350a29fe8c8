package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacias-api/internal/domain/entity"
	"github.com/jhoicas/Farmacias-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repositories) error) error
}

// StockReport datos de la hoja de stock imprimible de una farmacia.
type StockReport struct {
	Pharmacy    entity.Pharmacy
	Items       []*entity.InventoryItem
	TotalUnits  int64
	TotalValue  decimal.Decimal // Σ cantidad × precio
	GeneratedAt time.Time
}

// StockReportGenerator puerto de salida para renderizar la hoja de stock (PDF).
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, report *StockReport) ([]byte, error)
}
