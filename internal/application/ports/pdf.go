package ports

import (
	"context"

	"github.com/jhoicas/marmolia-api/internal/domain/entity"
)

// QuotePDFGenerator puerto para la representación gráfica de una cotización.
// La implementación (Maroto) vive en infrastructure/pdf.
type QuotePDFGenerator interface {
	GenerateQuotePDF(ctx context.Context, tenant *entity.Tenant, order *entity.Order,
		customer *entity.Customer, stone *entity.Stone) ([]byte, error)
}
