package mapping

import (
	"github.com/vendmach/vending_machine_api/internal/core/domain"
	"github.com/vendmach/vending_machine_api/internal/models"
)

// ToModelPurchase converts a domain Purchase to a model Purchase
func ToModelPurchase(d domain.Purchase) models.Purchase {
	return models.Purchase{
		PurchaseID:  d.PurchaseID,
		ProductID:   d.ProductID,
		DepositID:   d.DepositID,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		TotalSpent:  d.TotalSpent,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}
