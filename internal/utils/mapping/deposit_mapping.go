package mapping

import (
	"github.com/vendmach/vending_machine_api/internal/core/domain"
	"github.com/vendmach/vending_machine_api/internal/models"
)

// ToModelDeposit converts a domain Deposit to a model Deposit
func ToModelDeposit(d domain.Deposit) models.Deposit {
	coins := make([]models.CoinEntry, len(d.Coins))
	for i, entry := range d.Coins {
		coins[i] = models.CoinEntry{Value: int64(entry.Value), Quantity: entry.Quantity}
	}
	return models.Deposit{
		DepositID:   d.DepositID,
		UserID:      d.UserID,
		Amount:      d.Amount,
		Coins:       coins,
		Utilized:    d.Utilized,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDeposit converts a model Deposit to a domain Deposit
func ToDomainDeposit(m models.Deposit) domain.Deposit {
	coins := make(domain.CoinStack, len(m.Coins))
	for i, entry := range m.Coins {
		coins[i] = domain.CoinEntry{Value: domain.Denomination(entry.Value), Quantity: entry.Quantity}
	}
	return domain.Deposit{
		DepositID:   m.DepositID,
		UserID:      m.UserID,
		Amount:      m.Amount,
		Coins:       coins,
		Utilized:    m.Utilized,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
