package ledger

import (
	"marketplace/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Movement is the part of an entry that matters for balances.
type Movement struct {
	From   kernel.Party
	To     kernel.Party
	Amount decimal.Decimal
	Status Status
}

// MovementOf projects an entry onto the fields a balance needs.
func MovementOf(e *Entry) Movement {
	return Movement{From: e.from, To: e.to, Amount: e.amount, Status: e.status}
}

type Balance struct {
	Available decimal.Decimal
	Pending   decimal.Decimal
}

// CalculateBalance folds every movement touching party:
// available is settled money in minus settled money out, pending is
// money on its way in. Failed movements count for nothing.
func CalculateBalance(party kernel.Party, movements []Movement) Balance {
	b := Balance{Available: decimal.Zero, Pending: decimal.Zero}
	for _, m := range movements {
		incoming := m.To.IsEqual(party)
		outgoing := m.From.IsEqual(party)
		switch m.Status {
		case Success:
			if incoming {
				b.Available = b.Available.Add(m.Amount)
			}
			if outgoing {
				b.Available = b.Available.Sub(m.Amount)
			}
		case Pending:
			if incoming {
				b.Pending = b.Pending.Add(m.Amount)
			}
		case UnknownStatus, Failed:
		}
	}
	return b
}
