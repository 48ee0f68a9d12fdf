// Package services holds domain logic that spans the order and ledger
// aggregates: posting the cash legs of a delivered order and resolving the
// restaurant payout.
package services
