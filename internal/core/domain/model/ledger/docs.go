// Package ledger records money movements between parties. Entries are
// append-only; the only change an entry accepts is resolving a pending status
// to success or failed, once.
package ledger
