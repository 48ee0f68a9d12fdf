// Package order holds the Order aggregate: pricing at creation, the role-gated
// status machine, delivery-agent assignment, and the two confirmation codes
// that prove the physical hand-offs.
//
// Key rules:
//   - the transition table in transitions.go is the only source of legal edges
//   - delivered_at is set exactly once, when the order becomes delivered
//   - an agent is assigned once, while the order is ready, and never replaced
//   - codes are generated at creation and never change
package order
