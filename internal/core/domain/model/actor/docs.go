// Package actor models the authenticated caller of a use case.
package actor
