// Package kernel holds the value objects shared by every aggregate of the
// marketplace: identifiers, parties that money moves between, confirmation
// codes and geographic points.
//
// Values are immutable, and their zero values fail Validate so that a
// forgotten constructor call surfaces as an error instead of a silent default.
package kernel
