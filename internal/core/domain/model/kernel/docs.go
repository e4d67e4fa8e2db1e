// Package kernel provides the primitives shared by every lifecycle in the back office
// domain model.
//
// The package includes:
//   - UUID: identifier value object wrapping github.com/google/uuid
//   - Money: currency-safe decimal amount (github.com/shopspring/decimal), two fraction
//     digits, half-up rounding, arithmetic only between equal currencies
//   - Address: shipping destination used by deliveries
//   - Transitions: the guarded-transition table each entity declares for its Status
//
// All values are immutable and safe to share between goroutines. Nothing in this
// package reads the clock or performs I/O.
package kernel
