// Package models defines the core domain models for homebills.
//
// # Records
//
//   - Person: a household member that obligations are split across
//   - Bill: a one-off obligation with a single due date
//   - Mortgage: a recurring monthly obligation with escrow components
//   - Payment: money paid toward a bill or mortgage, optionally with an
//     explicit per-person allocation
//   - User: a manager account that can modify data
//
// All monetary values are integer minor units (cents, the Cents type).
// Floating point never touches stored amounts; ratios such as split
// percentages and interest rates stay float64 because they are weights,
// not money.
//
// # Design Principles
//
//  1. Records are plain data: no behavior beyond the accessors needed by
//     the calculator package.
//  2. Relationships use ID strings, never pointers, to avoid cycles.
//  3. Computed results (cycles, stats) live in internal/calculator and are
//     never persisted.
package models
