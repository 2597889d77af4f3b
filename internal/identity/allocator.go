// Package identity issues the integer identifiers used by deals and cashflows.
package identity

import "sync/atomic"

// Allocator hands out strictly increasing ids from two independent counters.
// The first id of each counter is 1. Ids are never reused.
type Allocator struct {
	deals     atomic.Uint64
	cashflows atomic.Uint64
}

// NewAllocator creates an Allocator with both counters at zero.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// NextDealID returns the next deal id.
func (a *Allocator) NextDealID() uint {
	return uint(a.deals.Add(1))
}

// NextCashflowID returns the next cashflow id.
func (a *Allocator) NextCashflowID() uint {
	return uint(a.cashflows.Add(1))
}

// LastDealID returns the most recently issued deal id, or 0 if none was issued.
func (a *Allocator) LastDealID() uint {
	return uint(a.deals.Load())
}
