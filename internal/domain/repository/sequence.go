package repository

import "context"

// BillNumberSource exposes the highest bill number stored for one order kind.
// Both order repositories satisfy it.
type BillNumberSource interface {
	LatestBillNo(ctx context.Context) (int64, error)
}

// BillSequence hands out bill numbers. Next never fails; a number may still
// collide with a concurrent writer, which the unique index on bill_no catches.
type BillSequence interface {
	Next(ctx context.Context) int64
	// Resync realigns the sequence with the store after a collision.
	Resync(ctx context.Context)
}
