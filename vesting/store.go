package vesting

import "context"

type Store interface {
	GetVesting(ctx context.Context) (*Vesting, error)
}
