package user

import (
	"context"

	"github.com/xraph/universe/types"
)

type Store interface {
	GetUser(ctx context.Context, owner types.Account) (*User, error)
}
