package types

// Account identifies a wallet or token account on the host ledger.
type Account string

// IsZero reports whether the account is unset.
func (a Account) IsZero() bool { return a == "" }

func (a Account) String() string { return string(a) }
