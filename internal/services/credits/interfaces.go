package credits

import "context"

// Ledger guards metered pipeline steps against a per-user credit balance.
// TryDebit must be atomic with the balance check so concurrent requests from
// the same user cannot both pass a check-then-act race.
type Ledger interface {
	// TryDebit atomically checks and debits the cost of the given meter.
	// Returns ErrInsufficientCredits when the balance cannot cover it.
	TryDebit(ctx context.Context, userID, meter string) error

	// Balance returns the user's current balance (0 for unknown users)
	Balance(ctx context.Context, userID string) (int64, error)

	// Grant adds credits to a user's balance, creating the account if needed
	Grant(ctx context.Context, userID string, amount int64) error
}

// Repository defines the persistence operations the ledger needs
type Repository interface {
	// DebitIfSufficient decrements the balance by amount only if the
	// resulting balance would be non-negative. Returns true if the debit
	// was applied.
	DebitIfSufficient(ctx context.Context, userID string, amount int64) (bool, error)

	// GetBalance returns the current balance, or ErrAccountNotFound
	GetBalance(ctx context.Context, userID string) (int64, error)

	// Credit adds amount to the balance, creating the account if needed
	Credit(ctx context.Context, userID string, amount int64) error
}
