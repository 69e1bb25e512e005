package credits

import (
	"context"
	"errors"
	"log"

	apperrors "github.com/authorityshow/editor-api/pkg/errors"
)

// ErrInsufficientCredits indicates the balance cannot cover the meter's cost
var ErrInsufficientCredits = errors.New("insufficient credits")

// Service implements the Ledger interface
type Service struct {
	repo Repository
}

// NewService creates a new credit ledger service
func NewService(repo Repository) Ledger {
	return &Service{repo: repo}
}

// TryDebit atomically checks and debits the cost of the given meter
func (s *Service) TryDebit(ctx context.Context, userID, meter string) error {
	cost := CostOf(meter)

	ok, err := s.repo.DebitIfSufficient(ctx, userID, cost)
	if err != nil {
		return apperrors.DatabaseError("debit", err)
	}
	if !ok {
		log.Printf("[WARN] debit refused: user=%s meter=%s cost=%d", userID, meter, cost)
		return apperrors.InsufficientCreditsError(meter).WithCause(ErrInsufficientCredits)
	}
	return nil
}

// Balance returns the user's current balance. Unknown users have a zero
// balance rather than an error; the account is created lazily on first grant.
func (s *Service) Balance(ctx context.Context, userID string) (int64, error) {
	balance, err := s.repo.GetBalance(ctx, userID)
	if errors.Is(err, ErrAccountNotFound) {
		return 0, nil
	}
	return balance, err
}

// Grant adds credits to a user's balance
func (s *Service) Grant(ctx context.Context, userID string, amount int64) error {
	if amount <= 0 {
		return errors.New("grant amount must be positive")
	}
	return s.repo.Credit(ctx, userID, amount)
}
