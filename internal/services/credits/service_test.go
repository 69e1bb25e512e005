package credits

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/authorityshow/editor-api/internal/database"
	"github.com/authorityshow/editor-api/internal/models"
	apperrors "github.com/authorityshow/editor-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) (Ledger, *database.DB) {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "credits.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.AutoMigrate(&models.CreditAccount{}))

	return NewService(NewRepository(db)), db
}

func TestTryDebitSucceedsWithSufficientBalance(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	require.NoError(t, ledger.Grant(ctx, "user-1", 1000))
	require.NoError(t, ledger.TryDebit(ctx, "user-1", "transcribe"))

	balance, err := ledger.Balance(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1000-CostOf("transcribe"), balance)
}

func TestTryDebitFailsOnInsufficientBalance(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	require.NoError(t, ledger.Grant(ctx, "user-1", 10))

	err := ledger.TryDebit(ctx, "user-1", "ai_cut")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeCredits))

	// Failed debits leave the balance untouched
	balance, err := ledger.Balance(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), balance)
}

func TestTryDebitUnknownUser(t *testing.T) {
	ledger, _ := newTestLedger(t)

	err := ledger.TryDebit(context.Background(), "ghost", "transcribe")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeCredits))
}

func TestBalanceUnknownUserIsZero(t *testing.T) {
	ledger, _ := newTestLedger(t)

	balance, err := ledger.Balance(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestDebitsAreSerializedToExhaustion(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	cost := CostOf("clean_transcript")
	require.NoError(t, ledger.Grant(ctx, "user-1", cost*3))

	// Exactly three debits succeed, the fourth is refused
	for i := 0; i < 3; i++ {
		require.NoError(t, ledger.TryDebit(ctx, "user-1", "clean_transcript"))
	}
	err := ledger.TryDebit(ctx, "user-1", "clean_transcript")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeCredits))

	balance, err := ledger.Balance(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestGrantAccumulates(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	require.NoError(t, ledger.Grant(ctx, "user-1", 100))
	require.NoError(t, ledger.Grant(ctx, "user-1", 250))

	balance, err := ledger.Balance(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(350), balance)
}

func TestGrantRejectsNonPositive(t *testing.T) {
	ledger, _ := newTestLedger(t)
	assert.Error(t, ledger.Grant(context.Background(), "user-1", 0))
}
