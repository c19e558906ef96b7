package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/louisbranch/crapshoot/internal/services/craps/domain/payout"
	"github.com/louisbranch/crapshoot/internal/services/craps/storage"
)

// Balance returns the balance of account; unknown accounts hold zero.
func (s *Store) Balance(ctx context.Context, account string) (uint64, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	return balance(ctx, s.sqlDB, account)
}

// Transfer moves amount from one account to another. The mint account has an
// unlimited balance and is never debited.
func (t *tx) Transfer(ctx context.Context, from, to string, amount uint64) error {
	to = strings.TrimSpace(to)
	if to == payout.MintAccount {
		return fmt.Errorf("destination account is required")
	}
	if amount == 0 {
		return nil
	}
	if strings.TrimSpace(from) == to {
		return fmt.Errorf("transfer source and destination must differ")
	}
	if from != payout.MintAccount {
		current, err := balance(ctx, t.q, from)
		if err != nil {
			return err
		}
		if current < amount {
			return storage.ErrInsufficientFunds
		}
		if err := setBalance(ctx, t.q, from, current-amount); err != nil {
			return err
		}
	}
	current, err := balance(ctx, t.q, to)
	if err != nil {
		return err
	}
	next, carry := bits.Add64(current, amount, 0)
	if carry != 0 {
		return storage.ErrBalanceOverflow
	}
	return setBalance(ctx, t.q, to, next)
}

func balance(ctx context.Context, q queryer, account string) (uint64, error) {
	var value int64
	err := q.QueryRowContext(ctx, `SELECT balance FROM accounts WHERE account = ?`, account).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get balance: %w", err)
	}
	return fromInt64(value), nil
}

func setBalance(ctx context.Context, q queryer, account string, value uint64) error {
	_, err := q.ExecContext(
		ctx,
		`INSERT INTO accounts (account, balance) VALUES (?, ?)
		 ON CONFLICT (account) DO UPDATE SET balance = excluded.balance`,
		account, toInt64(value),
	)
	if err != nil {
		return fmt.Errorf("set balance: %w", err)
	}
	return nil
}
