package storage

import (
	"context"
	"fmt"

	"github.com/caixinha/caixinha/internal/model"
)

// AccountBalances computes the signed per-currency balance of every account
// from completed transactions: income adds value, expense subtracts it, each
// (account, currency) pair bucketed independently. Accounts with no
// completed transactions map to an empty currency map, not a zero entry.
func (s *SQLiteStorage) AccountBalances(ctx context.Context) (map[string]map[string]float64, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	balances := make(map[string]map[string]float64)

	// Every account appears in the result, even with no completed history.
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for _, acc := range accounts {
		balances[acc.ID] = make(map[string]float64)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT account_id, currency,
			SUM(CASE WHEN type = ? THEN value ELSE -value END) AS total
		FROM transactions
		WHERE is_completed = 1
		GROUP BY account_id, currency`, model.TypeIncome)
	if err != nil {
		return nil, fmt.Errorf("failed to query balances: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var accountID, currency string
		var total float64
		if err := rows.Scan(&accountID, &currency, &total); err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		if _, ok := balances[accountID]; !ok {
			balances[accountID] = make(map[string]float64)
		}
		balances[accountID][currency] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balances: %w", err)
	}
	return balances, nil
}
