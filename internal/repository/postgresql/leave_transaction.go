package postgresql

import (
	"context"

	"github.com/suweldo/payroll-backend-go/internal/domain/leave"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
)

type leaveTransactionRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTransactionRepository(db *database.DB) leave.TransactionRepository {
	return &leaveTransactionRepositoryImpl{db: db}
}

func (r *leaveTransactionRepositoryImpl) Append(ctx context.Context, tx leave.Transaction) (leave.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_transactions (
			id, balance_id, kind, amount, balance_after, reference, actor_id, created_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, NOW()
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		tx.BalanceID, tx.Kind, tx.Amount, tx.BalanceAfter, tx.Reference, tx.ActorID,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return leave.Transaction{}, err
	}

	return tx, nil
}

func (r *leaveTransactionRepositoryImpl) ListByBalance(ctx context.Context, balanceID string) ([]leave.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, balance_id, kind, amount, balance_after, reference, actor_id, created_at
		FROM leave_transactions
		WHERE balance_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, balanceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]leave.Transaction, 0)
	for rows.Next() {
		var tx leave.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.BalanceID, &tx.Kind, &tx.Amount, &tx.BalanceAfter, &tx.Reference, &tx.ActorID, &tx.CreatedAt,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}
