package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryContainer holds all the pgsql repository implementations.
type RepositoryContainer struct {
	BankAccount *PgxBankAccountRepository
	Payout      *PgxPayoutRepository
}

// NewRepositoryContainer creates all repositories sharing one pool.
func NewRepositoryContainer(pool *pgxpool.Pool) *RepositoryContainer {
	return &RepositoryContainer{
		BankAccount: NewBankAccountRepository(pool),
		Payout:      NewPayoutRepository(pool),
	}
}
