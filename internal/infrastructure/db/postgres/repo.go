package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/baechuer/account-gateway/internal/application/account"
	"github.com/baechuer/account-gateway/internal/domain"
)

type Repo struct {
	db *sql.DB
}

func New(db *sql.DB) *Repo { return &Repo{db: db} }

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(s scanner) (*domain.UserAccount, error) {
	var a domain.UserAccount
	if err := s.Scan(&a.ID, &a.IDNumber, &a.FullName, &a.Username, &a.Password, &a.Section, &a.Role); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repo) ListAll(ctx context.Context) ([]domain.UserAccount, error) {
	return r.Search(ctx, nil)
}

func (r *Repo) Count(ctx context.Context, f account.Filter) (int64, error) {
	where, args := whereClause(f)

	var n int64
	if err := r.db.QueryRowContext(ctx, countAccountsSQL+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count user accounts: %w", err)
	}
	return n, nil
}

func (r *Repo) Search(ctx context.Context, f account.Filter) ([]domain.UserAccount, error) {
	where, args := whereClause(f)

	// deterministic order
	rows, err := r.db.QueryContext(ctx, listAccountsSQL+where+` ORDER BY "Id" ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("query user accounts: %w", err)
	}
	defer rows.Close()

	out := []domain.UserAccount{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user account: %w", err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.UserAccount, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx, getAccountSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user account %d: %w", id, err)
	}
	return a, nil
}

func (r *Repo) Create(ctx context.Context, in domain.AccountInput) (*domain.UserAccount, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx, insertAccountSQL,
		in.IDNumber, in.FullName, in.Username, in.Password, in.Section, in.Role,
	))
	if err != nil {
		return nil, fmt.Errorf("insert user account: %w", err)
	}
	return a, nil
}

func (r *Repo) Update(ctx context.Context, id int64, in domain.AccountInput) (*domain.UserAccount, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx, updateAccountSQL,
		id, in.IDNumber, in.FullName, in.Username, in.Password, in.Section, in.Role,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAccountNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("update user account %d: %w", id, err)
	}
	return a, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) (*domain.UserAccount, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx, deleteAccountSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAccountNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("delete user account %d: %w", id, err)
	}
	return a, nil
}

func (r *Repo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
