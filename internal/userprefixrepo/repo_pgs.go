// Package userprefixrepo manages repository layer of the persisted
// registry: user to staff-prefix mappings, bot settings and the named
// MMK accounts the confidence matcher scores against.
package userprefixrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/infinity-otc/balancebot/internal/domain"
	"github.com/infinity-otc/balancebot/pkg/dbpkg"
	"github.com/infinity-otc/balancebot/pkg/errorspkg"
)

// ErrPrefixNotFound indicates that the user has no prefix mapping.
var ErrPrefixNotFound = errors.New("user prefix not found")

// Key of the settings row holding the Buy receiving account label.
const receivingAccountKey = "receiving_account"

// RepoPGS facilitates registry repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns registry RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const getPrefixQuery = `
SELECT prefix_name FROM user_prefixes WHERE user_id = $1
`

// GetPrefix returns the staff prefix mapped to the user.
func (r *RepoPGS) GetPrefix(ctx context.Context, userID int64) (string, error) {
	l := zerolog.Ctx(ctx)

	var prefix string

	err := r.db.QueryRowContext(ctx, getPrefixQuery, userID).Scan(&prefix)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrPrefixNotFound
		}

		l.Error().Err(err).Send()

		return "", errorspkg.ErrInternal
	}

	return prefix, nil
}

const setPrefixQuery = `
INSERT INTO
    user_prefixes (user_id, prefix_name, username)
VALUES
    ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE
SET prefix_name = EXCLUDED.prefix_name, username = EXCLUDED.username
RETURNING user_id, prefix_name, username, created_at
`

// SetPrefix creates or replaces the user's prefix mapping.
func (r *RepoPGS) SetPrefix(ctx context.Context, userID int64, prefix, username string) (domain.UserPrefix, error) {
	l := zerolog.Ctx(ctx)

	var up domain.UserPrefix

	err := r.db.QueryRowContext(ctx, setPrefixQuery, userID, prefix, username).Scan(
		&up.UserID,
		&up.Prefix,
		&up.Username,
		&up.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			l.Error().Str("pq_code", string(pqErr.Code)).Send()
		}

		return up, errorspkg.ErrInternal
	}

	return up, nil
}

const listPrefixesQuery = `
SELECT user_id, prefix_name, username, created_at
FROM user_prefixes
ORDER BY prefix_name
`

// ListPrefixes returns all user prefix mappings ordered by prefix.
func (r *RepoPGS) ListPrefixes(ctx context.Context) ([]domain.UserPrefix, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listPrefixesQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	var users []domain.UserPrefix

	for rows.Next() {
		var up domain.UserPrefix

		if err := rows.Scan(&up.UserID, &up.Prefix, &up.Username, &up.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		users = append(users, up)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return users, nil
}

const getSettingQuery = `
SELECT value FROM settings WHERE key = $1
`

const setSettingQuery = `
INSERT INTO
    settings (key, value)
VALUES
    ($1, $2)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
`

// ReceivingAccount returns the label of the account credited on Buy.
// An empty label means the setting is unset.
func (r *RepoPGS) ReceivingAccount(ctx context.Context) (string, error) {
	l := zerolog.Ctx(ctx)

	var label string

	err := r.db.QueryRowContext(ctx, getSettingQuery, receivingAccountKey).Scan(&label)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}

		l.Error().Err(err).Send()

		return "", errorspkg.ErrInternal
	}

	return label, nil
}

// SetReceivingAccount stores the label of the account credited on Buy.
func (r *RepoPGS) SetReceivingAccount(ctx context.Context, label string) error {
	l := zerolog.Ctx(ctx)

	if _, err := r.db.ExecContext(ctx, setSettingQuery, receivingAccountKey, label); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}

const listNamedAccountsQuery = `
SELECT label, account_suffix, holder_name
FROM named_accounts
ORDER BY label
`

// ListNamedAccounts returns the registered MMK accounts with their
// identity fields.
func (r *RepoPGS) ListNamedAccounts(ctx context.Context) ([]domain.NamedAccount, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listNamedAccountsQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	var accounts []domain.NamedAccount

	for rows.Next() {
		var a domain.NamedAccount

		if err := rows.Scan(&a.Label, &a.AccountSuffix, &a.HolderName); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return accounts, nil
}
