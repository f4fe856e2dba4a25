package pgx

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/okarin-dev/gatekit/core"
)

const accountColumns = `id, email, phone, first_name, last_name, strategy,
	password_hash, provider_subject, biometric_hash, verified, last_login_at,
	avatar, bio, location, website, created_at, updated_at`

func (a *Adapter) Create(ctx context.Context, account *core.Account) error {
	query := `INSERT INTO accounts (` + accountColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := a.db.Exec(ctx, query,
		account.ID,
		nullable(account.Email),
		nullable(account.Phone),
		account.FirstName,
		account.LastName,
		string(account.Strategy),
		account.PasswordHash,
		account.ProviderSubject,
		account.BiometricHash,
		account.Verified,
		nullableTime(account.LastLoginAt),
		account.Profile.Avatar,
		account.Profile.Bio,
		account.Profile.Location,
		account.Profile.Website,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrDuplicateIdentity
		}
		return err
	}
	return nil
}

func (a *Adapter) FindByID(ctx context.Context, id string) (*core.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return a.scanOne(a.db.QueryRow(ctx, query, id))
}

func (a *Adapter) FindByEmail(ctx context.Context, email string) (*core.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`
	return a.scanOne(a.db.QueryRow(ctx, query, email))
}

func (a *Adapter) FindByPhone(ctx context.Context, phone string) (*core.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE phone = $1`
	return a.scanOne(a.db.QueryRow(ctx, query, phone))
}

func (a *Adapter) Update(ctx context.Context, account *core.Account) error {
	query := `UPDATE accounts SET
	          email = $1, phone = $2, first_name = $3, last_name = $4,
	          password_hash = $5, provider_subject = $6, biometric_hash = $7,
	          verified = $8, last_login_at = $9, avatar = $10, bio = $11,
	          location = $12, website = $13, updated_at = $14
	          WHERE id = $15`

	tag, err := a.db.Exec(ctx, query,
		nullable(account.Email),
		nullable(account.Phone),
		account.FirstName,
		account.LastName,
		account.PasswordHash,
		account.ProviderSubject,
		account.BiometricHash,
		account.Verified,
		nullableTime(account.LastLoginAt),
		account.Profile.Avatar,
		account.Profile.Bio,
		account.Profile.Location,
		account.Profile.Website,
		account.UpdatedAt,
		account.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrDuplicateIdentity
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrAccountNotFound
	}
	return nil
}

func (a *Adapter) scanOne(row pgx.Row) (*core.Account, error) {
	account := &core.Account{}
	var (
		email, phone *string
		strategy     string
		lastLogin    *time.Time
	)

	err := row.Scan(
		&account.ID,
		&email,
		&phone,
		&account.FirstName,
		&account.LastName,
		&strategy,
		&account.PasswordHash,
		&account.ProviderSubject,
		&account.BiometricHash,
		&account.Verified,
		&lastLogin,
		&account.Profile.Avatar,
		&account.Profile.Bio,
		&account.Profile.Location,
		&account.Profile.Website,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrAccountNotFound
		}
		return nil, err
	}

	if email != nil {
		account.Email = *email
	}
	if phone != nil {
		account.Phone = *phone
	}
	if lastLogin != nil {
		account.LastLoginAt = *lastLogin
	}
	account.Strategy = core.Strategy(strategy)

	return account, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
