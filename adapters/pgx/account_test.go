package pgx

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okarin-dev/gatekit/core"
)

var accountRowColumns = []string{
	"id", "email", "phone", "first_name", "last_name", "strategy",
	"password_hash", "provider_subject", "biometric_hash", "verified",
	"last_login_at", "avatar", "bio", "location", "website",
	"created_at", "updated_at",
}

// anyArgs builds a placeholder list matching any value for each positional
// argument; pgxmock requires the argument count to be declared up front.
func anyArgs(n int) []interface{} {
	args := make([]interface{}, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func testAccount() *core.Account {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &core.Account{
		ID:           "id-1",
		Email:        "a@x.com",
		FirstName:    "A",
		LastName:     "B",
		Strategy:     core.StrategyPassword,
		PasswordHash: "$argon2id$...",
		Verified:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func accountRow(account *core.Account) *pgxmock.Rows {
	return pgxmock.NewRows(accountRowColumns).AddRow(
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
}

func TestAdapter_Create(t *testing.T) {
	tests := []struct {
		name       string
		setupMock  func(mock pgxmock.PgxPoolIface)
		wantErrIs  error
		wantErrMsg string
	}{
		{
			name: "successful insert",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO accounts`).
					WithArgs(anyArgs(17)...).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name: "unique violation maps to duplicate identity",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO accounts`).
					WithArgs(anyArgs(17)...).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
			},
			wantErrIs: core.ErrDuplicateIdentity,
		},
		{
			name: "other database errors pass through",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO accounts`).
					WithArgs(anyArgs(17)...).
					WillReturnError(errors.New("connection refused"))
			},
			wantErrMsg: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setupMock(mock)

			adapter := New(mock)
			err = adapter.Create(context.Background(), testAccount())

			switch {
			case tt.wantErrIs != nil:
				assert.ErrorIs(t, err, tt.wantErrIs)
			case tt.wantErrMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			default:
				require.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAdapter_FindByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	want := testAccount()
	mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE email = \$1`).
		WithArgs("a@x.com").
		WillReturnRows(accountRow(want))

	adapter := New(mock)
	got, err := adapter.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Email, got.Email)
	assert.Equal(t, want.Strategy, got.Strategy)
	assert.Equal(t, want.PasswordHash, got.PasswordHash)
	assert.True(t, got.LastLoginAt.IsZero())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_FindByEmail_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE email = \$1`).
		WithArgs("missing@x.com").
		WillReturnRows(pgxmock.NewRows(accountRowColumns))

	adapter := New(mock)
	_, err = adapter.FindByEmail(context.Background(), "missing@x.com")
	assert.ErrorIs(t, err, core.ErrAccountNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_FindByPhone(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	want := testAccount()
	want.Email = ""
	want.Phone = "+15551234567"
	want.Strategy = core.StrategyOTP

	mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE phone = \$1`).
		WithArgs("+15551234567").
		WillReturnRows(accountRow(want))

	adapter := New(mock)
	got, err := adapter.FindByPhone(context.Background(), "+15551234567")
	require.NoError(t, err)
	assert.Empty(t, got.Email)
	assert.Equal(t, "+15551234567", got.Phone)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_Update(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "successful update",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE accounts SET`).
					WithArgs(anyArgs(15)...).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "zero rows means not found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE accounts SET`).
					WithArgs(anyArgs(15)...).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			wantErr: core.ErrAccountNotFound,
		},
		{
			name: "unique violation maps to duplicate identity",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE accounts SET`).
					WithArgs(anyArgs(15)...).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
			},
			wantErr: core.ErrDuplicateIdentity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setupMock(mock)

			adapter := New(mock)
			err = adapter.Update(context.Background(), testAccount())

			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
