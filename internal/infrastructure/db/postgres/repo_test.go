package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/account-gateway/internal/application/account"
	"github.com/baechuer/account-gateway/internal/domain"
)

var columns = []string{"Id", "IdNumber", "FullName", "Username", "Password", "Section", "Role"}

func strp(s string) *string { return &s }

func newMock(t *testing.T) (*Repo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func TestWhereClause(t *testing.T) {
	t.Run("empty_filter_has_no_where", func(t *testing.T) {
		where, args := whereClause(nil)
		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("only_present_fields_are_constrained", func(t *testing.T) {
		f := account.BuildPartialMatchFilter(map[account.Field]*string{
			account.FieldFullName: strp("Jo"),
			account.FieldRole:     strp("adm"),
		})
		where, args := whereClause(f)
		assert.Equal(t, ` WHERE "FullName" LIKE $1 ESCAPE '\' AND "Role" LIKE $2 ESCAPE '\'`, where)
		assert.Equal(t, []any{"Jo%", "adm%"}, args)
	})

	t.Run("wildcards_in_prefix_are_literal", func(t *testing.T) {
		f := account.Filter{{Field: account.FieldIDNumber, Prefix: `50%_a\b`}}
		_, args := whereClause(f)
		assert.Equal(t, []any{`50\%\_a\\b%`}, args)
	})
}

func TestRepo_Search(t *testing.T) {
	repo, mock := newMock(t)

	rows := sqlmock.NewRows(columns).
		AddRow(1, "2020-01", "Jo Cruz", "jcruz", "pw", "A", "admin").
		AddRow(3, "2020-09", "Joan", "joan", "pw", "B", "staff")

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "UserAccounts" WHERE "FullName" LIKE $1 ESCAPE '\' ORDER BY "Id" ASC`)).
		WithArgs("Jo%").
		WillReturnRows(rows)

	f := account.BuildPartialMatchFilter(map[account.Field]*string{account.FieldFullName: strp("Jo")})
	got, err := repo.Search(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.UserAccount{ID: 1, IDNumber: "2020-01", FullName: "Jo Cruz", Username: "jcruz", Password: "pw", Section: "A", Role: "admin"}, got[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_ListAll_Empty(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY "Id" ASC`)).
		WillReturnRows(sqlmock.NewRows(columns))

	got, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Count(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "UserAccounts" WHERE "IdNumber" LIKE $1 ESCAPE '\'`)).
		WithArgs("2020%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := repo.Count(context.Background(), account.Filter{{Field: account.FieldIDNumber, Prefix: "2020"}})
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_GetByID(t *testing.T) {
	repo, mock := newMock(t)

	t.Run("success_mapping", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM "UserAccounts" WHERE "Id" = $1`)).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(7, "n", "f", "u", "p", "s", "r"))

		a, err := repo.GetByID(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), a.ID)
		assert.Equal(t, "r", a.Role)
	})

	t.Run("no_rows_is_nil", func(t *testing.T) {
		mock.ExpectQuery("SELECT").WithArgs(int64(8)).WillReturnError(sql.ErrNoRows)

		a, err := repo.GetByID(context.Background(), 8)
		assert.NoError(t, err)
		assert.Nil(t, a)
	})

	t.Run("driver_error_is_wrapped", func(t *testing.T) {
		boom := errors.New("connection reset")
		mock.ExpectQuery("SELECT").WithArgs(int64(9)).WillReturnError(boom)

		_, err := repo.GetByID(context.Background(), 9)
		assert.ErrorIs(t, err, boom)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Create(t *testing.T) {
	repo, mock := newMock(t)
	in := domain.AccountInput{IDNumber: "2020-01", FullName: "Jo", Username: "jo", Password: "secret", Section: "A", Role: "admin"}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "UserAccounts"`)).
		WithArgs(in.IDNumber, in.FullName, in.Username, in.Password, in.Section, in.Role).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(11, in.IDNumber, in.FullName, in.Username, in.Password, in.Section, in.Role))

	a, err := repo.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, in.Record(11), *a)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_UpdateAndDelete_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "UserAccounts" SET`)).
		WithArgs(int64(5), "", "", "", "", "", "").
		WillReturnRows(sqlmock.NewRows(columns))
	_, err := repo.Update(context.Background(), 5, domain.AccountInput{})
	assert.True(t, domain.IsAccountNotFound(err))

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM "UserAccounts"`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(columns))
	_, err = repo.Delete(context.Background(), 5)
	assert.True(t, domain.IsAccountNotFound(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Delete_ReturnsSnapshot(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM "UserAccounts" WHERE "Id"=$1`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(2, "n", "Gone Soon", "u", "p", "s", "r"))

	a, err := repo.Delete(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Gone Soon", a.FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrations_IdIsInt8(t *testing.T) {
	b, err := migrations.ReadFile("migrations/00001_create_user_accounts.sql")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`"Id"\s+BIGSERIAL PRIMARY KEY`), string(b))
}
