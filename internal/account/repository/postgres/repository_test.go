package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/adminkit/account-service/internal/account/domain"
	repo "github.com/adminkit/account-service/internal/account/repository/postgres"
	autherror "github.com/adminkit/account-service/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{
	"id", "seq", "email", "password_hash", "enabled", "locked",
	"password_change_required", "activation_token", "activation_token_expires_at",
	"reset_password_token", "reset_password_token_expires_at",
	"last_password_change_at", "role_id", "role_name", "created_at", "updated_at",
}

func userRow(id, email string, enabled bool) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(userColumns).
		AddRow(id, int64(1), email, "hash", enabled, false,
			false, nil, (*time.Time)(nil),
			nil, (*time.Time)(nil),
			(*time.Time)(nil), 1, "user", now, now)
}

// TestGetByEmail covers the GetByEmail repository method.
func TestGetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresUserRepository(mock)
	userEmail := "test@example.com"
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT u.id, u.seq, u.email").
			WithArgs(userEmail).
			WillReturnRows(userRow("user-123", userEmail, true))

		user, err := r.GetByEmail(ctx, userEmail)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "user-123", user.ID)
		assert.True(t, user.Enabled)
		assert.Nil(t, user.ActivationToken)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT u.id, u.seq, u.email").
			WithArgs(userEmail).
			WillReturnError(pgx.ErrNoRows)

		user, err := r.GetByEmail(ctx, userEmail)
		require.NoError(t, err) // Should return nil user, nil error
		assert.Nil(t, user)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT u.id, u.seq, u.email").
			WithArgs(userEmail).
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.GetByEmail(ctx, userEmail)
		assert.Error(t, err)
	})
}

// TestCreate covers the Create repository method.
func TestCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ctx := context.Background()

	r := repo.NewPostgresUserRepository(mock)
	userToCreate := &domain.User{
		ID:           "user-123",
		Email:        "new@example.com",
		PasswordHash: "new-hash",
		Enabled:      false,
		RoleID:       1,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	args := []any{
		userToCreate.ID, userToCreate.Email, userToCreate.PasswordHash,
		userToCreate.Enabled, userToCreate.Locked, userToCreate.PasswordChangeRequired,
		userToCreate.RoleID, userToCreate.CreatedAt, userToCreate.UpdatedAt,
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(args...).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := r.Create(ctx, userToCreate)
		assert.NoError(t, err)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(args...).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		err := r.Create(ctx, userToCreate)
		assert.ErrorIs(t, err, autherror.ErrEmailAlreadyInUse)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(args...).
			WillReturnError(fmt.Errorf("db error"))

		err := r.Create(ctx, userToCreate)
		assert.Error(t, err)
	})
}

// TestSetActivationToken covers activation token issuance.
func TestSetActivationToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ctx := context.Background()
	r := repo.NewPostgresUserRepository(mock)
	expiresAt := time.Now().Add(24 * time.Hour)

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs("user-123", "token-1", expiresAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := r.SetActivationToken(ctx, "user-123", "token-1", expiresAt)
		assert.NoError(t, err)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs("user-123", "token-1", expiresAt).
			WillReturnError(fmt.Errorf("db error"))

		err := r.SetActivationToken(ctx, "user-123", "token-1", expiresAt)
		assert.Error(t, err)
	})
}

// TestConsumeActivationToken covers the conditional consume update.
func TestConsumeActivationToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ctx := context.Background()
	r := repo.NewPostgresUserRepository(mock)
	now := time.Now()

	t.Run("live token consumed", func(t *testing.T) {
		mock.ExpectQuery("UPDATE users u").
			WithArgs("token-1", now).
			WillReturnRows(userRow("user-123", "test@example.com", true))

		user, err := r.ConsumeActivationToken(ctx, "token-1", now)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.True(t, user.Enabled)
	})

	t.Run("no live token", func(t *testing.T) {
		// Unknown, expired and already-consumed tokens all match zero rows.
		mock.ExpectQuery("UPDATE users u").
			WithArgs("token-1", now).
			WillReturnError(pgx.ErrNoRows)

		user, err := r.ConsumeActivationToken(ctx, "token-1", now)
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

// TestConsumeResetToken covers the reset consume update.
func TestConsumeResetToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ctx := context.Background()
	r := repo.NewPostgresUserRepository(mock)
	now := time.Now()

	t.Run("live token consumed", func(t *testing.T) {
		mock.ExpectQuery("UPDATE users u").
			WithArgs("token-1", "new-hash", now).
			WillReturnRows(userRow("user-123", "test@example.com", true))

		user, err := r.ConsumeResetToken(ctx, "token-1", "new-hash", now)
		require.NoError(t, err)
		require.NotNil(t, user)
	})

	t.Run("no live token", func(t *testing.T) {
		mock.ExpectQuery("UPDATE users u").
			WithArgs("token-1", "new-hash", now).
			WillReturnError(pgx.ErrNoRows)

		user, err := r.ConsumeResetToken(ctx, "token-1", "new-hash", now)
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

// TestGetByResetToken covers reset token lookup without consumption.
func TestGetByResetToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ctx := context.Background()
	r := repo.NewPostgresUserRepository(mock)

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT u.id, u.seq, u.email").
			WithArgs("token-1").
			WillReturnRows(userRow("user-123", "test@example.com", true))

		user, err := r.GetByResetToken(ctx, "token-1")
		require.NoError(t, err)
		require.NotNil(t, user)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT u.id, u.seq, u.email").
			WithArgs("token-1").
			WillReturnError(pgx.ErrNoRows)

		user, err := r.GetByResetToken(ctx, "token-1")
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}
