package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adminkit/account-service/internal/account/domain"
	autherror "github.com/adminkit/account-service/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// PgxIface is the subset of pgxpool.Pool the repository needs. It is also
// satisfied by pgxmock pools in tests.
type PgxIface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db PgxIface
}

func NewPostgresUserRepository(db PgxIface) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `u.id, u.seq, u.email, u.password_hash, u.enabled, u.locked,
		u.password_change_required, u.activation_token, u.activation_token_expires_at,
		u.reset_password_token, u.reset_password_token_expires_at,
		u.last_password_change_at, u.role_id, COALESCE(r.name, ''), u.created_at, u.updated_at`

// RETURNING cannot reference a joined relation, so the role name comes from a
// scalar subquery there.
const userReturning = `u.id, u.seq, u.email, u.password_hash, u.enabled, u.locked,
		u.password_change_required, u.activation_token, u.activation_token_expires_at,
		u.reset_password_token, u.reset_password_token_expires_at,
		u.last_password_change_at, u.role_id,
		COALESCE((SELECT name FROM roles WHERE id = u.role_id), ''), u.created_at, u.updated_at`

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN roles r ON r.id = u.role_id
		WHERE u.email = $1
		LIMIT 1;
	`
	user, err := r.scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN roles r ON r.id = u.role_id
		WHERE u.id = $1
		LIMIT 1;
	`
	user, err := r.scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO users (id, email, password_hash, enabled, locked, password_change_required, role_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `, user.ID, user.Email, user.PasswordHash, user.Enabled, user.Locked,
		user.PasswordChangeRequired, user.RoleID, user.CreatedAt, user.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return autherror.ErrEmailAlreadyInUse
	}

	return err
}

// SetActivationToken overwrites the activation token and its expiry. Any
// previously issued token for the user stops matching from this point on.
func (r *PostgresRepository) SetActivationToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET activation_token = $2, activation_token_expires_at = $3, updated_at = now()
		WHERE id = $1
	`, userID, token, expiresAt)

	return err
}

// ConsumeActivationToken enables the account and clears the token columns in
// one conditional update. The expiry comparison is half-open: a token is
// live strictly before its expiry instant. Returns (nil, nil) when no live
// token matched, which covers unknown, expired and already-consumed tokens
// alike; concurrent callers serialize on the row so only one succeeds.
func (r *PostgresRepository) ConsumeActivationToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	query := `
		UPDATE users u
		SET enabled = true, activation_token = NULL, activation_token_expires_at = NULL, updated_at = $2
		WHERE u.activation_token = $1 AND u.activation_token_expires_at > $2
		RETURNING ` + userReturning + `;
	`
	user, err := r.scanUser(r.db.QueryRow(ctx, query, token, now))
	if err != nil {
		return nil, fmt.Errorf("failed to consume activation token: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET reset_password_token = $2, reset_password_token_expires_at = $3, updated_at = now()
		WHERE id = $1
	`, userID, token, expiresAt)

	return err
}

func (r *PostgresRepository) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN roles r ON r.id = u.role_id
		WHERE u.reset_password_token = $1
		LIMIT 1;
	`
	user, err := r.scanUser(r.db.QueryRow(ctx, query, token))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by reset token: %w", err)
	}

	return user, nil
}

// ConsumeResetToken replaces the password hash, stamps the change time and
// clears the reset token columns in one conditional update. Same single-use
// contract as ConsumeActivationToken.
func (r *PostgresRepository) ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (*domain.User, error) {
	query := `
		UPDATE users u
		SET password_hash = $2, reset_password_token = NULL, reset_password_token_expires_at = NULL,
			password_change_required = false, last_password_change_at = $3, updated_at = $3
		WHERE u.reset_password_token = $1 AND u.reset_password_token_expires_at > $3
		RETURNING ` + userReturning + `;
	`
	user, err := r.scanUser(r.db.QueryRow(ctx, query, token, passwordHash, now))
	if err != nil {
		return nil, fmt.Errorf("failed to consume reset token: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Seq, &user.Email, &user.PasswordHash, &user.Enabled, &user.Locked,
		&user.PasswordChangeRequired, &user.ActivationToken, &user.ActivationExpiresAt,
		&user.ResetToken, &user.ResetExpiresAt,
		&user.LastPasswordChangeAt, &user.RoleID, &user.RoleName, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}
