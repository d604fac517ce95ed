package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/harborline/shipdesk"
)

// Compile-time interface verification.
var _ shipdesk.UserService = (*UserService)(nil)

// UserService implements shipdesk.UserService using SQLite.
type UserService struct {
	db *DB
}

// NewUserService creates a new UserService.
func NewUserService(db *DB) *UserService {
	return &UserService{db: db}
}

// CreateUser creates a new user with a unique username and email.
func (s *UserService) CreateUser(ctx context.Context, user *shipdesk.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	for _, check := range []struct {
		column, value, msg string
	}{
		{"username", user.Username, "Username already exists"},
		{"email", user.Email, "Email already exists"},
	} {
		var n int
		err := s.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM users WHERE "+check.column+" = ?", check.value).Scan(&n)
		if err != nil {
			return err
		}
		if n > 0 {
			return shipdesk.Errorf(shipdesk.ECONFLICT, "%s", check.msg)
		}
	}

	user.CreatedAt = s.db.Now()

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, email, created_at)
		VALUES (?, ?, ?)
	`, user.Username, user.Email, user.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = int(id)
	return nil
}

// FindUserByID retrieves a user by ID.
func (s *UserService) FindUserByID(ctx context.Context, id int) (*shipdesk.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, username, email, created_at
		FROM users
		WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, shipdesk.Errorf(shipdesk.ENOTFOUND, "User not found")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindUsers retrieves every user in creation order.
func (s *UserService) FindUsers(ctx context.Context) ([]*shipdesk.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, username, email, created_at
		FROM users
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*shipdesk.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// DeleteUser permanently removes a user.
func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(result, "User not found")
}

func scanUser(row scanner) (*shipdesk.User, error) {
	var user shipdesk.User
	var createdAt string
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &createdAt); err != nil {
		return nil, err
	}
	var err error
	if user.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &user, nil
}
