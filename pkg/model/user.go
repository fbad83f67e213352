package model

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"holdem-server/pkg/db"
)

const userColumns = `
users.id,
users.name,
users.play_money,
users.real_money,
COALESCE((SELECT SUM(table_stacks.stack) FROM table_stacks WHERE table_stacks.user_id = users.id), 0)::BIGINT,
users.role,
users.photo_url,
users.created,
users.updated`

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

// ErrUserNotFound is returned when no user has the id
var ErrUserNotFound = UserError("user not found")

// ErrInsufficientFunds is returned when a buy-in exceeds the user's play money
var ErrInsufficientFunds = UserError("insufficient play money")

// ErrAdminRoleImmutable is returned when trying to change the admin's role
var ErrAdminRoleImmutable = UserError("the admin role cannot be changed")

// ErrInvalidRole is returned for an unknown or unassignable role
var ErrInvalidRole = UserError("role must be PLAYER or MODERATOR")

// ErrInvalidAmount is returned for a non-positive amount of chips
var ErrInvalidAmount = UserError("amount must be greater than zero")

// ErrDuplicateKey happens if a unique constraint is violated
var ErrDuplicateKey = errors.New("duplicate key constraint violation")

// Role is the user's role
type Role string

// Role constants
const (
	RolePlayer    Role = "PLAYER"
	RoleModerator Role = "MODERATOR"
	RoleAdmin     Role = "ADMIN"
)

// User is a record in the `users` table
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	PlayMoney  int64     `json:"playMoney"`
	RealMoney  int64     `json:"realMoney"`
	TableStack int64     `json:"tableStack"` // summed over every room
	Role       Role      `json:"role"`
	PhotoURL   string    `json:"photoUrl"`
	Created    time.Time `json:"created"`
	Updated    time.Time `json:"updated"`
}

// IsAdmin returns true if the user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func getUserByRow(row db.Scanner) (*User, error) {
	var user User
	if err := row.Scan(&user.ID, &user.Name, &user.PlayMoney, &user.RealMoney, &user.TableStack, &user.Role, &user.PhotoURL, &user.Created, &user.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return &user, nil
}

func mapPQError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqDuplicateKeyErrorCode {
		return ErrDuplicateKey
	}

	return err
}

// UpsertUser creates the user with the starting balance, or refreshes the name and photo of an existing one
// The user whose id matches adminID is always an admin
func UpsertUser(ctx context.Context, id, name, photoURL string, startingBalance int64, adminID string) (*User, error) {
	const query = `
INSERT INTO users (id, name, photo_url, play_money, role)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    photo_url = EXCLUDED.photo_url,
    role = CASE WHEN EXCLUDED.role = 'ADMIN' THEN 'ADMIN' ELSE users.role END,
    updated = (NOW() AT TIME ZONE 'utc')
RETURNING ` + userColumns

	role := RolePlayer
	if adminID != "" && id == adminID {
		role = RoleAdmin
	}

	row := db.Instance().QueryRowContext(ctx, query, id, name, photoURL, startingBalance, role)
	user, err := getUserByRow(row)
	if err != nil {
		return nil, mapPQError(err)
	}

	return user, nil
}

// GetUserByID returns the user with the id
func GetUserByID(ctx context.Context, id string) (*User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1`

	return getUserByRow(db.Instance().QueryRowContext(ctx, query, id))
}

func getUsers(rows *sql.Rows, err error) ([]*User, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*User, 0)
	for rows.Next() {
		user, err := getUserByRow(rows)
		if err != nil {
			return nil, err
		}

		users = append(users, user)
	}

	return users, rows.Err()
}

// GetUsers returns a page of users
func GetUsers(ctx context.Context, offset int64, limit int) ([]*User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
ORDER BY created ASC, id ASC
OFFSET $1
LIMIT $2`

	return getUsers(db.Instance().QueryContext(ctx, query, offset, limit))
}

// Reward adds play money to the user
func Reward(ctx context.Context, id string, amount int64) (*User, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	const query = `
UPDATE users
SET play_money = play_money + $1, updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2
RETURNING ` + userColumns

	return getUserByRow(db.Instance().QueryRowContext(ctx, query, amount, id))
}

// SetPlayMoney overwrites the user's play money
func SetPlayMoney(ctx context.Context, id string, amount int64) (*User, error) {
	if amount < 0 {
		return nil, UserError("play money cannot be negative")
	}

	const query = `
UPDATE users
SET play_money = $1, updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2
RETURNING ` + userColumns

	return getUserByRow(db.Instance().QueryRowContext(ctx, query, amount, id))
}

// SetRole changes the role of a user
func SetRole(ctx context.Context, id string, role Role, adminID string) (*User, error) {
	if adminID != "" && id == adminID {
		return nil, ErrAdminRoleImmutable
	}

	if role != RolePlayer && role != RoleModerator {
		return nil, ErrInvalidRole
	}

	const query = `
UPDATE users
SET role = $1, updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2 AND role <> 'ADMIN'
RETURNING ` + userColumns

	user, err := getUserByRow(db.Instance().QueryRowContext(ctx, query, role, id))
	if err == ErrUserNotFound {
		if existing, getErr := GetUserByID(ctx, id); getErr == nil && existing.IsAdmin() {
			return nil, ErrAdminRoleImmutable
		}
	}

	return user, err
}

// Directory binds the user functions to the server's starting balance and admin
type Directory struct {
	StartingBalance int64
	AdminID         string
}

// UpsertUser creates or refreshes the user
func (d Directory) UpsertUser(ctx context.Context, id, name, photoURL string) (*User, error) {
	return UpsertUser(ctx, id, name, photoURL, d.StartingBalance, d.AdminID)
}

// GetUserByID returns the user with the id
func (Directory) GetUserByID(ctx context.Context, id string) (*User, error) {
	return GetUserByID(ctx, id)
}

// GetUsers returns a page of users
func (Directory) GetUsers(ctx context.Context, offset int64, limit int) ([]*User, error) {
	return GetUsers(ctx, offset, limit)
}

// Reward adds play money to the user
func (Directory) Reward(ctx context.Context, id string, amount int64) (*User, error) {
	return Reward(ctx, id, amount)
}

// SetRole changes the role of a user other than the admin
func (d Directory) SetRole(ctx context.Context, id string, role Role) (*User, error) {
	return SetRole(ctx, id, role, d.AdminID)
}
