package model

import (
	"context"

	"holdem-server/pkg/db"
)

// BuyIn moves chips from the user's play money to their stack in the room
func BuyIn(ctx context.Context, id, roomID string, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	const query = `
WITH debited AS (
    UPDATE users
    SET play_money = play_money - $1::BIGINT,
        updated = (NOW() AT TIME ZONE 'utc')
    WHERE id = $2 AND play_money >= $1::BIGINT
    RETURNING id
)
INSERT INTO table_stacks (user_id, room_id, stack)
SELECT id, $3, $1::BIGINT FROM debited
ON CONFLICT (user_id, room_id) DO UPDATE
SET stack = table_stacks.stack + EXCLUDED.stack,
    updated = (NOW() AT TIME ZONE 'utc')`

	res, err := db.Instance().ExecContext(ctx, query, amount, id, roomID)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := GetUserByID(ctx, id); err != nil {
			return err
		}

		return ErrInsufficientFunds
	}

	return nil
}

// SetTableStack records the chips the user currently has in the room
// Stacks that were already cashed out are left alone, so a late write cannot resurrect one
func SetTableStack(ctx context.Context, id, roomID string, stack int64) error {
	if stack < 0 {
		return UserError("stack cannot be negative")
	}

	const query = `
UPDATE table_stacks
SET stack = $1, updated = (NOW() AT TIME ZONE 'utc')
WHERE user_id = $2 AND room_id = $3`

	_, err := db.Instance().ExecContext(ctx, query, stack, id, roomID)
	return err
}

// CashOut returns the user's final stack in the room to their play money
func CashOut(ctx context.Context, id, roomID string, stack int64) error {
	if stack < 0 {
		return UserError("stack cannot be negative")
	}

	const query = `
WITH removed AS (
    DELETE FROM table_stacks
    WHERE user_id = $2 AND room_id = $3
)
UPDATE users
SET play_money = play_money + $1,
    updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2`

	return execOne(ctx, query, stack, id, roomID)
}

// GetTableStack returns the recorded stack of the user in the room
func GetTableStack(ctx context.Context, id, roomID string) (int64, error) {
	const query = `
SELECT COALESCE((SELECT stack FROM table_stacks WHERE user_id = $1 AND room_id = $2), 0)`

	var stack int64
	err := db.Instance().QueryRowContext(ctx, query, id, roomID).Scan(&stack)
	return stack, err
}

// ReturnTableStacks moves every recorded table stack back to play money
// Used at startup, when no table is running. It returns the number of users credited
func ReturnTableStacks(ctx context.Context) (int64, error) {
	const query = `
WITH returned AS (
    DELETE FROM table_stacks
    RETURNING user_id, stack
)
UPDATE users
SET play_money = users.play_money + r.total,
    updated = (NOW() AT TIME ZONE 'utc')
FROM (SELECT user_id, SUM(stack)::BIGINT AS total FROM returned GROUP BY user_id) r
WHERE users.id = r.user_id`

	res, err := db.Instance().ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

func execOne(ctx context.Context, query string, args ...interface{}) error {
	res, err := db.Instance().ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Wallet adapts the user balance functions for a table room
type Wallet struct{}

// BuyIn debits the play money for a seat at the table
func (Wallet) BuyIn(ctx context.Context, roomID, id string, amount int) error {
	return BuyIn(ctx, id, roomID, int64(amount))
}

// SetTableStack records the stack after a hand settles
func (Wallet) SetTableStack(ctx context.Context, roomID, id string, stack int) error {
	return SetTableStack(ctx, id, roomID, int64(stack))
}

// CashOut credits the final stack when the user leaves
func (Wallet) CashOut(ctx context.Context, roomID, id string, stack int) error {
	return CashOut(ctx, id, roomID, int64(stack))
}
