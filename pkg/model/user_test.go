package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetRole_validation(t *testing.T) {
	a := assert.New(t)

	u, err := SetRole(cbg, "42", RoleModerator, "42")
	a.Equal(ErrAdminRoleImmutable, err)
	a.Nil(u)

	u, err = SetRole(cbg, "43", RoleAdmin, "42")
	a.Equal(ErrInvalidRole, err)
	a.Nil(u)

	_, err = SetRole(cbg, "43", Role("OWNER"), "42")
	a.Equal(ErrInvalidRole, err)
}

func TestReward_validation(t *testing.T) {
	_, err := Reward(cbg, "1", 0)
	assert.Equal(t, ErrInvalidAmount, err)

	_, err = Reward(cbg, "1", -5)
	assert.Equal(t, ErrInvalidAmount, err)

	assert.Equal(t, ErrInvalidAmount, BuyIn(cbg, "1", "lobby", 0))
}

func TestUpsertUser(t *testing.T) {
	requireDB(t)
	a := assert.New(t)

	id := uuid.New().String()
	u, err := UpsertUser(cbg, id, "Ada", "https://example.com/a.png", 10000, "")
	require.NoError(t, err)
	a.Equal("Ada", u.Name)
	a.Equal(int64(10000), u.PlayMoney)
	a.Equal(RolePlayer, u.Role)

	// the balance is only granted once
	u, err = UpsertUser(cbg, id, "Ada L", "", 10000, "")
	require.NoError(t, err)
	a.Equal("Ada L", u.Name)
	a.Equal(int64(10000), u.PlayMoney)

	found, err := GetUserByID(cbg, id)
	require.NoError(t, err)
	a.Equal(u.Name, found.Name)

	_, err = GetUserByID(cbg, uuid.New().String())
	a.Equal(ErrUserNotFound, err)
}

func TestUpsertUser_admin(t *testing.T) {
	requireDB(t)
	a := assert.New(t)

	id := uuid.New().String()
	u, err := UpsertUser(cbg, id, "Admin", "", 0, id)
	require.NoError(t, err)
	a.True(u.IsAdmin())

	_, err = SetRole(cbg, id, RolePlayer, "")
	a.Equal(ErrAdminRoleImmutable, err)
}

func TestRewardAndSetRole(t *testing.T) {
	requireDB(t)
	a := assert.New(t)

	u := user(t, 100)
	u, err := Reward(cbg, u.ID, 50)
	require.NoError(t, err)
	a.Equal(int64(150), u.PlayMoney)

	u, err = SetRole(cbg, u.ID, RoleModerator, "")
	require.NoError(t, err)
	a.Equal(RoleModerator, u.Role)

	u, err = SetPlayMoney(cbg, u.ID, 7)
	require.NoError(t, err)
	a.Equal(int64(7), u.PlayMoney)

	_, err = Reward(cbg, uuid.New().String(), 10)
	a.Equal(ErrUserNotFound, err)
}

func TestGetUsers(t *testing.T) {
	requireDB(t)

	user(t, 0)
	users, err := GetUsers(cbg, 0, 1)
	assert.NoError(t, err)
	assert.Len(t, users, 1)
}
