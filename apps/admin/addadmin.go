package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/pulseportal/pulse/core"
	"github.com/pulseportal/pulse/core/user"
)

// addAdmin creates an admin account with the given email.
func (cli *commandLine) addAdmin(email, pwd string) error {
	ctx := context.Background()
	email = core.CleanString(email, true /* lower */)

	if _, err := cli.usrRepo.GetUserByEmail(ctx, email); err == nil {
		return user.ErrEmailExists
	} else if errors.Cause(err) != user.ErrNotFound {
		return err
	}

	now := time.Now().UTC()
	usr := user.User{
		ID:        uuid.New().String(),
		Name:      "Admin",
		Email:     email,
		Role:      user.RoleAdmin,
		JoinDate:  now.Format("2006-01-02"),
		Rank:      1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	_, err := cli.usrRepo.CreateUser(ctx, usr)
	return err
}
