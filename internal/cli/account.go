package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/creationhub/internal/common"
	"github.com/dmitrijs2005/creationhub/internal/input"
	"github.com/dmitrijs2005/creationhub/internal/models"
)

func (a *App) signUp(ctx context.Context, _ []string) error {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	role, err := GetSimpleText(a.reader, "Account type (regular, anonymous, admin) [regular]", a.out)
	if err != nil {
		return err
	}
	if role == "" {
		role = string(models.RoleRegular)
	}

	form := input.SignUpForm{
		Username: username,
		Email:    email,
		Password: string(password),
		Role:     models.Role(strings.ToLower(role)),
	}
	if err := form.Validate(); err != nil {
		return err
	}

	if _, err := a.sess.SignUp(ctx, form.Registration()); err != nil {
		return err
	}
	a.say("Registered %s. You can log in now.", username)
	return nil
}

func (a *App) trial(ctx context.Context, args []string) error {
	username, err := a.arg(args, 0, "Enter username")
	if err != nil {
		return err
	}

	form := input.TrialForm{Username: username}
	if err := form.Validate(); err != nil {
		return err
	}

	if _, err := a.sess.StartTrial(ctx, form.Username); err != nil {
		return err
	}
	a.say("Trial started. Welcome, %s! This account cannot log in again once you log out.", username)
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	username, err := a.arg(args, 0, "Enter username")
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.sess.Login(ctx, username, string(password)); err != nil {
		return err
	}
	a.say("Welcome, %s!", username)
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if err := a.sess.Logout(ctx); err != nil {
		return err
	}
	a.say("Logged out.")
	return nil
}

func (a *App) recoverPassword(ctx context.Context, args []string) error {
	email, err := a.arg(args, 0, "Enter email")
	if err != nil {
		return err
	}

	temp, err := a.sess.RecoverPassword(ctx, email)
	if err != nil {
		return err
	}
	a.say("Temporary password: %s", temp)
	a.say("It works until you log out or change your password.")
	return nil
}

// profile shows the logged-in user's username and account type.
func (a *App) profile(_ context.Context, _ []string) error {
	uid, err := a.currentUser()
	if err != nil {
		return err
	}
	u, err := a.users.Get(uid)
	if err != nil {
		return err
	}

	a.say("Username: %s", u.Username)
	a.say("Type: %s", u.Role)
	if u.Credentials != nil {
		a.say("Email: %s", u.Credentials.Email)
	}
	return nil
}

func (a *App) changePassword(ctx context.Context, _ []string) error {
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.sess.ChangePassword(ctx, string(password)); err != nil {
		return err
	}
	a.say("Password changed.")
	return nil
}

func (a *App) ban(ctx context.Context, args []string) error {
	username, err := a.arg(args, 0, "Enter username to ban")
	if err != nil {
		return err
	}
	raw, err := a.arg(args, 1, "Enter number of days")
	if err != nil {
		return err
	}
	days, err := input.ParseDays(raw)
	if err != nil {
		return err
	}

	if err := a.sess.Ban(ctx, username, days); err != nil {
		return err
	}
	a.say("%s banned for %d days.", username, days)
	return nil
}
