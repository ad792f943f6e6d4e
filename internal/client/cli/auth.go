package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/retailmedia/internal/client/profilestore"
	"github.com/dmitrijs2005/retailmedia/internal/client/services"
	"github.com/dmitrijs2005/retailmedia/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) readPassword(prompt string) (string, error) {
	pw, err := getPassword(prompt, os.Stdout)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// Register runs the two-step sign-up: the form, then the emailed code.
func (a *App) Register(ctx context.Context) error {
	var form services.RegistrationForm
	var err error

	prompts := []struct {
		dst    *string
		prompt string
	}{
		{&form.Email, "Enter email"},
		{&form.FirstName, "Enter first name"},
		{&form.LastName, "Enter last name"},
		{&form.Role, "Enter role (e.g. Student, Marketer)"},
	}
	for _, p := range prompts {
		if *p.dst, err = getSimpleText(a.reader, p.prompt, os.Stdout); err != nil {
			return err
		}
	}
	if form.Password, err = a.readPassword("Enter password"); err != nil {
		return err
	}
	if form.ConfirmPassword, err = a.readPassword("Confirm password"); err != nil {
		return err
	}

	pending, err := a.accounts.BeginRegistration(ctx, form)
	if err != nil {
		return err
	}
	if code := pending.SimulatedOTP(); code != "" {
		printlnFn("Email delivery is simulated. Your verification code is", code)
	}

	otp, err := getSimpleText(a.reader, fmt.Sprintf("Enter the verification code sent to %s", form.Email), os.Stdout)
	if err != nil {
		return err
	}
	if err := a.accounts.CompleteRegistration(ctx, pending, otp); err != nil {
		return err
	}

	printlnFn("Account created. You can login now.")
	return nil
}

// Login signs in with an email or a linked phone number and starts the
// activity tracker for the session.
func (a *App) Login(ctx context.Context) error {
	identifier, err := getSimpleText(a.reader, "Enter email or phone number", os.Stdout)
	if err != nil {
		return err
	}
	password, err := a.readPassword("Enter password")
	if err != nil {
		return err
	}

	session, err := a.accounts.Login(ctx, identifier, password)
	if err != nil {
		if errors.Is(err, common.ErrNoPasswordSet) {
			printlnFn(profilestore.MsgNoPasswordSet)
		}
		return err
	}

	if a.tracker != nil {
		a.tracker.Stop()
	}
	a.session = session
	_ = a.accounts.SyncSession(ctx, session)

	if sent, err := a.accounts.TriggerWelcomeEmail(ctx, session); err != nil {
		a.logger.Warn(ctx, "welcome email", "error", err)
	} else if sent {
		printlnFn("A welcome email is on its way to", session.User.Email)
	}

	if a.tracker != nil {
		a.tracker.Start(ctx, session.User.Email)
	}

	name := session.User.Name
	if name == "" {
		name = session.User.Email
	}
	printlnFn("Welcome,", name)
	return nil
}

// Logout stops activity tracking and forgets the session.
func (a *App) Logout(ctx context.Context) error {
	if a.tracker != nil {
		a.tracker.Stop()
	}
	a.session = nil
	printlnFn("Logged out")
	return nil
}

// Forgot asks the server to email a password reset link.
func (a *App) Forgot(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter your account email", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.accounts.RequestPasswordReset(ctx, email); err != nil {
		return err
	}
	printlnFn("Check your inbox for a reset link.")
	return nil
}

// Reset sets a new password. The account is taken from a reset link given
// as argument, or asked for.
func (a *App) Reset(ctx context.Context, args []string) error {
	target := ""
	if len(args) > 0 {
		target = args[0]
	} else {
		var err error
		if target, err = getSimpleText(a.reader, "Paste the reset link or enter your email", os.Stdout); err != nil {
			return err
		}
	}

	email := target
	if strings.Contains(target, "://") || strings.Contains(target, "?") {
		var err error
		if email, err = services.ParseResetLink(target); err != nil {
			return err
		}
	}

	password, err := a.readPassword("Enter new password")
	if err != nil {
		return err
	}
	confirm, err := a.readPassword("Confirm new password")
	if err != nil {
		return err
	}

	if err := a.accounts.ResetPassword(ctx, email, password, confirm); err != nil {
		return err
	}
	printlnFn("Password updated. You can login now.")
	return nil
}
