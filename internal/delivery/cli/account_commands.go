package cli

import (
	"context"
	"flag"
	"fmt"
	"time"

	"sweetshop/internal/usecase"
	"sweetshop/internal/util"

	"github.com/pkg/errors"
)

func (a *App) runRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	name := fs.String("name", "", "Full name")
	email := fs.String("email", "", "Email address")
	password := fs.String("password", "", "Password (min 6 characters)")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse register flags")
	}

	if err := a.auth.Register(ctx, usecase.RegisterInput{
		FullName: *name,
		Email:    *email,
		Password: *password,
	}); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Account %s registered. Sign in with 'sweetshop login'.\n", *email)

	return nil
}

func (a *App) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "Email address")
	password := fs.String("password", "", "Password")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse login flags")
	}

	user, err := a.auth.Login(ctx, usecase.LoginInput{
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Signed in as %s.\n", user.Email)
	if user.IsAdmin() {
		fmt.Fprintln(a.out, "Admin commands are available under 'sweetshop admin'.")
	}

	return nil
}

func (a *App) runLogout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Signed out.")

	return nil
}

func (a *App) runWhoami() error {
	if !a.auth.IsAuthenticated() {
		fmt.Fprintln(a.out, "Not signed in.")

		return nil
	}

	if user := a.auth.CurrentUser(); user != nil {
		a.renderUser(user)
	}

	if claims, err := a.auth.SessionClaims(); err == nil && !claims.ExpiresAt.IsZero() {
		switch {
		case claims.ExpiresWithin(0):
			fmt.Fprintf(a.out, "  Session expired %s\n", shortDate(claims.ExpiresAt))
		case claims.ExpiresWithin(5 * time.Minute):
			fmt.Fprintf(a.out, "  Session expires %s (in %s), sign in again soon\n",
				shortDate(claims.ExpiresAt), util.FormatDuration(time.Until(claims.ExpiresAt)))
		default:
			fmt.Fprintf(a.out, "  Session expires %s (in %s)\n",
				shortDate(claims.ExpiresAt), util.FormatDuration(time.Until(claims.ExpiresAt)))
		}
	}

	return nil
}

func (a *App) runProfile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	name := fs.String("name", "", "New display name")
	phone := fs.String("phone", "", "New contact phone")
	address := fs.String("address", "", "New shipping address")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse profile flags")
	}

	// No flags: show the profile.
	if *name == "" && *phone == "" && *address == "" {
		user, err := a.auth.Profile(ctx)
		if err != nil {
			return err
		}
		a.renderUser(user)

		return nil
	}

	input := usecase.UpdateProfileInput{Name: *name}
	if input.Name == "" {
		if current := a.auth.CurrentUser(); current != nil {
			input.Name = current.FullName
		}
	}
	if *phone != "" {
		input.Phone = phone
	}
	if *address != "" {
		input.Address = address
	}

	user, err := a.auth.UpdateProfile(ctx, input)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Profile updated.")
	a.renderUser(user)

	return nil
}
