package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/retailmedia/internal/client/models"
)

// Profile prints the stored profile. "profile edit" reads name=value lines
// for name, image, role and phone.
func (a *App) Profile(ctx context.Context, args []string) error {
	email := a.email()

	if len(args) > 0 && args[0] == "edit" {
		fields, err := GetFields(a.reader, "Edit profile (name, image, role, phone)", os.Stdout)
		if err != nil {
			return err
		}
		update := profileUpdate(fields)
		if err := a.store.SaveUserProfile(ctx, email, update); err != nil {
			return err
		}
		printlnFn("Profile saved")
		return nil
	}

	p, err := a.store.GetUserProfile(ctx, email)
	if err != nil {
		return err
	}
	if p == nil {
		printlnFn("No profile stored for", email)
		return nil
	}
	printlnFn(fmt.Sprintf("Name:  %s\nEmail: %s\nRole:  %s\nPhone: %s\nTheme: %s", p.Name, p.Email, p.Role, p.PhoneNumber, p.Theme))
	return nil
}

func profileUpdate(fields map[string]string) models.ProfileUpdate {
	var u models.ProfileUpdate
	for name, value := range fields {
		switch name {
		case "name":
			u.Name = models.String(value)
		case "image":
			u.Image = models.String(value)
		case "role":
			u.Role = models.String(value)
		case "phone", "phonenumber":
			u.PhoneNumber = models.String(value)
		}
	}
	return u
}

// Theme prints the current theme or stores a new one.
func (a *App) Theme(ctx context.Context, args []string) error {
	email := a.email()

	if len(args) == 0 {
		theme, err := a.store.Theme(ctx, email)
		if err != nil {
			return err
		}
		printlnFn("Theme:", theme)
		return nil
	}

	theme := models.Theme(args[0])
	if !theme.Valid() {
		return fmt.Errorf("unknown theme %q (light, dark, dynamic)", args[0])
	}
	if err := a.store.SaveUserProfile(ctx, email, models.ProfileUpdate{Theme: &theme}); err != nil {
		return err
	}
	printlnFn("Theme set to", theme)
	return nil
}
