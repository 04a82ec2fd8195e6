// Package card projects a contact record into the business-card preview and
// renders it for the terminal.
package card

import (
	"fmt"
	"strings"

	"github.com/smileynet/cardsmith/internal/contact"
)

// Placeholders shown for empty fields.
const (
	PlaceholderName        = "Full Name"
	PlaceholderDesignation = "Designation"
	PlaceholderCompany     = "Company"
	PlaceholderPhone       = "Add Phone"
	PlaceholderEmail       = "Add Email"
)

// Mode is the preview color scheme.
type Mode int

const (
	Light Mode = iota
	Dark
)

// ParseMode accepts "light" or "dark".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	}
	return Light, fmt.Errorf("card: unknown mode %q", s)
}

func (m Mode) String() string {
	if m == Dark {
		return "dark"
	}
	return "light"
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// Social is one icon link in the card footer.
type Social struct {
	Key    contact.SocialKey
	Label  string // first two letters of the key, capitalized
	Handle string
	URL    string
}

// View is everything the preview shows, already defaulted.
type View struct {
	Name         string
	Headline     string
	Tagline      string
	Phone        string
	Email        string
	Website      string
	WebsiteURL   string
	Socials      []Social
	Accent       string
	Mode         Mode
	ProfileImage string
}

// ShowVisitSite reports whether the website link is shown.
func (v View) ShowVisitSite() bool { return v.Website != "" }

// Project derives the preview for r. It is pure and never fails.
func Project(r contact.Record, mode Mode) View {
	v := View{
		Name:         or(r.FullName, PlaceholderName),
		Headline:     or(r.Designation, PlaceholderDesignation) + " @ " + or(r.Company, PlaceholderCompany),
		Tagline:      r.Tagline,
		Phone:        or(r.Phone, PlaceholderPhone),
		Email:        or(r.Email, PlaceholderEmail),
		Website:      r.Socials.Website,
		Accent:       contact.ResolveThemeColor(r.ThemeColor),
		Mode:         mode,
		ProfileImage: r.ProfileImage,
	}
	if v.Website != "" {
		v.WebsiteURL = "https://" + v.Website
	}
	for _, key := range contact.SocialKeys() {
		if key == contact.SocialWebsite {
			continue
		}
		handle, _ := r.Socials.Get(key)
		if handle == "" {
			continue
		}
		v.Socials = append(v.Socials, Social{
			Key:    key,
			Label:  strings.ToUpper(string(key[:1])) + string(key[1:2]),
			Handle: handle,
			URL:    "https://" + handle,
		})
	}
	return v
}

func or(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}
