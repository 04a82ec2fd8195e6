package editor

import (
	"strings"

	"github.com/smileynet/cardsmith/internal/contact"
)

var fieldLabels = map[string]string{
	contact.FieldFullName:     "Full name",
	contact.FieldDesignation:  "Designation",
	contact.FieldCompany:      "Company",
	contact.FieldThemeColor:   "Theme color",
	contact.FieldTagline:      "Tagline",
	contact.FieldEmail:        "Email",
	contact.FieldPhone:        "Phone",
	contact.FieldProfileImage: "Photo URL",
}

var socialLabels = map[contact.SocialKey]string{
	contact.SocialLinkedIn:  "LinkedIn",
	contact.SocialGitHub:    "GitHub",
	contact.SocialTwitter:   "Twitter",
	contact.SocialInstagram: "Instagram",
	contact.SocialWebsite:   "Website",
}

// fieldLabel returns the form label for a field name.
func fieldLabel(name string) string {
	if key, ok := strings.CutPrefix(name, contact.SocialPrefix); ok {
		if l, ok := socialLabels[contact.SocialKey(key)]; ok {
			return l
		}
	}
	if l, ok := fieldLabels[name]; ok {
		return l
	}
	return name
}
