package contact

import (
	"errors"
	"fmt"
	"strings"
)

// Field names accepted by SetField and Field. Social entries are addressed
// as SocialPrefix + key, e.g. "socials.github".
const (
	FieldFullName     = "fullName"
	FieldDesignation  = "designation"
	FieldCompany      = "company"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldTagline      = "tagline"
	FieldProfileImage = "profileImage"
	FieldThemeColor   = "themeColor"

	SocialPrefix = "socials."
)

// ErrUnknownField indicates a field name outside the record's schema.
var ErrUnknownField = errors.New("contact: unknown field")

// FieldNames returns every editable field name in form order,
// socials last.
func FieldNames() []string {
	names := []string{
		FieldFullName,
		FieldDesignation,
		FieldCompany,
		FieldThemeColor,
		FieldTagline,
		FieldEmail,
		FieldPhone,
		FieldProfileImage,
	}
	for _, k := range SocialKeys() {
		names = append(names, SocialField(k))
	}
	return names
}

// SocialField returns the dotted field name for a social key.
func SocialField(key SocialKey) string {
	return SocialPrefix + string(key)
}

// SetField returns a copy of r with the named field replaced by value.
// Only the named field changes. No format checks are applied; themeColor is
// free text on this path.
func SetField(r Record, name, value string) (Record, error) {
	if key, ok := strings.CutPrefix(name, SocialPrefix); ok {
		socials, ok := r.Socials.With(SocialKey(key), value)
		if !ok {
			return r, fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
		r.Socials = socials
		return r, nil
	}

	switch name {
	case FieldFullName:
		r.FullName = value
	case FieldDesignation:
		r.Designation = value
	case FieldCompany:
		r.Company = value
	case FieldEmail:
		r.Email = value
	case FieldPhone:
		r.Phone = value
	case FieldTagline:
		r.Tagline = value
	case FieldProfileImage:
		r.ProfileImage = value
	case FieldThemeColor:
		r.ThemeColor = value
	default:
		return r, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return r, nil
}

// Field returns the value of the named field.
func Field(r Record, name string) (string, error) {
	if key, ok := strings.CutPrefix(name, SocialPrefix); ok {
		v, ok := r.Socials.Get(SocialKey(key))
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
		return v, nil
	}

	switch name {
	case FieldFullName:
		return r.FullName, nil
	case FieldDesignation:
		return r.Designation, nil
	case FieldCompany:
		return r.Company, nil
	case FieldEmail:
		return r.Email, nil
	case FieldPhone:
		return r.Phone, nil
	case FieldTagline:
		return r.Tagline, nil
	case FieldProfileImage:
		return r.ProfileImage, nil
	case FieldThemeColor:
		return r.ThemeColor, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}
