// Package contact defines the contact record held for one card and the
// rules for editing, normalizing and checking it.
package contact

// Record is the canonical data for one person's card.
// Records are values: edits produce a new Record and never touch the old one.
type Record struct {
	FullName     string  `yaml:"fullName" json:"fullName" validate:"required"`
	Designation  string  `yaml:"designation" json:"designation"`
	Company      string  `yaml:"company" json:"company"`
	Email        string  `yaml:"email" json:"email" validate:"omitempty,email"`
	Phone        string  `yaml:"phone" json:"phone"`
	Tagline      string  `yaml:"tagline" json:"tagline"`
	ProfileImage string  `yaml:"profileImage" json:"profileImage" validate:"omitempty,uri"`
	ThemeColor   string  `yaml:"themeColor" json:"themeColor" validate:"omitempty,hex6"`
	Socials      Socials `yaml:"socials" json:"socials"`
}

// Socials holds the closed set of social profile links.
// Values are domain+path without a scheme, e.g. "github.com/alex".
type Socials struct {
	LinkedIn  string `yaml:"linkedin" json:"linkedin"`
	GitHub    string `yaml:"github" json:"github"`
	Twitter   string `yaml:"twitter" json:"twitter"`
	Instagram string `yaml:"instagram" json:"instagram"`
	Website   string `yaml:"website" json:"website"`
}

// SocialKey names one entry of Socials.
type SocialKey string

const (
	SocialLinkedIn  SocialKey = "linkedin"
	SocialGitHub    SocialKey = "github"
	SocialTwitter   SocialKey = "twitter"
	SocialInstagram SocialKey = "instagram"
	SocialWebsite   SocialKey = "website"
)

// SocialKeys returns every social key in display order.
func SocialKeys() []SocialKey {
	return []SocialKey{SocialLinkedIn, SocialGitHub, SocialTwitter, SocialInstagram, SocialWebsite}
}

// Get returns the value stored for key. ok is false for keys outside the set.
func (s Socials) Get(key SocialKey) (value string, ok bool) {
	switch key {
	case SocialLinkedIn:
		return s.LinkedIn, true
	case SocialGitHub:
		return s.GitHub, true
	case SocialTwitter:
		return s.Twitter, true
	case SocialInstagram:
		return s.Instagram, true
	case SocialWebsite:
		return s.Website, true
	}
	return "", false
}

// With returns a copy of s with key set to value. ok is false, and s is
// returned unchanged, for keys outside the set.
func (s Socials) With(key SocialKey, value string) (Socials, bool) {
	switch key {
	case SocialLinkedIn:
		s.LinkedIn = value
	case SocialGitHub:
		s.GitHub = value
	case SocialTwitter:
		s.Twitter = value
	case SocialInstagram:
		s.Instagram = value
	case SocialWebsite:
		s.Website = value
	default:
		return s, false
	}
	return s, true
}

// DefaultThemeColor is the fallback accent color.
const DefaultThemeColor = "#3b82f6"

// DefaultProfileImage is the placeholder portrait URI.
const DefaultProfileImage = "https://picsum.photos/400/400?random=1"

// Default returns the sample record every session starts from.
func Default() Record {
	return Record{
		FullName:     "Alex Sterling",
		Designation:  "Principal UI/UX Designer",
		Company:      "Visionary Tech Solutions",
		Email:        "alex.sterling@example.com",
		Phone:        "+1 (555) 0123-456",
		Tagline:      "Designing the future, one pixel at a time.",
		ProfileImage: DefaultProfileImage,
		ThemeColor:   DefaultThemeColor,
		Socials: Socials{
			LinkedIn:  "linkedin.com/in/alexsterling",
			GitHub:    "github.com/alexsterling",
			Twitter:   "twitter.com/alex_ux",
			Instagram: "instagram.com/alex_designs",
			Website:   "alexsterling.design",
		},
	}
}
