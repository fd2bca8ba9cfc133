package footnotes

import (
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Default configuration values, matching the conventional footnote markup
// other markdown toolchains emit.
const (
	DefaultPlaceMarker     = "///Footnotes Go Here///"
	DefaultBacklinkText    = "&#8617;"
	DefaultSuperscriptText = "{}"
	DefaultBacklinkTitle   = "Jump back to footnote {} in the text"
	DefaultSeparator       = ":"
)

// Config is the footnote extension's configuration surface.
type Config struct {
	// PlaceMarker is the text string that marks where the footnote list goes.
	PlaceMarker string
	// UniqueIDs namespaces anchor ids per render so repeated renders in one
	// process never collide.
	UniqueIDs bool
	// BacklinkText is the glyph linking from the footnote back to the
	// reader's place.
	BacklinkText string
	// SuperscriptText is the template for the visible reference label; `{}`
	// is replaced with the render number.
	SuperscriptText string
	// BacklinkTitle is the template for the back-link title attribute; `{}`
	// is replaced with the render number. The legacy `%d` placeholder is
	// accepted and normalized.
	BacklinkTitle string
	// Separator is the string joining the namespace token, session prefix,
	// and user label inside generated anchor ids.
	Separator string
	// UseDefinitionOrder numbers and orders footnotes by definition position
	// instead of first-reference position.
	UseDefinitionOrder bool
}

// DefaultConfig returns the configuration used when callers supply nothing.
func DefaultConfig() Config {
	return Config{
		PlaceMarker:     DefaultPlaceMarker,
		BacklinkText:    DefaultBacklinkText,
		SuperscriptText: DefaultSuperscriptText,
		BacklinkTitle:   DefaultBacklinkTitle,
		Separator:       DefaultSeparator,
	}
}

// normalized fills zero-value fields with defaults and converts the legacy
// `%d` title placeholder to `{}`.
func (c Config) normalized() Config {
	defaults := DefaultConfig()
	if c.PlaceMarker == "" {
		c.PlaceMarker = defaults.PlaceMarker
	}
	if c.BacklinkText == "" {
		c.BacklinkText = defaults.BacklinkText
	}
	if c.SuperscriptText == "" {
		c.SuperscriptText = defaults.SuperscriptText
	}
	if c.BacklinkTitle == "" {
		c.BacklinkTitle = defaults.BacklinkTitle
	}
	if c.Separator == "" {
		c.Separator = defaults.Separator
	}
	c.BacklinkTitle = strings.ReplaceAll(c.BacklinkTitle, "%d", "{}")
	return c
}

// Validate ensures explicitly supplied values are usable. Zero values are
// filled with defaults before validation runs, so only whitespace-only
// settings fail.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.PlaceMarker, validation.Required, validation.By(notBlank("place_marker"))),
		validation.Field(&c.Separator, validation.Required, validation.By(notBlank("separator"))),
	)
}

func notBlank(name string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return validation.NewError("footnotes.config."+name, name+" must not be blank")
		}
		return nil
	}
}

// formatTemplate substitutes the render number into a `{}` template.
func formatTemplate(template string, number int) string {
	return strings.ReplaceAll(template, "{}", strconv.Itoa(number))
}
