package main

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// options holds the parsed command line for the preview tool.
type options struct {
	File               string
	PlaceMarker        string
	UniqueIDs          bool
	BacklinkText       string
	SuperscriptText    string
	BacklinkTitle      string
	Separator          string
	UseDefinitionOrder bool
	RichFootnotes      bool
	ShowFrontmatter    bool
	LogLevel           string
	LogFormat          string
}

// Validate ensures required inputs are present before the tool runs.
func (o options) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.File, validation.Required, validation.By(func(value any) error {
			s, _ := value.(string)
			if strings.TrimSpace(s) == "" {
				return validation.NewError("footnotes.preview.file_required", "-file is required")
			}
			return nil
		})),
	)
}
