package footnotes

import (
	"strings"

	"github.com/goliatone/go-footnotes/pkg/interfaces"
)

// sentinelPostprocessor rewrites the private sentinel tokens embedded during
// tree construction into the configured back-link glyph and a literal
// non-breaking-space entity. It runs over the serialized document text.
type sentinelPostprocessor struct {
	cfg Config
}

var _ interfaces.TextPostprocessor = sentinelPostprocessor{}

func (s sentinelPostprocessor) PostProcess(text string) string {
	text = strings.ReplaceAll(text, backlinkSentinel, s.cfg.BacklinkText)
	return strings.ReplaceAll(text, nbspSentinel, "&#160;")
}
