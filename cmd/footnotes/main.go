// Command footnotes renders a markdown file through the footnote pipeline
// and prints the resulting markup, echoing any frontmatter it strips first.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/adrg/frontmatter"

	footnotes "github.com/goliatone/go-footnotes"
	"github.com/goliatone/go-footnotes/gmchunk"
	"github.com/goliatone/go-footnotes/internal/logging"
	"github.com/goliatone/go-footnotes/internal/logging/gologger"
)

func main() {
	opts := parseFlags()

	if err := opts.Validate(); err != nil {
		log.Fatalf("invalid options: %v", err)
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:  opts.LogLevel,
		Format: opts.LogFormat,
	})
	if err != nil {
		log.Fatalf("configure logging: %v", err)
	}
	logger := logging.ExtensionLogger(provider)

	data, err := os.ReadFile(opts.File)
	if err != nil {
		log.Fatalf("read markdown file: %v", err)
	}

	var meta map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		log.Fatalf("parse frontmatter: %v", err)
	}

	extOpts := []footnotes.Option{footnotes.WithLogger(logger)}
	if opts.RichFootnotes {
		extOpts = append(extOpts, footnotes.WithChunkParser(gmchunk.New()))
	}

	eng, err := footnotes.NewEngine(footnotes.Config{
		PlaceMarker:        opts.PlaceMarker,
		UniqueIDs:          opts.UniqueIDs,
		BacklinkText:       opts.BacklinkText,
		SuperscriptText:    opts.SuperscriptText,
		BacklinkTitle:      opts.BacklinkTitle,
		Separator:          opts.Separator,
		UseDefinitionOrder: opts.UseDefinitionOrder,
	}, extOpts...)
	if err != nil {
		log.Fatalf("configure engine: %v", err)
	}

	html, err := eng.Render(string(body))
	if err != nil {
		log.Fatalf("render markdown: %v", err)
	}

	if opts.ShowFrontmatter && len(meta) > 0 {
		encoded, err := json.MarshalIndent(meta, "", "  ")
		if err == nil {
			fmt.Fprintf(os.Stdout, "Frontmatter:\n%s\n\n", encoded)
		}
	}

	fmt.Fprintln(os.Stdout, html)
}

func parseFlags() options {
	var opts options

	flag.StringVar(&opts.File, "file", "", "Markdown file to render")
	flag.StringVar(&opts.PlaceMarker, "place-marker", footnotes.DefaultPlaceMarker, "Text marking where the footnote list goes")
	flag.BoolVar(&opts.UniqueIDs, "unique-ids", false, "Namespace anchor ids per render to avoid collisions")
	flag.StringVar(&opts.BacklinkText, "backlink-text", footnotes.DefaultBacklinkText, "Glyph linking from a footnote back to the reader's place")
	flag.StringVar(&opts.SuperscriptText, "superscript-text", footnotes.DefaultSuperscriptText, "Template for the visible reference label ({} is the number)")
	flag.StringVar(&opts.BacklinkTitle, "backlink-title", footnotes.DefaultBacklinkTitle, "Template for the back-link title attribute ({} is the number)")
	flag.StringVar(&opts.Separator, "separator", footnotes.DefaultSeparator, "Separator used inside generated anchor ids")
	flag.BoolVar(&opts.UseDefinitionOrder, "definition-order", false, "Order footnotes by definition instead of first reference")
	flag.BoolVar(&opts.RichFootnotes, "rich", false, "Render footnote bodies with goldmark (full markdown support; footnote references inside bodies stay literal)")
	flag.BoolVar(&opts.ShowFrontmatter, "show-frontmatter", true, "Echo stripped frontmatter before the rendered output")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (trace, debug, info, warn, error, fatal)")
	flag.StringVar(&opts.LogFormat, "log-format", "console", "Log format (console, json, pretty)")

	flag.Parse()
	return opts
}
