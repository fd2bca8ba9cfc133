package footnotes

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// anchorKind distinguishes the two anchor families generated for every
// footnote label: the list-item anchor a reference points at, and the
// back-reference anchor a footnote's back-link points at.
type anchorKind int

const (
	anchorDefinition anchorKind = iota
	anchorReference
)

func (k anchorKind) token() string {
	if k == anchorReference {
		return "fnref"
	}
	return "fn"
}

// refIDPattern recognizes an already-disambiguated back-reference token, i.e.
// the fixed token with a numeric suffix directly attached ("fnref2"). Raw
// string matching here can mis-parse user labels, but the behavior is kept as
// observed; tests pin it down.
var refIDPattern = regexp.MustCompile(`^(fnref)(\d+)`)

// Store holds all per-document footnote state: definitions in definition
// order, the first-reference order list, the set of back-reference anchors
// already emitted, and the duplicate-reference counters. It has no behavior
// beyond bookkeeping and anchor-id generation and is not safe for concurrent
// use; one store belongs to exactly one in-flight render.
type Store struct {
	separator string
	uniqueIDs bool

	defs      map[string]string
	defOrder  []string
	refOrder  []string
	usedRefs  map[string]struct{}
	foundRefs map[string]int
	prefix    int
}

// NewStore returns an empty store. The session prefix starts at zero and is
// bumped by the first Reset, so the first render runs with prefix 1.
func NewStore(separator string, uniqueIDs bool) *Store {
	if separator == "" {
		separator = DefaultSeparator
	}
	return &Store{
		separator: separator,
		uniqueIDs: uniqueIDs,
		defs:      map[string]string{},
		usedRefs:  map[string]struct{}{},
		foundRefs: map[string]int{},
	}
}

// Reset clears every per-document structure and bumps the session prefix.
// It must run exactly once between independent documents.
func (s *Store) Reset() {
	s.defs = map[string]string{}
	s.defOrder = nil
	s.refOrder = nil
	s.usedRefs = map[string]struct{}{}
	s.foundRefs = map[string]int{}
	s.prefix++
}

// SetDefinition upserts a footnote definition. Redefining an id overwrites
// the text but keeps the id's original position in definition order.
func (s *Store) SetDefinition(id, text string) {
	if _, ok := s.defs[id]; !ok {
		s.defOrder = append(s.defOrder, id)
	}
	s.defs[id] = text
}

// Definition returns the stored text for id.
func (s *Store) Definition(id string) (string, bool) {
	text, ok := s.defs[id]
	return text, ok
}

// HasDefinitions reports whether any definition was stored this render.
func (s *Store) HasDefinitions() bool {
	return len(s.defOrder) > 0
}

// DefinitionOrder returns definition ids in insertion order.
func (s *Store) DefinitionOrder() []string {
	return s.defOrder
}

// AddReferenceOrder appends id to the first-reference order list. Repeat
// references are ignored.
func (s *Store) AddReferenceOrder(id string) {
	if !slices.Contains(s.refOrder, id) {
		s.refOrder = append(s.refOrder, id)
	}
}

// ReferenceOrder returns ids in the order their first reference appeared.
func (s *Store) ReferenceOrder() []string {
	return s.refOrder
}

// ReferencedDefinitions returns definition ids in definition order, keeping
// only ids at least one inline reference resolved. Unreferenced definitions
// occupy no render or numbering slot.
func (s *Store) ReferencedDefinitions() []string {
	referenced := make(map[string]bool, len(s.refOrder))
	for _, id := range s.refOrder {
		referenced[id] = true
	}

	var ids []string
	for _, id := range s.defOrder {
		if referenced[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// Separator returns the configured anchor-id separator.
func (s *Store) Separator() string {
	return s.separator
}

// FoundRefs returns how many inline references resolved to the given
// back-reference anchor id (the original, non-disambiguated one).
func (s *Store) FoundRefs(anchor string) int {
	return s.foundRefs[anchor]
}

// DefinitionAnchor returns the anchor id of the footnote list item for label.
func (s *Store) DefinitionAnchor(label string) string {
	return s.anchor(anchorDefinition, label)
}

// ReferenceAnchor returns the back-reference anchor id for label. With found
// set, the id is registered as emitted and disambiguated against earlier
// occurrences, and the duplicate counter for the original id is bumped;
// without it the raw id is returned untouched (how back-links address the
// first occurrence).
func (s *Store) ReferenceAnchor(label string, found bool) string {
	return s.uniqueRef(s.anchor(anchorReference, label), found)
}

func (s *Store) anchor(kind anchorKind, label string) string {
	if s.uniqueIDs {
		return kind.token() + s.separator + strconv.Itoa(s.prefix) + "-" + label
	}
	return kind.token() + s.separator + label
}

// uniqueRef disambiguates a back-reference anchor that was already emitted in
// this render by incrementing a numeric suffix attached to the fixed token,
// or appending "2" when none exists yet: fnref:x, fnref2:x, fnref3:x, ...
func (s *Store) uniqueRef(ref string, found bool) string {
	if !found {
		return ref
	}

	original := ref
	for {
		if _, used := s.usedRefs[ref]; !used {
			break
		}
		head, rest, ok := strings.Cut(ref, s.separator)
		if !ok {
			// No separator to split on: leave the id as is rather than fail.
			break
		}
		if m := refIDPattern.FindStringSubmatch(head); m != nil {
			n, _ := strconv.Atoi(m[2])
			ref = m[1] + strconv.Itoa(n+1) + s.separator + rest
		} else {
			ref = head + "2" + s.separator + rest
		}
	}

	s.usedRefs[ref] = struct{}{}
	s.foundRefs[original]++
	return ref
}
