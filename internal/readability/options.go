package readability

import (
	"net/url"
	"regexp"
)

// flag is one bit of the three-way STRIP_UNLIKELYS / WEIGHT_CLASSES /
// CLEAN_CONDITIONALLY toggle the orchestrator relaxes on retry.
type flag uint8

const (
	flagStripUnlikelys flag = 1 << iota
	flagWeightClasses
	flagCleanConditionally
)

const defaultFlags = flagStripUnlikelys | flagWeightClasses | flagCleanConditionally

// Serializer turns a finished article subtree into the Result.Content
// representation. Returning the node itself (wrapped in an `any`) is a
// valid "identity" serializer; most callers want an HTML string.
type Serializer func(articleNode *Node) any

// Logger receives debug trace lines when Options.Debug is set. It must
// never be consulted for control flow: disabling it has no effect on
// extraction behavior, only on what gets printed.
type Logger func(format string, args ...any)

// Options configures a single Parse call. DefaultOptions returns the
// reference defaults; callers typically start there and override fields.
type Options struct {
	Debug bool
	Logger Logger

	// MaxElemsToParse aborts extraction with an *AbortError when the
	// document has more elements than this. Zero means unlimited.
	MaxElemsToParse int

	// NbTopCandidates is the size of the top-N list tracked during
	// scoring (§4.5.2).
	NbTopCandidates int

	// CharThreshold is the minimum textContent length of a successful
	// extraction attempt, and is reused verbatim inside the §4.6 step 6
	// share-element cleanup (see SPEC_FULL.md Open Question #1).
	CharThreshold int

	KeepClasses       bool
	ClassesToPreserve []string

	DisableJSONLD bool

	// Serializer produces Result.Content from the finished subtree. Nil
	// means the default serializer, which returns the subtree's outer
	// HTML as a string.
	Serializer Serializer

	AllowedVideoRegex *regexp.Regexp

	// LinkDensityModifier is added to the two link-density cutoffs inside
	// conditional cleaning (§4.6.1) only; it never touches the general
	// link-density formula (§4.2).
	LinkDensityModifier float64

	// Extraction, when false, produces only metadata: Content,
	// TextContent, Length and Excerpt are left nil/zero.
	Extraction bool

	// BaseURI resolves relative href/src/srcset/poster values during
	// post-processing (§4.13). Nil disables URL resolution.
	BaseURI *url.URL
}

// DefaultOptions returns the reference default option set.
func DefaultOptions() Options {
	return Options{
		NbTopCandidates:      5,
		CharThreshold:        500,
		ClassesToPreserve:    []string{"page"},
		AllowedVideoRegex:    defaultAllowedVideoRegex,
		Extraction:           true,
		LinkDensityModifier:  0,
	}
}
