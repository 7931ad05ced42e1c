package readability

import "fmt"

// AbortError is returned by Parse when the document's element count
// exceeds Options.MaxElemsToParse (§7).
type AbortError struct {
	ElementCount int
	Limit        int
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("Aborting parsing document; %d elements found", e.ElementCount)
}

// InvalidDocumentError is returned by New when the supplied document
// handle is unusable (nil, or has no <body>).
type InvalidDocumentError struct {
	Reason string
}

func (e *InvalidDocumentError) Error() string {
	return fmt.Sprintf("invalid document: %s", e.Reason)
}

// UnparsableContentError is returned by Parse when every retry of the
// flag ladder still produced an article below CharThreshold and the
// best attempt on record is empty.
type UnparsableContentError struct {
	BestLength int
	Threshold  int
}

func (e *UnparsableContentError) Error() string {
	return fmt.Sprintf("unable to extract article content: best attempt had %d characters, threshold is %d", e.BestLength, e.Threshold)
}
