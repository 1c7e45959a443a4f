package models

// Segment is one bounded slice of source text queued for translation.
// Start and End are rune offsets of Text inside the source, so
// source[Start:End] == Text and trimming can be reversed.
type Segment struct {
	Index  int    `json:"index"`
	Text   string `json:"text"`
	Length int    `json:"length"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
}

// SegmentOutcome records how a segment's translation resolved
type SegmentOutcome string

const (
	SegmentOutcomeSuccess            SegmentOutcome = "success"
	SegmentOutcomeFailedAfterRetries SegmentOutcome = "failed_after_retries"
)

// SegmentResult is the translation of exactly one segment
type SegmentResult struct {
	Index          int            `json:"index"`
	TranslatedText string         `json:"translatedText"`
	Outcome        SegmentOutcome `json:"outcome"`
	Attempts       int            `json:"attempts"`
}

// TranslationOutcome is the reassembled dispatcher output.
// Segments is ordered by index and has one entry per input segment.
type TranslationOutcome struct {
	JoinedText string          `json:"joinedText"`
	Segments   []SegmentResult `json:"segments"`
}

// Failed returns the number of segments that exhausted their retries
func (o TranslationOutcome) Failed() int {
	n := 0
	for _, s := range o.Segments {
		if s.Outcome == SegmentOutcomeFailedAfterRetries {
			n++
		}
	}
	return n
}

// Degraded reports whether at least one segment carries the failure marker
func (o TranslationOutcome) Degraded() bool {
	return o.Failed() > 0
}
