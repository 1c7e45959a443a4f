package translation

import "fmt"

const (
	CauseUpstreamHTTP      = "upstream_http_error"
	CauseEmptyResponse     = "empty_response"
	CauseMalformedResponse = "malformed_response"
)

// TranslationError is returned when a single segment cannot be translated
type TranslationError struct {
	Cause      string
	StatusCode int
	Err        error
}

func (e *TranslationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("translation failed (%s): %v", e.Cause, e.Err)
	}
	return fmt.Sprintf("translation failed (%s)", e.Cause)
}

func (e *TranslationError) Unwrap() error {
	return e.Err
}
