package fetch

import "errors"

var (
	// ErrFetch is returned when the page cannot be downloaded (network
	// error, non-200 status, timeout).
	ErrFetch = errors.New("failed to fetch page")

	// ErrExtract is returned when the page was downloaded but no readable
	// text could be recovered from its markup.
	ErrExtract = errors.New("no content extracted")
)
