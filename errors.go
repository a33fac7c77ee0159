package okapi

import (
	"errors"
	"fmt"

	"github.com/okapigo/okapi/index"
)

var (
	// ErrInvalidDocument is returned when a corpus value is not valid text.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrEmptyQuery is returned when a query normalizes to no terms at all.
	ErrEmptyQuery = errors.New("query has no searchable terms")
)

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var eid *index.ErrInvalidDocument
	if errors.As(err, &eid) {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return err
}
