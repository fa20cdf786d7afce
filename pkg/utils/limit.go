package utils

import (
	"errors"
	"io"
)

// ReadAllLimit reads r fully but refuses inputs larger than max bytes, so
// an oversized upload is rejected without buffering the whole thing.
func ReadAllLimit(r io.Reader, max int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > max {
		return nil, errors.New("file too large")
	}
	return b, nil
}
