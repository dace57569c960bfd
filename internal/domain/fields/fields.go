package fields

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidRuntimeFormat = errors.New("invalid runtime format")

// MovieRuntime is a movie duration in minutes.
type MovieRuntime int32

func (m MovieRuntime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(fmt.Sprintf("%d mins", m))), nil
}

// UnmarshalJSON accepts the catalog's plain number, the "<n> mins" form
// produced by MarshalJSON, and null.
func (m *MovieRuntime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		unquoted, err := strconv.Unquote(string(data))
		if err != nil {
			return ErrInvalidRuntimeFormat
		}
		parts := strings.Fields(unquoted)
		if len(parts) != 2 || parts[1] != "mins" {
			return ErrInvalidRuntimeFormat
		}
		data = []byte(parts[0])
	}
	i, err := strconv.ParseInt(string(data), 10, 32)
	if err != nil {
		return ErrInvalidRuntimeFormat
	}
	*m = MovieRuntime(i)
	return nil
}
