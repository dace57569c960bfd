package favorites

import "errors"

var ErrInvalidMovie = errors.New("movie must have a positive id")
