package dashboard

import "errors"

var ErrInvalidField = errors.New("invalid field")
