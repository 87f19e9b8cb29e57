package output

import "errors"

// ErrUnsupportedFormat is returned when no formatter matches the requested name
var ErrUnsupportedFormat = errors.New("unsupported output format")
