package export

import "errors"

// ErrExportIO is returned when an export target cannot be written.
var ErrExportIO = errors.New("export io")

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")
