package reporting

import "errors"

// ErrUnknownReportType is returned when a requested report kind has no builder.
var ErrUnknownReportType = errors.New("unknown report type")
