package report

import "errors"

var (
	ErrReportUnavailable = errors.New("shift data is unavailable")
)
