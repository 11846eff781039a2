package sid

import "github.com/seisgo/mseed/errs"

var (
	errInvalidField        = errs.ErrInvalidField
	errInvalidSegmentCount = errs.ErrInvalidSegmentCount
	errInvalidNslc         = errs.ErrInvalidNslc
)
