package encoder

import "errors"

// ErrDataOverflow is returned when no version from 1 to 40 (or the
// caller-supplied version) has enough data capacity for the segments.
var ErrDataOverflow = errors.New("encoder: data does not fit in any QR version")
