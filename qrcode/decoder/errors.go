package decoder

import "errors"

// ErrNoVersion is returned when the sampled matrix dimension doesn't
// correspond to any valid QR version and the version-info regions (for
// D > 41) fail to decode.
var ErrNoVersion = errors.New("decoder: cannot determine version")

// ErrNoFormat is returned when both copies of the format-info region fail
// to match any table entry within the BCH correction radius.
var ErrNoFormat = errors.New("decoder: cannot determine format information")
