package segment

import "errors"

// errEncoding is wrapped into every segment-construction failure: a
// character outside the mode's alphabet, as spec.md §4.G requires.
var errEncoding = errors.New("segment: encoding error")

// ErrEndOfSegments is returned by DecodeSegments when the bitstream runs
// out in the middle of a segment; the segments gathered so far are still
// returned alongside it. A stream with fewer than 4 bits left after a
// complete segment ends without error, terminator or not.
var ErrEndOfSegments = errors.New("segment: stream ended before terminator")
