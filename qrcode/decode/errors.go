package decode

import "errors"

// ErrNotFound is returned when no inversion attempt locates and decodes a
// symbol in the image.
var ErrNotFound = errors.New("decode: no QR symbol found")
