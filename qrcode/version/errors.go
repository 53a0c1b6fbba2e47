package version

import "errors"

var (
	errFormatUncorrectable  = errors.New("version: format information uncorrectable")
	errVersionUncorrectable = errors.New("version: version information uncorrectable")
)
