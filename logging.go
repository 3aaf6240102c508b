package rectfit

import (
	"os"

	"github.com/rs/zerolog"
)

// defaultLogger is the package-level logger used when a Pack call is not
// given one explicitly via WithLogger, mirroring the sub-logger pattern
// used throughout this lineage's services (module-scoped zerolog.Logger
// values obtained with .With().Str(...).Logger()).
var defaultLogger = zerolog.New(os.Stderr).With().Timestamp().Str("module", "rectfit").Logger()

// vim: ts=4
