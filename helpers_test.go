package lightweaver

import (
	"io"

	"github.com/mgutz/logxi"
)

func discardLogger() logxi.Logger {
	return logxi.NewLogger(io.Discard, "test")
}
