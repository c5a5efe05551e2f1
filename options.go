package cmapgos

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/arloliu/cmapgos/gos"
	"github.com/arloliu/cmapgos/internal/options"
)

// Option configures a Compacter.
type Option = options.Option[*Compacter]

// WithCMap12Encoding selects the encoding record of the cmap format 12 subtable.
func WithCMap12Encoding(platformID, encodingID uint16) Option {
	return options.NoError(func(c *Compacter) {
		c.cfg.CMap12 = gos.Subtable{PlatformID: platformID, EncodingID: encodingID}
	})
}

// WithCMap4Encoding selects the encoding record of the cmap format 4 subtable.
func WithCMap4Encoding(platformID, encodingID uint16) Option {
	return options.NoError(func(c *Compacter) {
		c.cfg.CMap4 = gos.Subtable{PlatformID: platformID, EncodingID: encodingID}
	})
}

// WithLogger sets the logger receiving per-payload debug entries.
func WithLogger(logger logrus.FieldLogger) Option {
	return options.New(func(c *Compacter) error {
		if logger == nil {
			return fmt.Errorf("cmapgos: nil logger")
		}
		c.logger = logger

		return nil
	})
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}
