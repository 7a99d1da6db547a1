package archive

import (
	"log/slog"

	"github.com/arloliu/segar/format"
	"github.com/arloliu/segar/internal/options"
)

// WriterConfig holds the settings of a Writer.
type WriterConfig struct {
	maxSegmentSize uint64
	strictNames    bool
	logger         *slog.Logger
}

// WriterOption configures a Writer.
type WriterOption = options.Option[*WriterConfig]

func defaultWriterConfig() WriterConfig {
	return WriterConfig{
		maxSegmentSize: format.Unlimited,
		logger:         slog.New(slog.DiscardHandler),
	}
}

// WithMaxSegmentSize caps the size of every segment file at n bytes.
// Zero means unlimited, which is also the default.
func WithMaxSegmentSize(n uint64) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		if n == 0 {
			n = format.Unlimited
		}
		c.maxSegmentSize = n
	})
}

// WithStrictNames makes the writer fail with errs.ErrDuplicateName when two
// inputs share a basename. By default a warning is logged and both records
// are packed; decoding then keeps the content of the later one.
func WithStrictNames(strict bool) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		c.strictNames = strict
	})
}

// WithWriterLogger sets the structured logger used for progress output.
func WithWriterLogger(logger *slog.Logger) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// ReaderConfig holds the settings used when reassembling an archive.
type ReaderConfig struct {
	logger *slog.Logger
}

// ReaderOption configures Gather and Open.
type ReaderOption = options.Option[*ReaderConfig]

// WithReaderLogger sets the structured logger used for progress output.
func WithReaderLogger(logger *slog.Logger) ReaderOption {
	return options.NoError(func(c *ReaderConfig) {
		if logger != nil {
			c.logger = logger
		}
	})
}
