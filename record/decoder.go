package record

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/arloliu/segar/errs"
	"github.com/arloliu/segar/format"
	"github.com/arloliu/segar/internal/chunkio"
	"github.com/arloliu/segar/internal/options"
)

// DecoderConfig holds the settings of a Decoder.
type DecoderConfig struct {
	outDir  string
	logPath string
	logger  *slog.Logger
}

// DecoderOption configures a Decoder.
type DecoderOption = options.Option[*DecoderConfig]

// WithOutputDir sets the directory extracted files are written to.
// The default is the current directory.
func WithOutputDir(dir string) DecoderOption {
	return options.New(func(c *DecoderConfig) error {
		if dir == "" {
			return fmt.Errorf("output directory must not be empty")
		}
		c.outDir = dir

		return nil
	})
}

// WithLogPath sets the path of the run log listing every extracted name.
// The default is format.LogFileName inside the output directory.
func WithLogPath(path string) DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		c.logPath = path
	})
}

// WithDecoderLogger sets the structured logger used for progress output.
func WithDecoderLogger(logger *slog.Logger) DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// Decoder extracts the records of a reassembled payload stream into files.
type Decoder struct {
	cfg DecoderConfig
}

// NewDecoder creates a Decoder.
func NewDecoder(opts ...DecoderOption) (*Decoder, error) {
	cfg := DecoderConfig{
		outDir: ".",
		logger: slog.New(slog.DiscardHandler),
	}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.logPath == "" {
		cfg.logPath = filepath.Join(cfg.outDir, format.LogFileName)
	}

	return &Decoder{cfg: cfg}, nil
}

// LogPath returns the path of the run log.
func (d *Decoder) LogPath() string {
	return d.cfg.logPath
}

// Extract writes every record of payload to a file named after the record in
// the output directory, overwriting existing files, and appends each name to
// the run log. The run log is truncated first.
//
// Extraction stops at the first failure; files written up to that point are
// left in place.
func (d *Decoder) Extract(payload []byte) ([]Entry, error) {
	logFile, err := os.Create(d.cfg.logPath)
	if err != nil {
		return nil, fmt.Errorf("%w: create log %q: %w", errs.ErrIO, d.cfg.logPath, err)
	}
	defer logFile.Close()

	var entries []Entry
	err = Walk(payload, func(name string, content []byte) error {
		if err := ValidateName(name); err != nil {
			return fmt.Errorf("%w: %w", errs.ErrCorruptArchive, err)
		}

		path := filepath.Join(d.cfg.outDir, name)
		if err := writeFile(path, content); err != nil {
			return err
		}
		if _, err := io.WriteString(logFile, name+"\n"); err != nil {
			return fmt.Errorf("%w: write log %q: %w", errs.ErrIO, d.cfg.logPath, err)
		}

		d.cfg.logger.Info("extracted file", "name", name, "size", humanize.IBytes(uint64(len(content))))
		entries = append(entries, Entry{Name: name, Size: uint64(len(content))})

		return nil
	})
	if err != nil {
		return entries, err
	}

	if err := logFile.Close(); err != nil {
		return entries, fmt.Errorf("%w: close log %q: %w", errs.ErrIO, d.cfg.logPath, err)
	}

	return entries, nil
}

func writeFile(path string, content []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %q: %w", errs.ErrIO, path, err)
	}

	if _, err := chunkio.Write(f, content); err != nil {
		f.Close()
		return fmt.Errorf("%w: write %q: %w", errs.ErrIO, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %q: %w", errs.ErrIO, path, err)
	}

	return nil
}
