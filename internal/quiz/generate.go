package quiz

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/TerranMechworks/mech3doc/internal/logger"
)

// WriteFile creates or truncates dir/f.Name and writes the fixture to it.
// The file is closed before returning, on success or failure.
func WriteFile(dir string, f Fixture) (err error) {
	data, err := f.Bytes()
	if err != nil {
		return err
	}

	path := filepath.Join(dir, f.Name)
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", f.Name, err)
	}
	defer func() {
		err = multierr.Append(err, out.Close())
	}()

	w := bufio.NewWriter(out)
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", f.Name, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", f.Name, err)
	}

	logger.Debug("wrote fixture",
		zap.String("file", path),
		zap.Int("bytes", len(data)))
	return nil
}

// Write writes the given fixtures to dir in order, stopping at the first
// failure.
func Write(dir string, fixtures []Fixture) error {
	total := 0
	for _, f := range fixtures {
		if err := WriteFile(dir, f); err != nil {
			return err
		}
		total++
	}
	logger.Info("fixtures generated",
		zap.String("dir", dir),
		zap.Int("count", total))
	return nil
}

// WriteAll writes every quiz fixture to dir.
func WriteAll(dir string) error {
	return Write(dir, Fixtures())
}
