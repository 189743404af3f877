package poller

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"smsgate/internal/poller/interfaces"
	"smsgate/internal/providers"
	"smsgate/internal/structures"
)

const (
	archivePrefix     = "sms-inbox-"
	compactedSuffix   = ".json.zst"
	archiveFileSuffix = ".json"
)

// Compactor compresses closed months' archive files to zstd. The current
// month is never touched: the ArchiveStore still appends to it.
type Compactor struct {
	dir        string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewCompactor(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) *Compactor {
	return &Compactor{
		dir:        conf.Poller.StateDir,
		compressor: compressor,
		logger:     logger,
	}
}

// Compact rewrites every archive file for a month before asOf's month as
// <name>.json.zst and removes the plain JSON. Returns the number of files
// compacted. A file that fails to compact is logged and skipped; the
// originals stay in place.
func (c *Compactor) Compact(asOf time.Time) (int, error) {
	files, err := filepath.Glob(filepath.Join(c.dir, archivePrefix+"*"+archiveFileSuffix))
	if err != nil {
		return 0, err
	}

	currentMonth := asOf.Format("2006-01")
	compacted := 0
	for _, file := range files {
		if archiveMonth(file) == currentMonth {
			continue
		}
		if err := c.compactFile(file); err != nil {
			c.logger.Errorf(providers.TypePoll, "Failed to compact %s: %s", file, err)
			continue
		}
		compacted++
	}

	if compacted > 0 {
		c.logger.Infof(providers.TypePoll, "Compacted %d archive file(s)", compacted)
	}
	return compacted, nil
}

func (c *Compactor) compactFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	compressed, err := c.compressor.Compress(data)
	if err != nil {
		return err
	}

	target := strings.TrimSuffix(path, archiveFileSuffix) + compactedSuffix
	tmpFile := target + ".tmp"
	if err := os.WriteFile(tmpFile, compressed, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmpFile, target); err != nil {
		return err
	}

	return os.Remove(path)
}

// archiveMonth extracts the YYYY-MM part from an archive file path.
// "sms-inbox-2026-08.json" -> "2026-08"
func archiveMonth(path string) string {
	base := filepath.Base(path)
	base = strings.TrimPrefix(base, archivePrefix)
	return strings.TrimSuffix(base, archiveFileSuffix)
}
