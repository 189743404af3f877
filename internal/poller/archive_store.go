package poller

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"smsgate/internal/models"
	"smsgate/internal/providers"
	"smsgate/internal/structures"
)

// ArchiveStore appends accepted messages into monthly JSON files, itself
// deduplicating by fingerprint. The target month comes from the processing
// time, not the message's own timestamp. Files for different months are
// independent and never cross-deduplicated.
type ArchiveStore struct {
	dir    string
	cache  providers.CacheProviderInterface
	logger providers.Logger
}

func NewArchiveStore(conf *structures.Config, cache providers.CacheProviderInterface, logger providers.Logger) *ArchiveStore {
	return &ArchiveStore{
		dir:    conf.Poller.StateDir,
		cache:  cache,
		logger: logger,
	}
}

// FilePath returns the archive file for the month of asOf.
func (a *ArchiveStore) FilePath(asOf time.Time) string {
	return filepath.Join(a.dir, fmt.Sprintf("sms-inbox-%s.json", asOf.Format("2006-01")))
}

// Append merges messages into the month's archive file. Messages whose
// fingerprint is already on disk, or already added earlier within this same
// call, are skipped. The merged array is written atomically. Returns the
// number of entries actually added.
func (a *ArchiveStore) Append(msgs []*models.Message, asOf time.Time) (int, error) {
	if len(msgs) == 0 {
		return 0, nil
	}

	path := a.FilePath(asOf)
	existing := a.readArchive(path)

	seen := make(map[string]struct{}, len(existing)+len(msgs))
	for _, m := range existing {
		seen[m.Fingerprint()] = struct{}{}
	}

	added := 0
	for _, m := range msgs {
		fp := m.Fingerprint()
		if _, ok := seen[fp]; ok {
			continue
		}
		existing = append(existing, m)
		seen[fp] = struct{}{}
		added++
	}

	if added == 0 {
		return 0, nil
	}

	jsonData, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return 0, err
	}

	if err := a.writeAtomic(path, jsonData); err != nil {
		return 0, err
	}
	a.cache.Set(path, jsonData)

	a.logger.Infof(providers.TypePoll, "Archived %d/%d SMS to %s (hash-deduplicated)", added, len(msgs), path)
	return added, nil
}

// readArchive loads the month's entries. A corrupt file does not abort the
// append: the merge starts from an empty collection and the previous content
// is lost, surfaced only via the warning log.
func (a *ArchiveStore) readArchive(path string) []*models.Message {
	data, ok := a.cache.Get(path)
	if !ok {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				a.logger.Warnf(providers.TypePoll, "Failed to read archive %s: %s, starting fresh", path, err)
			}
			return nil
		}
	}

	var msgs []*models.Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		a.logger.Warnf(providers.TypePoll, "Corrupted archive file %s, starting fresh", path)
		a.cache.Del(path)
		return nil
	}
	return msgs
}

func (a *ArchiveStore) writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return err
	}

	return os.Rename(tmpFile, path)
}
