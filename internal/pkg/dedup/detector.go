package dedup

import (
	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// Entries splits a stored collection document into its entries. A document
// that is absent or not a JSON array holds no entries.
func Entries(document []byte) []json.RawMessage {
	if len(document) == 0 {
		return nil
	}
	parsed := gjson.ParseBytes(document)
	if !parsed.IsArray() {
		return nil
	}

	var entries []json.RawMessage
	parsed.ForEach(func(_, value gjson.Result) bool {
		entries = append(entries, json.RawMessage(value.Raw))
		return true
	})
	return entries
}

// IsDuplicate reports whether entry has the same comparison key as some entry
// of existing. The scan stops at the first match.
func IsDuplicate(existing []json.RawMessage, entry []byte, category Category) bool {
	key := ExtractKey(entry, category)
	for _, stored := range existing {
		if ExtractKey(stored, category) == key {
			return true
		}
	}
	return false
}

// Detector holds the keys of a stored collection so a batch can be checked
// without extracting the stored keys again for every incoming entry.
type Detector struct {
	category Category
	keys     []Key
}

func NewDetector(existing []json.RawMessage, category Category) *Detector {
	keys := make([]Key, 0, len(existing))
	for _, stored := range existing {
		keys = append(keys, ExtractKey(stored, category))
	}
	return &Detector{category: category, keys: keys}
}

func (d *Detector) Contains(entry []byte) bool {
	key := ExtractKey(entry, d.category)
	for _, stored := range d.keys {
		if stored == key {
			return true
		}
	}
	return false
}

type Partition struct {
	Duplicates []json.RawMessage
	New        []json.RawMessage
}

// PartitionBatch splits batch into entries already present in existing and
// new ones. Entries are only compared with existing, never with each other,
// so two identical entries of the same batch are both new.
func PartitionBatch(existing []json.RawMessage, batch []json.RawMessage, category Category) Partition {
	detector := NewDetector(existing, category)

	var partition Partition
	for _, entry := range batch {
		if detector.Contains(entry) {
			partition.Duplicates = append(partition.Duplicates, entry)
			continue
		}
		partition.New = append(partition.New, entry)
	}
	return partition
}

// Merge appends added to existing without touching the stored entries.
func Merge(existing, added []json.RawMessage) []json.RawMessage {
	merged := make([]json.RawMessage, 0, len(existing)+len(added))
	merged = append(merged, existing...)
	return append(merged, added...)
}
