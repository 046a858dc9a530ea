package cart

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Storage persists the full cart line list. Save is called after every
// mutation; Load once when the Store is built.
type Storage interface {
	Load() ([]Line, error)
	Save(lines []Line) error
}

// FileStorage keeps the serialized cart as JSON at a fixed path, the flat-file
// equivalent of a browser local-storage key.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load reads and decodes the stored cart. A missing file yields an empty cart.
// Non-array content is an error; individual entries that fail to decode or
// carry no usable id are dropped.
func (f *FileStorage) Load() ([]Line, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode stored cart: %w", err)
	}

	lines := make([]Line, 0, len(raw))
	for _, entry := range raw {
		var rec struct {
			ID       interface{} `json:"id"`
			Name     string      `json:"name"`
			Price    interface{} `json:"price"`
			Quantity interface{} `json:"quantity"`
		}
		if err := json.Unmarshal(entry, &rec); err != nil {
			continue
		}
		id := normalizeID(rec.ID)
		if id == "" {
			continue
		}
		qty := ParseQuantity(rec.Quantity, 1)
		if qty < 1 {
			qty = 1
		}
		lines = append(lines, Line{
			ID:       id,
			Name:     rec.Name,
			Price:    ParsePrice(rec.Price, 0),
			Quantity: qty,
		})
	}
	return lines, nil
}

// Save writes the full line list, creating the parent directory if needed.
func (f *FileStorage) Save(lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(f.path, data, 0o600)
}

// normalizeID renders a stored id value as a trimmed string key. Numeric ids
// from older stored carts are formatted without an exponent or trailing zeroes.
func normalizeID(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}
