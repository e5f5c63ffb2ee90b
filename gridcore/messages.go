package gridcore

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/domonda/go-types/charset"
	fs "github.com/ungerik/go-fs"
	"gopkg.in/yaml.v3"
)

// Messages maps message keys to localized texts.
// Texts may contain {name} placeholders
// that are replaced by the params passed to a MessageFormatter.
type Messages map[string]string

// Merge returns a new Messages with the texts of overrides
// replacing the texts of m.
func (m Messages) Merge(overrides Messages) Messages {
	merged := make(Messages, len(m)+len(overrides))
	maps.Copy(merged, m)
	maps.Copy(merged, overrides)
	return merged
}

// MessageFormatter returns the localized text for key
// with the {name} placeholders replaced by params.
// Unknown keys result in an empty string.
type MessageFormatter func(key string, params ...map[string]any) string

// MessagesFormatter returns a MessageFormatter for messages.
func MessagesFormatter(messages Messages) MessageFormatter {
	messages = maps.Clone(messages)
	return func(key string, params ...map[string]any) string {
		message := messages[key]
		for _, p := range params {
			for _, name := range slices.Sorted(maps.Keys(p)) {
				message = strings.ReplaceAll(message, "{"+name+"}", fmt.Sprint(p[name]))
			}
		}
		return message
	}
}

// Catalog holds Messages per plugin name.
type Catalog map[string]Messages

// For returns the messages of pluginName, nil if there are none.
func (c Catalog) For(pluginName string) Messages {
	return c[pluginName]
}

// ParseCatalog parses a YAML message catalog in the passed encoding
// where every top level key is a plugin name
// mapping message keys to texts:
//
//	Table:
//	  noData: Keine Daten
//
// Data in other encodings than UTF-8 is decoded before parsing.
func ParseCatalog(data []byte, encoding string) (Catalog, error) {
	if encoding == "" || strings.EqualFold(encoding, "UTF-8") {
		data = charset.TrimBOM(data, charset.BOMUTF8)
	} else {
		enc, err := charset.GetEncoding(encoding)
		if err != nil {
			return nil, err
		}
		data, err = enc.Decode(data)
		if err != nil {
			return nil, err
		}
	}
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("message catalog: %w", err)
	}
	if catalog == nil {
		catalog = make(Catalog)
	}
	return catalog, nil
}

// LoadCatalog reads and parses a YAML message catalog from file.
func LoadCatalog(ctx context.Context, file fs.FileReader, encoding string) (Catalog, error) {
	data, err := file.ReadAllContext(ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := ParseCatalog(data, encoding)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file.Name(), err)
	}
	return catalog, nil
}
