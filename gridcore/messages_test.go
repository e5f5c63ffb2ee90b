package gridcore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	fs "github.com/ungerik/go-fs"
)

func TestMessagesFormatter(t *testing.T) {
	getMessage := MessagesFormatter(Messages{
		"noData": "No data",
		"info":   "{from}-{to} of {count}",
	})

	tests := []struct {
		name   string
		key    string
		params []map[string]any
		want   string
	}{
		{name: "plain", key: "noData", want: "No data"},
		{name: "params", key: "info", params: []map[string]any{{"from": 1, "to": 10, "count": 42}}, want: "1-10 of 42"},
		{name: "missing param", key: "info", params: []map[string]any{{"from": 1}}, want: "1-{to} of {count}"},
		{name: "unknown key", key: "unknown", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, getMessage(tt.key, tt.params...))
		})
	}
}

func TestMessages_Merge(t *testing.T) {
	defaults := Messages{"noData": "No data", "other": "x"}
	merged := defaults.Merge(Messages{"noData": "Nothing"})
	require.Equal(t, Messages{"noData": "Nothing", "other": "x"}, merged)
	require.Equal(t, "No data", defaults["noData"])
}

func TestParseCatalog(t *testing.T) {
	t.Run("UTF-8 with BOM", func(t *testing.T) {
		data := append([]byte("\xEF\xBB\xBF"), []byte("Table:\n  noData: Keine Daten\n")...)
		catalog, err := ParseCatalog(data, "UTF-8")
		require.NoError(t, err)
		require.Equal(t, Messages{"noData": "Keine Daten"}, catalog.For("Table"))
		require.Nil(t, catalog.For("Paging"))
	})

	t.Run("ISO 8859-1", func(t *testing.T) {
		// "Keine Daten für {name}" with ü as Latin-1 byte
		data := []byte("Table:\n  noData: Keine Daten f\xFCr {name}\n")
		catalog, err := ParseCatalog(data, "ISO 8859-1")
		require.NoError(t, err)
		getMessage := MessagesFormatter(catalog.For("Table"))
		require.Equal(t, "Keine Daten für Kunden", getMessage("noData", map[string]any{"name": "Kunden"}))
	})

	t.Run("empty", func(t *testing.T) {
		catalog, err := ParseCatalog(nil, "")
		require.NoError(t, err)
		require.NotNil(t, catalog)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := ParseCatalog([]byte("Table: [noData"), "UTF-8")
		require.Error(t, err)
	})
}

func TestLoadCatalog(t *testing.T) {
	file := fs.NewMemFile("messages.yaml", []byte("Table:\n  noData: Sin datos\n"))
	catalog, err := LoadCatalog(context.Background(), file, "UTF-8")
	require.NoError(t, err)
	require.Equal(t, "Sin datos", catalog.For("Table")["noData"])
}
