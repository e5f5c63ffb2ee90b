package csvtable

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Format describes the encoding and structural format of a CSV file.
type Format struct {
	// Encoding of the CSV data, like "UTF-8", "UTF-16LE",
	// "ISO 8859-1", "Windows 1252" or "Macintosh".
	Encoding string `json:"encoding"`

	// Separator is the single character field delimiter.
	Separator string `json:"separator"`

	// Newline is one of "\n", "\r\n" or "\n\r".
	Newline string `json:"newline"`
}

// NewFormat returns a UTF-8 Format with "\r\n" line endings
// and the passed separator.
func NewFormat(separator string) *Format {
	return &Format{
		Encoding:  "UTF-8",
		Separator: separator,
		Newline:   "\r\n",
	}
}

// Validate returns an error if the format is not usable
// for reading or writing.
func (f *Format) Validate() error {
	switch {
	case f == nil:
		return errors.New("<nil> csvtable.Format")
	case f.Encoding == "":
		return errors.New("missing csvtable.Format.Encoding")
	case utf8.RuneCountInString(f.Separator) != 1:
		return fmt.Errorf("invalid csvtable.Format.Separator: %q", f.Separator)
	case f.Newline == "":
		return errors.New("missing csvtable.Format.Newline")
	case f.Newline != "\n" && f.Newline != "\n\r" && f.Newline != "\r\n":
		return fmt.Errorf("invalid csvtable.Format.Newline: %q", f.Newline)
	}
	return nil
}

func (f *Format) separatorRune() rune {
	r, _ := utf8.DecodeRuneInString(f.Separator)
	return r
}

// FormatDetectionConfig configures ReadDetectFormat.
type FormatDetectionConfig struct {
	// Encodings to test in priority order.
	Encodings []string `json:"encodings"`

	// EncodingTests are strings with characters that have different
	// byte representations across the tested encodings.
	EncodingTests []string `json:"encodingTests"`

	// Separators to count in the first line of the data.
	// The most frequent one is used.
	Separators []string `json:"separators"`
}

// NewDefaultFormatDetectionConfig returns the FormatDetectionConfig
// used by ReadDetectFormat for a nil config.
func NewDefaultFormatDetectionConfig() *FormatDetectionConfig {
	return &FormatDetectionConfig{
		Encodings: []string{
			"UTF-8",
			"UTF-16LE",
			"ISO 8859-1",
			"Windows 1252", // like ANSI
			"Macintosh",
		},
		EncodingTests: []string{
			"ä", "Ä", "ö", "Ö", "ü", "Ü", "ß", "§", "€",
			"д", "Д", "ъ", "Ъ", "б", "Б", "л", "Л", "и", "И", "ж",
		},
		Separators: []string{";", ",", "\t", "|"},
	}
}
