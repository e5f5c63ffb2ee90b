package csvtable

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/domonda/go-types/charset"

	"github.com/domonda/go-regrid/grid"
)

// Read parses csv data in the passed format
// and returns it as a sheet named name.
//
// A leading "sep=X" line is skipped if X equals format.Separator.
func Read(name string, data []byte, format *Format) (*grid.Sheet, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	if format.Encoding == "UTF-8" {
		data = charset.TrimBOM(data, charset.BOMUTF8)
	} else {
		enc, err := charset.GetEncoding(format.Encoding)
		if err != nil {
			return nil, err
		}
		data, err = enc.Decode(data)
		if err != nil {
			return nil, err
		}
	}
	rows, err := parse(data, format)
	if err != nil {
		return nil, err
	}
	return grid.NewSheet(name, rows)
}

// ReadDetectFormat detects the encoding, separator and line endings
// of csv data and returns it parsed as a sheet named name
// together with the detected format.
//
// A nil config uses NewDefaultFormatDetectionConfig.
func ReadDetectFormat(name string, data []byte, config *FormatDetectionConfig) (*grid.Sheet, *Format, error) {
	format, decoded, err := DetectFormat(data, config)
	if err != nil {
		return nil, nil, err
	}
	rows, err := parse(decoded, format)
	if err != nil {
		return nil, format, err
	}
	sheet, err := grid.NewSheet(name, rows)
	return sheet, format, err
}

// DetectFormat detects the format of csv data and
// returns it together with the data decoded to UTF-8.
func DetectFormat(data []byte, config *FormatDetectionConfig) (format *Format, decoded []byte, err error) {
	if config == nil {
		config = NewDefaultFormatDetectionConfig()
	}
	if len(config.Separators) == 0 {
		return nil, nil, errors.New("FormatDetectionConfig without Separators")
	}

	var encodings []charset.Encoding
	for _, name := range config.Encodings {
		enc, err := charset.GetEncoding(name)
		if err != nil {
			return nil, nil, err
		}
		encodings = append(encodings, enc)
	}
	format = new(Format)
	decoded, format.Encoding, err = charset.AutoDecode(data, encodings, config.EncodingTests)
	if err != nil {
		return nil, nil, err
	}
	if format.Encoding == "" {
		format.Encoding = "UTF-8"
	}
	decoded = sanitizeUTF8(decoded)

	switch {
	case bytes.Contains(decoded, []byte("\r\n")):
		format.Newline = "\r\n"
	case bytes.Contains(decoded, []byte("\n\r")):
		format.Newline = "\n\r"
	default:
		format.Newline = "\n"
	}

	firstLine, _, _ := strings.Cut(string(decoded), format.Newline)
	if sep := parseSepHeaderLine(firstLine); sep != "" {
		format.Separator = sep
		return format, decoded, nil
	}
	format.Separator = config.Separators[0]
	maxCount := 0
	for _, sep := range config.Separators {
		if count := countOutsideQuotes(firstLine, sep); count > maxCount {
			format.Separator = sep
			maxCount = count
		}
	}
	return format, decoded, nil
}

func parse(data []byte, format *Format) ([][]string, error) {
	text := string(data)
	if format.Newline == "\n\r" {
		text = strings.ReplaceAll(text, "\n\r", "\n")
	}
	firstLine, rest, _ := strings.Cut(text, "\n")
	if sep := parseSepHeaderLine(strings.TrimSuffix(firstLine, "\r")); sep != "" {
		if sep != format.Separator {
			return nil, fmt.Errorf("separator %q in header line is different from format separator %q", sep, format.Separator)
		}
		text = rest
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = format.separatorRune()
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}

// parseSepHeaderLine returns X for a line like "sep=X" or `"sep=X"`.
func parseSepHeaderLine(line string) string {
	line = strings.Trim(strings.TrimSpace(line), `"`)
	if len(line) < 5 || !strings.EqualFold(line[:4], "sep=") {
		return ""
	}
	sep := line[4:]
	if utf8.RuneCountInString(sep) != 1 {
		return ""
	}
	return sep
}

func countOutsideQuotes(line, sep string) (count int) {
	quoted := false
	for i := 0; i < len(line); i++ {
		switch {
		case line[i] == '"':
			quoted = !quoted
		case !quoted && strings.HasPrefix(line[i:], sep):
			count++
		}
	}
	return count
}

func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}
	return bytes.ToValidUTF8(data, []byte(string(utf8.RuneError)))
}
