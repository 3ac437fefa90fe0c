package tabular

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Default encoding priority: UTF-8 (with optional BOM), then Windows-1252,
// then Latin-1, which accepts any byte sequence.
var DefaultEncodings = []string{"utf-8-sig", "cp1252", "latin-1"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type textEncoding struct {
	name      string
	enc       encoding.Encoding
	utf8      bool
	stripBOM  bool
	undefined []byte
}

// cp1252 leaves five code points unassigned. x/text maps them through to C1
// controls, so they are rejected explicitly to keep the fallback chain
// meaningful.
var cp1252Undefined = []byte{0x81, 0x8D, 0x8F, 0x90, 0x9D}

func lookupEncoding(name string) (textEncoding, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8-sig", "utf8-sig":
		return textEncoding{name: "utf-8-sig", enc: unicode.UTF8, utf8: true, stripBOM: true}, true
	case "utf-8", "utf8":
		return textEncoding{name: "utf-8", enc: unicode.UTF8, utf8: true}, true
	case "cp1252", "windows-1252":
		return textEncoding{name: "cp1252", enc: charmap.Windows1252, undefined: cp1252Undefined}, true
	case "latin-1", "latin1", "iso-8859-1":
		return textEncoding{name: "latin-1", enc: charmap.ISO8859_1}, true
	case "iso-8859-15", "latin-9":
		return textEncoding{name: "iso-8859-15", enc: charmap.ISO8859_15}, true
	}
	return textEncoding{}, false
}

// ValidateEncodings returns an error naming the first unsupported encoding.
func ValidateEncodings(names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("at least one encoding is required")
	}
	for _, n := range names {
		if _, ok := lookupEncoding(n); !ok {
			return fmt.Errorf("unsupported encoding: %s", n)
		}
	}
	return nil
}

// decode converts data to a UTF-8 string, failing on the first byte the
// encoding cannot represent.
func (te textEncoding) decode(data []byte) (string, error) {
	if te.utf8 {
		if te.stripBOM {
			data = bytes.TrimPrefix(data, utf8BOM)
		}
		if off := invalidUTF8Offset(data); off >= 0 {
			return "", fmt.Errorf("'%s' codec can't decode byte 0x%02x in position %d", te.name, data[off], off)
		}
		return string(data), nil
	}

	for _, b := range te.undefined {
		if off := bytes.IndexByte(data, b); off >= 0 {
			return "", fmt.Errorf("'%s' codec can't decode byte 0x%02x in position %d", te.name, b, off)
		}
	}
	out, err := te.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("'%s' codec failed: %w", te.name, err)
	}
	return string(out), nil
}

func invalidUTF8Offset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}
