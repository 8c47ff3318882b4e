package driver

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// lookupEncoding maps a manifest encoding name to a decoder. UTF-8 (or
// an empty name) means no transcoding at all.
func lookupEncoding(name string) (encoding.Encoding, error) {
	switch name {
	case "", "utf-8", "utf8":
		return nil, nil
	case "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1251":
		return charmap.Windows1251, nil
	case "windows-1252":
		return charmap.Windows1252, nil
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), nil
	default:
		return nil, fmt.Errorf("unsupported source encoding %q", name)
	}
}

// decodeSource converts on-disk bytes to UTF-8 for the pipeline.
func decodeSource(enc encoding.Encoding, raw []byte) ([]byte, error) {
	if enc == nil {
		return raw, nil
	}
	return enc.NewDecoder().Bytes(raw)
}

// encodeSource converts formatted UTF-8 back to the on-disk encoding
// before an apply-mode write.
func encodeSource(enc encoding.Encoding, text []byte) ([]byte, error) {
	if enc == nil {
		return text, nil
	}
	return enc.NewEncoder().Bytes(text)
}
