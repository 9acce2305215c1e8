package charset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dimchansky/utfbom"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

const (
	UTF8 = "UTF-8"

	// confidence reported when the label is forced or read from a BOM
	certain = 100
)

var ErrUnsupportedEncoding = errors.New("unsupported encoding")

// decoded text and the label it was decoded from
type Result struct {
	Text       string
	Encoding   string
	Confidence int
}

// chardet names that htmlindex does not know as written
var aliases = map[string]string{
	"gb-18030": "gb18030",
}

// Decode converts raw file bytes to UTF-8 text. A byte order mark takes
// precedence, then the caller supplied label, then detection.
func Decode(raw []byte, label string) (Result, error) {
	body, bom := utfbom.Skip(bytes.NewReader(raw))
	rest, err := io.ReadAll(body)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read input: %w", err)
	}

	confidence := certain
	if bomLabel := labelForBOM(bom); bomLabel != "" {
		label = bomLabel
	} else if strings.TrimSpace(label) == "" {
		label, confidence = Detect(rest)
	}

	enc, canonical, err := Lookup(label)
	if err != nil {
		return Result{}, err
	}

	text, err := decodeToUTF8(rest, enc)
	if err != nil {
		return Result{}, fmt.Errorf("failed to decode %s: %w", canonical, err)
	}

	return Result{
		Text:       string(text),
		Encoding:   canonical,
		Confidence: confidence,
	}, nil
}

// Detect guesses the charset of raw bytes. Input that cannot be
// classified falls back to UTF-8 with zero confidence.
func Detect(raw []byte) (string, int) {
	if len(raw) == 0 {
		return UTF8, 0
	}
	detector := chardet.NewTextDetector()
	best, err := detector.DetectBest(raw)
	if err != nil || best == nil || best.Charset == "" {
		return fallback(raw), 0
	}
	// chardet knows a few EBCDIC variants that cannot be decoded here
	if _, _, err := Lookup(best.Charset); err != nil {
		return fallback(raw), 0
	}
	return best.Charset, best.Confidence
}

func fallback(raw []byte) string {
	if utf8.Valid(raw) {
		return UTF8
	}
	return "windows-1252"
}

// Lookup resolves a charset label to a decoder and its display name.
func Lookup(label string) (encoding.Encoding, string, error) {
	key := strings.ToLower(strings.TrimSpace(label))
	switch key {
	case "utf-8", "utf8":
		return unicode.UTF8, UTF8, nil
	case "utf-32be":
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM), "UTF-32BE", nil
	case "utf-32le":
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM), "UTF-32LE", nil
	}
	if alias, ok := aliases[key]; ok {
		key = alias
	}

	enc, err := htmlindex.Get(key)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedEncoding, label)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		name = label
	}
	return enc, name, nil
}

func labelForBOM(bom utfbom.Encoding) string {
	switch bom {
	case utfbom.UTF8:
		return UTF8
	case utfbom.UTF16BigEndian:
		return "UTF-16BE"
	case utfbom.UTF16LittleEndian:
		return "UTF-16LE"
	case utfbom.UTF32BigEndian:
		return "UTF-32BE"
	case utfbom.UTF32LittleEndian:
		return "UTF-32LE"
	default:
		return ""
	}
}

func decodeToUTF8(bs []byte, enc encoding.Encoding) ([]byte, error) {
	r := transform.NewReader(bytes.NewReader(bs), enc.NewDecoder())
	return io.ReadAll(r)
}
