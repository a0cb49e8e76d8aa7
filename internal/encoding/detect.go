// Package encoding turns uploaded text of unknown charset into UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffLen = 4096

// Fallback is assumed when nothing else can be inferred; spreadsheet exports on Windows use it.
const Fallback = "windows-1252"

type bom struct {
	prefix  []byte
	charset string
	enc     encoding.Encoding // nil keeps the bytes as they are
}

var boms = []bom{
	{prefix: []byte{0xEF, 0xBB, 0xBF}, charset: "UTF-8"},
	{prefix: []byte{0xFF, 0xFE}, charset: "UTF-16LE", enc: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
	{prefix: []byte{0xFE, 0xFF}, charset: "UTF-16BE", enc: unicode.UTF16(unicode.BigEndian, unicode.UseBOM)},
}

// decoders maps the charset names reported by chardet to their decoders.
var decoders = map[string]encoding.Encoding{
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-15":  charmap.ISO8859_15,
	"ISO-8859-9":   charmap.ISO8859_9,
	"UTF-16LE":     unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"UTF-16BE":     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
}

// NewUTF8Reader returns a reader yielding r decoded to UTF-8, along with the charset it was read as.
// A byte order mark wins over everything else, then valid UTF-8, then chardet's best guess, then Fallback.
func NewUTF8Reader(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	sample, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, "", fmt.Errorf("sniffing charset: %w", err)
	}

	if len(sample) == sniffLen {
		sample = trimPartialRune(sample)
	}

	for _, b := range boms {
		if !bytes.HasPrefix(sample, b.prefix) {
			continue
		}

		if b.enc == nil {
			_, _ = br.Discard(len(b.prefix))
			return br, b.charset, nil
		}

		return transform.NewReader(br, b.enc.NewDecoder()), b.charset, nil
	}

	if utf8.Valid(sample) {
		return br, "UTF-8", nil
	}

	charset := Detect(sample)
	if charset == "UTF-8" {
		return br, charset, nil
	}

	return transform.NewReader(br, decoders[charset].NewDecoder()), charset, nil
}

// Detect guesses the charset of sample. Only charsets with a known decoder are returned; anything else
// maps to Fallback.
func Detect(sample []byte) string {
	if utf8.Valid(sample) {
		return "UTF-8"
	}

	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil {
		return Fallback
	}

	if _, ok := decoders[result.Charset]; ok {
		return result.Charset
	}

	return Fallback
}

// trimPartialRune drops a multi-byte sequence cut off at the end of a sniffed sample.
func trimPartialRune(b []byte) []byte {
	for i := 1; i <= utf8.UTFMax && i <= len(b); i++ {
		if !utf8.RuneStart(b[len(b)-i]) {
			continue
		}

		if !utf8.FullRune(b[len(b)-i:]) {
			return b[:len(b)-i]
		}

		return b
	}

	return b
}
