package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names reported by Detect.
const (
	UTF8        = "UTF-8"
	UTF16LE     = "UTF-16LE"
	UTF16BE     = "UTF-16BE"
	Windows1252 = "windows-1252"
	ISO88599    = "ISO-8859-9"
)

const sniffLen = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Detect sniffs the start of r and returns a reader yielding UTF-8 together
// with the charset it decided on.
//
// Card issuers export CSVs from different toolchains: Apple and Amex use
// UTF-8 (sometimes with a BOM), older Citi exports arrive as Windows-1252 and
// spreadsheet re-saves can produce UTF-16. Order of checks:
//  1. BOM (UTF-8 BOM is dropped, UTF-16 decoded)
//  2. valid UTF-8 passes through
//  3. chardet heuristics
//  4. Windows-1252
func Detect(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	buf, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("peek: %w", err)
	}

	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return br, UTF8, nil
	case bytes.HasPrefix(buf, bomUTF16LE):
		return decode(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)), UTF16LE, nil
	case bytes.HasPrefix(buf, bomUTF16BE):
		return decode(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM)), UTF16BE, nil
	}

	if utf8.Valid(buf) {
		return br, UTF8, nil
	}

	if result, err := chardet.NewTextDetector().DetectBest(buf); err == nil {
		switch result.Charset {
		case "UTF-8":
			return br, UTF8, nil
		case "ISO-8859-9":
			return decode(br, charmap.ISO8859_9), ISO88599, nil
		}
	}

	return decode(br, charmap.Windows1252), Windows1252, nil
}

// NewUTF8Reader is Detect without the charset name.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	out, _, err := Detect(r)
	return out, err
}

func decode(r io.Reader, enc encoding.Encoding) io.Reader {
	return transform.NewReader(r, enc.NewDecoder())
}
