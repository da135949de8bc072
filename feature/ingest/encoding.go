package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names reported by Decode.
const (
	EncodingUTF8    = "utf-8"
	EncodingUTF8BOM = "utf-8-bom"
	EncodingUTF16   = "utf-16"
	EncodingUTF16BE = "utf-16be-bom"
	EncodingSJIS    = "shift_jis"
	EncodingUTF16LE = "utf-16le"
)

// ErrUndecodable is returned when no candidate encoding decodes the input cleanly.
var ErrUndecodable = errors.New("unable to decode input with any supported encoding")

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

type candidate struct {
	name string
	enc  encoding.Encoding
}

var fallbacks = []candidate{
	{EncodingSJIS, japanese.ShiftJIS},
	{EncodingUTF16LE, unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)},
}

// Decode converts data to UTF-8 and reports the encoding it was read as.
func Decode(data []byte) ([]byte, string, error) {
	if bytes.HasPrefix(data, bomUTF8) {
		return data[len(bomUTF8):], EncodingUTF8BOM, nil
	}
	if len(data) >= 2 && (data[0] == 0xFF && data[1] == 0xFE || data[0] == 0xFE && data[1] == 0xFF) {
		out, err := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Bytes(data)
		if err != nil {
			return nil, "", fmt.Errorf("utf-16 decode: %w", err)
		}
		if data[0] == 0xFE {
			return out, EncodingUTF16BE, nil
		}
		return out, EncodingUTF16, nil
	}
	if utf8.Valid(data) && bytes.IndexByte(data, 0) < 0 {
		return data, EncodingUTF8, nil
	}

	for _, c := range fallbacks {
		out, err := c.enc.NewDecoder().Bytes(data)
		if err != nil || bytes.ContainsRune(out, utf8.RuneError) || bytes.IndexByte(out, 0) >= 0 {
			continue
		}
		return out, c.name, nil
	}
	return nil, "", ErrUndecodable
}

// Encoder returns the encoder for a name reported by Decode. Unknown names encode UTF-8.
func Encoder(name string) *encoding.Encoder {
	switch name {
	case EncodingSJIS:
		return japanese.ShiftJIS.NewEncoder()
	case EncodingUTF16:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder()
	case EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	case EncodingUTF8BOM:
		return unicode.UTF8BOM.NewEncoder()
	default:
		return encoding.Nop.NewEncoder()
	}
}
