package descriptor

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"

	"github.com/ssargent/bitspect/pkg/codec"
	"github.com/ssargent/bitspect/pkg/tree"
)

// Text is a length-prefixed DVB string (EN 300 468 Annex A).
type Text struct {
	Length  uint8
	Raw     []byte // bytes after the length byte, selector included
	Charset string
	Value   string
}

// DecodeText reads one length byte and that many string bytes.
func DecodeText(c *codec.Cursor) (*Text, error) {
	n, err := c.ReadByte()
	if err != nil {
		return nil, err
	}
	raw, err := c.ReadBytes(int(n))
	if err != nil {
		return nil, err
	}
	charset, value := decodeDVBText(raw)
	return &Text{Length: n, Raw: raw, Charset: charset, Value: value}, nil
}

func (t *Text) String() string { return t.Value }

// Fields implements tree.Node.
func (t *Text) Fields() []tree.Field {
	return []tree.Field{
		tree.Value("length", t.Length),
		tree.Value("character_table", t.Charset),
		tree.Value("text", t.Value),
	}
}

const defaultCharset = "ISO/IEC 6937"

// single byte tables by ISO/IEC 8859 part number
var iso8859 = map[int]*charmap.Charmap{
	1:  charmap.ISO8859_1,
	2:  charmap.ISO8859_2,
	3:  charmap.ISO8859_3,
	4:  charmap.ISO8859_4,
	5:  charmap.ISO8859_5,
	6:  charmap.ISO8859_6,
	7:  charmap.ISO8859_7,
	8:  charmap.ISO8859_8,
	9:  charmap.ISO8859_9,
	10: charmap.ISO8859_10,
	11: charmap.Windows874,
	13: charmap.ISO8859_13,
	14: charmap.ISO8859_14,
	15: charmap.ISO8859_15,
	16: charmap.ISO8859_16,
}

// decodeDVBText picks the character table from the leading selector bytes
// and returns the table name and the decoded text.
func decodeDVBText(raw []byte) (string, string) {
	if len(raw) == 0 {
		return defaultCharset, ""
	}

	sel := raw[0]
	switch {
	case sel >= 0x20:
		// ISO/IEC 6937 has no x/text codec; its printable range matches Latin-1
		// apart from the non-spacing diacritics in 0xC1-0xCF.
		return defaultCharset, decodeSingleByte(charmap.ISO8859_1, raw)
	case sel >= 0x01 && sel <= 0x0B:
		part := int(sel) + 4
		if cm, ok := iso8859[part]; ok {
			return fmt.Sprintf("ISO/IEC 8859-%d", part), decodeSingleByte(cm, raw[1:])
		}
	case sel == 0x10:
		if len(raw) >= 3 && raw[1] == 0x00 {
			part := int(raw[2])
			if cm, ok := iso8859[part]; ok {
				return fmt.Sprintf("ISO/IEC 8859-%d", part), decodeSingleByte(cm, raw[3:])
			}
		}
	case sel == 0x11:
		return "ISO/IEC 10646 BMP", strings.Map(bmpControl, decodeWith(unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), raw[1:]))
	case sel == 0x12:
		return "KS X 1001-2004", decodeWith(korean.EUCKR, raw[1:])
	case sel == 0x13:
		return "GB-2312-1980", decodeWith(simplifiedchinese.GBK, raw[1:])
	case sel == 0x14:
		return "Big5", decodeWith(traditionalchinese.Big5, raw[1:])
	case sel == 0x15:
		return "UTF-8", strings.ToValidUTF8(string(raw[1:]), "�")
	}
	return fmt.Sprintf("reserved (0x%02x)", sel), decodeSingleByte(charmap.ISO8859_1, raw[1:])
}

// bmpControl drops the control codes U+E080-U+E09F of two-byte text,
// except CR/LF (U+E08A).
func bmpControl(r rune) rune {
	switch {
	case r == 0xE08A:
		return '\n'
	case r >= 0xE080 && r <= 0xE09F:
		return -1
	}
	return r
}

// decodeSingleByte drops the 0x80-0x9F control codes, except CR/LF (0x8A),
// before decoding.
func decodeSingleByte(cm *charmap.Charmap, b []byte) string {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		switch {
		case c == 0x8A:
			out = append(out, '\n')
		case c >= 0x80 && c <= 0x9F:
		default:
			out = append(out, c)
		}
	}
	return decodeWith(cm, out)
}

func decodeWith(enc encoding.Encoding, b []byte) string {
	s, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return string(s)
}
