package sunspec

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NotImplementedText is how a sentinel reading renders.
const NotImplementedText = "Not Implemented"

// statusField is the only ENUMERATED_U register decoded through statusLabels.
const statusField = "I_Status"

var statusLabels = map[uint16]string{
	1: "Off",
	2: "Sleeping",
	3: "Starting",
	4: "MPPT",
	5: "Throttled",
	6: "Shutting down",
	7: "Fault",
	8: "Standby",
}

// uhex4Sentinels is the vendor table of negative codes. Kept literal.
var uhex4Sentinels = map[uint16]string{
	0xFFFF: "-1",
	0xFFFE: "-2",
	0xFFFD: "-3",
	0xFFFC: "-4",
	0xFFFB: "-5",
	0xFFFA: "-6",
	0xFFF9: "-7",
	0xFFF8: "-8",
	0x0000: "0",
}

// Value is a decoded register reading.
type Value struct {
	text    string
	num     float64
	numeric bool
	notImpl bool
}

// NotImplemented is the value of a register holding a sentinel.
func NotImplemented() Value {
	return Value{notImpl: true}
}

// TextValue wraps a non-numeric reading.
func TextValue(s string) Value {
	return Value{text: s}
}

// NumberValue wraps a numeric reading with its rendering.
func NumberValue(n float64, text string) Value {
	return Value{text: text, num: n, numeric: true}
}

func (v Value) String() string {
	if v.notImpl {
		return NotImplementedText
	}
	return v.text
}

func (v Value) IsNotImplemented() bool { return v.notImpl }

// IsNumeric reports whether the reading carries a number.
func (v Value) IsNumeric() bool { return v.numeric }

// Float returns the numeric reading. Sentinels and text report 0.
func (v Value) Float() float64 {
	if v.notImpl {
		return 0
	}
	if v.numeric {
		return v.num
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64); err == nil {
		return n
	}
	return 0
}

func (v Value) Int() int64 {
	return int64(v.Float())
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch {
	case v.notImpl:
		return []byte("null"), nil
	case v.numeric && !strings.HasPrefix(v.text, "0x") && !isLabel(v.text):
		return json.Marshal(v.num)
	default:
		return json.Marshal(v.text)
	}
}

// UnmarshalJSON reads the forms MarshalJSON writes: null, a number or a label.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*v = NotImplemented()
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = TextValue(s)
		return nil
	}
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return fmt.Errorf("sunspec: invalid value %s", trimmed)
	}
	*v = NumberValue(n, trimmed)
	return nil
}

func isLabel(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err != nil
}

// Decode turns the raw words of one field into a Value.
func Decode(raw []uint16, fd FieldDescriptor, obf ObfuscationState) (Value, error) {
	if len(raw) < int(fd.Length) || len(raw) == 0 {
		return Value{}, fmt.Errorf("%w: %s needs %d words, got %d", ErrShortRead, fd.Name, fd.Length, len(raw))
	}
	words := raw[:fd.Length]

	switch fd.Decode {
	case DecodeString:
		return TextValue(decodeString(obf.words(words))), nil

	case DecodeInt32, DecodeHex8:
		if len(words) < 2 {
			return Value{}, fmt.Errorf("%w: %s needs 2 words", ErrShortRead, fd.Name)
		}
		v := uint32(obf.Word(words[0])) | uint32(obf.Word(words[1]))<<16
		if v == 0 || v == math.MaxUint32 {
			return NotImplemented(), nil
		}
		return NumberValue(float64(v), fmt.Sprintf("0x%08X", v)), nil

	case DecodeFloat, DecodeFloat2:
		n := float64(obf.Word(words[0])) / 10
		format := "%.1f"
		if fd.Decode == DecodeFloat2 {
			format = "%.2f"
		}
		return NumberValue(n, fmt.Sprintf(format, n)), nil

	case DecodeIPAddress:
		parts := make([]string, 0, 2*len(words))
		for _, w := range words {
			parts = append(parts, strconv.Itoa(int(w>>8)), strconv.Itoa(int(w&0xFF)))
		}
		return TextValue(strings.Join(parts, ".")), nil

	case DecodeHex4:
		w := obf.Word(words[0])
		if w == 0xFFFF {
			return NotImplemented(), nil
		}
		return NumberValue(float64(w), fmt.Sprintf("0x%04X", w)), nil

	case DecodeUHex4:
		w := obf.Word(words[0])
		if s, ok := uhex4Sentinels[w]; ok {
			n, _ := strconv.Atoi(s)
			return NumberValue(float64(n), s), nil
		}
		return NumberValue(float64(w), fmt.Sprintf("0x%04X", w)), nil

	case DecodeRaw:
		if words[0] == 65535 || words[0] == 32768 {
			return NotImplemented(), nil
		}
		w := obf.Word(words[0])
		if fd.Kind == KindEnumerated && fd.Name == statusField {
			if label, ok := statusLabels[w]; ok {
				return NumberValue(float64(w), label), nil
			}
		}
		n := float64(w)
		return NumberValue(n, strconv.FormatFloat(n, 'f', -1, 64)), nil
	}

	return Value{}, fmt.Errorf("field %s: unknown decode type %q", fd.Name, fd.Decode)
}

func decodeString(words []uint16) string {
	var b strings.Builder
	b.Grow(2 * len(words))
	for _, w := range words {
		b.WriteRune(rune(w >> 8))
		b.WriteRune(rune(w & 0xFF))
	}
	return b.String()
}

// UOM is the engineering-unit class a caller attaches to a write.
type UOM int

const (
	UOMAmpere   UOM = 1
	UOMIndex    UOM = 25
	UOMKilowatt UOM = 30
	UOMVolt     UOM = 72
)

// Encode scales a value in engineering units to register units.
func Encode(v float64, uom UOM) float64 {
	switch uom {
	case UOMIndex:
		return math.Trunc(v)
	case UOMKilowatt:
		return math.Trunc(v * 10)
	case UOMAmpere, UOMVolt:
		return v * 10
	}
	return v
}

// EncodeWord encodes v into a single register word. Negative results are
// written in two's complement.
func EncodeWord(v float64, uom UOM) (uint16, error) {
	scaled := math.Round(Encode(v, uom))
	if math.IsNaN(scaled) || scaled < math.MinInt16 || scaled > math.MaxUint16 {
		return 0, fmt.Errorf("%w: %v (uom %d)", ErrValueRange, v, uom)
	}
	if scaled < 0 {
		return uint16(int16(scaled)), nil
	}
	return uint16(scaled), nil
}
