package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"maps"
	"math"
	"slices"
	"time"

	amqperrors "github.com/maxpert/amqp-go-client/errors"
)

// encoder writes AMQP 0-9-1 argument fields into a buffer. The first failure
// is kept in err and every later write becomes a no-op.
type encoder struct {
	buf *bytes.Buffer
	err error
}

func newEncoder(buf *bytes.Buffer) *encoder {
	return &encoder{buf: buf}
}

func (e *encoder) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

func (e *encoder) octet(v byte) {
	if e.err != nil {
		return
	}
	e.buf.WriteByte(v)
}

func (e *encoder) short(v uint16) {
	if e.err != nil {
		return
	}
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	e.buf.Write(b[:])
}

func (e *encoder) long(v uint32) {
	if e.err != nil {
		return
	}
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	e.buf.Write(b[:])
}

func (e *encoder) longlong(v uint64) {
	if e.err != nil {
		return
	}
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	e.buf.Write(b[:])
}

func (e *encoder) shortstr(s string) {
	if e.err != nil {
		return
	}
	if len(s) > math.MaxUint8 {
		e.fail(amqperrors.NewSyntaxError(fmt.Sprintf("short string of %d bytes exceeds 255", len(s))))
		return
	}
	e.buf.WriteByte(byte(len(s)))
	e.buf.WriteString(s)
}

func (e *encoder) longstr(s string) {
	e.long(uint32(len(s)))
	if e.err != nil {
		return
	}
	e.buf.WriteString(s)
}

func (e *encoder) longbytes(b []byte) {
	e.long(uint32(len(b)))
	if e.err != nil {
		return
	}
	e.buf.Write(b)
}

// timestamp writes whole seconds since the epoch; sub-second precision is
// not representable on the wire.
func (e *encoder) timestamp(t time.Time) {
	e.longlong(uint64(t.Unix()))
}

// bits packs consecutive bit fields into octets, least significant bit first.
func (e *encoder) bits(flags ...bool) {
	for start := 0; start < len(flags); start += 8 {
		var packed byte
		for i := start; i < len(flags) && i < start+8; i++ {
			if flags[i] {
				packed |= 1 << uint(i-start)
			}
		}
		e.octet(packed)
	}
}

// table writes a length-prefixed field table. Keys are written in sorted
// order so equal tables always encode to equal bytes.
func (e *encoder) table(t Table) {
	if e.err != nil {
		return
	}
	if err := t.Validate(); err != nil {
		e.fail(amqperrors.NewSyntaxError(fmt.Sprintf("invalid field table: %v", err)))
		return
	}

	inner := getBuffer()
	defer putBuffer(inner)
	nested := newEncoder(inner)
	for _, key := range slices.Sorted(maps.Keys(t)) {
		nested.shortstr(key)
		nested.field(t[key])
	}
	if nested.err != nil {
		e.fail(nested.err)
		return
	}
	e.longbytes(inner.Bytes())
}

func (e *encoder) array(values []interface{}) {
	inner := getBuffer()
	defer putBuffer(inner)
	nested := newEncoder(inner)
	for _, v := range values {
		nested.field(v)
	}
	if nested.err != nil {
		e.fail(nested.err)
		return
	}
	e.longbytes(inner.Bytes())
}

func (e *encoder) field(value interface{}) {
	switch v := value.(type) {
	case nil:
		e.octet('V')
	case bool:
		e.octet('t')
		if v {
			e.octet(1)
		} else {
			e.octet(0)
		}
	case int8:
		e.octet('b')
		e.octet(byte(v))
	case uint8:
		e.octet('B')
		e.octet(v)
	case int16:
		e.octet('s')
		e.short(uint16(v))
	case int32:
		e.octet('I')
		e.long(uint32(v))
	case int64:
		e.octet('l')
		e.longlong(uint64(v))
	case int:
		e.octet('l')
		e.longlong(uint64(v))
	case float32:
		e.octet('f')
		e.long(math.Float32bits(v))
	case float64:
		e.octet('d')
		e.longlong(math.Float64bits(v))
	case Decimal:
		e.octet('D')
		e.octet(v.Scale)
		e.long(uint32(v.Value))
	case string:
		e.octet('S')
		e.longstr(v)
	case []byte:
		e.octet('x')
		e.longbytes(v)
	case []interface{}:
		e.octet('A')
		e.array(v)
	case time.Time:
		e.octet('T')
		e.timestamp(v)
	case Table:
		e.octet('F')
		e.table(v)
	default:
		e.fail(amqperrors.NewSyntaxError(fmt.Sprintf("unsupported field value type %T", value)))
	}
}

// decoder reads AMQP 0-9-1 argument fields from a byte slice. Like encoder
// it keeps the first failure; reads after a failure return zero values.
// Strings and byte arrays are copied so decoded values never alias the frame.
type decoder struct {
	data []byte
	off  int
	err  error
}

func newDecoder(data []byte) *decoder {
	return &decoder{data: data}
}

func (d *decoder) need(n int, what string) bool {
	if d.err != nil {
		return false
	}
	if n < 0 || len(d.data)-d.off < n {
		d.err = amqperrors.NewSyntaxError(fmt.Sprintf("%s truncated at offset %d", what, d.off))
		return false
	}
	return true
}

func (d *decoder) octet() byte {
	if !d.need(1, "octet") {
		return 0
	}
	v := d.data[d.off]
	d.off++
	return v
}

func (d *decoder) short() uint16 {
	if !d.need(2, "short") {
		return 0
	}
	v := binary.BigEndian.Uint16(d.data[d.off:])
	d.off += 2
	return v
}

func (d *decoder) long() uint32 {
	if !d.need(4, "long") {
		return 0
	}
	v := binary.BigEndian.Uint32(d.data[d.off:])
	d.off += 4
	return v
}

func (d *decoder) longlong() uint64 {
	if !d.need(8, "longlong") {
		return 0
	}
	v := binary.BigEndian.Uint64(d.data[d.off:])
	d.off += 8
	return v
}

func (d *decoder) shortstr() string {
	n := int(d.octet())
	if !d.need(n, "short string") {
		return ""
	}
	s := string(d.data[d.off : d.off+n])
	d.off += n
	return s
}

func (d *decoder) longbytes(what string) []byte {
	n := d.long()
	if d.err != nil {
		return nil
	}
	if uint64(n) > uint64(len(d.data)-d.off) {
		d.err = amqperrors.NewSyntaxError(fmt.Sprintf("%s of %d bytes truncated at offset %d", what, n, d.off))
		return nil
	}
	b := make([]byte, n)
	copy(b, d.data[d.off:])
	d.off += int(n)
	return b
}

func (d *decoder) longstr() string {
	return string(d.longbytes("long string"))
}

func (d *decoder) timestamp() time.Time {
	v := d.longlong()
	if d.err != nil {
		return time.Time{}
	}
	return time.Unix(int64(v), 0).UTC()
}

// bits unpacks consecutive bit fields written by encoder.bits.
func (d *decoder) bits(flags ...*bool) {
	var packed byte
	for i, flag := range flags {
		if i%8 == 0 {
			packed = d.octet()
		}
		*flag = packed&(1<<uint(i%8)) != 0
	}
}

// table reads a field table. A zero-length table decodes as nil, matching
// the nil Table the encoder writes as an empty one.
func (d *decoder) table() Table {
	raw := d.longbytes("field table")
	if d.err != nil {
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	nested := newDecoder(raw)
	t := make(Table)
	for nested.off < len(nested.data) && nested.err == nil {
		key := nested.shortstr()
		value := nested.field()
		if nested.err == nil {
			t[key] = value
		}
	}
	if nested.err != nil {
		d.err = nested.err
		return nil
	}
	return t
}

func (d *decoder) array() []interface{} {
	raw := d.longbytes("field array")
	if d.err != nil {
		return nil
	}
	nested := newDecoder(raw)
	values := []interface{}{}
	for nested.off < len(nested.data) && nested.err == nil {
		v := nested.field()
		if nested.err == nil {
			values = append(values, v)
		}
	}
	if nested.err != nil {
		d.err = nested.err
		return nil
	}
	return values
}

func (d *decoder) field() interface{} {
	kind := d.octet()
	if d.err != nil {
		return nil
	}

	switch kind {
	case 'V':
		return nil
	case 't':
		return d.octet() != 0
	case 'b':
		return int8(d.octet())
	case 'B':
		return d.octet()
	case 's':
		return int16(d.short())
	case 'u':
		// widened so the value passes Table.Validate when sent again
		return int32(d.short())
	case 'I':
		return int32(d.long())
	case 'i':
		return int64(d.long())
	case 'l':
		return int64(d.longlong())
	case 'f':
		return math.Float32frombits(d.long())
	case 'd':
		return math.Float64frombits(d.longlong())
	case 'D':
		scale := d.octet()
		value := int32(d.long())
		return Decimal{Scale: scale, Value: value}
	case 'S':
		return d.longstr()
	case 'x':
		return d.longbytes("byte array")
	case 'A':
		return d.array()
	case 'T':
		return d.timestamp()
	case 'F':
		return d.table()
	}

	d.err = amqperrors.NewSyntaxError(fmt.Sprintf("unknown field value type %q at offset %d", kind, d.off-1))
	return nil
}
