package protocol

import (
	"bytes"
	"strings"
	"testing"
	"time"

	amqperrors "github.com/maxpert/amqp-go-client/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitsPackLSBFirst(t *testing.T) {
	tests := []struct {
		name     string
		flags    []bool
		expected []byte
	}{
		{"single set", []bool{true}, []byte{0x01}},
		{"single clear", []bool{false}, []byte{0x00}},
		{"second only", []bool{false, true}, []byte{0x02}},
		{"five mixed", []bool{true, false, true, false, true}, []byte{0x15}},
		{"nine spill", []bool{true, true, true, true, true, true, true, true, true}, []byte{0xFF, 0x01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			e := newEncoder(&buf)
			e.bits(tt.flags...)
			require.NoError(t, e.err)
			assert.Equal(t, tt.expected, buf.Bytes())

			got := make([]bool, len(tt.flags))
			ptrs := make([]*bool, len(got))
			for i := range got {
				ptrs[i] = &got[i]
			}
			d := newDecoder(buf.Bytes())
			d.bits(ptrs...)
			require.NoError(t, d.err)
			assert.Equal(t, tt.flags, got)
		})
	}
}

func TestShortStringTooLong(t *testing.T) {
	var buf bytes.Buffer
	e := newEncoder(&buf)
	e.shortstr(strings.Repeat("x", 256))
	e.octet(1)

	require.Error(t, e.err)
	assert.Equal(t, amqperrors.SyntaxError, amqperrors.GetErrorCode(e.err))
	assert.Equal(t, 0, buf.Len(), "writes after a failure must be dropped")
}

func TestDecoderCopiesStrings(t *testing.T) {
	data := []byte{3, 'a', 'b', 'c'}
	d := newDecoder(data)
	s := d.shortstr()
	require.NoError(t, d.err)

	data[1] = 'z'
	assert.Equal(t, "abc", s)
}

func TestDecoderTruncation(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		read func(d *decoder)
	}{
		{"short", []byte{0x01}, func(d *decoder) { d.short() }},
		{"long", []byte{0, 0, 1}, func(d *decoder) { d.long() }},
		{"longlong", []byte{0, 0, 0, 0, 1}, func(d *decoder) { d.longlong() }},
		{"shortstr", []byte{5, 'a', 'b'}, func(d *decoder) { d.shortstr() }},
		{"longstr", []byte{0, 0, 0, 9, 'a'}, func(d *decoder) { d.longstr() }},
		{"table", []byte{0, 0, 0, 4, 1, 'k'}, func(d *decoder) { d.table() }},
		{"table value", []byte{0, 0, 0, 3, 1, 'k', 'I'}, func(d *decoder) { d.table() }},
		{"unknown field type", []byte{0, 0, 0, 3, 1, 'k', 'Z'}, func(d *decoder) { d.table() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDecoder(tt.data)
			tt.read(d)
			require.Error(t, d.err)
			assert.Equal(t, amqperrors.SyntaxError, amqperrors.GetErrorCode(d.err))
		})
	}
}

func TestFieldTableRoundTrip(t *testing.T) {
	stamp := time.Unix(1700000000, 0).UTC()
	table := Table{
		"bool":      true,
		"int8":      int8(-5),
		"uint8":     uint8(200),
		"int16":     int16(-1234),
		"int32":     int32(-123456),
		"int64":     int64(1) << 40,
		"float32":   float32(1.5),
		"float64":   2.25,
		"decimal":   Decimal{Scale: 2, Value: 12345},
		"string":    "value",
		"bytes":     []byte{1, 2, 3},
		"array":     []interface{}{"a", int32(1), false},
		"timestamp": stamp,
		"nested":    Table{"x-match": "all"},
		"void":      nil,
	}

	var buf bytes.Buffer
	e := newEncoder(&buf)
	e.table(table)
	require.NoError(t, e.err)

	d := newDecoder(buf.Bytes())
	decoded := d.table()
	require.NoError(t, d.err)
	assert.Equal(t, table, decoded)
	assert.Equal(t, buf.Len(), d.off)
}

func TestFieldTableIntEncodesAsLong(t *testing.T) {
	var buf bytes.Buffer
	e := newEncoder(&buf)
	e.table(Table{"x-max-length": 10})
	require.NoError(t, e.err)

	d := newDecoder(buf.Bytes())
	decoded := d.table()
	require.NoError(t, d.err)
	assert.Equal(t, int64(10), decoded["x-max-length"])
}

func TestFieldTableDeterministic(t *testing.T) {
	table := Table{"b": "2", "a": "1", "c": "3"}

	var first, second bytes.Buffer
	newEncoder(&first).table(table)
	newEncoder(&second).table(table)

	assert.Equal(t, first.Bytes(), second.Bytes())
	// keys appear sorted: 4-byte length, then 'a'
	assert.Equal(t, byte('a'), first.Bytes()[5])
}

func TestFieldTableUnsignedWireTypes(t *testing.T) {
	// 'u' and 'i' are produced by brokers; they decode to the next wider
	// signed type so the table can be sent again.
	data := []byte{
		0, 0, 0, 12,
		1, 'u', 'u', 0xFF, 0xFE,
		1, 'i', 'i', 0xFF, 0xFF, 0xFF, 0xFF,
	}
	d := newDecoder(data)
	decoded := d.table()
	require.NoError(t, d.err)
	assert.Equal(t, int32(0xFFFE), decoded["u"])
	assert.Equal(t, int64(0xFFFFFFFF), decoded["i"])
}

func TestDecodedTableEncodesAgain(t *testing.T) {
	data := []byte{
		0, 0, 0, 34,
		1, 'u', 'u', 0x00, 0x07,
		1, 'i', 'i', 0x00, 0x00, 0x00, 0x07,
		1, 'b', 'b', 0xFB,
		1, 'B', 'B', 0xC8,
		1, 'n', 'F', 0, 0, 0, 0,
		1, 'a', 'A', 0, 0, 0, 0,
	}
	d := newDecoder(data)
	decoded := d.table()
	require.NoError(t, d.err)

	payload, err := EncodeMethod(&QueueBindMethod{Queue: "q", Exchange: "x", Arguments: decoded})
	require.NoError(t, err)

	raw, err := ParseMethodRecord(payload)
	require.NoError(t, err)
	resent := &QueueBindMethod{}
	require.NoError(t, DecodeMethodInto(raw, resent))
	assert.Equal(t, decoded, resent.Arguments)
}

func TestTimestampWholeSecondsUTC(t *testing.T) {
	sent := time.Date(2024, 1, 2, 3, 4, 5, 600, time.UTC)

	var buf bytes.Buffer
	e := newEncoder(&buf)
	e.timestamp(sent)
	require.NoError(t, e.err)

	d := newDecoder(buf.Bytes())
	decoded := d.timestamp()
	require.NoError(t, d.err)
	assert.Equal(t, sent.Truncate(time.Second), decoded)
	assert.Equal(t, time.UTC, decoded.Location())
}

func TestFieldTableRejectsUnsupportedValues(t *testing.T) {
	var buf bytes.Buffer
	e := newEncoder(&buf)
	e.table(Table{"chan": make(chan int)})

	require.Error(t, e.err)
	assert.Equal(t, amqperrors.SyntaxError, amqperrors.GetErrorCode(e.err))
}

func TestEmptyTable(t *testing.T) {
	for _, table := range []Table{nil, {}} {
		var buf bytes.Buffer
		e := newEncoder(&buf)
		e.table(table)
		require.NoError(t, e.err)
		assert.Equal(t, []byte{0, 0, 0, 0}, buf.Bytes())

		d := newDecoder(buf.Bytes())
		decoded := d.table()
		require.NoError(t, d.err)
		assert.Nil(t, decoded)
	}
}
