// Package capture stores frame streams in CBOR capture files so a session can
// be replayed through the command assembler later. A capture file is a plain
// sequence of CBOR encoded records, one per frame.
package capture

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/maxpert/amqp-go-client/protocol"
)

const (
	FileExtension     = ".cbor"
	TempFileExtension = ".tmp"
)

// Record is one captured frame
type Record struct {
	Type     byte   `cbor:"1,keyasint"`
	Channel  uint16 `cbor:"2,keyasint"`
	Payload  []byte `cbor:"3,keyasint"`
	Captured int64  `cbor:"4,keyasint,omitempty"` // unix nanoseconds
}

// Writer appends frames to a capture stream. It is safe for concurrent use.
type Writer struct {
	mu    sync.Mutex
	enc   *cbor.Encoder
	count int
	now   func() time.Time
}

// NewWriter returns a Writer encoding records to w
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: cbor.NewEncoder(w), now: time.Now}
}

// WriteFrame appends a frame to the capture
func (w *Writer) WriteFrame(f *protocol.Frame) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	rec := Record{
		Type:     f.Type,
		Channel:  f.Channel,
		Payload:  f.Payload,
		Captured: w.now().UnixNano(),
	}
	if err := w.enc.Encode(&rec); err != nil {
		return fmt.Errorf("failed to encode capture record: %w", err)
	}
	w.count++
	return nil
}

// Count returns the number of frames written
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Reader replays frames from a capture stream. It implements
// protocol.FrameReader and returns io.EOF after the last record.
type Reader struct {
	dec *cbor.Decoder
}

// NewReader returns a Reader decoding records from r
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: cbor.NewDecoder(r)}
}

// ReadRecord returns the next raw record
func (r *Reader) ReadRecord() (*Record, error) {
	var rec Record
	if err := r.dec.Decode(&rec); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to decode capture record: %w", err)
	}
	return &rec, nil
}

// ReadFrame returns the next captured frame
func (r *Reader) ReadFrame() (*protocol.Frame, error) {
	rec, err := r.ReadRecord()
	if err != nil {
		return nil, err
	}
	return &protocol.Frame{
		Type:    rec.Type,
		Channel: rec.Channel,
		Size:    uint32(len(rec.Payload)),
		Payload: rec.Payload,
	}, nil
}

// Recorder is a protocol.FrameReader that copies every frame it reads from
// a source into a capture Writer.
type Recorder struct {
	src protocol.FrameReader
	w   *Writer
}

// NewRecorder wraps src so frames read from it are also written to w
func NewRecorder(src protocol.FrameReader, w *Writer) *Recorder {
	return &Recorder{src: src, w: w}
}

// ReadFrame reads a frame from the source and records it
func (r *Recorder) ReadFrame() (*protocol.Frame, error) {
	f, err := r.src.ReadFrame()
	if err != nil {
		return nil, err
	}
	if err := r.w.WriteFrame(f); err != nil {
		return nil, err
	}
	return f, nil
}

// File is a capture Writer backed by a file. Frames go to a temporary file
// that is renamed into place on Close, so readers never see a half written
// capture.
type File struct {
	*Writer
	path     string
	tempPath string
	file     *os.File
}

// Create starts a new capture file at path
func Create(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	tempPath := path + TempFileExtension
	file, err := os.Create(tempPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	return &File{
		Writer:   NewWriter(file),
		path:     path,
		tempPath: tempPath,
		file:     file,
	}, nil
}

// Path returns the final location of the capture
func (f *File) Path() string {
	return f.path
}

// Close flushes the capture to disk and moves it into place
func (f *File) Close() error {
	if err := f.file.Sync(); err != nil {
		f.file.Close()
		os.Remove(f.tempPath)
		return fmt.Errorf("failed to sync capture file: %w", err)
	}
	if err := f.file.Close(); err != nil {
		os.Remove(f.tempPath)
		return fmt.Errorf("failed to close capture file: %w", err)
	}
	if err := os.Rename(f.tempPath, f.path); err != nil {
		os.Remove(f.tempPath) // Clean up on failure
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
