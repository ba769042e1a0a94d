package tusl

import (
	"bufio"
	"io"
	"strings"

	"github.com/tuslvm/tusl/internal/flushio"
	"github.com/tuslvm/tusl/internal/runeio"
)

// Stream is one side of the VM's I/O: either a buffered byte reader (input)
// or a flush-able byte writer (output), tagged with a name for diagnostics
// and a running Place used to prefix error messages.
//
// A VM always has both an input and an output stream, even when nothing is
// configured: DisableIO installs streams that read immediate EOF and
// discard everything written, so primitives never need to nil-check.
type Stream struct {
	name   string
	place  Place
	reader *bufio.Reader
	writer flushio.Writer
	closer io.Closer
}

func inputStream(name string, r io.Reader) *Stream {
	return &Stream{name: name, place: originPlace(name), reader: bufio.NewReader(r)}
}

func outputStream(name string, w io.Writer) *Stream {
	return &Stream{name: name, writer: flushio.New(w)}
}

func closingInputStream(name string, rc io.ReadCloser) *Stream {
	s := inputStream(name, rc)
	s.closer = rc
	return s
}

func closingOutputStream(name string, wc io.WriteCloser) *Stream {
	s := outputStream(name, wc)
	s.closer = wc
	return s
}

// GetChar reads one byte and advances the stream's place, reporting ok=false
// at EOF.
func (s *Stream) GetChar() (c byte, ok bool) {
	b, err := s.reader.ReadByte()
	if err != nil {
		return 0, false
	}
	s.place.advance(b)
	return b, true
}

// PeekChar reports the next byte without consuming it.
func (s *Stream) PeekChar() (c byte, ok bool) {
	b, err := s.reader.ReadByte()
	if err != nil {
		return 0, false
	}
	s.reader.UnreadByte()
	return b, true
}

// discardLine consumes input up to and including the next newline (or
// EOF), so that after an interactive error the rest of the offending line
// is not re-parsed as further commands.
func (s *Stream) discardLine() {
	for {
		c, ok := s.GetChar()
		if !ok || c == '\n' {
			return
		}
	}
}

// PutByte writes one raw byte to the stream, flushing after a newline.
func (s *Stream) PutByte(c byte) {
	s.writer.Write([]byte{c})
	if c == '\n' {
		s.writer.Flush()
	}
}

// PutString writes a raw byte string to the stream, flushing if it holds a
// newline.
func (s *Stream) PutString(str string) {
	io.WriteString(s.writer, str)
	if strings.IndexByte(str, '\n') >= 0 {
		s.writer.Flush()
	}
}

// PutRune writes r through the ANSI-safe rune encoder, escaping C1 control
// points the way a real terminal expects (internal/runeio), flushing after
// a newline.
func (s *Stream) PutRune(r rune) {
	runeio.WriteRune(s.writer, r)
	if r == '\n' {
		s.writer.Flush()
	}
}

// Flush pushes any buffered output to the underlying writer.
func (s *Stream) Flush() error { return s.writer.Flush() }

// Close flushes and closes the stream if it owns a closer.
func (s *Stream) Close() error {
	var ferr error
	if s.writer != nil {
		ferr = s.writer.Flush()
	}
	if s.closer == nil {
		return ferr
	}
	if err := s.closer.Close(); err != nil {
		return err
	}
	return ferr
}

// DisableIO installs a VM's default no-op input and output: input reads
// immediate EOF, output discards everything written. Primitives and loops
// can therefore always assume vm.input/vm.output are non-nil.
func (vm *VM) DisableIO() {
	vm.input = inputStream("", strings.NewReader(""))
	vm.output = outputStream("", io.Discard)
}

// SetInputFile replaces the input stream with r, named for diagnostics.
// Any previously configured input stream is closed first.
func (vm *VM) SetInputFile(name string, r io.ReadCloser) {
	vm.input.Close()
	vm.input = closingInputStream(name, r)
}

// SetInputString replaces the input stream with an in-memory string, named
// "<string>" for diagnostics per spec.md's loader semantics.
func (vm *VM) SetInputString(s string) {
	vm.input.Close()
	vm.input = inputStream("<string>", strings.NewReader(s))
}

// SetOutputFile replaces the output stream with w, named for diagnostics.
// Any previously configured output stream is flushed and closed first.
func (vm *VM) SetOutputFile(name string, w io.WriteCloser) {
	vm.output.Close()
	vm.output = closingOutputStream(name, w)
}

// PutChar writes one raw byte to the current output stream.
func (vm *VM) PutChar(c byte) { vm.output.PutByte(c) }

// PutString writes a raw byte string to the current output stream.
func (vm *VM) PutString(s string) { vm.output.PutString(s) }

// EmitRune writes r to the current output stream through the ANSI-safe rune
// encoder.
func (vm *VM) EmitRune(r rune) { vm.output.PutRune(r) }

// FlushOutput flushes the current output stream.
func (vm *VM) FlushOutput() error { return vm.output.Flush() }
