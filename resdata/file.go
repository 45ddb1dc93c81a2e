package resdata

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/robert-malhotra/go-resdata/internal/filter"
)

// ErrClosed is returned when operating on a closed file.
var ErrClosed = errors.New("file is closed")

// File is a keyword file opened for reading.
type File struct {
	path   string
	file   *os.File
	rc     io.ReadCloser
	filter filter.Filter
	dec    *Decoder
	opts   []Option
	closed bool
}

// Open opens a keyword file for sequential reading. Compressed files are
// decompressed transparently.
func Open(path string, opts ...Option) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	br := bufio.NewReader(f)
	head, err := br.Peek(filter.MagicSize)
	if err != nil && err != io.EOF {
		f.Close()
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	kf := &File{path: path, file: f, opts: opts}
	var r io.Reader = br
	if flt := filter.Detect(head); flt != nil {
		rc, err := flt.NewReader(br)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		kf.filter = flt
		kf.rc = rc
		r = rc
	}
	kf.dec = NewDecoder(r, opts...)

	applyOptions(opts).logger.Debug("opened keyword file", "path", path, "compression", kf.Compression())
	return kf, nil
}

// Path returns the file path.
func (f *File) Path() string {
	return f.path
}

// Compression returns the name of the compression filter, or "none".
func (f *File) Compression() string {
	if f.filter == nil {
		return "none"
	}
	return f.filter.Name()
}

// Mode returns the detected wire format. It is ModeAuto until the first
// keyword has been read.
func (f *File) Mode() Mode {
	return f.dec.Mode()
}

// Next returns the next keyword, or io.EOF at the end of the file.
func (f *File) Next() (*Keyword, error) {
	if f.closed {
		return nil, ErrClosed
	}
	return f.dec.Next()
}

// Records returns the remaining keywords as a lazy sequence.
func (f *File) Records() iter.Seq2[*Keyword, error] {
	if f.closed {
		return func(yield func(*Keyword, error) bool) {
			yield(nil, ErrClosed)
		}
	}
	return f.dec.Records()
}

// Index builds an offset index over the file. Only uncompressed binary
// files can be indexed.
func (f *File) Index() (*Index, error) {
	if f.closed {
		return nil, ErrClosed
	}
	if f.filter != nil {
		return nil, fmt.Errorf("%s: %s compressed files cannot be indexed", f.path, f.filter.Name())
	}
	info, err := f.file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", f.path, err)
	}
	return BuildIndex(f.file, info.Size(), f.opts...)
}

// Close closes the file.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	if f.rc != nil {
		f.rc.Close()
	}
	return f.file.Close()
}

// ReadFile reads every keyword of the file at path into a store.
func ReadFile(path string, opts ...Option) (*Store, error) {
	f, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Load(f.Records())
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return s, nil
}

// Writer writes keywords to a new file.
type Writer struct {
	path   string
	file   *os.File
	wc     io.WriteCloser
	enc    *Encoder
	closed bool
}

// Create creates or truncates the file at path. Without WithMode or
// WithFormatted the layout follows the file extension: FEGRID, FINIT,
// FUNRST, Fnnnn and Annnn files are formatted, everything else binary.
func Create(path string, opts ...Option) (*Writer, error) {
	o := applyOptions(opts)
	if o.mode == ModeAuto {
		opts = append(append([]Option(nil), opts...), WithFormatted(IsFormattedPath(path)))
	}

	flt, err := compressionFilter(o.compression)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}

	w := &Writer{path: path, file: f}
	var out io.Writer = f
	if flt != nil {
		wc, err := flt.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("creating %s: %w", path, err)
		}
		w.wc = wc
		out = wc
	}
	w.enc = NewEncoder(out, opts...)
	return w, nil
}

func compressionFilter(c Compression) (filter.Filter, error) {
	switch c {
	case CompressionNone:
		return filter.New(filter.IDNone)
	case CompressionGzip:
		return filter.New(filter.IDGzip)
	case CompressionZstd:
		return filter.New(filter.IDZstd)
	case CompressionSnappy:
		return filter.New(filter.IDSnappy)
	default:
		return nil, fmt.Errorf("unknown compression %d", c)
	}
}

// Path returns the file path.
func (w *Writer) Path() string {
	return w.path
}

// Mode returns the layout being written.
func (w *Writer) Mode() Mode {
	return w.enc.Mode()
}

// Write appends one keyword.
func (w *Writer) Write(kw *Keyword) error {
	if w.closed {
		return ErrClosed
	}
	return w.enc.Write(kw)
}

// Close flushes any compression frame and closes the file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if w.wc != nil {
		if err := w.wc.Close(); err != nil {
			w.file.Close()
			return fmt.Errorf("closing %s: %w", w.path, err)
		}
	}
	return w.file.Close()
}

// WriteFile writes kws to a new file at path.
func WriteFile(path string, kws []*Keyword, opts ...Option) error {
	w, err := Create(path, opts...)
	if err != nil {
		return err
	}
	for _, kw := range kws {
		if err := w.Write(kw); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}

// IsFormattedPath reports whether the extension of path names a formatted
// keyword file. Compression suffixes are ignored.
func IsFormattedPath(path string) bool {
	ext := strings.ToUpper(filepath.Ext(path))
	switch ext {
	case ".GZ", ".ZST", ".SZ":
		ext = strings.ToUpper(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
	}
	ext = strings.TrimPrefix(ext, ".")
	if len(ext) < 2 {
		return false
	}
	if len(ext) == 5 && (ext[0] == 'F' || ext[0] == 'A') && isDigits(ext[1:]) {
		return true
	}
	switch ext {
	case "FEGRID", "FGRID", "FINIT", "FUNRST", "FSMSPEC", "FUNSMRY", "FRFT":
		return true
	}
	return false
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
