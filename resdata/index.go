package resdata

import (
	stdbinary "encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/robert-malhotra/go-resdata/internal/binary"
)

// IndexEntry locates one keyword inside a binary keyword file.
type IndexEntry struct {
	Name     string
	Type     Type
	Count    int
	Offset   int64
	Size     int64
	Checksum uint64
}

// Index is an offset table over a binary keyword file. It allows random
// access to individual keywords without decoding the whole file.
type Index struct {
	ra      io.ReaderAt
	size    int64
	order   stdbinary.ByteOrder
	opts    *options
	entries []IndexEntry
}

// BuildIndex scans a binary keyword file and records the offset, size and
// checksum of every keyword. Formatted files cannot be indexed.
func BuildIndex(ra io.ReaderAt, size int64, opts ...Option) (*Index, error) {
	o := applyOptions(opts)
	if o.mode == ModeFormatted {
		return nil, fmt.Errorf("%w: formatted files cannot be indexed", ErrUnknownFormat)
	}

	order := o.order
	if order == nil {
		head := make([]byte, binary.MarkerSize)
		if _, err := ra.ReadAt(head, 0); err == nil {
			var mode Mode
			mode, order = sniff(head, nil)
			if mode != ModeBinary {
				return nil, formatError(0, "", ErrUnknownFormat, nil)
			}
		} else if size > 0 {
			return nil, formatError(0, "", ErrIncompleteRecord, err)
		}
	}
	if order == nil {
		order = stdbinary.BigEndian
	}

	idx := &Index{ra: ra, size: size, order: order, opts: o}
	dec := newBinaryDecoder(binary.At(ra, 0, size, binary.Config{ByteOrder: order}), o)
	for {
		start := dec.Offset()
		kw, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		idx.entries = append(idx.entries, IndexEntry{
			Name:     kw.Name(),
			Type:     kw.Type(),
			Count:    kw.Len(),
			Offset:   start,
			Size:     dec.Offset() - start,
			Checksum: keywordChecksum(kw),
		})
	}

	o.logger.Debug("indexed keyword file", "keywords", len(idx.entries), "size", size)
	return idx, nil
}

// keywordChecksum digests the logical content of a keyword, independent of
// the byte order it was stored in.
func keywordChecksum(kw *Keyword) uint64 {
	d := binary.NewDigest()
	d.Write([]byte(kw.header))
	d.Write([]byte(kw.typ.Tag()))
	var n [4]byte
	stdbinary.BigEndian.PutUint32(n[:], uint32(kw.count))
	d.Write(n[:])
	d.Write(kw.data)
	return d.Sum64()
}

// Len returns the number of indexed keywords.
func (x *Index) Len() int {
	return len(x.entries)
}

// Entries returns a copy of the index table.
func (x *Index) Entries() []IndexEntry {
	return append([]IndexEntry(nil), x.entries...)
}

// Entry returns the i'th index entry.
func (x *Index) Entry(i int) IndexEntry {
	return x.entries[i]
}

// Find returns the position of the occ'th keyword called name, counting
// from zero.
func (x *Index) Find(name string, occ int) (int, error) {
	name = strings.TrimRight(name, " ")
	seen := 0
	for i, e := range x.entries {
		if e.Name != name {
			continue
		}
		if seen == occ {
			return i, nil
		}
		seen++
	}
	return -1, fmt.Errorf("%w: %s[%d]", ErrKeywordNotFound, name, occ)
}

// Read decodes the i'th keyword and verifies it against the checksum taken
// when the index was built.
func (x *Index) Read(i int) (*Keyword, error) {
	if i < 0 || i >= len(x.entries) {
		return nil, fmt.Errorf("index %d out of range [0,%d)", i, len(x.entries))
	}
	e := x.entries[i]
	r := binary.At(x.ra, e.Offset, e.Offset+e.Size, binary.Config{ByteOrder: x.order})
	kw, err := newBinaryDecoder(r, x.opts).Next()
	if err == io.EOF {
		return nil, formatError(e.Offset, e.Name, ErrIncompleteRecord, nil)
	}
	if err != nil {
		return nil, err
	}
	if sum := keywordChecksum(kw); sum != e.Checksum {
		return nil, formatError(e.Offset, e.Name, ErrChecksumMismatch,
			fmt.Errorf("got %016x, want %016x", sum, e.Checksum))
	}
	return kw, nil
}

// Get returns the occ'th keyword called name.
func (x *Index) Get(name string, occ int) (*Keyword, error) {
	i, err := x.Find(name, occ)
	if err != nil {
		return nil, err
	}
	return x.Read(i)
}
