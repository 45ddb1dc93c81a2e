package resdata

import (
	"fmt"
	"iter"
	"strings"
)

// SeqnumKeyword starts every report step in restart and unified output
// files.
const SeqnumKeyword = "SEQNUM"

// Store holds keywords in file order and indexes them by name.
//
// A Store is not safe for concurrent mutation; concurrent reads are fine
// once loading is complete.
type Store struct {
	keywords []*Keyword
	byName   map[string][]int
	names    []string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{byName: make(map[string][]int)}
}

// Load decodes r into a new store.
func Load(seq iter.Seq2[*Keyword, error]) (*Store, error) {
	s := NewStore()
	if err := s.Ingest(seq); err != nil {
		return nil, err
	}
	return s, nil
}

// Ingest appends every keyword produced by seq. Keywords read before an
// error are kept.
func (s *Store) Ingest(seq iter.Seq2[*Keyword, error]) error {
	for kw, err := range seq {
		if err != nil {
			return err
		}
		s.Add(kw)
	}
	return nil
}

// Add appends kw.
func (s *Store) Add(kw *Keyword) {
	name := kw.Name()
	if _, ok := s.byName[name]; !ok {
		s.names = append(s.names, name)
	}
	s.byName[name] = append(s.byName[name], len(s.keywords))
	s.keywords = append(s.keywords, kw)
}

// Get returns the occ'th keyword called name, counting from zero.
func (s *Store) Get(name string, occ int) (*Keyword, error) {
	name = strings.TrimRight(name, " ")
	positions := s.byName[name]
	if occ < 0 || occ >= len(positions) {
		return nil, fmt.Errorf("%w: %s[%d]", ErrKeywordNotFound, name, occ)
	}
	return s.keywords[positions[occ]], nil
}

// Has reports whether at least one keyword is called name.
func (s *Store) Has(name string) bool {
	return s.Count(name) > 0
}

// Count returns the number of keywords called name.
func (s *Store) Count(name string) int {
	return len(s.byName[strings.TrimRight(name, " ")])
}

// Len returns the total number of keywords.
func (s *Store) Len() int {
	return len(s.keywords)
}

// At returns the i'th keyword in file order.
func (s *Store) At(i int) *Keyword {
	return s.keywords[i]
}

// Names returns the distinct keyword names in first-seen order.
func (s *Store) Names() []string {
	return append([]string(nil), s.names...)
}

// Keywords returns every keyword in file order.
func (s *Store) Keywords() []*Keyword {
	return append([]*Keyword(nil), s.keywords...)
}

// All iterates over the keywords in file order.
func (s *Store) All() iter.Seq2[int, *Keyword] {
	return func(yield func(int, *Keyword) bool) {
		for i, kw := range s.keywords {
			if !yield(i, kw) {
				return
			}
		}
	}
}

// StepCount returns the number of report steps, which is the number of
// SEQNUM keywords.
func (s *Store) StepCount() int {
	return s.Count(SeqnumKeyword)
}

// Step returns a store with the keywords of report step n: the n'th SEQNUM
// keyword and everything up to the next one.
func (s *Store) Step(n int) (*Store, error) {
	positions := s.byName[SeqnumKeyword]
	if n < 0 || n >= len(positions) {
		return nil, fmt.Errorf("%w: report step %d of %d", ErrKeywordNotFound, n, len(positions))
	}
	end := len(s.keywords)
	if n+1 < len(positions) {
		end = positions[n+1]
	}
	step := NewStore()
	for _, kw := range s.keywords[positions[n]:end] {
		step.Add(kw)
	}
	return step, nil
}

// ReportNumbers returns the value of every SEQNUM keyword in file order.
func (s *Store) ReportNumbers() ([]int, error) {
	var out []int
	for _, pos := range s.byName[SeqnumKeyword] {
		values, err := s.keywords[pos].Int32s()
		if err != nil {
			return nil, err
		}
		if len(values) == 0 {
			return nil, fmt.Errorf("%s at position %d has no value", SeqnumKeyword, pos)
		}
		out = append(out, int(values[0]))
	}
	return out, nil
}
