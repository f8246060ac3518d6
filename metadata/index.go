package metadata

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// RowSet is a set of batch row indices backed by a 32-bit Roaring Bitmap.
// It is the currency of categorical filtering: the insight layer intersects
// row sets to aggregate over a metadata-selected subset of a batch.
type RowSet struct {
	rb *roaring.Bitmap
}

// NewRowSet creates a new empty row set.
func NewRowSet() *RowSet {
	return &RowSet{rb: roaring.New()}
}

// Add adds a row index to the set.
func (s *RowSet) Add(row int) {
	s.rb.Add(uint32(row))
}

// Contains checks if a row index is in the set.
func (s *RowSet) Contains(row int) bool {
	return s.rb.Contains(uint32(row))
}

// IsEmpty returns true if the set is empty.
func (s *RowSet) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Cardinality returns the number of rows in the set.
func (s *RowSet) Cardinality() uint64 {
	return s.rb.GetCardinality()
}

// Clone returns a deep copy of the set.
func (s *RowSet) Clone() *RowSet {
	return &RowSet{rb: s.rb.Clone()}
}

// And intersects the set with other in place.
func (s *RowSet) And(other *RowSet) {
	s.rb.And(other.rb)
}

// Or unions the set with other in place.
func (s *RowSet) Or(other *RowSet) {
	s.rb.Or(other.rb)
}

// Rows iterates the set in ascending row order.
func (s *RowSet) Rows() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}

// Index is an inverted index from (field, value) pairs to the rows that
// carry them. Values are keyed by their stable Key() representation.
//
// The index is built once per batch and read-only afterwards.
type Index struct {
	fields map[string]map[string]*RowSet
	n      int
}

// BuildIndex indexes the metadata of each row. The slice order defines the
// row numbering.
func BuildIndex(rows []Metadata) *Index {
	idx := &Index{
		fields: make(map[string]map[string]*RowSet),
		n:      len(rows),
	}

	for row, md := range rows {
		for field, v := range md {
			values, ok := idx.fields[field]
			if !ok {
				values = make(map[string]*RowSet)
				idx.fields[field] = values
			}
			set, ok := values[v.Key()]
			if !ok {
				set = NewRowSet()
				values[v.Key()] = set
			}
			set.Add(row)
		}
	}

	return idx
}

// Len returns the number of indexed rows.
func (idx *Index) Len() int { return idx.n }

// Eq returns the rows whose field equals v. The returned set is a copy and
// may be mutated by the caller.
func (idx *Index) Eq(field string, v Value) *RowSet {
	if values, ok := idx.fields[field]; ok {
		if set, ok := values[v.Key()]; ok {
			return set.Clone()
		}
	}
	return NewRowSet()
}

// All returns the set of every indexed row.
func (idx *Index) All() *RowSet {
	s := NewRowSet()
	if idx.n > 0 {
		s.rb.AddRange(0, uint64(idx.n))
	}
	return s
}
