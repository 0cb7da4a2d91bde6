// File: interactions.go
// Role: the frozen user-item interaction table and its matrix view.
//
// Ordering contract: a frozen InteractionSet is sorted by (user position,
// item position, timestamp), so repeated exports are byte-stable and the
// CSR row/column structure never depends on insertion order.

package dataset

import (
	"sort"

	"github.com/james-bowman/sparse"

	"github.com/katalvlaran/recdata/vocab"
)

// Interaction is one user-item event, optionally carrying a rating and a
// Unix timestamp.  HasRating distinguishes an explicit rating of zero
// from implicit feedback with no rating at all.
type Interaction struct {
	User      vocab.ID
	Item      vocab.ID
	Rating    float64
	HasRating bool
	Timestamp int64
}

// InteractionSet is the immutable interaction log of a built Dataset.
type InteractionSet struct {
	users *vocab.Vocabulary
	items *vocab.Vocabulary
	recs  []Interaction
	upos  []int
	ipos  []int
}

// freezeInteractions snapshots and canonically orders the builder's
// interaction log against the frozen vocabularies.  Both vocabularies are
// nil exactly when the corresponding class was never created; the set is
// then empty by construction (AddInteractions requires both classes).
func freezeInteractions(recs []Interaction, users, items *vocab.Vocabulary) *InteractionSet {
	s := &InteractionSet{users: users, items: items}
	if len(recs) == 0 {
		return s
	}
	s.recs = append([]Interaction(nil), recs...)
	s.upos = make([]int, len(s.recs))
	s.ipos = make([]int, len(s.recs))
	for i, rec := range s.recs {
		s.upos[i] = s.users.PositionOr(rec.User, -1)
		s.ipos[i] = s.items.PositionOr(rec.Item, -1)
	}
	order := make([]int, len(s.recs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if s.upos[ia] != s.upos[ib] {
			return s.upos[ia] < s.upos[ib]
		}
		if s.ipos[ia] != s.ipos[ib] {
			return s.ipos[ia] < s.ipos[ib]
		}
		return s.recs[ia].Timestamp < s.recs[ib].Timestamp
	})
	recs2 := make([]Interaction, len(s.recs))
	upos2 := make([]int, len(s.recs))
	ipos2 := make([]int, len(s.recs))
	for i, j := range order {
		recs2[i] = s.recs[j]
		upos2[i] = s.upos[j]
		ipos2[i] = s.ipos[j]
	}
	s.recs, s.upos, s.ipos = recs2, upos2, ipos2
	return s
}

// Len reports the number of interaction records.
func (s *InteractionSet) Len() int { return len(s.recs) }

// Records returns a copy of the canonically ordered interaction log.
func (s *InteractionSet) Records() []Interaction {
	return append([]Interaction(nil), s.recs...)
}

// Timestamps returns the record timestamps in canonical order.
func (s *InteractionSet) Timestamps() []int64 {
	out := make([]int64, len(s.recs))
	for i, rec := range s.recs {
		out[i] = rec.Timestamp
	}
	return out
}

// Users returns a copy of the user vocabulary backing the matrix rows,
// or nil when the dataset has no user class.
func (s *InteractionSet) Users() *vocab.Vocabulary {
	if s.users == nil {
		return nil
	}
	return s.users.Clone()
}

// Items returns a copy of the item vocabulary backing the matrix
// columns, or nil when the dataset has no item class.
func (s *InteractionSet) Items() *vocab.Vocabulary {
	if s.items == nil {
		return nil
	}
	return s.items.Clone()
}

// Matrix materializes the interaction log as a users × items CSR matrix.
// The stored value is the rating when the record carries one and 1
// otherwise (an implicit-feedback indicator).  When a (user, item) pair
// occurs more than once, the record with the latest timestamp wins.
//
// The matrix is nil when no interactions were recorded.
//
// Complexity: O(n) over records after the one-time canonical sort.
func (s *InteractionSet) Matrix() *sparse.CSR {
	if len(s.recs) == 0 {
		return nil
	}
	ia, ja, data := s.assemble()
	return sparse.NewCSR(s.users.Len(), s.items.Len(), ia, ja, data)
}

// CSR exposes the rating matrix as raw compressed-sparse-row arrays.
func (s *InteractionSet) CSR() CSRData {
	if len(s.recs) == 0 {
		return CSRData{RowPtr: []int{0}, ColInd: []int{}, Values: []float64{}}
	}
	ia, ja, data := s.assemble()
	return CSRData{
		NRows:  s.users.Len(),
		NCols:  s.items.Len(),
		RowPtr: ia,
		ColInd: ja,
		Values: data,
	}
}

// assemble builds the deduplicated CSR arrays of the rating matrix.
func (s *InteractionSet) assemble() (ia, ja []int, data []float64) {
	nu := s.users.Len()
	ia = make([]int, nu+1)
	ja = []int{}
	data = []float64{}
	row := 0
	for i := 0; i < len(s.recs); i++ {
		// canonical order puts the newest record of each pair last
		if i+1 < len(s.recs) && s.upos[i+1] == s.upos[i] && s.ipos[i+1] == s.ipos[i] {
			continue
		}
		for row < s.upos[i] {
			row++
			ia[row] = len(ja)
		}
		ja = append(ja, s.ipos[i])
		v := 1.0
		if s.recs[i].HasRating {
			v = s.recs[i].Rating
		}
		data = append(data, v)
	}
	for row < nu {
		row++
		ia[row] = len(ja)
	}
	return ia, ja, data
}
