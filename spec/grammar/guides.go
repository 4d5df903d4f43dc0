package grammar

import (
	"encoding/json"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
)

// Guides is an immutable set of terminal texts. It iterates and serializes in
// sorted order, so a table read from a hand-edited file behaves the same as a
// generated one.
type Guides struct {
	set *treeset.Set
}

func NewGuides(texts ...string) Guides {
	set := treeset.NewWithStringComparator()
	for _, text := range texts {
		set.Add(text)
	}
	return Guides{
		set: set,
	}
}

func (g Guides) Len() int {
	if g.set == nil {
		return 0
	}
	return g.set.Size()
}

func (g Guides) Contains(text string) bool {
	return g.set != nil && g.set.Contains(text)
}

// Texts returns the guides in sorted order.
func (g Guides) Texts() []string {
	texts := make([]string, 0, g.Len())
	if g.set == nil {
		return texts
	}
	it := g.set.Iterator()
	for it.Next() {
		texts = append(texts, it.Value().(string))
	}
	return texts
}

func (g Guides) Union(o Guides) Guides {
	u := NewGuides(g.Texts()...)
	for _, text := range o.Texts() {
		u.set.Add(text)
	}
	return u
}

func (g Guides) Equal(o Guides) bool {
	if g.Len() != o.Len() {
		return false
	}
	for _, text := range g.Texts() {
		if !o.Contains(text) {
			return false
		}
	}
	return true
}

func (g Guides) String() string {
	return strings.Join(g.Texts(), " ")
}

func (g Guides) MarshalJSON() ([]byte, error) {
	if g.set == nil {
		return []byte("[]"), nil
	}
	return g.set.ToJSON()
}

// UnmarshalJSON accepts an array of strings in any order and with duplicates.
func (g *Guides) UnmarshalJSON(b []byte) error {
	var texts []string
	err := json.Unmarshal(b, &texts)
	if err != nil {
		return err
	}
	*g = NewGuides(texts...)
	return nil
}
