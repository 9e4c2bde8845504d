package symtab_test

import (
	"reflect"
	"testing"

	"github.com/agenthands/dendron/pkg/symtab"
)

func TestSymbolTable(t *testing.T) {
	t.Run("DeclareAndLookup", func(t *testing.T) {
		s := symtab.New()
		if _, ok := s.Lookup("x"); ok {
			t.Fatalf("fresh table must not contain x")
		}
		s.Declare("x", 5)
		v, ok := s.Lookup("x")
		if !ok || v != 5 {
			t.Errorf("Lookup(x) = %d, %v; want 5, true", v, ok)
		}
	})

	t.Run("Update", func(t *testing.T) {
		s := symtab.New()
		s.Declare("x", 1)
		s.Declare("x", 2)
		if v, _ := s.Lookup("x"); v != 2 {
			t.Errorf("expected updated value 2, got %d", v)
		}
		if s.Len() != 1 {
			t.Errorf("expected 1 entry, got %d", s.Len())
		}
	})

	t.Run("ZeroValueUsable", func(t *testing.T) {
		var s symtab.Table
		s.Declare("y", 3)
		if !s.Has("y") {
			t.Errorf("zero Table should accept declarations")
		}
	})

	t.Run("NamesSorted", func(t *testing.T) {
		s := symtab.New()
		s.Declare("b", 2)
		s.Declare("a", 1)
		s.Declare("c", 3)
		if got := s.Names(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
			t.Errorf("Names() = %v", got)
		}
		if got := s.String(); got != "{a=1, b=2, c=3}" {
			t.Errorf("String() = %q", got)
		}
	})

	t.Run("CloneIsIndependent", func(t *testing.T) {
		s := symtab.New()
		s.Declare("x", 1)
		c := s.Clone()
		c.Declare("x", 9)
		if v, _ := s.Lookup("x"); v != 1 {
			t.Errorf("clone mutation leaked into original: %d", v)
		}
	})

	t.Run("Reset", func(t *testing.T) {
		s := symtab.New()
		s.Declare("x", 1)
		s.Reset()
		if s.Len() != 0 || s.String() != "{}" {
			t.Errorf("Reset left %s", s)
		}
	})
}
