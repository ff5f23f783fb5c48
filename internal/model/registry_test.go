package model

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func fieldOf(wire string, typ TypeRef) FieldDescriptor {
	return FieldDescriptor{WireName: wire, LocalName: wire, Type: typ, Optional: true}
}

func TestRegistry_RegisterAppendsAndOverwrites(t *testing.T) {
	r := NewRegistry(CollisionOverwrite, nil)
	first := RecordDefinition{Fields: []FieldDescriptor{fieldOf("a", Scalar(TypeString))}}
	second := RecordDefinition{Fields: []FieldDescriptor{fieldOf("b", Scalar(TypeBool))}}

	r.Register("Address", first)
	r.Register("Model", RecordDefinition{})
	r.Register("Address", second)

	if r.Len() != 3 {
		t.Fatalf("expected 3 queued names, got %d", r.Len())
	}

	drained := r.Drain()
	names := make([]string, 0, len(drained))
	for _, def := range drained {
		names = append(names, def.Name)
	}
	if diff := cmp.Diff([]string{"Address", "Model", "Address"}, names); diff != "" {
		t.Fatalf("emission order mismatch (-want +got):\n%s", diff)
	}
	// Both Address slots resolve to the final definition at drain time.
	for _, idx := range []int{0, 2} {
		if drained[idx].Fields[0].WireName != "b" {
			t.Fatalf("slot %d rendered stale definition: %+v", idx, drained[idx])
		}
	}

	if r.Len() != 0 {
		t.Fatalf("registry should be empty after drain, got %d", r.Len())
	}
	if _, ok := r.Lookup("Address"); ok {
		t.Fatalf("definitions should be cleared after drain")
	}
}

func TestRegistry_ClaimQualifiesDifferentShapes(t *testing.T) {
	r := NewRegistry(CollisionQualify, nil)
	r.Reserve("Model")

	street := RecordDefinition{Name: "Address", Fields: []FieldDescriptor{fieldOf("street", Scalar(TypeString))}}
	geo := RecordDefinition{Name: "Address", Fields: []FieldDescriptor{fieldOf("lat", Scalar(TypeNumber))}}
	other := RecordDefinition{Name: "Address", Fields: []FieldDescriptor{fieldOf("zip", Scalar(TypeString))}}

	if got := r.Claim(street, "Model"); got != "Address" {
		t.Fatalf("first claim = %q, want Address", got)
	}
	if got := r.Claim(geo, "Office"); got != "OfficeAddress" {
		t.Fatalf("second claim = %q, want OfficeAddress", got)
	}
	if got := r.Claim(other, "Office"); got != "Address2" {
		t.Fatalf("third claim = %q, want Address2", got)
	}
	if stored, _ := r.Lookup("Address"); stored.Fields[0].WireName != "street" {
		t.Fatalf("first definition must not be overwritten, got %+v", stored)
	}
}

func TestRegistry_ClaimDeduplicatesIdenticalShapes(t *testing.T) {
	r := NewRegistry(CollisionQualify, nil)
	def := RecordDefinition{Name: "Tag", Fields: []FieldDescriptor{fieldOf("label", Scalar(TypeString))}}
	again := def
	again.Path = "$.other"
	again.Fields = []FieldDescriptor{{WireName: "label", LocalName: "label", Type: Scalar(TypeString), Optional: true, Example: "differs"}}

	if got := r.Claim(def, "Model"); got != "Tag" {
		t.Fatalf("claim = %q", got)
	}
	if got := r.Claim(again, "Post"); got != "Tag" {
		t.Fatalf("identical shape should reuse Tag, got %q", got)
	}
	if r.Len() != 1 {
		t.Fatalf("identical shapes must not append a second entry, got %d", r.Len())
	}
}

func TestRegistry_ClaimSkipsReservedNames(t *testing.T) {
	r := NewRegistry(CollisionQualify, nil)
	r.Reserve("Model")

	got := r.Claim(RecordDefinition{Name: "Model", Opaque: true}, "Model")
	if got != "ModelModel" {
		t.Fatalf("claim of reserved name = %q, want ModelModel", got)
	}
}

func TestRegistry_ClaimFindsNameBeyondReservations(t *testing.T) {
	r := NewRegistry(CollisionQualify, nil)
	r.Reserve("Item")
	for i := 2; i <= 40; i++ {
		r.Reserve("Item" + strconv.Itoa(i))
	}

	if got := r.Claim(RecordDefinition{Name: "Item", Opaque: true}, ""); got != "Item41" {
		t.Fatalf("claim = %q, want Item41", got)
	}
}

func TestParseCollisionPolicy(t *testing.T) {
	tests := map[string]struct {
		want CollisionPolicy
		ok   bool
	}{
		"":          {CollisionQualify, true},
		"qualify":   {CollisionQualify, true},
		"overwrite": {CollisionOverwrite, true},
		"reject":    {"", false},
	}
	for input, tt := range tests {
		got, ok := ParseCollisionPolicy(input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseCollisionPolicy(%q) = %q, %v; want %q, %v", input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTypeRef_Equal(t *testing.T) {
	if !ListOf(RecordRef("A")).Equal(ListOf(RecordRef("A"))) {
		t.Fatalf("identical lists should be equal")
	}
	if ListOf(Scalar(TypeAny)).Equal(UntypedList()) {
		t.Fatalf("list[Any] must differ from the untyped list")
	}
	if RecordRef("A").Equal(RecordRef("B")) {
		t.Fatalf("different records should not be equal")
	}
}
