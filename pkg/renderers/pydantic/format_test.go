package pydantic

import (
	"testing"

	"github.com/goliatone/go-modelgen/pkg/jsonvalue"
	"github.com/goliatone/go-modelgen/pkg/model"
)

func TestTypeExpr(t *testing.T) {
	cases := []struct {
		ref  model.TypeRef
		want string
	}{
		{model.Scalar(model.TypeString), "str"},
		{model.Scalar(model.TypeNumber), "float"},
		{model.Scalar(model.TypeBool), "bool"},
		{model.Scalar(model.TypeAny), "Any"},
		{model.UntypedList(), "list"},
		{model.ListOf(model.Scalar(model.TypeAny)), "list[Any]"},
		{model.ListOf(model.ListOf(model.Scalar(model.TypeString))), "list[list[str]]"},
		{model.RecordRef("Address"), "Address"},
		{model.ListOf(model.RecordRef("Users")), "list[Users]"},
	}
	for _, tc := range cases {
		if got := TypeExpr(tc.ref); got != tc.want {
			t.Errorf("TypeExpr(%+v) = %q, want %q", tc.ref, got, tc.want)
		}
	}
}

func TestFieldLine_EscapesAlias(t *testing.T) {
	cases := []struct {
		wire string
		want string
	}{
		{`say "hi" \o/`, `alias="say \"hi\" \\o/"`},
		{"a\nb", `alias="a\nb"`},
		{"tab\there\r", `alias="tab\there\r"`},
		{"esc\x1b", `alias="esc\x1b"`},
	}
	for _, tc := range cases {
		field := model.FieldDescriptor{
			WireName:  tc.wire,
			LocalName: "f",
			Type:      model.Scalar(model.TypeString),
			Optional:  true,
		}
		want := "f: str | None = Field(None, " + tc.want + ")"
		if got := FieldLine(field); got != want {
			t.Errorf("FieldLine(%q)\nwant: %s\n got: %s", tc.wire, want, got)
		}
	}
}

func TestRenderRecord_PlaceholderBody(t *testing.T) {
	want := "class Model(BaseModel):\n    ...\n"

	opaque := model.RecordDefinition{Name: "Model", Opaque: true}
	if got := RenderRecord(opaque); got != want {
		t.Fatalf("opaque record\nwant: %q\n got: %q", want, got)
	}
	empty := model.RecordDefinition{Name: "Model"}
	if got := RenderRecord(empty); got != want {
		t.Fatalf("empty record\nwant: %q\n got: %q", want, got)
	}
}

func TestRenderDocument_FieldOrderFollowsSample(t *testing.T) {
	value := jsonvalue.MustParse(`{"zeta":1,"alpha":"a","Mid":true}`)
	schema := model.NewBuilder().Build(value, "Model")

	want := Preamble + "\n" +
		"class Model(BaseModel):\n" +
		"    zeta: float | None = Field(None, alias=\"zeta\")\n" +
		"    alpha: str | None = Field(None, alias=\"alpha\")\n" +
		"    mid: bool | None = Field(None, alias=\"Mid\")\n"
	if got := RenderDocument(schema.Records); got != want {
		t.Fatalf("document\nwant: %q\n got: %q", want, got)
	}
}

func TestRenderDocument_ObjectArray(t *testing.T) {
	value := jsonvalue.MustParse(`{"users":[{"name":"Alice"}]}`)
	schema := model.NewBuilder().Build(value, "Model")

	want := Preamble +
		"\nclass Users(BaseModel):\n" +
		"    name: str | None = Field(None, alias=\"name\")\n" +
		"\nclass Model(BaseModel):\n" +
		"    users: list[Users] | None = Field(None, alias=\"users\")\n"
	if got := RenderDocument(schema.Records); got != want {
		t.Fatalf("document\nwant: %q\n got: %q", want, got)
	}
}

func TestRenderDocument_ScalarRoot(t *testing.T) {
	schema := model.NewBuilder().Build(jsonvalue.MustParse(`42`), "Model")
	want := Preamble + "\nclass Model(BaseModel):\n    ...\n"
	if got := RenderDocument(schema.Records); got != want {
		t.Fatalf("document\nwant: %q\n got: %q", want, got)
	}
}
