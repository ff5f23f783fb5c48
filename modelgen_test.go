package modelgen_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-modelgen"
	"github.com/goliatone/go-modelgen/pkg/orchestrator"
	"github.com/goliatone/go-modelgen/pkg/renderers/pydantic"
	"github.com/goliatone/go-modelgen/pkg/sample"
)

func TestGenerateFromJSON(t *testing.T) {
	out, err := modelgen.GenerateFromJSON(context.Background(),
		[]byte(`{"address":{"streetName":"Main","city":"Paris"}}`), "", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	text := string(out)
	for _, want := range []string{
		"class Address(BaseModel):\n" +
			"    street_name: str | None = Field(None, alias=\"streetName\")\n" +
			"    city: str | None = Field(None, alias=\"city\")\n",
		"class Model(BaseModel):\n    address: Address | None = Field(None, alias=\"address\")\n",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
	if strings.Index(text, "class Address") > strings.Index(text, "class Model") {
		t.Fatalf("child record should precede its parent:\n%s", text)
	}
}

func TestGenerateFromJSON_Malformed(t *testing.T) {
	if _, err := modelgen.GenerateFromJSON(context.Background(), []byte(`{"a":`), "", ""); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestGenerateWithLoader(t *testing.T) {
	files := fstest.MapFS{"user.json": {Data: []byte(`{"name":"Ada"}`)}}
	loader := modelgen.NewLoader(sample.WithFileSystem(files))

	out, err := modelgen.Generate(context.Background(), sample.SourceFromFS("user.json"), "User", "",
		orchestrator.WithLoader(loader))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "class User(BaseModel):") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestInfer(t *testing.T) {
	files := fstest.MapFS{"list.json": {Data: []byte(`[1,2,3]`)}}
	loader := modelgen.NewLoader(sample.WithFileSystem(files))

	schema, err := modelgen.Infer(context.Background(), sample.SourceFromFS("list.json"), "Numbers",
		orchestrator.WithLoader(loader))
	if err != nil {
		t.Fatalf("infer: %v", err)
	}
	if len(schema.Records) != 1 || !schema.Records[0].Opaque || schema.Root != "Numbers" {
		t.Fatalf("unexpected schema: %+v", schema)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	if _, err := fs.ReadFile(modelgen.EmbeddedTemplates(), pydantic.DocumentTemplate); err != nil {
		t.Fatalf("document template missing: %v", err)
	}
	if _, err := fs.ReadFile(modelgen.EmbeddedPreviewTemplates(), "templates/page.tmpl"); err != nil {
		t.Fatalf("preview template missing: %v", err)
	}
}
