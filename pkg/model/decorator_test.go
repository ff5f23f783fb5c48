package model_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelgen/pkg/jsonvalue"
	"github.com/goliatone/go-modelgen/pkg/model"
)

func sampleSchema(t *testing.T) model.Schema {
	t.Helper()
	value := jsonvalue.MustParse(`{"users": [{"address": {"city": "X"}}], "owner": {"city": "Y"}}`)
	return model.NewBuilder().Build(value, "Model")
}

func TestRenameRecords_RewritesReferences(t *testing.T) {
	schema := sampleSchema(t)

	if err := model.RenameRecords(map[string]string{"Users": "User", "Model": "Payload"}).Decorate(&schema); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	if diff := cmp.Diff([]string{"Address", "User", "Owner", "Payload"}, schema.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if schema.Root != "Payload" {
		t.Fatalf("root = %q, want Payload", schema.Root)
	}
	root, _ := schema.Record("Payload")
	if diff := cmp.Diff(model.ListOf(model.RecordRef("User")), root.Fields[0].Type); diff != "" {
		t.Fatalf("users type mismatch (-want +got):\n%s", diff)
	}
}

func TestRenameRecords_RejectsCollisions(t *testing.T) {
	schema := sampleSchema(t)
	err := model.RenameRecords(map[string]string{"Users": "Owner"}).Decorate(&schema)
	if err == nil || !strings.Contains(err.Error(), "collides") {
		t.Fatalf("expected collision error, got %v", err)
	}
}

func TestRenameRecords_SwapsAreAllowed(t *testing.T) {
	schema := sampleSchema(t)
	if err := model.RenameRecords(map[string]string{"Users": "Owner", "Owner": "Users"}).Decorate(&schema); err != nil {
		t.Fatalf("swap should succeed: %v", err)
	}
	if diff := cmp.Diff([]string{"Address", "Owner", "Users", "Model"}, schema.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRenames(t *testing.T) {
	got, err := model.ParseRenames([]string{"Users=User", " Model = Root "})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff(map[string]string{"Users": "User", "Model": "Root"}, got); diff != "" {
		t.Fatalf("mapping mismatch (-want +got):\n%s", diff)
	}
	if _, err := model.ParseRenames([]string{"broken"}); err == nil {
		t.Fatalf("expected error for missing separator")
	}
}

func TestNewBuilder_Options(t *testing.T) {
	value := jsonvalue.MustParse(`{"a": {"x": 1}, "b": {"a": {"y": 2}}}`)
	schema := model.NewBuilder(model.WithCollisionPolicy(model.CollisionOverwrite)).Build(value, "Model")
	if diff := cmp.Diff([]string{"A", "A", "B", "Model"}, schema.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}
