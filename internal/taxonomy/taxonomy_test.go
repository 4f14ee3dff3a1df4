package taxonomy

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_Validates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default taxonomy failed validation: %v", err)
	}
}

func TestLookup_KnownType(t *testing.T) {
	tax := Default()

	e := tax.Lookup(TypeResolved)
	if e.Group != GroupGood {
		t.Errorf("expected %q in group %q, got %q", TypeResolved, GroupGood, e.Group)
	}
	if e.Score == nil || *e.Score != 100 {
		t.Errorf("expected %q score 100, got %v", TypeResolved, e.Score)
	}
}

func TestLookup_UnknownTypeResolvesToUnmapped(t *testing.T) {
	tax := Default()

	e := tax.Lookup(ClassificationType("made_up_label"))
	if e.Group != GroupUnmapped {
		t.Errorf("expected unknown type in group %q, got %q", GroupUnmapped, e.Group)
	}
	if e.Score != nil {
		t.Errorf("expected unknown type to carry no score, got %v", *e.Score)
	}
}

func TestLookup_ExcludedTypesCarryNoScore(t *testing.T) {
	tax := Default()
	for _, ct := range []ClassificationType{TypeOutOfScope, TypeDuplicate, TypeNone} {
		e := tax.Lookup(ct)
		if e.Group != GroupExcluded {
			t.Errorf("expected %q in group %q, got %q", ct, GroupExcluded, e.Group)
		}
		if e.Score != nil {
			t.Errorf("expected %q to carry no score, got %v", ct, *e.Score)
		}
	}
}

func TestValidate_RejectsUnknownGroup(t *testing.T) {
	tax := Taxonomy{
		TypeNone:     {Group: GroupExcluded},
		TypeResolved: {Group: ScoreGroup("stellar")},
	}
	if err := tax.Validate(); err == nil {
		t.Error("expected validation error for unknown score group")
	}
}

func TestValidate_RequiresSentinel(t *testing.T) {
	tax := Taxonomy{
		TypeResolved: {Group: GroupGood},
	}
	if err := tax.Validate(); err == nil {
		t.Errorf("expected validation error when %q sentinel is missing", TypeNone)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taxonomy.yaml")
	content := `
resolved:
  score: 100
  group: good
incorrect:
  score: 0
  group: critical
none:
  group: excluded
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	tax, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got := tax.Group(TypeIncorrect); got != GroupCritical {
		t.Errorf("expected %q in group %q, got %q", TypeIncorrect, GroupCritical, got)
	}
	if got := tax.Group(TypeEscalate); got != GroupUnmapped {
		t.Errorf("expected type absent from override to resolve to %q, got %q", GroupUnmapped, got)
	}
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(path, []byte("::not yaml::"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected error for malformed taxonomy file")
	}
}
