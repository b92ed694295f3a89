package engine

import "testing"

func TestParseValue_References(t *testing.T) {
	tests := []struct {
		raw     any
		isRef   bool
		refName string
	}{
		{"$hypothesis", true, "hypothesis"},
		{"$refine", true, "refine"},
		{"$analyze.score", true, "analyze.score"},
		{"$_private", true, "_private"},
		{"$step_1", true, "step_1"},
		{"plain string", false, ""},
		{"$", false, ""},
		{"$100", false, ""},
		{"$bad name", false, ""},
		{"$trailing.", false, ""},
		{"$.leading", false, ""},
		{"prefix$ref", false, ""},
		{42, false, ""},
		{nil, false, ""},
		{true, false, ""},
	}

	for _, tt := range tests {
		v := ParseValue(tt.raw)
		if v.IsRef() != tt.isRef {
			t.Errorf("ParseValue(%v): expected isRef=%v, got %v", tt.raw, tt.isRef, v.IsRef())
			continue
		}
		if tt.isRef && v.RefName() != tt.refName {
			t.Errorf("ParseValue(%v): expected ref %q, got %q", tt.raw, tt.refName, v.RefName())
		}
		if !tt.isRef && v.Literal() != tt.raw {
			t.Errorf("ParseValue(%v): literal should be preserved, got %v", tt.raw, v.Literal())
		}
	}
}

func TestParseValue_ExplicitVariants(t *testing.T) {
	// Явно сконструированные значения не перепарсиваются
	lit := Lit("$refine")
	if lit.IsRef() {
		t.Error("Lit should stay a literal even if it looks like a reference")
	}
	if lit.Literal() != "$refine" {
		t.Errorf("expected literal %q, got %v", "$refine", lit.Literal())
	}

	ref := Ref("refine")
	if !ref.IsRef() || ref.RefName() != "refine" {
		t.Errorf("Ref should produce a reference to refine, got %+v", ref)
	}

	// ParseValue пропускает готовый Value без изменений
	if v := ParseValue(lit); v.IsRef() {
		t.Error("ParseValue should pass an explicit Value through unchanged")
	}
}
