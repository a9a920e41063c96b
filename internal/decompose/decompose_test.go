package decompose

import "testing"

func TestComposeWrapsPublicPartsOnly(t *testing.T) {
	cfg := Config{Parts: []Part{
		Private(`From: `),
		Public(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+`, 64),
		Private(`\r\n`),
	}}

	pattern, maxBytes, err := cfg.Compose()
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	want := `From: ([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+)\r\n`
	if pattern != want {
		t.Fatalf("pattern = %q, want %q", pattern, want)
	}
	if len(maxBytes) != 1 || maxBytes[0] != 64 {
		t.Fatalf("maxBytes = %v, want [64]", maxBytes)
	}
	if n := cfg.NumPublicParts(); n != 1 {
		t.Fatalf("NumPublicParts = %d, want 1", n)
	}
}

func TestComposeMultiplePublicPartsInOrder(t *testing.T) {
	cfg := Config{Parts: []Part{
		Public(`[A-Z]+`, 8),
		Private(`-`),
		Public(`[0-9]+`, 4),
	}}

	pattern, maxBytes, err := cfg.Compose()
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if pattern != `([A-Z]+)-([0-9]+)` {
		t.Fatalf("pattern = %q", pattern)
	}
	if len(maxBytes) != 2 || maxBytes[0] != 8 || maxBytes[1] != 4 {
		t.Fatalf("maxBytes = %v, want [8 4]", maxBytes)
	}
}

func TestValidateRejectsEmptyParts(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty parts list")
	}
}

func TestValidateRejectsNonPositiveMaxBytes(t *testing.T) {
	cfg := Config{Parts: []Part{Public(`[0-9]+`, 0)}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive max_bytes")
	}
}

func TestValidateRejectsEmptyRegexBody(t *testing.T) {
	cfg := Config{Parts: []Part{Private("")}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty regex body")
	}
}

func TestValidateTemplateName(t *testing.T) {
	cases := []struct {
		name string
		ok   bool
	}{
		{"AccountKey", true},
		{"A", true},
		{"accountKey", false},
		{"Account_Key", false},
		{"", false},
	}
	for _, c := range cases {
		err := ValidateTemplateName(c.name)
		if c.ok && err != nil {
			t.Errorf("ValidateTemplateName(%q): unexpected error %v", c.name, err)
		}
		if !c.ok && err == nil {
			t.Errorf("ValidateTemplateName(%q): expected error", c.name)
		}
	}
}
