package naming

import "testing"

func TestToLocalIdentifier(t *testing.T) {
	tests := map[string]string{
		"camelCase":  "camel_case",
		"CamelCase":  "camel_case",
		"snake_case": "snake_case",
		"":           "",
		"isActive":   "is_active",
		"streetName": "street_name",
		"a":          "a",
		"A":          "a",
		"userID":     "user_i_d",
		"Émile":      "émile",
	}

	for input, want := range tests {
		if got := ToLocalIdentifier(input); got != want {
			t.Errorf("ToLocalIdentifier(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestToLocalIdentifier_Idempotent(t *testing.T) {
	for _, input := range []string{"camelCase", "alreadySnake", "XMLHttp"} {
		once := ToLocalIdentifier(input)
		if twice := ToLocalIdentifier(once); twice != once {
			t.Errorf("not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestToRecordName(t *testing.T) {
	tests := map[string]string{
		"camel":     "Camel",
		"":          "",
		"users":     "Users",
		"Address":   "Address",
		"streetMap": "StreetMap",
		"émile":     "Émile",
		"1st":       "1st",
	}

	for input, want := range tests {
		if got := ToRecordName(input); got != want {
			t.Errorf("ToRecordName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestToLabel(t *testing.T) {
	tests := map[string]string{
		"streetName":    "Street Name",
		"address_line2": "Address Line 2",
		"user-id":       "User Id",
		"isActive":      "Is Active",
		"  spaced out ": "Spaced Out",
		"":              "",
	}

	for input, want := range tests {
		if got := ToLabel(input); got != want {
			t.Errorf("ToLabel(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestEscapePython(t *testing.T) {
	tests := map[string]string{
		"plain":          "plain",
		`say "hi"`:       `say \"hi\"`,
		`back\slash`:     `back\\slash`,
		"a\nb":           `a\nb`,
		"cr\rtab\t":      `cr\rtab\t`,
		"bell\x07":       `bell\x07`,
		"nul\x00del\x7f": `nul\x00del\x7f`,
		"café":           "café",
	}

	for input, want := range tests {
		if got := EscapePython(input); got != want {
			t.Errorf("EscapePython(%q) = %q, want %q", input, got, want)
		}
	}
}
