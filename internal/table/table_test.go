package table

import (
	"encoding/json"
	"math"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestInfer(t *testing.T) {
	tests := []struct {
		in   string
		want Value
	}{
		{"29", Num(29)},
		{"-3.5", Num(-3.5)},
		{"007", Str("007")},
		{"1e3", Str("1e3")},
		{"NaN", Str("NaN")},
		{"true", Bool(true)},
		{"True", Str("True")},
		{"", Str("")},
		{"Ann", Str("Ann")},
	}
	for _, tt := range tests {
		if got := Infer(tt.in); !got.Equal(tt.want) {
			t.Errorf("Infer(%q) = %v (%s), want %v (%s)", tt.in, got, got.Kind(), tt.want, tt.want.Kind())
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		text string
		hint Kind
		want Value
	}{
		{" 42 ", KindNumber, Num(42)},
		{"forty", KindNumber, Str("forty")},
		{"TRUE", KindBool, Bool(true)},
		{"maybe", KindBool, Str("maybe")},
		{"12", KindString, Str("12")},
		{"", KindNull, Str("")},
	}
	for _, tt := range tests {
		if got := ParseValue(tt.text, tt.hint); !got.Equal(tt.want) {
			t.Errorf("ParseValue(%q, %s) = %v, want %v", tt.text, tt.hint, got, tt.want)
		}
	}
}

func TestValueString(t *testing.T) {
	if got := Num(29).String(); got != "29" {
		t.Fatalf("Num(29) = %q", got)
	}
	if got := Num(0.1).String(); got != "0.1" {
		t.Fatalf("Num(0.1) = %q", got)
	}
	if got := Null().String(); got != "" {
		t.Fatalf("Null = %q", got)
	}
	if !Null().IsEmpty() || !Str("").IsEmpty() || Str(" ").IsEmpty() {
		t.Fatal("IsEmpty mismatch")
	}
	if !Num(math.NaN()).Equal(Num(math.NaN())) {
		t.Fatal("NaN should equal NaN")
	}
	if Num(1).Equal(Str("1")) {
		t.Fatal("kinds must match")
	}
}

func TestFieldsOrderAndClone(t *testing.T) {
	f := FieldsOf(F("b", Num(1)), F("a", Str("x")), F("b", Num(2)))
	if got := f.Keys(); len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Fatalf("keys = %v", got)
	}
	if v := f.Value("b"); !v.Equal(Num(2)) {
		t.Fatalf("b = %v", v)
	}

	c := f.Clone()
	c.Set("c", Bool(true))
	c.Delete("b")
	if f.Len() != 2 || !f.Has("b") || f.Has("c") {
		t.Fatalf("clone mutated original: %v", f.Keys())
	}

	f.Merge(FieldsOf(F("a", Str("y")), F("z", Null())))
	if got := f.Keys(); len(got) != 3 || got[2] != "z" {
		t.Fatalf("merged keys = %v", got)
	}
	if !f.Value("a").Equal(Str("y")) {
		t.Fatalf("merge did not overwrite")
	}
}

func TestFieldsJSON(t *testing.T) {
	f := FieldsOf(F("name", Str("Ann")), F("age", Num(29)), F("ok", Bool(true)), F("x", Null()))
	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"name":"Ann","age":29,"ok":true,"x":null}`
	if string(data) != want {
		t.Fatalf("json = %s, want %s", data, want)
	}

	var back Fields
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(f) || back.Keys()[1] != "age" {
		t.Fatalf("round trip mismatch: %v", back.Keys())
	}
}

func TestFieldsYAMLKeepsOrder(t *testing.T) {
	f := FieldsOf(F("zeta", Str("z")), F("alpha", Num(1)))
	data, err := yaml.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "zeta: z\nalpha: 1\n" {
		t.Fatalf("yaml = %q", data)
	}
}

func TestDeriveKey(t *testing.T) {
	tests := map[string]string{
		"Start Date":      "start_date",
		"  Phone   No  ": "phone_no",
		"Email":           "email",
		"a\tb":            "a_b",
	}
	for in, want := range tests {
		if got := DeriveKey(in); got != want {
			t.Errorf("DeriveKey(%q) = %q, want %q", in, got, want)
		}
	}
	col := NewColumn("  Start Date ")
	if col.Key != "start_date" || col.Label != "Start Date" || !col.Visible {
		t.Fatalf("NewColumn = %+v", col)
	}
}

func TestSampleRows(t *testing.T) {
	rows := SampleRows()
	if len(rows) != 17 {
		t.Fatalf("sample rows = %d", len(rows))
	}
	seen := map[string]bool{}
	for _, r := range rows {
		if r.ID == "" || seen[r.ID] {
			t.Fatalf("bad id %q", r.ID)
		}
		seen[r.ID] = true
	}
	if got := rows[0].Get("email").String(); got != "alice.johnson@example.org" {
		t.Fatalf("email = %q", got)
	}
	if !rows[0].Fields.Has("department") {
		t.Fatal("sample rows should carry undeclared fields")
	}
	if len(VisibleColumns(DefaultColumns())) != 4 {
		t.Fatal("default columns should all be visible")
	}
}
