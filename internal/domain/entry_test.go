package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestEntryJSONKeepsDocument(t *testing.T) {
	input := `{"locationInfo":"x","asnDomain":"ipyard.com","riskScore":95.0,"tags":["a","b"],"rdns":null}`

	var e Entry
	if err := json.Unmarshal([]byte(input), &e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantNames := []string{"locationInfo", "asnDomain", "riskScore", "tags", "rdns"}
	var names []string
	for _, f := range e.Fields() {
		names = append(names, f.Name)
	}
	if !reflect.DeepEqual(names, wantNames) {
		t.Errorf("expected field order %v, got %v", wantNames, names)
	}

	if v, _ := e.Value(FieldRiskScore); v != json.Number("95.0") {
		t.Errorf("expected riskScore kept as 95.0, got %#v", v)
	}

	out, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != input {
		t.Errorf("expected %s, got %s", input, out)
	}
}

func TestEntryJSONRejectsNonObject(t *testing.T) {
	for _, input := range []string{`5`, `"text"`, `[1,2]`, `null`} {
		var e Entry
		if err := json.Unmarshal([]byte(input), &e); err == nil {
			t.Errorf("expected error for %s", input)
		}
	}
}

func TestEntryMarshalDoesNotEscapeHTML(t *testing.T) {
	e := NewEntry(Field{Name: FieldOrganization, Value: "A&B <ops>"})
	out, err := e.MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != `{"organization":"A&B <ops>"}` {
		t.Errorf("unexpected output %s", out)
	}
}

func TestEntrySetReplacesInPlace(t *testing.T) {
	e := NewEntry(
		Field{Name: "a", Value: 1},
		Field{Name: "b", Value: 2},
	)
	e.Set("a", 3)

	want := []Field{{Name: "a", Value: 3}, {Name: "b", Value: 2}}
	if got := e.Fields(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestEntryRecordView(t *testing.T) {
	t.Run("full record round trips", func(t *testing.T) {
		rec, err := NewRecord("8.8.8.8", Partial{RiskScore: Int(42), RDNS: String("dns.google")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := rec.Entry().Record(); got != rec {
			t.Errorf("expected %+v, got %+v", rec, got)
		}
	})

	t.Run("loose values", func(t *testing.T) {
		e := NewEntry(
			Field{Name: FieldRiskScore, Value: json.Number("95.0")},
			Field{Name: FieldIPNumber, Value: float64(16843009)},
			Field{Name: FieldLocationInfo, Value: 7},
		)
		rec := e.Record()
		if rec.RiskScore != 95 {
			t.Errorf("expected RiskScore 95, got %d", rec.RiskScore)
		}
		if rec.IPNumber != 16843009 {
			t.Errorf("expected IPNumber 16843009, got %d", rec.IPNumber)
		}
		if rec.LocationInfo != "" {
			t.Errorf("expected non-string location to read empty, got %q", rec.LocationInfo)
		}
	})
}

func TestEntryText(t *testing.T) {
	e := NewEntry(
		Field{Name: FieldLocationInfo, Value: "Berlin"},
		Field{Name: FieldRiskScore, Value: json.Number("12")},
		Field{Name: FieldRDNS, Value: nil},
	)

	tests := []struct {
		field string
		want  string
	}{
		{FieldLocationInfo, "Berlin"},
		{FieldRiskScore, "12"},
		{FieldRDNS, ""},
		{FieldCountryFlag, ""},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if got := e.Text(tt.field); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
