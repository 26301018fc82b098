package codec

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"ipannotate/internal/domain"
)

func sampleAnnotations(t *testing.T) *domain.Annotations {
	t.Helper()
	a := domain.NewAnnotations()

	first, err := domain.NewRecord("8.8.8.8", domain.Partial{
		LocationInfo: domain.String("美国 加利福尼亚"),
		ASNInfo:      domain.String("AS15169"),
		RiskScore:    domain.Int(10),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := domain.NewRecord("1.1.1.1", domain.Partial{
		Organization: domain.String("Cloudflare <edge> & co"),
		IPType:       domain.String(string(domain.IPTypeDatacenter)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// deliberately not in sorted order
	a.Set("8.8.8.8", first)
	a.Set("1.1.1.1", second)
	return a
}

func assertSameAnnotations(t *testing.T, want, got *domain.Annotations) {
	t.Helper()
	if !reflect.DeepEqual(want.Keys(), got.Keys()) {
		t.Fatalf("expected keys %v, got %v", want.Keys(), got.Keys())
	}
	want.Each(func(ip string, entry domain.Entry) {
		other, ok := got.Get(ip)
		if !ok {
			t.Fatalf("missing record %s", ip)
		}
		if !reflect.DeepEqual(fieldNames(entry), fieldNames(other)) {
			t.Errorf("record %s: expected fields %v, got %v", ip, fieldNames(entry), fieldNames(other))
		}
		if entry.Record() != other.Record() {
			t.Errorf("record %s: expected %+v, got %+v", ip, entry.Record(), other.Record())
		}
	})
}

func fieldNames(e domain.Entry) []string {
	var names []string
	for _, f := range e.Fields() {
		names = append(names, f.Name)
	}
	return names
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path   string
		format string
	}{
		{"manual.json", "json"},
		{"manual", "json"},
		{"export.txt", "json"},
		{"manual.yaml", "yaml"},
		{"dir/manual.YML", "yaml"},
	}

	for _, tt := range tests {
		if got := ForPath(tt.path).Format(); got != tt.format {
			t.Errorf("ForPath(%q).Format() = %s, want %s", tt.path, got, tt.format)
		}
	}
}

func TestJSONCodecRoundTrip(t *testing.T) {
	codec := NewJSONCodec()
	original := sampleAnnotations(t)

	var buf bytes.Buffer
	if err := codec.Export(original, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	parsed, err := codec.Parse(&buf)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	assertSameAnnotations(t, original, parsed)
}

func TestJSONCodecExportFormat(t *testing.T) {
	codec := NewJSONCodec()

	var buf bytes.Buffer
	if err := codec.Export(sampleAnnotations(t), &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	out := buf.String()

	t.Run("non-ASCII written unescaped", func(t *testing.T) {
		if !strings.Contains(out, "美国 加利福尼亚") {
			t.Errorf("expected raw UTF-8 text in output:\n%s", out)
		}
	})

	t.Run("html characters not escaped", func(t *testing.T) {
		if !strings.Contains(out, "Cloudflare <edge> & co") {
			t.Errorf("expected unescaped organization in output:\n%s", out)
		}
	})

	t.Run("two space indentation", func(t *testing.T) {
		if !strings.HasPrefix(out, "{\n  \"8.8.8.8\": {\n    \"locationInfo\"") {
			t.Errorf("unexpected layout:\n%s", out)
		}
	})

	t.Run("keys in insertion order", func(t *testing.T) {
		if strings.Index(out, "8.8.8.8") > strings.Index(out, "1.1.1.1") {
			t.Error("expected 8.8.8.8 before 1.1.1.1")
		}
	})

	t.Run("fields in schema order", func(t *testing.T) {
		if strings.Index(out, "\"ipNumber\"") > strings.Index(out, "\"ipnum\"") {
			t.Error("expected ipNumber before ipnum")
		}
	})
}

func TestJSONCodecEmpty(t *testing.T) {
	codec := NewJSONCodec()

	var buf bytes.Buffer
	if err := codec.Export(domain.NewAnnotations(), &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if buf.String() != "{}\n" {
		t.Errorf("expected {}, got %q", buf.String())
	}

	parsed, err := codec.Parse(&buf)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed.Len() != 0 {
		t.Errorf("expected empty collection, got %d records", parsed.Len())
	}
}

func TestJSONCodecParseErrors(t *testing.T) {
	codec := NewJSONCodec()

	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"array root", `[]`},
		{"null root", `null`},
		{"truncated", `{"1.1.1.1": {"rdns": "x"`},
		{"record not an object", `{"1.1.1.1": 5}`},
		{"trailing data", `{} {}`},
		{"not json", `hello`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := codec.Parse(strings.NewReader(tt.input)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestJSONCodecParseVerbatim(t *testing.T) {
	codec := NewJSONCodec()
	input := `{
  "not-an-ip": {"locationInfo": "kept", "riskScore": 5, "riskLevel": "High risk", "ipNumber": 9, "ipnum": 1},
  "2.2.2.2": {}
}`

	parsed, err := codec.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if !reflect.DeepEqual(parsed.Keys(), []string{"not-an-ip", "2.2.2.2"}) {
		t.Errorf("unexpected keys %v", parsed.Keys())
	}
	rec := mustGet(t, parsed, "not-an-ip").Record()
	if rec.LocationInfo != "kept" || rec.RiskLevel != "High risk" || rec.IPNumber != 9 || rec.IPNum != 1 {
		t.Errorf("expected stored values unchanged, got %+v", rec)
	}
}

func TestYAMLCodecRoundTrip(t *testing.T) {
	codec := NewYAMLCodec()
	original := sampleAnnotations(t)

	var buf bytes.Buffer
	if err := codec.Export(original, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(buf.String(), "locationInfo:") || !strings.Contains(buf.String(), "美国 加利福尼亚") {
		t.Errorf("expected persisted field names and raw text:\n%s", buf.String())
	}

	parsed, err := codec.Parse(&buf)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	assertSameAnnotations(t, original, parsed)
}

func TestYAMLCodecParseErrors(t *testing.T) {
	codec := NewYAMLCodec()

	for _, input := range []string{"", "- a\n- b\n", "plain scalar\n", "1.1.1.1: [1, 2]\n"} {
		if _, err := codec.Parse(strings.NewReader(input)); err == nil {
			t.Errorf("expected parse error for %q", input)
		}
	}
}

func mustGet(t *testing.T, a *domain.Annotations, ip string) domain.Entry {
	t.Helper()
	e, ok := a.Get(ip)
	if !ok {
		t.Fatalf("missing record %s", ip)
	}
	return e
}

func TestJSONCodecKeepsUnknownAndPartialRecords(t *testing.T) {
	codec := NewJSONCodec()
	input := `{
  "1.1.1.1": {
    "locationInfo": "x",
    "asnDomain": "ipyard.com",
    "riskScore": 95.0
  },
  "2.2.2.2": {
    "riskScore": "high"
  }
}
`

	parsed, err := codec.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	var buf bytes.Buffer
	if err := codec.Export(parsed, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if buf.String() != input {
		t.Errorf("expected document written back unchanged\nwant:\n%s\ngot:\n%s", input, buf.String())
	}
}

func TestYAMLCodecKeepsUnknownAndPartialRecords(t *testing.T) {
	codec := NewYAMLCodec()
	input := "1.1.1.1:\n  locationInfo: x\n  asnDomain: ipyard.com\n  riskScore: 95\n"

	parsed, err := codec.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	entry := mustGet(t, parsed, "1.1.1.1")
	if !reflect.DeepEqual(fieldNames(entry), []string{"locationInfo", "asnDomain", "riskScore"}) {
		t.Errorf("unexpected fields %v", fieldNames(entry))
	}

	var buf bytes.Buffer
	if err := codec.Export(parsed, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if buf.String() != input {
		t.Errorf("expected document written back unchanged\nwant:\n%s\ngot:\n%s", input, buf.String())
	}
}

func TestJSONNumbersKeepSpellingInYAML(t *testing.T) {
	parsed, err := NewJSONCodec().Parse(strings.NewReader(`{"1.1.1.1": {"riskScore": 95.0, "ipnum": 16843009}}`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	var buf bytes.Buffer
	if err := NewYAMLCodec().Export(parsed, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "riskScore: 95.0\n") || !strings.Contains(out, "ipnum: 16843009\n") {
		t.Errorf("expected numbers written as read:\n%s", out)
	}
}
