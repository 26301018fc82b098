package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Entry is a stored annotation as an ordered list of fields. Entries made
// from a Record carry the full schema; entries read from a file keep
// exactly what the file held, including unknown keys and values of any
// JSON type.
type Entry struct {
	fields []Field
}

// NewEntry creates an entry holding fields in the given order
func NewEntry(fields ...Field) Entry {
	var e Entry
	for _, f := range fields {
		e.Set(f.Name, f.Value)
	}
	return e
}

// Entry converts the record into its stored form
func (r Record) Entry() Entry {
	return Entry{fields: r.Fields()}
}

// Set assigns a field, replacing an existing value in place
func (e *Entry) Set(name string, value any) {
	for i := range e.fields {
		if e.fields[i].Name == name {
			e.fields[i].Value = value
			return
		}
	}
	e.fields = append(e.fields, Field{Name: name, Value: value})
}

// Value returns the raw value stored under name
func (e Entry) Value(name string) (any, bool) {
	for _, f := range e.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Text returns the value under name for display. Missing fields are empty.
func (e Entry) Text(name string) string {
	v, ok := e.Value(name)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Fields returns a copy of the fields in stored order
func (e Entry) Fields() []Field {
	out := make([]Field, len(e.fields))
	copy(out, e.fields)
	return out
}

// Len returns the number of fields
func (e Entry) Len() int {
	return len(e.fields)
}

func (e Entry) clone() Entry {
	return Entry{fields: e.Fields()}
}

// Record returns a typed view of the entry. Missing fields and values of
// an unexpected type read as zero values.
func (e Entry) Record() Record {
	var r Record
	r.LocationInfo = e.stringField(FieldLocationInfo)
	r.ASNInfo = e.stringField(FieldASNInfo)
	r.ASNOwner = e.stringField(FieldASNOwner)
	r.Organization = e.stringField(FieldOrganization)
	r.Longitude = e.stringField(FieldLongitude)
	r.Latitude = e.stringField(FieldLatitude)
	r.IPType = IPType(e.stringField(FieldIPType))
	r.RiskLevel = e.stringField(FieldRiskLevel)
	r.RiskColor = e.stringField(FieldRiskColor)
	r.IsNativeIP = NativeIP(e.stringField(FieldIsNativeIP))
	r.SharedUsers = SharedUsers(e.stringField(FieldSharedUsers))
	r.RDNS = e.stringField(FieldRDNS)
	r.CountryFlag = e.stringField(FieldCountryFlag)

	if v, ok := e.Value(FieldRiskScore); ok {
		if n, ok := wholeNumber(v); ok && n >= math.MinInt && n <= math.MaxInt {
			r.RiskScore = int(n)
		}
	}
	r.IPNumber = e.uint32Field(FieldIPNumber)
	r.IPNum = e.uint32Field(FieldIPNum)
	return r
}

func (e Entry) stringField(name string) string {
	v, _ := e.Value(name)
	s, _ := v.(string)
	return s
}

func (e Entry) uint32Field(name string) uint32 {
	v, _ := e.Value(name)
	n, ok := wholeNumber(v)
	if !ok || n < 0 || n > math.MaxUint32 {
		return 0
	}
	return uint32(n)
}

// wholeNumber reads any numeric value that holds an integer
func wholeNumber(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return int64(x), uint64(x) <= math.MaxInt64
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		return int64(x), x <= math.MaxInt64
	case float64:
		if x != math.Trunc(x) || x < math.MinInt64 || x >= math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, true
		}
		f, err := strconv.ParseFloat(string(x), 64)
		if err != nil {
			return 0, false
		}
		return wholeNumber(f)
	}
	return 0, false
}

// MarshalJSON writes the fields as an object in stored order. HTML
// characters are not escaped.
func (e Entry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, f := range e.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encoder.Encode(f.Name); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1)
		buf.WriteByte(':')
		if err := encoder.Encode(f.Value); err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		buf.Truncate(buf.Len() - 1)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keeping its key order. Numbers are kept
// as json.Number so they are written back unchanged.
func (e *Entry) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	tok, err := decoder.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	var parsed Entry
	for decoder.More() {
		tok, err := decoder.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}
		var value any
		if err := decoder.Decode(&value); err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		parsed.Set(name, value)
	}
	if _, err := decoder.Token(); err != nil {
		return err
	}

	*e = parsed
	return nil
}
