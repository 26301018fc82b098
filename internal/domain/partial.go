package domain

import (
	"encoding/json"
	"math"
)

// Persisted field names
const (
	FieldLocationInfo = "locationInfo"
	FieldASNInfo      = "asnInfo"
	FieldASNOwner     = "asnOwner"
	FieldOrganization = "organization"
	FieldLongitude    = "longitude"
	FieldLatitude     = "latitude"
	FieldIPType       = "ipType"
	FieldRiskScore    = "riskScore"
	FieldRiskLevel    = "riskLevel"
	FieldRiskColor    = "riskColor"
	FieldIsNativeIP   = "isNativeIP"
	FieldIPNumber     = "ipNumber"
	FieldIPNum        = "ipnum"
	FieldSharedUsers  = "sharedUsers"
	FieldRDNS         = "rdns"
	FieldCountryFlag  = "countryFlag"
)

// Partial is the caller-supplied subset of a record. A nil field means
// "not supplied" and leaves the default in place.
//
// Derived fields (riskLevel, riskColor, ipNumber, ipnum) are not part of
// a partial; they are always computed.
type Partial struct {
	LocationInfo *string
	ASNInfo      *string
	ASNOwner     *string
	Organization *string
	Longitude    *string
	Latitude     *string
	IPType       *string
	RiskScore    *int
	IsNativeIP   *string
	SharedUsers  *string
	RDNS         *string
	CountryFlag  *string
}

// Apply overlays the supplied fields of p onto r. Enumerated fields are
// only taken when they exactly match an allowed value.
func (r *Record) Apply(p Partial) {
	setString(&r.LocationInfo, p.LocationInfo)
	setString(&r.ASNInfo, p.ASNInfo)
	setString(&r.ASNOwner, p.ASNOwner)
	setString(&r.Organization, p.Organization)
	setString(&r.Longitude, p.Longitude)
	setString(&r.Latitude, p.Latitude)
	setString(&r.RDNS, p.RDNS)
	setString(&r.CountryFlag, p.CountryFlag)

	if p.IPType != nil {
		if v, ok := ParseIPType(*p.IPType); ok {
			r.IPType = v
		}
	}
	if p.IsNativeIP != nil {
		if v, ok := ParseNativeIP(*p.IsNativeIP); ok {
			r.IsNativeIP = v
		}
	}
	if p.SharedUsers != nil {
		if v, ok := ParseSharedUsers(*p.SharedUsers); ok {
			r.SharedUsers = v
		}
	}
	if p.RiskScore != nil {
		r.RiskScore = *p.RiskScore
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// PartialFromFields converts a loosely typed field map into a Partial.
// Keys outside the schema and values of the wrong type are dropped.
// riskScore only counts as supplied when it holds an integer, see intValue.
func PartialFromFields(fields map[string]any) Partial {
	var p Partial
	for name, value := range fields {
		switch name {
		case FieldLocationInfo:
			p.LocationInfo = stringValue(value)
		case FieldASNInfo:
			p.ASNInfo = stringValue(value)
		case FieldASNOwner:
			p.ASNOwner = stringValue(value)
		case FieldOrganization:
			p.Organization = stringValue(value)
		case FieldLongitude:
			p.Longitude = stringValue(value)
		case FieldLatitude:
			p.Latitude = stringValue(value)
		case FieldIPType:
			p.IPType = stringValue(value)
		case FieldIsNativeIP:
			p.IsNativeIP = stringValue(value)
		case FieldSharedUsers:
			p.SharedUsers = stringValue(value)
		case FieldRDNS:
			p.RDNS = stringValue(value)
		case FieldCountryFlag:
			p.CountryFlag = stringValue(value)
		case FieldRiskScore:
			p.RiskScore = intValue(value)
		}
	}
	return p
}

// String returns a pointer to s, for building partials inline
func String(s string) *string { return &s }

// Int returns a pointer to n
func Int(n int) *int { return &n }

func stringValue(v any) *string {
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}

// intValue accepts every Go integer kind, plus json.Number holding an
// integer literal. Floats are not scores even when whole, and neither are
// bools. Values that do not fit in int are dropped.
func intValue(v any) *int {
	var n int64
	switch x := v.(type) {
	case bool, float32, float64:
		return nil
	case json.Number:
		parsed, err := x.Int64()
		if err != nil {
			return nil
		}
		n = parsed
	default:
		whole, ok := wholeNumber(v)
		if !ok {
			return nil
		}
		n = whole
	}
	if n < math.MinInt || n > math.MaxInt {
		return nil
	}
	score := int(n)
	return &score
}
