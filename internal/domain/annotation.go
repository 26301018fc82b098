package domain

// Placeholder values a fresh record carries until real data is entered
const (
	PlaceholderLoading   = "Loading..."
	PlaceholderDetecting = "Detecting..."
	PlaceholderRiskLevel = "Detecting"
	PlaceholderRiskColor = "#999999"
	DefaultCoordinate    = "0"
)

// Record holds the manual annotation for a single IPv4 address.
// The address itself is the key in Annotations and is not repeated here.
type Record struct {
	LocationInfo string      `json:"locationInfo" yaml:"locationInfo"`
	ASNInfo      string      `json:"asnInfo" yaml:"asnInfo"`
	ASNOwner     string      `json:"asnOwner" yaml:"asnOwner"`
	Organization string      `json:"organization" yaml:"organization"`
	Longitude    string      `json:"longitude" yaml:"longitude"`
	Latitude     string      `json:"latitude" yaml:"latitude"`
	IPType       IPType      `json:"ipType" yaml:"ipType"`
	RiskScore    int         `json:"riskScore" yaml:"riskScore"`
	RiskLevel    string      `json:"riskLevel" yaml:"riskLevel"`
	RiskColor    string      `json:"riskColor" yaml:"riskColor"`
	IsNativeIP   NativeIP    `json:"isNativeIP" yaml:"isNativeIP"`
	IPNumber     uint32      `json:"ipNumber" yaml:"ipNumber"`
	IPNum        uint32      `json:"ipnum" yaml:"ipnum"`
	SharedUsers  SharedUsers `json:"sharedUsers" yaml:"sharedUsers"`
	RDNS         string      `json:"rdns" yaml:"rdns"`
	CountryFlag  string      `json:"countryFlag" yaml:"countryFlag"`
}

// DefaultRecord returns a record with every field at its placeholder value
func DefaultRecord() Record {
	return Record{
		LocationInfo: PlaceholderLoading,
		ASNInfo:      PlaceholderLoading,
		ASNOwner:     PlaceholderLoading,
		Organization: PlaceholderLoading,
		Longitude:    DefaultCoordinate,
		Latitude:     DefaultCoordinate,
		IPType:       IPTypePending,
		RiskScore:    0,
		RiskLevel:    PlaceholderRiskLevel,
		RiskColor:    PlaceholderRiskColor,
		IsNativeIP:   NativeIPPending,
		SharedUsers:  SharedUsersFew,
	}
}

// Field is a name/value pair in persisted field order
type Field struct {
	Name  string
	Value any
}

// Fields returns the record's fields in persisted order, keyed by their
// persisted names.
func (r Record) Fields() []Field {
	return []Field{
		{FieldLocationInfo, r.LocationInfo},
		{FieldASNInfo, r.ASNInfo},
		{FieldASNOwner, r.ASNOwner},
		{FieldOrganization, r.Organization},
		{FieldLongitude, r.Longitude},
		{FieldLatitude, r.Latitude},
		{FieldIPType, string(r.IPType)},
		{FieldRiskScore, r.RiskScore},
		{FieldRiskLevel, r.RiskLevel},
		{FieldRiskColor, r.RiskColor},
		{FieldIsNativeIP, string(r.IsNativeIP)},
		{FieldIPNumber, r.IPNumber},
		{FieldIPNum, r.IPNum},
		{FieldSharedUsers, string(r.SharedUsers)},
		{FieldRDNS, r.RDNS},
		{FieldCountryFlag, r.CountryFlag},
	}
}

// NewRecord builds the record stored for ip: defaults, then the caller's
// partial, then the derived fields.
func NewRecord(ip string, p Partial) (Record, error) {
	if err := ValidateIPv4(ip); err != nil {
		return Record{}, err
	}

	rec := DefaultRecord()
	rec.Apply(p)

	rec.IPNumber = IPv4Number(ip)
	rec.IPNum = rec.IPNumber

	// Level and color only follow the score when a score was supplied;
	// otherwise they stay at the pending placeholders.
	if p.RiskScore != nil {
		tier := ClassifyRisk(*p.RiskScore)
		rec.RiskLevel = tier.Level
		rec.RiskColor = tier.Color
	}

	return rec, nil
}
