// Package geo suggests annotation values from local MaxMind databases.
//
// Lookups only read .mmdb files on disk. A nil *Resolver is valid and
// suggests nothing, so callers can use it unconditionally.
package geo

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"ipannotate/internal/domain"

	"github.com/oschwald/geoip2-golang"
)

// ErrNoDatabase is returned by Open when no database path is given
var ErrNoDatabase = errors.New("no GeoIP database configured")

// Suggestion holds values looked up for one address, keyed by record
// field name. Fields the databases had no data for are absent.
type Suggestion map[string]string

// Resolver wraps the optional city and ASN readers
type Resolver struct {
	city *geoip2.Reader
	asn  *geoip2.Reader
}

// Open opens whichever of the two databases has a path. An empty path
// skips that database; both empty is ErrNoDatabase.
func Open(cityPath, asnPath string) (*Resolver, error) {
	if cityPath == "" && asnPath == "" {
		return nil, ErrNoDatabase
	}

	r := &Resolver{}
	if cityPath != "" {
		reader, err := geoip2.Open(cityPath)
		if err != nil {
			return nil, fmt.Errorf("open city database %s: %w", cityPath, err)
		}
		r.city = reader
	}
	if asnPath != "" {
		reader, err := geoip2.Open(asnPath)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("open ASN database %s: %w", asnPath, err)
		}
		r.asn = reader
	}
	return r, nil
}

// Close releases the database readers
func (r *Resolver) Close() error {
	if r == nil {
		return nil
	}
	var errs []error
	if r.city != nil {
		errs = append(errs, r.city.Close())
	}
	if r.asn != nil {
		errs = append(errs, r.asn.Close())
	}
	return errors.Join(errs...)
}

// Lookup returns the suggestion for ip. Addresses that are not IPv4 or
// not present in the databases give an empty suggestion.
func (r *Resolver) Lookup(ip string) Suggestion {
	s := Suggestion{}
	if r == nil || domain.ValidateIPv4(ip) != nil {
		return s
	}
	addr := net.ParseIP(ip)

	if r.city != nil {
		if record, err := r.city.City(addr); err == nil {
			s.addCity(record)
		}
	}
	if r.asn != nil {
		if record, err := r.asn.ASN(addr); err == nil {
			s.addASN(record)
		}
	}
	return s
}

func (s Suggestion) addCity(record *geoip2.City) {
	var subdivision string
	if len(record.Subdivisions) > 0 {
		subdivision = record.Subdivisions[0].Names["en"]
	}
	if location := joinLocation(record.Country.Names["en"], subdivision, record.City.Names["en"]); location != "" {
		s[domain.FieldLocationInfo] = location
	}

	// 0,0 is what the database reports for "no coordinates"
	if record.Location.Latitude != 0 || record.Location.Longitude != 0 {
		s[domain.FieldLatitude] = formatCoordinate(record.Location.Latitude)
		s[domain.FieldLongitude] = formatCoordinate(record.Location.Longitude)
	}

	if record.Country.IsoCode != "" {
		s[domain.FieldCountryFlag] = record.Country.IsoCode
	}
}

func (s Suggestion) addASN(record *geoip2.ASN) {
	if record.AutonomousSystemNumber != 0 {
		s[domain.FieldASNInfo] = formatASN(record.AutonomousSystemNumber)
	}
	if record.AutonomousSystemOrganization != "" {
		s[domain.FieldASNOwner] = record.AutonomousSystemOrganization
	}
}

// joinLocation builds "Country Region City", skipping empty or repeated parts
func joinLocation(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p == "" || (len(kept) > 0 && kept[len(kept)-1] == p) {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, " ")
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatASN(n uint) string {
	return "AS" + strconv.FormatUint(uint64(n), 10)
}
