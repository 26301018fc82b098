package config

// Config is the root configuration structure
type Config struct {
	Version  int         `yaml:"version"`
	DataFile string      `yaml:"data_file"`
	Log      LogConfig   `yaml:"log"`
	GeoIP    GeoIPConfig `yaml:"geoip"`
}

// LogConfig controls diagnostic logging
type LogConfig struct {
	Level     string `yaml:"level"` // debug, info, warn, error
	Timestamp bool   `yaml:"timestamp"`
}

// GeoIPConfig points at local MaxMind databases used to suggest values
// while adding annotations. Both are optional.
type GeoIPConfig struct {
	CityDB string `yaml:"city_db,omitempty"`
	ASNDB  string `yaml:"asn_db,omitempty"`
}

// Enabled returns true if at least one database is configured
func (g GeoIPConfig) Enabled() bool {
	return g.CityDB != "" || g.ASNDB != ""
}
