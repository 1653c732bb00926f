package geoip

import (
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"
	"go.uber.org/zap"
)

// Resolver maps an IP address to a 2-letter country code using a local
// MaxMind database. A nil Resolver is valid and never resolves anything,
// which keeps the geo database optional at deploy time.
type Resolver struct {
	reader *geoip2.Reader
	log    *zap.Logger
}

// Open loads the MMDB file at path.
func Open(path string, log *zap.Logger) (*Resolver, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open geoip database: %w", err)
	}

	log.Info("geoip database loaded", zap.String("path", path))
	return &Resolver{reader: reader, log: log}, nil
}

// Country returns the ISO country code for ip, or "" when the address is
// unparseable, unknown, or no database is loaded.
func (r *Resolver) Country(ip string) string {
	if r == nil || r.reader == nil {
		return ""
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ""
	}

	record, err := r.reader.Country(parsed)
	if err != nil {
		r.log.Debug("geoip lookup failed", zap.String("ip", ip), zap.Error(err))
		return ""
	}

	return record.Country.IsoCode
}

// Close releases the underlying database handle.
func (r *Resolver) Close() error {
	if r == nil || r.reader == nil {
		return nil
	}
	return r.reader.Close()
}
