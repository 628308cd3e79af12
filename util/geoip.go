package util

import (
	"net"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/oschwald/geoip2-golang"
	cache "github.com/patrickmn/go-cache"
)

var (
	geoipDB        *geoip2.Reader
	geoipCache     *cache.Cache
	geoipCacheHits int64
	geoipCacheMiss int64
)

// InitGeoIP initializes the local GeoIP2 database reader and an in-memory cache.
// Provide the path to a GeoIP2/GeoLite2 .mmdb file via `dbPath`.
// If dbPath is empty, initialization is a no-op.
func InitGeoIP(dbPath string) error {
	if dbPath == "" {
		dbPath = os.Getenv("GEOIP_DB_PATH")
	}
	if dbPath == "" {
		return nil
	}

	r, err := geoip2.Open(dbPath)
	if err != nil {
		return err
	}
	geoipDB = r
	// Cache entries for 24h, purge every hour
	geoipCache = cache.New(24*time.Hour, 1*time.Hour)
	return nil
}

// CloseGeoIP closes the GeoIP DB if opened.
func CloseGeoIP() {
	if geoipDB != nil {
		_ = geoipDB.Close()
		geoipDB = nil
	}
}

func isLocalIP(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return strings.HasPrefix(ip, "::")
	}
	return parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified() || parsed.IsLinkLocalUnicast()
}

// GetIPLocation returns city and country name for the provided IP using the
// local GeoIP database with an in-memory cache. Returns empty strings when
// a lookup is not available.
func GetIPLocation(ip string) (string, string) {
	if ip == "" || isLocalIP(ip) {
		return "", ""
	}

	if geoipCache != nil {
		if v, ok := geoipCache.Get(ip); ok {
			atomic.AddInt64(&geoipCacheHits, 1)
			if arr, ok := v.([2]string); ok {
				return arr[0], arr[1]
			}
		}
	}
	atomic.AddInt64(&geoipCacheMiss, 1)

	if geoipDB == nil {
		return "", ""
	}

	netip := net.ParseIP(ip)
	if netip == nil {
		return "", ""
	}

	rec, err := geoipDB.City(netip)
	if err != nil {
		Logger.Debug().Err(err).Str("ip", ip).Msg("geoip lookup failed")
		return "", ""
	}

	city := rec.City.Names["en"]
	country := rec.Country.Names["en"]
	if country == "" {
		country = rec.Country.IsoCode
	}

	if geoipCache != nil {
		geoipCache.Set(ip, [2]string{city, country}, cache.DefaultExpiration)
	}

	return city, country
}

// GetGeoIPCacheMetrics returns the cache hits and misses and current cache size.
func GetGeoIPCacheMetrics() (hits int64, misses int64, size int) {
	hits = atomic.LoadInt64(&geoipCacheHits)
	misses = atomic.LoadInt64(&geoipCacheMiss)
	if geoipCache != nil {
		return hits, misses, geoipCache.ItemCount()
	}
	return hits, misses, 0
}
