package util

import (
	"testing"

	cache "github.com/patrickmn/go-cache"
)

func TestInitGeoIP_EmptyPath(t *testing.T) {
	t.Setenv("GEOIP_DB_PATH", "")
	if err := InitGeoIP(""); err != nil {
		t.Errorf("Expected no error with empty path, got %v", err)
	}
}

func TestInitGeoIP_NonExistentFile(t *testing.T) {
	if err := InitGeoIP("/nonexistent/path/to/geoip.mmdb"); err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestGetIPLocation_PrivateIPs(t *testing.T) {
	for _, ip := range []string{"", "127.0.0.1", "::1", "10.0.0.1", "192.168.1.1", "172.16.0.4", "::", "::ffff"} {
		city, country := GetIPLocation(ip)
		if city != "" || country != "" {
			t.Errorf("Expected empty location for %q, got %s/%s", ip, city, country)
		}
	}
}

func TestGetIPLocation_NoDB(t *testing.T) {
	geoipDB = nil
	geoipCache = nil

	city, country := GetIPLocation("8.8.8.8")
	if city != "" || country != "" {
		t.Errorf("Expected empty location when DB is nil, got %s/%s", city, country)
	}
}

func TestGetIPLocation_CacheHit(t *testing.T) {
	geoipDB = nil
	geoipCache = cache.New(cache.NoExpiration, 0)
	t.Cleanup(func() { geoipCache = nil })

	geoipCache.Set("203.0.113.9", [2]string{"Salem", "India"}, cache.DefaultExpiration)
	hitsBefore, _, _ := GetGeoIPCacheMetrics()

	city, country := GetIPLocation("203.0.113.9")
	if city != "Salem" || country != "India" {
		t.Fatalf("expected cached Salem/India, got %s/%s", city, country)
	}
	hits, _, size := GetGeoIPCacheMetrics()
	if hits != hitsBefore+1 {
		t.Errorf("expected one more cache hit, got %d -> %d", hitsBefore, hits)
	}
	if size != 1 {
		t.Errorf("expected cache size 1, got %d", size)
	}
}
