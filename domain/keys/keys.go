package keys

import "strings"

const (
	// PfxHealthCheck is used for prefixing health check cache keys
	PfxHealthCheck = "healthcheck"
	// PfxSearch is used for prefixing item-name search results
	PfxSearch = "search"
	// PfxEndingSoon is used for prefixing ending-soon listings
	PfxEndingSoon = "endingSoon"
	// PfxStatistics is used for prefixing aggregate statistics
	PfxStatistics = "statistics"
)

// CustomKey joins key components with the specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey joins cache key components with ":"
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// GetPrefix extracts the leading components of a redis key for metric tags
func GetPrefix(key string) string {
	s := strings.Split(key, ":")
	if len(s) > 2 {
		return strings.Join([]string{s[0], s[1]}, ":")
	} else if len(s) > 1 {
		return s[0]
	}
	return ""
}
