// Package mapview builds the URLs an external map widget needs to talk to
// the hosted map style service.
package mapview

import (
	"fmt"
	"net/url"
	"strings"
)

// Config identifies the hosted map. The values are passed through as given.
type Config struct {
	Region  string
	MapName string
	APIKey  string
}

// Enabled reports whether enough is configured to build a style URL.
func (c Config) Enabled() bool {
	return c.Region != "" && c.MapName != ""
}

// host is the prefix every request to the map service starts with.
func (c Config) host() string {
	return fmt.Sprintf("https://maps.geo.%s.amazonaws.com/", c.Region)
}

// StyleURL returns the style descriptor URL, key included.
func (c Config) StyleURL() string {
	base := fmt.Sprintf("%smaps/v0/maps/%s/style-descriptor", c.host(), c.MapName)
	return base + "?key=" + url.QueryEscape(c.APIKey)
}

// TransformURL appends the API key to requests for the map service (tiles,
// sprites, glyphs) that do not carry one already. Other URLs pass unchanged.
func (c Config) TransformURL(u string) string {
	if !strings.HasPrefix(u, c.host()) || strings.Contains(u, "key=") {
		return u
	}
	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return u + sep + "key=" + url.QueryEscape(c.APIKey)
}
