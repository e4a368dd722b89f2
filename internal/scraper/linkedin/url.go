package linkedin

import (
	"net/url"
	"strings"
)

const searchEndpoint = "https://www.linkedin.com/jobs/search/"

// BuildSearchURL encodes keywords and optional location onto the public job search endpoint
func BuildSearchURL(query, location string) string {
	params := url.Values{}
	params.Set("keywords", query)
	if location != "" {
		params.Set("location", location)
	}
	return searchEndpoint + "?" + params.Encode()
}

// stripQuery drops tracking params (?refId=..., ?trackingId=...) so the same job keeps one URL
func stripQuery(link string) string {
	if idx := strings.Index(link, "?"); idx != -1 {
		return link[:idx]
	}
	return link
}
