// Package robots renders the crawler policy served at /robots.txt.
package robots

import "strings"

const policy = `User-agent: *
Disallow: /?s=*
Disallow: /?q=*
Disallow: /search/*

Allow: /
Allow: /video/*
Allow: /category/*

`

// Document returns robots.txt for the site at baseURL. Search and query
// pages are disallowed; the sitemap index is advertised.
func Document(baseURL string) string {
	return policy + "Sitemap: " + strings.TrimRight(baseURL, "/") + "/sitemap.xml\n"
}
