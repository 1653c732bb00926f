package visitor

import (
	"net"
	"net/http"
	"strings"
)

// Visit is the header-derived metadata of one redirect request. It is built
// synchronously in the handler, before the request object can be recycled,
// so the detached write never touches *http.Request.
type Visit struct {
	ShortCode       string
	IP              string
	CountryHint     string // upstream-proxy country header, may be empty
	Referer         string
	UserAgent       string
	SecChUa         string
	SecChUaMobile   string
	SecChUaPlatform string
}

// FromRequest captures everything the engagement record needs from r.
func FromRequest(code string, r *http.Request) *Visit {
	return &Visit{
		ShortCode:       code,
		IP:              clientIP(r),
		CountryHint:     r.Header.Get("CF-IPCountry"),
		Referer:         r.Header.Get("Referer"),
		UserAgent:       r.Header.Get("User-Agent"),
		SecChUa:         r.Header.Get("Sec-CH-UA"),
		SecChUaMobile:   r.Header.Get("Sec-CH-UA-Mobile"),
		SecChUaPlatform: r.Header.Get("Sec-CH-UA-Platform"),
	}
}

// clientIP takes the first entry of X-Forwarded-For when present, else the
// connection address.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
