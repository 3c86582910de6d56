// Package clientip extracts and normalizes the requester's IP address so it
// can be used as a stable identity key for per-IP deduplication and rate
// limiting.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

// FromRequest returns the normalized client IP for r.
// Proxy headers win over RemoteAddr: the first entry of X-Forwarded-For is the
// original client when the chain was appended by well-behaved proxies.
func FromRequest(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		if ip := Normalize(parts[0]); ip != "" {
			return ip
		}
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		if ip := Normalize(real); ip != "" {
			return ip
		}
	}
	return Normalize(r.RemoteAddr)
}

// Normalize strips the port and the IPv6-mapped-IPv4 prefix, so "::ffff:1.2.3.4:5678"
// and "1.2.3.4" compare equal.
func Normalize(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	addr = strings.TrimPrefix(addr, "::ffff:")
	if ip := net.ParseIP(addr); ip != nil {
		if v4 := ip.To4(); v4 != nil {
			return v4.String()
		}
		return ip.String()
	}
	return addr
}
