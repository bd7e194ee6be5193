package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
)

// TrustedRealIP rewrites r.RemoteAddr to the client address carried in
// X-Real-IP or X-Forwarded-For, but only when the connection itself comes
// from one of the configured proxy networks. The rate limiter keys its
// buckets on RemoteAddr, so forwarding headers from arbitrary clients must
// stay untrusted or every upload could arrive with a fresh invented address.
//
// Entries may be CIDRs or bare addresses. Unparseable entries are logged
// once at startup and skipped.
func TrustedRealIP(proxies []string) func(http.Handler) http.Handler {
	nets := parseProxyNets(proxies)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if connectionFromProxy(r.RemoteAddr, nets) {
				if ip := forwardedClientIP(r.Header); ip != nil {
					r.RemoteAddr = ip.String()
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// parseProxyNets converts the configured entries into networks. A bare
// address gets a single-host mask.
func parseProxyNets(entries []string) []*net.IPNet {
	var nets []*net.IPNet
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if _, network, err := net.ParseCIDR(entry); err == nil {
			nets = append(nets, network)
			continue
		}
		ip := net.ParseIP(entry)
		if ip == nil {
			slog.Warn("ignoring unparseable trusted proxy entry", "entry", entry)
			continue
		}
		bits := 128
		if ip.To4() != nil {
			bits = 32
		}
		nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
	}
	return nets
}

// connectionFromProxy reports whether the connection's source address falls
// inside any configured proxy network.
func connectionFromProxy(remoteAddr string, nets []*net.IPNet) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	for _, network := range nets {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// forwardedClientIP extracts the original client address from proxy headers.
// X-Real-IP wins over X-Forwarded-For; in a forwarding chain the first hop
// is the client. A value that does not parse as an address is ignored rather
// than trusted.
func forwardedClientIP(h http.Header) net.IP {
	if rip := strings.TrimSpace(h.Get("X-Real-IP")); rip != "" {
		return net.ParseIP(rip)
	}
	xff := h.Get("X-Forwarded-For")
	if xff == "" {
		return nil
	}
	first := xff
	if idx := strings.Index(xff, ","); idx >= 0 {
		first = xff[:idx]
	}
	return net.ParseIP(strings.TrimSpace(first))
}
