package service

import (
	"errors"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
)

var (
	errForbiddenHost   = errors.New("invalid host")
	errForbiddenOrigin = errors.New("invalid origin")
)

// hostGuard admits requests whose Host and Origin name a loopback address or
// one of the configured hosts. It keeps web pages from reaching a local
// bridge through DNS rebinding.
type hostGuard map[string]struct{}

func newHostGuard(hosts []string) hostGuard {
	g := make(hostGuard, len(hosts))
	for _, h := range hosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			g[h] = struct{}{}
		}
	}
	return g
}

// check returns nil when r may be served.
func (g hostGuard) check(r *http.Request) error {
	if r == nil || !g.allows(r.Host) {
		return errForbiddenHost
	}
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return nil
	}
	u, err := url.Parse(origin)
	if err != nil || !g.allows(u.Host) {
		return errForbiddenOrigin
	}
	return nil
}

// allows reports whether a host or host:port header value is admitted.
func (g hostGuard) allows(hostport string) bool {
	host, ok := hostname(hostport)
	if !ok {
		return false
	}
	if host == "localhost" {
		return true
	}
	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		return true
	}
	_, ok = g[host]
	return ok
}

// hostname strips an optional port and IPv6 brackets and lowercases the rest.
func hostname(hostport string) (string, bool) {
	hostport = strings.ToLower(strings.TrimSpace(hostport))
	if hostport == "" {
		return "", false
	}
	if host, _, err := net.SplitHostPort(hostport); err == nil {
		return host, host != ""
	}
	// No port: a bare name, a bracketed IPv6 literal or an unbracketed one.
	if strings.HasPrefix(hostport, "[") {
		host, ok := strings.CutSuffix(hostport[1:], "]")
		return host, ok && host != ""
	}
	if strings.Count(hostport, ":") == 1 {
		return "", false
	}
	return hostport, true
}

// wrap serves next only for admitted requests and answers 403 otherwise.
func (g hostGuard) wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := g.check(r); err != nil {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// health answers GET /mcp/health with "OK".
func health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if _, err := w.Write([]byte("OK")); err != nil {
		log.Printf("write health response: %v", err)
	}
}
