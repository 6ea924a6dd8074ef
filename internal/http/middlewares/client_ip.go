package middlewares

import (
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ClientIPResolver decide la IP del cliente. X-Forwarded-For sólo se mira
// cuando el peer TCP es un proxy de confianza; la cadena se recorre de
// derecha a izquierda y gana el primer hop que no es proxy.
type ClientIPResolver struct {
	trusted []*net.IPNet
}

// NewClientIPResolver acepta CIDRs o IPs sueltas. Sin proxies de confianza
// siempre se usa RemoteAddr.
func NewClientIPResolver(proxies []string) (*ClientIPResolver, error) {
	res := &ClientIPResolver{}
	for _, p := range proxies {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.Contains(p, "/") {
			if ip := net.ParseIP(p); ip != nil && ip.To4() != nil {
				p += "/32"
			} else {
				p += "/128"
			}
		}
		_, n, err := net.ParseCIDR(p)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", p, err)
		}
		res.trusted = append(res.trusted, n)
	}
	return res, nil
}

func (c *ClientIPResolver) isTrusted(ip net.IP) bool {
	if c == nil || ip == nil {
		return false
	}
	for _, n := range c.trusted {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// IP devuelve la IP del cliente para r.
func (c *ClientIPResolver) IP(r *http.Request) string {
	peer := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		peer = host
	}
	if !c.isTrusted(net.ParseIP(peer)) {
		return peer
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		ip := net.ParseIP(hop)
		if ip == nil {
			// basura en la cadena: no se puede seguir confiando
			return peer
		}
		if !c.isTrusted(ip) {
			return hop
		}
	}
	return peer
}
