package middleware

import (
	"fmt"
	"net/netip"

	"github.com/gin-gonic/gin"
)

// ProxyTrustedKey is set on the gin context when the direct peer is one of
// the configured reverse proxies.
const ProxyTrustedKey = "proxy_trusted"

// TrustedProxies marks requests whose direct peer matches one of proxies
// (IPs or CIDRs). Only those may steer the origin through X-Forwarded-*.
func TrustedProxies(proxies []string) (gin.HandlerFunc, error) {
	prefixes := make([]netip.Prefix, 0, len(proxies))
	for _, raw := range proxies {
		if p, err := netip.ParsePrefix(raw); err == nil {
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", raw, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}

	return func(c *gin.Context) {
		if len(prefixes) > 0 {
			if addr, err := netip.ParseAddr(c.RemoteIP()); err == nil {
				addr = addr.Unmap()
				for _, p := range prefixes {
					if p.Contains(addr) {
						c.Set(ProxyTrustedKey, true)
						break
					}
				}
			}
		}
		c.Next()
	}, nil
}

// FromTrustedProxy reports whether TrustedProxies accepted the peer.
func FromTrustedProxy(c *gin.Context) bool {
	return c.GetBool(ProxyTrustedKey)
}
