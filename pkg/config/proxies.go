package config

import (
	"fmt"
	"net/netip"
	"strings"
)

// ProxyList is a comma separated set of IPs or CIDR ranges. Bare addresses
// become single-host prefixes.
type ProxyList []netip.Prefix

// Decode implements envconfig.Decoder.
func (p *ProxyList) Decode(value string) error {
	var out ProxyList
	for _, raw := range strings.Split(value, ",") {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				return fmt.Errorf("trusted proxy %q: %w", entry, err)
			}
			out = append(out, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return fmt.Errorf("trusted proxy %q: %w", entry, err)
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	*p = out
	return nil
}

// Contains reports whether addr falls inside any listed range.
func (p ProxyList) Contains(addr netip.Addr) bool {
	addr = addr.Unmap()
	for _, prefix := range p {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}
