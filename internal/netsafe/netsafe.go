// Package netsafe classifies network destinations as public or private.
//
// The classifier is the single source of truth for Server-Side Request Forgery
// (SSRF) prevention: any hostname or IP literal that falls inside loopback,
// private, link-local, multicast, or otherwise reserved address space is
// classified Private and must never be contacted.
//
// The classifier fails closed. An empty host, an unparseable literal, a failed
// DNS lookup, or a lookup returning zero records all classify as Private. This
// intentionally rejects some slow-to-resolve legitimate hosts; that tradeoff is
// part of the contract.
package netsafe

import (
	"context"
	"net"
	"strings"
)

// Classification is the result of classifying a destination host.
type Classification int

const (
	// Private marks destinations inside private, loopback, link-local, or
	// reserved address space. Private destinations must not be contacted.
	Private Classification = iota

	// Public marks destinations reachable on the public internet.
	Public
)

// String returns a human-readable form of the classification.
func (c Classification) String() string {
	if c == Public {
		return "public"
	}
	return "private"
}

// Resolver abstracts DNS resolution so tests can inject deterministic lookups.
// net.DefaultResolver satisfies this interface.
type Resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// blockedIPv4CIDRs is the fixed IPv4 rule table. These are data, not code:
// additional ranges can be supplied via Config without touching control flow.
var blockedIPv4CIDRs = []string{
	"127.0.0.0/8",    // loopback
	"10.0.0.0/8",     // RFC 1918 private
	"172.16.0.0/12",  // RFC 1918 private
	"192.168.0.0/16", // RFC 1918 private
	"169.254.0.0/16", // link-local (includes cloud metadata 169.254.169.254)
	"0.0.0.0/8",      // "this network"
	"224.0.0.0/4",    // multicast
	"240.0.0.0/4",    // reserved, 240.0.0.0 and above
}

// blockedIPv6CIDRs is the fixed IPv6 rule table.
var blockedIPv6CIDRs = []string{
	"::1/128",       // loopback
	"::/128",        // unspecified
	"fc00::/7",      // unique-local
	"fd00::/8",      // unique-local (subset of fc00::/7, listed for clarity)
	"fe80::/10",     // link-local
	"ff00::/8",      // multicast
	"2001:db8::/32", // documentation prefix
}

// blockedHostnames are literal hostnames that always classify Private,
// regardless of what they resolve to.
var blockedHostnames = []string{
	"localhost",
	"metadata.google.internal",
	"metadata.gce.internal",
}

// Config carries optional extensions to the fixed rule tables.
type Config struct {
	// ExtraBlockedCIDRs are additional CIDR ranges (IPv4 or IPv6) that
	// classify Private. Invalid entries are reported by New.
	ExtraBlockedCIDRs []string

	// ExtraBlockedHosts are additional hostname literals that classify
	// Private without resolution. Matched case-insensitively.
	ExtraBlockedHosts []string

	// Resolver overrides DNS resolution. Defaults to net.DefaultResolver.
	Resolver Resolver
}

// Classifier decides whether a destination host is inside private or reserved
// address space. It is safe for concurrent use.
type Classifier struct {
	v4nets       []*net.IPNet
	v6nets       []*net.IPNet
	blockedHosts map[string]struct{}
	resolver     Resolver
}

// New builds a Classifier from the fixed rule tables plus the extensions in
// cfg. It returns an error if any extra CIDR fails to parse; the fixed tables
// are compile-time constants and cannot fail.
func New(cfg Config) (*Classifier, error) {
	c := &Classifier{
		blockedHosts: make(map[string]struct{}),
		resolver:     cfg.Resolver,
	}
	if c.resolver == nil {
		c.resolver = net.DefaultResolver
	}

	for _, cidr := range blockedIPv4CIDRs {
		_, n, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, err
		}
		c.v4nets = append(c.v4nets, n)
	}
	for _, cidr := range blockedIPv6CIDRs {
		_, n, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, err
		}
		c.v6nets = append(c.v6nets, n)
	}
	for _, cidr := range cfg.ExtraBlockedCIDRs {
		_, n, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, err
		}
		if n.IP.To4() != nil {
			c.v4nets = append(c.v4nets, n)
		} else {
			c.v6nets = append(c.v6nets, n)
		}
	}

	for _, h := range blockedHostnames {
		c.blockedHosts[h] = struct{}{}
	}
	for _, h := range cfg.ExtraBlockedHosts {
		if h != "" {
			c.blockedHosts[strings.ToLower(h)] = struct{}{}
		}
	}

	return c, nil
}

// Classify decides whether host is a public destination.
//
// host may be an IPv4 literal, an IPv6 literal (with or without brackets or a
// zone identifier), or a DNS name. DNS names are resolved and classify Private
// if resolution fails, returns no records, or if any resolved address is
// private. Ambiguity always resolves to Private.
func (c *Classifier) Classify(ctx context.Context, host string) Classification {
	host = strings.ToLower(strings.TrimSpace(host))
	host = strings.TrimPrefix(host, "[")
	host = strings.TrimSuffix(host, "]")
	if host == "" {
		return Private
	}

	if _, blocked := c.blockedHosts[host]; blocked {
		return Private
	}

	// Strip the IPv6 zone identifier (fe80::1%eth0) before parsing.
	if i := strings.IndexByte(host, '%'); i >= 0 {
		host = host[:i]
	}

	if ip := net.ParseIP(host); ip != nil {
		return c.ClassifyIP(ip)
	}

	// DNS name: resolve all A/AAAA records. The lookup inherits the runtime
	// resolver's own timeout via ctx.
	addrs, err := c.resolver.LookupIPAddr(ctx, host)
	if err != nil || len(addrs) == 0 {
		return Private
	}
	for _, addr := range addrs {
		if c.ClassifyIP(addr.IP) == Private {
			return Private
		}
	}
	return Public
}

// ClassifyIP applies the CIDR rule tables to a single address.
// IPv4-mapped IPv6 addresses (::ffff:a.b.c.d) are classified by the IPv4 rules.
func (c *Classifier) ClassifyIP(ip net.IP) Classification {
	if ip == nil {
		return Private
	}

	if v4 := ip.To4(); v4 != nil {
		for _, n := range c.v4nets {
			if n.Contains(v4) {
				return Private
			}
		}
		return Public
	}

	for _, n := range c.v6nets {
		if n.Contains(ip) {
			return Private
		}
	}
	return Public
}
