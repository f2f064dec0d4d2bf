package matcher

import (
	"fmt"
	"net"
	"strings"

	"github.com/gobwas/glob"
	"github.com/yl2chen/cidranger"
)

// Matcher is a generic pattern matcher,
// it gives the match result of the given pattern for specific v.
type Matcher interface {
	Match(v string) bool
}

type ipMatcher struct {
	ips map[string]struct{}
}

// IPMatcher creates a Matcher with a list of IP addresses.
func IPMatcher(ips []net.IP) Matcher {
	matcher := &ipMatcher{
		ips: make(map[string]struct{}),
	}
	for _, ip := range ips {
		matcher.ips[ip.String()] = struct{}{}
	}
	return matcher
}

func (m *ipMatcher) Match(ip string) bool {
	if m == nil || len(m.ips) == 0 {
		return false
	}
	if netIP := net.ParseIP(ip); netIP != nil {
		ip = netIP.String()
	}
	_, ok := m.ips[ip]
	return ok
}

type cidrMatcher struct {
	ranger cidranger.Ranger
}

// CIDRMatcher creates a Matcher for a list of CIDR notation IP addresses.
func CIDRMatcher(inets []*net.IPNet) Matcher {
	ranger := cidranger.NewPCTrieRanger()
	for _, inet := range inets {
		ranger.Insert(cidranger.NewBasicRangerEntry(*inet))
	}
	return &cidrMatcher{ranger: ranger}
}

func (m *cidrMatcher) Match(ip string) bool {
	if m == nil || m.ranger == nil {
		return false
	}
	if netIP := net.ParseIP(ip); netIP != nil {
		b, _ := m.ranger.Contains(netIP)
		return b
	}
	return false
}

type wildcardMatcherPattern struct {
	pattern string
	glob    glob.Glob
}

type wildcardMatcher struct {
	patterns []wildcardMatcherPattern
}

// WildcardMatcher creates a Matcher for wildcard address patterns such as '10.0.*'.
func WildcardMatcher(patterns []string) (Matcher, error) {
	matcher := &wildcardMatcher{}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("wildcard %q: %w", pattern, err)
		}
		matcher.patterns = append(matcher.patterns, wildcardMatcherPattern{
			pattern: pattern,
			glob:    g,
		})
	}

	return matcher, nil
}

func (m *wildcardMatcher) Match(v string) bool {
	if m == nil || len(m.patterns) == 0 {
		return false
	}

	for _, pattern := range m.patterns {
		if pattern.glob.Match(v) {
			return true
		}
	}

	return false
}

type anyMatcher []Matcher

func (m anyMatcher) Match(v string) bool {
	for _, matcher := range m {
		if matcher != nil && matcher.Match(v) {
			return true
		}
	}
	return false
}

// AddrMatcher builds a Matcher from a mixed list of IP addresses,
// CIDR blocks and wildcard patterns. A value matches if any entry matches.
func AddrMatcher(patterns []string) (Matcher, error) {
	var ips []net.IP
	var inets []*net.IPNet
	var wildcards []string

	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if ip := net.ParseIP(pattern); ip != nil {
			ips = append(ips, ip)
			continue
		}
		if _, inet, err := net.ParseCIDR(pattern); err == nil {
			inets = append(inets, inet)
			continue
		}
		if strings.ContainsAny(pattern, "*?[{") {
			wildcards = append(wildcards, pattern)
			continue
		}
		return nil, fmt.Errorf("invalid address pattern %q", pattern)
	}

	var m anyMatcher
	if len(ips) > 0 {
		m = append(m, IPMatcher(ips))
	}
	if len(inets) > 0 {
		m = append(m, CIDRMatcher(inets))
	}
	if len(wildcards) > 0 {
		wm, err := WildcardMatcher(wildcards)
		if err != nil {
			return nil, err
		}
		m = append(m, wm)
	}
	return m, nil
}
