package transport

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/go-gost/seermon/internal/matcher"
	"github.com/go-gost/seermon/seer"
)

const (
	DefaultFilter = "seer"
)

var (
	ErrInvalidFilter = errors.New("transport: invalid filter")
)

// Filter selects the received units that are handed to the listener callback.
//
// Expression grammar:
//
//	filter = [ "seer" ] [ "src" pattern { "," pattern } ]
//
// "seer" keeps only units carrying the seer magic. Each src pattern is an
// IP address, a CIDR block or a wildcard such as 10.0.*; a unit passes
// when its source matches any of them. The empty expression passes all.
type Filter struct {
	expr string
	seer bool
	src  matcher.Matcher
}

// ParseFilter compiles a filter expression.
func ParseFilter(expr string) (*Filter, error) {
	f := &Filter{expr: strings.TrimSpace(expr)}

	fields := strings.Fields(f.expr)
	for i := 0; i < len(fields); i++ {
		switch strings.ToLower(fields[i]) {
		case "seer":
			if f.seer {
				return nil, fmt.Errorf("%w: repeated seer in %q", ErrInvalidFilter, expr)
			}
			f.seer = true
		case "src":
			if f.src != nil {
				return nil, fmt.Errorf("%w: repeated src in %q", ErrInvalidFilter, expr)
			}
			if i+1 >= len(fields) {
				return nil, fmt.Errorf("%w: src without patterns in %q", ErrInvalidFilter, expr)
			}
			i++
			m, err := matcher.AddrMatcher(strings.Split(fields[i], ","))
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
			}
			f.src = m
		default:
			return nil, fmt.Errorf("%w: unexpected %q in %q", ErrInvalidFilter, fields[i], expr)
		}
	}

	return f, nil
}

// MustParseFilter is like ParseFilter but panics on error.
func MustParseFilter(expr string) *Filter {
	f, err := ParseFilter(expr)
	if err != nil {
		panic(err)
	}
	return f
}

// Match reports whether a unit received from addr passes the filter.
// A nil filter passes everything.
func (f *Filter) Match(b []byte, addr net.Addr) bool {
	if f == nil {
		return true
	}
	if f.seer && !seer.IsVerdict(b) {
		return false
	}
	if f.src != nil {
		if addr == nil {
			return false
		}
		host, _, err := net.SplitHostPort(addr.String())
		if err != nil {
			host = addr.String()
		}
		if !f.src.Match(host) {
			return false
		}
	}
	return true
}

func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.expr
}
