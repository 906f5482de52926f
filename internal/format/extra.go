// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"fmt"
	"net/mail"
	"net/netip"
	"net/url"
	"regexp/syntax"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/net/idna"
)

func init() {
	Register("hostname", false, hostnameFormat)
	Register("idn-hostname", false, idnHostnameFormat)
	Register("email", false, emailFormat)
	Register("uuid", false, uuidFormat)
	Register("uri", false, uriFormat)
	Register("uri-reference", false, uriReferenceFormat)
	Register("regex", false, regexFormat)
	Register("json-pointer", false, jsonPointerFormat)
}

func hostnameFormat(s string) error {
	if !isValidHostname(s, false) {
		return fmt.Errorf("%q is not a valid hostname", s)
	}
	return nil
}

func idnHostnameFormat(s string) error {
	if !isValidHostname(s, true) {
		return fmt.Errorf("%q is not a valid internationalized hostname", s)
	}
	return nil
}

var hostnameProfile = sync.OnceValue(func() *idna.Profile {
	return idna.New(idna.ValidateForRegistration())
})

// isValidHostname reports whether s is a valid hostname. If idn is true,
// internationalized hostnames are permitted too.
func isValidHostname(s string, idn bool) bool {
	if _, err := netip.ParseAddr(s); err == nil {
		return true
	}

	if strings.Contains(s, "_") {
		return false
	}

	if !idn {
		for i := range len(s) {
			if s[i]&0x80 != 0 {
				return false
			}
		}
	} else {
		s = strings.ReplaceAll(s, "。", ".")
		s = strings.ReplaceAll(s, "．", ".")
		s = strings.ReplaceAll(s, "｡", ".")

		var last, nextMustBe rune
		var nextMustBeGreek bool
		for _, c := range s {
			if nextMustBe != 0 && nextMustBe != c {
				return false
			}
			nextMustBe = 0

			if nextMustBeGreek && !unicode.Is(unicode.Greek, c) {
				return false
			}
			nextMustBeGreek = false

			switch c {
			case 'ـ', 'ߺ', '〮', '〯',
				'〱', '〲', '〳', '〴',
				'〵', '〻':
				return false
			case '·':
				if last != 'l' {
					return false
				}
				nextMustBe = 'l'
			case '͵':
				nextMustBeGreek = true
			case '׳', '״':
				if !unicode.Is(unicode.Hebrew, last) {
					return false
				}
			case '・':
				found := false
				for _, c := range s {
					if unicode.Is(unicode.Hiragana, c) || unicode.Is(unicode.Katakana, c) || unicode.Is(unicode.Han, c) {
						found = true
						break
					}
				}
				if !found {
					return false
				}
			}

			last = c
		}
		if nextMustBe != 0 || nextMustBeGreek {
			return false
		}
	}

	if _, err := hostnameProfile().ToASCII(s); err != nil {
		return false
	}
	return true
}

func emailFormat(s string) error {
	if !isValidEmail(s) {
		return fmt.Errorf("%q is not a valid email address", s)
	}
	return nil
}

func isValidEmail(s string) bool {
	s = strings.Replace(s, "[IPv6:", "[", 1)
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" {
		return false
	}

	idx := strings.LastIndex(addr.Address, "@")
	if idx < 0 {
		return true
	}
	domain := addr.Address[idx+1:]
	if strings.HasPrefix(domain, "[") {
		return true
	}
	for i := range len(domain) {
		c := domain[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '.', c == '-':
		default:
			return false
		}
	}
	return true
}

func uuidFormat(s string) error {
	orig := s
	bad := func() error { return fmt.Errorf("%q is not a valid UUID", orig) }

	hexOctets := func(want int) bool {
		if len(s) < 2*want {
			return false
		}
		for i := range 2 * want {
			b := s[i]
			switch {
			case b >= '0' && b <= '9':
			case b >= 'A' && b <= 'F':
			case b >= 'a' && b <= 'f':
			default:
				return false
			}
		}
		s = s[2*want:]
		return true
	}
	dash := func() bool {
		if len(s) == 0 || s[0] != '-' {
			return false
		}
		s = s[1:]
		return true
	}

	if !hexOctets(4) || !dash() || !hexOctets(2) || !dash() || !hexOctets(2) || !dash() || !hexOctets(2) || !dash() || !hexOctets(6) {
		return bad()
	}
	if len(s) != 0 {
		return bad()
	}
	return nil
}

func uriFormat(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("%q is not a valid URI: %v", s, err)
	}
	if !u.IsAbs() {
		return fmt.Errorf("%q is not an absolute URI", s)
	}
	if !checkURI(u) {
		return fmt.Errorf("%q failed URI checks", s)
	}
	return nil
}

func uriReferenceFormat(s string) error {
	if strings.HasPrefix(s, `\\`) {
		return fmt.Errorf(`%q starts with \\`, s)
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("%q is not a valid URI reference: %v", s, err)
	}
	if !checkURI(u) {
		return fmt.Errorf("%q failed URI checks", s)
	}
	return nil
}

func checkURI(u *url.URL) bool {
	if addr, err := netip.ParseAddr(u.Host); err == nil && addr.Is6() {
		return false
	}
	if strings.Contains(u.Fragment, `\`) {
		return false
	}
	for i := range u.RawPath {
		c := u.RawPath[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			continue
		}
		switch c {
		case '-', '_', '.', '~', '@', '&', '=', '+', '$', '/', ';', ',', '(', ')', '#':
			continue
		default:
			return false
		}
	}
	return true
}

func regexFormat(s string) error {
	if _, err := syntax.Parse(s, syntax.Perl); err != nil {
		return fmt.Errorf("%q is not a valid regexp (only Go-style regexps are supported)", s)
	}
	return nil
}

func jsonPointerFormat(s string) error {
	if len(s) == 0 {
		return nil
	}
	if !strings.HasPrefix(s, "/") {
		return fmt.Errorf("%q is not a valid JSON pointer", s)
	}
	if !checkJSONPointerEscapes(s) {
		return fmt.Errorf("%q has invalid escaping for a JSON pointer", s)
	}
	return nil
}

func checkJSONPointerEscapes(s string) bool {
	for {
		_, after, ok := strings.Cut(s, "~")
		if !ok {
			break
		}
		if len(after) == 0 || (after[0] != '0' && after[0] != '1') {
			return false
		}
		s = after
	}
	return true
}
