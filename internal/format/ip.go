// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"fmt"
	"net/netip"
)

func init() {
	Register("ipv4", true, ipv4Format)
	Register("ipv6", true, ipv6Format)
}

// ipv4Format requires a valid IPv4 address.
func ipv4Format(s string) error {
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is4() {
		return fmt.Errorf("%q is not a valid IPv4 address", s)
	}
	return nil
}

// ipv6Format requires a valid IPv6 address.
func ipv6Format(s string) error {
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is6() || addr.Zone() != "" {
		return fmt.Errorf("%q is not a valid IPv6 address", s)
	}
	return nil
}
