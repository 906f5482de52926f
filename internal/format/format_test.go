// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import "testing"

func TestLookupDefaults(t *testing.T) {
	defaults := []string{"date-time", "date", "time", "ipv4", "ipv6"}
	for _, name := range defaults {
		check, byDefault, ok := Lookup(name)
		if !ok {
			t.Errorf("Lookup(%q) not found", name)
			continue
		}
		if !byDefault {
			t.Errorf("Lookup(%q) byDefault = false, want true", name)
		}
		if check == nil {
			t.Errorf("Lookup(%q) returned a nil checker", name)
		}
	}

	extras := []string{"duration", "hostname", "idn-hostname", "email", "uuid", "uri", "uri-reference", "regex", "json-pointer"}
	for _, name := range extras {
		_, byDefault, ok := Lookup(name)
		if !ok {
			t.Errorf("Lookup(%q) not found", name)
			continue
		}
		if byDefault {
			t.Errorf("Lookup(%q) byDefault = true, want false", name)
		}
	}

	if _, _, ok := Lookup("no-such-format"); ok {
		t.Error("Lookup of an unregistered name returned ok = true")
	}
}

func TestDateTime(t *testing.T) {
	check, _, _ := Lookup("date-time")
	valid := []string{
		"2024-01-02T03:04:05Z",
		"2024-01-02t03:04:05z",
		"2024-01-02T03:04:05.999+01:00",
		"1998-12-31T23:59:60Z", // leap second
	}
	for _, s := range valid {
		if err := check(s); err != nil {
			t.Errorf("check(%q) = %v, want nil", s, err)
		}
	}
	invalid := []string{"", "2024-01-02", "not-a-date-time", "2024-13-01T00:00:00Z"}
	for _, s := range invalid {
		if err := check(s); err == nil {
			t.Errorf("check(%q) = nil, want an error", s)
		}
	}
}

func TestDate(t *testing.T) {
	check, _, _ := Lookup("date")
	if err := check("2024-02-29"); err != nil {
		t.Errorf("leap day rejected: %v", err)
	}
	if err := check("2023-02-29"); err == nil {
		t.Error("non-leap-year Feb 29 accepted")
	}
	if err := check("2024-1-2"); err == nil {
		t.Error("unpadded date accepted")
	}
}

func TestTime(t *testing.T) {
	check, _, _ := Lookup("time")
	if err := check("03:04:05Z"); err != nil {
		t.Errorf("valid time rejected: %v", err)
	}
	if err := check("03:04:05+01:00"); err != nil {
		t.Errorf("valid offset time rejected: %v", err)
	}
	if err := check("24:00:00Z"); err == nil {
		t.Error("out-of-range hour accepted")
	}
}

func TestDuration(t *testing.T) {
	check, _, _ := Lookup("duration")
	valid := []string{"P1Y2M3D", "PT1H2M3S", "P1W", "P1DT2H"}
	for _, s := range valid {
		if err := check(s); err != nil {
			t.Errorf("check(%q) = %v, want nil", s, err)
		}
	}
	invalid := []string{"", "1Y2M3D", "P", "PT"}
	for _, s := range invalid {
		if err := check(s); err == nil {
			t.Errorf("check(%q) = nil, want an error", s)
		}
	}
}

func TestIPv4(t *testing.T) {
	check, _, _ := Lookup("ipv4")
	if err := check("192.168.0.1"); err != nil {
		t.Errorf("valid IPv4 rejected: %v", err)
	}
	if err := check("::1"); err == nil {
		t.Error("IPv6 address accepted as IPv4")
	}
	if err := check("not-an-ip"); err == nil {
		t.Error("garbage accepted as IPv4")
	}
}

func TestIPv6(t *testing.T) {
	check, _, _ := Lookup("ipv6")
	if err := check("::1"); err != nil {
		t.Errorf("valid IPv6 rejected: %v", err)
	}
	if err := check("192.168.0.1"); err == nil {
		t.Error("IPv4 address accepted as IPv6")
	}
	if err := check("fe80::1%eth0"); err == nil {
		t.Error("zone-qualified address accepted")
	}
}

func TestHostname(t *testing.T) {
	check, _, _ := Lookup("hostname")
	if err := check("example.com"); err != nil {
		t.Errorf("valid hostname rejected: %v", err)
	}
	if err := check("has_underscore.com"); err == nil {
		t.Error("hostname with underscore accepted")
	}
	if err := check("café.com"); err == nil {
		t.Error("non-ASCII hostname accepted by the plain hostname checker")
	}
}

func TestIDNHostname(t *testing.T) {
	check, _, _ := Lookup("idn-hostname")
	if err := check("example.com"); err != nil {
		t.Errorf("valid ASCII hostname rejected: %v", err)
	}
	if err := check("xn--nxasmq6b.com"); err != nil {
		t.Errorf("valid punycode hostname rejected: %v", err)
	}
}

func TestEmail(t *testing.T) {
	check, _, _ := Lookup("email")
	if err := check("user@example.com"); err != nil {
		t.Errorf("valid email rejected: %v", err)
	}
	if err := check("not an email"); err == nil {
		t.Error("invalid email accepted")
	}
	if err := check("Display Name <user@example.com>"); err == nil {
		t.Error("email with a display name accepted")
	}
}

func TestUUID(t *testing.T) {
	check, _, _ := Lookup("uuid")
	if err := check("550e8400-e29b-41d4-a716-446655440000"); err != nil {
		t.Errorf("valid UUID rejected: %v", err)
	}
	if err := check("550e8400-e29b-41d4-a716"); err == nil {
		t.Error("truncated UUID accepted")
	}
	if err := check("550e8400-e29b-41d4-a716-44665544000g"); err == nil {
		t.Error("UUID with a non-hex character accepted")
	}
}

func TestURI(t *testing.T) {
	check, _, _ := Lookup("uri")
	if err := check("https://example.com/path"); err != nil {
		t.Errorf("valid absolute URI rejected: %v", err)
	}
	if err := check("/relative/path"); err == nil {
		t.Error("relative reference accepted as an absolute URI")
	}
}

func TestURIReference(t *testing.T) {
	check, _, _ := Lookup("uri-reference")
	if err := check("/relative/path"); err != nil {
		t.Errorf("valid relative reference rejected: %v", err)
	}
	if err := check(`\\server\share`); err == nil {
		t.Error("UNC-style path accepted as a URI reference")
	}
}

func TestRegex(t *testing.T) {
	check, _, _ := Lookup("regex")
	if err := check(`^[a-z]+$`); err != nil {
		t.Errorf("valid regex rejected: %v", err)
	}
	if err := check(`[unterminated`); err == nil {
		t.Error("invalid regex accepted")
	}
}

func TestJSONPointerFormat(t *testing.T) {
	check, _, _ := Lookup("json-pointer")
	if err := check(""); err != nil {
		t.Errorf("empty pointer rejected: %v", err)
	}
	if err := check("/a/b"); err != nil {
		t.Errorf("valid pointer rejected: %v", err)
	}
	if err := check("a/b"); err == nil {
		t.Error("pointer without a leading slash accepted")
	}
	if err := check("/a~2b"); err == nil {
		t.Error("pointer with an invalid escape sequence accepted")
	}
}
