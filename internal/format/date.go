// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"fmt"
	"strconv"
	"time"
)

func init() {
	Register("date-time", true, dateTimeFormat)
	Register("date", true, dateFormat)
	Register("time", true, timeFormat)
	Register("duration", false, durationFormat)
}

// dateTimeFormat requires a valid RFC3339 date-time.
func dateTimeFormat(s string) error {
	if !isValidDateTime(s) {
		return fmt.Errorf("%q is not a valid date-time", s)
	}
	return nil
}

func isValidDateTime(s string) bool {
	if len(s) < dateLen {
		return false
	}
	if !isValidDate(s[:dateLen]) {
		return false
	}
	s = s[dateLen:]
	if len(s) == 0 || (s[0] != 'T' && s[0] != 't') {
		return false
	}
	return isValidTime(s[1:])
}

// dateFormat requires a valid RFC3339 full-date.
func dateFormat(s string) error {
	if !isValidDate(s) {
		return fmt.Errorf("%q is not a valid date", s)
	}
	return nil
}

const dateLen = 10

// isValidDate reports whether s is a valid RFC3339 full-date (YYYY-MM-DD).
func isValidDate(s string) bool {
	if len(s) != dateLen {
		return false
	}
	if s[4] != '-' || s[7] != '-' {
		return false
	}

	year, err := strconv.Atoi(s[:4])
	if err != nil {
		return false
	}
	month, err := strconv.Atoi(s[5:7])
	if err != nil {
		return false
	}
	mday, err := strconv.Atoi(s[8:])
	if err != nil {
		return false
	}

	if year < 0 || month < 1 || month > 12 || mday < 1 || mday > 31 {
		return false
	}
	dy, dm, dd := time.Date(year, time.Month(month), mday, 0, 0, 0, 0, time.UTC).Date()
	return dy == year && dm == time.Month(month) && dd == mday
}

// timeFormat requires a valid RFC3339 full-time.
func timeFormat(s string) error {
	if !isValidTime(s) {
		return fmt.Errorf("%q is not a valid time", s)
	}
	return nil
}

// isValidTime reports whether s is a valid RFC3339 full-time
// (HH:MM:SS[frac]offset).
func isValidTime(s string) bool {
	if len(s) < 8 {
		return false
	}
	if s[2] != ':' || s[5] != ':' {
		return false
	}

	hour, err := strconv.Atoi(s[:2])
	if err != nil {
		return false
	}
	minute, err := strconv.Atoi(s[3:5])
	if err != nil {
		return false
	}
	second, err := strconv.Atoi(s[6:8])
	if err != nil {
		return false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 60 {
		return false
	}

	s = s[8:]
	if len(s) > 0 && s[0] == '.' {
		s = s[1:]
		if len(s) == 0 {
			return false
		}
		for len(s) > 0 && s[0] >= '0' && s[0] <= '9' {
			s = s[1:]
		}
	}

	if len(s) == 0 {
		return false
	}
	negOffset := false
	switch s[0] {
	case 'Z', 'z':
		if second == 60 && (hour != 23 || minute != 59) {
			return false
		}
		return len(s) == 1
	case '+':
		s = s[1:]
	case '-':
		negOffset = true
		s = s[1:]
	default:
		return false
	}

	if len(s) != 5 || s[2] != ':' {
		return false
	}
	hourOffset, err := strconv.Atoi(s[:2])
	if err != nil {
		return false
	}
	minuteOffset, err := strconv.Atoi(s[3:])
	if err != nil {
		return false
	}
	if hourOffset < 0 || hourOffset > 23 || minuteOffset < 0 || minuteOffset > 59 {
		return false
	}

	if second == 60 {
		if !negOffset {
			hourOffset = -hourOffset
			minuteOffset = -minuteOffset
		}
		if (hour+hourOffset != 23 && hour+hourOffset != 0) || (minute+minuteOffset != 59 && minute+minuteOffset != -1) {
			return false
		}
	}

	return true
}

// durationFormat requires a valid RFC3339 duration.
func durationFormat(s string) error {
	if !isValidDuration(s) {
		return fmt.Errorf("%q is not a valid duration", s)
	}
	return nil
}

func isValidDuration(s string) bool {
	isChar := func(s string, ch1, ch2 byte) bool {
		return len(s) > 0 && (s[0] == ch1 || s[0] == ch2)
	}
	isDigit := func(s string) bool {
		return len(s) > 0 && s[0] >= '0' && s[0] <= '9'
	}
	skipDigits := func(s string) (string, bool) {
		if !isDigit(s) {
			return "", false
		}
		for isDigit(s) {
			s = s[1:]
		}
		return s, true
	}

	if !isChar(s, 'P', 'p') {
		return false
	}
	s = s[1:]

	var validDurTime func(s string) bool
	validDurTime = func(s string) bool {
		if !isChar(s, 'T', 't') {
			return false
		}
		s = s[1:]
		s, ok := skipDigits(s)
		if !ok {
			return false
		}
		if isChar(s, 'H', 'h') {
			s = s[1:]
			if len(s) == 0 {
				return true
			}
			s, ok = skipDigits(s)
			if !ok {
				return false
			}
			if !isChar(s, 'M', 'm') {
				return false
			}
		}
		if isChar(s, 'M', 'm') {
			s = s[1:]
			if len(s) == 0 {
				return true
			}
			s, ok = skipDigits(s)
			if !ok {
				return false
			}
		}
		return isChar(s, 'S', 's')
	}

	validDurDateOrWeek := func(s string) bool {
		s, ok := skipDigits(s)
		if !ok {
			return false
		}
		if isChar(s, 'W', 'w') {
			s = s[1:]
			if len(s) == 0 {
				return true
			}
			return validDurTime(s)
		}
		if isChar(s, 'Y', 'y') {
			s = s[1:]
			if len(s) == 0 {
				return true
			}
			if isChar(s, 'T', 't') {
				return validDurTime(s)
			}
			s, ok = skipDigits(s)
			if !ok {
				return false
			}
			if !isChar(s, 'M', 'm') {
				return false
			}
		}
		if isChar(s, 'M', 'm') {
			s = s[1:]
			if len(s) == 0 {
				return true
			}
			if isChar(s, 'T', 't') {
				return validDurTime(s)
			}
			s, ok = skipDigits(s)
			if !ok {
				return false
			}
			if !isChar(s, 'D', 'd') {
				return false
			}
		}
		if !isChar(s, 'D', 'd') {
			return false
		}
		s = s[1:]
		if len(s) == 0 {
			return true
		}
		return validDurTime(s)
	}

	if isChar(s, 'T', 't') {
		return validDurTime(s)
	}
	return validDurDateOrWeek(s)
}
