package gnu

/* Compare file names containing version numbers.

   Copyright (C) 1995 Ian Jackson <iwj10@cus.cam.ac.uk>
   Copyright (C) 2001 Anthony Towns <aj@azure.humbug.org.au>
   Copyright (C) 2008-2025 Free Software Foundation, Inc.

   This file is free software: you can redistribute it and/or modify
   it under the terms of the GNU Lesser General Public License as
   published by the Free Software Foundation, either version 3 of the
   License, or (at your option) any later version.

   This file is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
   GNU Lesser General Public License for more details.

   You should have received a copy of the GNU Lesser General Public License
   along with this program.  If not, see <https://www.gnu.org/licenses/>.  */

// Compare orders two version strings the way Debian's dpkg does.
// It returns -1 if a < b, 0 if a == b and 1 if a > b.
//
// Conan references are not semver ("0.9.9.8", "1.3.243.0",
// "cci.20240531"), so this is the fallback ordering for them.
func Compare(a, b string) int {
	switch d := verrevcmp([]byte(a), []byte(b)); {
	case d < 0:
		return -1
	case d > 0:
		return 1
	}
	return 0
}

// verrevcmp walks both strings alternating between non-digit runs, which
// compare by character order, and digit runs, which compare by value.
func verrevcmp(s1, s2 []byte) int {
	p1, p2 := 0, 0

	for p1 < len(s1) || p2 < len(s2) {
		firstDiff := 0

		for (p1 < len(s1) && !isDigit(s1[p1])) || (p2 < len(s2) && !isDigit(s2[p2])) {
			var c1, c2 byte
			if p1 < len(s1) {
				c1 = s1[p1]
			}
			if p2 < len(s2) {
				c2 = s2[p2]
			}
			if o1, o2 := order(c1), order(c2); o1 != o2 {
				return o1 - o2
			}
			p1++
			p2++
		}

		for p1 < len(s1) && s1[p1] == '0' {
			p1++
		}
		for p2 < len(s2) && s2[p2] == '0' {
			p2++
		}

		for p1 < len(s1) && p2 < len(s2) && isDigit(s1[p1]) && isDigit(s2[p2]) {
			if firstDiff == 0 {
				firstDiff = int(s1[p1]) - int(s2[p2])
			}
			p1++
			p2++
		}

		// the longer digit run is the larger number
		if p1 < len(s1) && isDigit(s1[p1]) {
			return 1
		}
		if p2 < len(s2) && isDigit(s2[p2]) {
			return -1
		}
		if firstDiff != 0 {
			return firstDiff
		}
	}

	return 0
}

// order: digits and end of string sort as 0, '~' before everything,
// letters by ASCII value, other characters after all letters.
func order(c byte) int {
	switch {
	case isDigit(c), c == 0:
		return 0
	case isAlpha(c):
		return int(c)
	case c == '~':
		return -1
	default:
		return int(c) + 256
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
