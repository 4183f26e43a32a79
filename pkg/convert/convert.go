// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides fault-tolerant conversions for query parameters.

Do not use this package where a malformed value must be rejected rather than
replaced; use [strconv] directly and report a validation error instead.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToIntD converts a string to an int, returning def if the string is empty
// or cannot be parsed.
func ToIntD(str string, def int) int {
	str = strings.TrimSpace(str)
	if str == "" {
		return def
	}

	if v, err := strconv.Atoi(str); err == nil {
		return v
	}

	return def
}

// ToUpperTrim normalizes an enum-like query value ("in_progress " -> "IN_PROGRESS").
func ToUpperTrim(str string) string {
	return strings.ToUpper(strings.TrimSpace(str))
}
