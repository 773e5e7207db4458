// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package convert holds lenient string conversions for query parameters,
// where a malformed value should quietly mean "use the default".
package convert

import "strconv"

// ToIntD parses str as a base-10 int, returning def when str is empty or malformed.
func ToIntD(str string, def int) int {
	if str == "" {
		return def
	}
	if v, err := strconv.Atoi(str); err == nil {
		return v
	}
	return def
}
