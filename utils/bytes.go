package utils

import (
	"fmt"
	"math"
)

// ConvertBytes renders a byte count as a human readable size.
func ConvertBytes(n int64) string {
	value := float64(n)
	var size float64
	var unit string
	switch {
	case value >= 1099511627776:
		size, unit = value/1099511627776, "TB"
	case value >= 1073741824:
		size, unit = value/1073741824, "GB"
	case value >= 1048576:
		size, unit = value/1048576, "MB"
	case value >= 1024:
		size, unit = value/1024, "KB"
	default:
		size, unit = value, " bytes"
	}
	return fmt.Sprintf("%d%s", int64(math.Ceil(size)), unit)
}
