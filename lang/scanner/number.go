package scanner

import "strconv"

func parseInt(lit string) (int64, error) {
	return strconv.ParseInt(lit, 10, 64)
}

func parseFloat(lit string) (float64, error) {
	return strconv.ParseFloat(lit, 64)
}
