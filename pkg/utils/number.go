package utils

import (
	"math"
	"strconv"
	"strings"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// ParseDecimal aceita vírgula ou ponto como separador decimal ("100,5" ou "87.30")
func ParseDecimal(raw string) (float64, error) {
	normalized := strings.Replace(strings.TrimSpace(raw), ",", ".", 1)

	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, err
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, strconv.ErrSyntax
	}

	return value, nil
}
