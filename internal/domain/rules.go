package domain

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// ParseCode splits a code like "B7" or "g52" into its column and number.
// The column letter is case-insensitive; the rest must be a base-10 integer
// that falls inside the column's range.
func ParseCode(code string) (Column, int, error) {
	if utf8.RuneCountInString(code) < 2 {
		return 0, 0, ErrCodeTooShort
	}

	first, size := utf8.DecodeRuneInString(code)
	col := Column(unicode.ToUpper(first))

	num, err := strconv.Atoi(code[size:])
	if err != nil {
		return 0, 0, ErrInvalidCode
	}

	r, ok := ColumnRanges[col]
	if !ok {
		return 0, 0, ErrBadColumn
	}
	if !r.Contains(num) {
		return 0, 0, ErrOutOfRange
	}
	return col, num, nil
}

func ValidCode(code string) bool {
	_, _, err := ParseCode(code)
	return err == nil
}
