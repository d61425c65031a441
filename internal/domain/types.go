package domain

// Column is a bingo column letter.
type Column rune

const (
	ColumnB Column = 'B'
	ColumnI Column = 'I'
	ColumnN Column = 'N'
	ColumnG Column = 'G'
	ColumnO Column = 'O'
)

// NumberRange is an inclusive range of numbers callable in a column.
type NumberRange struct {
	Min int
	Max int
}

func (r NumberRange) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

var ColumnRanges = map[Column]NumberRange{
	ColumnB: {Min: 1, Max: 15},
	ColumnI: {Min: 16, Max: 30},
	ColumnN: {Min: 31, Max: 45},
	ColumnG: {Min: 46, Max: 60},
	ColumnO: {Min: 61, Max: 75},
}

// ResetCode is the sentinel code telling subscribers to discard their local history.
const ResetCode = "RESET"

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidCode  Error = "invalid bingo code"
	ErrCodeTooShort Error = "bingo code too short"
	ErrBadColumn    Error = "unknown bingo column"
	ErrOutOfRange   Error = "number outside column range"
	ErrMissingGame  Error = "missing game id"
)
