package grades

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// CellAddress is a zero-based (row, column) position in a worksheet.
type CellAddress struct {
	Row int
	Col int
}

func (a CellAddress) String() string {
	return ToCellAddress(a.Row, a.Col)
}

// ColumnLetters converts a zero-based column index to the bijective base-26 column name used
// by spreadsheets i.e. 0 is 'A', 25 is 'Z', 26 is 'AA' and 702 is 'AAA'. Negative indices
// return an empty string.
func ColumnLetters(col int) string {
	if col < 0 {
		return ""
	}

	letters := []byte{}
	for n := col; ; n = n/26 - 1 {
		letters = append(letters, byte('A'+n%26))
		if n < 26 {
			break
		}
	}

	for i, j := 0, len(letters)-1; i < j; i, j = i+1, j-1 {
		letters[i], letters[j] = letters[j], letters[i]
	}

	return string(letters)
}

// ToCellAddress returns the A1 notation for the zero-based row and column e.g. (4,26) is 'AA5'.
func ToCellAddress(row, col int) string {
	if row < 0 {
		return fmt.Sprintf("%v%v", ColumnLetters(col), row+1)
	}

	return ColumnLetters(col) + strconv.FormatUint(uint64(row)+1, 10)
}

// ParseCellAddress is the inverse of ToCellAddress. Column letters are case insensitive.
func ParseCellAddress(address string) (CellAddress, error) {
	match := regexp.MustCompile(`^\s*([a-zA-Z]+)([0-9]+)\s*$`).FindStringSubmatch(address)
	if len(match) < 3 {
		return CellAddress{}, fmt.Errorf("invalid cell address '%s'", address)
	}

	row, err := strconv.Atoi(match[2])
	if err != nil {
		return CellAddress{}, fmt.Errorf("invalid cell address '%s' (%w)", address, err)
	} else if row < 1 {
		return CellAddress{}, fmt.Errorf("invalid cell address '%s' - rows start at 1", address)
	}

	col := 0
	for _, c := range strings.ToUpper(match[1]) {
		col = 26*col + int(c-'A') + 1
	}

	return CellAddress{
		Row: row - 1,
		Col: col - 1,
	}, nil
}
