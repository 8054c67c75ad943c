package grades

import (
	"context"
	"fmt"
)

// KeyHeader is the header of the column holding the student GitHub IDs. The worksheet is expected
// to be provisioned with it - it is never created automatically.
const KeyHeader = "github_id"

// Gateway is the remote worksheet a Resolver reads from and writes to. Ranges are in A1 notation,
// relative to the worksheet bound to the gateway.
//
// WriteCell values are parsed as if typed by a user. WriteText stores the text as is, so that keys
// and headers like '007' are read back unchanged.
type Gateway interface {
	ReadRange(ctx context.Context, area string) (Table, error)
	WriteCell(ctx context.Context, row, col int, value any) error
	WriteText(ctx context.Context, row, col int, text string) error
}

// Resolver locates student rows and assignment columns in a worksheet snapshot, creating them
// in the remote worksheet if they don't exist.
//
// Rows and columns are created in the first blank row/column of the snapshot, so two concurrent
// invocations creating the same student (or assignment) will both pick the same row (or column)
// and the last write wins. That is acceptable for a CI job that updates one student at a time
// but a Resolver should not be shared between concurrent updates of new students or assignments.
type Resolver struct {
	gateway Gateway
}

func NewResolver(gateway Gateway) *Resolver {
	return &Resolver{
		gateway: gateway,
	}
}

// KeyColumn returns the index of the 'github_id' column, failing with a SchemaPrecondition
// error if the header row doesn't have one.
func KeyColumn(table Table) (int, error) {
	if col, ok := table.FindColumnByHeader(KeyHeader); ok {
		return col, nil
	}

	return 0, precondition("missing '%v' column", KeyHeader)
}

// ResolveStudentRow returns the row for the GitHub ID, skipping the header row. If the student
// is not in the table the ID is written to the key column of the first blank row and the
// returned flag is true.
func (r *Resolver) ResolveStudentRow(ctx context.Context, table Table, keyColumn int, githubID string) (int, bool, error) {
	if row, ok := table.findRow(1, []int{keyColumn}, githubID); ok {
		return row, false, nil
	}

	row := table.FindFirstEmptyRow()
	if row == 0 {
		return 0, false, precondition("missing header row")
	}

	if err := r.gateway.WriteText(ctx, row, keyColumn, githubID); err != nil {
		return 0, false, fmt.Errorf("error adding student '%v' at %v (%w)", githubID, ToCellAddress(row, keyColumn), err)
	}

	return row, true, nil
}

// ResolveAssignmentColumn returns the column for the assignment. If the header row doesn't have
// the assignment, the assignment name is written to the header of the first blank column and
// the returned flag is true.
func (r *Resolver) ResolveAssignmentColumn(ctx context.Context, table Table, assignment string) (int, bool, error) {
	if col, ok := table.FindColumnByHeader(assignment); ok {
		return col, false, nil
	}

	col := table.FindFirstEmptyColumn()

	if err := r.gateway.WriteText(ctx, 0, col, assignment); err != nil {
		return 0, false, fmt.Errorf("error adding assignment '%v' at %v (%w)", assignment, ToCellAddress(0, col), err)
	}

	return col, true, nil
}
