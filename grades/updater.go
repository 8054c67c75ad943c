package grades

import (
	"context"
	"fmt"
	"strings"
)

// DefaultRange is the range fetched for a snapshot. It is assumed to cover every existing
// student and assignment.
const DefaultRange = "A1:ZZ1000"

// Updater writes assignment results to a worksheet.
type Updater struct {
	gateway  Gateway
	resolver *Resolver
	area     string
}

// Update describes where a result was written.
type Update struct {
	Cell          CellAddress
	NewStudent    bool
	NewAssignment bool
}

func NewUpdater(gateway Gateway, area string) *Updater {
	if strings.TrimSpace(area) == "" {
		area = DefaultRange
	}

	return &Updater{
		gateway:  gateway,
		resolver: NewResolver(gateway),
		area:     area,
	}
}

// Update writes the value to the cell at the intersection of the student's row and the
// assignment's column, creating either if necessary. The steps are strictly sequential and the
// first error aborts the update - writes that have already been made are not rolled back.
func (u *Updater) Update(ctx context.Context, githubID string, assignment string, value any) (*Update, error) {
	if strings.TrimSpace(githubID) == "" {
		return nil, &Error{Kind: ConfigMissing, Message: "missing GitHub ID"}
	}

	if strings.TrimSpace(assignment) == "" {
		return nil, &Error{Kind: ConfigMissing, Message: "missing assignment name"}
	}

	if assignment == KeyHeader {
		return nil, precondition("'%v' is not a valid assignment name", assignment)
	}

	table, err := u.gateway.ReadRange(ctx, u.area)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve worksheet (%w)", err)
	}

	key, err := KeyColumn(table)
	if err != nil {
		return nil, err
	}

	row, newStudent, err := u.resolver.ResolveStudentRow(ctx, table, key, githubID)
	if err != nil {
		return nil, err
	}

	col, newAssignment, err := u.resolver.ResolveAssignmentColumn(ctx, table, assignment)
	if err != nil {
		return nil, err
	}

	if err := u.gateway.WriteCell(ctx, row, col, value); err != nil {
		return nil, fmt.Errorf("error writing result to %v (%w)", ToCellAddress(row, col), err)
	}

	return &Update{
		Cell:          CellAddress{Row: row, Col: col},
		NewStudent:    newStudent,
		NewAssignment: newAssignment,
	}, nil
}
