package grades

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) ReadRange(ctx context.Context, area string) (Table, error) {
	args := m.Called(ctx, area)

	table, _ := args.Get(0).(Table)

	return table, args.Error(1)
}

func (m *mockGateway) WriteCell(ctx context.Context, row, col int, value any) error {
	return m.Called(ctx, row, col, value).Error(0)
}

func (m *mockGateway) WriteText(ctx context.Context, row, col int, text string) error {
	return m.Called(ctx, row, col, text).Error(0)
}
