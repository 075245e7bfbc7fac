// test/mock/list_source.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dev-mohitbeniwal/listpane/model"
	"github.com/dev-mohitbeniwal/listpane/sharepoint"
)

// MockListSource is a mock implementation of service.ListSource
type MockListSource struct {
	mock.Mock
}

func (m *MockListSource) GetLists(ctx context.Context, webURL string) ([]model.List, error) {
	args := m.Called(ctx, webURL)
	lists, _ := args.Get(0).([]model.List)
	return lists, args.Error(1)
}

func (m *MockListSource) GetFields(ctx context.Context, webURL, listTitle string, q sharepoint.FieldQuery) ([]model.Field, error) {
	args := m.Called(ctx, webURL, listTitle, q)
	fields, _ := args.Get(0).([]model.Field)
	return fields, args.Error(1)
}
