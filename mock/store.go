package mock

import "github.com/fwojciec/templify"

var _ templify.VariableStore = (*VariableStore)(nil)

// VariableStore is a mock implementation of templify.VariableStore.
type VariableStore struct {
	MarshalGroupsFn   func(groups []*templify.Group) ([]byte, error)
	UnmarshalGroupsFn func(data []byte) ([]*templify.Group, error)
}

func (s *VariableStore) MarshalGroups(groups []*templify.Group) ([]byte, error) {
	return s.MarshalGroupsFn(groups)
}

func (s *VariableStore) UnmarshalGroups(data []byte) ([]*templify.Group, error) {
	return s.UnmarshalGroupsFn(data)
}
