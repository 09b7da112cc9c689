package storage

import "github.com/covenant-finance/covenant/native/protocol"

var worldKey = []byte(worldPrefix)

// SaveWorld persists the singleton World aggregate.
func (s *Store) SaveWorld(w *protocol.World) error {
	return s.put(worldKey, w)
}

// LoadWorld loads the singleton World aggregate, returning ErrNotFound if
// it has never been saved.
func (s *Store) LoadWorld() (*protocol.World, error) {
	var w protocol.World
	if err := s.get(worldKey, &w); err != nil {
		return nil, err
	}
	return &w, nil
}
