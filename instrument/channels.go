package instrument

import "fmt"

// ChannelMap fixes the translation between the external zero-based channel
// indices a driver exposes and the instrument's own one-based or named
// channel identifiers. The mapping is set at construction and never
// recomputed.
type ChannelMap struct {
	names []string
}

// NewChannelMap builds a ChannelMap where external index i resolves to
// names[i].
func NewChannelMap(names ...string) ChannelMap {
	return ChannelMap{names: names}
}

// Count returns the number of channels.
func (m ChannelMap) Count() int {
	return len(m.names)
}

// Name resolves an external zero-based index to the instrument's internal
// channel identifier. Indices outside [0, Count()) fail with
// ErrChannelIndex.
func (m ChannelMap) Name(index int) (string, error) {
	if index < 0 || index >= len(m.names) {
		return "", fmt.Errorf("channel %d not in [0, %d): %w", index, len(m.names), ErrChannelIndex)
	}
	return m.names[index], nil
}
