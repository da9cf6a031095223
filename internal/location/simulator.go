// Package location produces simulated bus positions for the student dashboard.
// Samples are drawn from a fixed coordinate table and are unrelated to any real telemetry.
package location

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"bustracker/internal/domain/models"
)

// ErrTableTooSmall is returned when fewer than two coordinates are supplied;
// with a single entry the no-repeat rule cannot be satisfied.
var ErrTableTooSmall = errors.New("location table needs at least 2 entries")

// DefaultTable is the built-in list of coordinates around the campus.
var DefaultTable = []models.Location{
	{Latitude: 17.4334, Longitude: 78.4357},
	{Latitude: 17.4560, Longitude: 78.4721},
	{Latitude: 17.4201, Longitude: 78.4900},
	{Latitude: 17.4410, Longitude: 78.4550},
	{Latitude: 17.4650, Longitude: 78.4890},
	{Latitude: 17.4125, Longitude: 78.4410},
	{Latitude: 17.4399, Longitude: 78.4287},
	{Latitude: 17.4508, Longitude: 78.4619},
	{Latitude: 17.4286, Longitude: 78.4834},
	{Latitude: 17.4720, Longitude: 78.4952},
	{Latitude: 17.4080, Longitude: 78.4750},
	{Latitude: 17.4600, Longitude: 78.4480},
	{Latitude: 17.4189, Longitude: 78.4605},
	{Latitude: 17.4475, Longitude: 78.4791},
	{Latitude: 17.4300, Longitude: 78.4980},
}

// State is the generator state: the table and the index returned last (-1 before the first draw).
type State struct {
	Table []models.Location
	Last  int
}

// NewState copies table into a fresh State.
func NewState(table []models.Location) (State, error) {
	if len(table) < 2 {
		return State{}, ErrTableTooSmall
	}
	cp := make([]models.Location, len(table))
	copy(cp, table)
	return State{Table: cp, Last: -1}, nil
}

// Next draws a coordinate uniformly among the entries other than the previous one
// and returns it with the advanced state.
func (s State) Next(rng *rand.Rand) (models.Location, State) {
	n := len(s.Table)
	var idx int
	if s.Last < 0 || s.Last >= n {
		idx = rng.Intn(n)
	} else {
		idx = rng.Intn(n - 1)
		if idx >= s.Last {
			idx++
		}
	}
	return s.Table[idx], State{Table: s.Table, Last: idx}
}

// Simulator holds a State for concurrent callers.
type Simulator struct {
	mu    sync.Mutex
	state State
	rng   *rand.Rand
}

// NewSimulator builds a Simulator over table. A nil rng seeds one from the clock.
func NewSimulator(table []models.Location, rng *rand.Rand) (*Simulator, error) {
	st, err := NewState(table)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simulator{state: st, rng: rng}, nil
}

// Next returns the next simulated position.
func (s *Simulator) Next() models.Location {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc, next := s.state.Next(s.rng)
	s.state = next
	return loc
}
