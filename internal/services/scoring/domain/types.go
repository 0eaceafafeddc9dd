// Package domain defines scoring weights and the event flags they apply to
package domain

import "time"

// Weights are the per event contributions, each an integer in [0,10]
type Weights struct {
	Open       int `json:"open"       validate:"min=0,max=10" example:"1"`
	Read       int `json:"read"       validate:"min=0,max=10" example:"2"`
	Interested int `json:"interested" validate:"min=0,max=10" example:"1"`
}

// DefaultWeights apply until an admin stores a value
var DefaultWeights = Weights{Open: 1, Read: 2, Interested: 1}

// Events are the flags a client observed for one article
type Events struct {
	Open       bool `json:"open,omitempty"`
	Read       bool `json:"read,omitempty"`
	Interested bool `json:"interested,omitempty"`
}

// Any reports whether at least one flag is set
func (e Events) Any() bool { return e.Open || e.Read || e.Interested }

// Merge ORs other into e
func (e Events) Merge(other Events) Events {
	return Events{
		Open:       e.Open || other.Open,
		Read:       e.Read || other.Read,
		Interested: e.Interested || other.Interested,
	}
}

// Score is k, the sum of weights for the triggered flags
func (w Weights) Score(e Events) int64 {
	var k int64
	if e.Open {
		k += int64(w.Open)
	}
	if e.Read {
		k += int64(w.Read)
	}
	if e.Interested {
		k += int64(w.Interested)
	}
	return k
}

// Snapshot is the stored weights plus audit fields
type Snapshot struct {
	Weights
	UpdatedBy string     `json:"updatedBy,omitempty" example:"admin-1"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}
