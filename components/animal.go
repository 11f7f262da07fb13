// Package components defines ECS components for the herd simulation.
package components

import (
	"github.com/pthm-cable/studbook/breeding"
	"github.com/pthm-cable/studbook/genetics"
)

// Identity holds the immutable facts about an animal.
type Identity struct {
	ID          uint32
	Species     genetics.Species
	Sex         breeding.Sex
	Generation  int    // Herd generation the animal was born in; founders are 0
	Temperament string
}

// Vitals tracks an animal's condition over its life.
type Vitals struct {
	Age       float64 // years
	Health    float64 // 0..100
	Mood      float64 // 0..100
	Training  float64 // 0..100
	Offspring int     // live foals or pups produced
}

// Adult reports whether the animal has reached maturity.
func (v *Vitals) Adult(maturity float64) bool {
	return v.Age >= maturity
}
