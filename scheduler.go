/*
Copyright © 2026 the neutronmc authors.
This file is part of neutronmc.

neutronmc is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

neutronmc is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with neutronmc.  If not, see <http://www.gnu.org/licenses/>.
*/

package neutronmc

import "math/rand"

// Scheduler is the double-buffered generation queue (§3, §4.4). Buffer
// A and B alternate which one is "current" (being consumed) and which
// one is "recording" (receiving the next generation's children).
// Scheduler is the sole owner of neutron storage; callers borrow the
// head neutron by value, mutate their own copy, and hand it back via
// Add/ReplaceHead rather than holding a live reference across a flip.
type Scheduler struct {
	bufferA, bufferB []Neutron
	current          bool // false => bufferA is current, true => bufferB is current

	targetPopulation  int
	varianceReduction bool
}

// NewScheduler creates an empty scheduler with the given target
// population and variance-reduction policy (§3, §4.4).
func NewScheduler(targetPopulation int, varianceReduction bool) *Scheduler {
	return &Scheduler{targetPopulation: targetPopulation, varianceReduction: varianceReduction}
}

func (s *Scheduler) currentBuf() *[]Neutron {
	if s.current {
		return &s.bufferB
	}
	return &s.bufferA
}

func (s *Scheduler) otherBuf() *[]Neutron {
	if s.current {
		return &s.bufferA
	}
	return &s.bufferB
}

// Add pushes a neutron onto the generation being recorded — i.e. the
// buffer opposite the one currently being consumed (§3, §4.4).
func (s *Scheduler) Add(n Neutron) {
	buf := s.otherBuf()
	*buf = append(*buf, n)
}

// IsEmpty reports whether both buffers are empty.
func (s *Scheduler) IsEmpty() bool {
	return len(s.bufferA) == 0 && len(s.bufferB) == 0
}

// CurrentLen returns the number of neutrons remaining in the current
// generation's buffer.
func (s *Scheduler) CurrentLen() int {
	return len(*s.currentBuf())
}

// Head returns a copy of the current generation's head neutron (index
// 0). The caller mutates its own copy and calls PopCurrent or
// ReplaceHead to commit the result, per the "take, mutate, put back"
// protocol in §9.
func (s *Scheduler) Head() Neutron {
	return (*s.currentBuf())[0]
}

// ReplaceHead overwrites the current generation's head neutron in
// place, without removing it from the queue (used when the driver
// continues the same neutron for another step, e.g. after
// Scattering/None).
func (s *Scheduler) ReplaceHead(n Neutron) {
	(*s.currentBuf())[0] = n
}

// PopCurrent removes the head neutron from the current generation's
// buffer by swap-remove (§4.4).
func (s *Scheduler) PopCurrent() {
	buf := s.currentBuf()
	last := len(*buf) - 1
	(*buf)[0] = (*buf)[last]
	*buf = (*buf)[:last]
}

// FlipIfEmpty implements §4.4's state machine: if the current
// generation's buffer is empty, swap which buffer is current and
// apply variance reduction to the newly-current buffer. It returns the
// size of the new current generation before variance reduction was
// applied (0 if no flip occurred because the current buffer was not
// empty).
func (s *Scheduler) FlipIfEmpty(rng *rand.Rand) (generationCount int, flipped bool) {
	if s.CurrentLen() != 0 {
		return 0, false
	}
	s.current = !s.current
	buf := s.currentBuf()
	generationCount = len(*buf)

	if s.varianceReduction {
		switch {
		case generationCount > s.targetPopulation:
			shuffleNeutrons(rng, *buf)
			*buf = (*buf)[:s.targetPopulation]
		case generationCount > 0 && generationCount < s.targetPopulation:
			s.duplicateToTarget(rng, buf)
		default:
			// generationCount == 0: nothing to duplicate; the next
			// poll will observe an empty scheduler and halt.
		}
	}
	return generationCount, true
}

// duplicateToTarget grows *buf up to the scheduler's target population
// by repeatedly shuffling and copying a prefix to the tail, per §4.4.
func (s *Scheduler) duplicateToTarget(rng *rand.Rand, buf *[]Neutron) {
	for len(*buf) < s.targetPopulation {
		shuffleNeutrons(rng, *buf)
		need := s.targetPopulation - len(*buf)
		take := len(*buf)
		if take > need {
			take = need
		}
		*buf = append(*buf, (*buf)[:take]...)
	}
}

func shuffleNeutrons(rng *rand.Rand, s []Neutron) {
	rng.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}
