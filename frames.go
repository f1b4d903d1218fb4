/*
 * frames.go, part of gordf.
 *
 * Copyright 2026 The gordf Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package rdf

import "fmt"

// FramePlan is a validated selection of trajectory frames. Frames are numbered
// from 1. The first equilibration frames are skipped, and then one every gap
// frames is sampled, until steps frames have been sampled.
type FramePlan struct {
	total int
	equil int
	gap   int
	steps int
}

// NewFramePlan returns the plan for a trajectory with totalFrames frames. It fails
// if the plan does not fit in the trajectory, i.e. if
// equilibrationFrames+numCalcSteps*stepGap > totalFrames, or if any value is out of range.
func NewFramePlan(totalFrames, equilibrationFrames, stepGap, numCalcSteps int) (*FramePlan, error) {
	switch {
	case totalFrames < 0:
		return nil, newError(ErrConfig, "NewFramePlan", "negative number of frames in trajectory: %d", totalFrames)
	case equilibrationFrames < 0:
		return nil, newError(ErrConfig, "NewFramePlan", "negative number of equilibration frames: %d", equilibrationFrames)
	case stepGap < 1:
		return nil, newError(ErrConfig, "NewFramePlan", "the gap between sampled frames must be at least 1, got %d", stepGap)
	case numCalcSteps < 1:
		return nil, newError(ErrConfig, "NewFramePlan", "at least one frame must be sampled, got %d", numCalcSteps)
	}
	//written this way so the product can't overflow.
	avail := totalFrames - equilibrationFrames
	if avail < 0 || numCalcSteps > avail/stepGap {
		return nil, newError(ErrConfig, "NewFramePlan",
			"%d equilibration frames plus %d frames every %d do not fit in a trajectory of %d frames",
			equilibrationFrames, numCalcSteps, stepGap, totalFrames)
	}
	return &FramePlan{total: totalFrames, equil: equilibrationFrames, gap: stepGap, steps: numCalcSteps}, nil
}

// Plan returns the frames to be sampled, equilibrationFrames+i*stepGap
// for i=1..numCalcSteps, or an error if they don't fit in the trajectory.
func Plan(totalFrames, equilibrationFrames, stepGap, numCalcSteps int) ([]int, error) {
	p, err := NewFramePlan(totalFrames, equilibrationFrames, stepGap, numCalcSteps)
	if err != nil {
		return nil, errDecorate(err, "Plan")
	}
	return p.Targets(), nil
}

// Targets returns the frames to be sampled, in increasing order.
func (P *FramePlan) Targets() []int {
	ret := make([]int, P.steps)
	for i := range ret {
		ret[i] = P.equil + (i+1)*P.gap
	}
	return ret
}

// Wants returns true if frame is to be sampled.
func (P *FramePlan) Wants(frame int) bool {
	if frame <= P.equil || frame > P.Last() {
		return false
	}
	return (frame-P.equil)%P.gap == 0
}

// Last returns the last frame to be sampled. No frame after it needs to be read.
func (P *FramePlan) Last() int {
	return P.equil + P.steps*P.gap
}

// Len returns the number of frames to be sampled.
func (P *FramePlan) Len() int {
	return P.steps
}

func (P *FramePlan) String() string {
	return fmt.Sprintf("frames %d to %d every %d (%d of %d, %d skipped for equilibration)",
		P.equil+P.gap, P.Last(), P.gap, P.steps, P.total, P.equil)
}
