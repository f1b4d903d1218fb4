/*
 * config.go, part of gordf.
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

package main

import (
	"fmt"
	"math"

	"gopkg.in/gcfg.v1"
)

// ExampleConfig is a commented configuration file, printed by -example-config.
const ExampleConfig = `[Trajectory]
# LAMMPS text dump. .gz and .zst files are decompressed on the fly.
File = dump.lammpstrj

# Optional. Use only the first Dimension coordinates of each atom, e.g. 2
# for 2D simulations, which LAMMPS writes with a dummy z.
# Dimension = 2

[RDF]
Binsize = 0.01
Cutoff = 12.0

# Frames skipped before sampling starts.
Equilibration = 50

# Sample every Gap frames, Steps times.
Gap = 1
Steps = 1

# Optional. Goroutines used for each frame. Defaults to the number of CPUs.
# Cpus = 4

[Output]
Directory = rdf
Name = gr

# Optional. Plot file, the format is taken from the extension.
# Leave empty to skip the plot.
Plot = gr.png
Title = Radial distribution function

# Optional. Also write the distribution of nearest neighbor distances,
# in <Name>_nn.dat and <Name>_nn.json.
# Neighbors = true
`

// TrajectoryConfig is the [Trajectory] section: where the frames come from.
type TrajectoryConfig struct {
	// Required
	File string

	// Optional
	Dimension int
}

// RDFConfig is the [RDF] section: the histogram and the frames sampled.
type RDFConfig struct {
	Binsize, Cutoff float64
	Equilibration   int
	Gap, Steps      int
	Cpus            int
}

// OutputConfig is the [Output] section: what is written, and where.
type OutputConfig struct {
	Directory string
	Name      string
	Plot      string
	Title     string
	Neighbors bool
}

// Config holds a whole configuration file.
type Config struct {
	Trajectory TrajectoryConfig
	RDF        RDFConfig
	Output     OutputConfig
}

// DefaultConfig returns a configuration with every optional value set.
// The trajectory file has no default.
func DefaultConfig() *Config {
	con := &Config{}
	con.RDF = RDFConfig{Binsize: 0.01, Cutoff: 12, Equilibration: 50, Gap: 1, Steps: 1}
	con.Output = OutputConfig{Directory: "rdf", Name: "gr", Plot: "gr.png", Title: "Radial distribution function"}
	return con
}

// CheckInit checks the values in con, and fills in the ones that can be inferred.
func (con *Config) CheckInit() error {
	if con.Trajectory.File == "" {
		return fmt.Errorf("Need to specify a trajectory 'File' in the [Trajectory] section.")
	}
	if con.Trajectory.Dimension < 0 || con.Trajectory.Dimension > 3 {
		return fmt.Errorf("'Dimension' must be 1, 2 or 3, but is %d.", con.Trajectory.Dimension)
	}
	rdf := &con.RDF
	if !(rdf.Binsize > 0) || math.IsInf(rdf.Binsize, 0) {
		return fmt.Errorf("'Binsize' must be positive, but is %g.", rdf.Binsize)
	} else if !(rdf.Cutoff > 0) || math.IsInf(rdf.Cutoff, 0) {
		return fmt.Errorf("'Cutoff' must be positive, but is %g.", rdf.Cutoff)
	}
	if rdf.Equilibration < 0 {
		return fmt.Errorf("'Equilibration' can't be negative, but is %d.", rdf.Equilibration)
	} else if rdf.Gap <= 0 {
		return fmt.Errorf("'Gap' must be positive, but is %d.", rdf.Gap)
	} else if rdf.Steps <= 0 {
		return fmt.Errorf("'Steps' must be positive, but is %d.", rdf.Steps)
	} else if rdf.Cpus < 0 {
		return fmt.Errorf("'Cpus' can't be negative, but is %d.", rdf.Cpus)
	}
	if con.Output.Directory == "" {
		con.Output.Directory = "."
	}
	if con.Output.Name == "" {
		return fmt.Errorf("Need to specify an output 'Name' in the [Output] section.")
	}
	return nil
}

// ReadConfig reads an INI configuration file on top of the defaults and checks it.
func ReadConfig(fname string) (*Config, error) {
	con := DefaultConfig()
	if err := gcfg.ReadFileInto(con, fname); err != nil {
		return nil, err
	}
	if err := con.CheckInit(); err != nil {
		return nil, err
	}
	return con, nil
}

// ParseConfig is like ReadConfig, but takes the contents of the configuration.
func ParseConfig(s string) (*Config, error) {
	con := DefaultConfig()
	if err := gcfg.ReadStringInto(con, s); err != nil {
		return nil, err
	}
	if err := con.CheckInit(); err != nil {
		return nil, err
	}
	return con, nil
}
