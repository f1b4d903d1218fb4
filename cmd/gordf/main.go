/*
 * main.go, part of gordf.
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

// gordf obtains the radial distribution function of the particles in a
// LAMMPS trajectory. The calculation is described by an INI file, see
// gordf -example-config. A g(r) written as JSON in a previous run can be
// plotted again with gordf -replot gr.json.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	rdf "github.com/rmera/gordf"
	"github.com/rmera/gordf/histo"
	"github.com/rmera/gordf/rdfplot"
	"github.com/rmera/gordf/traj/lammps"
)

// volumes that differ by less than this are taken as constant.
const driftTolerance = 1e-6

func main() {
	config := flag.String("config", "", "INI file describing the calculation")
	example := flag.Bool("example-config", false, "Prints an example configuration file and exits")
	verbose := flag.Bool("v", false, "Print debugging information")
	replotIn := flag.String("replot", "", "Plots a g(r) JSON file written by a previous run and exits")
	replotOut := flag.String("out", "", "Plot file for -replot. Defaults to the JSON file name with a .png extension")
	title := flag.String("title", "Radial distribution function", "Plot title for -replot")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
		}),
	))

	if *example {
		fmt.Print(ExampleConfig)
		return
	}
	if *replotIn != "" {
		out, err := replot(*replotIn, *replotOut, *title)
		if err != nil {
			slog.Error("Can't replot", "file", *replotIn, "err", err)
			os.Exit(1)
		}
		slog.Info("Wrote", "file", out)
		return
	}
	if *config == "" {
		flag.Usage()
		os.Exit(2)
	}
	con, err := ReadConfig(*config)
	if err != nil {
		slog.Error("Can't read configuration", "file", *config, "err", err)
		os.Exit(1)
	}
	if _, err := run(con, slog.Default()); err != nil {
		slog.Error("Calculation failed", "err", err)
		os.Exit(1)
	}
}

// run carries out the calculation described by con and returns the names of the files written.
func run(con *Config, logger *slog.Logger) ([]string, error) {
	start := time.Now()
	fname := con.Trajectory.File
	total, err := lammps.CountFrames(fname)
	if err != nil {
		return nil, err
	}
	logger.Debug("Counted frames", "file", fname, "frames", total)
	r := &con.RDF
	plan, err := rdf.NewFramePlan(total, r.Equilibration, r.Gap, r.Steps)
	if err != nil {
		return nil, err
	}
	logger.Info("Frame selection", "plan", plan.String())

	traj, err := lammps.New(fname, con.Trajectory.Dimension)
	if err != nil {
		return nil, err
	}
	defer traj.Close()
	logger.Info("Trajectory", "file", fname, "atoms", traj.Len(), "dimensions", traj.Dim())

	o := rdf.DefaultOptions()
	o.Cpus(r.Cpus)
	o.Neighbors(con.Output.Neighbors)
	res, err := rdf.Run(traj, plan, r.Cutoff, r.Binsize, o)
	if err != nil {
		return nil, err
	}
	logger.Info("RDF obtained", "frames", res.Frames, "bins", len(res.GR), "elapsed", time.Since(start).Round(time.Millisecond))
	if drift := res.VolumeDrift(); drift > driftTolerance {
		logger.Warn("The box volume changed among the sampled frames, the last one was used for the density",
			"min", res.MinVolume, "max", res.MaxVolume, "drift", drift)
	}

	gr := histo.Uniform(res.Binsize, res.GR)
	files, err := histo.WriteFiles(con.Output.Directory, con.Output.Name, gr)
	if err != nil {
		return nil, err
	}
	if con.Output.Plot != "" {
		pname := filepath.Join(con.Output.Directory, con.Output.Plot)
		if filepath.Ext(pname) == "" {
			pname += ".png"
		}
		if err := rdfplot.Plot(gr, con.Output.Title, pname); err != nil {
			return nil, err
		}
		files = append(files, pname)
	}
	if con.Output.Neighbors {
		//same bins as the g(r). Distances beyond the cutoff are left out.
		nn := histo.NewData(gr.CopyDividers(), res.Neighbors)
		logger.Debug("Nearest neighbor distances", "total", len(res.Neighbors), "binned", nn.Sum())
		nn.Normalize()
		nnfiles, err := histo.WriteFiles(con.Output.Directory, con.Output.Name+"_nn", nn, "r P(r_nn)")
		if err != nil {
			return nil, err
		}
		files = append(files, nnfiles...)
	}
	for _, f := range files {
		logger.Info("Wrote", "file", f)
	}
	return files, nil
}

// replot plots the g(r) stored in the JSON file in, and returns the name of the plot file.
// If out is empty, the plot goes next to in, with a .png extension.
func replot(in, out, title string) (string, error) {
	gr, err := histo.ReadFile(in)
	if err != nil {
		return "", err
	}
	if out == "" {
		out = strings.TrimSuffix(in, filepath.Ext(in)) + ".png"
	} else if filepath.Ext(out) == "" {
		out += ".png"
	}
	if err := rdfplot.Plot(gr, title, out); err != nil {
		return "", err
	}
	return out, nil
}
