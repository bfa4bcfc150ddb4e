package io

import (
	"gopkg.in/gcfg.v1"
)

const (
	ExampleRunFile = `[Run]

#######################
# Required Parameters #
#######################

# File listing the expansion factor of every snapshot, one per line,
# earliest first. The snapshot count of the run is the line count of
# this file.
SnapshotListFile = path/to/alist.txt

# The number of merger tree forests to generate and process.
Forests = 100

# The mass of a single simulation particle in units of 1e10 Msun/h.
ParticleMass = 0.086

#######################
# Optional Parameters #
#######################

# The mean number of side branches per forest. Larger values make
# bushier trees with more satellites and mergers.
# MeanBranches = 8

# Background cosmology. The defaults match the mass function the tree
# generator targets.
# OmegaM = 0.25
# OmegaL = 0.75

# Seed for the tree generator. Two runs with the same seed, snapshot
# list, and forest count produce identical catalogs regardless of
# worker layout.
# Seed = 42

# WorkerID and NumWorkers shard the forests across separate processes.
# Each process handles the forests whose index equals WorkerID modulo
# NumWorkers.
# WorkerID = 0
# NumWorkers = 1

# Goroutines processing forests within this process. 0 means one per
# core.
# Threads = 1

# Substep controls. MinSteps is both the floor on substeps per
# snapshot interval and the fixed count used when a halo's dynamical
# time is degenerate. StepResolution scales the dynamical-time substep
# target.
# MinSteps = 10
# StepResolution = 1.0

# Satellites whose halo-to-baryon mass ratio falls to or below this
# threshold merge or disrupt within the snapshot.
# ThresholdSatDisruption = 1.0

# Return ejected gas to the hot halos of centrals.
# Reincorporation = true

# Output files which are useful for profiling and debugging. Generally,
# there isn't a reason to use these unless something goes wrong.
# ProfileFile = prof.out
# LogFile = log.out`
)

type RunConfig struct {
	// Required
	SnapshotListFile string
	Forests          int
	ParticleMass     float64

	// Optional
	MeanBranches           float64
	OmegaM, OmegaL         float64
	Seed                   int64
	WorkerID, NumWorkers   int
	Threads                int
	MinSteps               int
	StepResolution         float64
	ThresholdSatDisruption float64
	Reincorporation        bool

	LogFile, ProfileFile string
}

func (con *RunConfig) ValidSnapshotListFile() bool {
	return con.SnapshotListFile != ""
}
func (con *RunConfig) ValidForests() bool {
	return con.Forests > 0
}
func (con *RunConfig) ValidParticleMass() bool {
	return con.ParticleMass > 0
}
func (con *RunConfig) ValidMeanBranches() bool {
	return con.MeanBranches >= 0
}
func (con *RunConfig) ValidOmegaM() bool {
	return con.OmegaM > 0
}
func (con *RunConfig) ValidOmegaL() bool {
	return con.OmegaL >= 0
}
func (con *RunConfig) ValidWorkerID() bool {
	return con.WorkerID >= 0 && con.WorkerID < con.NumWorkers
}
func (con *RunConfig) ValidNumWorkers() bool {
	return con.NumWorkers > 0
}
func (con *RunConfig) ValidThreads() bool {
	return con.Threads >= 0
}
func (con *RunConfig) ValidMinSteps() bool {
	return con.MinSteps >= 1 && con.MinSteps <= 30
}
func (con *RunConfig) ValidStepResolution() bool {
	return con.StepResolution > 0
}
func (con *RunConfig) ValidThresholdSatDisruption() bool {
	return con.ThresholdSatDisruption >= 0
}
func (con *RunConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *RunConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}

type RunWrapper struct {
	Run RunConfig
}

func DefaultRunWrapper() *RunWrapper {
	con := RunConfig{}
	con.MeanBranches = 8
	con.OmegaM = 0.25
	con.OmegaL = 0.75
	con.Seed = 42
	con.WorkerID = 0
	con.NumWorkers = 1
	con.Threads = 1
	con.MinSteps = 10
	con.StepResolution = 1.0
	con.ThresholdSatDisruption = 1.0
	con.Reincorporation = true
	return &RunWrapper{con}
}

// ReadRunConfig fills a defaulted wrapper from the given config file.
// Validity checks are left to the caller so that it can report which
// field is at fault.
func ReadRunConfig(fname string) (*RunWrapper, error) {
	wrap := DefaultRunWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	return wrap, nil
}
