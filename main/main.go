package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/gosam-model/gosam"
	"github.com/gosam-model/gosam/cosmo"
	"github.com/gosam-model/gosam/galaxy"
	"github.com/gosam-model/gosam/io"
	"github.com/gosam-model/gosam/physics"
	"github.com/gosam-model/gosam/tree"
)

type FileGroup struct {
	log, prof *os.File
}

func (fg *FileGroup) Close() {
	if fg.log != nil {
		err := fg.log.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}
}

func main() {
	var (
		run           string
		exampleConfig string
	)
	vars := map[string]*string{
		"Run":           &run,
		"ExampleConfig": &exampleConfig,
	}

	flag.StringVar(
		&run, "Run", "",
		"Configuration file for [Run] mode.",
	)
	flag.StringVar(
		&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file of the specified type to "+
			"stdout. The only accepted argument is 'Run'.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "Run":
		wrap, err := io.ReadRunConfig(run)
		if err != nil {
			log.Fatal(err.Error())
		}
		con := &wrap.Run

		if !con.ValidSnapshotListFile() {
			log.Fatal("Invalid/non-existent 'SnapshotListFile' value.")
		} else if !con.ValidForests() {
			log.Fatal("Invalid/non-existent 'Forests' value.")
		} else if !con.ValidParticleMass() {
			log.Fatal("Invalid/non-existent 'ParticleMass' value.")
		} else if !con.ValidMeanBranches() {
			log.Fatal("Invalid 'MeanBranches' value.")
		} else if !con.ValidOmegaM() {
			log.Fatal("Invalid 'OmegaM' value.")
		} else if !con.ValidOmegaL() {
			log.Fatal("Invalid 'OmegaL' value.")
		} else if !con.ValidNumWorkers() {
			log.Fatal("Invalid 'NumWorkers' value.")
		} else if !con.ValidWorkerID() {
			log.Fatal("Invalid 'WorkerID' value.")
		} else if !con.ValidThreads() {
			log.Fatal("Invalid 'Threads' value.")
		} else if !con.ValidMinSteps() {
			log.Fatal("Invalid 'MinSteps' value.")
		} else if !con.ValidStepResolution() {
			log.Fatal("Invalid 'StepResolution' value.")
		} else if !con.ValidThresholdSatDisruption() {
			log.Fatal("Invalid 'ThresholdSatDisruption' value.")
		}

		runMain(con)
	case "ExampleConfig":
		switch exampleConfig {
		case "Run":
			fmt.Println(io.ExampleRunFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. The only " +
					"recognized argument is 'Run'.",
			)
		}
	default:
		panic("Impossible")
	}
}

func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but gosam "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

func runMain(con *io.RunConfig) {
	fg := setupIO(con)
	defer fg.Close()

	scales, err := io.ReadAList(con.SnapshotListFile)
	if err != nil {
		log.Fatal(err.Error())
	}
	ages, err := cosmo.NewAgeTable(scales, con.OmegaM, con.OmegaL)
	if err != nil {
		log.Fatal(err.Error())
	}

	loader, err := tree.NewSyntheticLoader(tree.SyntheticConfig{
		Forests:   con.Forests,
		Snapshots: len(scales),
		Branches:  con.MeanBranches,
		PartMass:  con.ParticleMass,
		Seed:      con.Seed,
	})
	if err != nil {
		log.Fatal(err.Error())
	}

	params := physics.DefaultParams()
	params.OmegaM, params.OmegaL = con.OmegaM, con.OmegaL
	params.PartMass = con.ParticleMass
	params.ThresholdSatDisruption = con.ThresholdSatDisruption
	params.ReincorporationOn = con.Reincorporation
	params.MinSteps = con.MinSteps
	params.StepResolution = con.StepResolution

	ids := gosam.ShardForests(
		loader.ForestIDs(), con.WorkerID, con.NumWorkers,
	)
	log.Printf(
		"Worker %d of %d takes %d of %d forests.",
		con.WorkerID, con.NumWorkers, len(ids), con.Forests,
	)

	savers := []*io.DiscardSaver{}
	man, err := gosam.NewManager(&gosam.ManagerConfig{
		Loader:  loader,
		Ages:    ages,
		Params:  params,
		Recipes: physics.Simple(params),
		NewSaver: func(worker int) io.Saver {
			s := &io.DiscardSaver{}
			savers = append(savers, s)
			return s
		},
		Forests: ids,
		Workers: con.Threads,
		Log:     true,
	})
	if err != nil {
		log.Fatal(err.Error())
	}

	if err := man.Process(); err != nil {
		log.Fatal(err.Error())
	}

	census := io.DiscardSaver{}
	for _, s := range savers {
		census.Add(s)
	}
	log.Printf(
		"Galaxy census: %d centrals, %d satellites, %d orphans "+
			"across %d batches.",
		census.ByType[galaxy.Central], census.ByType[galaxy.Satellite],
		census.ByType[galaxy.Orphan], census.Batches,
	)

	d := man.Diag()
	if d.IndexSkips > 0 {
		log.Printf(
			"Warning: %d halos fell outside the snapshot range.",
			d.IndexSkips,
		)
	}
}

func setupIO(con *io.RunConfig) *FileGroup {
	fg := new(FileGroup)
	var err error

	if con.ValidLogFile() {
		fg.log, err = os.Create(con.LogFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		log.SetOutput(fg.log)
	}

	log.Println("Running gosam Run main.")

	if con.ValidProfileFile() {
		fg.prof, err = os.Create(con.ProfileFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		err = pprof.StartCPUProfile(fg.prof)
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	return fg
}
