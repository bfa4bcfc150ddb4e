package main

import (
	"log"
	"math"
	"os"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/gosam-model/gosam"
	"github.com/gosam-model/gosam/cosmo"
	"github.com/gosam-model/gosam/io"
	"github.com/gosam-model/gosam/physics"
	"github.com/gosam-model/gosam/tree"
)

const (
	forests      = 200
	snapshots    = 64
	meanBranches = 8
	partMass     = 0.086
	seed         = 42

	bins = 25
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("Usage: $ %s out.png", os.Args[0])
	}
	fname := os.Args[1]

	scales := make([]float64, snapshots)
	for i := range scales {
		scales[i] = float64(i+1) / snapshots
	}

	ages, err := cosmo.NewAgeTable(scales, 0.25, 0.75)
	if err != nil {
		log.Fatal(err.Error())
	}
	loader, err := tree.NewSyntheticLoader(tree.SyntheticConfig{
		Forests:   forests,
		Snapshots: snapshots,
		Branches:  meanBranches,
		PartMass:  partMass,
		Seed:      seed,
	})
	if err != nil {
		log.Fatal(err.Error())
	}

	params := physics.DefaultParams()
	man, err := gosam.NewManager(&gosam.ManagerConfig{
		Loader:   loader,
		Ages:     ages,
		Params:   params,
		Recipes:  physics.Simple(params),
		NewSaver: func(worker int) io.Saver { return io.NewMemorySaver() },
		Log:      true,
	})
	if err != nil {
		log.Fatal(err.Error())
	}
	if err := man.Process(); err != nil {
		log.Fatal(err.Error())
	}

	// Stellar masses at the final snapshot, in log10 Msun/h.
	last := snapshots - 1
	lgms := []float64{}
	for _, s := range man.Savers() {
		ms := s.(*io.MemorySaver)
		for _, b := range ms.Batches() {
			if b.Snap != last {
				continue
			}
			for i := range b.Gals {
				m := b.Gals[i].StellarMass
				if m <= 0 {
					continue
				}
				lgms = append(lgms, math.Log10(m)+10)
			}
		}
	}
	if len(lgms) == 0 {
		log.Fatal("No galaxies survived to the final snapshot.")
	}
	log.Printf("Plotting %d galaxies.", len(lgms))

	masses, phis := massFunction(lgms)

	plt.Figure()
	plt.Plot(masses, phis, "k", plt.LW(2))

	plt.XLabel(`$M_\ast$ $[M_\odot/h]$`, plt.FontSize(16))
	plt.YLabel(`$dN/d\,{\rm log}_{10} M_\ast$`, plt.FontSize(16))
	plt.XScale("log")
	plt.YScale("log")
	plt.Grid(plt.Axis("y"))

	plt.SaveFig(fname)
	plt.Execute()
}

// massFunction histograms log-masses into a per-dex count curve.
func massFunction(lgms []float64) (masses, phis []float64) {
	lo, hi := lgms[0], lgms[0]
	for _, m := range lgms {
		if m < lo {
			lo = m
		}
		if m > hi {
			hi = m
		}
	}
	hi += 1e-3
	dlg := (hi - lo) / bins

	counts := make([]float64, bins)
	for _, m := range lgms {
		counts[int((m-lo)/dlg)]++
	}

	masses = make([]float64, bins)
	phis = make([]float64, bins)
	for i := range counts {
		mid := lo + dlg*(float64(i)+0.5)
		masses[i] = math.Pow(10, mid)
		phis[i] = counts[i] / dlg
	}
	return masses, phis
}
