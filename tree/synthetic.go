package tree

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// SyntheticConfig controls the synthetic forest generator.
type SyntheticConfig struct {
	Forests   int
	Snapshots int
	// Branches is the mean number of side branches per forest.
	Branches float64
	// PartMass is the simulation particle mass in 1e10 Msun/h.
	PartMass float64
	Seed     int64
}

// SyntheticLoader generates random merger forests that satisfy the
// engine's input contract: progenitors sit exactly one occupied
// snapshot before their descendants, FOF membership lists are closed
// at every snapshot, and roots reference themselves.
//
// Each forest holds one main branch spanning (almost) all snapshots
// plus side branches that form as their own FOF groups, then either
// fall into the main group and survive as subhalos, fall in and get
// stripped away, or are absorbed outright. The latter two feed the
// orphan machinery.
type SyntheticLoader struct {
	cfg SyntheticConfig
}

// NewSyntheticLoader validates the config and returns a loader.
// Loading is deterministic: the same seed and forest ID always produce
// the same forest, independent of call order, so the loader is safe
// for concurrent use.
func NewSyntheticLoader(cfg SyntheticConfig) (*SyntheticLoader, error) {
	if cfg.Forests < 1 {
		return nil, fmt.Errorf("Need at least one forest, not %d.", cfg.Forests)
	}
	if cfg.Snapshots < 2 {
		return nil, fmt.Errorf(
			"Need at least two snapshots, not %d.", cfg.Snapshots,
		)
	}
	if cfg.Branches < 0 {
		return nil, fmt.Errorf(
			"The mean branch count must not be negative, but is %g.",
			cfg.Branches,
		)
	}
	if cfg.PartMass <= 0 {
		return nil, fmt.Errorf(
			"The particle mass must be positive, but is %g.", cfg.PartMass,
		)
	}
	return &SyntheticLoader{cfg}, nil
}

func (l *SyntheticLoader) ForestIDs() []int {
	ids := make([]int, l.cfg.Forests)
	for i := range ids {
		ids[i] = i
	}
	return ids
}

func (l *SyntheticLoader) LoadForest(id int) (*Forest, error) {
	if id < 0 || id >= l.cfg.Forests {
		return nil, fmt.Errorf(
			"Forest ID %d is outside [0, %d).", id, l.cfg.Forests,
		)
	}

	b := &forestBuilder{
		cfg: l.cfg,
		id:  id,
		rng: rand.New(rand.NewSource(l.cfg.Seed*1000003 + int64(id)*7919 + 1)),
	}
	return b.build(), nil
}

// branchPlan is the timeline of one branch before any halo exists.
// A branch is free (its own single-halo FOF group) from birth until
// fallIn, a subhalo of the main group from fallIn through last, and
// gone afterwards. fallIn == -1 means it never becomes a subhalo. If
// lost is set, the halo at last points its descendant at the main
// branch, which is what strands the branch's galaxy as an orphan.
type branchPlan struct {
	birth  int
	fallIn int
	last   int
	lost   bool
	lens   []int
}

func (p *branchPlan) alive(snap int) bool {
	return snap >= p.birth && snap <= p.last
}

func (p *branchPlan) sub(snap int) bool {
	return p.fallIn >= 0 && snap >= p.fallIn
}

type forestBuilder struct {
	cfg SyntheticConfig
	id  int
	rng *rand.Rand

	plans []*branchPlan
	gidx  [][]int
	halos []Halo
}

func (b *forestBuilder) build() *Forest {
	b.planMain()
	n := poisson(b.rng, b.cfg.Branches)
	for k := 0; k < n; k++ {
		b.planSide()
	}

	b.gidx = make([][]int, len(b.plans))
	for i := range b.gidx {
		b.gidx[i] = make([]int, b.cfg.Snapshots)
		for s := range b.gidx[i] {
			b.gidx[i][s] = -1
		}
	}

	b.emit()
	b.linkDescendants()
	b.linkProgenitors()

	return &Forest{ID: b.id, Halos: b.halos}
}

// planMain lays out branch 0, which spans every snapshot from its
// birth to the end. Some forests start a snapshot or two late so that
// leading snapshots with no halos at all occur in the population.
func (b *forestBuilder) planMain() {
	s := b.cfg.Snapshots
	birth := 0
	if s > 4 && b.rng.Float64() < 0.3 {
		birth = 1 + b.rng.Intn(2)
	}

	p := &branchPlan{birth: birth, fallIn: -1, last: s - 1}
	b.fillLens(p, 30+b.rng.Intn(40))
	b.plans = append(b.plans, p)
}

// planSide lays out one side branch. It is born as its own FOF group
// at least one snapshot after the main branch starts, and its fate is
// drawn from three patterns: absorbed outright while still a group
// root, a subhalo phase ending in loss, or a subhalo surviving to the
// final snapshot.
func (b *forestBuilder) planSide() {
	s := b.cfg.Snapshots
	mainBirth := b.plans[0].birth
	if mainBirth+1 > s-2 {
		return
	}

	birth := mainBirth + 1 + b.rng.Intn(s-2-mainBirth)
	free := 1 + b.rng.Intn(3)

	var p *branchPlan
	r := b.rng.Float64()
	switch {
	case r < 0.3 || birth+1 > s-2:
		last := birth + free - 1
		if last > s-2 {
			last = s - 2
		}
		p = &branchPlan{birth: birth, fallIn: -1, last: last, lost: true}
	case r < 0.65:
		fallIn := birth + free
		if fallIn > s-2 {
			fallIn = s - 2
		}
		last := fallIn + b.rng.Intn(3)
		if last > s-2 {
			last = s - 2
		}
		p = &branchPlan{birth: birth, fallIn: fallIn, last: last, lost: true}
	default:
		fallIn := birth + free
		if fallIn > s-1 {
			fallIn = s - 1
		}
		p = &branchPlan{birth: birth, fallIn: fallIn, last: s - 1}
	}

	b.fillLens(p, 10+b.rng.Intn(20))
	b.plans = append(b.plans, p)
}

// fillLens draws the particle-count history: growth while free,
// stripping once the branch is a subhalo.
func (b *forestBuilder) fillLens(p *branchPlan, start int) {
	p.lens = make([]int, p.last-p.birth+1)
	ln := float64(start)
	for i := range p.lens {
		if i > 0 {
			if p.sub(p.birth + i) {
				ln = math.Max(8, ln*0.75)
			} else {
				ln *= 1.05 + 0.3*b.rng.Float64()
			}
		}
		p.lens[i] = int(math.Round(ln))
	}
}

// emit writes the halo records snapshot by snapshot. Within a
// snapshot the main halo comes first, then its subhalos, then the
// free side branches as their own groups, and the FOF membership
// chain is threaded in that order.
func (b *forestBuilder) emit() {
	for s := 0; s < b.cfg.Snapshots; s++ {
		group := []int{}
		if b.plans[0].alive(s) {
			group = append(group, b.emitHalo(0, s))
		}
		for br := 1; br < len(b.plans); br++ {
			if b.plans[br].alive(s) && b.plans[br].sub(s) {
				group = append(group, b.emitHalo(br, s))
			}
		}
		for k, idx := range group {
			b.halos[idx].FirstInFOFGroup = group[0]
			if k+1 < len(group) {
				b.halos[idx].NextInFOFGroup = group[k+1]
			}
		}

		for br := 1; br < len(b.plans); br++ {
			if b.plans[br].alive(s) && !b.plans[br].sub(s) {
				idx := b.emitHalo(br, s)
				b.halos[idx].FirstInFOFGroup = idx
			}
		}
	}
}

func (b *forestBuilder) emitHalo(br, snap int) int {
	p := b.plans[br]
	ln := p.lens[snap-p.birth]
	m := float64(ln) * b.cfg.PartMass

	// Rough z = 0 virial scales, good enough to give the spin vector a
	// plausible magnitude.
	rv := math.Cbrt(m / (200 * 4 * math.Pi / 3 * 27.755))
	vv := math.Sqrt(43.0071 * m / rv)

	h := Halo{
		Descendant:      -1,
		FirstProgenitor: -1,
		NextProgenitor:  -1,
		FirstInFOFGroup: -1,
		NextInFOFGroup:  -1,

		Len:  ln,
		Mvir: -1,

		VelDisp: vv / math.Sqrt2,
		Vmax:    1.1 * vv,

		MostBoundID: int64(b.id)*1000000 + int64(br),
		SnapNum:     snap,
	}

	for j := 0; j < 3; j++ {
		h.Pos[j] = 100 * b.rng.Float64()
		h.Vel[j] = 150 * b.rng.NormFloat64()
	}
	lambda := 0.02 + 0.05*b.rng.Float64()
	spin := randomDirection(b.rng)
	for j := 0; j < 3; j++ {
		h.Spin[j] = spin[j] * lambda * 1.414 * vv * rv
	}

	// The main branch carries a group mass estimate; side branches
	// leave it unset so the particle-count fallback gets exercised.
	if br == 0 {
		h.Mvir = m
	}

	idx := len(b.halos)
	b.halos = append(b.halos, h)
	b.gidx[br][snap] = idx
	return idx
}

func (b *forestBuilder) linkDescendants() {
	for br, p := range b.plans {
		for s := p.birth; s <= p.last; s++ {
			i := b.gidx[br][s]
			switch {
			case s < p.last:
				b.halos[i].Descendant = b.gidx[br][s+1]
			case p.lost:
				b.halos[i].Descendant = b.gidx[0][s+1]
			}
		}
	}
}

// linkProgenitors inverts the descendant links. The first progenitor
// is the most massive; the rest chain off it in decreasing order.
func (b *forestBuilder) linkProgenitors() {
	progs := make([][]int, len(b.halos))
	for i := range b.halos {
		d := b.halos[i].Descendant
		if d >= 0 {
			progs[d] = append(progs[d], i)
		}
	}

	for d, list := range progs {
		if len(list) == 0 {
			continue
		}
		sort.SliceStable(list, func(a, c int) bool {
			return b.halos[list[a]].Len > b.halos[list[c]].Len
		})

		b.halos[d].FirstProgenitor = list[0]
		for k := 0; k+1 < len(list); k++ {
			b.halos[list[k]].NextProgenitor = list[k+1]
		}
	}
}

func randomDirection(rng *rand.Rand) Vector {
	var v Vector
	for {
		for j := 0; j < 3; j++ {
			v[j] = rng.NormFloat64()
		}
		if n := v.Norm(); n > 0 {
			for j := 0; j < 3; j++ {
				v[j] /= n
			}
			return v
		}
	}
}

func poisson(rng *rand.Rand, mean float64) int {
	if mean <= 0 {
		return 0
	}
	l := math.Exp(-mean)
	k, p := 0, 1.0
	for {
		p *= rng.Float64()
		if p <= l {
			return k
		}
		k++
	}
}
