package physics

import (
	"math"

	"github.com/gosam-model/gosam/galaxy"
)

const (
	// baryonFrac is the cosmic baryon fraction targeted by infall.
	baryonFrac = 0.17
	// recycleFrac of every stellar generation returns to the cold gas
	// at once.
	recycleFrac = 0.43
	// metalYield of the formed stellar mass comes back as fresh cold
	// gas metals.
	metalYield = 0.025
	// sfrFrac and coolFrac set how much of a reservoir drains per
	// snapshot interval.
	sfrFrac  = 0.05
	coolFrac = 0.5
	// reincFrac of the ejected reservoir returns per snapshot
	// interval.
	reincFrac = 0.5
	// feedbackLoad is the reheated-to-formed mass ratio of supernova
	// feedback.
	feedbackLoad = 1.0
	// burstFrac and burstExp shape the collisional starburst, after
	// Somerville et al. (2001).
	burstFrac = 0.56
	burstExp  = 0.7
	// majorRatio splits minor from major mergers.
	majorRatio = 0.3
	// reionHalfZ is the redshift at which half the baryon budget is
	// kept.
	reionHalfZ = 8.0
)

// Simple returns a toy recipe set. The flows are deliberately crude
// first-order drains, but they respect the reservoir bookkeeping: mass
// moved somewhere always comes from somewhere, metals ride along
// proportionally, and nothing goes negative. That makes the set good
// enough to exercise every engine path and to sanity-check mass
// conservation in tests.
func Simple(p Params) Recipes {
	reion := func(z float64) float64 {
		x := (1 + z) / (1 + reionHalfZ)
		return 1 / (1 + x*x*x)
	}

	infall := func(gs []galaxy.Galaxy, central int, z, dt float64) {
		cen := &gs[central]
		if cen.DT <= 0 {
			return
		}
		total := 0.0
		for i := range gs {
			g := &gs[i]
			total += g.ColdGas + g.StellarMass + g.HotGas +
				g.EjectedMass + g.BlackHoleMass + g.ICS
		}
		budget := reion(z) * baryonFrac * cen.Mvir
		diff := (budget - total) * dt / cen.DT
		if diff >= 0 {
			// Fresh infall is pristine.
			cen.HotGas += diff
			return
		}
		// The halo is over budget. Blow the excess out of the ejected
		// reservoir first, then out of the hot halo.
		excess := -diff
		excess -= drain(&cen.EjectedMass, &cen.MetalsEjectedMass, excess)
		drain(&cen.HotGas, &cen.MetalsHotGas, excess)
	}

	reincorporate := func(gs []galaxy.Galaxy, central int, dt float64) {
		cen := &gs[central]
		if cen.DT <= 0 {
			return
		}
		amount := reincFrac * cen.EjectedMass * dt / cen.DT
		clampMove(
			&cen.EjectedMass, &cen.MetalsEjectedMass,
			&cen.HotGas, &cen.MetalsHotGas, amount,
		)
	}

	strip := func(gs []galaxy.Galaxy, central, sat int, dt float64) {
		cen, s := &gs[central], &gs[sat]
		if s.DT <= 0 {
			return
		}
		frac := dt / s.DT
		if frac > 1 {
			frac = 1
		}
		clampMove(
			&s.HotGas, &s.MetalsHotGas,
			&cen.HotGas, &cen.MetalsHotGas, frac*s.HotGas,
		)
		clampMove(
			&s.EjectedMass, &s.MetalsEjectedMass,
			&cen.EjectedMass, &cen.MetalsEjectedMass, frac*s.EjectedMass,
		)
	}

	cool := func(gs []galaxy.Galaxy, p int, dt float64) {
		g := &gs[p]
		if g.DT <= 0 {
			return
		}
		amount := coolFrac * g.HotGas * dt / g.DT
		moved := clampMove(
			&g.HotGas, &g.MetalsHotGas,
			&g.ColdGas, &g.MetalsColdGas, amount,
		)
		g.Cooling += moved
	}

	formStars := func(gs []galaxy.Galaxy, p int, time, dt float64) {
		g := &gs[p]
		if g.ColdGas <= 0 || g.DT <= 0 {
			return
		}
		stars := sfrFrac * g.ColdGas * dt / g.DT
		reheat := feedbackLoad * stars
		if stars+reheat > g.ColdGas {
			scale := g.ColdGas / (stars + reheat)
			stars *= scale
			reheat *= scale
		}
		z := metallicity(g.MetalsColdGas, g.ColdGas)
		net := (1 - recycleFrac) * stars

		cen := &gs[g.CentralGal]
		g.ColdGas -= net + reheat
		g.MetalsColdGas -= z * (net + reheat)
		if g.MetalsColdGas < 0 {
			g.MetalsColdGas = 0
		}
		g.StellarMass += net
		g.MetalsStellarMass += z * net
		g.SfrDisk += stars
		cen.HotGas += reheat
		cen.MetalsHotGas += z * reheat
		g.OutflowRate += reheat
		g.MetalsColdGas += metalYield * stars
	}

	disrupt := func(gs []galaxy.Galaxy, central, sat int) {
		cen, s := &gs[central], &gs[sat]
		cen.HotGas += s.ColdGas + s.HotGas
		cen.MetalsHotGas += s.MetalsColdGas + s.MetalsHotGas
		cen.EjectedMass += s.EjectedMass
		cen.MetalsEjectedMass += s.MetalsEjectedMass
		cen.ICS += s.ICS + s.StellarMass
		cen.MetalsICS += s.MetalsICS + s.MetalsStellarMass
		cen.BlackHoleMass += s.BlackHoleMass
		wipe(s)
	}

	merge := func(
		gs []galaxy.Galaxy, sat, target, central int, time, dt float64,
	) galaxy.MergeKind {
		t, s := &gs[target], &gs[sat]

		mi := s.StellarMass + s.ColdGas
		ma := t.StellarMass + t.ColdGas
		ratio := 1.0
		if ma > 0 {
			ratio = mi / ma
		}
		if ratio > 1 {
			ratio = 1 / ratio
		}

		t.ColdGas += s.ColdGas
		t.MetalsColdGas += s.MetalsColdGas
		t.HotGas += s.HotGas
		t.MetalsHotGas += s.MetalsHotGas
		t.EjectedMass += s.EjectedMass
		t.MetalsEjectedMass += s.MetalsEjectedMass
		t.ICS += s.ICS
		t.MetalsICS += s.MetalsICS
		t.BlackHoleMass += s.BlackHoleMass

		// Quasar-mode growth swallows a slice of the combined disk.
		grow := 0.01 * ratio * t.ColdGas
		z := metallicity(t.MetalsColdGas, t.ColdGas)
		t.ColdGas -= grow
		t.MetalsColdGas -= z * grow
		if t.MetalsColdGas < 0 {
			t.MetalsColdGas = 0
		}
		t.BlackHoleMass += grow

		// The satellite's stars feed the merger-driven bulge.
		t.StellarMass += s.StellarMass
		t.BulgeMass += s.StellarMass
		t.MetalsStellarMass += s.MetalsStellarMass
		t.MetalsBulgeMass += s.MetalsStellarMass

		// Collisional starburst.
		burst := burstFrac * math.Pow(ratio, burstExp) * t.ColdGas
		reheat := feedbackLoad * burst
		if burst+reheat > t.ColdGas {
			scale := t.ColdGas / (burst + reheat)
			burst *= scale
			reheat *= scale
		}
		z = metallicity(t.MetalsColdGas, t.ColdGas)
		net := (1 - recycleFrac) * burst
		cen := &gs[central]
		t.ColdGas -= net + reheat
		t.MetalsColdGas -= z * (net + reheat)
		if t.MetalsColdGas < 0 {
			t.MetalsColdGas = 0
		}
		t.StellarMass += net
		t.BulgeMass += net
		t.MetalsStellarMass += z * net
		t.MetalsBulgeMass += z * net
		t.SfrBulge += burst
		cen.HotGas += reheat
		cen.MetalsHotGas += z * reheat
		t.OutflowRate += reheat
		t.MetalsColdGas += metalYield * burst

		kind := galaxy.MergeMinor
		if ratio > majorRatio {
			// A major merger destroys the disk.
			t.BulgeMass = t.StellarMass
			t.MetalsBulgeMass = t.MetalsStellarMass
			t.TimeOfLastMajorMerger = time
			kind = galaxy.MergeMajor
		} else {
			t.TimeOfLastMinorMerger = time
		}

		wipe(s)
		return kind
	}

	return Recipes{
		Infall:        infall,
		Reincorporate: reincorporate,
		Strip:         strip,
		Cool:          cool,
		FormStars:     formStars,
		Disrupt:       disrupt,
		Merge:         merge,
		Reionization:  reion,
	}
}

func metallicity(metals, mass float64) float64 {
	if mass <= 0 {
		return 0
	}
	return metals / mass
}

// clampMove shifts up to amount of mass and its share of metals from
// one reservoir to another. It reports how much actually moved.
func clampMove(srcMass, srcMetals, dstMass, dstMetals *float64, amount float64) float64 {
	if amount > *srcMass {
		amount = *srcMass
	}
	if amount <= 0 {
		return 0
	}
	z := metallicity(*srcMetals, *srcMass)
	*srcMass -= amount
	*srcMetals -= z * amount
	if *srcMetals < 0 {
		*srcMetals = 0
	}
	*dstMass += amount
	*dstMetals += z * amount
	return amount
}

// drain removes up to amount of mass and its metals from a reservoir
// and reports how much was removed.
func drain(mass, metals *float64, amount float64) float64 {
	if amount > *mass {
		amount = *mass
	}
	if amount <= 0 {
		return 0
	}
	z := metallicity(*metals, *mass)
	*mass -= amount
	*metals -= z * amount
	if *metals < 0 {
		*metals = 0
	}
	return amount
}

func wipe(g *galaxy.Galaxy) {
	g.ColdGas, g.MetalsColdGas = 0, 0
	g.StellarMass, g.MetalsStellarMass = 0, 0
	g.BulgeMass, g.MetalsBulgeMass = 0, 0
	g.HotGas, g.MetalsHotGas = 0, 0
	g.EjectedMass, g.MetalsEjectedMass = 0, 0
	g.ICS, g.MetalsICS = 0, 0
	g.BlackHoleMass = 0
}
