package beam

import (
	"fmt"
	"strings"

	"github.com/vk/latticego/internal/builder"
)

// Field sets per distribution variant. Combined variants are composed from
// these rather than declared twice.
var (
	gaussFields = []string{
		"sigmaX", "sigmaY", "sigmaE", "sigmaXp", "sigmaYp", "sigmaT",
	}
	twissFields = []string{
		"betx", "bety", "alfx", "alfy",
		"emitx", "emity", "emitnx", "emitny",
		"sigmaE", "sigmaT",
		"dispx", "dispy", "dispxp", "dispyp",
	}
	matrixFields = []string{"sigmaNM"}
	circleFields = []string{"envelopeR", "envelopeRp", "envelopeT", "envelopeE"}
	squareFields = []string{
		"envelopeX", "envelopeXp", "envelopeY", "envelopeYp", "envelopeT", "envelopeE",
	}
	ringFields   = []string{"Rmin", "Rmax"}
	eshellFields = []string{"shellX", "shellY", "shellXp", "shellYp"}
	haloFields   = []string{
		"haloNSigmaXInner", "haloNSigmaXOuter",
		"haloNSigmaYInner", "haloNSigmaYOuter",
		"haloPSWeightParameter", "haloPSWeightFunction",
		"haloXCutInner", "haloYCutInner",
	}
	userfileFields = []string{"distrFile", "distrFileFormat"}
	ptcFields      = []string{"sigmaE", "distrFile"}
	slowextFields  = []string{"dTStart", "dTStop", "dPStart", "dPStop"}
	// composite exposes the per-axis distribution selectors; the sub-variant
	// fields are unioned in as each axis is configured.
	compositeFields = []string{"xDistrType", "yDistrType", "zDistrType"}
)

// distributions maps every recognised distribution tag to the field sets it
// composes.
var distributions = map[string][][]string{
	"reference":          {},
	"gauss":              {gaussFields},
	"gausstwiss":         {twissFields},
	"gaussmatrix":        {matrixFields},
	"circle":             {circleFields},
	"square":             {squareFields},
	"ring":               {ringFields},
	"eshell":             {eshellFields},
	"halo":               {haloFields, twissFields},
	"composite":          {compositeFields},
	"userfile":           {userfileFields},
	"ptc":                {ptcFields},
	"slowext":            {slowextFields},
	"gaussslowext":       {gaussFields, slowextFields},
	"gaussmatrixslowext": {matrixFields, slowextFields},
	"gausstwissslowext":  {twissFields, slowextFields},
}

// distrPrefixes are distribution tags carrying a free-form suffix, e.g.
// "bdsimsampler:SOURCE".
var distrPrefixes = []string{"bdsimsampler:", "eventgeneratorfile:"}

// distributionFieldSet resolves a distribution tag to its applicable field
// set.
func distributionFieldSet(distr string) (map[string]bool, error) {
	fields := make(map[string]bool)
	if sets, ok := distributions[distr]; ok {
		for _, set := range sets {
			for _, f := range set {
				fields[f] = true
			}
		}
		return fields, nil
	}
	for _, prefix := range distrPrefixes {
		if strings.HasPrefix(distr, prefix) && len(distr) > len(prefix) {
			for _, f := range userfileFields {
				fields[f] = true
			}
			return fields, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown distribution type %q", builder.ErrValue, distr)
}

// Gaussian sigma setters.

func (b *Beam) SetSigmaX(v float64, unit string) error {
	return b.checkedScalar("sigmaX", "sigmaX", v, unit)
}

func (b *Beam) SetSigmaY(v float64, unit string) error {
	return b.checkedScalar("sigmaY", "sigmaY", v, unit)
}

func (b *Beam) SetSigmaE(v float64) error {
	return b.checkedScalar("sigmaE", "sigmaE", v, "")
}

func (b *Beam) SetSigmaXP(v float64, unit string) error {
	return b.checkedScalar("sigmaXp", "sigmaXp", v, unit)
}

func (b *Beam) SetSigmaYP(v float64, unit string) error {
	return b.checkedScalar("sigmaYp", "sigmaYp", v, unit)
}

func (b *Beam) SetSigmaT(v float64, unit string) error {
	return b.checkedScalar("sigmaT", "sigmaT", v, unit)
}

// Twiss parameter setters.

func (b *Beam) SetBetaX(v float64, unit string) error {
	return b.checkedScalar("betx", "betx", v, unit)
}

func (b *Beam) SetBetaY(v float64, unit string) error {
	return b.checkedScalar("bety", "bety", v, unit)
}

func (b *Beam) SetAlphaX(v float64) error {
	return b.checkedScalar("alfx", "alfx", v, "")
}

func (b *Beam) SetAlphaY(v float64) error {
	return b.checkedScalar("alfy", "alfy", v, "")
}

func (b *Beam) SetEmittanceX(v float64, unit string) error {
	return b.checkedScalar("emitx", "emitx", v, unit)
}

func (b *Beam) SetEmittanceY(v float64, unit string) error {
	return b.checkedScalar("emity", "emity", v, unit)
}

func (b *Beam) SetEmittanceNX(v float64, unit string) error {
	return b.checkedScalar("emitnx", "emitnx", v, unit)
}

func (b *Beam) SetEmittanceNY(v float64, unit string) error {
	return b.checkedScalar("emitny", "emitny", v, unit)
}

func (b *Beam) SetDispX(v float64, unit string) error {
	return b.checkedScalar("dispx", "dispx", v, unit)
}

func (b *Beam) SetDispY(v float64, unit string) error {
	return b.checkedScalar("dispy", "dispy", v, unit)
}

func (b *Beam) SetDispXP(v float64) error {
	return b.checkedScalar("dispxp", "dispxp", v, "")
}

func (b *Beam) SetDispYP(v float64) error {
	return b.checkedScalar("dispyp", "dispyp", v, "")
}

// SetSigmaNM sets one entry of the full beam sigma matrix, stored under the
// key "sigma{n}{m}". The value is rendered verbatim.
func (b *Beam) SetSigmaNM(n, m int, value string) error {
	return b.checked("sigmaNM", fmt.Sprintf("sigma%d%d", n, m), builder.Raw(value))
}

// Envelope setters for the circle and square distributions.

func (b *Beam) SetEnvelopeR(v float64, unit string) error {
	return b.checkedScalar("envelopeR", "envelopeR", v, unit)
}

func (b *Beam) SetEnvelopeRp(v float64, unit string) error {
	return b.checkedScalar("envelopeRp", "envelopeRp", v, unit)
}

func (b *Beam) SetEnvelopeX(v float64, unit string) error {
	return b.checkedScalar("envelopeX", "envelopeX", v, unit)
}

func (b *Beam) SetEnvelopeXp(v float64, unit string) error {
	return b.checkedScalar("envelopeXp", "envelopeXp", v, unit)
}

func (b *Beam) SetEnvelopeY(v float64, unit string) error {
	return b.checkedScalar("envelopeY", "envelopeY", v, unit)
}

func (b *Beam) SetEnvelopeYp(v float64, unit string) error {
	return b.checkedScalar("envelopeYp", "envelopeYp", v, unit)
}

func (b *Beam) SetEnvelopeT(v float64, unit string) error {
	return b.checkedScalar("envelopeT", "envelopeT", v, unit)
}

func (b *Beam) SetEnvelopeE(v float64, unit string) error {
	return b.checkedScalar("envelopeE", "envelopeE", v, unit)
}

// Ring distribution setters.

func (b *Beam) SetRMin(v float64, unit string) error {
	return b.checkedScalar("Rmin", "Rmin", v, unit)
}

func (b *Beam) SetRMax(v float64, unit string) error {
	return b.checkedScalar("Rmax", "Rmax", v, unit)
}

// Elliptic shell setters.

func (b *Beam) SetShellX(v float64, unit string) error {
	return b.checkedScalar("shellX", "shellX", v, unit)
}

func (b *Beam) SetShellY(v float64, unit string) error {
	return b.checkedScalar("shellY", "shellY", v, unit)
}

func (b *Beam) SetShellXP(v float64) error {
	return b.checkedScalar("shellXp", "shellXp", v, "")
}

func (b *Beam) SetShellYP(v float64) error {
	return b.checkedScalar("shellYp", "shellYp", v, "")
}

// Halo distribution setters.

func (b *Beam) SetHaloNSigmaXInner(v float64) error {
	return b.checkedScalar("haloNSigmaXInner", "haloNSigmaXInner", v, "")
}

func (b *Beam) SetHaloNSigmaXOuter(v float64) error {
	return b.checkedScalar("haloNSigmaXOuter", "haloNSigmaXOuter", v, "")
}

func (b *Beam) SetHaloNSigmaYInner(v float64) error {
	return b.checkedScalar("haloNSigmaYInner", "haloNSigmaYInner", v, "")
}

func (b *Beam) SetHaloNSigmaYOuter(v float64) error {
	return b.checkedScalar("haloNSigmaYOuter", "haloNSigmaYOuter", v, "")
}

func (b *Beam) SetHaloXCutInner(v float64) error {
	return b.checkedScalar("haloXCutInner", "haloXCutInner", v, "")
}

func (b *Beam) SetHaloYCutInner(v float64) error {
	return b.checkedScalar("haloYCutInner", "haloYCutInner", v, "")
}

// SetHaloPSWeightFunction names the phase-space weighting function.
func (b *Beam) SetHaloPSWeightFunction(fn string) error {
	return b.checked("haloPSWeightFunction", "haloPSWeightFunction", builder.Str(fn))
}

// SetHaloPSWeightParameter carries the weighting function's parameter
// specification through as an opaque value.
func (b *Beam) SetHaloPSWeightParameter(params any) error {
	return b.checked("haloPSWeightParameter", "haloPSWeightParameter", builder.Opaque(params))
}

// File-backed distribution setters.

func (b *Beam) SetDistrFile(name string) error {
	return b.checked("distrFile", "distrFile", builder.Str(name))
}

func (b *Beam) SetDistrFileFormat(format string) error {
	return b.checked("distrFileFormat", "distrFileFormat", builder.Str(format))
}

// Slow extraction timing setters. Times default to seconds, momenta to GeV.

func (b *Beam) SetDTStart(v float64, unit string) error {
	if unit == "" {
		unit = "s"
	}
	return b.checkedScalar("dTStart", "dTStart", v, unit)
}

func (b *Beam) SetDTStop(v float64, unit string) error {
	if unit == "" {
		unit = "s"
	}
	return b.checkedScalar("dTStop", "dTStop", v, unit)
}

func (b *Beam) SetDPStart(v float64, unit string) error {
	if unit == "" {
		unit = "GeV"
	}
	return b.checkedScalar("dPStart", "dPStart", v, unit)
}

func (b *Beam) SetDPStop(v float64, unit string) error {
	if unit == "" {
		unit = "GeV"
	}
	return b.checkedScalar("dPStop", "dPStop", v, unit)
}

// Composite distribution: each axis selects its own sub-distribution, whose
// field set is unioned into the beam's applicable fields.

func (b *Beam) setAxisDistr(key, distr string) error {
	if !b.Supports(key) {
		return fmt.Errorf("%w: %s is only applicable to the composite distribution", builder.ErrValue, key)
	}
	sub, err := distributionFieldSet(distr)
	if err != nil {
		return err
	}
	for f := range sub {
		b.fields[f] = true
	}
	b.Set(key, builder.Str(distr))
	return nil
}

func (b *Beam) SetXDistrType(distr string) error {
	return b.setAxisDistr("xDistrType", distr)
}

func (b *Beam) SetYDistrType(distr string) error {
	return b.setAxisDistr("yDistrType", distr)
}

func (b *Beam) SetZDistrType(distr string) error {
	return b.setAxisDistr("zDistrType", distr)
}
