package builder

// Convenience constructors that build a typed element and append it in one
// call. They mirror the element factories one-to-one.

// AddDrift appends a drift of length l.
func (m *Machine) AddDrift(name string, l float64, params ...Param) error {
	return m.Append(Drift(name, l, params...))
}

// AddMarker appends a zero-length marker.
func (m *Machine) AddMarker(name string) error {
	return m.Append(Marker(name))
}

// AddQuadrupole appends a quadrupole of length l and strength k1.
func (m *Machine) AddQuadrupole(name string, l, k1 float64, params ...Param) error {
	return m.Append(Quadrupole(name, l, k1, params...))
}

// AddSextupole appends a sextupole of length l and strength k2.
func (m *Machine) AddSextupole(name string, l, k2 float64, params ...Param) error {
	return m.Append(Sextupole(name, l, k2, params...))
}

// AddOctupole appends an octupole of length l and strength k3.
func (m *Machine) AddOctupole(name string, l, k3 float64, params ...Param) error {
	return m.Append(Octupole(name, l, k3, params...))
}

// AddSBend appends a sector bend of length l and bend angle.
func (m *Machine) AddSBend(name string, l, angle float64, params ...Param) error {
	return m.Append(SBend(name, l, append([]Param{P("angle", Number(angle))}, params...)...))
}

// AddRBend appends a rectangular bend of length l and bend angle.
func (m *Machine) AddRBend(name string, l, angle float64, params ...Param) error {
	return m.Append(RBend(name, l, append([]Param{P("angle", Number(angle))}, params...)...))
}

// AddHKicker appends a horizontal kicker of length l and kick angle.
func (m *Machine) AddHKicker(name string, l, hkick float64, params ...Param) error {
	return m.Append(HKicker(name, l, append([]Param{P("hkick", Number(hkick))}, params...)...))
}

// AddVKicker appends a vertical kicker of length l and kick angle.
func (m *Machine) AddVKicker(name string, l, vkick float64, params ...Param) error {
	return m.Append(VKicker(name, l, append([]Param{P("vkick", Number(vkick))}, params...)...))
}

// AddSolenoid appends a solenoid of length l and strength ks.
func (m *Machine) AddSolenoid(name string, l, ks float64, params ...Param) error {
	return m.Append(Solenoid(name, l, ks, params...))
}

// AddRFCavity appends an RF cavity of length l with gradient in MV/m.
func (m *Machine) AddRFCavity(name string, l, gradient float64, params ...Param) error {
	return m.Append(RFCavity(name, l, gradient, params...))
}

// AddRCol appends a rectangular collimator.
func (m *Machine) AddRCol(name string, l, xsize, ysize float64, params ...Param) error {
	return m.Append(RCol(name, l, xsize, ysize, params...))
}

// AddECol appends an elliptical collimator.
func (m *Machine) AddECol(name string, l, xsize, ysize float64, params ...Param) error {
	return m.Append(ECol(name, l, xsize, ysize, params...))
}

// AddGap appends a gap of length l.
func (m *Machine) AddGap(name string, l float64, params ...Param) error {
	return m.Append(Gap(name, l, params...))
}
