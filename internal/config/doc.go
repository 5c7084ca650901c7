// Package config defines the format-agnostic model a lattice description is
// loaded into, decoupling the machine builder from the concrete input
// format.
package config
