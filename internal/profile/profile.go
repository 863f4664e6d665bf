// Package profile describes conformance profiles, schema versions and the
// per-version capability tables that gate every element an encoder writes.
package profile

import (
	"fmt"
	"strings"
)

// Profile is a set of conformance profiles. A single profile has exactly
// one bit set; capability entries combine several.
type Profile uint

const (
	Unknown    Profile = 0
	Minimum    Profile = 1
	BasicWL    Profile = 2
	Basic      Profile = 4
	Comfort    Profile = 8
	Extended   Profile = 16
	XRechnung1 Profile = 32
	XRechnung  Profile = 64
)

// Frequently used capability sets
const (
	All          = Minimum | BasicWL | Basic | Comfort | Extended | XRechnung1 | XRechnung
	FromBasicWL  = BasicWL | Basic | Comfort | Extended | XRechnung1 | XRechnung
	FromBasic    = Basic | Comfort | Extended | XRechnung1 | XRechnung
	FromComfort  = Comfort | Extended | XRechnung1 | XRechnung
	AnyXRechnung = XRechnung1 | XRechnung
)

var ordered = []Profile{Minimum, BasicWL, Basic, Comfort, Extended, XRechnung1, XRechnung}

var names = map[Profile]string{
	Minimum:    "Minimum",
	BasicWL:    "BasicWL",
	Basic:      "Basic",
	Comfort:    "Comfort",
	Extended:   "Extended",
	XRechnung1: "XRechnung1",
	XRechnung:  "XRechnung",
}

var aliases = map[string]Profile{
	"minimum":    Minimum,
	"basicwl":    BasicWL,
	"basic-wl":   BasicWL,
	"basic":      Basic,
	"comfort":    Comfort,
	"en16931":    Comfort,
	"extended":   Extended,
	"xrechnung1": XRechnung1,
	"xrechnung":  XRechnung,
}

// Permits reports whether the active profile is in the capability set
func Permits(capability, active Profile) bool {
	return capability&active != 0
}

// Profiles splits a set into its single profiles, in ascending order
func (p Profile) Profiles() []Profile {
	var out []Profile
	for _, q := range ordered {
		if p&q != 0 {
			out = append(out, q)
		}
	}
	return out
}

// IsSingle reports whether exactly one known profile is set
func (p Profile) IsSingle() bool {
	_, ok := names[p]
	return ok
}

// IsXRechnung reports whether the set contains a national extension profile
func (p Profile) IsXRechnung() bool {
	return p&AnyXRechnung != 0
}

func (p Profile) String() string {
	if p == Unknown {
		return "Unknown"
	}
	if n, ok := names[p]; ok {
		return n
	}
	parts := make([]string, 0, len(ordered))
	for _, q := range p.Profiles() {
		parts = append(parts, names[q])
	}
	return strings.Join(parts, "|")
}

// MarshalText renders the profile name
func (p Profile) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Parse reads a single profile name, case insensitive
func Parse(s string) (Profile, error) {
	p, ok := aliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return Unknown, fmt.Errorf("unknown profile %q", s)
	}
	return p, nil
}

// Version is a schema version
type Version int

const (
	VersionUnknown Version = iota
	Version1
	Version20
	Version21
	Version23
)

var versionNames = map[Version]string{
	Version1:  "1.0",
	Version20: "2.0",
	Version21: "2.1",
	Version23: "2.3",
}

func (v Version) String() string {
	if n, ok := versionNames[v]; ok {
		return n
	}
	return "unknown"
}

// MarshalText renders the version number
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// ParseVersion accepts "1", "1.0", "20", "2.0", "21", "2.1", "22", "2.2", "23", "2.3"
func ParseVersion(s string) (Version, error) {
	switch strings.TrimSpace(s) {
	case "1", "1.0", "10":
		return Version1, nil
	case "20", "2.0":
		return Version20, nil
	case "21", "2.1":
		return Version21, nil
	case "22", "2.2", "23", "2.3":
		return Version23, nil
	}
	return VersionUnknown, fmt.Errorf("unknown version %q", s)
}

// Family is the XML dialect
type Family int

const (
	FamilyUnknown Family = iota
	FamilyCII
	FamilyUBL
)

func (f Family) String() string {
	switch f {
	case FamilyCII:
		return "CII"
	case FamilyUBL:
		return "UBL"
	}
	return "unknown"
}

// MarshalText renders the family name
func (f Family) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// ParseFamily accepts "cii" and "ubl"
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cii", "":
		return FamilyCII, nil
	case "ubl":
		return FamilyUBL, nil
	}
	return FamilyUnknown, fmt.Errorf("unknown dialect %q", s)
}
