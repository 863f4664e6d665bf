package profile

import "sort"

// Requirement marks a field mandatory for a set of profiles
type Requirement struct {
	Profiles Profile
	RuleID   string
	Message  string
}

// Table is the capability table of one schema version and dialect
type Table struct {
	Version   Version
	Family    Family
	Supported Profile

	permitted map[Field]Profile
	mandatory map[Field]Requirement
}

// For returns the table of a version/dialect pair, nil when the pair does
// not exist
func For(v Version, f Family) *Table {
	if f == FamilyUBL {
		if v == Version23 {
			return ublTable
		}
		return nil
	}
	switch v {
	case Version1:
		return v1Table
	case Version20:
		return v20Table
	case Version21:
		return v21Table
	case Version23:
		return v23Table
	}
	return nil
}

// Supports reports whether the table can produce the single profile p
func (t *Table) Supports(p Profile) bool {
	return p.IsSingle() && Permits(t.Supported, p)
}

// Permits reports whether field may be written under the active profile.
// The empty field is a structural wrapper and is always permitted.
func (t *Table) Permits(field Field, active Profile) bool {
	if field == "" {
		return true
	}
	capability, ok := t.permitted[field]
	return ok && Permits(capability, active)
}

// Capability returns the permitted set of a field
func (t *Table) Capability(field Field) (Profile, bool) {
	p, ok := t.permitted[field]
	return p, ok
}

// Mandatory returns the requirement if field is mandatory under active
func (t *Table) Mandatory(field Field, active Profile) (Requirement, bool) {
	r, ok := t.mandatory[field]
	if !ok || !Permits(r.Profiles, active) {
		return Requirement{}, false
	}
	return r, true
}

// MandatoryFields lists the fields mandatory under active, ordered by rule id
func (t *Table) MandatoryFields(active Profile) []Field {
	var fields []Field
	for f, r := range t.mandatory {
		if Permits(r.Profiles, active) {
			fields = append(fields, f)
		}
	}
	sort.Slice(fields, func(i, j int) bool {
		ri, rj := t.mandatory[fields[i]].RuleID, t.mandatory[fields[j]].RuleID
		if ri != rj {
			return ri < rj
		}
		return fields[i] < fields[j]
	})
	return fields
}

func derive(base map[Field]Profile, overrides map[Field]Profile, drop ...Field) map[Field]Profile {
	out := make(map[Field]Profile, len(base)+len(overrides))
	for f, p := range base {
		out[f] = p
	}
	for f, p := range overrides {
		out[f] = p
	}
	for _, f := range drop {
		delete(out, f)
	}
	return out
}

func deriveMandatory(base map[Field]Requirement, overrides map[Field]Requirement) map[Field]Requirement {
	out := make(map[Field]Requirement, len(base)+len(overrides))
	for f, r := range base {
		out[f] = r
	}
	for f, r := range overrides {
		out[f] = r
	}
	return out
}
