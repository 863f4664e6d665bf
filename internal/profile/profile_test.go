package profile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/zugferd/internal/profile"
)

func TestPermits(t *testing.T) {
	tests := []struct {
		name       string
		capability profile.Profile
		active     profile.Profile
		want       bool
	}{
		{"single match", profile.Extended, profile.Extended, true},
		{"set contains active", profile.FromComfort, profile.XRechnung, true},
		{"set misses active", profile.FromComfort, profile.Basic, false},
		{"empty capability", profile.Unknown, profile.Basic, false},
		{"unknown active", profile.All, profile.Unknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, profile.Permits(tt.capability, tt.active))
		})
	}
}

func TestProfileString(t *testing.T) {
	assert.Equal(t, "Comfort", profile.Comfort.String())
	assert.Equal(t, "Unknown", profile.Unknown.String())
	assert.Equal(t, "Basic|Comfort", (profile.Basic | profile.Comfort).String())
	assert.Len(t, profile.All.Profiles(), 7)
	assert.True(t, profile.XRechnung1.IsXRechnung())
	assert.False(t, (profile.Basic | profile.Comfort).IsSingle())
}

func TestParse(t *testing.T) {
	tests := map[string]profile.Profile{
		"minimum":    profile.Minimum,
		"BasicWL":    profile.BasicWL,
		"basic":      profile.Basic,
		"EN16931":    profile.Comfort,
		"comfort":    profile.Comfort,
		"extended":   profile.Extended,
		"XRechnung1": profile.XRechnung1,
		"xrechnung":  profile.XRechnung,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			got, err := profile.Parse(in)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := profile.Parse("premium")
	require.Error(t, err)
}

func TestParseVersionAndFamily(t *testing.T) {
	v, err := profile.ParseVersion("2.2")
	require.NoError(t, err)
	assert.Equal(t, profile.Version23, v)

	v, err = profile.ParseVersion("1")
	require.NoError(t, err)
	assert.Equal(t, "1.0", v.String())

	_, err = profile.ParseVersion("3")
	require.Error(t, err)

	f, err := profile.ParseFamily("UBL")
	require.NoError(t, err)
	assert.Equal(t, profile.FamilyUBL, f)

	_, err = profile.ParseFamily("edifact")
	require.Error(t, err)
}

func TestTableSupports(t *testing.T) {
	tests := []struct {
		version profile.Version
		family  profile.Family
		p       profile.Profile
		want    bool
	}{
		{profile.Version1, profile.FamilyCII, profile.Basic, true},
		{profile.Version1, profile.FamilyCII, profile.Minimum, false},
		{profile.Version1, profile.FamilyCII, profile.XRechnung, false},
		{profile.Version20, profile.FamilyCII, profile.XRechnung1, true},
		{profile.Version20, profile.FamilyCII, profile.XRechnung, false},
		{profile.Version21, profile.FamilyCII, profile.XRechnung, true},
		{profile.Version23, profile.FamilyCII, profile.Minimum, true},
		{profile.Version23, profile.FamilyUBL, profile.Comfort, true},
		{profile.Version23, profile.FamilyUBL, profile.Basic, false},
		{profile.Version23, profile.FamilyCII, profile.Basic | profile.Comfort, false},
	}

	for _, tt := range tests {
		t.Run(tt.version.String()+"/"+tt.family.String()+"/"+tt.p.String(), func(t *testing.T) {
			table := profile.For(tt.version, tt.family)
			require.NotNil(t, table)
			assert.Equal(t, tt.want, table.Supports(tt.p))
		})
	}

	assert.Nil(t, profile.For(profile.Version1, profile.FamilyUBL))
	assert.Nil(t, profile.For(profile.VersionUnknown, profile.FamilyCII))
}

func TestTradingNameIsNotNested(t *testing.T) {
	for _, v := range []profile.Version{profile.Version20, profile.Version21, profile.Version23} {
		table := profile.For(v, profile.FamilyCII)

		// XRechnung1 permits the seller description, which Basic does not ...
		assert.True(t, table.Permits(profile.FieldPartyDescription, profile.XRechnung1))
		assert.False(t, table.Permits(profile.FieldPartyDescription, profile.Basic))

		// ... yet the trading name goes the other way
		assert.True(t, table.Permits(profile.FieldPartyTradingName, profile.Basic), v.String())
		assert.False(t, table.Permits(profile.FieldPartyTradingName, profile.XRechnung1), v.String())
		assert.True(t, table.Permits(profile.FieldPartyTradingName, profile.XRechnung), v.String())
	}

	ubl := profile.For(profile.Version23, profile.FamilyUBL)
	assert.True(t, ubl.Permits(profile.FieldPartyTradingName, profile.Comfort))
	assert.False(t, ubl.Permits(profile.FieldPartyTradingName, profile.XRechnung1))
}

func TestTablePermits(t *testing.T) {
	v23 := profile.For(profile.Version23, profile.FamilyCII)

	assert.True(t, v23.Permits("", profile.Minimum), "structural wrappers are always written")
	assert.False(t, v23.Permits(profile.FieldLineItem, profile.Minimum))
	assert.False(t, v23.Permits(profile.FieldLineItem, profile.BasicWL))
	assert.True(t, v23.Permits(profile.FieldLineItem, profile.Basic))
	assert.True(t, v23.Permits(profile.FieldDocumentName, profile.Extended))
	assert.False(t, v23.Permits(profile.FieldDocumentName, profile.XRechnung))
	assert.True(t, v23.Permits(profile.FieldInvoicer, profile.Extended))
	assert.False(t, v23.Permits(profile.Field("NoSuchField"), profile.Extended))

	v21 := profile.For(profile.Version21, profile.FamilyCII)
	assert.False(t, v21.Permits(profile.FieldInvoicer, profile.Extended))

	v1 := profile.For(profile.Version1, profile.FamilyCII)
	assert.True(t, v1.Permits(profile.FieldDocumentName, profile.Basic))
	assert.False(t, v1.Permits(profile.FieldPartyLegalOrg, profile.Extended))

	capability, ok := v23.Capability(profile.FieldTotalRounding)
	require.True(t, ok)
	assert.Equal(t, profile.FromComfort, capability)
}

func TestTableMandatory(t *testing.T) {
	v23 := profile.For(profile.Version23, profile.FamilyCII)

	req, ok := v23.Mandatory(profile.FieldBuyerReference, profile.XRechnung)
	require.True(t, ok)
	assert.Equal(t, "BR-DE-15", req.RuleID)

	_, ok = v23.Mandatory(profile.FieldBuyerReference, profile.Comfort)
	assert.False(t, ok)

	_, ok = v23.Mandatory(profile.FieldLineItem, profile.Minimum)
	assert.False(t, ok)

	fields := v23.MandatoryFields(profile.Minimum)
	assert.Equal(t, []profile.Field{
		profile.FieldDocumentID,
		profile.FieldIssueDate,
		profile.FieldTypeCode,
		profile.FieldCurrency,
		profile.FieldSellerName,
		profile.FieldBuyerName,
		profile.FieldSellerCountry,
		profile.FieldTotalGrand,
		profile.FieldTotalDuePayable,
	}, fields)

	assert.Len(t, v23.MandatoryFields(profile.XRechnung), 15)
}

func TestGuidelines(t *testing.T) {
	id, ok := profile.GuidelineID(profile.Version23, profile.FamilyCII, profile.XRechnung)
	require.True(t, ok)
	assert.Equal(t, profile.GuidelineXRechnung, id)

	id, ok = profile.GuidelineID(profile.Version20, profile.FamilyCII, profile.Minimum)
	require.True(t, ok)
	assert.Equal(t, "urn:zugferd.de:2p0:minimum", id)

	_, ok = profile.GuidelineID(profile.Version1, profile.FamilyCII, profile.Minimum)
	assert.False(t, ok)

	_, ok = profile.GuidelineID(profile.Version23, profile.FamilyUBL, profile.Extended)
	assert.False(t, ok)

	v20 := profile.ReadGuidelines(profile.Version20, profile.FamilyCII)
	_, ok = v20.Lookup(profile.GuidelineEN16931)
	assert.False(t, ok, "plain EN16931 belongs to the 2.x tables")

	cii := profile.ReadGuidelines(profile.Version23, profile.FamilyCII)
	p, ok := cii.Lookup(profile.GuidelineEN16931)
	require.True(t, ok)
	assert.Equal(t, profile.Comfort, p)

	p, ok = cii.Lookup("urn:cen.eu:en16931:2017#compliant#urn:xoev-de:kosit:standard:xrechnung_2.2")
	require.True(t, ok)
	assert.Equal(t, profile.XRechnung, p)

	_, ok = cii.Lookup(profile.GuidelineFacturXBasic + "x")
	assert.False(t, ok, "lookup is exact")
}
