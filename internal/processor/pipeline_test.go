package processor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/zugferd/internal/codec"
	"github.com/rezonia/zugferd/internal/model"
	"github.com/rezonia/zugferd/internal/processor"
	"github.com/rezonia/zugferd/internal/profile"
	"github.com/rezonia/zugferd/internal/validation"
	"github.com/rezonia/zugferd/internal/xmlio"
)

func amount(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func newInvoice() *model.Invoice {
	inv := model.New("RE-2026-0815", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), model.CurrencyEUR)
	inv.BuyerReference = "991-01484-64"
	inv.SetSeller(model.Party{
		Name:             "Büromarkt Nord GmbH",
		Street:           "Hafenweg 3",
		Postcode:         "20457",
		City:             "Hamburg",
		Country:          model.CountryDE,
		TaxRegistrations: []model.TaxRegistration{{No: "DE987654321", Scheme: model.TaxRegistrationVAT}},
		Contact:          &model.Contact{Name: "Erika Nord", Phone: "+49 40 555123", Email: "erika.nord@bueromarkt.de"},
	})
	inv.SetBuyer(model.Party{Name: "Stadtverwaltung Kiel", City: "Kiel", Country: model.CountryDE})
	inv.SetPaymentMeans(model.PaymentMeans{TypeCode: model.PaymentMeansSEPACreditTransfer})
	inv.AddCreditorFinancialAccount(model.BankAccount{IBAN: "DE89370400440532013000"})
	_, _ = inv.AddTradeLineItem(model.TradeLineItem{
		Name:            "Kopierpapier A4, 500 Blatt",
		BilledQuantity:  decimal.NewFromInt(10),
		UnitCode:        model.QuantityPiece,
		NetUnitPrice:    amount("4.50"),
		TaxType:         model.TaxTypeVAT,
		TaxCategory:     model.TaxCategoryStandard,
		TaxPercent:      decimal.NewFromInt(19),
		LineTotalAmount: amount("45.00"),
	})
	inv.AddApplicableTradeTax(model.Tax{
		TypeCode:     model.TaxTypeVAT,
		CategoryCode: model.TaxCategoryStandard,
		Percent:      decimal.NewFromInt(19),
		BasisAmount:  decimal.RequireFromString("45.00"),
		TaxAmount:    decimal.RequireFromString("8.55"),
	})
	inv.SetTotals(model.Totals{
		LineTotal:  decimal.RequireFromString("45.00"),
		TaxBasis:   decimal.RequireFromString("45.00"),
		TaxTotal:   decimal.RequireFromString("8.55"),
		GrandTotal: decimal.RequireFromString("53.55"),
		DuePayable: decimal.RequireFromString("53.55"),
	})
	return inv
}

func document(t *testing.T, inv *model.Invoice, v profile.Version, f profile.Family, p profile.Profile) []byte {
	t.Helper()
	enc, err := codec.NewEncoder(v, f)
	require.NoError(t, err)
	var buf xmlio.Buffer
	require.NoError(t, enc.Save(inv, p, &buf))
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want processor.Format
	}{
		{"xml", []byte(`<?xml version="1.0" encoding="UTF-8"?><Invoice/>`), processor.FormatXML},
		{"pdf", []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n1 0 obj\n"), processor.FormatPDF},
		{"text", []byte("just some words"), processor.FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, processor.DetectFormat(tt.data))
		})
	}
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "xml", processor.FormatXML.String())
	assert.Equal(t, "pdf", processor.FormatPDF.String())
	assert.Equal(t, "unknown", processor.FormatUnknown.String())
}

func TestIdentify(t *testing.T) {
	p := processor.NewPipeline()

	tests := []struct {
		name    string
		version profile.Version
		family  profile.Family
		profile profile.Profile
	}{
		{"cii xrechnung", profile.Version23, profile.FamilyCII, profile.XRechnung},
		{"ubl comfort", profile.Version23, profile.FamilyUBL, profile.Comfort},
		{"v20 basic", profile.Version20, profile.FamilyCII, profile.Basic},
		{"v1 extended", profile.Version1, profile.FamilyCII, profile.Extended},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := p.Identify(document(t, newInvoice(), tt.version, tt.family, tt.profile))
			require.NoError(t, res.Error)
			assert.Equal(t, tt.family, res.Family)
			assert.Equal(t, tt.version, res.Version)
			assert.Equal(t, tt.profile, res.Profile)
			assert.Nil(t, res.Invoice)
		})
	}
}

func TestIdentify_Unrecognized(t *testing.T) {
	p := processor.NewPipeline()

	tests := []struct {
		name   string
		data   []byte
		source string
	}{
		{"empty", nil, "input"},
		{"pdf container", []byte("%PDF-1.7\n1 0 obj\n"), "application/pdf"},
		{"foreign xml", []byte(`<?xml version="1.0"?><order xmlns="urn:example:order"/>`), "{urn:example:order}order"},
		{"text", []byte("Rechnung 2026-0815"), "stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := p.Identify(tt.data)

			var recognition *model.FormatRecognitionError
			require.True(t, errors.As(res.Error, &recognition), "got %v", res.Error)
			assert.Equal(t, tt.source, recognition.Source)
			assert.Equal(t, profile.FamilyUnknown, res.Family)
		})
	}
}

func TestLoad(t *testing.T) {
	p := processor.NewPipeline()

	res := p.Load(document(t, newInvoice(), profile.Version23, profile.FamilyCII, profile.Comfort))
	require.NoError(t, res.Error)
	require.NotNil(t, res.Invoice)

	assert.Equal(t, "RE-2026-0815", res.Invoice.InvoiceNo)
	assert.Equal(t, "Büromarkt Nord GmbH", res.Invoice.Seller.Name)
	assert.Equal(t, profile.Comfort, res.Profile)
}

func TestConvert_CIIToUBL(t *testing.T) {
	p := processor.NewPipeline()
	src := document(t, newInvoice(), profile.Version23, profile.FamilyCII, profile.XRechnung)

	res := p.Convert(src, processor.Target{Version: profile.Version23, Family: profile.FamilyUBL})
	require.NoError(t, res.Error)
	require.NotEmpty(t, res.Output)
	require.NotNil(t, res.Target)
	assert.Equal(t, profile.XRechnung, res.Target.Profile, "profile is taken from the source")
	assert.Equal(t, profile.FamilyCII, res.Family)

	out := p.Load(res.Output)
	require.NoError(t, out.Error)
	assert.Equal(t, profile.FamilyUBL, out.Family)
	assert.Equal(t, profile.XRechnung, out.Profile)
	assert.Equal(t, "RE-2026-0815", out.Invoice.InvoiceNo)
	assert.Equal(t, "991-01484-64", out.Invoice.BuyerReference)
	require.NotNil(t, out.Invoice.Totals)
	assert.True(t, decimal.RequireFromString("53.55").Equal(out.Invoice.Totals.DuePayable))
}

func TestConvert_ZeroTargetKeepsSource(t *testing.T) {
	p := processor.NewPipeline()
	src := document(t, newInvoice(), profile.Version20, profile.FamilyCII, profile.Extended)

	res := p.Convert(src, processor.Target{})
	require.NoError(t, res.Error)
	assert.Equal(t, processor.Target{Version: profile.Version20, Family: profile.FamilyCII, Profile: profile.Extended}, *res.Target)

	out := p.Identify(res.Output)
	require.NoError(t, out.Error)
	assert.Equal(t, profile.Version20, out.Version)
	assert.Equal(t, profile.Extended, out.Profile)
}

func TestConvert_UnsupportedTarget(t *testing.T) {
	p := processor.NewPipeline()
	src := document(t, newInvoice(), profile.Version23, profile.FamilyCII, profile.XRechnung)

	res := p.Convert(src, processor.Target{Version: profile.Version1, Family: profile.FamilyCII})

	var unsupported *model.UnsupportedConfigurationError
	assert.True(t, errors.As(res.Error, &unsupported), "got %v", res.Error)
	assert.Empty(t, res.Output)
}

func TestValidate(t *testing.T) {
	inv := newInvoice()
	inv.BuyerReference = ""
	inv.Seller.Contact.Phone = ""
	src := document(t, inv, profile.Version23, profile.FamilyCII, profile.Comfort)

	target := processor.Target{Profile: profile.XRechnung}

	t.Run("source profile passes", func(t *testing.T) {
		res := processor.NewPipeline().Validate(src, processor.Target{})
		assert.NoError(t, res.Error)
		assert.Equal(t, profile.Comfort, res.Target.Profile)
	})

	t.Run("strict", func(t *testing.T) {
		res := processor.NewPipeline().Validate(src, target)

		var viol *model.BusinessRuleViolation
		require.True(t, errors.As(res.Error, &viol), "got %v", res.Error)
	})

	t.Run("collect", func(t *testing.T) {
		res := processor.NewPipeline(processor.WithValidationMode(validation.Collect)).Validate(src, target)

		var list *model.ViolationList
		require.True(t, errors.As(res.Error, &list), "got %v", res.Error)
		assert.Contains(t, list.RuleIDs(), "BR-DE-15")
		assert.Contains(t, list.RuleIDs(), "BR-DE-6")
	})
}

func TestConvertBatch(t *testing.T) {
	p := processor.NewPipeline(processor.WithWorkers(2))
	good := document(t, newInvoice(), profile.Version23, profile.FamilyCII, profile.Comfort)

	inputs := []processor.Input{
		{Name: "a.xml", Data: good},
		{Name: "broken.xml", Data: []byte("<not-an-invoice/>")},
		{Name: "c.xml", Data: good},
	}

	results, err := p.ConvertBatch(context.Background(), inputs, processor.Target{Version: profile.Version23, Family: profile.FamilyUBL})
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, res := range results {
		require.NotNil(t, res)
		assert.Equal(t, inputs[i].Name, res.Name)
	}
	assert.NoError(t, results[0].Error)
	assert.NotEmpty(t, results[0].Output)
	assert.Error(t, results[1].Error)
	assert.NoError(t, results[2].Error)
}

func TestConvertBatch_Cancelled(t *testing.T) {
	p := processor.NewPipeline()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.ConvertBatch(ctx, []processor.Input{{Name: "a.xml", Data: []byte("<a/>")}}, processor.Target{})
	assert.ErrorIs(t, err, context.Canceled)
}
