package codec_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/zugferd/internal/codec"
	"github.com/rezonia/zugferd/internal/model"
	"github.com/rezonia/zugferd/internal/profile"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decp(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

// assertDecimal compares numerically; parsed values carry the wire scale
func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]interface{}{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func assertDecimalPtr(t *testing.T, want string, got *decimal.Decimal) {
	t.Helper()
	require.NotNil(t, got, "want %s, got nil", want)
	assertDecimal(t, want, *got)
}

func assertDay(t *testing.T, want, got *time.Time) {
	t.Helper()
	require.NotNil(t, got)
	assert.True(t, want.Equal(*got), "want %s, got %s", want, got)
}

// sampleInvoice is a two line invoice valid for every profile from Basic
// on, XRechnung included
func sampleInvoice() *model.Invoice {
	inv := model.New("471102", *day(2026, time.March, 5), model.CurrencyEUR)
	inv.BuyerReference = "04011000-12345-34"
	inv.AddNote("Rechnung gemäß Bestellung vom 01.03.2026.", model.SubjectCodeGeneral)
	inv.AddNote("Es bestehen Rabatt- und Bonusvereinbarungen.", model.SubjectCodeAdditional)

	inv.SetSeller(model.Party{
		ID:       &model.GlobalID{ID: "549910"},
		GlobalID: &model.GlobalID{ID: "4000001123452", Scheme: model.GlobalIDSchemeGLN},
		Name:     "Lieferant GmbH",
		Street:   "Lieferantenstraße 20",
		Postcode: "80333",
		City:     "München",
		Country:  model.CountryDE,
		TaxRegistrations: []model.TaxRegistration{
			{No: "201/113/40209", Scheme: model.TaxRegistrationFiscal},
			{No: "DE123456789", Scheme: model.TaxRegistrationVAT},
		},
		Contact:           &model.Contact{Name: "Hans Muster", Phone: "+49 89 1234567", Email: "hans.muster@lieferant.de"},
		ElectronicAddress: &model.ElectronicAddress{Address: "rechnung@lieferant.de", Scheme: model.ElectronicAddressEmail},
		LegalOrganization: &model.LegalOrganization{ID: &model.GlobalID{ID: "HRB 12345"}, TradingName: "Lieferant"},
	})
	inv.SetBuyer(model.Party{
		ID:          &model.GlobalID{ID: "GE2020211"},
		Name:        "Kunden AG Mitte",
		ContactName: "Abteilung Einkauf",
		Street:      "Kundenstraße 15",
		Postcode:    "69876",
		City:        "Frankfurt",
		Country:     model.CountryDE,
	})

	inv.SetBuyerOrderReferencedDocument("B-4711", nil)
	inv.SetContractReferencedDocument("V-2026-01", nil)
	inv.ActualDeliveryDate = day(2026, time.March, 1)

	inv.PaymentReference = "471102"
	inv.SetPaymentMeans(model.PaymentMeans{TypeCode: model.PaymentMeansSEPACreditTransfer, Information: "Überweisung"})
	inv.AddCreditorFinancialAccount(model.BankAccount{
		IBAN: "DE02120300000000202051",
		BIC:  "BYLADEM1001",
		Name: "Lieferant GmbH",
	})
	inv.AddTradePaymentTerms(model.PaymentTerms{
		Description: "Zahlbar innerhalb 30 Tagen netto",
		DueDate:     day(2026, time.April, 4),
	})

	_, _ = inv.AddTradeLineItem(model.TradeLineItem{
		Name:             "Trennblätter A4",
		SellerAssignedID: "TB100A4",
		GlobalID:         &model.GlobalID{ID: "4012345001235", Scheme: model.GlobalIDSchemeGTIN},
		BilledQuantity:   dec("20"),
		UnitCode:         model.QuantityPiece,
		GrossUnitPrice:   decp("9.90"),
		NetUnitPrice:     decp("9.90"),
		TaxType:          model.TaxTypeVAT,
		TaxCategory:      model.TaxCategoryStandard,
		TaxPercent:       dec("19"),
		LineTotalAmount:  decp("198.00"),
	})
	_, _ = inv.AddTradeLineItem(model.TradeLineItem{
		Name:            "Joghurt Banane",
		BilledQuantity:  dec("50"),
		UnitCode:        model.QuantityPiece,
		GrossUnitPrice:  decp("5.50"),
		NetUnitPrice:    decp("5.50"),
		TaxType:         model.TaxTypeVAT,
		TaxCategory:     model.TaxCategoryStandard,
		TaxPercent:      dec("19"),
		LineTotalAmount: decp("275.00"),
	})

	inv.AddApplicableTradeTax(model.Tax{
		TypeCode:     model.TaxTypeVAT,
		CategoryCode: model.TaxCategoryStandard,
		Percent:      dec("19"),
		BasisAmount:  dec("473.00"),
		TaxAmount:    dec("89.87"),
	})
	inv.SetTotals(model.Totals{
		LineTotal:  dec("473.00"),
		TaxBasis:   dec("473.00"),
		TaxTotal:   dec("89.87"),
		GrandTotal: dec("562.87"),
		DuePayable: dec("562.87"),
	})
	return inv
}

func tempFile(t *testing.T) *os.File {
	t.Helper()
	f, err := os.Create(filepath.Join(t.TempDir(), "invoice.xml"))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

// encode saves inv and returns the written document
func encode(t *testing.T, enc codec.Encoder, inv *model.Invoice, p profile.Profile) []byte {
	t.Helper()
	f := tempFile(t)
	require.NoError(t, enc.Save(inv, p, f))
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	return data
}

func decode(t *testing.T, d codec.Decoder, data []byte) (*model.Invoice, profile.Profile) {
	t.Helper()
	inv, p, err := d.Load(bytes.NewReader(data))
	require.NoError(t, err)
	require.NotNil(t, inv)
	return inv, p
}
