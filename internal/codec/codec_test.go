package codec_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/zugferd/internal/codec"
	"github.com/rezonia/zugferd/internal/model"
	"github.com/rezonia/zugferd/internal/profile"
	"github.com/rezonia/zugferd/internal/validation"
)

// assertCore checks what every version and profile from Basic on carries
func assertCore(t *testing.T, got *model.Invoice) {
	t.Helper()

	assert.Equal(t, "471102", got.InvoiceNo)
	assert.Equal(t, model.InvoiceTypeInvoice, got.Type)
	assert.Equal(t, model.CurrencyEUR, got.Currency)
	assertDay(t, day(2026, time.March, 5), got.InvoiceDate)

	require.NotNil(t, got.Seller)
	assert.Equal(t, "Lieferant GmbH", got.Seller.Name)
	assert.Equal(t, "Lieferantenstraße 20", got.Seller.Street)
	assert.Equal(t, "80333", got.Seller.Postcode)
	assert.Equal(t, "München", got.Seller.City)
	assert.Equal(t, model.CountryDE, got.Seller.Country)

	require.NotNil(t, got.Buyer)
	assert.Equal(t, "Kunden AG Mitte", got.Buyer.Name)
	assert.Equal(t, "Abteilung Einkauf", got.Buyer.ContactName)
	assert.Equal(t, "Kundenstraße 15", got.Buyer.Street)

	require.Len(t, got.LineItems, 2)
	first := got.LineItems[0]
	assert.Equal(t, "1", first.LineID)
	assert.Equal(t, "Trennblätter A4", first.Name)
	assertDecimal(t, "20", first.BilledQuantity)
	assert.Equal(t, model.QuantityPiece, first.UnitCode)
	assertDecimalPtr(t, "9.90", first.NetUnitPrice)
	assert.Equal(t, model.TaxCategoryStandard, first.TaxCategory)
	assertDecimal(t, "19", first.TaxPercent)
	assertDecimalPtr(t, "198.00", first.LineTotalAmount)
	assert.Equal(t, "2", got.LineItems[1].LineID)
	assertDecimalPtr(t, "275.00", got.LineItems[1].LineTotalAmount)

	require.Len(t, got.Taxes, 1)
	assert.Equal(t, model.TaxTypeVAT, got.Taxes[0].TypeCode)
	assert.Equal(t, model.TaxCategoryStandard, got.Taxes[0].CategoryCode)
	assertDecimal(t, "19", got.Taxes[0].Percent)
	assertDecimal(t, "473.00", got.Taxes[0].BasisAmount)
	assertDecimal(t, "89.87", got.Taxes[0].TaxAmount)

	require.NotNil(t, got.Totals)
	assertDecimal(t, "473.00", got.Totals.LineTotal)
	assertDecimal(t, "89.87", got.Totals.TaxTotal)
	assertDecimal(t, "562.87", got.Totals.GrandTotal)

	require.NotNil(t, got.PaymentMeans)
	assert.Equal(t, model.PaymentMeansSEPACreditTransfer, got.PaymentMeans.TypeCode)
	require.NotEmpty(t, got.CreditorAccounts)
	assert.Equal(t, "DE02120300000000202051", got.CreditorAccounts[0].IBAN)
	assert.Equal(t, "BYLADEM1001", got.CreditorAccounts[0].BIC)
}

func TestRoundTrip_V1Comfort(t *testing.T) {
	data := encode(t, codec.NewV1Encoder(), sampleInvoice(), profile.Comfort)
	assert.Contains(t, string(data), "rsm:CrossIndustryDocument")
	assert.Contains(t, string(data), profile.GuidelineV1Comfort)

	got, p := decode(t, codec.NewV1Decoder(), data)
	assert.Equal(t, profile.Comfort, p)
	assertCore(t, got)

	assertDecimal(t, "562.87", got.Totals.DuePayable)
	assert.Equal(t, "04011000-12345-34", got.BuyerReference)
	require.NotNil(t, got.OrderReference)
	assert.Equal(t, "B-4711", got.OrderReference.ID)
	assert.Equal(t, "471102", got.PaymentReference)
	assert.Equal(t, "Überweisung", got.PaymentMeans.Information)
	require.NotNil(t, got.Seller.Contact)
	assert.Equal(t, "hans.muster@lieferant.de", got.Seller.Contact.Email)

	// not part of the first generation
	assert.Nil(t, got.Seller.ElectronicAddress)
	assert.Nil(t, got.Seller.LegalOrganization)
}

func TestRoundTrip_V20Extended(t *testing.T) {
	inv := sampleInvoice()
	inv.Name = "Rechnung"
	inv.Seller.Contact.Fax = "+49 89 1234599"
	inv.SetShipFrom(model.Party{Name: "Lager Nord", City: "Hamburg", Country: model.CountryDE})
	inv.SetDeliveryNoteReferencedDocument("LS-9001", day(2026, time.February, 28))
	inv.LineItems[0].ActualDeliveryDate = day(2026, time.February, 27)
	days := 10
	inv.PaymentTerms[0].DiscountDays = &days
	inv.PaymentTerms[0].DiscountPercent = decp("2")
	inv.PaymentTerms[0].DiscountBasis = decp("562.87")
	inv.AddLogisticsServiceCharge(dec("4.90"), "Versandkosten", model.TaxTypeVAT, model.TaxCategoryStandard, dec("19"))

	data := encode(t, codec.NewV20Encoder(), inv, profile.Extended)

	require.True(t, codec.NewV20Decoder().Recognizes(bytes.NewReader(data)))
	got, p := decode(t, codec.NewV20Decoder(), data)
	assert.Equal(t, profile.Extended, p)
	assertCore(t, got)

	assert.Equal(t, "Rechnung", got.Name)
	assert.Equal(t, "+49 89 1234599", got.Seller.Contact.Fax)
	require.NotNil(t, got.ShipFrom)
	assert.Equal(t, "Lager Nord", got.ShipFrom.Name)
	require.NotNil(t, got.DeliveryNoteReference)
	assert.Equal(t, "LS-9001", got.DeliveryNoteReference.ID)
	assertDay(t, day(2026, time.February, 28), got.DeliveryNoteReference.IssueDate)
	assertDay(t, day(2026, time.February, 27), got.LineItems[0].ActualDeliveryDate)

	require.Len(t, got.PaymentTerms, 1)
	require.NotNil(t, got.PaymentTerms[0].DiscountDays)
	assert.Equal(t, 10, *got.PaymentTerms[0].DiscountDays)
	assertDecimalPtr(t, "2", got.PaymentTerms[0].DiscountPercent)
	assertDecimalPtr(t, "562.87", got.PaymentTerms[0].DiscountBasis)

	require.Len(t, got.ServiceCharges, 1)
	assert.Equal(t, "Versandkosten", got.ServiceCharges[0].Description)
	assertDecimal(t, "4.90", got.ServiceCharges[0].Amount)
	assertDecimalPtr(t, "19", got.ServiceCharges[0].TaxPercent)
}

func TestRoundTrip_AllowanceCurrencyOverride(t *testing.T) {
	tests := []struct {
		name    string
		enc     codec.Encoder
		dec     codec.Decoder
		profile profile.Profile
	}{
		{"zugferd 1.0", codec.NewV1Encoder(), codec.NewV1Decoder(), profile.Extended},
		{"factur-x cii", codec.NewV23Encoder(), codec.NewCIIDecoder(), profile.Extended},
		{"xrechnung ubl", codec.NewUBLEncoder(), codec.NewUBLDecoder(), profile.XRechnung},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := sampleInvoice()
			inv.AddTradeAllowanceCharge(true, nil, dec("10.00"), "Treuerabatt", model.TaxTypeVAT, model.TaxCategoryStandard, dec("19"))
			inv.AddTradeAllowanceCharge(true, nil, dec("5.00"), "Messerabatt", model.TaxTypeVAT, model.TaxCategoryStandard, dec("19"))
			inv.AllowanceCharges[1].Currency = model.CurrencyUSD

			data := encode(t, tt.enc, inv, tt.profile)
			assert.Contains(t, string(data), `currencyID="USD"`)

			got, _ := decode(t, tt.dec, data)
			require.Len(t, got.AllowanceCharges, 2)
			assert.Empty(t, got.AllowanceCharges[0].Currency)
			assert.Equal(t, model.CurrencyUSD, got.AllowanceCharges[1].Currency)
			assertDecimal(t, "5.00", got.AllowanceCharges[1].ActualAmount)
			assert.Equal(t, model.CurrencyEUR, got.Currency)
		})
	}
}

func TestRoundTrip_V21ComfortReadBySharedDecoder(t *testing.T) {
	data := encode(t, codec.NewV21Encoder(), sampleInvoice(), profile.Comfort)
	assert.Contains(t, string(data), profile.GuidelineEN16931)

	assert.False(t, codec.NewV20Decoder().Recognizes(bytes.NewReader(data)))
	assert.True(t, codec.NewCIIDecoder().Recognizes(bytes.NewReader(data)))

	got, p := decode(t, codec.NewCIIDecoder(), data)
	assert.Equal(t, profile.Comfort, p)
	assertCore(t, got)
	assert.Equal(t, "TB100A4", got.LineItems[0].SellerAssignedID)
}

func TestRoundTrip_V23XRechnung(t *testing.T) {
	data := encode(t, codec.NewV23Encoder(), sampleInvoice(), profile.XRechnung)
	assert.Contains(t, string(data), profile.GuidelineXRechnung)

	got, p := decode(t, codec.NewCIIDecoder(), data)
	assert.Equal(t, profile.XRechnung, p)
	assertCore(t, got)

	require.Len(t, got.Notes, 2)
	assert.Equal(t, model.SubjectCodeGeneral, got.Notes[0].SubjectCode)
	assert.Equal(t, "Rechnung gemäß Bestellung vom 01.03.2026.", got.Notes[0].Content)
	assert.Equal(t, model.SubjectCodeAdditional, got.Notes[1].SubjectCode)

	seller := got.Seller
	require.NotNil(t, seller.ID)
	assert.Equal(t, "549910", seller.ID.ID)
	require.NotNil(t, seller.GlobalID)
	assert.Equal(t, model.GlobalIDSchemeGLN, seller.GlobalID.Scheme)
	require.NotNil(t, seller.ElectronicAddress)
	assert.Equal(t, model.ElectronicAddress{Address: "rechnung@lieferant.de", Scheme: model.ElectronicAddressEmail}, *seller.ElectronicAddress)
	require.NotNil(t, seller.LegalOrganization)
	assert.Equal(t, "HRB 12345", seller.LegalOrganization.ID.ID)
	assert.Equal(t, "Lieferant", seller.LegalOrganization.TradingName)
	assert.Equal(t, []model.TaxRegistration{
		{No: "201/113/40209", Scheme: model.TaxRegistrationFiscal},
		{No: "DE123456789", Scheme: model.TaxRegistrationVAT},
	}, seller.TaxRegistrations)
	assert.Equal(t, &model.Contact{Name: "Hans Muster", Phone: "+49 89 1234567", Email: "hans.muster@lieferant.de"}, seller.Contact)

	require.NotNil(t, got.ContractReference)
	assert.Equal(t, "V-2026-01", got.ContractReference.ID)
	assertDay(t, day(2026, time.March, 1), got.ActualDeliveryDate)
	require.Len(t, got.PaymentTerms, 1)
	assert.Equal(t, "Zahlbar innerhalb 30 Tagen netto", got.PaymentTerms[0].Description)
	assertDay(t, day(2026, time.April, 4), got.PaymentTerms[0].DueDate)

	first := got.LineItems[0]
	require.NotNil(t, first.GlobalID)
	assert.Equal(t, model.GlobalID{ID: "4012345001235", Scheme: model.GlobalIDSchemeGTIN}, *first.GlobalID)
	assertDecimalPtr(t, "9.90", first.GrossUnitPrice)
}

func TestRoundTrip_UBLXRechnung(t *testing.T) {
	data := encode(t, codec.NewUBLEncoder(), sampleInvoice(), profile.XRechnung)
	assert.Contains(t, string(data), "<Invoice")
	assert.Contains(t, string(data), "#AAI#Rechnung")

	got, p := decode(t, codec.NewUBLDecoder(), data)
	assert.Equal(t, profile.XRechnung, p)
	assertCore(t, got)

	assert.Empty(t, got.BusinessProcess)
	require.Len(t, got.Notes, 2)
	assert.Equal(t, model.Note{Content: "Rechnung gemäß Bestellung vom 01.03.2026.", SubjectCode: model.SubjectCodeGeneral}, got.Notes[0])

	seller := got.Seller
	require.NotNil(t, seller.ID)
	assert.Equal(t, "549910", seller.ID.ID)
	require.NotNil(t, seller.GlobalID)
	assert.Equal(t, model.GlobalIDSchemeGLN, seller.GlobalID.Scheme)
	require.NotNil(t, seller.LegalOrganization)
	assert.Equal(t, "HRB 12345", seller.LegalOrganization.ID.ID)
	assert.Equal(t, "Lieferant", seller.LegalOrganization.TradingName)
	assert.Equal(t, []model.TaxRegistration{
		{No: "201/113/40209", Scheme: model.TaxRegistrationFiscal},
		{No: "DE123456789", Scheme: model.TaxRegistrationVAT},
	}, seller.TaxRegistrations)
	require.NotNil(t, seller.ElectronicAddress)
	assert.Equal(t, model.ElectronicAddressEmail, seller.ElectronicAddress.Scheme)

	require.NotNil(t, got.OrderReference)
	assert.Equal(t, "B-4711", got.OrderReference.ID)
	require.NotNil(t, got.ContractReference)
	assert.Equal(t, "V-2026-01", got.ContractReference.ID)
	assert.Equal(t, "471102", got.PaymentReference)
	assert.Equal(t, "Überweisung", got.PaymentMeans.Information)
	assert.Equal(t, "Lieferant GmbH", got.CreditorAccounts[0].Name)

	require.Len(t, got.PaymentTerms, 1)
	assert.Equal(t, "Zahlbar innerhalb 30 Tagen netto", got.PaymentTerms[0].Description)
	assertDay(t, day(2026, time.April, 4), got.PaymentTerms[0].DueDate)

	first := got.LineItems[0]
	assertDecimalPtr(t, "9.90", first.GrossUnitPrice)
	assert.Empty(t, first.PriceAllowanceCharges)
	assert.Equal(t, "TB100A4", first.SellerAssignedID)
	require.NotNil(t, first.GlobalID)
	assert.Equal(t, model.GlobalIDSchemeGTIN, first.GlobalID.Scheme)
}

func TestRoundTrip_UBLCreditNote(t *testing.T) {
	inv := sampleInvoice()
	inv.Type = model.InvoiceTypeCreditNote

	data := encode(t, codec.NewUBLEncoder(), inv, profile.Comfort)
	assert.Contains(t, string(data), "<CreditNote")
	assert.Contains(t, string(data), "cbc:CreditedQuantity")
	assert.NotContains(t, string(data), "cac:InvoiceLine")

	got, p := decode(t, codec.NewUBLDecoder(), data)
	assert.Equal(t, profile.Comfort, p)
	assert.Equal(t, model.InvoiceTypeCreditNote, got.Type)
	require.Len(t, got.LineItems, 2)
	assertDecimal(t, "20", got.LineItems[0].BilledQuantity)
	assert.Equal(t, model.QuantityPiece, got.LineItems[0].UnitCode)

	// credit notes carry no header due date
	require.Len(t, got.PaymentTerms, 1)
	assert.Nil(t, got.PaymentTerms[0].DueDate)
}

func sepaInvoice() *model.Invoice {
	inv := sampleInvoice()
	inv.SetPaymentMeansSEPADirectDebit("DE98ZZZ09999999999", "REF-A-123", "Lastschrift")
	inv.CreditorAccounts = nil
	inv.AddDebitorFinancialAccount(model.BankAccount{IBAN: "DE21860000000086001055"})
	return inv
}

func TestRoundTrip_SEPADirectDebit(t *testing.T) {
	tests := []struct {
		name string
		enc  codec.Encoder
		dec  codec.Decoder
	}{
		{"cii", codec.NewV23Encoder(), codec.NewCIIDecoder()},
		{"ubl", codec.NewUBLEncoder(), codec.NewUBLDecoder()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := encode(t, tt.enc, sepaInvoice(), profile.Comfort)
			got, _ := decode(t, tt.dec, data)

			require.NotNil(t, got.PaymentMeans)
			assert.Equal(t, model.PaymentMeansSEPADirectDebit, got.PaymentMeans.TypeCode)
			assert.Equal(t, "DE98ZZZ09999999999", got.PaymentMeans.SEPACreditorIdentifier)
			assert.Equal(t, "REF-A-123", got.PaymentMeans.SEPAMandateReference)
			assert.Equal(t, "DE98ZZZ09999999999", got.CreditorReferenceID)
			require.Len(t, got.DebitorAccounts, 1)
			assert.Equal(t, "DE21860000000086001055", got.DebitorAccounts[0].IBAN)
			assert.Empty(t, got.CreditorAccounts)
		})
	}
}

func TestSave_CIIMandateGoesToPaymentTerms(t *testing.T) {
	data := encode(t, codec.NewV23Encoder(), sepaInvoice(), profile.Comfort)
	assert.Contains(t, string(data), "<ram:DirectDebitMandateID>REF-A-123</ram:DirectDebitMandateID>")
	assert.Contains(t, string(data), "<ram:CreditorReferenceID>DE98ZZZ09999999999</ram:CreditorReferenceID>")
}

func TestRoundTrip_Attachment(t *testing.T) {
	inv := sampleInvoice()
	content := []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")
	inv.AddAdditionalReferencedDocument(model.AdditionalReferencedDocument{
		ID:         "ANL-1",
		TypeCode:   model.ReferencedDocumentInvoiceDataSheet,
		Name:       "Stundenzettel",
		Attachment: content,
		Filename:   "stunden.pdf",
	})

	tests := []struct {
		name string
		enc  codec.Encoder
		dec  codec.Decoder
	}{
		{"cii", codec.NewV23Encoder(), codec.NewCIIDecoder()},
		{"ubl", codec.NewUBLEncoder(), codec.NewUBLDecoder()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := decode(t, tt.dec, encode(t, tt.enc, inv, profile.Comfort))

			require.Len(t, got.AdditionalReferences, 1)
			doc := got.AdditionalReferences[0]
			assert.Equal(t, "ANL-1", doc.ID)
			assert.Equal(t, model.ReferencedDocumentInvoiceDataSheet, doc.TypeCode)
			assert.Equal(t, "Stundenzettel", doc.Name)
			assert.Equal(t, content, doc.Attachment)
			assert.Equal(t, "application/pdf", doc.MimeType)
			assert.Equal(t, "stunden.pdf", doc.Filename)
		})
	}
}

func TestSave_BasicCommentLine(t *testing.T) {
	inv := sampleInvoice()
	_, err := inv.AddTradeLineCommentItem("", "Lieferung wie vereinbart")
	require.NoError(t, err)

	data := encode(t, codec.NewV23Encoder(), inv, profile.Basic)
	assert.Contains(t, string(data), ">TEXT<")

	got, p := decode(t, codec.NewCIIDecoder(), data)
	assert.Equal(t, profile.Basic, p)
	require.Len(t, got.LineItems, 3)

	comment := got.LineItems[2]
	assert.Equal(t, "3", comment.LineID)
	assert.True(t, comment.IsCommentLine())
	assert.Empty(t, comment.Name)
	assert.Nil(t, comment.NetUnitPrice)
	require.Len(t, comment.Notes, 1)
	assert.Equal(t, "Lieferung wie vereinbart", comment.Notes[0].Content)
}

func TestSave_UBLCommentLine(t *testing.T) {
	inv := sampleInvoice()
	_, err := inv.AddTradeLineCommentItem("", "nur ein Kommentar")
	require.NoError(t, err)

	data := encode(t, codec.NewUBLEncoder(), inv, profile.XRechnung)
	doc := string(data)
	assert.Contains(t, doc, "<cbc:Name>TEXT</cbc:Name>")
	assert.NotContains(t, doc, "<cac:Item/>")
	assert.Contains(t, doc, `<cbc:LineExtensionAmount currencyID="EUR">0.00</cbc:LineExtensionAmount>`)

	got, _ := decode(t, codec.NewUBLDecoder(), data)
	require.Len(t, got.LineItems, 3)
	comment := got.LineItems[2]
	assert.True(t, comment.IsCommentLine())
	assert.Empty(t, comment.Name)
	assert.Nil(t, comment.LineTotalAmount)
	assert.Nil(t, comment.NetUnitPrice)
	require.Len(t, comment.Notes, 1)
	assert.Equal(t, "nur ein Kommentar", comment.Notes[0].Content)
}

func TestSave_GatesByProfile(t *testing.T) {
	tests := []struct {
		name     string
		profile  profile.Profile
		present  []string
		excluded []string
	}{
		{
			name:     "minimum has no lines",
			profile:  profile.Minimum,
			present:  []string{"ram:GrandTotalAmount", "ram:SellerTradeParty"},
			excluded: []string{"ram:IncludedSupplyChainTradeLineItem", "ram:IncludedNote", "ram:DefinedTradeContact"},
		},
		{
			name:     "basic has lines but no contact",
			profile:  profile.Basic,
			present:  []string{"ram:IncludedSupplyChainTradeLineItem", "ram:IncludedNote"},
			excluded: []string{"ram:DefinedTradeContact", "ram:SellerAssignedID"},
		},
		{
			name:     "comfort omits extended only data",
			profile:  profile.Comfort,
			present:  []string{"ram:DefinedTradeContact", "ram:SellerAssignedID"},
			excluded: []string{"ram:FaxUniversalCommunication", "ram:ContentCode"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := sampleInvoice()
			inv.Seller.Contact.Fax = "+49 89 1234599"
			inv.Notes[0].ContentCode = "ST1"

			doc := string(encode(t, codec.NewV23Encoder(), inv, tt.profile))
			for _, tag := range tt.present {
				assert.Contains(t, doc, "<"+tag, tag)
			}
			for _, tag := range tt.excluded {
				assert.NotContains(t, doc, "<"+tag, tag)
			}
		})
	}
}

func TestSave_RestoresStreamPosition(t *testing.T) {
	f := tempFile(t)
	_, err := f.WriteString("PREFIX")
	require.NoError(t, err)

	require.NoError(t, codec.NewV23Encoder().Save(sampleInvoice(), profile.Comfort, f))

	pos, err := f.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(6), pos)

	res, err := codec.NewDispatcher().Load(f)
	require.NoError(t, err)
	assert.Equal(t, "471102", res.Invoice.InvoiceNo)
	assert.Equal(t, profile.Comfort, res.Profile)
}

func TestSave_Errors(t *testing.T) {
	t.Run("nil stream", func(t *testing.T) {
		err := codec.NewV23Encoder().Save(sampleInvoice(), profile.Comfort, nil)

		var streamErr *model.StreamAccessError
		assert.True(t, errors.As(err, &streamErr))
	})

	t.Run("unsupported profile", func(t *testing.T) {
		tests := []struct {
			name    string
			enc     codec.Encoder
			profile profile.Profile
		}{
			{"v1 minimum", codec.NewV1Encoder(), profile.Minimum},
			{"v20 xrechnung 3", codec.NewV20Encoder(), profile.XRechnung},
			{"ubl basic", codec.NewUBLEncoder(), profile.Basic},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := tempFile(t)
				err := tt.enc.Save(sampleInvoice(), tt.profile, f)

				var unsupported *model.UnsupportedConfigurationError
				assert.True(t, errors.As(err, &unsupported), "got %v", err)

				info, statErr := f.Stat()
				require.NoError(t, statErr)
				assert.Zero(t, info.Size(), "nothing is written on failure")
			})
		}
	})

	t.Run("non VAT tax below extended", func(t *testing.T) {
		inv := sampleInvoice()
		inv.LineItems[0].TaxType = model.TaxTypeInsurance

		err := codec.NewV23Encoder().Save(inv, profile.Basic, tempFile(t))
		var viol *model.BusinessRuleViolation
		require.True(t, errors.As(err, &viol), "got %v", err)
		assert.Equal(t, "ZF-TAX-01", viol.RuleID)

		assert.NoError(t, codec.NewV23Encoder().Save(inv, profile.Extended, tempFile(t)))
	})

	t.Run("collect mode", func(t *testing.T) {
		inv := sampleInvoice()
		inv.BuyerReference = ""
		inv.Seller.Contact.Phone = ""

		enc := codec.NewV23Encoder(codec.WithValidationMode(validation.Collect))
		err := enc.Save(inv, profile.XRechnung, tempFile(t))

		var list *model.ViolationList
		require.True(t, errors.As(err, &list), "got %v", err)
		assert.ElementsMatch(t, []string{"BR-DE-15", "BR-DE-6"}, list.RuleIDs())
	})
}

func TestNewEncoderAndDecoder(t *testing.T) {
	tests := []struct {
		name    string
		version profile.Version
		family  profile.Family
		ok      bool
	}{
		{"v1", profile.Version1, profile.FamilyCII, true},
		{"v20", profile.Version20, profile.FamilyCII, true},
		{"v21", profile.Version21, profile.FamilyCII, true},
		{"v23", profile.Version23, profile.FamilyCII, true},
		{"ubl", profile.Version23, profile.FamilyUBL, true},
		{"ubl 2.0", profile.Version20, profile.FamilyUBL, false},
		{"unknown version", profile.VersionUnknown, profile.FamilyCII, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, encErr := codec.NewEncoder(tt.version, tt.family)
			dec, decErr := codec.NewDecoder(tt.version, tt.family)
			if !tt.ok {
				var unsupported *model.UnsupportedConfigurationError
				assert.True(t, errors.As(encErr, &unsupported))
				assert.True(t, errors.As(decErr, &unsupported))
				return
			}
			require.NoError(t, encErr)
			require.NoError(t, decErr)
			assert.Equal(t, tt.version, enc.Version())
			assert.Equal(t, tt.family, enc.Family())
			assert.Equal(t, tt.family, dec.Family())
		})
	}
}

func TestRoundTrip_EveryVersionThroughFactories(t *testing.T) {
	tests := []struct {
		version profile.Version
		family  profile.Family
		profile profile.Profile
	}{
		{profile.Version1, profile.FamilyCII, profile.Extended},
		{profile.Version20, profile.FamilyCII, profile.XRechnung1},
		{profile.Version21, profile.FamilyCII, profile.BasicWL},
		{profile.Version23, profile.FamilyCII, profile.XRechnung1},
		{profile.Version23, profile.FamilyUBL, profile.XRechnung1},
	}

	for _, tt := range tests {
		t.Run(tt.version.String()+" "+tt.family.String()+" "+tt.profile.String(), func(t *testing.T) {
			enc, err := codec.NewEncoder(tt.version, tt.family)
			require.NoError(t, err)
			dec, err := codec.NewDecoder(tt.version, tt.family)
			require.NoError(t, err)

			data := encode(t, enc, sampleInvoice(), tt.profile)
			got, p := decode(t, dec, data)
			assert.Equal(t, tt.profile, p)
			assert.Equal(t, "471102", got.InvoiceNo)
			assertDecimal(t, "562.87", got.Totals.GrandTotal)
		})
	}
}

func TestRoundTrip_ReEncodeIsStable(t *testing.T) {
	first := encode(t, codec.NewV23Encoder(), sampleInvoice(), profile.Extended)
	got, _ := decode(t, codec.NewCIIDecoder(), first)
	second := encode(t, codec.NewV23Encoder(), got, profile.Extended)

	assert.Equal(t, strings.TrimSpace(string(first)), strings.TrimSpace(string(second)))
}
