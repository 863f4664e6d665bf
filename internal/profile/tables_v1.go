package profile

const (
	v1All         = Basic | Comfort | Extended
	v1FromComfort = Comfort | Extended
)

var v1Table = &Table{
	Version:   Version1,
	Family:    FamilyCII,
	Supported: v1All,
	permitted: map[Field]Profile{
		FieldTestIndicator:   v1All,
		FieldDocumentID:      v1All,
		FieldDocumentName:    v1All,
		FieldTypeCode:        v1All,
		FieldIssueDate:       v1All,
		FieldNote:            v1All,
		FieldNoteSubjectCode: v1FromComfort,
		FieldNoteContentCode: Extended,

		FieldSeller:   v1All,
		FieldBuyer:    v1All,
		FieldShipTo:   v1FromComfort,
		FieldShipFrom: Extended,
		FieldPayee:    v1FromComfort,
		FieldInvoicee: v1FromComfort,

		FieldPartyID:              v1FromComfort,
		FieldPartyGlobalID:        v1FromComfort,
		FieldPartyName:            v1All,
		FieldPartyContact:         v1FromComfort,
		FieldPartyContactFax:      v1FromComfort,
		FieldPartyAddress:         v1All,
		FieldPartyAddressDetail:   v1All,
		FieldPartyTaxRegistration: v1All,

		FieldBuyerReference:      v1FromComfort,
		FieldBuyerOrderReference: v1FromComfort,
		FieldContractReference:   v1FromComfort,
		FieldAdditionalReference: v1FromComfort,
		FieldDeliveryDate:        v1All,
		FieldDespatchAdvice:      v1FromComfort,
		FieldDeliveryNote:        v1FromComfort,

		FieldPaymentReference:        v1All,
		FieldCurrency:                v1All,
		FieldPaymentMeans:            v1All,
		FieldPaymentMeansInformation: v1FromComfort,
		FieldDebitorAccount:          v1All,
		FieldCreditorAccount:         v1All,
		FieldAccountName:             v1FromComfort,
		FieldBIC:                     v1All,
		FieldBankName:                v1FromComfort,
		FieldTax:                     v1All,
		FieldTaxExemptionReason:      v1FromComfort,
		FieldBillingPeriod:           v1FromComfort,
		FieldAllowanceCharge:         v1FromComfort,
		FieldAllowanceChargeBasis:    v1FromComfort,
		FieldAllowanceChargeReason:   v1FromComfort,
		FieldLogisticsServiceCharge:  v1FromComfort,
		FieldPaymentTerms:            v1FromComfort,
		FieldPaymentTermsDiscount:    Extended,

		FieldTotalLine:       v1All,
		FieldTotalCharge:     v1All,
		FieldTotalAllowance:  v1All,
		FieldTotalTaxBasis:   v1All,
		FieldTotalTax:        v1All,
		FieldTotalGrand:      v1All,
		FieldTotalPrepaid:    v1FromComfort,
		FieldTotalDuePayable: v1FromComfort,

		FieldLineItem:                v1All,
		FieldLineNote:                v1FromComfort,
		FieldLineProductGlobalID:     v1All,
		FieldLineSellerAssignedID:    v1FromComfort,
		FieldLineBuyerAssignedID:     v1FromComfort,
		FieldLineProductName:         v1All,
		FieldLineProductDescription:  v1FromComfort,
		FieldLineBuyerOrderReference: v1FromComfort,
		FieldLineContractReference:   v1FromComfort,
		FieldLineDeliveryNote:        Extended,
		FieldLineDeliveryDate:        Extended,
		FieldLineGrossPrice:          v1FromComfort,
		FieldLineGrossPriceAllowance: v1FromComfort,
		FieldLineNetPrice:            v1FromComfort,
		FieldLineBasisQuantity:       v1FromComfort,
		FieldLineBilledQuantity:      v1All,
		FieldLineTax:                 v1FromComfort,
		FieldLineBillingPeriod:       Extended,
		FieldLineAllowanceCharge:     Extended,
		FieldLineTotal:               v1All,
	},
	mandatory: map[Field]Requirement{
		FieldDocumentID:    {v1All, "BR-02", "an invoice shall have an invoice number"},
		FieldIssueDate:     {v1All, "BR-03", "an invoice shall have an invoice issue date"},
		FieldTypeCode:      {v1All, "BR-04", "an invoice shall have an invoice type code"},
		FieldCurrency:      {v1All, "BR-05", "an invoice shall have an invoice currency code"},
		FieldSellerName:    {v1All, "BR-06", "an invoice shall contain the seller name"},
		FieldBuyerName:     {v1All, "BR-07", "an invoice shall contain the buyer name"},
		FieldSellerCountry: {v1All, "BR-09", "the seller postal address shall contain a country code"},
		FieldTotalGrand:    {v1All, "BR-14", "an invoice shall have the invoice total amount with VAT"},
		FieldLineItem:      {v1All, "BR-16", "an invoice shall have at least one invoice line"},
	},
}
