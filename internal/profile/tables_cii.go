package profile

// tradingName is the documented exception to profile nesting: the trading
// name (BT-28) is allowed from BasicWL on but not in XRechnung1.
const tradingName = BasicWL | Basic | Comfort | Extended | XRechnung

var ciiFields = map[Field]Profile{
	FieldTestIndicator:   All,
	FieldBusinessProcess: All,
	FieldDocumentID:      All,
	FieldDocumentName:    Extended,
	FieldTypeCode:        All,
	FieldIssueDate:       All,
	FieldNote:            FromBasicWL,
	FieldNoteSubjectCode: FromBasicWL,
	FieldNoteContentCode: Extended,

	FieldSeller:   All,
	FieldBuyer:    All,
	FieldShipTo:   FromBasicWL,
	FieldShipFrom: Extended,
	FieldPayee:    FromBasicWL,
	FieldInvoicee: Extended,
	FieldInvoicer: Extended,

	FieldPartyID:                FromBasicWL,
	FieldPartyGlobalID:          FromBasicWL,
	FieldPartyName:              All,
	FieldPartyDescription:       FromComfort,
	FieldPartyLegalOrg:          All,
	FieldPartyTradingName:       tradingName,
	FieldPartyContact:           FromComfort,
	FieldPartyContactFax:        Extended,
	FieldPartyAddress:           All,
	FieldPartyAddressDetail:     FromBasicWL,
	FieldPartyElectronicAddress: FromBasicWL,
	FieldPartyTaxRegistration:   All,

	FieldBuyerReference:       All,
	FieldBuyerOrderReference:  All,
	FieldSellerOrderReference: FromComfort,
	FieldContractReference:    FromBasicWL,
	FieldAdditionalReference:  FromComfort,
	FieldAttachment:           FromComfort,
	FieldProcuringProject:     FromComfort,
	FieldDeliveryDate:         FromBasicWL,
	FieldDespatchAdvice:       FromBasicWL,
	FieldDeliveryNote:         Extended,

	FieldCreditorReference:       FromBasicWL,
	FieldPaymentReference:        FromBasicWL,
	FieldTaxCurrency:             FromBasicWL,
	FieldCurrency:                All,
	FieldPaymentMeans:            FromBasicWL,
	FieldPaymentMeansInformation: FromComfort,
	FieldFinancialCard:           FromComfort,
	FieldDebitorAccount:          FromBasicWL,
	FieldCreditorAccount:         FromBasicWL,
	FieldAccountName:             FromComfort,
	FieldBIC:                     FromComfort,
	FieldBankName:                Extended,
	FieldTax:                     FromBasicWL,
	FieldTaxExemptionReason:      FromBasicWL,
	FieldTaxExemptionReasonCode:  FromBasicWL,
	FieldTaxAllowanceChargeBasis: Extended,
	FieldTaxPointDate:            FromBasicWL,
	FieldBillingPeriod:           FromBasicWL,
	FieldAllowanceCharge:         FromBasicWL,
	FieldAllowanceChargeBasis:    FromBasicWL,
	FieldAllowanceChargePercent:  FromBasicWL,
	FieldAllowanceChargeReason:   FromBasicWL,
	FieldLogisticsServiceCharge:  Extended,
	FieldPaymentTerms:            FromBasicWL,
	FieldPaymentTermsDiscount:    Extended,
	FieldDirectDebitMandate:      FromBasicWL,
	FieldInvoiceReference:        FromBasicWL,
	FieldReceivableAccount:       FromBasicWL,

	FieldTotalLine:       FromBasicWL,
	FieldTotalCharge:     FromBasicWL,
	FieldTotalAllowance:  FromBasicWL,
	FieldTotalTaxBasis:   All,
	FieldTotalTax:        All,
	FieldTotalRounding:   FromComfort,
	FieldTotalGrand:      All,
	FieldTotalPrepaid:    FromBasicWL,
	FieldTotalDuePayable: All,

	FieldLineItem:                FromBasic,
	FieldLineNote:                FromBasic,
	FieldLineProductGlobalID:     FromBasic,
	FieldLineSellerAssignedID:    FromComfort,
	FieldLineBuyerAssignedID:     FromComfort,
	FieldLineProductName:         FromBasic,
	FieldLineProductDescription:  FromComfort,
	FieldLineBuyerOrderReference: FromComfort,
	FieldLineContractReference:   Extended,
	FieldLineAdditionalReference: Extended,
	FieldLineDeliveryNote:        Extended,
	FieldLineDeliveryDate:        Extended,
	FieldLineGrossPrice:          FromBasic,
	FieldLineGrossPriceAllowance: FromBasic,
	FieldLineNetPrice:            FromBasic,
	FieldLineBasisQuantity:       FromBasic,
	FieldLineBilledQuantity:      FromBasic,
	FieldLineTax:                 FromBasic,
	FieldLineBillingPeriod:       FromBasic,
	FieldLineAllowanceCharge:     FromBasic,
	FieldLineTotal:               FromBasic,
	FieldLineReceivableAccount:   FromComfort,
}

var ciiMandatory = map[Field]Requirement{
	FieldDocumentID:      {All, "BR-02", "an invoice shall have an invoice number"},
	FieldIssueDate:       {All, "BR-03", "an invoice shall have an invoice issue date"},
	FieldTypeCode:        {All, "BR-04", "an invoice shall have an invoice type code"},
	FieldCurrency:        {All, "BR-05", "an invoice shall have an invoice currency code"},
	FieldSellerName:      {All, "BR-06", "an invoice shall contain the seller name"},
	FieldBuyerName:       {All, "BR-07", "an invoice shall contain the buyer name"},
	FieldSellerCountry:   {All, "BR-09", "the seller postal address shall contain a country code"},
	FieldTotalGrand:      {All, "BR-14", "an invoice shall have the invoice total amount with VAT"},
	FieldTotalDuePayable: {All, "BR-15", "an invoice shall have the amount due for payment"},
	FieldLineItem:        {FromBasic, "BR-16", "an invoice shall have at least one invoice line"},
	FieldPaymentMeans:    {AnyXRechnung, "BR-DE-1", "an invoice shall contain payment instructions"},
	FieldSellerContact:   {AnyXRechnung, "BR-DE-2", "the seller contact group shall be transmitted"},
	FieldSellerCity:      {AnyXRechnung, "BR-DE-3", "the seller city shall be transmitted"},
	FieldSellerPostcode:  {AnyXRechnung, "BR-DE-4", "the seller post code shall be transmitted"},
	FieldBuyerReference:  {AnyXRechnung, "BR-DE-15", "the buyer reference shall be transmitted"},
}

var (
	v23Table = &Table{
		Version:   Version23,
		Family:    FamilyCII,
		Supported: All,
		permitted: ciiFields,
		mandatory: ciiMandatory,
	}

	// The invoicer party arrived with 2.2
	v21Table = &Table{
		Version:   Version21,
		Family:    FamilyCII,
		Supported: All,
		permitted: derive(ciiFields, nil, FieldInvoicer),
		mandatory: ciiMandatory,
	}

	v20Table = &Table{
		Version:   Version20,
		Family:    FamilyCII,
		Supported: Minimum | BasicWL | Basic | Comfort | Extended | XRechnung1,
		permitted: derive(ciiFields, map[Field]Profile{
			FieldTaxPointDate: FromComfort,
		}, FieldInvoicer, FieldLineReceivableAccount, FieldTaxExemptionReasonCode),
		mandatory: ciiMandatory,
	}
)
