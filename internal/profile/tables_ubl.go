package profile

const ublAll = Comfort | XRechnung1 | XRechnung

var ublTable = &Table{
	Version:   Version23,
	Family:    FamilyUBL,
	Supported: ublAll,
	permitted: map[Field]Profile{
		FieldBusinessProcess: ublAll,
		FieldDocumentID:      ublAll,
		FieldTypeCode:        ublAll,
		FieldIssueDate:       ublAll,
		FieldNote:            ublAll,
		FieldNoteSubjectCode: ublAll,

		FieldSeller: ublAll,
		FieldBuyer:  ublAll,
		FieldShipTo: ublAll,
		FieldPayee:  ublAll,

		FieldPartyID:                ublAll,
		FieldPartyName:              ublAll,
		FieldPartyDescription:       ublAll,
		FieldPartyLegalOrg:          ublAll,
		FieldPartyTradingName:       tradingName & ublAll,
		FieldPartyContact:           ublAll,
		FieldPartyAddress:           ublAll,
		FieldPartyAddressDetail:     ublAll,
		FieldPartyElectronicAddress: ublAll,
		FieldPartyTaxRegistration:   ublAll,

		FieldBuyerReference:       ublAll,
		FieldBuyerOrderReference:  ublAll,
		FieldSellerOrderReference: ublAll,
		FieldContractReference:    ublAll,
		FieldAdditionalReference:  ublAll,
		FieldAttachment:           ublAll,
		FieldProcuringProject:     ublAll,
		FieldDeliveryDate:         ublAll,
		FieldDespatchAdvice:       ublAll,

		FieldPaymentReference:        ublAll,
		FieldTaxCurrency:             ublAll,
		FieldCurrency:                ublAll,
		FieldPaymentMeans:            ublAll,
		FieldPaymentMeansInformation: ublAll,
		FieldFinancialCard:           ublAll,
		FieldCreditorReference:       ublAll,
		FieldDebitorAccount:          ublAll,
		FieldCreditorAccount:         ublAll,
		FieldAccountName:             ublAll,
		FieldBIC:                     ublAll,
		FieldTax:                     ublAll,
		FieldTaxExemptionReason:      ublAll,
		FieldTaxExemptionReasonCode:  ublAll,
		FieldBillingPeriod:           ublAll,
		FieldAllowanceCharge:         ublAll,
		FieldAllowanceChargeBasis:    ublAll,
		FieldAllowanceChargePercent:  ublAll,
		FieldAllowanceChargeReason:   ublAll,
		FieldPaymentTerms:            ublAll,
		FieldDirectDebitMandate:      ublAll,
		FieldInvoiceReference:        ublAll,
		FieldReceivableAccount:       ublAll,

		FieldTotalLine:       ublAll,
		FieldTotalCharge:     ublAll,
		FieldTotalAllowance:  ublAll,
		FieldTotalTaxBasis:   ublAll,
		FieldTotalTax:        ublAll,
		FieldTotalRounding:   ublAll,
		FieldTotalGrand:      ublAll,
		FieldTotalPrepaid:    ublAll,
		FieldTotalDuePayable: ublAll,

		FieldLineItem:                ublAll,
		FieldLineNote:                ublAll,
		FieldLineProductGlobalID:     ublAll,
		FieldLineSellerAssignedID:    ublAll,
		FieldLineBuyerAssignedID:     ublAll,
		FieldLineProductName:         ublAll,
		FieldLineProductDescription:  ublAll,
		FieldLineBuyerOrderReference: ublAll,
		FieldLineGrossPrice:          ublAll,
		FieldLineGrossPriceAllowance: ublAll,
		FieldLineNetPrice:            ublAll,
		FieldLineBasisQuantity:       ublAll,
		FieldLineBilledQuantity:      ublAll,
		FieldLineTax:                 ublAll,
		FieldLineBillingPeriod:       ublAll,
		FieldLineAllowanceCharge:     ublAll,
		FieldLineTotal:               ublAll,
		FieldLineReceivableAccount:   ublAll,
	},
	mandatory: deriveMandatory(ciiMandatory, map[Field]Requirement{
		FieldLineItem: {ublAll, "BR-16", "an invoice shall have at least one invoice line"},
	}),
}
