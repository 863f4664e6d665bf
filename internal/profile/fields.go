package profile

// Field names one semantic element of the wire format. Write fields gate
// encoder output; the Seller*/Buyer* fields only carry mandatory rules.
type Field string

// Header
const (
	FieldTestIndicator   Field = "TestIndicator"
	FieldBusinessProcess Field = "BusinessProcess"
	FieldDocumentID      Field = "DocumentID"
	FieldDocumentName    Field = "DocumentName"
	FieldTypeCode        Field = "TypeCode"
	FieldIssueDate       Field = "IssueDate"
	FieldNote            Field = "Note"
	FieldNoteSubjectCode Field = "NoteSubjectCode"
	FieldNoteContentCode Field = "NoteContentCode"
)

// Parties
const (
	FieldSeller   Field = "Seller"
	FieldBuyer    Field = "Buyer"
	FieldShipTo   Field = "ShipTo"
	FieldShipFrom Field = "ShipFrom"
	FieldPayee    Field = "Payee"
	FieldInvoicee Field = "Invoicee"
	FieldInvoicer Field = "Invoicer"

	FieldPartyID                Field = "PartyID"
	FieldPartyGlobalID          Field = "PartyGlobalID"
	FieldPartyName              Field = "PartyName"
	FieldPartyDescription       Field = "PartyDescription"
	FieldPartyLegalOrg          Field = "PartyLegalOrganization"
	FieldPartyTradingName       Field = "PartyTradingName"
	FieldPartyContact           Field = "PartyContact"
	FieldPartyContactFax        Field = "PartyContactFax"
	FieldPartyAddress           Field = "PartyAddress"
	FieldPartyAddressDetail     Field = "PartyAddressDetail"
	FieldPartyElectronicAddress Field = "PartyElectronicAddress"
	FieldPartyTaxRegistration   Field = "PartyTaxRegistration"
)

// Agreement and delivery
const (
	FieldBuyerReference       Field = "BuyerReference"
	FieldBuyerOrderReference  Field = "BuyerOrderReference"
	FieldSellerOrderReference Field = "SellerOrderReference"
	FieldContractReference    Field = "ContractReference"
	FieldAdditionalReference  Field = "AdditionalReference"
	FieldAttachment           Field = "AdditionalReferenceAttachment"
	FieldProcuringProject     Field = "ProcuringProject"
	FieldDeliveryDate         Field = "DeliveryDate"
	FieldDespatchAdvice       Field = "DespatchAdviceReference"
	FieldDeliveryNote         Field = "DeliveryNoteReference"
)

// Settlement
const (
	FieldCreditorReference       Field = "CreditorReference"
	FieldPaymentReference        Field = "PaymentReference"
	FieldTaxCurrency             Field = "TaxCurrency"
	FieldCurrency                Field = "Currency"
	FieldPaymentMeans            Field = "PaymentMeans"
	FieldPaymentMeansInformation Field = "PaymentMeansInformation"
	FieldFinancialCard           Field = "FinancialCard"
	FieldDebitorAccount          Field = "DebitorAccount"
	FieldCreditorAccount         Field = "CreditorAccount"
	FieldAccountName             Field = "AccountName"
	FieldBIC                     Field = "BIC"
	FieldBankName                Field = "BankName"
	FieldTax                     Field = "Tax"
	FieldTaxExemptionReason      Field = "TaxExemptionReason"
	FieldTaxExemptionReasonCode  Field = "TaxExemptionReasonCode"
	FieldTaxAllowanceChargeBasis Field = "TaxAllowanceChargeBasis"
	FieldTaxPointDate            Field = "TaxPointDate"
	FieldBillingPeriod           Field = "BillingPeriod"
	FieldAllowanceCharge         Field = "AllowanceCharge"
	FieldAllowanceChargeBasis    Field = "AllowanceChargeBasis"
	FieldAllowanceChargePercent  Field = "AllowanceChargePercent"
	FieldAllowanceChargeReason   Field = "AllowanceChargeReasonCode"
	FieldLogisticsServiceCharge  Field = "LogisticsServiceCharge"
	FieldPaymentTerms            Field = "PaymentTerms"
	FieldPaymentTermsDiscount    Field = "PaymentTermsDiscount"
	FieldDirectDebitMandate      Field = "DirectDebitMandate"
	FieldInvoiceReference        Field = "InvoiceReference"
	FieldReceivableAccount       Field = "ReceivableAccount"
)

// Monetary summation
const (
	FieldTotalLine       Field = "LineTotalAmount"
	FieldTotalCharge     Field = "ChargeTotalAmount"
	FieldTotalAllowance  Field = "AllowanceTotalAmount"
	FieldTotalTaxBasis   Field = "TaxBasisTotalAmount"
	FieldTotalTax        Field = "TaxTotalAmount"
	FieldTotalRounding   Field = "RoundingAmount"
	FieldTotalGrand      Field = "GrandTotalAmount"
	FieldTotalPrepaid    Field = "TotalPrepaidAmount"
	FieldTotalDuePayable Field = "DuePayableAmount"
)

// Line items
const (
	FieldLineItem                Field = "LineItem"
	FieldLineNote                Field = "LineNote"
	FieldLineProductGlobalID     Field = "LineProductGlobalID"
	FieldLineSellerAssignedID    Field = "LineSellerAssignedID"
	FieldLineBuyerAssignedID     Field = "LineBuyerAssignedID"
	FieldLineProductName         Field = "LineProductName"
	FieldLineProductDescription  Field = "LineProductDescription"
	FieldLineBuyerOrderReference Field = "LineBuyerOrderReference"
	FieldLineContractReference   Field = "LineContractReference"
	FieldLineAdditionalReference Field = "LineAdditionalReference"
	FieldLineDeliveryNote        Field = "LineDeliveryNoteReference"
	FieldLineDeliveryDate        Field = "LineDeliveryDate"
	FieldLineGrossPrice          Field = "LineGrossPrice"
	FieldLineGrossPriceAllowance Field = "LineGrossPriceAllowance"
	FieldLineNetPrice            Field = "LineNetPrice"
	FieldLineBasisQuantity       Field = "LineBasisQuantity"
	FieldLineBilledQuantity      Field = "LineBilledQuantity"
	FieldLineTax                 Field = "LineTax"
	FieldLineBillingPeriod       Field = "LineBillingPeriod"
	FieldLineAllowanceCharge     Field = "LineAllowanceCharge"
	FieldLineTotal               Field = "LineTotal"
	FieldLineReceivableAccount   Field = "LineReceivableAccount"
)

// Rule-only fields
const (
	FieldSellerName     Field = "SellerName"
	FieldSellerCountry  Field = "SellerCountry"
	FieldSellerCity     Field = "SellerCity"
	FieldSellerPostcode Field = "SellerPostcode"
	FieldSellerContact  Field = "SellerContact"
	FieldBuyerName      Field = "BuyerName"
)
