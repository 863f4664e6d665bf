package model

import "strings"

// Code lists used on the wire. Closed lists decode unrecognized input to
// their Unknown variant; open lists (currency, country, unit) only check
// the lexical shape of the code.

// InvoiceType is the UNTDID 1001 document type code
type InvoiceType string

const (
	InvoiceTypeInvoice              InvoiceType = "380"
	InvoiceTypeCreditNote           InvoiceType = "381"
	InvoiceTypeDebitNote            InvoiceType = "383"
	InvoiceTypeCorrection           InvoiceType = "384"
	InvoiceTypePrepayment           InvoiceType = "386"
	InvoiceTypeSelfBilled           InvoiceType = "389"
	InvoiceTypePartial              InvoiceType = "326"
	InvoiceTypeDebitNoteFinancial   InvoiceType = "84"
	InvoiceTypePartialConstruction  InvoiceType = "875"
	InvoiceTypePartialFinalConstr   InvoiceType = "876"
	InvoiceTypeFinalConstruction    InvoiceType = "877"
	InvoiceTypeSelfBilledCreditNote InvoiceType = "261"
	InvoiceTypeInformation          InvoiceType = "751"
	InvoiceTypeUnknown              InvoiceType = "Unknown"
)

var invoiceTypes = map[InvoiceType]string{
	InvoiceTypeInvoice:              "Commercial invoice",
	InvoiceTypeCreditNote:           "Credit note",
	InvoiceTypeDebitNote:            "Debit note",
	InvoiceTypeCorrection:           "Corrected invoice",
	InvoiceTypePrepayment:           "Prepayment invoice",
	InvoiceTypeSelfBilled:           "Self-billed invoice",
	InvoiceTypePartial:              "Partial invoice",
	InvoiceTypeDebitNoteFinancial:   "Debit note related to financial adjustments",
	InvoiceTypePartialConstruction:  "Partial construction invoice",
	InvoiceTypePartialFinalConstr:   "Partial final construction invoice",
	InvoiceTypeFinalConstruction:    "Final construction invoice",
	InvoiceTypeSelfBilledCreditNote: "Self-billed credit note",
	InvoiceTypeInformation:          "Invoice information for accounting purposes",
}

// ParseInvoiceType maps a wire code to InvoiceType
func ParseInvoiceType(s string) InvoiceType {
	return parseClosed(invoiceTypes, s, InvoiceTypeUnknown)
}

// Description returns the code list text for the type
func (t InvoiceType) Description() string { return invoiceTypes[t] }

// TaxType is the UNTDID 5153 duty/tax/fee type code
type TaxType string

const (
	TaxTypeVAT            TaxType = "VAT"
	TaxTypeGST            TaxType = "GST"
	TaxTypeLocal          TaxType = "LOC"
	TaxTypeExcise         TaxType = "EXC"
	TaxTypeEnvironmental  TaxType = "ENV"
	TaxTypeInsurance      TaxType = "AAA"
	TaxTypeFuel           TaxType = "AAB"
	TaxTypeTobacco        TaxType = "AAD"
	TaxTypeCustoms        TaxType = "CUD"
	TaxTypeFreightCharges TaxType = "FRE"
	TaxTypeOther          TaxType = "OTH"
	TaxTypeMutuallyDef    TaxType = "ZZZ"
	TaxTypeUnknown        TaxType = "Unknown"
)

var taxTypes = map[TaxType]string{
	TaxTypeVAT:            "Value added tax",
	TaxTypeGST:            "Goods and services tax",
	TaxTypeLocal:          "Local sales tax",
	TaxTypeExcise:         "Excise duty",
	TaxTypeEnvironmental:  "Environmental tax",
	TaxTypeInsurance:      "Insurance tax",
	TaxTypeFuel:           "Mineral oil tax",
	TaxTypeTobacco:        "Tobacco tax",
	TaxTypeCustoms:        "Customs duty",
	TaxTypeFreightCharges: "Freight charges",
	TaxTypeOther:          "Other taxes",
	TaxTypeMutuallyDef:    "Mutually defined",
}

// ParseTaxType maps a wire code to TaxType
func ParseTaxType(s string) TaxType {
	return parseClosed(taxTypes, s, TaxTypeUnknown)
}

// TaxCategory is the UNTDID 5305 duty/tax/fee category code
type TaxCategory string

const (
	TaxCategoryStandard       TaxCategory = "S"
	TaxCategoryZeroRated      TaxCategory = "Z"
	TaxCategoryExempt         TaxCategory = "E"
	TaxCategoryReverseCharge  TaxCategory = "AE"
	TaxCategoryIntraCommunity TaxCategory = "K"
	TaxCategoryExport         TaxCategory = "G"
	TaxCategoryNotSubject     TaxCategory = "O"
	TaxCategoryCanaryIslands  TaxCategory = "L"
	TaxCategoryCeutaMelilla   TaxCategory = "M"
	TaxCategoryLowerRate      TaxCategory = "AA"
	TaxCategoryMixed          TaxCategory = "A"
	TaxCategoryTransferred    TaxCategory = "B"
	TaxCategoryHigherRate     TaxCategory = "H"
	TaxCategoryUnknown        TaxCategory = "Unknown"
)

var taxCategories = map[TaxCategory]string{
	TaxCategoryStandard:       "Standard rate",
	TaxCategoryZeroRated:      "Zero rated goods",
	TaxCategoryExempt:         "Exempt from tax",
	TaxCategoryReverseCharge:  "VAT reverse charge",
	TaxCategoryIntraCommunity: "VAT exempt for EEA intra-community supply",
	TaxCategoryExport:         "Free export item, tax not charged",
	TaxCategoryNotSubject:     "Services outside scope of tax",
	TaxCategoryCanaryIslands:  "Canary Islands general indirect tax",
	TaxCategoryCeutaMelilla:   "Tax for production, services and importation in Ceuta and Melilla",
	TaxCategoryLowerRate:      "Lower rate",
	TaxCategoryMixed:          "Mixed tax rate",
	TaxCategoryTransferred:    "Transferred (VAT)",
	TaxCategoryHigherRate:     "Higher rate",
}

// ParseTaxCategory maps a wire code to TaxCategory
func ParseTaxCategory(s string) TaxCategory {
	return parseClosed(taxCategories, s, TaxCategoryUnknown)
}

// PaymentMeansType is the UNTDID 4461 payment means code
type PaymentMeansType string

const (
	PaymentMeansNotDefined         PaymentMeansType = "1"
	PaymentMeansCash               PaymentMeansType = "10"
	PaymentMeansCheque             PaymentMeansType = "20"
	PaymentMeansCreditTransfer     PaymentMeansType = "30"
	PaymentMeansDebitTransfer      PaymentMeansType = "31"
	PaymentMeansBankAccount        PaymentMeansType = "42"
	PaymentMeansBankCard           PaymentMeansType = "48"
	PaymentMeansDirectDebit        PaymentMeansType = "49"
	PaymentMeansStandingAgreement  PaymentMeansType = "57"
	PaymentMeansSEPACreditTransfer PaymentMeansType = "58"
	PaymentMeansSEPADirectDebit    PaymentMeansType = "59"
	PaymentMeansClearing           PaymentMeansType = "97"
	PaymentMeansMutuallyDefined    PaymentMeansType = "ZZZ"
	PaymentMeansUnknown            PaymentMeansType = "Unknown"
)

var paymentMeansTypes = map[PaymentMeansType]string{
	PaymentMeansNotDefined:         "Instrument not defined",
	PaymentMeansCash:               "In cash",
	PaymentMeansCheque:             "Cheque",
	PaymentMeansCreditTransfer:     "Credit transfer",
	PaymentMeansDebitTransfer:      "Debit transfer",
	PaymentMeansBankAccount:        "Payment to bank account",
	PaymentMeansBankCard:           "Bank card",
	PaymentMeansDirectDebit:        "Direct debit",
	PaymentMeansStandingAgreement:  "Standing agreement",
	PaymentMeansSEPACreditTransfer: "SEPA credit transfer",
	PaymentMeansSEPADirectDebit:    "SEPA direct debit",
	PaymentMeansClearing:           "Clearing between partners",
	PaymentMeansMutuallyDefined:    "Mutually defined",
}

// ParsePaymentMeansType maps a wire code to PaymentMeansType
func ParsePaymentMeansType(s string) PaymentMeansType {
	return parseClosed(paymentMeansTypes, s, PaymentMeansUnknown)
}

// GlobalIDScheme is an ISO 6523 ICD scheme identifier
type GlobalIDScheme string

const (
	GlobalIDSchemeNone    GlobalIDScheme = ""
	GlobalIDSchemeSIRENE  GlobalIDScheme = "0002"
	GlobalIDSchemeSIRET   GlobalIDScheme = "0009"
	GlobalIDSchemeSWIFT   GlobalIDScheme = "0021"
	GlobalIDSchemeDUNS    GlobalIDScheme = "0060"
	GlobalIDSchemeGLN     GlobalIDScheme = "0088"
	GlobalIDSchemeGTIN    GlobalIDScheme = "0160"
	GlobalIDSchemeODETTE  GlobalIDScheme = "0177"
	GlobalIDSchemeLeitweg GlobalIDScheme = "0204"
	GlobalIDSchemeDEVAT   GlobalIDScheme = "9930"
	GlobalIDSchemeFRVAT   GlobalIDScheme = "9957"
	GlobalIDSchemeUnknown GlobalIDScheme = "Unknown"
)

var globalIDSchemes = map[GlobalIDScheme]string{
	GlobalIDSchemeSIRENE:  "SIRENE",
	GlobalIDSchemeSIRET:   "SIRET",
	GlobalIDSchemeSWIFT:   "S.W.I.F.T.",
	GlobalIDSchemeDUNS:    "DUNS",
	GlobalIDSchemeGLN:     "Global Location Number",
	GlobalIDSchemeGTIN:    "Global Trade Item Number",
	GlobalIDSchemeODETTE:  "Odette International",
	GlobalIDSchemeLeitweg: "Leitweg-ID",
	GlobalIDSchemeDEVAT:   "German VAT number",
	GlobalIDSchemeFRVAT:   "French VAT number",
}

// ParseGlobalIDScheme maps a schemeID attribute value, empty stays empty
func ParseGlobalIDScheme(s string) GlobalIDScheme {
	if strings.TrimSpace(s) == "" {
		return GlobalIDSchemeNone
	}
	return parseClosed(globalIDSchemes, s, GlobalIDSchemeUnknown)
}

// IsKnown reports whether the scheme can be written back to the wire
func (s GlobalIDScheme) IsKnown() bool {
	_, ok := globalIDSchemes[s]
	return ok
}

// TaxRegistrationScheme distinguishes VAT ids from local tax numbers
type TaxRegistrationScheme string

const (
	TaxRegistrationVAT     TaxRegistrationScheme = "VA"
	TaxRegistrationFiscal  TaxRegistrationScheme = "FC"
	TaxRegistrationUnknown TaxRegistrationScheme = "Unknown"
)

var taxRegistrationSchemes = map[TaxRegistrationScheme]string{
	TaxRegistrationVAT:    "VAT registration number",
	TaxRegistrationFiscal: "Fiscal number",
}

// ParseTaxRegistrationScheme maps a schemeID attribute value
func ParseTaxRegistrationScheme(s string) TaxRegistrationScheme {
	return parseClosed(taxRegistrationSchemes, s, TaxRegistrationUnknown)
}

// ElectronicAddressScheme is the EAS code of an electronic address
type ElectronicAddressScheme string

const (
	ElectronicAddressEmail   ElectronicAddressScheme = "EM"
	ElectronicAddressGLN     ElectronicAddressScheme = "0088"
	ElectronicAddressLeitweg ElectronicAddressScheme = "0204"
	ElectronicAddressDEVAT   ElectronicAddressScheme = "9930"
	ElectronicAddressFRVAT   ElectronicAddressScheme = "9957"
	ElectronicAddressSIRET   ElectronicAddressScheme = "0009"
	ElectronicAddressUnknown ElectronicAddressScheme = "Unknown"
)

var electronicAddressSchemes = map[ElectronicAddressScheme]string{
	ElectronicAddressEmail:   "Electronic mail",
	ElectronicAddressGLN:     "Global Location Number",
	ElectronicAddressLeitweg: "Leitweg-ID",
	ElectronicAddressDEVAT:   "German VAT number",
	ElectronicAddressFRVAT:   "French VAT number",
	ElectronicAddressSIRET:   "SIRET",
}

// ParseElectronicAddressScheme maps a schemeID attribute value
func ParseElectronicAddressScheme(s string) ElectronicAddressScheme {
	return parseClosed(electronicAddressSchemes, s, ElectronicAddressUnknown)
}

// SubjectCode qualifies a free text note (UNTDID 4451)
type SubjectCode string

const (
	SubjectCodeNone           SubjectCode = ""
	SubjectCodeGeneral        SubjectCode = "AAI"
	SubjectCodeAdditional     SubjectCode = "AAK"
	SubjectCodePrice          SubjectCode = "AAB"
	SubjectCodeDiscount       SubjectCode = "ABN"
	SubjectCodeRegulatory     SubjectCode = "REG"
	SubjectCodeSupplier       SubjectCode = "SUR"
	SubjectCodeTaxDeclaration SubjectCode = "TXD"
	SubjectCodeLegal          SubjectCode = "ABL"
	SubjectCodeCustoms        SubjectCode = "ACY"
	SubjectCodePayment        SubjectCode = "PMT"
	SubjectCodePaymentDetail  SubjectCode = "PMD"
	SubjectCodeUnknown        SubjectCode = "Unknown"
)

var subjectCodes = map[SubjectCode]string{
	SubjectCodeGeneral:        "General information",
	SubjectCodeAdditional:     "Additional conditions of sale/purchase",
	SubjectCodePrice:          "Terms of payments",
	SubjectCodeDiscount:       "Discount information",
	SubjectCodeRegulatory:     "Regulatory information",
	SubjectCodeSupplier:       "Supplier remarks",
	SubjectCodeTaxDeclaration: "Tax declaration",
	SubjectCodeLegal:          "Legal information",
	SubjectCodeCustoms:        "Customs declaration information",
	SubjectCodePayment:        "Payment information",
	SubjectCodePaymentDetail:  "Payment detail/remittance information",
}

// ParseSubjectCode maps a wire code, empty stays empty
func ParseSubjectCode(s string) SubjectCode {
	if strings.TrimSpace(s) == "" {
		return SubjectCodeNone
	}
	return parseClosed(subjectCodes, s, SubjectCodeUnknown)
}

// IsKnown reports whether the code can be written back to the wire
func (c SubjectCode) IsKnown() bool {
	_, ok := subjectCodes[c]
	return ok
}

// ReferencedDocumentType is the UNTDID 1001 subset used for additional references
type ReferencedDocumentType string

const (
	ReferencedDocumentTender           ReferencedDocumentType = "50"
	ReferencedDocumentInvoiceDataSheet ReferencedDocumentType = "130"
	ReferencedDocumentReference        ReferencedDocumentType = "916"
	ReferencedDocumentUnknown          ReferencedDocumentType = "Unknown"
)

var referencedDocumentTypes = map[ReferencedDocumentType]string{
	ReferencedDocumentTender:           "Validated tender or lot",
	ReferencedDocumentInvoiceDataSheet: "Invoiced object identifier",
	ReferencedDocumentReference:        "Related document",
}

// ParseReferencedDocumentType maps a wire code
func ParseReferencedDocumentType(s string) ReferencedDocumentType {
	return parseClosed(referencedDocumentTypes, s, ReferencedDocumentUnknown)
}

// CurrencyCode is an ISO 4217 alpha-3 code
type CurrencyCode string

const (
	CurrencyEUR     CurrencyCode = "EUR"
	CurrencyUSD     CurrencyCode = "USD"
	CurrencyGBP     CurrencyCode = "GBP"
	CurrencyCHF     CurrencyCode = "CHF"
	CurrencyUnknown CurrencyCode = "Unknown"
)

// ParseCurrencyCode accepts any three letter code
func ParseCurrencyCode(s string) CurrencyCode {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) == 3 && isAlpha(s) {
		return CurrencyCode(s)
	}
	return CurrencyUnknown
}

// CountryCode is an ISO 3166-1 alpha-2 code
type CountryCode string

const (
	CountryDE      CountryCode = "DE"
	CountryAT      CountryCode = "AT"
	CountryCH      CountryCode = "CH"
	CountryFR      CountryCode = "FR"
	CountryNL      CountryCode = "NL"
	CountryBE      CountryCode = "BE"
	CountryIT      CountryCode = "IT"
	CountryUnknown CountryCode = "Unknown"
)

// ParseCountryCode accepts any two letter code, empty stays empty
func ParseCountryCode(s string) CountryCode {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	if len(s) == 2 && isAlpha(s) {
		return CountryCode(s)
	}
	return CountryUnknown
}

// QuantityCode is a UN/ECE Recommendation 20/21 unit code
type QuantityCode string

const (
	QuantityPiece    QuantityCode = "H87"
	QuantityOne      QuantityCode = "C62"
	QuantityHour     QuantityCode = "HUR"
	QuantityDay      QuantityCode = "DAY"
	QuantityKilogram QuantityCode = "KGM"
	QuantityLitre    QuantityCode = "LTR"
	QuantityMetre    QuantityCode = "MTR"
	QuantitySqMetre  QuantityCode = "MTK"
	QuantityKWh      QuantityCode = "KWH"
	QuantityLumpSum  QuantityCode = "LS"
	QuantitySet      QuantityCode = "SET"
	QuantityUnknown  QuantityCode = "Unknown"
)

// ParseQuantityCode accepts any one to three character alphanumeric code
func ParseQuantityCode(s string) QuantityCode {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	if len(s) <= 3 && isAlnum(s) {
		return QuantityCode(s)
	}
	return QuantityUnknown
}

func parseClosed[T ~string](known map[T]string, s string, unknown T) T {
	c := T(strings.TrimSpace(s))
	if _, ok := known[c]; ok {
		return c
	}
	return unknown
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func isAlnum(s string) bool {
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
