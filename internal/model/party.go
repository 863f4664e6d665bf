package model

// GlobalID is an identifier qualified by an ISO 6523 scheme
type GlobalID struct {
	ID     string         `json:"id"`
	Scheme GlobalIDScheme `json:"scheme,omitempty"`
}

// IsEmpty reports whether no identifier is set
func (g *GlobalID) IsEmpty() bool {
	return g == nil || g.ID == ""
}

// Party represents seller, buyer or any other trade party
type Party struct {
	ID          *GlobalID `json:"id,omitempty"`        // Seller/buyer assigned party id
	GlobalID    *GlobalID `json:"global_id,omitempty"` // GLN, DUNS, ...
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"` // Additional legal information

	// Postal address. When ContactName is set it occupies the first address
	// line and Street moves to the second.
	ContactName        string      `json:"contact_name,omitempty"`
	Street             string      `json:"street,omitempty"`
	AddressLine3       string      `json:"address_line3,omitempty"`
	Postcode           string      `json:"postcode,omitempty"`
	City               string      `json:"city,omitempty"`
	Country            CountryCode `json:"country,omitempty"`
	CountrySubdivision string      `json:"country_subdivision,omitempty"`

	TaxRegistrations  []TaxRegistration  `json:"tax_registrations,omitempty"`
	Contact           *Contact           `json:"contact,omitempty"`
	ElectronicAddress *ElectronicAddress `json:"electronic_address,omitempty"`
	LegalOrganization *LegalOrganization `json:"legal_organization,omitempty"`
}

// HasAddress reports whether any postal address component is set
func (p *Party) HasAddress() bool {
	return p.ContactName != "" || p.Street != "" || p.AddressLine3 != "" ||
		p.Postcode != "" || p.City != "" || p.Country != "" || p.CountrySubdivision != ""
}

// TaxRegistration is a VAT id or local tax number
type TaxRegistration struct {
	No     string                `json:"no"`
	Scheme TaxRegistrationScheme `json:"scheme"`
}

// Contact is a person or department at a party
type Contact struct {
	Name    string `json:"name,omitempty"`
	OrgUnit string `json:"org_unit,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Fax     string `json:"fax,omitempty"`
	Email   string `json:"email,omitempty"`
}

// ElectronicAddress is the party's routing endpoint
type ElectronicAddress struct {
	Address string                  `json:"address"`
	Scheme  ElectronicAddressScheme `json:"scheme"`
}

// LegalOrganization is the registration of the party in a legal register
type LegalOrganization struct {
	ID          *GlobalID `json:"id,omitempty"`
	TradingName string    `json:"trading_name,omitempty"`
}
