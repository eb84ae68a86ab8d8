package enums

// DocumentKind names the onboarding document slots a vendor may upload.
type DocumentKind string

const (
	DocumentKindCompanyRegistration DocumentKind = "company_registration"
	DocumentKindPAN                 DocumentKind = "pan_card"
	DocumentKindBankProof           DocumentKind = "bank_proof"
	DocumentKindFSSAI               DocumentKind = "fssai_certificate"
	DocumentKindManufacturing       DocumentKind = "manufacturing_license"
	DocumentKindOrganicCert         DocumentKind = "organic_certification"
)

func (k DocumentKind) IsValid() bool {
	switch k {
	case DocumentKindCompanyRegistration, DocumentKindPAN, DocumentKindBankProof,
		DocumentKindFSSAI, DocumentKindManufacturing, DocumentKindOrganicCert:
		return true
	}
	return false
}

// Required reports whether the slot must be present on a new application.
func (k DocumentKind) Required() bool {
	switch k {
	case DocumentKindCompanyRegistration, DocumentKindPAN, DocumentKindBankProof, DocumentKindFSSAI:
		return true
	}
	return false
}

// AllDocumentKinds lists every slot in form order.
func AllDocumentKinds() []DocumentKind {
	return []DocumentKind{
		DocumentKindCompanyRegistration,
		DocumentKindPAN,
		DocumentKindBankProof,
		DocumentKindFSSAI,
		DocumentKindManufacturing,
		DocumentKindOrganicCert,
	}
}
