package domain

type EntityKind string

const (
	KindEmail         EntityKind = "email"
	KindPhone         EntityKind = "phone"
	KindPostcode      EntityKind = "postcode"
	KindCurrency      EntityKind = "currency"
	KindNINumber      EntityKind = "ni_number"
	KindDate          EntityKind = "date"
	KindVATNumber     EntityKind = "vat_number"
	KindCompanyNumber EntityKind = "company_number"
	KindInvoiceNumber EntityKind = "invoice_number"
	KindAccountNumber EntityKind = "account_number"
	KindPerson        EntityKind = "person"
	KindOrganisation  EntityKind = "organisation"
	KindURL           EntityKind = "url"
)

func AllEntityKinds() []EntityKind {
	return []EntityKind{
		KindEmail, KindPhone, KindPostcode, KindCurrency, KindNINumber,
		KindDate, KindVATNumber, KindCompanyNumber, KindInvoiceNumber,
		KindAccountNumber, KindPerson, KindOrganisation, KindURL,
	}
}

// EntityMap holds extracted values per kind. Every kind is always present,
// mapped to an ordered, case-sensitively deduplicated slice.
type EntityMap map[EntityKind][]string

func NewEntityMap() EntityMap {
	m := make(EntityMap, len(AllEntityKinds()))
	for _, kind := range AllEntityKinds() {
		m[kind] = []string{}
	}
	return m
}

// Add appends value to kind, preserving first-occurrence order and skipping
// exact duplicates.
func (m EntityMap) Add(kind EntityKind, value string) {
	for _, existing := range m[kind] {
		if existing == value {
			return
		}
	}
	m[kind] = append(m[kind], value)
}

func (m EntityMap) Total() int {
	n := 0
	for _, values := range m {
		n += len(values)
	}
	return n
}
