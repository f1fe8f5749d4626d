package model

// Company is an externally managed directory entry. Read-only from this
// service's perspective; CompanyName is the join key from Action records.
type Company struct {
	ID                     string `json:"company_id"`
	Name                   string `json:"company_name"`
	ContactContractBilling string `json:"contact_contract_billing"`
	ContactSalesTrouble    string `json:"contact_sales_trouble"`
	Memo                   string `json:"memo_company"`
}

// CompanyContacts holds the two contact fields looked up by company name.
// Both are empty strings when the company is unknown.
type CompanyContacts struct {
	ContractBilling string `json:"contact_contract_billing"`
	SalesTrouble    string `json:"contact_sales_trouble"`
}
