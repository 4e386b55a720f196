package clover

// Order is the payload shape the Clover v3 orders endpoint expects. Field
// names are the vendor's contract and must not change.
type Order struct {
	State             string        `json:"state"`
	Title             string        `json:"title"`
	Note              string        `json:"note,omitempty"`
	TaxRemoved        bool          `json:"taxRemoved"`
	ManualTransaction bool          `json:"manualTransaction"`
	GroupLineItems    bool          `json:"groupLineItems"`
	LineItems         LineItems     `json:"lineItems"`
	CustomerInfo      *CustomerInfo `json:"customerInfo,omitempty"`
	Attributes        []Attribute   `json:"attributes"`
}

type LineItems struct {
	Elements []LineItem `json:"elements"`
}

// LineItem prices are in minor currency units (cents).
type LineItem struct {
	Name    string `json:"name"`
	Price   int64  `json:"price"`
	UnitQty int    `json:"unitQty"`
	Note    string `json:"note,omitempty"`
}

type CustomerInfo struct {
	FirstName        string   `json:"firstName"`
	LastName         string   `json:"lastName"`
	PhoneNumber      string   `json:"phoneNumber"`
	EmailAddress     string   `json:"emailAddress"`
	MarketingAllowed bool     `json:"marketingAllowed"`
	Address          *Address `json:"address,omitempty"`
}

type Address struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
}

type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// OrderResponse is the subset of Clover's order resource the sync cares
// about.
type OrderResponse struct {
	ID          string `json:"id"`
	State       string `json:"state"`
	Title       string `json:"title"`
	CreatedTime int64  `json:"createdTime"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	MerchantID  string `json:"merchant_id"`
}

type PrintRequest struct {
	PrinterID     string `json:"printerId"`
	Type          string `json:"type"`
	IncludeItems  bool   `json:"includeItems"`
	IncludeTotals bool   `json:"includeTotals"`
}

type Printer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Model string `json:"model"`
	Type  string `json:"type"`
}

type PrintersResponse struct {
	Elements []Printer `json:"elements"`
}

type InventoryItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Code  string `json:"code"`
}

type InventoryResponse struct {
	Elements []InventoryItem `json:"elements"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CategoriesResponse struct {
	Elements []Category `json:"elements"`
}

type ModifierGroup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ModifierGroupsResponse struct {
	Elements []ModifierGroup `json:"elements"`
}

type Merchant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
