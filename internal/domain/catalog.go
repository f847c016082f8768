package domain

// Catalog entities are small, static-ish reference rows maintained via
// admin endpoints. The aggregator only ever reads them.

// Bacteria pathogen catalog row (bacteria table)
type Bacteria struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	ScientificName string `json:"scientificName"`
	Description    string `json:"description,omitempty"`
}

// Antibiotic drug catalog row (antibiotics table)
type Antibiotic struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Class       string `json:"class"`
	Description string `json:"description,omitempty"`
}

// Region geographic catalog row (regions table)
// ParentID allows sub-regions; nil for top-level regions.
type Region struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	ParentID *int   `json:"parentId,omitempty"`
}

// Facility reporting site catalog row (facilities table)
type Facility struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	RegionID    int    `json:"regionId"`
	Address     string `json:"address,omitempty"`
	ContactInfo string `json:"contactInfo,omitempty"`
}
