package crm

import "crm-sync/core/utils"

// Object types used by the sync.
const (
	ObjectDeals     = "deals"
	ObjectLineItems = "line_items"
	ObjectProducts  = "products"
)

// Association categories and the line item to deal type.
const (
	CategoryHubSpotDefined = "HUBSPOT_DEFINED"

	AssociationLineItemToDeal = 20
)

// AssociationType is one typed edge of an association.
type AssociationType struct {
	Category string `json:"associationCategory"`
	TypeID   int    `json:"associationTypeId"`
}

// AssociationTarget identifies the object on the other end.
type AssociationTarget struct {
	ID string `json:"id"`
}

// Association links a created object to an existing one.
type Association struct {
	To    AssociationTarget `json:"to"`
	Types []AssociationType `json:"types"`
}

// CreateInput is one object of a batch create.
type CreateInput struct {
	Properties   map[string]string `json:"properties"`
	Associations []Association     `json:"associations,omitempty"`
}

// UpdateInput is one object of a batch update. With IDProperty set, ID is the value of
// that unique property rather than the record id.
type UpdateInput struct {
	ID         string            `json:"id"`
	IDProperty string            `json:"idProperty,omitempty"`
	Properties map[string]string `json:"properties"`
}

// ObjectID is a bare id input.
type ObjectID struct {
	ID string `json:"id"`
}

// Object is a CRM record as returned by the API.
type Object struct {
	ID         string         `json:"id"`
	Properties map[string]any `json:"properties"`
	Archived   bool           `json:"archived,omitempty"`
}

// Property returns a property as a string; null and missing values are empty.
func (o Object) Property(name string) string {
	return utils.ToString(o.Properties[name])
}

// ItemError is a per-item failure inside a batch response.
type ItemError struct {
	Status   string              `json:"status"`
	Category string              `json:"category"`
	Message  string              `json:"message"`
	Context  map[string][]string `json:"context,omitempty"`
}

// BatchResponse is the body of batch create, update and read calls.
// A 207 status means some items failed; see Errors.
type BatchResponse struct {
	Status     string      `json:"status"`
	Results    []Object    `json:"results"`
	Errors     []ItemError `json:"errors,omitempty"`
	NumErrors  int         `json:"numErrors,omitempty"`
	StatusCode int         `json:"-"`
}

// ErrorCount returns the number of failed items reported by the response.
func (r *BatchResponse) ErrorCount() int {
	if r == nil {
		return 0
	}
	if r.NumErrors > len(r.Errors) {
		return r.NumErrors
	}
	return len(r.Errors)
}

// Filter operators.
const (
	OperatorIn = "IN"
)

// Filter is one search condition.
type Filter struct {
	PropertyName string   `json:"propertyName"`
	Operator     string   `json:"operator"`
	Values       []string `json:"values,omitempty"`
}

// FilterGroup ANDs its filters; groups are ORed.
type FilterGroup struct {
	Filters []Filter `json:"filters"`
}

// SearchRequest is the body of a search call.
type SearchRequest struct {
	FilterGroups []FilterGroup `json:"filterGroups"`
	Properties   []string      `json:"properties,omitempty"`
	Limit        int           `json:"limit,omitempty"`
	After        string        `json:"after,omitempty"`
}

// NextPage carries the cursor of the following page.
type NextPage struct {
	After string `json:"after"`
}

// Paging is present when more results are available.
type Paging struct {
	Next *NextPage `json:"next,omitempty"`
}

// SearchResponse is one page of search results.
type SearchResponse struct {
	Total   int      `json:"total"`
	Results []Object `json:"results"`
	Paging  *Paging  `json:"paging,omitempty"`
}

// NextCursor returns the cursor of the next page or "" on the last page.
func (r *SearchResponse) NextCursor() string {
	if r == nil || r.Paging == nil || r.Paging.Next == nil {
		return ""
	}
	return r.Paging.Next.After
}

// BatchReadRequest reads objects by id or by a unique property.
type BatchReadRequest struct {
	IDProperty string     `json:"idProperty,omitempty"`
	Inputs     []ObjectID `json:"inputs"`
	Properties []string   `json:"properties,omitempty"`
}
