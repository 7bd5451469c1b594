package hubspot

import "strings"

// Object types the engine resolves.
const (
	ObjectTypeContacts  = "contacts"
	ObjectTypeCompanies = "companies"
)

// Search filter operators understood by the CRM search endpoint.
const (
	OperatorEQ             = "EQ"
	OperatorContainsToken  = "CONTAINS_TOKEN"
	OperatorNotHasProperty = "NOT_HAS_PROPERTY"
)

// Contact properties used by the engine.
const (
	PropFirstName     = "firstname"
	PropLastName      = "lastname"
	PropPhone         = "phone"
	PropEmail         = "email"
	PropCompany       = "company"
	PropLastAnalytics = "hs_analytics_last_timestamp"
)

// Company properties used by the engine.
const (
	PropName           = "name"
	PropDomain         = "domain"
	PropWebsite        = "website"
	PropCreateDate     = "createdate"
	PropMergedObjectID = "hs_merged_object_ids"
)

// Record is one CRM object as returned by the API: an opaque identifier
// plus a property map. The engine holds records only for the duration of
// a resolution run.
type Record struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
}

// Property returns a trimmed property value, or "" when absent.
func (r Record) Property(name string) string {
	return strings.TrimSpace(r.Properties[name])
}

// HasProperty reports whether the record carries a non-empty value for
// the property.
func (r Record) HasProperty(name string) bool {
	return r.Property(name) != ""
}

// Filter is a single predicate inside a search filter group.
type Filter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value,omitempty"`
}

// FilterGroup is a conjunction of filters. The search endpoint ORs
// groups together and ANDs filters within a group.
type FilterGroup struct {
	Filters []Filter `json:"filters"`
}

// SearchRequest describes one candidate query: either structured filter
// groups or a free-text query, never both.
type SearchRequest struct {
	FilterGroups []FilterGroup `json:"filterGroups,omitempty"`
	Query        string        `json:"query,omitempty"`
	Properties   []string      `json:"properties,omitempty"`
	Limit        int           `json:"limit,omitempty"`
}

// searchResponse is the wire shape of a search result page.
type searchResponse struct {
	Total   int      `json:"total"`
	Results []Record `json:"results"`
}

// mergeRequest is the wire shape of a merge call.
type mergeRequest struct {
	PrimaryObjectID string `json:"primaryObjectId"`
	ObjectIDToMerge string `json:"objectIdToMerge"`
}

// updateRequest is the wire shape of a record patch.
type updateRequest struct {
	Properties map[string]string `json:"properties"`
}
