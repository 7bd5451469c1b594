package dedupe

import (
	"strings"

	"github.com/peted77/hubspot-fun/internal/hubspot"
	"github.com/peted77/hubspot-fun/internal/normalize"
)

// contactProperties is the property list requested for the enrolled
// contact and every candidate.
var contactProperties = []string{
	hubspot.PropFirstName,
	hubspot.PropLastName,
	hubspot.PropPhone,
	hubspot.PropEmail,
	hubspot.PropCompany,
	hubspot.PropLastAnalytics,
}

// Contact strategy names, ordered strongest to weakest.
const (
	StrategyNamePhone         = "name_phone"
	StrategyNameEmail         = "name_email"
	StrategyNameEmailUsername = "name_email_username"
	StrategyEmailExact        = "email_exact"
	StrategyEmailDomainRoot   = "email_domain_root"
	StrategyBareUsername      = "bare_username"
	StrategyNameNoEmail       = "name_no_email"
	StrategyNameCompany       = "name_company"
)

// nameFilters is the exact first+last name conjunction most contact
// strategies start from.
func nameFilters(s ContactSubject) []hubspot.Filter {
	return []hubspot.Filter{
		{PropertyName: hubspot.PropFirstName, Operator: hubspot.OperatorEQ, Value: s.FirstName},
		{PropertyName: hubspot.PropLastName, Operator: hubspot.OperatorEQ, Value: s.LastName},
	}
}

func filterQuery(filters ...hubspot.Filter) hubspot.SearchRequest {
	return hubspot.SearchRequest{
		FilterGroups: []hubspot.FilterGroup{{Filters: filters}},
	}
}

func textQuery(query string) hubspot.SearchRequest {
	return hubspot.SearchRequest{Query: query}
}

// contactStrategies returns the contact cascade in priority order.
// The order is fixed: exact name+phone and name+email tiers
// first, email-only tiers next, then the no-email and same-company
// fallbacks for contacts that never supplied an address.
func contactStrategies() []Strategy[ContactSubject] {
	return []Strategy[ContactSubject]{
		{
			Name:  StrategyNamePhone,
			Ready: func(s ContactSubject) bool { return s.HasName() && s.PhoneDigits != "" },
			Query: func(s ContactSubject) hubspot.SearchRequest {
				return filterQuery(nameFilters(s)...)
			},
			Match: func(s ContactSubject, c hubspot.Record) bool {
				return normalize.PhoneDigits(c.Property(hubspot.PropPhone)) == s.PhoneDigits
			},
		},
		{
			Name:  StrategyNameEmail,
			Ready: func(s ContactSubject) bool { return s.HasName() && s.Email.Address != "" },
			Query: func(s ContactSubject) hubspot.SearchRequest {
				filters := append(nameFilters(s), hubspot.Filter{
					PropertyName: hubspot.PropEmail,
					Operator:     hubspot.OperatorEQ,
					Value:        s.Email.Address,
				})
				return filterQuery(filters...)
			},
			Match: func(s ContactSubject, c hubspot.Record) bool {
				return strings.ToLower(c.Property(hubspot.PropEmail)) == s.Email.Address
			},
		},
		{
			Name:  StrategyNameEmailUsername,
			Ready: func(s ContactSubject) bool { return s.HasName() && s.Email.Username != "" },
			Query: func(s ContactSubject) hubspot.SearchRequest {
				return filterQuery(nameFilters(s)...)
			},
			Match: func(s ContactSubject, c hubspot.Record) bool {
				candidate := normalize.Email(c.Property(hubspot.PropEmail))
				return candidate.Username != "" && candidate.Username == s.Email.Username
			},
		},
		{
			Name:  StrategyEmailExact,
			Ready: func(s ContactSubject) bool { return s.Email.Address != "" },
			Query: func(s ContactSubject) hubspot.SearchRequest {
				return filterQuery(hubspot.Filter{
					PropertyName: hubspot.PropEmail,
					Operator:     hubspot.OperatorEQ,
					Value:        s.Email.Address,
				})
			},
			Match: func(s ContactSubject, c hubspot.Record) bool {
				return strings.ToLower(c.Property(hubspot.PropEmail)) == s.Email.Address
			},
		},
		{
			Name: StrategyEmailDomainRoot,
			Ready: func(s ContactSubject) bool {
				return s.Email.Username != "" && s.Email.DomainRoot != ""
			},
			Query: func(s ContactSubject) hubspot.SearchRequest {
				return textQuery(s.Email.Username)
			},
			Match: func(s ContactSubject, c hubspot.Record) bool {
				candidate := normalize.Email(c.Property(hubspot.PropEmail))
				return candidate.Username == s.Email.Username &&
					candidate.DomainRoot == s.Email.DomainRoot
			},
		},
		{
			Name:  StrategyBareUsername,
			Ready: func(s ContactSubject) bool { return s.Email.BareUsername != "" },
			Query: func(s ContactSubject) hubspot.SearchRequest {
				return textQuery(s.Email.BareUsername)
			},
			Match: func(s ContactSubject, c hubspot.Record) bool {
				candidate := normalize.Email(c.Property(hubspot.PropEmail))
				return candidate.BareUsername != "" &&
					candidate.BareUsername == s.Email.BareUsername
			},
		},
		{
			Name:  StrategyNameNoEmail,
			Ready: func(s ContactSubject) bool { return s.HasName() },
			Query: func(s ContactSubject) hubspot.SearchRequest {
				filters := append(nameFilters(s), hubspot.Filter{
					PropertyName: hubspot.PropEmail,
					Operator:     hubspot.OperatorNotHasProperty,
				})
				return filterQuery(filters...)
			},
			Match: func(_ ContactSubject, c hubspot.Record) bool {
				return !c.HasProperty(hubspot.PropEmail)
			},
		},
		{
			Name:  StrategyNameCompany,
			Ready: func(s ContactSubject) bool { return s.HasName() && s.Company != "" },
			Query: func(s ContactSubject) hubspot.SearchRequest {
				return filterQuery(nameFilters(s)...)
			},
			Match: func(s ContactSubject, c hubspot.Record) bool {
				return strings.EqualFold(normalize.Name(c.Property(hubspot.PropCompany)), s.Company)
			},
		},
	}
}
