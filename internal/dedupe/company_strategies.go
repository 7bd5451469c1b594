package dedupe

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/peted77/hubspot-fun/internal/hubspot"
	"github.com/peted77/hubspot-fun/internal/normalize"
)

// companyProperties is the property list requested for the enrolled
// company and every candidate.
var companyProperties = []string{
	hubspot.PropName,
	hubspot.PropDomain,
	hubspot.PropWebsite,
	hubspot.PropCreateDate,
	hubspot.PropMergedObjectID,
}

// Company strategy names, ordered strongest to weakest. The domain
// tier is the only one strong enough to re-merge previously merged
// records.
const (
	StrategyDomainExact       = "domain_exact"
	StrategyNameToken         = "name_token"
	StrategyWebsiteExact      = "website_exact"
	StrategyWebsiteNormalized = "website_normalized"
	StrategyNameFuzzy         = "name_fuzzy"
)

// companyStrategies returns the company cascade in priority order.
// The fuzzy tier accepts only when similarity exceeds the threshold,
// so it can never outrank an exact tier.
func companyStrategies(fuzzyThreshold float64) []Strategy[CompanySubject] {
	return []Strategy[CompanySubject]{
		{
			Name:  StrategyDomainExact,
			Ready: func(s CompanySubject) bool { return s.Domain != "" },
			Query: func(s CompanySubject) hubspot.SearchRequest {
				// Two groups: stored domains may or may not carry the
				// www. prefix, and groups OR together.
				return hubspot.SearchRequest{FilterGroups: []hubspot.FilterGroup{
					{Filters: []hubspot.Filter{
						{PropertyName: hubspot.PropDomain, Operator: hubspot.OperatorEQ, Value: s.Domain},
					}},
					{Filters: []hubspot.Filter{
						{PropertyName: hubspot.PropDomain, Operator: hubspot.OperatorEQ, Value: "www." + s.Domain},
					}},
				}}
			},
			Match: func(s CompanySubject, c hubspot.Record) bool {
				return strings.EqualFold(normalize.Domain(c.Property(hubspot.PropDomain)), s.Domain)
			},
		},
		{
			Name:  StrategyNameToken,
			Ready: func(s CompanySubject) bool { return s.Name != "" },
			Query: func(s CompanySubject) hubspot.SearchRequest {
				return filterQuery(hubspot.Filter{
					PropertyName: hubspot.PropName,
					Operator:     hubspot.OperatorContainsToken,
					Value:        s.Name,
				})
			},
			Match: func(s CompanySubject, c hubspot.Record) bool {
				name := normalize.Name(c.Property(hubspot.PropName))
				return containsToken(name, s.Name) || containsToken(s.Name, name)
			},
		},
		{
			Name:  StrategyWebsiteExact,
			Ready: func(s CompanySubject) bool { return s.RawWebsite != "" },
			Query: func(s CompanySubject) hubspot.SearchRequest {
				return filterQuery(hubspot.Filter{
					PropertyName: hubspot.PropWebsite,
					Operator:     hubspot.OperatorEQ,
					Value:        s.RawWebsite,
				})
			},
			Match: func(s CompanySubject, c hubspot.Record) bool {
				return strings.EqualFold(c.Property(hubspot.PropWebsite), s.RawWebsite)
			},
		},
		{
			Name:  StrategyWebsiteNormalized,
			Ready: func(s CompanySubject) bool { return s.Website != "" },
			Query: func(s CompanySubject) hubspot.SearchRequest {
				return filterQuery(hubspot.Filter{
					PropertyName: hubspot.PropWebsite,
					Operator:     hubspot.OperatorContainsToken,
					Value:        s.Website,
				})
			},
			Match: func(s CompanySubject, c hubspot.Record) bool {
				return strings.EqualFold(normalize.Website(c.Property(hubspot.PropWebsite)), s.Website)
			},
		},
		{
			Name:  StrategyNameFuzzy,
			Ready: func(s CompanySubject) bool { return s.Name != "" },
			Query: func(s CompanySubject) hubspot.SearchRequest {
				return textQuery(s.Name)
			},
			Match: func(s CompanySubject, c hubspot.Record) bool {
				name := normalize.Name(c.Property(hubspot.PropName))
				return name != "" && nameSimilarity(name, s.Name) > fuzzyThreshold
			},
		},
	}
}

// nameSimilarity computes 1 - distance/max(len(a), len(b)) over the
// lower-cased names, using exact Levenshtein edit distance. Lengths
// are rune counts so multi-byte names keep the formula meaningful.
func nameSimilarity(a, b string) float64 {
	la := strings.ToLower(a)
	lb := strings.ToLower(b)
	if la == lb {
		return 1
	}

	longest := utf8.RuneCountInString(la)
	if n := utf8.RuneCountInString(lb); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}

	distance := levenshtein.ComputeDistance(la, lb)
	return 1 - float64(distance)/float64(longest)
}

// containsToken reports whether needle occurs inside haystack as a
// whole token sequence, not a raw substring: "Acme" is contained in
// "Acme Holdings" but not in "Acmeta".
func containsToken(haystack, needle string) bool {
	hay := tokenize(haystack)
	want := tokenize(needle)
	if len(want) == 0 || len(want) > len(hay) {
		return false
	}

	for start := 0; start+len(want) <= len(hay); start++ {
		matched := true
		for i, token := range want {
			if hay[start+i] != token {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// tokenize splits on any non-alphanumeric rune and lower-cases the
// resulting tokens.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for i, field := range fields {
		fields[i] = strings.ToLower(field)
	}
	return fields
}
