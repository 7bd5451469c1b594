package dedupe

import (
	"strconv"
	"time"

	"github.com/peted77/hubspot-fun/internal/hubspot"
	"github.com/peted77/hubspot-fun/internal/normalize"
)

// ContactSubject is the immutable, canonicalized view of one enrolled
// contact. It is derived once per run and never persisted.
type ContactSubject struct {
	ID        string
	FirstName string
	LastName  string

	// RawPhone is the stored value; PhoneDigits the comparable form;
	// PhoneE164 the canonical form written back when it differs.
	RawPhone    string
	PhoneDigits string
	PhoneE164   string

	Email   normalize.EmailParts
	Company string

	// LastActivity orders survivor selection; missing or unparseable
	// timestamps resolve to the epoch.
	LastActivity time.Time
}

// NewContactSubject canonicalizes a fetched contact record.
func NewContactSubject(rec hubspot.Record) ContactSubject {
	rawPhone := rec.Property(hubspot.PropPhone)
	return ContactSubject{
		ID:           rec.ID,
		FirstName:    normalize.Name(rec.Property(hubspot.PropFirstName)),
		LastName:     normalize.Name(rec.Property(hubspot.PropLastName)),
		RawPhone:     rawPhone,
		PhoneDigits:  normalize.PhoneDigits(rawPhone),
		PhoneE164:    normalize.E164(rawPhone),
		Email:        normalize.Email(rec.Property(hubspot.PropEmail)),
		Company:      normalize.Name(rec.Property(hubspot.PropCompany)),
		LastActivity: parseTimestamp(rec.Property(hubspot.PropLastAnalytics)),
	}
}

// HasName reports whether both name parts survived normalization.
func (s ContactSubject) HasName() bool {
	return s.FirstName != "" && s.LastName != ""
}

// CompanySubject is the immutable, canonicalized view of one enrolled
// company.
type CompanySubject struct {
	ID   string
	Name string

	// RawDomain is the stored value; Domain has a leading www. stripped.
	RawDomain string
	Domain    string

	// RawWebsite is the stored value; Website has scheme, www. and a
	// trailing slash stripped.
	RawWebsite string
	Website    string

	// CreatedAt orders survivor selection (oldest wins); missing or
	// unparseable timestamps resolve to the epoch.
	CreatedAt time.Time

	// PreviouslyMerged marks a record that already absorbed another
	// one. Such records are skipped as merge targets except under the
	// domain-equality tier.
	PreviouslyMerged bool
}

// NewCompanySubject canonicalizes a fetched company record.
func NewCompanySubject(rec hubspot.Record) CompanySubject {
	rawDomain := rec.Property(hubspot.PropDomain)
	rawWebsite := rec.Property(hubspot.PropWebsite)
	return CompanySubject{
		ID:               rec.ID,
		Name:             normalize.Name(rec.Property(hubspot.PropName)),
		RawDomain:        rawDomain,
		Domain:           normalize.Domain(rawDomain),
		RawWebsite:       rawWebsite,
		Website:          normalize.Website(rawWebsite),
		CreatedAt:        parseTimestamp(rec.Property(hubspot.PropCreateDate)),
		PreviouslyMerged: rec.HasProperty(hubspot.PropMergedObjectID),
	}
}

// parseTimestamp reads a CRM timestamp property, which the API returns
// either as RFC 3339 or as unix milliseconds. Anything unparseable
// resolves to the zero time.
func parseTimestamp(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts
	}
	if millis, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.UnixMilli(millis).UTC()
	}
	return time.Time{}
}
