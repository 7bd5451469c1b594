package normalize

import "strings"

// EmailParts is the canonical view of one email address. Zero-value
// fields mean the corresponding component was absent or unparseable.
type EmailParts struct {
	// Address is the full address, trimmed and lower-cased.
	Address string

	// Username is the part before the first @.
	Username string

	// BareUsername is Username with every dot removed, for providers
	// that ignore dots in the local part.
	BareUsername string

	// Domain is the part after the first @.
	Domain string

	// DomainRoot is the first label of Domain (company in company.co.uk).
	DomainRoot string
}

// Email splits a raw email address into its canonical parts. It splits
// once on @; addresses without an @ produce only the Address field.
func Email(raw string) EmailParts {
	address := strings.ToLower(strings.TrimSpace(raw))
	if address == "" {
		return EmailParts{}
	}

	parts := EmailParts{Address: address}
	username, domain, ok := strings.Cut(address, "@")
	if !ok {
		return parts
	}

	parts.Username = username
	parts.BareUsername = strings.ReplaceAll(username, ".", "")
	parts.Domain = domain
	parts.DomainRoot, _, _ = strings.Cut(domain, ".")
	return parts
}
