package policy

import "time"

// Type enumerates the supported policy categories.
type Type string

const (
	TypeITSecurity   Type = "IT_SECURITY"
	TypeHR           Type = "HR"
	TypeLegalPrivacy Type = "LEGAL_PRIVACY"
	TypeInfoSecurity Type = "INFORMATION_SECURITY"
)

// TypeLabels maps a policy type to its human-readable name.
var TypeLabels = map[Type]string{
	TypeITSecurity:   "IT Security Policy",
	TypeHR:           "HR Policy",
	TypeLegalPrivacy: "Legal & Privacy Policy",
	TypeInfoSecurity: "Information Security Policy",
}

// ComplianceStandards are the frameworks every generated policy is asked to
// align with.
var ComplianceStandards = []string{"ISO 27001", "SOC 2", "GDPR", "HIPAA"}

// Valid reports whether t is one of the supported categories.
func (t Type) Valid() bool {
	_, ok := TypeLabels[t]
	return ok
}

// CompanyProfile is the business context interpolated into the synthesis
// prompt. It is owned by the caller and never mutated here.
type CompanyProfile struct {
	CompanyName    string `json:"company_name"`
	Industry       string `json:"industry"`
	CompanySize    string `json:"company_size"`
	AdditionalInfo string `json:"additional_context"`
}

// Section is one titled block of a structured policy document.
type Section struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Metadata describes the provenance of a generated document.
type Metadata struct {
	Version       string   `json:"version"`
	EffectiveDate string   `json:"effectiveDate"`
	Standards     []string `json:"standards"`
}

// Document is the synthesized policy artifact. Created once per successful
// synthesis call and immutable thereafter; ownership passes to the caller.
type Document struct {
	ID          string    `json:"id"`
	Type        Type      `json:"type"`
	Title       string    `json:"title"`
	CompanyName string    `json:"companyName"`
	Markdown    string    `json:"markdown"`
	Sections    []Section `json:"sections"`
	Metadata    Metadata  `json:"metadata"`
	CreatedAt   time.Time `json:"createdAt"`
}
