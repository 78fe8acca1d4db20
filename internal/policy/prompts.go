package policy

import (
	"fmt"
	"strings"
)

// SystemPrompt is the fixed instruction seeding every conversation turn.
const SystemPrompt = `You are an expert policy generator assistant embedded inside a product.

Your responsibilities:

1) Understand the company profile
- Ask targeted questions to fill any missing but important fields:
  - Jurisdictions / regions where the company operates
  - Industry / sector
  - Company size and remote vs office-based work
  - Whether they use BYOD or company-owned devices
  - Whether they handle sensitive data (health, financial, personal data)
  - Which compliance standards matter to them (ISO 27001, SOC 2, GDPR, HIPAA, etc.)

2) Decide which policy type and structure make sense
- The supported policy types are:
  - IT_SECURITY
  - HR
  - LEGAL_PRIVACY
  - INFORMATION_SECURITY
- Choose sections and emphasis based on the company profile.

3) Generate professional policies in Markdown format
- Use proper markdown formatting with headers, bullet points, and bold text
- Tailor the language to the company profile. Avoid generic filler text.

4) Avoid overstepping
- You are not a law firm and cannot provide legal advice.
- Do NOT state that the policy guarantees compliance; say that it is "designed to align with" relevant standards.

5) Reference external content when helpful
- If the user provides a URL (company website, existing policy, compliance docs), use the fetch_url tool to gather context.
- Summarize key information from fetched content rather than dumping raw text.
- If a fetch fails, politely ask the user to describe the relevant information or paste the content directly.

When chatting normally, be conversational and ask focused questions.
When calling tools, provide precise, structured arguments based on the known company profile.`

var sectionPlans = map[Type]string{
	TypeITSecurity:   "Purpose and Scope, Policy Statement, Access Control, Data Protection, Network Security, Endpoint Security, Incident Response, Physical Security, Compliance and Audit, Policy Enforcement",
	TypeHR:           "Purpose and Scope, Employment Policies, Compensation and Benefits, Work Schedule, Code of Conduct, Performance Management, Workplace Safety, Anti-Harassment, Grievance Procedures, Disciplinary Actions, Termination",
	TypeLegalPrivacy: "Introduction, Data Collection, Legal Basis, Data Usage, User Rights, Data Retention, Data Security, Cookies, International Transfers, Children's Privacy, Policy Changes, Contact Information",
	TypeInfoSecurity: "Purpose and Scope, Security Objectives, Roles and Responsibilities, Information Classification, Information Handling, Access Management, Risk Management, Security Controls, Security Awareness, Incident Management, Business Continuity, Compliance",
}

func orPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}

// SynthesisPrompt builds the deterministic prompt for one policy type.
// Unset profile fields render as bracketed placeholders so the model always
// sees a complete, well-formed prompt shape.
func SynthesisPrompt(t Type, profile CompanyProfile) string {
	baseInfo := fmt.Sprintf(`Company Name: %s
Industry: %s
Company Size: %s
Additional Context: %s`,
		orPlaceholder(profile.CompanyName, "[Company Name]"),
		orPlaceholder(profile.Industry, "[Industry]"),
		orPlaceholder(profile.CompanySize, "[Company Size]"),
		orPlaceholder(profile.AdditionalInfo, "None provided"))

	return fmt.Sprintf(`Generate a comprehensive %s for:
%s

Structure with sections: %s.

The policy should be professional and designed to align with %s standards.

Respond with clean Markdown only: a single top-level heading with the policy title, a "*Last updated: YYYY-MM-DD*" line, a table of contents, then "##" section headings with bullet points and bold text where appropriate. Do not wrap the document in prose or code fences.`,
		TypeLabels[t], baseInfo, sectionPlans[t], strings.Join(ComplianceStandards, ", "))
}

// SynthesisSystemPrompt instructs the single-shot synthesis request.
const SynthesisSystemPrompt = "You are a professional policy generator. Generate comprehensive, well-structured policy documents in Markdown format only."
