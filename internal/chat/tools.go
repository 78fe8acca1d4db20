package chat

import (
	"github.com/policypilot/policypilot/internal/llm"
	"github.com/policypilot/policypilot/internal/policy"
)

// ToolName is the closed set of tools the model may call. The dispatcher
// switches exhaustively over it so an unhandled tool is a visible gap, not
// a silent no-op.
type ToolName string

const (
	ToolGeneratePolicy ToolName = "generate_policy"
	ToolFetchURL       ToolName = "fetch_url"
)

type generatePolicyArgs struct {
	PolicyType        string `json:"policy_type"`
	CompanyName       string `json:"company_name"`
	Industry          string `json:"industry"`
	CompanySize       string `json:"company_size"`
	AdditionalContext string `json:"additional_context"`
}

type fetchURLArgs struct {
	URL string `json:"url"`
}

// Catalog is the tool list sent with every orchestrated completion
// request.
func Catalog() []llm.Tool {
	return []llm.Tool{
		{
			Type: "function",
			Function: llm.FunctionDef{
				Name: string(ToolGeneratePolicy),
				Description: "Generate a professional policy document. Only call this when the user has provided " +
					"their company information AND explicitly wants to create/generate the policy. Do NOT call this " +
					"for general questions or when the user is just asking about capabilities.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"policy_type": map[string]any{
							"type": "string",
							"enum": []string{
								string(policy.TypeITSecurity),
								string(policy.TypeHR),
								string(policy.TypeLegalPrivacy),
								string(policy.TypeInfoSecurity),
							},
							"description": "The type of policy to generate",
						},
						"company_name": map[string]any{
							"type":        "string",
							"description": "The name of the company",
						},
						"industry": map[string]any{
							"type":        "string",
							"description": "The industry or sector of the company",
						},
						"company_size": map[string]any{
							"type":        "string",
							"description": `The approximate size of the company (e.g., "50 employees", "500+")`,
						},
						"additional_context": map[string]any{
							"type":        "string",
							"description": "Any other relevant context: regions, remote/BYOD setup, compliance targets",
						},
					},
					"required": []string{"policy_type", "company_name"},
				},
			},
		},
		{
			Type: "function",
			Function: llm.FunctionDef{
				Name: string(ToolFetchURL),
				Description: "Fetch the content of a web page (company website, existing policy, compliance docs) " +
					"as markdown to gather context about the company.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"url": map[string]any{
							"type":        "string",
							"description": "The http(s) URL to fetch",
						},
					},
					"required": []string{"url"},
				},
			},
		},
	}
}
