package domain

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type CampaignSpend struct {
	Name  string  `json:"name"`
	Spend float64 `json:"spend"`
}

type RetentionSummary struct {
	VideoPlays int64 `json:"videoPlays"`
	P50        int64 `json:"p50"`
	P100       int64 `json:"p100"`
}

// AssistantContext carrega apenas números já agregados.
// Linhas brutas e credenciais nunca fazem parte do contexto.
type AssistantContext struct {
	Period       string            `json:"period"`
	Spend        float64           `json:"spend"`
	Impressions  *int64            `json:"impressions,omitempty"`
	Clicks       *int64            `json:"clicks,omitempty"`
	CTR          *float64          `json:"ctr,omitempty"`
	CPC          *float64          `json:"cpc,omitempty"`
	CPM          *float64          `json:"cpm,omitempty"`
	Reach        *int64            `json:"reach,omitempty"`
	TopCampaigns []CampaignSpend   `json:"topCampaigns,omitempty"`
	Retention    *RetentionSummary `json:"retention,omitempty"`
}

type AnalyzeRequest struct {
	Context  *AssistantContext `json:"context"`
	Question string            `json:"question"`
	History  []ChatMessage     `json:"history"`
}

type TokenUsage struct {
	PromptTokens     int64 `json:"promptTokens"`
	CompletionTokens int64 `json:"completionTokens"`
	TotalTokens      int64 `json:"totalTokens"`
}

// Answer é a resposta do modelo de linguagem
type Answer struct {
	Text  string     `json:"text"`
	Usage TokenUsage `json:"usage"`
}

type AnalyzeResponse struct {
	Response string     `json:"response"`
	Usage    TokenUsage `json:"usage"`
}
