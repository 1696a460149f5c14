package assisting

import (
	"fmt"
	"strings"

	"github.com/vfg2006/meta-ads-dashboard-api/internal/domain"
)

// MaxHistoryTurns limita quantas mensagens anteriores vão para o modelo
const MaxHistoryTurns = 10

const systemInstructions = `Você é um analista de tráfego pago especializado em Meta Ads.
Responda em português, de forma objetiva, usando apenas os números abaixo.
Quando os dados não forem suficientes para responder, diga isso claramente.`

// BuildSystemPrompt descreve o contexto agregado em texto para o modelo
func BuildSystemPrompt(ctx *domain.AssistantContext) string {
	var b strings.Builder
	b.WriteString(systemInstructions)
	b.WriteString("\n\nDados da conta")

	if ctx == nil {
		b.WriteString(": indisponíveis.")
		return b.String()
	}

	if ctx.Period != "" {
		fmt.Fprintf(&b, " (%s)", ctx.Period)
	}
	b.WriteString(":\n")

	fmt.Fprintf(&b, "- Investimento: %.2f\n", ctx.Spend)
	if ctx.Impressions != nil {
		fmt.Fprintf(&b, "- Impressões: %d\n", *ctx.Impressions)
	}
	if ctx.Reach != nil {
		fmt.Fprintf(&b, "- Alcance: %d\n", *ctx.Reach)
	}
	if ctx.Clicks != nil {
		fmt.Fprintf(&b, "- Cliques: %d\n", *ctx.Clicks)
	}
	if ctx.CTR != nil {
		fmt.Fprintf(&b, "- CTR médio: %.2f%%\n", *ctx.CTR)
	}
	if ctx.CPC != nil {
		fmt.Fprintf(&b, "- CPC médio: %.2f\n", *ctx.CPC)
	}
	if ctx.CPM != nil {
		fmt.Fprintf(&b, "- CPM médio: %.2f\n", *ctx.CPM)
	}

	if len(ctx.TopCampaigns) > 0 {
		b.WriteString("\nPrincipais campanhas:\n")
		for _, campaign := range ctx.TopCampaigns {
			fmt.Fprintf(&b, "- %s: %.2f\n", campaign.Name, campaign.Spend)
		}
	}

	if ctx.Retention != nil {
		fmt.Fprintf(&b, "\nRetenção de vídeo: %d reproduções, %d até 50%%, %d até 100%%\n",
			ctx.Retention.VideoPlays, ctx.Retention.P50, ctx.Retention.P100)
	}

	return strings.TrimRight(b.String(), "\n")
}

// BuildMessages monta a conversa: prompt de sistema, últimas mensagens do
// histórico (só user e assistant) e a pergunta atual.
func BuildMessages(req domain.AnalyzeRequest) []domain.ChatMessage {
	history := make([]domain.ChatMessage, 0, len(req.History))
	for _, message := range req.History {
		if message.Role != domain.RoleUser && message.Role != domain.RoleAssistant {
			continue
		}
		if strings.TrimSpace(message.Content) == "" {
			continue
		}
		history = append(history, message)
	}

	if len(history) > MaxHistoryTurns {
		history = history[len(history)-MaxHistoryTurns:]
	}

	messages := make([]domain.ChatMessage, 0, len(history)+2)
	messages = append(messages, domain.ChatMessage{Role: domain.RoleSystem, Content: BuildSystemPrompt(req.Context)})
	messages = append(messages, history...)
	messages = append(messages, domain.ChatMessage{Role: domain.RoleUser, Content: strings.TrimSpace(req.Question)})

	return messages
}

// ContextFromDashboard reduz o dashboard aos agregados aceitos pelo assistente
func ContextFromDashboard(period string, dashboard *domain.Dashboard) *domain.AssistantContext {
	if dashboard == nil {
		return nil
	}

	m := dashboard.Metrics
	ctx := &domain.AssistantContext{
		Period:      period,
		Spend:       m.TotalSpend,
		Impressions: &m.TotalImpressions,
		Clicks:      &m.TotalClicks,
		CTR:         &m.AvgCTR,
		CPC:         &m.AvgCPC,
		CPM:         &m.AvgCPM,
		Reach:       &m.TotalReach,
	}

	for _, campaign := range dashboard.TopCampaigns {
		ctx.TopCampaigns = append(ctx.TopCampaigns, domain.CampaignSpend{Name: campaign.Name, Spend: campaign.Spend})
	}

	return ctx
}
