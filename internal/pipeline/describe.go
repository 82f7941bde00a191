package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/cardscan-cli/internal/grading"
	"github.com/sells-group/cardscan-cli/internal/model"
	"github.com/sells-group/cardscan-cli/pkg/anthropic"
)

const describeSystemPrompt = "You are a sports memorabilia expert writing concise collector descriptions of baseball cards."

// gradeCards attaches a condition estimate to every card and, when a
// describer is configured, a short AI-written description. Description
// failures are logged and skipped; grading itself cannot fail.
func (p *Pipeline) gradeCards(ctx context.Context, cards []model.CardRecord) {
	for i := range cards {
		card := &cards[i]
		card.AttachGrade(grading.Grade(card))

		if p.describer == nil {
			continue
		}
		if err := p.describeCard(ctx, card); err != nil {
			zap.L().Warn("grade: description failed",
				zap.String("card", card.CardPosition),
				zap.Error(err),
			)
		}
	}
}

func (p *Pipeline) describeCard(ctx context.Context, card *model.CardRecord) error {
	if card.PlayerName == "" {
		return nil
	}

	maxTokens := int64(p.cfg.Anthropic.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 300
	}

	callCtx, cancel := context.WithTimeout(ctx, p.lookupTimeout())
	defer cancel()

	resp, err := p.describer.CreateMessage(callCtx, anthropic.MessageRequest{
		Model:     p.cfg.Anthropic.Model,
		MaxTokens: maxTokens,
		System:    describeSystemPrompt,
		Messages: []anthropic.Message{
			{Role: "user", Content: describePrompt(card)},
		},
	})
	if err != nil {
		return err
	}

	text := strings.TrimSpace(resp.Text())
	if text != "" {
		card.AttachDescription(text)
	}
	return nil
}

// describePrompt builds the description request from whatever fields the
// card actually carries.
func describePrompt(card *model.CardRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a 2-3 sentence collector description of this baseball card:\n")
	fmt.Fprintf(&b, "Player: %s\n", card.PlayerName)
	if card.Team != "" {
		fmt.Fprintf(&b, "Team: %s\n", card.Team)
	}
	if card.Role != "" {
		fmt.Fprintf(&b, "Position: %s\n", card.Role)
	}
	if card.Year != "" {
		fmt.Fprintf(&b, "Year: %s\n", card.Year)
	}
	if card.Manufacturer != "" {
		fmt.Fprintf(&b, "Manufacturer: %s\n", card.Manufacturer)
	}
	if card.PlayerStats != nil {
		fmt.Fprintf(&b, "Career stats: AVG %s, HR %s, RBI %s\n",
			card.PlayerStats.CareerBattingAvg,
			card.PlayerStats.CareerHomeRuns,
			card.PlayerStats.CareerRBI,
		)
	}
	if card.MarketValue != nil {
		fmt.Fprintf(&b, "Recent average sold price: $%.2f across %d sales\n",
			card.MarketValue.AvgSoldPrice,
			card.MarketValue.NumSalesFound,
		)
	}
	if card.ConditionEstimate != nil {
		fmt.Fprintf(&b, "Estimated condition: %s\n", card.ConditionEstimate.Grade)
	}
	return b.String()
}
