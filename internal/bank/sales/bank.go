// Package sales holds the mock-test bank for sales and customer-facing
// business English.
package sales

import "github.com/speakeasy-learn/eslprep/internal/bank"

func init() {
	bank.Register("sales", &bank.Bank{
		Name: "Workplace English: Sales",
		Questions: []bank.Question{
			// Tier 1
			{
				ID: "sales-t1-01", Type: bank.TypeChoice, Tier: 1, Skill: "Vocabulary",
				Prompt:  "Pick the correct word.",
				Stem:    "The ___ is the amount a customer pays for a product.",
				Options: []string{"price", "prize", "praise", "prose"},
				Correct: 0,
				Explain: "Price is what the customer pays; a prize is an award.",
			},
			{
				ID: "sales-t1-02", Type: bank.TypeInput, Tier: 1, Skill: "Vocabulary",
				Prompt:   "Type the missing word.",
				Stem:     "Thank you for your order. You will receive a ___ by email. (proof of payment)",
				Accepted: []string{"receipt", "invoice"},
				Explain:  "A receipt (or invoice) confirms the payment.",
			},
			{
				ID: "sales-t1-03", Type: bank.TypeChoice, Tier: 1, Skill: "Speaking",
				Prompt: "Choose the best phrase to open a sales call.",
				Stem:   "You are calling a new customer for the first time.",
				Options: []string{
					"Buy this now.",
					"Good morning, this is Ana from Brightline. Do you have a moment to talk?",
					"Why haven't you answered my emails?",
					"I need to sell you something.",
				},
				Correct: 1,
				Explain: "Introduce yourself and ask permission before pitching.",
			},
			// Tier 2
			{
				ID: "sales-t2-01", Type: bank.TypeChoice, Tier: 2, Skill: "Speaking",
				Prompt: "Choose the best way to handle the objection.",
				Stem:   "A customer says: 'It's too expensive.'",
				Options: []string{
					"No it isn't.",
					"I understand. May I show you how the cost compares to what you'd save?",
					"Then buy something cheaper somewhere else.",
					"Everyone says that.",
				},
				Correct: 1,
				Explain: "Acknowledge the objection, then reframe around value.",
			},
			{
				ID: "sales-t2-02", Type: bank.TypeInput, Tier: 2, Skill: "Vocabulary",
				Prompt:   "Answer in one word.",
				Stem:     "A reduction in price offered to encourage a purchase.",
				Accepted: []string{"discount"},
				Explain:  "A discount lowers the listed price.",
			},
			// Tier 3
			{
				ID: "sales-t3-01", Type: bank.TypeChoice, Tier: 3, Skill: "Reading",
				Prompt: "Which closing line is most appropriate for a formal proposal email?",
				Stem:   "You are sending a quotation to a prospective client.",
				Options: []string{
					"Hit me up if you're keen.",
					"We look forward to the opportunity of working with you and remain at your disposal for any questions.",
					"Let me know ASAP or the deal's off.",
					"Cheers, talk soon.",
				},
				Correct: 1,
				Explain: "Formal proposals close with a forward-looking, courteous line.",
			},
			{
				ID: "sales-t3-02", Type: bank.TypeInput, Tier: 3, Skill: "Vocabulary",
				Prompt:  "Complete the idiom with one word.",
				Stem:    "We finally sealed the ___ after three months of negotiation.",
				Answer:  "deal",
				Explain: "'Seal the deal' means to finalise an agreement.",
			},
		},
	})
}
