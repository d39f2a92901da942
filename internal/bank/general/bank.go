// Package general is the default question bank used when no context is
// selected or the requested context is unknown.
package general

import "github.com/speakeasy-learn/eslprep/internal/bank"

func init() {
	bank.Register(bank.DefaultContext, &bank.Bank{
		Name: "General English",
		Questions: []bank.Question{
			// Tier 1
			{
				ID: "gen-t1-01", Type: bank.TypeChoice, Tier: 1, Skill: "Grammar",
				Prompt:  "Choose the correct form.",
				Stem:    "She ___ to work every day.",
				Options: []string{"go", "goes", "going", "gone"},
				Correct: 1,
				Explain: "Third-person singular present simple takes -es: she goes.",
			},
			{
				ID: "gen-t1-02", Type: bank.TypeChoice, Tier: 1, Skill: "Vocabulary",
				Prompt:  "Pick the opposite of the word in bold.",
				Stem:    "The shop is **open** on Sundays.",
				Options: []string{"closed", "empty", "early", "busy"},
				Correct: 0,
				Explain: "Open and closed are opposites.",
			},
			{
				ID: "gen-t1-03", Type: bank.TypeInput, Tier: 1, Skill: "Vocabulary",
				Prompt:  "Type the missing word.",
				Stem:    "I ___ breakfast at seven o'clock this morning. (past of 'have')",
				Answer:  "had",
				Explain: "The past simple of 'have' is 'had'.",
			},
			// Tier 2
			{
				ID: "gen-t2-01", Type: bank.TypeChoice, Tier: 2, Skill: "Grammar",
				Prompt:  "Choose the correct option.",
				Stem:    "If it ___ tomorrow, we will stay at home.",
				Options: []string{"rains", "will rain", "rained", "is raining"},
				Correct: 0,
				Explain: "First conditional: present simple in the if-clause.",
			},
			{
				ID: "gen-t2-02", Type: bank.TypeInput, Tier: 2, Skill: "Reading",
				Prompt:   "Answer in one word.",
				Stem:     "A word that means 'very important' and starts with 'e'.",
				Accepted: []string{"essential"},
				Explain:  "Essential means absolutely necessary or very important.",
			},
			{
				ID: "gen-t2-03", Type: bank.TypeChoice, Tier: 2, Skill: "Vocabulary",
				Prompt:  "Which word completes the collocation?",
				Stem:    "Could you ___ me a favour?",
				Options: []string{"make", "do", "take", "give"},
				Correct: 1,
				Explain: "The fixed collocation is 'do someone a favour'.",
			},
			// Tier 3
			{
				ID: "gen-t3-01", Type: bank.TypeChoice, Tier: 3, Skill: "Grammar",
				Prompt:  "Choose the best option.",
				Stem:    "Hardly ___ the meeting when the fire alarm went off.",
				Options: []string{"we had started", "had we started", "we started", "did we started"},
				Correct: 1,
				Explain: "Negative adverbials like 'hardly' trigger inversion: hardly had we started.",
			},
			{
				ID: "gen-t3-02", Type: bank.TypeInput, Tier: 3, Skill: "Vocabulary",
				Prompt:  "Complete the idiom with one word.",
				Stem:    "It costs an arm and a ___.",
				Answer:  "leg",
				Explain: "'Cost an arm and a leg' means to be very expensive.",
			},
			{
				ID: "gen-t3-03", Type: bank.TypeChoice, Tier: 3, Skill: "Reading",
				Prompt:  "Which word is closest in meaning to 'ubiquitous'?",
				Stem:    "Smartphones have become ubiquitous in modern life.",
				Options: []string{"rare", "everywhere", "expensive", "unnecessary"},
				Correct: 1,
				Explain: "Ubiquitous means present or found everywhere.",
			},
		},
	})
}
