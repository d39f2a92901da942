// Package hospitality holds the mock-test bank for hotel and restaurant
// workplace English.
package hospitality

import "github.com/speakeasy-learn/eslprep/internal/bank"

func init() {
	bank.Register("hospitality", &bank.Bank{
		Name: "Workplace English: Hospitality",
		Questions: []bank.Question{
			// Tier 1
			{
				ID: "hosp-t1-01", Type: bank.TypeChoice, Tier: 1, Skill: "Speaking",
				Prompt: "Choose the most polite greeting for a hotel guest.",
				Stem:   "A guest arrives at reception.",
				Options: []string{
					"What do you want?",
					"Good afternoon, welcome to the Riverside Hotel. How may I help you?",
					"Yes?",
					"Wait a minute.",
				},
				Correct: 1,
				Explain: "Front-desk greetings open with a welcome and an offer of help.",
			},
			{
				ID: "hosp-t1-02", Type: bank.TypeInput, Tier: 1, Skill: "Vocabulary",
				Prompt:   "Type the missing word.",
				Stem:     "Would you like to make a ___ for dinner tonight? (booking a table)",
				Accepted: []string{"reservation", "booking"},
				Explain:  "Restaurants take reservations (or bookings) for tables.",
			},
			{
				ID: "hosp-t1-03", Type: bank.TypeChoice, Tier: 1, Skill: "Vocabulary",
				Prompt:  "Pick the correct word.",
				Stem:    "The ___ carries guests' luggage to their rooms.",
				Options: []string{"porter", "chef", "waiter", "cashier"},
				Correct: 0,
				Explain: "A porter (or bellhop) handles luggage.",
			},
			// Tier 2
			{
				ID: "hosp-t2-01", Type: bank.TypeChoice, Tier: 2, Skill: "Speaking",
				Prompt: "Choose the best response to a complaint.",
				Stem:   "A guest says their room is too noisy.",
				Options: []string{
					"That's not my problem.",
					"All rooms are noisy.",
					"I'm very sorry about that. Let me see if we can move you to a quieter room.",
					"You should have booked a suite.",
				},
				Correct: 2,
				Explain: "Apologise first, then offer a concrete solution.",
			},
			{
				ID: "hosp-t2-02", Type: bank.TypeInput, Tier: 2, Skill: "Vocabulary",
				Prompt:   "Answer in one word.",
				Stem:     "The time by which guests must leave their rooms on departure day.",
				Accepted: []string{"checkout", "check-out"},
				Explain:  "Check-out time is usually late morning.",
			},
			// Tier 3
			{
				ID: "hosp-t3-01", Type: bank.TypeChoice, Tier: 3, Skill: "Reading",
				Prompt: "Choose the sentence with the most appropriate register for a written apology.",
				Stem:   "A guest found their booking had been lost.",
				Options: []string{
					"Sorry about the mix-up, these things happen.",
					"We sincerely apologise for the inconvenience caused by the error in your reservation.",
					"Our bad - we lost your booking.",
					"The booking system made a mistake, not us.",
				},
				Correct: 1,
				Explain: "Formal written apologies avoid casual phrasing and accept responsibility.",
			},
			{
				ID: "hosp-t3-02", Type: bank.TypeInput, Tier: 3, Skill: "Vocabulary",
				Prompt:  "Complete the phrase with one word.",
				Stem:    "We aim to go the extra ___ for every guest.",
				Answer:  "mile",
				Explain: "'Go the extra mile' means to make more effort than expected.",
			},
		},
	})
}
