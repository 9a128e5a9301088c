// Package intent labels a query with one of a fixed set of intents using
// keyword scoring. Deliberately a heuristic, not a learned model.
package intent

import "strings"

type Intent string

const (
	ServiceInquiry Intent = "service_inquiry"
	Pricing        Intent = "pricing"
	Technical      Intent = "technical"
	Process        Intent = "process"
	Contact        Intent = "contact"
	General        Intent = "general"
)

// Order is the fixed enumeration order. It is an observable tie-break rule:
// when intents tie on score, the earliest wins.
var Order = []Intent{ServiceInquiry, Pricing, Technical, Process, Contact, General}

// keywords maps each intent to its scoring list. Matching is case-
// insensitive substring containment without word-boundary checks, so "ai"
// matches inside unrelated words; that is the shipped behavior and anything
// trained on its outputs depends on it.
var keywords = map[Intent][]string{
	ServiceInquiry: {
		"service", "what do you do", "what do you offer", "offer",
		"solutions", "help with", "capabilities", "provide", "automate",
		"chatbot",
	},
	Pricing: {
		"price", "pricing", "cost", "how much", "budget", "payment",
		"fee", "charge", "quote", "afford",
	},
	Technical: {
		"how does", "technology", "technologies", "technical", "integrate",
		"integration", "api", "implement", "stack", "platform", "security",
	},
	Process: {
		"process", "timeline", "how long", "steps", "get started",
		"getting started", "onboard", "workflow", "next step", "begin",
	},
	Contact: {
		"contact", "email", "phone", "reach", "talk to", "speak to",
		"call", "meeting", "consultation", "demo",
	},
	General: {
		"hello", "hi there", "hey", "thanks", "thank you", "who are you",
	},
}

// Classify scores the query against every intent's keyword list and returns
// the highest scorer. A zero maximum yields General. Pure function: the same
// query always yields the same intent.
func Classify(query string) Intent {
	q := strings.ToLower(query)

	best := General
	bestScore := 0
	for _, it := range Order {
		score := 0
		for _, kw := range keywords[it] {
			if strings.Contains(q, kw) {
				score++
			}
		}
		if score > bestScore {
			best = it
			bestScore = score
		}
	}
	return best
}
