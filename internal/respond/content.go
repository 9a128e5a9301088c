package respond

import (
	"strings"

	"agency-support-chat/internal/intent"
)

// closings are the intent-specific call-to-action sentences appended to
// grounded answers.
var closings = map[intent.Intent]string{
	intent.ServiceInquiry: "Would you like to know more about any of these? I can also help you book a free consultation.",
	intent.Pricing:        "For a quote tailored to your project, the quickest route is a free consultation with our team.",
	intent.Technical:      "Happy to go deeper on the technical side - our engineers can walk you through the details on a call.",
	intent.Process:        "Ready to get started? Book a free discovery call and we'll map out your first automation together.",
	intent.Contact:        "You can also reach us any time at hello@auralis.ai.",
	intent.General:        "Is there anything else you'd like to know about what we do?",
}

func closingFor(it intent.Intent) string {
	if c, ok := closings[it]; ok {
		return c
	}
	return closings[intent.General]
}

// unavailable are the terminal fallback messages: a professional admission
// that the question cannot be answered confidently, pointing at a contact
// channel. This path always succeeds.
var unavailable = map[intent.Intent]string{
	intent.ServiceInquiry: "I don't have a confident answer to that, but our team will. Drop us a line at hello@auralis.ai or use the contact form and we'll walk you through what we can build for you.",
	intent.Pricing:        "Pricing really depends on your project, so I'd rather not guess. Book a free consultation and you'll get a concrete quote from our team.",
	intent.Technical:      "That's a technical question I can't answer reliably from here. Our engineers can - reach out via hello@auralis.ai and they'll get back to you quickly.",
	intent.Process:        "I can't give you a confident answer on that part of the process. Book a free discovery call and we'll go through it step by step.",
	intent.Contact:        "The best way to reach the team is hello@auralis.ai or the contact form on our website - they typically respond within one business day.",
	intent.General:        "I'm not able to answer that confidently. For anything about AI automation and our services I'm glad to help, and for everything else you can reach the team at hello@auralis.ai.",
}

func unavailableFor(it intent.Intent) string {
	if m, ok := unavailable[it]; ok {
		return m
	}
	return unavailable[intent.General]
}

// generalKnowledge maps common question patterns to canned factual answers
// independent of the corpus. A pattern group matches when every phrase in it
// occurs in the lower-cased query.
type knowledgeEntry struct {
	patterns [][]string
	answer   string
}

var generalKnowledge = []knowledgeEntry{
	{
		patterns: [][]string{{"what is ai automation"}, {"what's ai automation"}},
		answer:   "AI automation means using artificial intelligence to handle repetitive business tasks - answering customer questions, processing documents, moving data between tools - so your team can focus on work that actually needs a human.",
	},
	{
		patterns: [][]string{{"how does", "work"}},
		answer:   "In short: we connect AI models to your existing tools and data, teach them your business context, and wrap them in safeguards so they only act where you want them to. Every project starts with a discovery call to map exactly how it would work for you.",
	},
	{
		patterns: [][]string{{"benefit"}, {"why should", "automat"}},
		answer:   "The main benefits our clients see are time saved on repetitive work, faster response times for their customers, and fewer errors from manual data handling. Most automations pay for themselves within a few months.",
	},
	{
		patterns: [][]string{{"how long"}},
		answer:   "Timeline varies by project scope. A focused automation typically ships in 2-4 weeks, while larger integrations take 6-12 weeks.",
	},
	{
		patterns: [][]string{{"technology"}, {"technologies"}, {"tech stack"}},
		answer:   "We build on proven large language models and pair them with retrieval over your own business data, plus conventional automation tooling for the plumbing. We pick the stack per project rather than forcing one vendor.",
	},
	{
		patterns: [][]string{{"integrate"}, {"integration"}},
		answer:   "We integrate with the major CRMs, help desks, email providers and spreadsheet tools out of the box, and anything with an API can be connected through a custom integration.",
	},
	{
		patterns: [][]string{{"support"}},
		answer:   "Every project includes a support plan: we monitor your automations, fix issues before you notice them and keep improving the system as your business changes.",
	},
}

// lookupGeneralKnowledge returns a canned answer when a pattern group
// matches, or "" when none does.
func lookupGeneralKnowledge(query string) string {
	q := strings.ToLower(query)
	for _, entry := range generalKnowledge {
		for _, group := range entry.patterns {
			if matchesAll(q, group) {
				return entry.answer
			}
		}
	}
	return ""
}

func matchesAll(q string, phrases []string) bool {
	for _, p := range phrases {
		if !strings.Contains(q, p) {
			return false
		}
	}
	return true
}
