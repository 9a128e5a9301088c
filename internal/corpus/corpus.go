// Package corpus holds the static, hand-curated business knowledge the
// assistant can answer from with authority. Chunks are versioned with the
// binary; editing this file and redeploying (or triggering a reindex) is how
// the assistant learns new facts.
package corpus

import "agency-support-chat/internal/vectorstore"

// Chunk is a unit of embeddable knowledge. Text is the canonical sentence
// used for embedding and often for direct display; Metadata is only used for
// response formatting.
type Chunk struct {
	ID       string
	Text     string
	Type     string
	Metadata vectorstore.Metadata
}

// All returns the corpus in its fixed order. Insertion order matters: the
// vector store breaks similarity ties by it.
func All() []Chunk {
	return chunks
}

var chunks = []Chunk{
	// Services
	{
		ID:   "service-1",
		Type: vectorstore.TypeService,
		Text: "AI chatbots and virtual assistants that answer customer questions around the clock, qualify leads and hand off to your team when a conversation needs a human.",
		Metadata: vectorstore.Metadata{
			Title:       "AI Chatbots & Virtual Assistants",
			Description: "Custom conversational assistants that handle support questions, qualify leads and book meetings 24/7.",
			Features:    []string{"24/7 customer support", "Lead qualification", "Seamless human handoff", "Website and WhatsApp channels"},
		},
	},
	{
		ID:   "service-2",
		Type: vectorstore.TypeService,
		Text: "Workflow automation that connects your existing tools and eliminates repetitive manual work like data entry, follow-up emails and report generation.",
		Metadata: vectorstore.Metadata{
			Title:       "Workflow Automation",
			Description: "End-to-end automation of repetitive business processes across the tools you already use.",
			Features:    []string{"CRM and email automation", "Approval workflows", "Automatic report generation"},
		},
	},
	{
		ID:   "service-3",
		Type: vectorstore.TypeService,
		Text: "Data analytics and insights dashboards that turn scattered spreadsheets and databases into clear metrics, forecasts and alerts your team can act on.",
		Metadata: vectorstore.Metadata{
			Title:       "Data Analytics & Insights",
			Description: "Dashboards, forecasting and automated alerts built on top of your existing business data.",
			Features:    []string{"KPI dashboards", "Sales forecasting", "Anomaly alerts"},
		},
	},
	{
		ID:   "service-4",
		Type: vectorstore.TypeService,
		Text: "AI-powered lead generation that finds prospects matching your ideal customer profile, enriches their details and drafts personalized outreach.",
		Metadata: vectorstore.Metadata{
			Title:       "AI-Powered Lead Generation",
			Description: "Prospect discovery, data enrichment and personalized outreach drafting at scale.",
			Features:    []string{"Ideal customer profiling", "Contact enrichment", "Personalized outreach drafts"},
		},
	},
	{
		ID:   "service-5",
		Type: vectorstore.TypeService,
		Text: "Document processing automation that reads invoices, contracts and forms, extracts the fields you care about and files them into your systems.",
		Metadata: vectorstore.Metadata{
			Title:       "Document Processing Automation",
			Description: "Automatic extraction and filing of data from invoices, contracts and forms.",
			Features:    []string{"Invoice data extraction", "Contract review summaries", "Automatic filing and routing"},
		},
	},
	{
		ID:   "service-6",
		Type: vectorstore.TypeService,
		Text: "Custom AI integrations that embed language models into your own product or internal tools, from semantic search to content generation.",
		Metadata: vectorstore.Metadata{
			Title:       "Custom AI Integrations",
			Description: "Bespoke LLM features built into your product or internal tooling.",
			Features:    []string{"Semantic search", "Content generation", "API-first delivery"},
		},
	},

	// FAQ
	{
		ID:   "faq-1",
		Type: vectorstore.TypeFAQ,
		Text: "What does an AI automation project cost? Pricing depends on scope; most engagements start with a fixed-price pilot.",
		Metadata: vectorstore.Metadata{
			Question: "How much does an AI automation project cost?",
			Answer:   "Pricing depends on scope. Most clients start with a fixed-price pilot project, which gives you a working automation and a clear picture of cost before committing to a larger rollout.",
		},
	},
	{
		ID:   "faq-2",
		Type: vectorstore.TypeFAQ,
		Text: "How long does it take to implement an AI automation solution? Implementation timeline from kickoff to launch.",
		Metadata: vectorstore.Metadata{
			Question: "How long does it take to implement an AI automation solution?",
			Answer:   "Timeline varies by project scope. A focused automation typically ships in 2-4 weeks, while larger integrations take 6-12 weeks. You get a detailed timeline after the discovery call.",
		},
	},
	{
		ID:   "faq-3",
		Type: vectorstore.TypeFAQ,
		Text: "Do I need technical staff in-house to use your automations? Ongoing maintenance and who operates the solution.",
		Metadata: vectorstore.Metadata{
			Question: "Do we need technical staff to use your automations?",
			Answer:   "No. We design every automation to be operated by non-technical teams, and we handle monitoring and maintenance as part of our support plans.",
		},
	},
	{
		ID:   "faq-4",
		Type: vectorstore.TypeFAQ,
		Text: "Is my business data safe with AI automation? Data privacy, security and compliance practices.",
		Metadata: vectorstore.Metadata{
			Question: "Is our data safe?",
			Answer:   "Yes. Your data stays in your own accounts wherever possible, access is scoped to the minimum needed, and we never use client data to train public models.",
		},
	},
	{
		ID:   "faq-5",
		Type: vectorstore.TypeFAQ,
		Text: "Which tools and platforms do your automations integrate with? CRM, email, spreadsheets and custom APIs.",
		Metadata: vectorstore.Metadata{
			Question: "What tools do you integrate with?",
			Answer:   "We integrate with the major CRMs, help desks, email providers and spreadsheet tools out of the box, and we can connect anything with an API through a custom integration.",
		},
	},

	// Process
	{
		ID:   "process-1",
		Type: vectorstore.TypeProcess,
		Text: "Step one of our process is a free discovery call where we map your workflows and identify the highest-impact automation opportunities.",
		Metadata: vectorstore.Metadata{
			Step:        1,
			Title:       "Discovery Call",
			Description: "A free 30-minute call where we map your current workflows and identify the highest-impact automation opportunities.",
		},
	},
	{
		ID:   "process-2",
		Type: vectorstore.TypeProcess,
		Text: "Step two is a written proposal with fixed scope, timeline and price for the first automation.",
		Metadata: vectorstore.Metadata{
			Step:        2,
			Title:       "Proposal",
			Description: "You receive a written proposal with a fixed scope, timeline and price for the first automation.",
		},
	},
	{
		ID:   "process-3",
		Type: vectorstore.TypeProcess,
		Text: "Step three is the build phase where we develop the automation and review progress with you in weekly check-ins.",
		Metadata: vectorstore.Metadata{
			Step:        3,
			Title:       "Build",
			Description: "We build the automation and review progress with you in short weekly check-ins.",
		},
	},
	{
		ID:   "process-4",
		Type: vectorstore.TypeProcess,
		Text: "Step four is launch: we deploy to your live environment, train your team and monitor the first weeks closely.",
		Metadata: vectorstore.Metadata{
			Step:        4,
			Title:       "Launch",
			Description: "We deploy to your live environment, train your team and monitor the first weeks closely.",
		},
	},
	{
		ID:   "process-5",
		Type: vectorstore.TypeProcess,
		Text: "Step five is ongoing support with monitoring, fixes and improvements under a monthly support plan.",
		Metadata: vectorstore.Metadata{
			Step:        5,
			Title:       "Ongoing Support",
			Description: "Monitoring, fixes and continuous improvements under a monthly support plan.",
		},
	},

	// Company facts
	{
		ID:   "company-1",
		Type: vectorstore.TypeCompany,
		Text: "About us: Auralis AI is an AI automation agency that helps small and mid-sized businesses save time by automating repetitive work with practical, reliable AI.",
	},
	{
		ID:   "company-2",
		Type: vectorstore.TypeCompany,
		Text: "Team: Our team combines automation engineers and business analysts, so every project pairs technical depth with an understanding of your operations.",
	},

	// Use cases
	{
		ID:   "usecase-1",
		Type: vectorstore.TypeUseCase,
		Text: "Use case: An e-commerce store automated order status and returns questions with a support chatbot, deflecting most tickets and cutting response time to seconds.",
	},
	{
		ID:   "usecase-2",
		Type: vectorstore.TypeUseCase,
		Text: "Use case: An accounting firm automated invoice intake with document processing, eliminating manual data entry across thousands of invoices a month.",
	},
	{
		ID:   "usecase-3",
		Type: vectorstore.TypeUseCase,
		Text: "Use case: A real estate agency uses AI lead generation to enrich and score incoming leads, so agents call the hottest prospects first.",
	},

	// Contact
	{
		ID:   "contact-1",
		Type: vectorstore.TypeContact,
		Text: "Contact: You can reach Auralis AI at hello@auralis.ai, or book a free consultation directly through the contact form on our website.",
	},
}
