package respond

import (
	"fmt"
	"strings"

	"agency-support-chat/internal/intent"
	"agency-support-chat/internal/vectorstore"
)

// Quality cutoffs for the fallback cascade.
const (
	highQualityThreshold = 0.5
	secondChunkThreshold = 0.55
)

// input is everything a fallback strategy may consult.
type input struct {
	query    string
	chunks   []vectorstore.Retrieved
	intent   intent.Intent
	services []vectorstore.Record // full service catalog, insertion order
}

// strategies is the ordered fallback cascade. Evaluation stops at the first
// strategy that produces an answer. The order - grounded high-quality answer,
// then service listing from medium context, then service listing regardless
// of similarity, then canned general knowledge, then the unavailable
// message - is a precision/recall trade-off and a compatibility contract;
// do not reorder.
var strategies = []func(input) (string, bool){
	highQualityAnswer,
	mediumQualityServiceListing,
	anyServiceListing,
	generalKnowledgeAnswer,
	unavailableAnswer,
}

func runCascade(in input) (string, string) {
	names := []string{"high_quality", "medium_services", "any_services", "general_knowledge", "unavailable"}
	for i, strat := range strategies {
		if answer, ok := strat(in); ok && answer != "" {
			return answer, names[i]
		}
	}
	// Unreachable: unavailableAnswer always produces output.
	return unavailableFor(intent.General), "unavailable"
}

// highQualityAnswer formats the best chunk when retrieval found strong
// matches (> 0.5). A second strong chunk (> 0.55) is appended when it adds
// new content.
func highQualityAnswer(in input) (string, bool) {
	var high []vectorstore.Retrieved
	for _, c := range in.chunks {
		if c.Similarity > highQualityThreshold {
			high = append(high, c)
			if len(high) == 3 {
				break
			}
		}
	}
	if len(high) == 0 {
		return "", false
	}

	answer := formatChunk(high[0])

	if len(high) > 1 && high[1].Similarity > secondChunkThreshold {
		extra := formatChunk(high[1])
		if !isDuplicated(answer, extra) {
			answer = answer + "\n\n" + extra
		}
	}

	return answer + "\n\n" + closingFor(in.intent), true
}

// mediumQualityServiceListing lists services when retrieval only found
// medium matches (0.3 < s <= 0.5) and the user is asking broadly.
func mediumQualityServiceListing(in input) (string, bool) {
	if in.intent != intent.ServiceInquiry && in.intent != intent.General {
		return "", false
	}
	var medium []vectorstore.Retrieved
	for _, c := range in.chunks {
		if c.Similarity <= highQualityThreshold {
			medium = append(medium, c)
		}
	}
	if len(medium) == 0 {
		return "", false
	}

	// Gather service chunks from both quality tiers, best first. Search
	// results are already similarity-sorted.
	var services []vectorstore.Record
	for _, c := range in.chunks {
		if c.Type == vectorstore.TypeService {
			services = append(services, c.Record)
		}
	}
	if len(services) == 0 {
		services = in.services
	}

	return listServices(services), true
}

// anyServiceListing answers an explicit service question from the catalog
// even when nothing cleared the similarity threshold: a service question
// always gets a services answer before the engine gives up. General intent is
// excluded here so off-topic queries fall through to the unavailable message
// instead of an unsolicited listing.
func anyServiceListing(in input) (string, bool) {
	if in.intent != intent.ServiceInquiry {
		return "", false
	}
	if len(in.services) == 0 {
		return "", false
	}
	return listServices(in.services), true
}

func generalKnowledgeAnswer(in input) (string, bool) {
	answer := lookupGeneralKnowledge(in.query)
	if answer == "" {
		return "", false
	}
	return answer + "\n\n" + closingFor(in.intent), true
}

func unavailableAnswer(in input) (string, bool) {
	return unavailableFor(in.intent), true
}

// formatChunk renders a chunk for display according to its type.
func formatChunk(c vectorstore.Retrieved) string {
	switch c.Type {
	case vectorstore.TypeService:
		var sb strings.Builder
		sb.WriteString(c.Metadata.Title)
		if c.Metadata.Description != "" {
			sb.WriteString(": ")
			sb.WriteString(c.Metadata.Description)
		}
		if len(c.Metadata.Features) > 0 {
			features := c.Metadata.Features
			if len(features) > 3 {
				features = features[:3]
			}
			sb.WriteString(" Key features: ")
			sb.WriteString(strings.Join(features, ", "))
			sb.WriteString(".")
		}
		return sb.String()
	case vectorstore.TypeFAQ:
		if c.Metadata.Answer != "" {
			return c.Metadata.Answer
		}
		return stripLabel(c.Text)
	case vectorstore.TypeProcess:
		if c.Metadata.Description != "" {
			return c.Metadata.Description
		}
		return stripLabel(c.Text)
	default:
		return stripLabel(c.Text)
	}
}

// listServices renders up to 6 services with title, description and
// features. Each service appears exactly once.
func listServices(services []vectorstore.Record) string {
	var sb strings.Builder
	sb.WriteString("Here's what we offer:\n")

	seen := make(map[string]struct{})
	count := 0
	for _, svc := range services {
		if _, dup := seen[svc.ID]; dup {
			continue
		}
		seen[svc.ID] = struct{}{}

		sb.WriteString("\n- ")
		sb.WriteString(svc.Metadata.Title)
		if svc.Metadata.Description != "" {
			sb.WriteString(": ")
			sb.WriteString(svc.Metadata.Description)
		}
		if len(svc.Metadata.Features) > 0 {
			sb.WriteString(fmt.Sprintf(" (%s)", strings.Join(svc.Metadata.Features, ", ")))
		}

		count++
		if count == 6 {
			break
		}
	}

	sb.WriteString("\n\n")
	sb.WriteString(closingFor(intent.ServiceInquiry))
	return sb.String()
}

// stripLabel removes a leading "Label:" prefix ("About us: ...",
// "Use case: ...") from chunk text meant for direct display.
func stripLabel(text string) string {
	if idx := strings.Index(text, ": "); idx > 0 && idx < 20 {
		return text[idx+2:]
	}
	return text
}

// isDuplicated checks whether the candidate's opening is already contained
// in the answer - a cheap prefix-containment heuristic, not a full overlap
// measure.
func isDuplicated(answer, candidate string) bool {
	prefix := candidate
	if len(prefix) > 60 {
		prefix = prefix[:60]
	}
	return strings.Contains(answer, prefix)
}
