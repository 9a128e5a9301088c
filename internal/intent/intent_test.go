package intent

import "testing"

func TestClassifyKnownQueries(t *testing.T) {
	cases := []struct {
		query string
		want  Intent
	}{
		{"What services do you offer?", ServiceInquiry},
		{"How much does a chatbot project cost?", Pricing},
		{"Can you integrate with our CRM api?", Technical},
		{"What are the steps to get started?", Process},
		{"How can I contact your team?", Contact},
		{"blargh xyzzy", General},
		{"", General},
	}

	for _, tc := range cases {
		if got := Classify(tc.query); got != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.query, got, tc.want)
		}
	}
}

func TestClassifyDeterministic(t *testing.T) {
	queries := []string{
		"what services do you offer",
		"how long does it take to implement an AI automation solution?",
		"hello there",
		"",
	}
	for _, q := range queries {
		first := Classify(q)
		for i := 0; i < 10; i++ {
			if got := Classify(q); got != first {
				t.Fatalf("Classify(%q) not deterministic: %s then %s", q, first, got)
			}
		}
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	if got, want := Classify("WHAT SERVICES DO YOU OFFER"), ServiceInquiry; got != want {
		t.Errorf("uppercase query classified as %s, want %s", got, want)
	}
}

func TestClassifyTieBreakUsesEnumerationOrder(t *testing.T) {
	// "implement" scores technical, "how long" scores process: a 1-1 tie.
	// Technical precedes process in the enumeration, so it must win.
	got := Classify("how long to implement this")
	if got != Technical {
		t.Errorf("tie broke to %s, want %s (first in enumeration order)", got, Technical)
	}
}

func TestClassifyZeroScoreIsGeneral(t *testing.T) {
	if got := Classify("what is the weather in Lahore"); got != General {
		t.Errorf("zero-score query classified as %s, want %s", got, General)
	}
}

func TestOrderIsStable(t *testing.T) {
	want := []Intent{ServiceInquiry, Pricing, Technical, Process, Contact, General}
	if len(Order) != len(want) {
		t.Fatalf("Order has %d intents, want %d", len(Order), len(want))
	}
	for i := range want {
		if Order[i] != want[i] {
			t.Errorf("Order[%d] = %s, want %s", i, Order[i], want[i])
		}
	}
}
