package suggest

import (
	"strings"
	"testing"

	"tripandtreat/models"
)

func TestCannedItineraryClampsDays(t *testing.T) {
	if got := cannedItinerary(0); strings.Count(got, "Day ") != 1 {
		t.Fatalf("zero days should clamp to one day, got %q", got)
	}
	if got := cannedItinerary(3); strings.Count(got, "Day ") != 3 {
		t.Fatalf("expected 3 days, got %q", got)
	}
	if got := cannedItinerary(50); strings.Count(got, "Day ") != 5 {
		t.Fatalf("oversized request should clamp to the full plan, got %q", got)
	}
}

func TestBuildPromptListsHotspots(t *testing.T) {
	spots := []models.Hotspot{
		{Name: "Loktak Lake", Category: "hotspot", Location: "Moirang"},
		{Name: "Andro Village", Category: "experience", Location: "Imphal East"},
	}

	prompt := buildPrompt(4, "nature", nil, spots)

	if !strings.Contains(prompt, "4-day") {
		t.Fatalf("prompt missing day count: %q", prompt)
	}
	if !strings.Contains(prompt, "focused on nature") {
		t.Fatalf("prompt missing interests: %q", prompt)
	}
	for _, want := range []string{"Loktak Lake (hotspot, Moirang)", "Andro Village (experience, Imphal East)"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildPromptWithoutInterests(t *testing.T) {
	prompt := buildPrompt(2, "", nil, nil)
	if strings.Contains(prompt, "focused on") {
		t.Fatalf("empty interests should not appear in prompt: %q", prompt)
	}
	if strings.Contains(prompt, "shortlisted") {
		t.Fatalf("empty shortlist should not appear in prompt: %q", prompt)
	}
}

func TestBuildPromptIncludesShortlist(t *testing.T) {
	planned := []models.ItineraryItem{
		{ID: 1, Name: "Kangla Fort", Location: "Imphal"},
	}

	prompt := buildPrompt(2, "", planned, nil)

	if !strings.Contains(prompt, "Kangla Fort (Imphal)") {
		t.Fatalf("prompt missing shortlisted stop:\n%s", prompt)
	}
}
