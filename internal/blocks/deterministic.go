// internal/blocks/deterministic.go
package blocks

import (
	"fmt"
	"strings"

	"github.com/paolomoz/vitamix-gensite-sub000/internal/models"
)

// Three block types never call a model. Their output is assembled from
// already-vetted run data and is byte-stable for identical input.

// allergenGuidelines is the only content an allergen-safety block may carry.
// Reviewed copy; generation never touches it.
var allergenGuidelines = []string{
	"Always check the full ingredient list of a recipe against your allergy plan before blending.",
	"Wash the container, lid, and tamper thoroughly between recipes to avoid cross-contact.",
	"Tree nut and peanut residues can linger in lid seals; clean seals separately.",
	"When blending for someone with severe allergies, consider a dedicated container.",
	"Consult an allergist before introducing new ingredients into a restricted diet.",
}

// DeterministicType reports whether t is assembled without a model call.
func DeterministicType(t models.BlockType) bool {
	switch t {
	case models.BlockReasoningExplained, models.BlockNextSteps, models.BlockAllergenSafety:
		return true
	}
	return false
}

func renderReasoningExplained(trace models.ReasoningTrace) string {
	var sb strings.Builder
	sb.WriteString(`<div class="reasoning-explained"><h2>Why this page looks the way it does</h2><ul>`)
	for _, step := range trace.Steps() {
		sb.WriteString("<li>" + htmlEscape(step) + "</li>")
	}
	sb.WriteString(`</ul></div>`)
	return sb.String()
}

func renderNextSteps(plan models.UserJourneyPlan) string {
	var sb strings.Builder
	sb.WriteString(`<div class="next-steps"><h2>Next steps</h2>`)
	if plan.NextAction != "" {
		sb.WriteString(`<p class="next-action">` + htmlEscape(plan.NextAction) + `</p>`)
	}
	if len(plan.FollowUps) > 0 {
		sb.WriteString(`<ul>`)
		for _, f := range plan.FollowUps {
			sb.WriteString("<li>" + htmlEscape(f) + "</li>")
		}
		sb.WriteString(`</ul>`)
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

func renderAllergenSafety() string {
	var sb strings.Builder
	sb.WriteString(`<div class="allergen-safety"><h2>Allergen safety</h2><ul>`)
	for _, g := range allergenGuidelines {
		sb.WriteString("<li>" + g + "</li>")
	}
	sb.WriteString(`</ul></div>`)
	return sb.String()
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func htmlEscape(s string) string {
	return htmlEscaper.Replace(s)
}

// failurePlaceholder is the fixed HTML emitted when generation for a block
// fails outright.
func failurePlaceholder(t models.BlockType) string {
	return fmt.Sprintf(`<div class="%s"><p>Content generation failed</p></div>`, t)
}
