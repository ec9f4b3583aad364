package llm

import "strings"

// SystemInstructions is the fixed system block for drawing extraction. The
// wording is part of the collaborator contract with the model.
const SystemInstructions = "You are a highly precise data extractor for technical engineering drawings " +
	"(metal fabrication). Return ONLY valid JSON, with no extra text or explanation. " +
	"If a field is missing or uncertain: use null (or an empty list for list fields). " +
	"Only correct obvious OCR typos when the context is 100% clear."

// promptHeader describes the target keys and the search strategy. Labels are
// given in both English and Dutch because the source drawings mix the two.
const promptHeader = `You receive OCR text from an engineering drawing below. Extract exactly these keys:
Material_Grade, Surface_Roughness, Geometrical_Tolerancing, Dimensional_Tolerancing,
Break_Sharp_Edges, Retaining_Ring_Grooves_Sharp, Welding_Notes,
Tolerances_General_Linear, Tolerances_Machining, Tolerances_Welded_Sheetmetal,
Welding_Designation, Weld_Finish, Post_Treatment, Notes, Drawing_Number, Revision

Search strategy (important):
- The title block (bottom right) holds most labels/rows.
- Labels (EN/NL):
  * Tolerance(s), General tolerance, Toleranties, Afwijking, tol., ±
  * Weld/Welding/Las, Welding designation, EN ISO 2553 / DIN EN ISO 2553
  * Weld finish/Lasafwerking: surface grind after welding, flush ground, dressed
  * Post-treatment/Nabehandeling/Surface treatment/Finish/Coating
  * Material/Materiaal/Material grade/Quality/Kwaliteit
  * Notes/Remarks/Opmerkingen
- Material_Grade: only realistic material notations (e.g. St.37, S235/S275/S355,
  1.0038, 304/316/316L, 1.4301/1.4404, AlMg3, EN AW-5754/6082, DX51D, Q235/Q345).
- FORBIDDEN: ignore paper sizes (A0-A5), sheet size, scale, sheet number.
- Post_Treatment: also recognize standalone headers outside the title block
  (e.g. large "Bead blasted" text) and variants: bead blasted, electro galvanized,
  hot-dip galvanized (HDG), zinc plated, powder coated, anodized, painted (RAL ...).
- Tolerance tables use unit "mm" and band keys "0-20", "20-200", "200-2000", ">2000"
  with values like "±0.2", "±0.5", "±1.0", "±2.0". There are three tables: general
  linear, machining, and welded sheet metal; set a table to null when not found.
- Break_Sharp_Edges / Retaining_Ring_Grooves_Sharp: true/false only when the
  drawing states it, otherwise null.
- Surface_Roughness: {"standard": "...", "parameter": "Ra", "value": "...", "unit": "µm"} or null.
- Geometrical_Tolerancing / Dimensional_Tolerancing: {"standard": "...", "scope": "..."} or null.

Document (OCR text):
---
`

const promptFooter = `
---

Output (exact JSON, only the listed keys; tables as {"unit":"mm","bands":{...}} or null;
Welding_Notes and Notes as lists of strings, empty list when nothing found).`

// BuildPrompt composes the full request: system instructions, an optional
// client-profile block, and the instruction template with the (already
// truncated) document text interpolated.
func BuildPrompt(profileJSON, documentText string) string {
	var b strings.Builder
	b.WriteString(SystemInstructions)
	b.WriteString("\n\n")
	if p := strings.TrimSpace(profileJSON); p != "" {
		b.WriteString("CLIENT_PROFILE_JSON:\n")
		b.WriteString(p)
		b.WriteString("\n\n")
	}
	b.WriteString(promptHeader)
	b.WriteString(documentText)
	b.WriteString(promptFooter)
	return b.String()
}
