package models

// MatchReason tags why a candidate matched, in fast-path precedence order
type MatchReason string

const (
	MatchReasonEmailExact     MatchReason = "email_exact"
	MatchReasonPhoneExact     MatchReason = "phone_exact"
	MatchReasonReferenceExact MatchReason = "reference_exact"
	MatchReasonBarcodeExact   MatchReason = "barcode_exact"
	MatchReasonNameExact      MatchReason = "name_exact"
	MatchReasonNameFuzzy      MatchReason = "name_fuzzy"
	MatchReasonCompanyFuzzy   MatchReason = "company_fuzzy"
)

// MatchDetail explains a single candidate's match
type MatchDetail struct {
	MatchedOn []MatchReason      `json:"matched_on"`
	Scores    map[string]float64 `json:"scores"`
	BestScore float64            `json:"best_score"`
}

// HasReason reports whether the detail carries the given reason tag
func (d MatchDetail) HasReason(reason MatchReason) bool {
	for _, r := range d.MatchedOn {
		if r == reason {
			return true
		}
	}
	return false
}

// RankedMatch pairs a candidate with its score and explanation. Lists of
// RankedMatch are always sorted by BestScore descending with candidate scan
// order preserved for ties; they are produced per resolution call and never
// persisted.
type RankedMatch struct {
	Entity    CandidateEntity `json:"entity"`
	BestScore float64         `json:"best_score"`
	Detail    MatchDetail     `json:"detail"`
}
