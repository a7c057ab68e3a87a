package prompts

const classifySpec = `Respond with a JSON array where each element has:
- "page": page number (1-indexed, relative to the chunk you are seeing)
- "type": one of the classification categories above

Example response format:
[
  {"page": 1, "type": "cover_letter"},
  {"page": 2, "type": "carryover_summary"},
  {"page": 3, "type": "1040_main"}
]

Include exactly one element for every page in the chunk.`

const extractSpec = `Respond with a single JSON object matching this structure, no markdown fencing:

{
  "year": 2024,
  "name": "<taxpayer name(s)>",
  "filingStatus": "<single|married_joint|married_separate|head_of_household|widow>",
  "dependents": [{"name": "<name>", "relationship": "<relationship>"}],
  "income": {
    "total": 0,
    "items": [{"label": "<label>", "amount": 0}]
  },
  "federal": {
    "agi": 0,
    "taxableIncome": 0,
    "tax": 0,
    "deductions": [{"label": "<label>", "amount": 0}],
    "additionalTaxes": [{"label": "<label>", "amount": 0}],
    "credits": [{"label": "<label>", "amount": 0}],
    "payments": [{"label": "<label>", "amount": 0}],
    "refundOrOwed": 0
  },
  "states": [{
    "name": "<state>",
    "agi": 0,
    "taxableIncome": 0,
    "tax": 0,
    "deductions": [{"label": "<label>", "amount": 0}],
    "adjustments": [{"label": "<label>", "amount": 0}],
    "payments": [{"label": "<label>", "amount": 0}],
    "refundOrOwed": 0
  }],
  "rates": {
    "federal": {"marginal": 0, "effective": 0},
    "state": {"marginal": 0, "effective": 0},
    "combined": {"marginal": 0, "effective": 0}
  }
}

Field constraints:
- year: the tax year the return covers, not the year it was filed
- income.total: total income as reported on the federal return
- deductions carry a leading "− " in their label and a positive amount
- rates.state and rates.combined may be omitted when no state return is present`

var specs = map[Stage]string{
	StageClassify: classifySpec,
	StageExtract:  extractSpec,
}

// Spec returns the response format for stage. Specs are not overridable.
func Spec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
