package prompts

const classifyInstructions = `Classify each page of this tax return PDF. For each page, identify the form type.

Classification categories:
- 1040_main: Form 1040 pages 1-2 (the main federal return with income, deductions, tax)
- schedule_1: Schedule 1 - Additional Income and Adjustments
- schedule_2: Schedule 2 - Additional Taxes
- schedule_3: Schedule 3 - Additional Credits and Payments
- schedule_a: Schedule A - Itemized Deductions
- schedule_b: Schedule B - Interest and Dividends
- schedule_c: Schedule C - Business Income
- schedule_d: Schedule D - Capital Gains and Losses
- schedule_e: Schedule E - Supplemental Income (rentals, royalties, partnerships, S corps)
- k1_summary: Schedule K-1 summary/first page (contains income amounts)
- k1_detail: Schedule K-1 supporting pages, instructions, or continuation pages
- state_main: State tax return main pages (Form 540 for CA, IT-201 for NY, etc.)
- state_schedule: State return supporting schedules
- worksheet: Calculation worksheets (tax computation, AMT, etc.)
- supporting_doc: W-2, 1099, or other source document copies
- cover_letter: Preparer transmittal letters, engagement letters, "Dear Client" letters
- direct_deposit: Direct deposit/debit reports showing bank routing and account numbers
- carryover_summary: Tax return carryovers to next year, loss carryforward summaries
- efiling_auth: E-file authorization forms (Form 8879, TR-579-IT, e-file jurat/disclosure)
- crypto_detail: Cryptocurrency transaction details, lot-by-lot disposal reports
- other: Any other pages not fitting above categories

Look for these clues to tell preparer documents from actual tax forms:
- Cover letters often start with "Dear [Name]" and name the preparer's firm
- Direct deposit pages show routing numbers and account numbers in a table
- Carryover summaries have "Carryovers to [Year]" in the title
- E-file authorization pages mention "penalties of perjury", "ERO Declaration", "Taxpayer PIN"
- The actual Form 1040 has "U.S. Individual Income Tax Return" and numbered lines

Classify ALL pages in this document chunk.`

const extractInstructions = `Extract all tax data from this tax return PDF.

LABEL NORMALIZATION - Use these EXACT labels:

Income items:
- "W-2 wages" (for wages, salaries, tips)
- "Interest income"
- "Dividend income"
- "Qualified dividends"
- "Capital gains/losses"
- "IRA distributions"
- "Pension/annuity"
- "Social Security"
- "Business income"
- "Rental income"
- "K-1 income" (combined partnership, S-corp, estate/trust income from K-1s)
- "Farm income"
- "Unemployment compensation"
- "Gambling income"
- "Alimony received"
- "Royalty income"
- "Other income"

Federal deductions:
- "− Standard deduction" or "− Itemized deductions"
- "− Qualified business income deduction"
- "− SALT (capped)"
- "− Mortgage interest"
- "− Charitable contributions"
- "− Medical expenses"

Federal additional taxes (Schedule 2, these are FEDERAL, not state):
- "Self-employment tax"
- "Additional Medicare tax"
- "Net investment income tax"
- "Alternative minimum tax"
- "Household employment tax"
- "Repayment of first-time homebuyer credit"

Federal payments:
- "Federal withholding"
- "Federal estimated payments"
- "Extension payment"
- "Other federal withholding"

State payments (use state-specific labels):
- "[State] withholding" (e.g., "NYS withholding", "CA withholding")
- "[City] withholding" (e.g., "NYC withholding")
- "Estimated payments"

RULES:
1. All amounts are numbers (no currency symbols)
2. For refundOrOwed: positive = refund, negative = owed
3. Calculate rates as percentages (22% = 22, not 0.22)
4. Effective rate = (tax / agi) * 100
5. Include all states found in the return
6. Use empty arrays and 0 for missing fields
7. Self-employment tax, Additional Medicare tax, Net investment income tax, and AMT are FEDERAL taxes from Schedule 2. Put them in federal.additionalTaxes, NOT in state adjustments.`

var instructions = map[Stage]string{
	StageClassify: classifyInstructions,
	StageExtract:  extractInstructions,
}

// Instructions returns the built-in instructions for stage.
func Instructions(stage Stage) (string, error) {
	text, ok := instructions[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
