package model

// FormInstruction is one "write value to cell" directive for the
// external spreadsheet filler. Instructions are applied in order; a
// later write to the same cell overrides an earlier one.
//
// SheetKeyword is matched against workbook sheet names by substring,
// since government templates rename sheets between form revisions
// ("A_Basic_Info", "A_Basic_Info (2)", ...).
type FormInstruction struct {
	SheetKeyword string `json:"sheet_keyword"`
	Cell         string `json:"cell"`
	Value        string `json:"value"`
}
