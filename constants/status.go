package constants

// RunStatus is the canonical status for rows in the extractions table.
type RunStatus string

// Stable values (store these exact strings in the DB).
const (
	RunStatusOCROK        RunStatus = "OCR_OK"        // text extracted, LLM pending
	RunStatusOCREmpty     RunStatus = "OCR_EMPTY"     // no usable text; extraction skipped
	RunStatusExtracted    RunStatus = "EXTRACTED"     // canonical record produced
	RunStatusExtractEmpty RunStatus = "EXTRACT_EMPTY" // extraction yielded an all-empty record
	RunStatusFailed       RunStatus = "FAILED"        // terminal failure (I/O etc.)
)
