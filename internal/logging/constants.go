package logging

// Standardized field names for structured logging.
// Every component logs with these keys so a JSON run log can be filtered
// by file, dataset or run without parsing message text.
const (
	FieldFile       = "file_path"
	FieldDataset    = "dataset"
	FieldEncoding   = "encoding"
	FieldComponent  = "component"
	FieldRunID      = "run_id"
	FieldLine       = "line"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldSkipped    = "skipped"
	FieldDelimiter  = "delimiter"
	FieldOutputFile = "output_file"
)
