package log

import "sheetfolio/internal/core"

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldSource        = "source"
	FieldSpreadsheetID = "spreadsheet_id"
	FieldRange         = "range"
	FieldRows          = "rows"
	FieldItems         = "items"
	FieldRecords       = "records"
	FieldMonths        = "months"
	FieldWarnings      = "warnings"
	FieldWarningKind   = "warning_kind"
	FieldRow           = "row"
	FieldCol           = "col"
	FieldValue         = "value"
	FieldDuration      = "duration_ms"
	FieldReportID      = "report_id"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentCLI       = "cli"
	ComponentLoader    = "loader"
	ComponentParser    = "parser"
	ComponentAggregate = "aggregate"
	ComponentSheets    = "sheets"
	ComponentCache     = "cache"
	ComponentAMQP      = "amqp"
)

// Operations defines standard operation names
const (
	OpFetch     = "fetch"
	OpParse     = "parse"
	OpAggregate = "aggregate"
	OpPublish   = "publish"
	OpValidate  = "validate"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithRange adds the spreadsheet and range being read.
func (f LogFields) WithRange(spreadsheetID, rng string) LogFields {
	f[FieldSpreadsheetID] = spreadsheetID
	f[FieldRange] = rng
	return f
}

// WithWarning adds the position and kind of a parse warning.
func (f LogFields) WithWarning(w core.Warning) LogFields {
	f[FieldWarningKind] = string(w.Kind)
	f[FieldRow] = w.Row
	if w.Col >= 0 {
		f[FieldCol] = w.Col
	}
	if w.Value != "" {
		f[FieldValue] = w.Value
	}
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
