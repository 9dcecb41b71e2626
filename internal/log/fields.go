package log

// Standard field names for structured logging.
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldClientIP      = "client_ip"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldQuery         = "query"
	FieldStatusCode    = "status_code"
	FieldDuration      = "duration_ms"
	FieldDurationHuman = "duration_human"
	FieldUserAgent     = "user_agent"
	FieldReferer       = "referer"
	FieldSuccess       = "success"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldInvoiceNumber = "invoice_number"
	FieldGrandTotal    = "grand_total"
	FieldLineCount     = "line_count"
	FieldGuest         = "guest"
	FieldCategory      = "category"
	FieldFormat        = "format"
	FieldRegisterRef   = "register_ref"
	FieldBackend       = "backend"
)

// Component names.
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentInvoice  = "invoice"
	ComponentWorker   = "worker"
	ComponentCache    = "cache"
	ComponentSecurity = "security"
	ComponentTrace    = "trace"
	ComponentBackend  = "backend"
	ComponentRateCard = "ratecard"
)

// Operation names.
const (
	OpCreate = "create"
	OpAppend = "append"
	OpExport = "export"
	OpReload = "reload"
	OpRender = "render"
)

// LogFields builds structured log attributes.
type LogFields map[string]any

func NewFields() LogFields {
	return make(LogFields)
}

func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds the error message; a nil error adds nothing.
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithInvoice adds the fields identifying a generated invoice.
func (f LogFields) WithInvoice(number, guest, grandTotal string, lines int) LogFields {
	f[FieldInvoiceNumber] = number
	f[FieldGuest] = guest
	f[FieldGrandTotal] = grandTotal
	f[FieldLineCount] = lines
	return f
}

// ToSlice converts the fields to slog key/value arguments.
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
