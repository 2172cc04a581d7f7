package translate

import (
	"strings"

	"resultguard/internal/shared"
)

// Client-facing messages.
const (
	MsgServerFault        = "server fault, retry later"
	MsgConnectionFault    = "upstream connection fault, contact admin"
	MsgOperationRetry     = "operation invalid, retry later"
	MsgRequestInvalid     = "request invalid"
	MsgUnsupportedRequest = "unsupported request method/media type"
	MsgParameterInvalid   = "parameter invalid"
	MsgDataInvalid        = "data invalid"
	MsgOperationInvalid   = "operation invalid"
	MsgFileTooLarge       = "file too large"
)

// Rule binds a failure kind to its code, client message and log severity.
type Rule struct {
	Kind     shared.Kind
	Code     int
	Severity Severity

	// Label prefixes the log message.
	Label string

	// Render builds the client message from the matched failure, which is
	// nil for the default rule.
	Render func(f *shared.Failure) string
}

// fixed renders the same message regardless of the failure.
func fixed(msg string) func(*shared.Failure) string {
	return func(*shared.Failure) string { return msg }
}

func passThrough(f *shared.Failure) string {
	return f.Message
}

func renderArgument(f *shared.Failure) string {
	if f.Argument == shared.ArgIllegal {
		return MsgParameterInvalid + ":" + f.Message
	}
	return MsgParameterInvalid
}

// renderFields appends every field message followed by "; ", in reporting
// order, without sorting or deduplication.
func renderFields(f *shared.Failure) string {
	return MsgDataInvalid + ":" + joinFields(f.Fields)
}

func joinFields(fields []shared.FieldError) string {
	var b strings.Builder
	for _, fe := range fields {
		b.WriteString(fe.Message)
		b.WriteString("; ")
	}
	return b.String()
}

// rules is evaluated top-down, most specific kind first. The order must
// match shared.Precedence.
var rules = []Rule{
	{Kind: shared.KindPayloadTooLarge, Code: 403, Severity: SeverityWarn, Label: "file too large", Render: fixed(MsgFileTooLarge)},
	{Kind: shared.KindRouteNotFound, Code: 404, Severity: SeverityWarn, Label: "route not found", Render: fixed(MsgOperationInvalid)},
	{Kind: shared.KindMessageConversion, Code: 403, Severity: SeverityWarn, Label: "message conversion failed", Render: fixed(MsgDataInvalid)},
	{Kind: shared.KindValidation, Code: 402, Severity: SeverityInfo, Label: "data invalid", Render: renderFields},
	{Kind: shared.KindInvalidArgument, Code: 402, Severity: SeverityWarn, Label: "parameter invalid", Render: renderArgument},
	{Kind: shared.KindUnsupportedMedia, Code: 402, Severity: SeverityWarn, Label: "unsupported request", Render: fixed(MsgUnsupportedRequest)},
	{Kind: shared.KindTransport, Code: 402, Severity: SeverityWarn, Label: "request invalid", Render: fixed(MsgRequestInvalid)},
	{Kind: shared.KindUnauthorized, Code: 401, Severity: SeverityWarn, Label: "unauthorized operation", Render: passThrough},
	{Kind: shared.KindBusinessRule, Code: 400, Severity: SeverityWarn, Label: "business rule violated", Render: fixed(MsgOperationRetry)},
	{Kind: shared.KindConnection, Code: 501, Severity: SeverityWarn, Label: "connection failed", Render: fixed(MsgConnectionFault)},
}

var defaultRule = Rule{
	Kind:     shared.KindGeneric,
	Code:     500,
	Severity: SeverityError,
	Label:    "unhandled failure",
	Render:   fixed(MsgServerFault),
}

// Rules returns a copy of the ordered classification table, followed by
// the default rule.
func Rules() []Rule {
	out := make([]Rule, 0, len(rules)+1)
	out = append(out, rules...)
	return append(out, defaultRule)
}
