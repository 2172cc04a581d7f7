package translate

import (
	"context"
	"fmt"
	"strings"

	"resultguard/internal/shared"
)

// Translator turns the error that ended a request into a Result.
// It is stateless apart from its logger and safe for concurrent use.
type Translator struct {
	log Logger
}

// New creates a Translator that emits records to log. A nil log discards them.
func New(log Logger) *Translator {
	if log == nil {
		log = nopLogger{}
	}
	return &Translator{log: log}
}

// Translate is TranslateContext with a background context.
func (t *Translator) Translate(err error) (Result, Record) {
	return t.TranslateContext(context.Background(), err)
}

// TranslateContext classifies err against the rule table, renders the client
// message and emits exactly one record. It never panics; anything that goes
// wrong while matching or rendering degrades to the default rule.
func (t *Translator) TranslateContext(ctx context.Context, err error) (Result, Record) {
	rule, f := match(err)
	msg, ok := render(rule, f)
	if !ok {
		rule, f = defaultRule, nil
		msg = MsgServerFault
	}

	rec := Record{
		Severity: rule.Severity,
		Kind:     rule.Kind,
		Code:     rule.Code,
		Message:  logMessage(rule, f, err),
	}
	if rule.Severity == SeverityError {
		rec.Diagnostic = diagnose(err)
	}
	t.emit(ctx, rec)

	return failed(rule.Code, msg), rec
}

func (t *Translator) emit(ctx context.Context, rec Record) {
	defer func() { _ = recover() }()
	t.log.Log(ctx, rec)
}

func match(err error) (rule Rule, f *shared.Failure) {
	defer func() {
		if recover() != nil {
			rule, f = defaultRule, nil
		}
	}()
	if err == nil {
		return defaultRule, nil
	}
	decisive := shared.Decisive(err)
	for _, r := range rules {
		for _, found := range decisive {
			if found.Kind == r.Kind {
				return r, found
			}
		}
	}
	return defaultRule, nil
}

func render(rule Rule, f *shared.Failure) (msg string, ok bool) {
	defer func() {
		if recover() != nil {
			msg, ok = "", false
		}
	}()
	return rule.Render(f), true
}

func logMessage(rule Rule, f *shared.Failure, err error) string {
	var detail string
	switch {
	case f != nil && rule.Kind == shared.KindValidation:
		detail = joinFields(f.Fields)
	case f != nil:
		detail = f.Message
	default:
		detail = safeError(err)
	}
	if detail == "" {
		return rule.Label
	}
	return rule.Label + ": " + detail
}

// diagnose captures the error chain outermost first, then the first stack
// recorded by a failure in the chain.
func diagnose(err error) (out string) {
	defer func() {
		if recover() != nil {
			out = safeError(err)
		}
	}()
	if err == nil {
		return "<nil>"
	}
	var b strings.Builder
	var stack string
	for _, e := range shared.UnwrapAll(err) {
		fmt.Fprintf(&b, "%T: %s\n", e, safeError(e))
		if f, ok := e.(*shared.Failure); ok && f != nil && stack == "" {
			stack = f.StackTrace()
		}
	}
	if stack != "" {
		b.WriteString("stack:\n")
		b.WriteString(stack)
	}
	return b.String()
}

func safeError(err error) (s string) {
	defer func() {
		if recover() != nil {
			s = fmt.Sprintf("%T", err)
		}
	}()
	if err == nil {
		return ""
	}
	return err.Error()
}
