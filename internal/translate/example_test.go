package translate_test

import (
	"fmt"

	"resultguard/internal/shared"
	"resultguard/internal/translate"
)

// Example_translate shows the envelope produced for a validation failure.
func Example_translate() {
	tr := translate.New(nil)

	res, rec := tr.Translate(shared.Validation(
		shared.FieldError{Field: "name", Message: "must not be blank"},
		shared.FieldError{Field: "age", Message: "must be positive"},
	))

	fmt.Println(res.Code, res.Success)
	fmt.Printf("%q\n", res.Message)
	fmt.Println(rec.Severity)

	// Output:
	// 402 false
	// "data invalid:must not be blank; must be positive; "
	// info
}

// Example_redaction shows that internal details never reach the client.
func Example_redaction() {
	tr := translate.New(nil)

	res, rec := tr.Translate(shared.Connection("dial tcp 10.0.0.7:5432: connection refused", nil))

	fmt.Println(res.Code, res.Message)
	fmt.Println(rec.Message)

	// Output:
	// 501 upstream connection fault, contact admin
	// connection failed: dial tcp 10.0.0.7:5432: connection refused
}
