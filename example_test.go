package findoc_test

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/alnah/go-findoc"
)

// ExampleParseDocumentType shows how user input maps to document types.
// Both spellings of the contract are accepted.
func ExampleParseDocumentType() {
	for _, name := range []string{"Contrato", "contratto", "garanzia", "mutuo"} {
		t, err := findoc.ParseDocumentType(name)
		if errors.Is(err, findoc.ErrUnknownDocumentType) {
			fmt.Println(name, "-> unknown")
			continue
		}
		fmt.Println(name, "->", t, "contract:", t.IsContract())
	}
	// Output:
	// Contrato -> contrato contract: true
	// contratto -> contratto contract: true
	// garanzia -> garanzia contract: false
	// mutuo -> unknown
}

// ExampleDocumentRequest_Validate checks a request before printing.
// Guarantee letters only need a name.
func ExampleDocumentRequest_Validate() {
	req := findoc.DocumentRequest{Name: "Mario Rossi"}
	fmt.Println("guarantee:", req.Validate(findoc.Guarantee) == nil)

	err := req.Validate(findoc.Contract)
	fmt.Println("contract:", errors.Is(err, findoc.ErrInvalidRequest))

	req.Amount = decimal.NewFromInt(15000)
	req.DurationMonths = 36
	fmt.Println("contract with terms:", req.Validate(findoc.Contract) == nil)
	// Output:
	// guarantee: true
	// contract: true
	// contract with terms: true
}
