package findoc

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alnah/go-findoc/internal/overlay"
)

// DocumentType selects the template and the image placements of a document.
type DocumentType string

// Supported document types.
const (
	Contract      DocumentType = "contrato"
	ContractAlias DocumentType = "contratto" // historical spelling, same document
	Guarantee     DocumentType = "garanzia"
	Card          DocumentType = "carta"
)

// DocumentTypes lists every accepted document type, alias included.
func DocumentTypes() []DocumentType {
	return []DocumentType{Contract, ContractAlias, Guarantee, Card}
}

// ParseDocumentType maps a user-supplied name to a DocumentType.
// Matching ignores case and surrounding spaces.
func ParseDocumentType(s string) (DocumentType, error) {
	t := DocumentType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range DocumentTypes() {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDocumentType, s)
}

func (t DocumentType) String() string {
	return string(t)
}

// IsContract reports whether t is the loan contract under either spelling.
func (t DocumentType) IsContract() bool {
	return t == Contract || t == ContractAlias
}

// needsTerms reports whether the document prints loan terms.
func (t DocumentType) needsTerms() bool {
	return t.IsContract() || t == Card
}

// DocumentRequest holds the client data printed on a document.
// Rates are percentages: 7.86 means 7.86%.
type DocumentRequest struct {
	Name           string           `json:"name"`
	Amount         decimal.Decimal  `json:"amount"`
	DurationMonths int              `json:"durationMonths"`
	NominalRate    decimal.Decimal  `json:"tan"`               // TAN
	EffectiveRate  decimal.Decimal  `json:"taeg"`              // TAEG, printed only
	Payment        *decimal.Decimal `json:"payment,omitempty"` // nil = computed from the terms
	IssueDate      time.Time        `json:"issueDate,omitzero"`
}

// Validate checks the fields the document type prints.
// Every document needs a name; contracts and card agreements also need a
// positive amount and at least one month.
func (r DocumentRequest) Validate(t DocumentType) error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}
	if !t.needsTerms() {
		return nil
	}
	if !r.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidRequest, r.Amount)
	}
	if r.DurationMonths < 1 {
		return fmt.Errorf("%w: duration must be at least one month, got %d", ErrInvalidRequest, r.DurationMonths)
	}
	if r.NominalRate.IsNegative() {
		return fmt.Errorf("%w: nominal rate cannot be negative, got %s", ErrInvalidRequest, r.NominalRate)
	}
	if r.Payment != nil && r.Payment.IsNegative() {
		return fmt.Errorf("%w: payment cannot be negative, got %s", ErrInvalidRequest, r.Payment)
	}
	return nil
}

// SampleRequest returns the demonstration record used by the CLI.
func SampleRequest() DocumentRequest {
	return DocumentRequest{
		Name:           "Mario Rossi",
		Amount:         decimal.NewFromInt(15000),
		DurationMonths: 36,
		NominalRate:    decimal.RequireFromString("7.86"),
		EffectiveRate:  decimal.RequireFromString("8.30"),
	}
}

// Result is the outcome of Generate.
// PDF belongs to the caller. Failures lists images that could not be placed;
// the document is complete without them.
type Result struct {
	PDF       []byte
	HTML      []byte
	PageCount int
	Failures  []overlay.Failure
}
