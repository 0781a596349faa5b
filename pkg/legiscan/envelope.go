package legiscan

import (
	"bytes"
	"encoding/json"
)

// parseBillPage extracts bill records from whichever envelope shape the
// upstream chose to answer with. The shapes are tried in a fixed order:
// bare array, {results,...}, {data,...}. Anything else fails loudly so a
// contract change is noticed instead of silently yielding zero bills.
func parseBillPage(op string, body []byte) (*BillPage, error) {
	trimmed := bytes.TrimSpace(body)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var bills []RawBill
		if err := json.Unmarshal(trimmed, &bills); err != nil {
			return nil, &UnexpectedEnvelopeError{Op: op}
		}
		return &BillPage{Bills: bills}, nil
	}

	var envelope struct {
		Results    *[]RawBill `json:"results"`
		Data       *[]RawBill `json:"data"`
		Total      int        `json:"total"`
		Page       int        `json:"page"`
		TotalPages int        `json:"totalPages"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, &UnexpectedEnvelopeError{Op: op}
	}

	switch {
	case envelope.Results != nil:
		return &BillPage{
			Bills:      *envelope.Results,
			Total:      envelope.Total,
			Page:       envelope.Page,
			TotalPages: envelope.TotalPages,
		}, nil
	case envelope.Data != nil:
		return &BillPage{
			Bills:      *envelope.Data,
			Total:      envelope.Total,
			Page:       envelope.Page,
			TotalPages: envelope.TotalPages,
		}, nil
	}
	return nil, &UnexpectedEnvelopeError{Op: op}
}
