// Package interpret turns a raw chat-backend response body into a display
// reply. The backend answers either with plain text or with a structured
// JSON payload carrying a workflow state, a message and optional invoice
// records; the shape is decided once here and never re-inspected downstream.
package interpret

import "encoding/json"

// Reply is the interpreted response. State is empty and Records nil for
// plain-text replies.
type Reply struct {
	Text    string
	State   string
	Records []map[string]any
}

func (r Reply) Structured() bool {
	return r.State != ""
}

// Response interprets a raw response body. The structured path engages only
// when the body is a JSON object carrying both "state" and "message";
// anything else is displayed verbatim.
func Response(body string) Reply {
	var payload map[string]any
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return Reply{Text: body}
	}

	state, stateOK := payload["state"].(string)
	message, messageOK := payload["message"].(string)
	if !stateOK || !messageOK {
		return Reply{Text: body}
	}

	return Reply{
		Text:    message,
		State:   state,
		Records: extractRecords(payload),
	}
}

// extractRecords resolves the record list by priority: a non-empty
// "invoices" array, else an "invoice_data" array, else a single
// "reimbursement_form" object wrapped as a one-element list.
func extractRecords(payload map[string]any) []map[string]any {
	if arr, ok := payload["invoices"].([]any); ok && len(arr) > 0 {
		return toRecords(arr)
	}
	if arr, ok := payload["invoice_data"].([]any); ok {
		return toRecords(arr)
	}
	if form, ok := payload["reimbursement_form"].(map[string]any); ok {
		return []map[string]any{form}
	}
	return nil
}

func toRecords(arr []any) []map[string]any {
	var records []map[string]any
	for _, el := range arr {
		if rec, ok := el.(map[string]any); ok {
			records = append(records, rec)
		}
	}
	return records
}
