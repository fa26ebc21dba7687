package interpret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponse_StructuredWithInvoices(t *testing.T) {
	body := `{"state":"CONFIRM","message":"Got it","invoices":[{"vendor_name":"Starbucks Coffee","total_amount":"45.50"}]}`

	reply := Response(body)

	assert.Equal(t, "Got it", reply.Text)
	assert.Equal(t, "CONFIRM", reply.State)
	require.Len(t, reply.Records, 1)
	assert.Equal(t, "Starbucks Coffee", reply.Records[0]["vendor_name"])
	assert.Equal(t, "45.50", reply.Records[0]["total_amount"])
}

func TestResponse_PlainText(t *testing.T) {
	body := "Hello, how can I help?"

	reply := Response(body)

	assert.Equal(t, body, reply.Text)
	assert.Empty(t, reply.State)
	assert.Empty(t, reply.Records)
	assert.False(t, reply.Structured())
}

func TestResponse_JSONWithoutStateAndMessage(t *testing.T) {
	body := `{"foo":"bar"}`

	reply := Response(body)

	assert.Equal(t, body, reply.Text)
	assert.Empty(t, reply.State)
	assert.Empty(t, reply.Records)
}

func TestResponse_MissingOneField(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"only state", `{"state":"CONFIRM"}`},
		{"only message", `{"message":"hi"}`},
		{"state not a string", `{"state":1,"message":"hi"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := Response(tt.body)
			assert.Equal(t, tt.body, reply.Text)
			assert.Empty(t, reply.State)
		})
	}
}

func TestResponse_RecordPriority(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantKeys []string
	}{
		{
			name:     "invoices wins over invoice_data",
			body:     `{"state":"VALIDATE","message":"ok","invoices":[{"a":"1"}],"invoice_data":[{"b":"2"}]}`,
			wantKeys: []string{"a"},
		},
		{
			name:     "empty invoices falls through to invoice_data",
			body:     `{"state":"VALIDATE","message":"ok","invoices":[],"invoice_data":[{"b":"2"}]}`,
			wantKeys: []string{"b"},
		},
		{
			name:     "reimbursement_form wrapped as single record",
			body:     `{"state":"CONFIRM","message":"ok","reimbursement_form":{"c":"3"}}`,
			wantKeys: []string{"c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := Response(tt.body)
			require.Len(t, reply.Records, 1)
			for _, key := range tt.wantKeys {
				assert.Contains(t, reply.Records[0], key)
			}
		})
	}
}

func TestResponse_NoRecordSources(t *testing.T) {
	reply := Response(`{"state":"NOTIFY","message":"done"}`)

	assert.Equal(t, "done", reply.Text)
	assert.Equal(t, "NOTIFY", reply.State)
	assert.Empty(t, reply.Records)
	assert.True(t, reply.Structured())
}

func TestResponse_SkipsNonObjectElements(t *testing.T) {
	reply := Response(`{"state":"EXTRACT","message":"ok","invoices":["garbage",{"vendor_name":"ACME"}]}`)

	require.Len(t, reply.Records, 1)
	assert.Equal(t, "ACME", reply.Records[0]["vendor_name"])
}
