package validation_test

import (
	"testing"

	"github.com/nycdan-n2p/call-intel-widget/internal/validation"

	"github.com/stretchr/testify/assert"
)

func TestValidateCallReportRejectsBadDocument(t *testing.T) {
	tests := map[string]string{
		"missing required fields": `{"report_id": "x"}`,
		"negative total":          `{"report_id": "x", "generated_at": "t", "timezone": "UTC", "source": "s", "kpi": {"total": -1}, "top_talk": [], "top_numbers": [], "top_locations": [], "miss_by_owner": [], "miss_days": [], "charts": {}, "summary": ""}`,
		"percent over 100":        `{"report_id": "x", "generated_at": "t", "timezone": "UTC", "source": "s", "kpi": {"total": 1, "answered_pct": 140}, "top_talk": [], "top_numbers": [], "top_locations": [], "miss_by_owner": [], "miss_days": [], "charts": {}, "summary": ""}`,
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, validation.ValidateCallReport([]byte(doc)))
		})
	}
}

func TestValidateQueueReportRejectsBadDocument(t *testing.T) {
	err := validation.ValidateQueueReport([]byte(`{"report_id": "x"}`))

	assert.Error(t, err)
}
