package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		descriptions []string
		vendor       string
		want         string
	}{
		{"software keyword", []string{"Software license renewal"}, "Acme", "Information Technology"},
		{"german license keyword", []string{"Jahreslizenz 2024"}, "Acme", "Information Technology"},
		{"vendor name matches IT", []string{"Monthly retainer"}, "Initech Software GmbH", "Information Technology"},
		{"marketing english", []string{"Advertising campaign Q2"}, "Acme", "Marketing"},
		{"marketing german", []string{"Werbung Print"}, "Acme", "Marketing"},
		{"operations german", []string{"Büromaterial"}, "Acme", "Operations"},
		{"legal german", []string{"Rechtsberatung"}, "Acme", "Legal"},
		{"infrastructure", []string{"Cloud hosting June"}, "Acme", "Infrastructure"},
		{"hr german", []string{"Schulung neue Mitarbeiter"}, "Acme", "Human Resources"},
		{"it beats marketing in rule order", []string{"Software for marketing team"}, "Acme", "Information Technology"},
		{"no match", []string{"Miscellaneous charge"}, "Acme", "General"},
		{"no line items", nil, "Initech Software GmbH", "General"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.descriptions, tt.vendor))
		})
	}
}

func TestClassifyServiceFallbackIsStable(t *testing.T) {
	// charSum("Acme") = 374, 374 % 6 = 2 -> Operations
	got := Classify([]string{"Service fee"}, "Acme")
	assert.Equal(t, "Operations", got)

	// Same vendor, same bucket, regardless of phrasing
	assert.Equal(t, got, Classify([]string{"Dienstleistung Mai"}, "Acme"))

	for i := 0; i < 10; i++ {
		assert.Equal(t, got, Classify([]string{"Service fee"}, "Acme"))
	}
}

func TestNormalizeMethod(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"bank transfer", "BANK_TRANSFER"},
		{"  Credit   Card ", "CREDIT_CARD"},
		{"SEPA", "SEPA"},
		{"direct\tdebit", "DIRECT_DEBIT"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeMethod(tt.in))
	}
}

func TestParseDate(t *testing.T) {
	assert.Equal(t, "2024-03-05", parseDate("2024-03-05").Format("2006-01-02"))
	assert.Equal(t, "2024-03-05", parseDate("05.03.2024").Format("2006-01-02"))
	assert.Equal(t, "2024-03-05", parseDate("2024-03-05T10:30:00Z").Format("2006-01-02"))

	// Unparseable dates fall back to now
	assert.WithinDuration(t, time.Now(), parseDate("garbage"), 2*time.Second)
}
