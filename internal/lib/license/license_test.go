package license

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlan(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  PlanKind
	}{
		{name: "monthly", token: "AGENT-PRO-M-ABCD1234", want: Monthly},
		{name: "quarterly", token: "AGENT-PRO-T-ABCD1234", want: Quarterly},
		{name: "semiannual", token: "AGENT-PRO-S-ABCD1234", want: Semiannual},
		{name: "annual", token: "AGENT-PRO-A-ABCD1234", want: Annual},
		{name: "lifetime", token: "AGENT-PRO-L-ABCD1234", want: Lifetime},
		{name: "lifetime wins over other markers", token: "X-M-Y-L-Z", want: Lifetime},
		{name: "first marker in check order wins", token: "X-A-Y-M-Z", want: Monthly},
		{name: "custom prefix", token: "PARTNER-S-77", want: Semiannual},
		{name: "empty", token: "", want: Unrecognized},
		{name: "no marker", token: "AGENT-PRO-X-ABCD", want: Unrecognized},
		{name: "lowercase marker is not a marker", token: "agent-pro-m-abcd", want: Unrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePlan(tt.token))
		})
	}
}

func TestPlanKind_DurationDays(t *testing.T) {
	assert.Equal(t, 30, Monthly.DurationDays())
	assert.Equal(t, 90, Quarterly.DurationDays())
	assert.Equal(t, 180, Semiannual.DurationDays())
	assert.Equal(t, 365, Annual.DurationDays())
	assert.Equal(t, 0, Lifetime.DurationDays())
	assert.Equal(t, 0, Unrecognized.DurationDays())
}

func TestPlanFromCode(t *testing.T) {
	for _, kind := range []PlanKind{Monthly, Quarterly, Semiannual, Annual, Lifetime} {
		got, err := PlanFromCode(kind.Code())
		require.NoError(t, err)
		assert.Equal(t, kind, got)
	}

	_, err := PlanFromCode("C")
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	pattern := regexp.MustCompile(`^AGENT-PRO-[MTSAL]-[0-9A-F]{8}$`)

	for _, kind := range []PlanKind{Monthly, Quarterly, Semiannual, Annual, Lifetime} {
		token, err := Generate(kind)
		require.NoError(t, err)
		assert.Regexp(t, pattern, token)
		assert.Equal(t, kind, ParsePlan(token), "generated token must parse back to its plan")
	}

	first, _ := Generate(Monthly)
	second, _ := Generate(Monthly)
	assert.NotEqual(t, first, second)

	_, err := Generate(Unrecognized)
	assert.Error(t, err)
}
