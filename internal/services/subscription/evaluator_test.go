package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/agentpulse/internal/models"
)

var now = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(d float64) string {
	return now.Add(-time.Duration(d * float64(day))).Format(time.RFC3339)
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		profile models.Profile
		want    models.SubscriptionStatus
	}{
		{
			name:    "lifetime ignores activation date",
			profile: models.Profile{ProToken: "AGENT-PRO-L-ABCDEF12", ActivationDate: daysAgo(5000)},
			want:    models.SubscriptionStatus{Type: models.SubscriptionPro, PlanName: "Lifetime", Expired: false, DaysLeft: 9999},
		},
		{
			name:    "lifetime marker wins over others",
			profile: models.Profile{ProToken: "X-M-Y-L-Z"},
			want:    models.SubscriptionStatus{Type: models.SubscriptionPro, PlanName: "Lifetime", Expired: false, DaysLeft: 9999},
		},
		{
			name:    "monthly fresh",
			profile: models.Profile{ProToken: "AGENT-PRO-M-11111111", ActivationDate: daysAgo(0)},
			want:    models.SubscriptionStatus{Type: models.SubscriptionPro, PlanName: "Monthly", Expired: false, DaysLeft: 30},
		},
		{
			name:    "monthly day 29 still active",
			profile: models.Profile{ProToken: "AGENT-PRO-M-11111111", ActivationDate: daysAgo(29.5)},
			want:    models.SubscriptionStatus{Type: models.SubscriptionPro, PlanName: "Monthly", Expired: false, DaysLeft: 1},
		},
		{
			name:    "monthly day 30 expired",
			profile: models.Profile{ProToken: "AGENT-PRO-M-11111111", ActivationDate: daysAgo(30)},
			want:    models.SubscriptionStatus{Type: models.SubscriptionPro, PlanName: "Monthly", Expired: true, DaysLeft: 0},
		},
		{
			name:    "monthly long expired goes negative",
			profile: models.Profile{ProToken: "AGENT-PRO-M-11111111", ActivationDate: daysAgo(45)},
			want:    models.SubscriptionStatus{Type: models.SubscriptionPro, PlanName: "Monthly", Expired: true, DaysLeft: -15},
		},
		{
			name:    "quarterly",
			profile: models.Profile{ProToken: "AGENT-PRO-T-22222222", ActivationDate: daysAgo(10)},
			want:    models.SubscriptionStatus{Type: models.SubscriptionPro, PlanName: "Quarterly", Expired: false, DaysLeft: 80},
		},
		{
			name:    "semiannual",
			profile: models.Profile{ProToken: "AGENT-PRO-S-33333333", ActivationDate: daysAgo(100)},
			want:    models.SubscriptionStatus{Type: models.SubscriptionPro, PlanName: "Semiannual", Expired: false, DaysLeft: 80},
		},
		{
			name:    "annual",
			profile: models.Profile{ProToken: "AGENT-PRO-A-44444444", ActivationDate: daysAgo(365)},
			want:    models.SubscriptionStatus{Type: models.SubscriptionPro, PlanName: "Annual", Expired: true, DaysLeft: 0},
		},
		{
			name:    "paid plan without activation date counts from now",
			profile: models.Profile{ProToken: "AGENT-PRO-A-44444444"},
			want:    models.SubscriptionStatus{Type: models.SubscriptionPro, PlanName: "Annual", Expired: false, DaysLeft: 365},
		},
		{
			name:    "paid plan with garbage activation date counts from now",
			profile: models.Profile{ProToken: "AGENT-PRO-T-44444444", ActivationDate: "ontem"},
			want:    models.SubscriptionStatus{Type: models.SubscriptionPro, PlanName: "Quarterly", Expired: false, DaysLeft: 90},
		},
		{
			name:    "no token no trial",
			profile: models.Profile{},
			want:    models.SubscriptionStatus{Type: models.SubscriptionTrial, PlanName: "Trial", Expired: false, DaysLeft: 7},
		},
		{
			name:    "unrecognized token falls back to trial",
			profile: models.Profile{ProToken: "PROMO2025", TrialStartDate: daysAgo(2)},
			want:    models.SubscriptionStatus{Type: models.SubscriptionTrial, PlanName: "Trial", Expired: false, DaysLeft: 5},
		},
		{
			name:    "trial invalid start",
			profile: models.Profile{TrialStartDate: "not-a-date"},
			want:    models.SubscriptionStatus{Type: models.SubscriptionTrial, PlanName: "Trial", Expired: false, DaysLeft: 7},
		},
		{
			name:    "trial day 6",
			profile: models.Profile{TrialStartDate: daysAgo(6.9)},
			want:    models.SubscriptionStatus{Type: models.SubscriptionTrial, PlanName: "Trial", Expired: false, DaysLeft: 1},
		},
		{
			name:    "trial day 7 expired",
			profile: models.Profile{TrialStartDate: daysAgo(7)},
			want:    models.SubscriptionStatus{Type: models.SubscriptionTrial, PlanName: "Trial", Expired: true, DaysLeft: 0},
		},
		{
			name:    "trial clamps at zero",
			profile: models.Profile{TrialStartDate: daysAgo(40)},
			want:    models.SubscriptionStatus{Type: models.SubscriptionTrial, PlanName: "Trial", Expired: true, DaysLeft: 0},
		},
		{
			name:    "trial start in the future",
			profile: models.Profile{TrialStartDate: now.Add(36 * time.Hour).Format(time.RFC3339)},
			want:    models.SubscriptionStatus{Type: models.SubscriptionTrial, PlanName: "Trial", Expired: false, DaysLeft: 9},
		},
		{
			name:    "trial date from a browser toISOString",
			profile: models.Profile{TrialStartDate: "2025-03-13T12:00:00.000Z"},
			want:    models.SubscriptionStatus{Type: models.SubscriptionTrial, PlanName: "Trial", Expired: false, DaysLeft: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.profile, now))
		})
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	p := models.Profile{ProToken: "AGENT-PRO-S-ABCDEF12", ActivationDate: daysAgo(12)}
	first := Evaluate(p, now)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Evaluate(p, now))
	}
}

func TestEvaluate_ExpiredMatchesDaysLeft(t *testing.T) {
	tokens := []string{"", "AGENT-PRO-M-1", "AGENT-PRO-T-1", "AGENT-PRO-S-1", "AGENT-PRO-A-1"}
	for _, token := range tokens {
		for d := 0.0; d < 400; d += 3.5 {
			st := Evaluate(models.Profile{ProToken: token, ActivationDate: daysAgo(d), TrialStartDate: daysAgo(d)}, now)
			assert.Equal(t, st.DaysLeft <= 0, st.Expired, "token=%q days=%v", token, d)
		}
	}
}
