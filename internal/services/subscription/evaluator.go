// Package subscription вычисляет статус подписки агента по профилю и текущему времени.
//
// Статус нигде не хранится: он выводится заново при каждом запросе, поэтому
// вычисление чистое, не возвращает ошибок и идемпотентно для одних и тех же входных данных.
package subscription

import (
	"math"
	"strings"
	"time"

	"github.com/magabrotheeeer/agentpulse/internal/lib/license"
	"github.com/magabrotheeeer/agentpulse/internal/models"
)

const (
	// TrialDays длительность пробного периода.
	TrialDays = 7
	// LifetimeDaysLeft значение daysLeft для пожизненного плана.
	LifetimeDaysLeft = 9999
	// TrialPlanName название пробного плана.
	TrialPlanName = "Trial"
)

const day = 24 * time.Hour

// Evaluate вычисляет статус подписки.
//
// Пустая или неразборчивая дата активации считается равной now; пустая или
// неразборчивая дата начала пробного периода означает, что период еще не начался.
func Evaluate(profile models.Profile, now time.Time) models.SubscriptionStatus {
	plan := license.ParsePlan(profile.ProToken)

	switch plan {
	case license.Lifetime:
		return models.SubscriptionStatus{
			Type:     models.SubscriptionPro,
			PlanName: plan.String(),
			Expired:  false,
			DaysLeft: LifetimeDaysLeft,
		}
	case license.Unrecognized:
		return evaluateTrial(profile.TrialStartDate, now)
	}

	activation, ok := parseDate(profile.ActivationDate)
	if !ok {
		activation = now
	}
	left := plan.DurationDays() - daysBetween(activation, now)
	return models.SubscriptionStatus{
		Type:     models.SubscriptionPro,
		PlanName: plan.String(),
		Expired:  left <= 0,
		DaysLeft: left,
	}
}

func evaluateTrial(startDate string, now time.Time) models.SubscriptionStatus {
	start, ok := parseDate(startDate)
	if !ok {
		return models.SubscriptionStatus{
			Type:     models.SubscriptionTrial,
			PlanName: TrialPlanName,
			Expired:  false,
			DaysLeft: TrialDays,
		}
	}

	left := TrialDays - daysBetween(start, now)
	if left < 0 {
		left = 0
	}
	return models.SubscriptionStatus{
		Type:     models.SubscriptionTrial,
		PlanName: TrialPlanName,
		Expired:  left <= 0,
		DaysLeft: left,
	}
}

// daysBetween количество полных суток между from и to, округленное вниз.
// Для from в будущем результат отрицательный.
func daysBetween(from, to time.Time) int {
	return int(math.Floor(float64(to.Sub(from)) / float64(day)))
}

// форматы, в которых клиент сохранял даты
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
