// Package license разбирает и выпускает лицензионные токены вида PREFIX-PLAN-RANDOM.
//
// Токен не проверяется на сервере: любая строка, содержащая маркер плана,
// активирует соответствующий план. Разбор выполняется один раз на границе,
// дальше код работает с PlanKind.
package license

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// PlanKind тип плана, закодированный в токене.
type PlanKind int

const (
	// Unrecognized: маркер плана не найден, пользователь считается пробным.
	Unrecognized PlanKind = iota
	Monthly
	Quarterly
	Semiannual
	Annual
	Lifetime
)

// Prefix префикс токенов, выпускаемых сервисом.
const Prefix = "AGENT-PRO"

// планы в порядке проверки маркеров; пожизненный проверяется раньше остальных
var markers = []struct {
	kind   PlanKind
	marker string
}{
	{Monthly, "-M-"},
	{Quarterly, "-T-"},
	{Semiannual, "-S-"},
	{Annual, "-A-"},
}

// ParsePlan определяет план по маркеру в токене. Первое совпадение выигрывает.
func ParsePlan(token string) PlanKind {
	if strings.Contains(token, "-L-") {
		return Lifetime
	}
	for _, m := range markers {
		if strings.Contains(token, m.marker) {
			return m.kind
		}
	}
	return Unrecognized
}

// DurationDays возвращает длительность плана в днях. Для Lifetime и Unrecognized: 0.
func (k PlanKind) DurationDays() int {
	switch k {
	case Monthly:
		return 30
	case Quarterly:
		return 90
	case Semiannual:
		return 180
	case Annual:
		return 365
	default:
		return 0
	}
}

// Code однобуквенный код плана в токене.
func (k PlanKind) Code() string {
	switch k {
	case Monthly:
		return "M"
	case Quarterly:
		return "T"
	case Semiannual:
		return "S"
	case Annual:
		return "A"
	case Lifetime:
		return "L"
	default:
		return ""
	}
}

// String человекочитаемое название плана.
func (k PlanKind) String() string {
	switch k {
	case Monthly:
		return "Monthly"
	case Quarterly:
		return "Quarterly"
	case Semiannual:
		return "Semiannual"
	case Annual:
		return "Annual"
	case Lifetime:
		return "Lifetime"
	default:
		return "Unrecognized"
	}
}

// PlanFromCode обратное к Code преобразование.
func PlanFromCode(code string) (PlanKind, error) {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "M":
		return Monthly, nil
	case "T":
		return Quarterly, nil
	case "S":
		return Semiannual, nil
	case "A":
		return Annual, nil
	case "L":
		return Lifetime, nil
	default:
		return Unrecognized, fmt.Errorf("license: unknown plan code %q", code)
	}
}

// Generate выпускает новый токен для плана: AGENT-PRO-{PLAN}-{8 символов}.
func Generate(kind PlanKind) (string, error) {
	if kind == Unrecognized {
		return "", fmt.Errorf("license: cannot generate token for unrecognized plan")
	}
	random := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("%s-%s-%s", Prefix, kind.Code(), random), nil
}
