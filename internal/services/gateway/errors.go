package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/googleapi"

	"github.com/magabrotheeeer/agentpulse/internal/gemini"
)

// Kind класс ошибки вызова генеративной модели.
type Kind string

// Классы ошибок.
const (
	KindNone           Kind = ""
	KindMissingKey     Kind = "credential-missing"
	KindRateLimit      Kind = "rate-limit"
	KindInvalidKey     Kind = "credential-invalid"
	KindBilling        Kind = "billing-required"
	KindUnknown        Kind = "unknown-upstream"
	KindMalformedCache Kind = "malformed-cache-entry"
)

// Сообщения пользователю.
const (
	MsgMissingKey = "CHAVE NÃO DETECTADA: Vá em Configurações > Performance e insira sua Gemini API Key."
	MsgRateLimit  = "⚠️ RECARGA TÁTICA: Limite de buscas atingido. Ative o faturamento (Billing) no Google AI Studio para uso ilimitado."
	MsgInvalidKey = "⚠️ CHAVE INVÁLIDA: A chave inserida não foi reconhecida pelo Google. Tente criar uma nova no AI Studio."
	MsgBilling    = "⚠️ ERRO DE FATURAMENTO: Sua chave exige um projeto com cartão de crédito vinculado no Google Cloud para este modelo."
	MsgBusy       = "RODNEY: Uma busca já está em andamento. Aguarde o resultado."
)

// длина фрагмента исходного сообщения в тексте неизвестной ошибки
const unknownSnippetLength = 100

var (
	// ErrCooldown повторный вызов в период охлаждения после превышения квоты.
	ErrCooldown = errors.New("gateway: cooldown is active")
	// ErrBusy для устройства уже выполняется вызов.
	ErrBusy = errors.New("gateway: request already in flight")
)

// Error классифицированная ошибка вызова. Error() возвращает сообщение для пользователя.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return Message(e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CooldownError отказ из-за активного периода охлаждения.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("RECARGA TÁTICA: aguarde %ds antes de uma nova busca.", RetryAfterSeconds(e.Remaining))
}

// Is позволяет сравнивать с ErrCooldown через errors.Is.
func (e *CooldownError) Is(target error) bool {
	return target == ErrCooldown
}

// RetryAfterSeconds округляет оставшееся время вверх до целых секунд.
func RetryAfterSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	sec := int(d / time.Second)
	if d%time.Second != 0 {
		sec++
	}
	return sec
}

// Classify определяет класс ошибки. Проверки идут в фиксированном порядке:
// отсутствие ключа, квота, неверный ключ, биллинг, остальное.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Kind
	}
	if errors.Is(err, gemini.ErrMissingKey) {
		return KindMissingKey
	}

	code := 0
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		code = apiErr.Code
	}
	msg := strings.ToLower(err.Error())

	switch {
	case code == http.StatusTooManyRequests,
		strings.Contains(msg, "quota"),
		strings.Contains(msg, "429"):
		return KindRateLimit
	case strings.Contains(msg, "api_key_invalid"),
		strings.Contains(msg, "not found"),
		code == http.StatusBadRequest && strings.Contains(msg, "api key"):
		return KindInvalidKey
	case strings.Contains(msg, "billing"),
		strings.Contains(msg, "pay-as-you-go"):
		return KindBilling
	default:
		return KindUnknown
	}
}

// Message текст для пользователя по классу ошибки.
func Message(kind Kind, err error) string {
	switch kind {
	case KindMissingKey:
		return MsgMissingKey
	case KindRateLimit:
		return MsgRateLimit
	case KindInvalidKey:
		return MsgInvalidKey
	case KindBilling:
		return MsgBilling
	case KindNone:
		return ""
	default:
		return fmt.Sprintf("RODNEY: %s... Tente atualizar a chave ou mudar o termo de busca.", snippet(upstreamMessage(err)))
	}
}

// HTTPStatus код ответа API для класса ошибки.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindMissingKey:
		return http.StatusBadRequest
	case KindInvalidKey:
		return http.StatusUnauthorized
	case KindRateLimit:
		return http.StatusTooManyRequests
	case KindBilling:
		return http.StatusPaymentRequired
	default:
		return http.StatusBadGateway
	}
}

// upstreamMessage исходное сообщение SDK без префиксов оберток.
func upstreamMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

func snippet(s string) string {
	r := []rune(s)
	if len(r) > unknownSnippetLength {
		r = r[:unknownSnippetLength]
	}
	return string(r)
}
