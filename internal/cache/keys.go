package cache

import "strings"

// KeyPrefix - тип записи в кэше
type KeyPrefix string

const (
	PrefixURL       KeyPrefix = "url"  // url:alias -> запись ссылки
	PrefixRateLimit KeyPrefix = "rate" // rate:clientIP -> счетчик запросов
)

// KeyBuilder собирает ключи кэша из префикса и частей.
// Namespace нужен, когда несколько инстансов делят один Redis.
type KeyBuilder struct {
	namespace string
}

func NewKeyBuilder(namespace string) *KeyBuilder {
	return &KeyBuilder{namespace: namespace}
}

func (k *KeyBuilder) Build(prefix KeyPrefix, parts ...string) string {
	segments := make([]string, 0, len(parts)+2)
	if k.namespace != "" {
		segments = append(segments, k.namespace)
	}
	segments = append(segments, string(prefix))
	segments = append(segments, parts...)

	return strings.Join(segments, ":")
}

// URL - ключ записи ссылки по алиасу
func (k *KeyBuilder) URL(alias string) string {
	return k.Build(PrefixURL, alias)
}

// RateLimit - ключ счетчика запросов клиента
func (k *KeyBuilder) RateLimit(clientIP string) string {
	return k.Build(PrefixRateLimit, clientIP)
}

// DefaultKeyBuilder - построитель без namespace
var DefaultKeyBuilder = NewKeyBuilder("")

var CacheKeys = struct {
	URL       func(string) string
	RateLimit func(string) string
}{
	URL:       DefaultKeyBuilder.URL,
	RateLimit: DefaultKeyBuilder.RateLimit,
}
