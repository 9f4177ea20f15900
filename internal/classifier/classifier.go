package classifier

import (
	"context"
	"net/http"
	"strings"
)

const (
	Unknown        = "Unknown"
	DirectReferrer = "Direct"

	DeviceMobile  = "Mobile"
	DeviceTablet  = "Tablet"
	DeviceDesktop = "Desktop"
)

// VisitorInfo - структурированное описание посетителя по заголовкам запроса
type VisitorInfo struct {
	Device   string
	OS       string
	Browser  string
	IP       string
	Referrer string
	Location string
}

// rule - пара (метка, подстроки user-agent). Правила проверяются сверху вниз,
// срабатывает первое совпадение. Порядок менять нельзя: часть user-agent строк
// подходит под несколько правил сразу (например "Chrome" содержит "Safari").
type rule struct {
	label    string
	patterns []string
}

var osRules = []rule{
	{"Windows", []string{"windows"}},
	{"MacOS", []string{"mac"}},
	{"Linux", []string{"linux"}},
	{"Android", []string{"android"}},
	{"iOS", []string{"ios", "iphone", "ipad"}},
}

var browserRules = []rule{
	{"Chrome", []string{"chrome", "crios"}},
	{"Firefox", []string{"firefox", "fxios"}},
	{"Safari", []string{"safari"}},
	{"Edge", []string{"edg"}},
	{"Opera", []string{"opr/"}},
}

// Classifier превращает сырые заголовки запроса в описание посетителя.
// Геолокация по IP делегируется внешнему провайдеру.
type Classifier struct {
	geo LocationProvider
}

func New(geo LocationProvider) *Classifier {
	return &Classifier{
		geo: geo,
	}
}

// Classify разбирает заголовки и дополняет результат геолокацией.
// Сбой геолокации не считается ошибкой: поле Location деградирует до "Unknown".
func (c *Classifier) Classify(ctx context.Context, headers http.Header) VisitorInfo {
	info := ParseHeaders(headers)
	info.Location = c.geo.Resolve(ctx, info.IP)
	return info
}

// ParseHeaders - чистая часть классификатора, без внешних вызовов
func ParseHeaders(headers http.Header) VisitorInfo {
	userAgent := strings.ToLower(headers.Get("User-Agent"))

	device := DeviceDesktop
	if strings.Contains(userAgent, "mobile") {
		device = DeviceMobile
	} else if strings.Contains(userAgent, "tablet") {
		device = DeviceTablet
	}

	return VisitorInfo{
		Device:   device,
		OS:       matchFirst(userAgent, osRules),
		Browser:  matchFirst(userAgent, browserRules),
		IP:       extractIP(headers),
		Referrer: extractReferrer(headers),
	}
}

func matchFirst(userAgent string, rules []rule) string {
	for _, r := range rules {
		for _, pattern := range r.patterns {
			if strings.Contains(userAgent, pattern) {
				return r.label
			}
		}
	}
	return Unknown
}

func extractIP(headers http.Header) string {
	if forwarded := headers.Get("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}

	if realIP := headers.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	return Unknown
}

func extractReferrer(headers http.Header) string {
	if referer := headers.Get("Referer"); referer != "" {
		return referer
	}
	return DirectReferrer
}
