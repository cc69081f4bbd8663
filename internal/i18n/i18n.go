// Package i18n provides internationalization support for the engraving service.
// It handles translation of user-facing messages and error messages.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	// defaultTranslator is the singleton translator instance.
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: getDefaultMessages(),
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the translated message for the given key and locale.
// Falls back to DefaultLocale if the locale is not found.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	localeMessages, ok := t.messages[locale]
	if !ok {
		localeMessages = t.messages[DefaultLocale]
	}

	msg, ok := localeMessages[key]
	if !ok {
		// Fallback to default locale
		if defaultMessages := t.messages[DefaultLocale]; defaultMessages != nil {
			if fallbackMsg, exists := defaultMessages[key]; exists {
				return fallbackMsg
			}
		}
		return key
	}

	return msg
}

// GetLocale extracts the locale from the gin context.
// Checks Accept-Language header and falls back to DefaultLocale.
func GetLocale(c *gin.Context) string {
	acceptLang := c.GetHeader(AcceptLanguageHeader)
	if acceptLang == "" {
		return DefaultLocale
	}

	// Parse Accept-Language header (e.g., "en-US,en;q=0.9,pt;q=0.8")
	parts := strings.Split(acceptLang, ",")
	if len(parts) > 0 {
		lang := strings.TrimSpace(strings.Split(parts[0], ";")[0])
		// Extract base language (e.g., "en" from "en-US")
		if idx := strings.Index(lang, "-"); idx > 0 {
			lang = lang[:idx]
		}
		// Normalize to lowercase
		lang = strings.ToLower(lang)
		// Validate it's a supported locale
		if _, ok := getDefaultMessages()[lang]; ok {
			return lang
		}
	}

	return DefaultLocale
}

// getDefaultMessages returns the default message translations.
func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			// Error messages
			"error.invalid_request":      "Invalid request",
			"error.invalid_request_body": "Invalid request body",
			"error.internal_error":       "An unexpected error occurred",
			"error.unauthorized":         "Unauthorized",
			"error.api_key_required":     "API key is required",
			"error.invalid_api_key":      "Invalid API key",
			"error.forbidden":            "Forbidden",
			"error.not_found":            "Not found",
			"error.rate_limit_exceeded":  "Too many requests, please try again later",
			"error.conflict":             "Conflict",
			"error.invalid_token":        "Invalid or expired token",
			"error.token_required":       "Authentication token is required",
			"error.timeout":              "Request timed out",

			"error.session_not_found":   "Design session not found or expired",
			"error.unknown_product":     "Unknown product or variation",
			"error.invalid_upload":      "Image upload is not a supported type or is too large",
			"error.pricing_unavailable": "Image pricing is temporarily unavailable, please try again",
			"error.pricing_in_flight":   "An image is still being priced, please wait",
			"error.empty_design":        "Add some text or an image before checking out",
			"error.cart_unavailable":    "The cart service is temporarily unavailable",
			"error.invalid_tiers":       "Price tier table is invalid",
			"error.generative_unavailable": "Design suggestions are temporarily unavailable",

			// Warnings
			"warning.character_limit": "Your engraving exceeds the largest pricing tier; extra characters are not charged",

			// Success messages
			"success.checked_out": "Design added to cart successfully",
		},
		"pt": {
			// Error messages
			"error.invalid_request":      "Requisição inválida",
			"error.invalid_request_body": "Corpo da requisição inválido",
			"error.internal_error":       "Ocorreu um erro inesperado",
			"error.unauthorized":         "Não autorizado",
			"error.api_key_required":     "Chave de API é obrigatória",
			"error.invalid_api_key":      "Chave de API inválida",
			"error.forbidden":            "Proibido",
			"error.not_found":            "Não encontrado",
			"error.rate_limit_exceeded":  "Muitas requisições, tente novamente mais tarde",
			"error.conflict":             "Conflito",
			"error.invalid_token":        "Token inválido ou expirado",
			"error.token_required":       "Token de autenticação é obrigatório",
			"error.timeout":              "Tempo de requisição esgotado",

			"error.session_not_found":   "Sessão de design não encontrada ou expirada",
			"error.unknown_product":     "Produto ou variação desconhecida",
			"error.invalid_upload":      "O upload da imagem não é de um tipo suportado ou é muito grande",
			"error.pricing_unavailable": "A precificação de imagens está temporariamente indisponível, tente novamente",
			"error.pricing_in_flight":   "Uma imagem ainda está sendo precificada, aguarde",
			"error.empty_design":        "Adicione texto ou uma imagem antes de finalizar a compra",
			"error.cart_unavailable":    "O serviço de carrinho está temporariamente indisponível",
			"error.invalid_tiers":       "Tabela de faixas de preço inválida",
			"error.generative_unavailable": "As sugestões de design estão temporariamente indisponíveis",

			// Warnings
			"warning.character_limit": "Sua gravação excede a maior faixa de preço; caracteres extras não são cobrados",

			// Success messages
			"success.checked_out": "Design adicionado ao carrinho com sucesso",
		},
		"nl": {
			// Error messages
			"error.invalid_request":      "Ongeldig verzoek",
			"error.invalid_request_body": "Ongeldige aanvraag body",
			"error.internal_error":       "Er is een onverwachte fout opgetreden",
			"error.unauthorized":         "Niet geautoriseerd",
			"error.api_key_required":     "API-sleutel is vereist",
			"error.invalid_api_key":      "Ongeldige API-sleutel",
			"error.forbidden":            "Verboden",
			"error.not_found":            "Niet gevonden",
			"error.rate_limit_exceeded":  "Te veel verzoeken, probeer het later opnieuw",
			"error.conflict":             "Conflict",
			"error.invalid_token":        "Ongeldig of verlopen token",
			"error.token_required":       "Authenticatietoken is vereist",
			"error.timeout":              "Verzoek verlopen",

			"error.session_not_found":   "Ontwerpsessie niet gevonden of verlopen",
			"error.unknown_product":     "Onbekend product of variant",
			"error.invalid_upload":      "De afbeeldingsupload heeft geen ondersteund type of is te groot",
			"error.pricing_unavailable": "Prijsbepaling van afbeeldingen is tijdelijk niet beschikbaar, probeer het opnieuw",
			"error.pricing_in_flight":   "Een afbeelding wordt nog geprijsd, even geduld",
			"error.empty_design":        "Voeg tekst of een afbeelding toe voordat u afrekent",
			"error.cart_unavailable":    "De winkelwagenservice is tijdelijk niet beschikbaar",
			"error.invalid_tiers":       "Prijsstaffeltabel is ongeldig",
			"error.generative_unavailable": "Ontwerpsuggesties zijn tijdelijk niet beschikbaar",

			// Warnings
			"warning.character_limit": "Uw gravure overschrijdt de hoogste prijsstaffel; extra tekens worden niet in rekening gebracht",

			// Success messages
			"success.checked_out": "Ontwerp succesvol aan winkelwagen toegevoegd",
		},
	}
}
