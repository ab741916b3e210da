package middleware

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/votex-backend/internal/handlers/dto"
	"github.com/rafabene/votex-backend/internal/infrastructure/i18n"
)

// I18n resolve o idioma de cada requisição e publica idioma e catálogo no
// contexto para os helpers de dto. Ordem: ?lang=, Accept-Language, padrão.
func I18n(service *i18n.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.Query("lang")
		if !service.IsLanguageSupported(lang) {
			lang = negotiateLanguage(service, c.GetHeader("Accept-Language"))
		}
		if lang == "" {
			lang = service.GetDefaultLanguage()
		}

		c.Set(dto.LanguageContextKey, lang)
		c.Set(dto.I18nServiceContextKey, service)
		c.Header("Content-Language", lang)
		c.Next()
	}
}

type languageRange struct {
	tag     string
	quality float64
}

// negotiateLanguage escolhe o idioma suportado de maior peso no header.
// Uma tag regional não suportada cai para a base ("ru-RU" -> "ru").
func negotiateLanguage(service *i18n.Service, header string) string {
	for _, r := range parseLanguageRanges(header) {
		if service.IsLanguageSupported(r.tag) {
			return r.tag
		}
		if base, _, found := strings.Cut(r.tag, "-"); found && service.IsLanguageSupported(base) {
			return base
		}
	}
	return ""
}

func parseLanguageRanges(header string) []languageRange {
	var ranges []languageRange
	for _, part := range strings.Split(header, ",") {
		tag, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		tag = strings.TrimSpace(tag)
		if tag == "" || tag == "*" {
			continue
		}

		quality := 1.0
		if v, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			q, err := strconv.ParseFloat(v, 64)
			if err != nil {
				continue
			}
			quality = q
		}
		if quality <= 0 {
			continue
		}
		ranges = append(ranges, languageRange{tag: tag, quality: quality})
	}

	slices.SortStableFunc(ranges, func(a, b languageRange) int {
		return cmp.Compare(b.quality, a.quality)
	})
	return ranges
}
