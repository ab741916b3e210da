// Package i18n carrega os catálogos de mensagens (um JSON por idioma) e
// traduz message IDs, incluindo os códigos de erro do domínio.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"text/template"
)

//go:embed locales/*.json
var embeddedLocales embed.FS

// message guarda o texto cru e, quando há placeholders, o template já compilado
type message struct {
	text string
	tmpl *template.Template
}

func (m message) render(params map[string]interface{}) string {
	if m.tmpl == nil || params == nil {
		return m.text
	}
	var sb strings.Builder
	if err := m.tmpl.Execute(&sb, params); err != nil {
		return m.text
	}
	return sb.String()
}

type catalog map[string]message

// Service traduz message IDs. Os catálogos não mudam depois da carga, então
// leituras concorrentes dispensam lock.
type Service struct {
	catalogs        map[string]catalog
	defaultLanguage string
}

// NewService carrega os catálogos de localesDir, ou os embutidos no binário
// quando localesDir é vazio.
func NewService(localesDir, defaultLang string) (*Service, error) {
	if localesDir != "" {
		return NewServiceFS(os.DirFS(localesDir), defaultLang)
	}

	sub, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded locales: %w", err)
	}
	return NewServiceFS(sub, defaultLang)
}

// NewServiceFS carrega cada <idioma>.json da raiz de fsys
func NewServiceFS(fsys fs.FS, defaultLang string) (*Service, error) {
	files, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to find locale files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no locale files found")
	}

	catalogs := make(map[string]catalog, len(files))
	for _, file := range files {
		lang := strings.TrimSuffix(path.Base(file), ".json")
		cat, err := loadCatalog(fsys, file)
		if err != nil {
			return nil, err
		}
		catalogs[lang] = cat
	}

	if _, ok := catalogs[defaultLang]; !ok {
		return nil, fmt.Errorf("default language %s not found in locale files", defaultLang)
	}

	return &Service{catalogs: catalogs, defaultLanguage: defaultLang}, nil
}

func loadCatalog(fsys fs.FS, file string) (catalog, error) {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, fmt.Errorf("failed to read locale file %s: %w", file, err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse locale file %s: %w", file, err)
	}

	cat := make(catalog, len(raw))
	for key, text := range raw {
		msg := message{text: text}
		if strings.Contains(text, "{{") {
			tmpl, err := template.New(key).Parse(text)
			if err != nil {
				return nil, fmt.Errorf("invalid template for %s in %s: %w", key, file, err)
			}
			msg.tmpl = tmpl
		}
		cat[key] = msg
	}
	return cat, nil
}

// T traduz key para lang, caindo para o idioma padrão e por fim para a
// própria chave. params[0] preenche placeholders como {{.Field}}.
func (s *Service) T(lang, key string, params ...map[string]interface{}) string {
	msg, ok := s.lookup(lang, key)
	if !ok {
		msg, ok = s.lookup(s.defaultLanguage, key)
	}
	if !ok {
		return key
	}

	if len(params) == 0 {
		return msg.text
	}
	return msg.render(params[0])
}

// Has indica se key existe no catálogo de lang, sem fallback
func (s *Service) Has(lang, key string) bool {
	_, ok := s.lookup(lang, key)
	return ok
}

func (s *Service) lookup(lang, key string) (message, bool) {
	msg, ok := s.catalogs[lang][key]
	return msg, ok
}

func (s *Service) GetDefaultLanguage() string {
	return s.defaultLanguage
}

// GetSupportedLanguages lista os idiomas carregados, em ordem alfabética
func (s *Service) GetSupportedLanguages() []string {
	langs := make([]string, 0, len(s.catalogs))
	for lang := range s.catalogs {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

func (s *Service) IsLanguageSupported(lang string) bool {
	_, ok := s.catalogs[lang]
	return ok
}
