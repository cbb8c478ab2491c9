package i18n

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"text/template"

	"gopkg.in/yaml.v3"
)

// Message is the localized title/body pair for one notification type.
// Both fields are text/template sources executed against the flattened
// notification metadata (actor_name, title, response, old_level, ...).
type Message struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

type compiled struct {
	title *template.Template
	body  *template.Template
}

type Translations map[string]compiled

const fallbackLocale = "en"

var (
	locales = make(map[string]Translations)
	mu      sync.RWMutex
)

// LoadTranslations reads <localePath>/<locale>/notifications.yaml for every
// locale directory found.
func LoadTranslations(localePath string) error {
	mu.Lock()
	defer mu.Unlock()

	entries, err := os.ReadDir(localePath)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		locale := entry.Name()
		filePath := filepath.Join(localePath, locale, "notifications.yaml")

		data, err := os.ReadFile(filePath)
		if err != nil {
			continue
		}

		var config struct {
			Notifications map[string]Message `yaml:"NOTIFICATIONS"`
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filePath, err)
		}

		trans := make(Translations, len(config.Notifications))
		for key, msg := range config.Notifications {
			c, err := compile(key, msg)
			if err != nil {
				return fmt.Errorf("failed to compile %s in %s: %w", key, filePath, err)
			}
			trans[key] = c
		}
		locales[locale] = trans
	}

	return nil
}

func compile(key string, msg Message) (compiled, error) {
	title, err := template.New(key + ".title").Option("missingkey=zero").Parse(msg.Title)
	if err != nil {
		return compiled{}, err
	}
	body, err := template.New(key + ".body").Option("missingkey=zero").Parse(msg.Body)
	if err != nil {
		return compiled{}, err
	}
	return compiled{title: title, body: body}, nil
}

// Render returns the localized title and body for key. Missing locales fall
// back to English; a missing key renders as the key itself with an empty body.
func Render(locale, key string, data map[string]any) (string, string) {
	mu.RLock()
	c, ok := lookup(locale, key)
	mu.RUnlock()

	if !ok {
		return key, ""
	}

	return execute(c.title, data, key), execute(c.body, data, "")
}

func lookup(locale, key string) (compiled, bool) {
	if trans, ok := locales[locale]; ok {
		if c, ok := trans[key]; ok {
			return c, true
		}
	}
	if locale != fallbackLocale {
		if trans, ok := locales[fallbackLocale]; ok {
			if c, ok := trans[key]; ok {
				return c, true
			}
		}
	}
	return compiled{}, false
}

func execute(tmpl *template.Template, data map[string]any, fallback string) string {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fallback
	}
	return buf.String()
}
