// Package content loads the words, cards and memories shown by the
// greeting. A default set is embedded; a YAML or TOML file can replace it.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

var validate = validator.New()

// Content is everything the greeting screens display.
type Content struct {
	Intro    Intro    `yaml:"intro" toml:"intro"`
	Question Question `yaml:"question" toml:"question"`
	Success  Success  `yaml:"success" toml:"success"`
	Cards    []Card   `yaml:"cards" toml:"cards" validate:"required,min=1,dive"`
	Memories []Memory `yaml:"memories" toml:"memories" validate:"required,min=1,dive"`
}

type Intro struct {
	Greeting string `yaml:"greeting" toml:"greeting" validate:"required"`
	Message  string `yaml:"message" toml:"message"`
	Button   string `yaml:"button" toml:"button" validate:"required"`
}

// Question holds the Valentine question. Prompt may contain "{name}".
type Question struct {
	Prompt    string   `yaml:"prompt" toml:"prompt" validate:"required"`
	Subtitle  string   `yaml:"subtitle" toml:"subtitle"`
	Taunt     string   `yaml:"taunt" toml:"taunt"`
	NoPhrases []string `yaml:"no_phrases" toml:"no_phrases" validate:"required,min=1,dive,required"`
}

type Success struct {
	Headline    string   `yaml:"headline" toml:"headline" validate:"required"`
	Message     string   `yaml:"message" toml:"message"`
	When        string   `yaml:"when" toml:"when"`
	Where       string   `yaml:"where" toml:"where"`
	SaveTheDate string   `yaml:"save_the_date" toml:"save_the_date"`
	Letter      string   `yaml:"letter" toml:"letter"`
	Signature   string   `yaml:"signature" toml:"signature"`
	Reasons     []string `yaml:"reasons" toml:"reasons"`
}

type CardKind string

const (
	KindQuestion CardKind = "question"
	KindDare     CardKind = "dare"
)

type Card struct {
	ID    int      `yaml:"id" toml:"id" validate:"required"`
	Kind  CardKind `yaml:"kind" toml:"kind" validate:"required,oneof=question dare"`
	Text  string   `yaml:"text" toml:"text" validate:"required"`
	Emoji string   `yaml:"emoji" toml:"emoji"`
}

type Memory struct {
	Caption string `yaml:"caption" toml:"caption" validate:"required"`
	Date    string `yaml:"date" toml:"date"`
	Note    string `yaml:"note" toml:"note"`
}

// PromptFor returns the question with the recipient's name filled in.
func (q Question) PromptFor(recipient string) string {
	return strings.ReplaceAll(q.Prompt, "{name}", recipient)
}

// Default returns the embedded content.
func Default() (*Content, error) {
	return parseYAML(defaultYAML)
}

// Load reads content from path, choosing the format by extension
// (.yaml, .yml or .toml). An empty path returns Default().
func Load(path string) (*Content, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(data)
	case ".toml":
		return parseTOML(data)
	default:
		return nil, fmt.Errorf("unsupported content file type %q", filepath.Ext(path))
	}
}

func parseYAML(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse content yaml: %w", err)
	}
	if err := check(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func parseTOML(data []byte) (*Content, error) {
	var c Content
	if _, err := toml.Decode(string(data), &c); err != nil {
		return nil, fmt.Errorf("failed to parse content toml: %w", err)
	}
	if err := check(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func check(c *Content) error {
	if err := validate.Struct(c); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return fmt.Errorf("invalid content: %s failed %s", ve[0].Namespace(), ve[0].Tag())
		}
		return fmt.Errorf("invalid content: %w", err)
	}

	seen := make(map[int]bool, len(c.Cards))
	for _, card := range c.Cards {
		if seen[card.ID] {
			return fmt.Errorf("invalid content: duplicate card id %d", card.ID)
		}
		seen[card.ID] = true
	}
	return nil
}
