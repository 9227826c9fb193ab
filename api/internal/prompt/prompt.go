package prompt

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

const DefaultValidation = `Analyze this image with two checks.
1. Is it a clear photo of a human palm? (Answer "yes" or "no").
2. If yes, is it a left or right palm? (Answer "left", "right", or "unknown").
Respond ONLY in this JSON format: {"is_palm": "answer", "hand_type": "answer"}`

const DefaultGeneration = `You are PalMyst, a wise palm reader. Analyze the user's information and deliver a final personality reading.
Internal Analysis (Do NOT reveal):
- Analyze the palm image based on standard palmistry rules.
- The user is {{.Temperament}}
- Their family background is {{.Background}}
Final Output Instructions:
- Synthesize all findings into a single, cohesive paragraph written in the second person ("You possess...").
- DO NOT mention your reasoning, fingers, or lines.
Begin the reading now.`

// Trait phrases selected by the two questionnaire answers.
const (
	TemperamentFlexible   = "flexible and open to change."
	TemperamentInflexible = "stubborn and headstrong."
	BackgroundFlexible    = "flexible."
	BackgroundInflexible  = "inflexible."
)

// Traits are the values substituted into the generation template.
type Traits struct {
	Temperament string
	Background  string
}

// TraitsFor maps the thumb-flexibility answers to their trait phrases.
func TraitsFor(middleKnuckleFlexible, baseFlexible bool) Traits {
	t := Traits{Temperament: TemperamentInflexible, Background: BackgroundInflexible}
	if middleKnuckleFlexible {
		t.Temperament = TemperamentFlexible
	}
	if baseFlexible {
		t.Background = BackgroundFlexible
	}
	return t
}

// Templates is the validation/generation prompt pair used by the reading pipeline.
type Templates struct {
	validation string
	generation *template.Template
}

type fileFormat struct {
	Validation string `yaml:"validation"`
	Generation string `yaml:"generation"`
}

func New(validation, generation string) (*Templates, error) {
	validation = strings.TrimSpace(validation)
	if validation == "" {
		return nil, fmt.Errorf("prompt: validation template is empty")
	}
	if strings.TrimSpace(generation) == "" {
		return nil, fmt.Errorf("prompt: generation template is empty")
	}
	tpl, err := template.New("generation").Option("missingkey=error").Parse(strings.TrimSpace(generation))
	if err != nil {
		return nil, fmt.Errorf("prompt: parse generation template: %w", err)
	}
	// Render once so a template referencing unknown fields fails at start, not per request.
	if err := tpl.Execute(&bytes.Buffer{}, Traits{}); err != nil {
		return nil, fmt.Errorf("prompt: generation template: %w", err)
	}
	return &Templates{validation: validation, generation: tpl}, nil
}

// Default returns the built-in prompt pair.
func Default() *Templates {
	t, err := New(DefaultValidation, DefaultGeneration)
	if err != nil {
		panic(err)
	}
	return t
}

// Load reads a YAML file with "validation" and "generation" keys.
// An empty path yields the defaults; a key left out of the file keeps its default.
func Load(path string) (*Templates, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prompt: read %s: %w", path, err)
	}
	ff := fileFormat{Validation: DefaultValidation, Generation: DefaultGeneration}
	if err := yaml.Unmarshal(b, &ff); err != nil {
		return nil, fmt.Errorf("prompt: bad yaml in %s: %w", path, err)
	}
	return New(ff.Validation, ff.Generation)
}

func (t *Templates) Validation() string { return t.validation }

func (t *Templates) Generation(tr Traits) (string, error) {
	var buf bytes.Buffer
	if err := t.generation.Execute(&buf, tr); err != nil {
		return "", fmt.Errorf("prompt: render generation: %w", err)
	}
	return buf.String(), nil
}
