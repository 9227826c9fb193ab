package reading

//go:generate mockgen -source=pipeline.go -destination=mocks/pipeline_mock.go -package=mocks Store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"palmyst/api/internal/apperr"
	"palmyst/api/internal/inference"
	"palmyst/api/internal/logger"
	"palmyst/api/internal/metrics"
	"palmyst/api/internal/models"
	"palmyst/api/internal/prompt"
	"palmyst/api/internal/util"
)

// Store persists generated readings.
type Store interface {
	InsertReading(ctx context.Context, nr models.NewReading) (models.ReadingID, error)
}

const notAPalmMessage = "The image is not a palm. Please upload the correct picture."

// Pipeline validates a palm photo, generates a reading for it and persists the result.
type Pipeline struct {
	llm     inference.Client
	store   Store
	prompts *prompt.Templates
	log     *zap.Logger
	metrics *metrics.Metrics
}

func New(llm inference.Client, store Store, prompts *prompt.Templates, log *zap.Logger, m *metrics.Metrics) *Pipeline {
	if prompts == nil {
		prompts = prompt.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{llm: llm, store: store, prompts: prompts, log: log, metrics: m}
}

// Handle runs validate -> generate -> persist. A rejection (apperr.CodeNotAPalm,
// apperr.CodeWrongHand) stops before generation; a persistence failure discards
// the generated text so a reading is never returned without a stored record.
func (p *Pipeline) Handle(ctx context.Context, sub models.Submission) (models.AnalyzeResult, error) {
	log := logger.FromContext(ctx, p.log).With(zap.String("engine", p.llm.Name()))

	verdict, err := p.validate(ctx, log, sub)
	if err != nil {
		return models.AnalyzeResult{}, err
	}
	if err := checkVerdict(verdict, sub.GenderHint); err != nil {
		p.metrics.Reject(string(apperr.CodeOf(err)))
		log.Info("submission rejected",
			zap.String("reason", string(apperr.CodeOf(err))),
			zap.String("is_palm", verdict.IsPalm),
			zap.String("hand_type", string(verdict.HandType)),
			zap.String("gender", sub.GenderHint),
		)
		return models.AnalyzeResult{}, err
	}

	text, err := p.generate(ctx, sub)
	if err != nil {
		p.metrics.Fail("generate")
		return models.AnalyzeResult{}, err
	}

	id, err := p.store.InsertReading(ctx, models.NewReading{Name: sub.Name, Phone: sub.Phone, Text: text})
	if err != nil {
		p.metrics.Fail("persist")
		return models.AnalyzeResult{}, apperr.Wrap(err, apperr.CodePersistenceFailure, "insert reading")
	}
	p.metrics.ReadingCreated()
	log.Info("reading created", zap.Stringer("reading_id", id))

	return models.AnalyzeResult{Reading: text, ReadingID: id}, nil
}

func (p *Pipeline) validate(ctx context.Context, log *zap.Logger, sub models.Submission) (models.Verdict, error) {
	start := time.Now()
	raw, err := p.llm.Generate(ctx, p.prompts.Validation(), sub.Image, sub.MIMEType)
	p.metrics.ObserveInference("validate", start)
	if err != nil {
		p.metrics.Fail("validate")
		return models.Verdict{}, apperr.Wrap(err, apperr.CodeUpstreamFailure, "validation call")
	}
	v, err := ParseVerdict(raw)
	if err != nil {
		p.metrics.Fail("validate")
		log.Error("validation response is not JSON", zap.String("raw", raw), zap.Error(err))
		return models.Verdict{}, err
	}
	return v, nil
}

func (p *Pipeline) generate(ctx context.Context, sub models.Submission) (string, error) {
	text, err := p.prompts.Generation(prompt.TraitsFor(sub.ThumbMiddleKnuckleFlexible, sub.ThumbBaseFlexible))
	if err != nil {
		return "", apperr.Wrap(err, apperr.CodeInternal, "render generation prompt")
	}
	start := time.Now()
	out, err := p.llm.Generate(ctx, text, sub.Image, sub.MIMEType)
	p.metrics.ObserveInference("generate", start)
	if err != nil {
		return "", apperr.Wrap(err, apperr.CodeUpstreamFailure, "generation call")
	}
	return out, nil
}

// ParseVerdict decodes the validation answer from the first '{' to the last '}'
// of raw. There is no default verdict: anything unparsable is an error.
func ParseVerdict(raw string) (models.Verdict, error) {
	span, err := util.ExtractJSONObject(raw)
	if err != nil {
		return models.Verdict{}, apperr.Wrap(err, apperr.CodeBadUpstreamFormat, "validation response")
	}
	var v models.Verdict
	if err := json.Unmarshal([]byte(span), &v); err != nil {
		return models.Verdict{}, apperr.Wrap(err, apperr.CodeBadUpstreamFormat, "validation response")
	}
	return v, nil
}

func checkVerdict(v models.Verdict, genderHint string) error {
	if v.IsPalm != "yes" {
		return apperr.New(apperr.CodeNotAPalm, notAPalmMessage)
	}
	required := models.RequiredHand(genderHint)
	if v.HandType != models.HandUnknown && v.HandType != required {
		who := genderHint
		if who == "" {
			who = "person"
		}
		return apperr.New(apperr.CodeWrongHand,
			fmt.Sprintf("Wrong palm detected. A %s requires the %s hand. Please try again.", who, required))
	}
	return nil
}
