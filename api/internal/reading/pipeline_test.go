package reading

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"palmyst/api/internal/apperr"
	inferencemocks "palmyst/api/internal/inference/mocks"
	"palmyst/api/internal/metrics"
	"palmyst/api/internal/models"
	"palmyst/api/internal/prompt"
	"palmyst/api/internal/reading/mocks"
)

var palmJPEG = []byte{0xFF, 0xD8, 0xFF, 0xE0}

type PipelineSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	llm     *inferencemocks.MockClient
	store   *mocks.MockStore
	metrics *metrics.Metrics
	p       *Pipeline
}

func (s *PipelineSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.llm = inferencemocks.NewMockClient(s.ctrl)
	s.llm.EXPECT().Name().Return("fake").AnyTimes()
	s.store = mocks.NewMockStore(s.ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.p = New(s.llm, s.store, prompt.Default(), zap.NewNop(), s.metrics)
}

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineSuite))
}

func submission(gender string, q4, q5 bool) models.Submission {
	return models.Submission{
		Name:                       "Ana",
		Phone:                      "555-0100",
		Image:                      palmJPEG,
		MIMEType:                   "image/jpeg",
		GenderHint:                 gender,
		ThumbMiddleKnuckleFlexible: q4,
		ThumbBaseFlexible:          q5,
	}
}

func (s *PipelineSuite) expectValidation(answer string) {
	s.llm.EXPECT().
		Generate(gomock.Any(), prompt.DefaultValidation, palmJPEG, "image/jpeg").
		Return(answer, nil)
}

func (s *PipelineSuite) TestMaleRightHandProceedsToPersistence() {
	ctx := context.Background()
	gomock.InOrder(
		s.llm.EXPECT().
			Generate(gomock.Any(), prompt.DefaultValidation, palmJPEG, "image/jpeg").
			Return(`{"is_palm":"yes","hand_type":"right"}`, nil),
		s.llm.EXPECT().
			Generate(gomock.Any(), gomock.Any(), palmJPEG, "image/jpeg").
			Return("You possess a steady will.", nil),
		s.store.EXPECT().
			InsertReading(gomock.Any(), models.NewReading{Name: "Ana", Phone: "555-0100", Text: "You possess a steady will."}).
			Return(models.ReadingID(17), nil),
	)

	res, err := s.p.Handle(ctx, submission("male", true, true))
	s.Require().NoError(err)
	s.Equal("You possess a steady will.", res.Reading)
	s.Equal(models.ReadingID(17), res.ReadingID)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ReadingsCreated))
}

func (s *PipelineSuite) TestFemaleRightHandIsWrongHand() {
	s.expectValidation(`{"is_palm":"yes","hand_type":"right"}`)

	_, err := s.p.Handle(context.Background(), submission("female", true, true))
	s.Require().Error(err)
	s.True(apperr.HasCode(err, apperr.CodeWrongHand))
	s.Contains(err.Error(), "female")
	s.Contains(err.Error(), "left hand")
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Rejections.WithLabelValues("wrong_hand")))
}

func (s *PipelineSuite) TestAbsentGenderRequiresLeft() {
	s.expectValidation(`{"is_palm":"yes","hand_type":"right"}`)

	_, err := s.p.Handle(context.Background(), submission("", false, false))
	s.True(apperr.HasCode(err, apperr.CodeWrongHand))
}

func (s *PipelineSuite) TestUnknownHandAlwaysPasses() {
	for _, gender := range []string{"male", "female", ""} {
		s.expectValidation(`{"is_palm":"yes","hand_type":"unknown"}`)
		s.llm.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("reading", nil)
		s.store.EXPECT().InsertReading(gomock.Any(), gomock.Any()).Return(models.ReadingID(1), nil)

		res, err := s.p.Handle(context.Background(), submission(gender, true, false))
		s.Require().NoError(err, gender)
		s.NotEmpty(res.Reading)
	}
}

func (s *PipelineSuite) TestNotAPalmCreatesNothing() {
	for _, answer := range []string{
		`{"is_palm":"no","hand_type":"unknown"}`,
		`{"is_palm":"Yes","hand_type":"left"}`,
		`{"hand_type":"left"}`,
	} {
		s.expectValidation(answer)

		_, err := s.p.Handle(context.Background(), submission("female", true, true))
		s.Require().Error(err, answer)
		s.True(apperr.HasCode(err, apperr.CodeNotAPalm), answer)
		s.Equal(notAPalmMessage, apperr.PublicMessage(err, "generic"))
	}
}

func (s *PipelineSuite) TestNonStringVerdictFieldsAreRejections() {
	for _, answer := range []string{
		`{"is_palm": true, "hand_type": "left"}`,
		`{"is_palm": "no", "hand_type": 0}`,
		`{"is_palm": 1, "hand_type": "unknown"}`,
	} {
		s.expectValidation(answer)

		_, err := s.p.Handle(context.Background(), submission("female", true, true))
		s.True(apperr.HasCode(err, apperr.CodeNotAPalm), answer)
	}

	s.expectValidation(`{"is_palm": "yes", "hand_type": 0}`)
	_, err := s.p.Handle(context.Background(), submission("female", true, true))
	s.True(apperr.HasCode(err, apperr.CodeWrongHand))
	s.Zero(testutil.ToFloat64(s.metrics.Failures.WithLabelValues("validate")))
}

func (s *PipelineSuite) TestValidationWrappedInProse() {
	s.expectValidation("Sure, here you go: {\"is_palm\":\"yes\",\"hand_type\":\"left\"} thanks")
	s.llm.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("reading", nil)
	s.store.EXPECT().InsertReading(gomock.Any(), gomock.Any()).Return(models.ReadingID(2), nil)

	_, err := s.p.Handle(context.Background(), submission("female", false, false))
	s.NoError(err)
}

func (s *PipelineSuite) TestUnparsableValidationIsBadUpstreamFormat() {
	s.expectValidation("I cannot help with that.")

	_, err := s.p.Handle(context.Background(), submission("female", true, true))
	s.True(apperr.HasCode(err, apperr.CodeBadUpstreamFormat))
	s.False(apperr.IsRejection(err))
}

func (s *PipelineSuite) TestTraitsEmbeddedInGenerationPrompt() {
	var sent string
	s.expectValidation(`{"is_palm":"yes","hand_type":"left"}`)
	s.llm.EXPECT().
		Generate(gomock.Any(), gomock.Any(), palmJPEG, "image/jpeg").
		DoAndReturn(func(_ context.Context, p string, _ []byte, _ string) (string, error) {
			sent = p
			return "reading", nil
		})
	s.store.EXPECT().InsertReading(gomock.Any(), gomock.Any()).Return(models.ReadingID(3), nil)

	_, err := s.p.Handle(context.Background(), submission("female", true, false))
	s.Require().NoError(err)
	s.Contains(sent, "The user is "+prompt.TemperamentFlexible)
	s.Contains(sent, "Their family background is "+prompt.BackgroundInflexible)
}

func (s *PipelineSuite) TestInsertFailureDropsReading() {
	s.expectValidation(`{"is_palm":"yes","hand_type":"left"}`)
	s.llm.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("secret reading", nil)
	s.store.EXPECT().InsertReading(gomock.Any(), gomock.Any()).Return(models.ReadingID(0), errors.New("connection reset"))

	res, err := s.p.Handle(context.Background(), submission("female", true, true))
	s.True(apperr.HasCode(err, apperr.CodePersistenceFailure))
	s.Empty(res.Reading)
	s.Zero(res.ReadingID)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Failures.WithLabelValues("persist")))
}

func (s *PipelineSuite) TestUpstreamErrors() {
	s.llm.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("503"))
	_, err := s.p.Handle(context.Background(), submission("male", true, true))
	s.True(apperr.HasCode(err, apperr.CodeUpstreamFailure))

	s.expectValidation(`{"is_palm":"yes","hand_type":"right"}`)
	s.llm.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", context.DeadlineExceeded)
	_, err = s.p.Handle(context.Background(), submission("male", true, true))
	s.True(apperr.HasCode(err, apperr.CodeUpstreamFailure))
	s.ErrorIs(err, context.DeadlineExceeded)
}

func TestParseVerdict(t *testing.T) {
	v, err := ParseVerdict(`Sure, here you go: {"is_palm":"yes","hand_type":"left"} thanks`)
	require.NoError(t, err)
	assert.Equal(t, models.Verdict{IsPalm: "yes", HandType: models.HandLeft}, v)

	_, err = ParseVerdict("no json at all")
	assert.True(t, apperr.HasCode(err, apperr.CodeBadUpstreamFormat))

	_, err = ParseVerdict(`{"is_palm": yes}`)
	assert.True(t, apperr.HasCode(err, apperr.CodeBadUpstreamFormat))

	v, err = ParseVerdict(`{"is_palm": true, "hand_type": "left"}`)
	require.NoError(t, err)
	assert.Equal(t, "true", v.IsPalm)

	v, err = ParseVerdict(`{"is_palm": "no", "hand_type": 0}`)
	require.NoError(t, err)
	assert.Equal(t, models.Hand("0"), v.HandType)
}

func TestCheckVerdict(t *testing.T) {
	cases := []struct {
		name   string
		v      models.Verdict
		gender string
		code   apperr.Code
	}{
		{"male right", models.Verdict{IsPalm: "yes", HandType: models.HandRight}, "male", ""},
		{"male left", models.Verdict{IsPalm: "yes", HandType: models.HandLeft}, "male", apperr.CodeWrongHand},
		{"female left", models.Verdict{IsPalm: "yes", HandType: models.HandLeft}, "female", ""},
		{"other right", models.Verdict{IsPalm: "yes", HandType: models.HandRight}, "other", apperr.CodeWrongHand},
		{"unknown hand", models.Verdict{IsPalm: "yes", HandType: models.HandUnknown}, "male", ""},
		{"not palm", models.Verdict{IsPalm: "no", HandType: models.HandLeft}, "female", apperr.CodeNotAPalm},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := checkVerdict(tc.v, tc.gender)
			if tc.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperr.HasCode(err, tc.code))
		})
	}
}
