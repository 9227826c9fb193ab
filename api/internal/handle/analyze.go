package handle

import (
	"net/http"

	"go.uber.org/zap"

	"palmyst/api/internal/apperr"
	"palmyst/api/internal/models"
	"palmyst/api/internal/util"
)

const analyzeFailedMessage = "An error occurred during analysis."

type AnalyzeRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	ImageData string `json:"image_data"` // base64 or data: URL
	Q4Answer  string `json:"q4_answer"`  // "yes" | anything else
	Q5Answer  string `json:"q5_answer"`
	Gender    string `json:"gender,omitempty"`
}

func (req AnalyzeRequest) submission() (models.Submission, error) {
	img, hint, err := util.DecodeBase64MaybeDataURL(req.ImageData)
	if err != nil || len(img) == 0 {
		return models.Submission{}, apperr.New(apperr.CodeBadRequest, "Invalid image data.")
	}
	return models.Submission{
		Name:                       req.Name,
		Phone:                      req.Phone,
		Image:                      img,
		MIMEType:                   util.PickMIME("", hint, img),
		GenderHint:                 req.Gender,
		ThumbMiddleKnuckleFlexible: req.Q4Answer == "yes",
		ThumbBaseFlexible:          req.Q5Answer == "yes",
	}, nil
}

func (h *Handle) Analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	log := h.logger(r)

	var req AnalyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("analyze: bad request body", zap.Error(err))
		writeError(w, err, analyzeFailedMessage)
		return
	}
	sub, err := req.submission()
	if err != nil {
		log.Warn("analyze: bad image", zap.Error(err))
		writeError(w, err, analyzeFailedMessage)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	res, err := h.readings.Handle(ctx, sub)
	if err != nil {
		if apperr.IsRejection(err) {
			log.Info("analyze: rejected", zap.String("code", string(apperr.CodeOf(err))), zap.Error(err))
		} else {
			log.Error("analyze: failed", zap.String("code", string(apperr.CodeOf(err))), zap.Error(err))
		}
		writeError(w, err, analyzeFailedMessage)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
