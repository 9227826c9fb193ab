package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Hand is the palm orientation reported by the validation stage.
type Hand string

const (
	HandLeft    Hand = "left"
	HandRight   Hand = "right"
	HandUnknown Hand = "unknown"
)

// MaleHint is the only gender value that requires the right palm.
const MaleHint = "male"

// RequiredHand maps the submission's gender hint to the palm that must be photographed.
func RequiredHand(genderHint string) Hand {
	if genderHint == MaleHint {
		return HandRight
	}
	return HandLeft
}

// Submission is one analyze request after decoding.
type Submission struct {
	Name                       string
	Phone                      string
	Image                      []byte
	MIMEType                   string
	GenderHint                 string
	ThumbMiddleKnuckleFlexible bool
	ThumbBaseFlexible          bool
}

// Verdict is the validation stage's answer.
type Verdict struct {
	IsPalm   string `json:"is_palm"`
	HandType Hand   `json:"hand_type"`
}

// UnmarshalJSON accepts any JSON value in either field. A string keeps its
// value; anything else keeps its raw JSON text, so `true` is never "yes" and
// `0` is never a known hand.
func (v *Verdict) UnmarshalJSON(b []byte) error {
	var raw struct {
		IsPalm   json.RawMessage `json:"is_palm"`
		HandType json.RawMessage `json:"hand_type"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	v.IsPalm = verdictField(raw.IsPalm)
	v.HandType = Hand(verdictField(raw.HandType))
	return nil
}

func verdictField(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}

// ReadingID is assigned by the store. It decodes from a JSON number or a quoted number.
type ReadingID int64

func (id ReadingID) String() string { return strconv.FormatInt(int64(id), 10) }

func (id *ReadingID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return fmt.Errorf("readingId is null")
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		v, err := n.Int64()
		if err != nil {
			return fmt.Errorf("readingId %q: %w", n, err)
		}
		*id = ReadingID(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("readingId: %w", err)
	}
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return fmt.Errorf("readingId %q: %w", s, err)
	}
	*id = ReadingID(v)
	return nil
}

// NewReading is what the pipeline persists.
type NewReading struct {
	Name  string
	Phone string
	Text  string
}

// Reading is a persisted row.
type Reading struct {
	ID    ReadingID
	Name  string
	Phone string
	Email string
	Text  string
}

// AnalyzeResult is returned to the client after a successful reading.
type AnalyzeResult struct {
	Reading   string    `json:"reading"`
	ReadingID ReadingID `json:"readingId"`
}
