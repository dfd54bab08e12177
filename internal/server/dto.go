package server

import (
	"github.com/abhisek/practicekit/internal/paper"
	"github.com/abhisek/practicekit/internal/question"
)

type gradeQuery struct {
	Grade string `query:"grade" json:"grade" validate:"required"`
}

type generateQuery struct {
	Grade    string `query:"grade" json:"grade" validate:"required"`
	Category string `query:"category" json:"category"`
	Count    int    `query:"count" json:"count"`
	Source   string `query:"source" json:"source" validate:"omitempty,oneof=local ai"`
}

// CheckRequest checks either a raw answer against a canonical string or a
// response against a full question.
type CheckRequest struct {
	Answer    string `json:"answer"`
	Canonical string `json:"canonical" validate:"required_without=Question"`
	Variant   string `json:"variant" validate:"omitempty,oneof=default fraction coordinate table"`

	Question *question.Question `json:"question"`
	Response *question.Response `json:"response"`
}

// RecordAnswerRequest is an answer made in a client-side session.
type RecordAnswerRequest struct {
	Index    int                `json:"index" validate:"gte=0"`
	Grade    string             `json:"grade" validate:"required"`
	Topic    string             `json:"topic"`
	Question *question.Question `json:"question" validate:"required"`
	Response question.Response  `json:"response"`
	TimeMs   int64              `json:"time_ms" validate:"gte=0"`
}

type VersionInfo struct {
	Version string `json:"version"`
}

type GradeInfo struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Topics int    `json:"topics"`
}

// GenerateMeta describes how a generate request was served.
type GenerateMeta struct {
	Grade    string `json:"grade"`
	Category string `json:"category,omitempty"`
	Topic    string `json:"topic,omitempty"`
	Count    int    `json:"count"`
	Source   string `json:"source"`

	// Fallback is set when the category matched no topic and the
	// registry's last resort was used.
	Fallback bool `json:"fallback,omitempty"`

	// LocalFallbacks counts AI failures replaced by local questions.
	LocalFallbacks int `json:"local_fallbacks,omitempty"`
}

type PaperInfo struct {
	Name          string `json:"name"`
	Title         string `json:"title"`
	Grade         string `json:"grade"`
	TimeLimitSecs int    `json:"time_limit_secs,omitempty"`
	Questions     int    `json:"questions"`
}

type PaperView struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Title         string               `json:"title"`
	Grade         string               `json:"grade"`
	TimeLimitSecs int                  `json:"time_limit_secs,omitempty"`
	Questions     []*question.Question `json:"questions"`
	Unmatched     []string             `json:"unmatched,omitempty"`
}

func paperInfo(bp paper.Blueprint) PaperInfo {
	return PaperInfo{
		Name:          bp.Name,
		Title:         bp.Title,
		Grade:         bp.Grade,
		TimeLimitSecs: int(bp.TimeLimit.Seconds()),
		Questions:     len(bp.Expand()),
	}
}

func paperView(p *paper.Paper) PaperView {
	return PaperView{
		ID:            p.ID,
		Name:          p.Name,
		Title:         p.Title,
		Grade:         p.Grade,
		TimeLimitSecs: int(p.TimeLimit.Seconds()),
		Questions:     p.Questions,
		Unmatched:     p.Unmatched,
	}
}
