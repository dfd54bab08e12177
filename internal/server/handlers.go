package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/practicekit/internal/aigen"
	"github.com/abhisek/practicekit/internal/answer"
	"github.com/abhisek/practicekit/internal/curriculum"
	"github.com/abhisek/practicekit/internal/generator"
	"github.com/abhisek/practicekit/internal/paper"
	"github.com/abhisek/practicekit/internal/question"
	"github.com/abhisek/practicekit/internal/registry"
	"github.com/abhisek/practicekit/internal/store"
)

const (
	msgOK              = "OK"
	msgGenerateSuccess = "Questions generated"
	msgGenerateFailed  = "Failed to generate questions"
	msgPaperFailed     = "Failed to assemble paper"
	msgPuzzleFailed    = "Failed to get puzzle"
	msgCheckFailed     = "Failed to check answer"
	msgRecordFailed    = "Failed to record answer"
	msgTopicsFailed    = "Failed to list topics"
)

// Sources for generated questions.
const (
	SourceLocal = "local"
	SourceAI    = "ai"
)

// GET /api/health
func (s *Server) health(c *fiber.Ctx) error {
	return NewSuccess(msgOK, fiber.Map{"status": "ok"}, nil).Send(c)
}

// GET /api/version
func (s *Server) versionInfo(c *fiber.Ctx) error {
	return NewSuccess(msgOK, VersionInfo{Version: s.version}, nil).Send(c)
}

// GET /api/grades
func (s *Server) grades(c *fiber.Ctx) error {
	grades := curriculum.Grades()
	out := make([]GradeInfo, len(grades))
	for i, g := range grades {
		out[i] = GradeInfo{ID: g.ID, Title: g.Title, Topics: len(g.Topics)}
	}
	return NewSuccess(msgOK, out, nil).Send(c)
}

// GET /api/topics?grade=3
func (s *Server) topics(c *fiber.Ctx) error {
	var q gradeQuery
	if err := s.validator.ParseQuery(c, &q); err != nil {
		return NewFailed(msgTopicsFailed, err, s.log).Send(c)
	}
	reg, err := s.registry(q.Grade)
	if err != nil {
		return NewFailed(msgTopicsFailed, err, s.log).Send(c)
	}
	return NewSuccess(msgOK, reg.Topics(), fiber.Map{"grade": reg.Grade()}).Send(c)
}

// GET /api/practice/generate?grade=3&category=Fractions&count=5&source=ai
func (s *Server) generate(c *fiber.Ctx) error {
	var q generateQuery
	if err := s.validator.ParseQuery(c, &q); err != nil {
		return NewFailed(msgGenerateFailed, err, s.log).Send(c)
	}
	reg, err := s.registry(q.Grade)
	if err != nil {
		return NewFailed(msgGenerateFailed, err, s.log).Send(c)
	}

	count := min(max(q.Count, 1), s.cfg.MaxCount)
	source := SourceLocal
	if q.Source == SourceAI && s.ai != nil {
		source = SourceAI
	}

	meta := GenerateMeta{Grade: reg.Grade(), Category: q.Category, Count: count, Source: source}
	questions := make([]*question.Question, 0, count)
	var prior []string
	for range count {
		category := q.Category
		if strings.TrimSpace(category) == "" {
			category = generator.Pick(s.rand, reg.Topics())
		}
		res, err := reg.Resolve(category)
		if err != nil {
			// Empty registry: an empty list, not an error.
			meta.Count = 0
			return NewSuccess(msgGenerateSuccess, questions, meta).Send(c)
		}
		if res.Match == registry.MatchFallback && q.Category != "" {
			meta.Fallback = true
		}

		var qn *question.Question
		if source == SourceAI {
			qn, err = s.ai.Generate(c.UserContext(), aigen.Input{Grade: reg.Grade(), Topic: res.Topic, Prior: prior})
			if err != nil {
				s.log.WithError(err).WithFields(logrus.Fields{
					"grade": reg.Grade(),
					"topic": res.Topic,
				}).Warn("AI generation failed; using local generator")
				meta.LocalFallbacks++
				qn = nil
			}
		}
		if qn == nil {
			qn, _, err = reg.Generate(res.Topic)
			if err != nil {
				return NewFailed(msgGenerateFailed, err, s.log).Send(c)
			}
		}
		prior = append(prior, qn.Prompt)
		questions = append(questions, qn)
	}
	if len(questions) > 0 {
		meta.Topic = questions[0].Topic
	}
	return NewSuccess(msgGenerateSuccess, questions, meta).Send(c)
}

// GET /api/papers
func (s *Server) papers(c *fiber.Ctx) error {
	list := s.library.List()
	out := make([]PaperInfo, len(list))
	for i, bp := range list {
		out[i] = paperInfo(bp)
	}
	return NewSuccess(msgOK, out, nil).Send(c)
}

// GET /api/papers/:name
func (s *Server) paper(c *fiber.Ctx) error {
	bp, ok := s.library.Get(c.Params("name"))
	if !ok {
		return NewFailed(msgPaperFailed, fiber.NewError(fiber.StatusNotFound, "unknown paper"), s.log).Send(c)
	}
	reg, err := s.registry(bp.Grade)
	if err != nil {
		return NewFailed(msgPaperFailed, err, s.log).Send(c)
	}
	p, err := bp.Assemble(reg)
	if err != nil {
		return NewFailed(msgPaperFailed, err, s.log).Send(c)
	}
	return NewSuccess(msgOK, paperView(p), nil).Send(c)
}

// GET /api/puzzle/today?grade=3
func (s *Server) puzzle(c *fiber.Ctx) error {
	var q gradeQuery
	if err := s.validator.ParseQuery(c, &q); err != nil {
		return NewFailed(msgPuzzleFailed, err, s.log).Send(c)
	}
	g, ok := curriculum.Lookup(q.Grade)
	if !ok {
		return NewFailed(msgPuzzleFailed, fiber.NewError(fiber.StatusBadRequest, "unknown grade"), s.log).Send(c)
	}
	now := s.now()
	qn, err := paper.PuzzleOfTheDay(g.ID, now)
	if err != nil {
		return NewFailed(msgPuzzleFailed, err, s.log).Send(c)
	}
	return NewSuccess(msgOK, qn, fiber.Map{"grade": g.ID, "date": now.Format("2006-01-02")}).Send(c)
}

// POST /api/answers/check
func (s *Server) check(c *fiber.Ctx) error {
	var req CheckRequest
	if err := s.validator.ParseAndValidate(c, &req); err != nil {
		return NewFailed(msgCheckFailed, err, s.log).Send(c)
	}

	if req.Question != nil {
		var r question.Response
		if req.Response != nil {
			r = *req.Response
		}
		return NewSuccess(msgOK, answer.Check(req.Question, r), nil).Send(c)
	}

	correct := answer.IsCorrect(req.Answer, req.Canonical, question.ParseVariant(req.Variant))
	return NewSuccess(msgOK, answer.Result{Correct: correct, Expected: req.Canonical}, nil).Send(c)
}

// POST /api/sessions/:id/answers
func (s *Server) recordAnswer(c *fiber.Ctx) error {
	if s.events == nil {
		return NewFailed(msgRecordFailed, fiber.NewError(fiber.StatusServiceUnavailable, "recording is disabled"), s.log).Send(c)
	}
	var req RecordAnswerRequest
	if err := s.validator.ParseAndValidate(c, &req); err != nil {
		return NewFailed(msgRecordFailed, err, s.log).Send(c)
	}

	topic := req.Topic
	if topic == "" {
		topic = req.Question.Topic
	}
	if topic == "" {
		return NewFailed(msgRecordFailed, &FieldsError{Fields: map[string]string{"topic": "topic is a required field"}}, s.log).Send(c)
	}

	res := answer.Check(req.Question, req.Response)
	err := s.events.AppendAnswerEvent(c.UserContext(), store.AnswerEventData{
		SessionID:     c.Params("id"),
		QuestionIndex: req.Index,
		Grade:         req.Grade,
		Topic:         topic,
		Variant:       string(req.Question.Variant),
		QuestionType:  string(req.Question.Type),
		QuestionText:  req.Question.Prompt,
		CorrectAnswer: res.Expected,
		LearnerAnswer: answer.ResponseText(req.Question, req.Response),
		Correct:       res.Correct,
		TimeMs:        req.TimeMs,
	})
	if err != nil {
		return NewFailed(msgRecordFailed, err, s.log).Send(c)
	}
	return NewSuccess(msgOK, res, nil).Send(c)
}
