package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/practicekit/internal/config"
	"github.com/abhisek/practicekit/internal/curriculum"
	"github.com/abhisek/practicekit/internal/generator"
	"github.com/abhisek/practicekit/internal/question"
	"github.com/abhisek/practicekit/internal/server"
)

func newClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	log, _ := test.NewNullLogger()
	return New(Options{BaseURL: baseURL, Rand: generator.NewSeeded(7), Log: log})
}

func remoteQuestion(t *testing.T) *question.Question {
	t.Helper()
	reg, err := curriculum.Registry("3", generator.NewSeeded(1))
	require.NoError(t, err)
	q, _, err := reg.Generate("Multiplication / Facts")
	require.NoError(t, err)
	q.Prompt = "remote: " + q.Prompt
	return q
}

func serve(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		switch b := body.(type) {
		case string:
			_, _ = w.Write([]byte(b))
		default:
			_ = json.NewEncoder(w).Encode(b)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func ok(data any) map[string]any {
	return map[string]any{"success": true, "message": "ok", "data": data}
}

func TestGenerateRemote(t *testing.T) {
	var gotQuery string
	rq := remoteQuestion(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/practice/generate", r.URL.Path)
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(ok([]*question.Question{rq}))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL)
	batch, err := c.Generate(context.Background(), Request{Grade: "3", Category: "Multiplication", Count: 1, AI: true})
	require.NoError(t, err)

	assert.Equal(t, SourceRemote, batch.Source)
	assert.NoError(t, batch.Fallback)
	require.Len(t, batch.Questions, 1)
	assert.Equal(t, rq.Prompt, batch.Questions[0].Prompt)
	assert.Equal(t, rq.Answer.String(), batch.Questions[0].Answer.String())
	assert.Contains(t, gotQuery, "grade=3")
	assert.Contains(t, gotQuery, "category=Multiplication")
	assert.Contains(t, gotQuery, "source=ai")
}

func TestGenerateFallsBack(t *testing.T) {
	invalid := &question.Question{Type: question.TypeFreeText, Variant: question.VariantDefault, Topic: "x", Answer: question.Integer(1)}
	twoCorrect := &question.Question{
		Type:    question.TypeMultipleChoice,
		Variant: question.VariantDefault,
		Prompt:  "What is half of 1?",
		Topic:   "x",
		Answer:  question.Number(0.5),
		Options: []question.Option{{Value: "0.5", Label: "0.5"}, {Value: "0.51", Label: "0.51"}, {Value: "0.9", Label: "0.9"}},
	}

	tests := []struct {
		name   string
		status int
		body   any
	}{
		{"server error", http.StatusInternalServerError, map[string]any{"success": false, "message": "boom"}},
		{"not found", http.StatusNotFound, "not json"},
		{"undecodable body", http.StatusOK, "{nope"},
		{"unsuccessful envelope", http.StatusOK, map[string]any{"success": false, "message": "no"}},
		{"wrong data shape", http.StatusOK, ok("hello")},
		{"empty list", http.StatusOK, ok([]any{})},
		{"invalid question", http.StatusOK, ok([]*question.Question{invalid})},
		{"null question", http.StatusOK, ok([]any{nil})},
		{"two correct options", http.StatusOK, ok([]*question.Question{twoCorrect})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.status, tt.body)
			c := newClient(t, srv.URL)

			batch, err := c.Generate(context.Background(), Request{Grade: "3", Category: "Multiplication / Facts", Count: 3})
			require.NoError(t, err)
			assert.Equal(t, SourceLocal, batch.Source)
			assert.Error(t, batch.Fallback)
			require.Len(t, batch.Questions, 3)
			for _, q := range batch.Questions {
				assert.Equal(t, "Multiplication / Facts", q.Topic)
				assert.NoError(t, question.Validate(q))
			}
		})
	}
}

func TestGenerateStatusError(t *testing.T) {
	srv := serve(t, http.StatusBadRequest, map[string]any{"success": false, "message": "Failed to generate questions"})
	c := newClient(t, srv.URL)

	batch, err := c.Generate(context.Background(), Request{Grade: "2", Count: 1})
	require.NoError(t, err)

	var se *StatusError
	require.ErrorAs(t, batch.Fallback, &se)
	assert.Equal(t, http.StatusBadRequest, se.Code)
	assert.Equal(t, "Failed to generate questions", se.Message)
}

func TestGenerateTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := newClient(t, url)
	batch, err := c.Generate(context.Background(), Request{Grade: "1", Count: 2})
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, batch.Source)
	assert.Error(t, batch.Fallback)
	assert.Len(t, batch.Questions, 2)
}

func TestGenerateLocalOnly(t *testing.T) {
	c := newClient(t, "")
	batch, err := c.Generate(context.Background(), Request{Grade: "sat", Count: 0})
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, batch.Source)
	assert.NoError(t, batch.Fallback)
	assert.Len(t, batch.Questions, 1)
}

func TestGenerateUnknownGrade(t *testing.T) {
	srv := serve(t, http.StatusBadRequest, map[string]any{"success": false})
	c := newClient(t, srv.URL)

	_, err := c.Generate(context.Background(), Request{Grade: "12", Count: 1})
	assert.Error(t, err)
}

func TestAgainstServer(t *testing.T) {
	log, _ := test.NewNullLogger()
	s, err := server.New(server.Options{
		Config:  config.ServerConfig{Addr: ":0", MaxCount: 10},
		Log:     log,
		Rand:    generator.NewSeeded(3),
		Version: "v1.4.0",
	})
	require.NoError(t, err)
	srv := httptest.NewServer(adaptor.FiberApp(s.App()))
	defer srv.Close()

	c := newClient(t, srv.URL)
	batch, err := c.Generate(context.Background(), Request{Grade: "4", Category: "Fractions", Count: 4})
	require.NoError(t, err)
	assert.Equal(t, SourceRemote, batch.Source)
	assert.Len(t, batch.Questions, 4)

	v, err := c.ServerVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1.4.0", v)

	assert.NoError(t, c.CheckServer(context.Background(), "1.9.2"))

	var inc *ErrIncompatible
	assert.ErrorAs(t, c.CheckServer(context.Background(), "v2.0.0"), &inc)
}

func TestCompatible(t *testing.T) {
	tests := []struct {
		client, server string
		want           bool
	}{
		{"v1.2.3", "v1.0.0", true},
		{"1.2.3", "v1.9.0", true},
		{"v1.2.3", "v2.0.0", false},
		{"v0.3.0", "v1.0.0", false},
		{"dev", "v1.0.0", true},
		{"v1.0.0", "", true},
		{"v1.0.0-rc.1", "v1.2.0", true},
	}
	for _, tt := range tests {
		t.Run(tt.client+"_"+tt.server, func(t *testing.T) {
			assert.Equal(t, tt.want, Compatible(tt.client, tt.server))
		})
	}
}
