// Package client fetches practice questions from a practicekit server and
// falls back to the local generators when the server cannot serve them.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/practicekit/internal/answer"
	"github.com/abhisek/practicekit/internal/curriculum"
	"github.com/abhisek/practicekit/internal/generator"
	"github.com/abhisek/practicekit/internal/question"
)

// Source names where a batch of questions came from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

const defaultTimeout = 10 * time.Second

// maxBody caps how much of a response body is read.
const maxBody = 4 << 20

// Options configures a Client.
type Options struct {
	// BaseURL of the server, e.g. "http://localhost:8080". Empty means
	// local generation only.
	BaseURL string

	// Timeout bounds each HTTP request. Zero uses 10s.
	Timeout time.Duration

	// HTTPClient overrides the default client.
	HTTPClient *http.Client

	// Rand drives local generation. Nil uses generator.NewRand().
	Rand generator.Rand

	Log logrus.FieldLogger
}

// Client talks to the generate endpoint.
type Client struct {
	baseURL string
	http    *http.Client
	rand    generator.Rand
	log     logrus.FieldLogger
}

// New returns a Client.
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Rand == nil {
		opts.Rand = generator.NewRand()
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    opts.HTTPClient,
		rand:    opts.Rand,
		log:     opts.Log,
	}
}

// Request selects what to generate.
type Request struct {
	Grade string

	// Category is resolved against the grade's topics. Empty mixes topics.
	Category string

	Count int

	// AI asks the server for LLM-generated questions.
	AI bool
}

// Batch is a set of generated questions.
type Batch struct {
	Questions []*question.Question
	Source    Source

	// Fallback is why the server result was not used. Nil for remote
	// batches and when no server is configured.
	Fallback error
}

// Generate fetches questions from the server. On any failure to get a
// usable result it generates locally instead and records why in
// Batch.Fallback. An error is returned only when local generation also
// fails.
func (c *Client) Generate(ctx context.Context, req Request) (*Batch, error) {
	req.Count = max(req.Count, 1)

	var cause error
	if c.baseURL != "" {
		qs, err := c.fetch(ctx, req)
		if err == nil {
			return &Batch{Questions: qs, Source: SourceRemote}, nil
		}
		cause = err
		c.log.WithError(err).WithFields(logrus.Fields{
			"grade":    req.Grade,
			"category": req.Category,
		}).Warn("server generate failed; using local generators")
	}

	qs, err := c.local(req)
	if err != nil {
		if cause != nil {
			return nil, fmt.Errorf("%w (server: %v)", err, cause)
		}
		return nil, err
	}
	return &Batch{Questions: qs, Source: SourceLocal, Fallback: cause}, nil
}

func (c *Client) fetch(ctx context.Context, req Request) ([]*question.Question, error) {
	vals := url.Values{}
	vals.Set("grade", req.Grade)
	vals.Set("count", strconv.Itoa(req.Count))
	if req.Category != "" {
		vals.Set("category", req.Category)
	}
	if req.AI {
		vals.Set("source", "ai")
	}

	var qs []*question.Question
	if err := c.get(ctx, "/api/practice/generate?"+vals.Encode(), &qs); err != nil {
		return nil, err
	}
	if len(qs) == 0 {
		return nil, errors.New("server returned no questions")
	}
	for i, q := range qs {
		if q == nil {
			return nil, fmt.Errorf("question %d: missing", i)
		}
		if err := question.Validate(q); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		if q.Type == question.TypeMultipleChoice {
			if n := answer.CorrectOptions(q); n != 1 {
				return nil, fmt.Errorf("question %d: %d options grade as correct", i, n)
			}
		}
	}
	return qs, nil
}

func (c *Client) local(req Request) ([]*question.Question, error) {
	reg, err := curriculum.Registry(req.Grade, c.rand)
	if err != nil {
		return nil, err
	}
	out := make([]*question.Question, 0, req.Count)
	for range req.Count {
		category := req.Category
		if strings.TrimSpace(category) == "" {
			category = generator.Pick(c.rand, reg.Topics())
		}
		q, _, err := reg.Generate(category)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

// envelope mirrors the server's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// StatusError is a non-2xx reply from the server.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.Code)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Message)
}

// get issues a GET and decodes the envelope's data into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(body, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Code: resp.StatusCode}
		if decodeErr == nil {
			se.Message = env.Message
		}
		return se
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if !env.Success {
		return fmt.Errorf("server reported failure: %s", env.Message)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}
