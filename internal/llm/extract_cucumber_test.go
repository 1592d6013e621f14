//go:build cucumber

package llm

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/projectmoneymatter/psle-science-tutor/internal/domain"
)

func TestExtractionScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "extraction",
		ScenarioInitializer: initializeExtractionScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{filepath.Join("testdata", "features", "extraction.feature")},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

func initializeExtractionScenario(ctx *godog.ScenarioContext) {
	state := &extractionState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*state = extractionState{}
		return ctx, nil
	})

	ctx.Step(`^the model responds with:$`, state.givenResponse)
	ctx.Step(`^the response is extracted$`, state.whenExtracted)
	ctx.Step(`^extraction succeeds$`, state.thenSucceeds)
	ctx.Step(`^extraction fails$`, state.thenFails)
	ctx.Step(`^the record field "([^"]+)" is "([^"]*)"$`, state.thenField)
	ctx.Step(`^the raw excerpt is "([^"]*)"$`, state.thenRawIs)
	ctx.Step(`^the raw excerpt starts with "([^"]*)"$`, state.thenRawStartsWith)
}

type extractionState struct {
	raw string
	rec domain.Record
	err error
}

func (s *extractionState) givenResponse(doc *godog.DocString) error {
	s.raw = doc.Content
	return nil
}

func (s *extractionState) whenExtracted() error {
	s.rec, s.err = Extract(s.raw)
	return nil
}

func (s *extractionState) thenSucceeds() error {
	if s.err != nil {
		return fmt.Errorf("expected success, got %v", s.err)
	}
	return nil
}

func (s *extractionState) thenFails() error {
	if s.err == nil {
		return fmt.Errorf("expected failure, got record %v", s.rec)
	}
	return nil
}

func (s *extractionState) thenField(key, want string) error {
	if got := s.rec.String(key, ""); got != want {
		return fmt.Errorf("field %q: got %q, want %q", key, got, want)
	}
	return nil
}

func (s *extractionState) excerpt() (string, error) {
	var extErr *domain.ExtractionError
	if !errors.As(s.err, &extErr) {
		return "", fmt.Errorf("expected *domain.ExtractionError, got %T", s.err)
	}
	return extErr.Raw, nil
}

func (s *extractionState) thenRawIs(want string) error {
	raw, err := s.excerpt()
	if err != nil {
		return err
	}
	if raw != want {
		return fmt.Errorf("raw excerpt: got %q, want %q", raw, want)
	}
	return nil
}

func (s *extractionState) thenRawStartsWith(prefix string) error {
	raw, err := s.excerpt()
	if err != nil {
		return err
	}
	if !strings.HasPrefix(raw, prefix) {
		return fmt.Errorf("raw excerpt %q does not start with %q", raw, prefix)
	}
	return nil
}
