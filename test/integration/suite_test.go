//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/cucumber/godog"
)

// testContext holds state shared across step definitions within a scenario.
type testContext struct {
	harness      *harness
	status       int
	responseBody []byte
}

// reset tears down the scenario's harness.
func (tc *testContext) reset() {
	if tc.harness != nil {
		tc.harness.Close()
	}

	tc.harness = nil
	tc.status = 0
	tc.responseBody = nil
}

// InitializeScenario registers step definitions for each scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &testContext{}

	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		tc.reset()
		return ctx, err
	})

	ctx.Step(`^the service is running$`, func() error { return tc.theServiceIsRunningOn("desktop") })
	ctx.Step(`^the service is running on "([^"]*)"$`, tc.theServiceIsRunningOn)
	ctx.Step(`^I am signed in as "([^"]*)" with password "([^"]*)"$`, tc.iAmSignedInAs)
	ctx.Step(`^the backend requires email verification$`, tc.theBackendRequiresEmailVerification)
	ctx.Step(`^the backend rejects favorite writes$`, tc.theBackendRejectsFavoriteWrites)
	ctx.Step(`^I request (GET|POST|PUT|DELETE) "([^"]*)"$`, tc.iRequest)
	ctx.Step(`^I send (POST|PUT|DELETE) "([^"]*)" with body:$`, tc.iSendWithBody)
	ctx.Step(`^I wait for the search to settle$`, tc.iWaitForTheSearchToSettle)
	ctx.Step(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, tc.theResponseShouldContain)
	ctx.Step(`^the response should not contain "([^"]*)"$`, tc.theResponseShouldNotContain)
	ctx.Step(`^the response field "([^"]*)" should be (true|false)$`, tc.theResponseFieldShouldBe)
	ctx.Step(`^the backend should store favorites "([^"]*)" for "([^"]*)"$`, tc.theBackendShouldStoreFavorites)
}

func (tc *testContext) theServiceIsRunningOn(platform string) error {
	h, err := startHarness(platform)
	if err != nil {
		return err
	}

	tc.harness = h

	status, _, err := h.call(http.MethodGet, "/-/live", nil)
	if err != nil {
		return fmt.Errorf("service is not running: %w", err)
	}

	if status != http.StatusOK {
		return fmt.Errorf("service health check failed with status %d", status)
	}

	return nil
}

func (tc *testContext) iAmSignedInAs(email, password string) error {
	return tc.harness.signIn(email, password)
}

func (tc *testContext) theBackendRequiresEmailVerification() error {
	tc.harness.backend.confirmEmail.Store(true)
	return nil
}

func (tc *testContext) theBackendRejectsFavoriteWrites() error {
	tc.harness.backend.failFavorites.Store(true)
	return nil
}

func (tc *testContext) iRequest(method, path string) error {
	var err error

	tc.status, tc.responseBody, err = tc.harness.call(method, path, nil)

	return err
}

func (tc *testContext) iSendWithBody(method, path string, body *godog.DocString) error {
	var err error

	tc.status, tc.responseBody, err = tc.harness.callRaw(method, path, strings.NewReader(body.Content))

	return err
}

func (tc *testContext) iWaitForTheSearchToSettle() error {
	tc.harness.runtime.Core.Search.Settle()
	return nil
}

func (tc *testContext) theResponseStatusShouldBe(expectedCode int) error {
	if tc.status == 0 {
		return errors.New("no response received")
	}

	if tc.status != expectedCode {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedCode, tc.status, tc.responseBody)
	}

	return nil
}

func (tc *testContext) theResponseShouldContain(text string) error {
	if !strings.Contains(string(tc.responseBody), text) {
		return fmt.Errorf("response body does not contain %q.\nBody: %s", text, tc.responseBody)
	}

	return nil
}

func (tc *testContext) theResponseShouldNotContain(text string) error {
	if strings.Contains(string(tc.responseBody), text) {
		return fmt.Errorf("response body contains %q.\nBody: %s", text, tc.responseBody)
	}

	return nil
}

func (tc *testContext) theResponseFieldShouldBe(field, want string) error {
	var body map[string]any
	if err := json.Unmarshal(tc.responseBody, &body); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	if got := fmt.Sprint(body[field]); got != want {
		return fmt.Errorf("expected %s to be %s, got %s", field, want, got)
	}

	return nil
}

func (tc *testContext) theBackendShouldStoreFavorites(ids, email string) error {
	got := strings.Join(tc.harness.backend.FavoriteIDs(email), ",")
	if got != ids {
		return fmt.Errorf("expected stored favorites %q, got %q", ids, got)
	}

	return nil
}

// TestFeatures runs the GoDog BDD test suite.
func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
