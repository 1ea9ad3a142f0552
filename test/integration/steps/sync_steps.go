package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cucumber/godog"
)

// registerSyncSteps registers the offline-first domain steps: session,
// connectivity and queue state.
func registerSyncSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the daemon is online$`, theDaemonIsOnline)
	ctx.Step(`^the daemon is offline$`, theDaemonIsOffline)
	ctx.Step(`^a registered user "([^"]*)" with password "([^"]*)"$`, aRegisteredUser)
	ctx.Step(`^I am signed in as "([^"]*)" with password "([^"]*)"$`, iAmSignedInAs)
	ctx.Step(`^I am not signed in$`, iAmNotSignedIn)
	ctx.Step(`^I refresh my session$`, iRefreshMySession)
	ctx.Step(`^I refresh my session with the previous token$`, iRefreshWithPreviousToken)
	ctx.Step(`^I set my access token aside$`, iSetMyAccessTokenAside)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with the set-aside token$`, iSendARequestWithSetAsideToken)
	ctx.Step(`^the offline queue should have (\d+) pending actions?$`, theOfflineQueueShouldHave)
	ctx.Step(`^the offline queue drains within (\d+) seconds?$`, theOfflineQueueDrainsWithin)
	ctx.Step(`^(\d+) password reset emails? should have been sent$`, passwordResetEmailsSent)
}

func theDaemonIsOnline(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.monitor.SetOnline(true)
	return nil
}

func theDaemonIsOffline(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.monitor.SetOnline(false)
	return nil
}

// aRegisteredUser creates an account through the API, then signs the
// device back out so the scenario starts anonymous.
func aRegisteredUser(ctx context.Context, email, password string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	payload := map[string]string{
		"email":    email,
		"name":     "Test User",
		"password": password,
	}
	body, _ := json.Marshal(payload)
	if err := tc.doRequest("POST", "/api/v1/auth/register", bytes.NewReader(body)); err != nil {
		return ctx, err
	}
	if tc.response.StatusCode != 201 {
		return ctx, fmt.Errorf("registration failed with status %d: %s", tc.response.StatusCode, string(tc.responseBody))
	}

	var resp struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(tc.responseBody, &resp); err != nil {
		return ctx, fmt.Errorf("failed to parse registration response: %w", err)
	}

	logout, _ := json.Marshal(map[string]string{"refresh_token": resp.RefreshToken})
	if err := tc.doRequest("POST", "/api/v1/auth/logout", bytes.NewReader(logout)); err != nil {
		return ctx, err
	}

	return SetTestContext(ctx, tc), nil
}

func iAmSignedInAs(ctx context.Context, email, password string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	payload := map[string]any{
		"email":    email,
		"password": password,
	}
	body, _ := json.Marshal(payload)
	if err := tc.doRequest("POST", "/api/v1/auth/login", bytes.NewReader(body)); err != nil {
		return ctx, err
	}
	if tc.response.StatusCode != 200 {
		return ctx, fmt.Errorf("login failed with status %d: %s", tc.response.StatusCode, string(tc.responseBody))
	}

	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(tc.responseBody, &resp); err != nil {
		return ctx, fmt.Errorf("failed to parse login response: %w", err)
	}
	tc.accessToken = resp.AccessToken
	tc.refreshToken = resp.RefreshToken

	return SetTestContext(ctx, tc), nil
}

func iRefreshMySession(ctx context.Context) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	body, _ := json.Marshal(map[string]string{"refresh_token": tc.refreshToken})
	if err := tc.doRequest("POST", "/api/v1/auth/refresh", bytes.NewReader(body)); err != nil {
		return ctx, err
	}

	if tc.response.StatusCode == 200 {
		var resp struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		}
		if err := json.Unmarshal(tc.responseBody, &resp); err != nil {
			return ctx, fmt.Errorf("failed to parse refresh response: %w", err)
		}
		tc.prevRefreshToken = tc.refreshToken
		tc.accessToken = resp.AccessToken
		tc.refreshToken = resp.RefreshToken
	}

	return SetTestContext(ctx, tc), nil
}

func iRefreshWithPreviousToken(ctx context.Context) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	body, _ := json.Marshal(map[string]string{"refresh_token": tc.prevRefreshToken})
	if err := tc.doRequest("POST", "/api/v1/auth/refresh", bytes.NewReader(body)); err != nil {
		return ctx, err
	}
	return SetTestContext(ctx, tc), nil
}

func iSetMyAccessTokenAside(ctx context.Context) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	tc.asideAccessToken = tc.accessToken
	return SetTestContext(ctx, tc), nil
}

func iSendARequestWithSetAsideToken(ctx context.Context, method, endpoint string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	current := tc.accessToken
	tc.accessToken = tc.asideAccessToken
	err := tc.doRequest(method, endpoint, nil)
	tc.accessToken = current
	if err != nil {
		return ctx, err
	}
	return SetTestContext(ctx, tc), nil
}

func iAmNotSignedIn(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.accessToken = ""
	tc.refreshToken = ""
	tc.session.SignOut()
	return nil
}

func theOfflineQueueShouldHave(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	size, err := tc.queue.Size(context.Background())
	if err != nil {
		return fmt.Errorf("failed to read queue size: %w", err)
	}
	if size != expected {
		return fmt.Errorf("expected %d pending actions, got %d", expected, size)
	}
	return nil
}

// theOfflineQueueDrainsWithin polls the queue until it is empty. Replay
// runs in the background after sign-in and reconnect, so assertions on
// its outcome have to wait for it.
func theOfflineQueueDrainsWithin(ctx context.Context, seconds int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	deadline := time.Now().Add(time.Duration(seconds) * time.Second)
	for time.Now().Before(deadline) {
		size, err := tc.queue.Size(context.Background())
		if err != nil {
			return fmt.Errorf("failed to read queue size: %w", err)
		}
		if size == 0 {
			return nil
		}
		time.Sleep(50 * time.Millisecond)
	}

	size, _ := tc.queue.Size(context.Background())
	return fmt.Errorf("queue did not drain, %d actions still pending", size)
}

func passwordResetEmailsSent(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if got := len(tc.emailSender.SentEmails); got != expected {
		return fmt.Errorf("expected %d sent emails, got %d", expected, got)
	}
	return nil
}
