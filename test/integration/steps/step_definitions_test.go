//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
	"github.com/expense-tracker/backend/internal/infra/db"
	"github.com/expense-tracker/backend/internal/infra/dependency"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
	"github.com/expense-tracker/backend/test/integration/mock"
)

const defaultPassword = "password123"

var tags string

func init() {
	flag.StringVar(&tags, "scenarios", "", "tags to run")
}

func TestFeatures(t *testing.T) {
	flag.Parse()

	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:      "pretty",
			Paths:       []string{"../features"},
			Tags:        tags,
			Concurrency: 1,
			Strict:      true,
			TestingT:    t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

// environment is shared by every scenario; it is built once.
type environment struct {
	db       *mock.Db
	redis    *mock.Redis
	timeMock *mock.Time
	emailAPI *mock.ApiMock
	injector *dependency.Injector
	server   *httptest.Server
}

var (
	envOnce sync.Once
	env     *environment
)

func setupEnvironment() {
	envOnce.Do(func() {
		gin.SetMode(gin.TestMode)

		e := &environment{
			db:       mock.NewDb(model.AllModels()...),
			redis:    mock.NewRedis(),
			timeMock: mock.NewTime(),
			emailAPI: mock.NewApiServer(),
		}
		e.emailAPI.Start()

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.Server.CORSOrigins = nil
		cfg.Server.BcryptCost = bcrypt.MinCost
		cfg.Server.LoginRateLimit = 1000
		cfg.JWT.Secret = "test-jwt-secret-key-for-testing-purposes"
		cfg.Email.ResendAPIKey = "re_test_key"
		cfg.Email.ResendBaseURL = e.emailAPI.GetUrl()
		cfg.AI.GeminiAPIKey = ""

		injector, err := dependency.NewInjector(cfg,
			db.NewDatabase(e.db.DbConn, config.DriverSQLite),
			e.redis.Client,
			dependency.WithClock(e.timeMock),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to build injector: %s", err))
		}
		e.injector = injector
		e.server = httptest.NewServer(injector.Router.Setup(cfg.Server))

		env = e
	})
}

type testContext struct {
	client       *http.Client
	headers      map[string]string
	response     *response
	vars         map[string]string
	accessToken  string
	refreshToken string
}

type response struct {
	status int
	body   any
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	setupEnvironment()

	test := &testContext{client: &http.Client{Timeout: 10 * time.Second}}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^today is "([^"]*)"$`, test.todayIs)

	// User setup steps
	ctx.Given(`^a user exists with email "([^"]*)"$`, test.aUserExistsWithEmail)
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^"([^"]*)" has budget alerts disabled$`, test.hasBudgetAlertsDisabled)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)
	ctx.Given(`^I clear the access token$`, test.iClearTheAccessToken)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I save the response field "([^"]*)" as "([^"]*)"$`, test.iSaveTheResponseFieldAs)

	// Background jobs
	ctx.When(`^the scheduler runs$`, test.theSchedulerRuns)
	ctx.When(`^the email worker runs$`, test.theEmailWorkerRuns)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)

	// Email API assertion steps
	ctx.Then(`^the email API should have received (\d+) requests?$`, test.theEmailAPIShouldHaveReceivedRequests)
	ctx.Then(`^the email API request (\d+) field "([^"]*)" should contain "([^"]*)"$`, test.theEmailAPIRequestFieldShouldContain)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.vars = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.refreshToken = ""

	env.timeMock.Reset()
	env.emailAPI.Reset()
	env.emailAPI.SetResponse(http.MethodPost, "/emails", http.StatusOK, map[string]any{"id": "email_test"})

	if err := env.redis.Clear(); err != nil {
		return err
	}
	return env.db.ClearDB()
}

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(env.server.URL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

func (t *testContext) todayIs(date string) error {
	d, err := valueobject.ParseDate(date)
	if err != nil {
		return err
	}
	env.timeMock.SetCurrentTime(d.Time().Add(12 * time.Hour))
	return nil
}

func (t *testContext) aUserExistsWithEmail(email string) error {
	return t.createUser(email, defaultPassword)
}

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	return t.createUser(email, password)
}

func (t *testContext) createUser(email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	name, _, _ := strings.Cut(email, "@")
	user := entity.NewUser(strings.ToLower(email), name, string(hash), env.timeMock.Now())
	return env.injector.Repositories.Users.Create(context.Background(), user)
}

func (t *testContext) iAmLoggedInAs(email string) error {
	_, err := env.injector.Repositories.Users.FindByEmail(context.Background(), strings.ToLower(email))
	if errors.Is(err, domainerror.ErrUserNotFound) {
		err = t.createUser(email, defaultPassword)
	}
	if err != nil {
		return err
	}

	t.accessToken = ""
	payload, _ := json.Marshal(map[string]string{"email": email, "password": defaultPassword})
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/login", payload); err != nil {
		return err
	}
	if t.response.status != http.StatusOK {
		return fmt.Errorf("login failed with %d: %v", t.response.status, t.response.body)
	}

	body, _ := t.response.body.(map[string]any)
	t.accessToken, _ = body["access_token"].(string)
	t.refreshToken, _ = body["refresh_token"].(string)
	t.vars["user_id"], _ = getFieldValue(body, "user.id").(string)
	return nil
}

func (t *testContext) hasBudgetAlertsDisabled(email string) error {
	ctx := context.Background()
	user, err := env.injector.Repositories.Users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return err
	}
	user.BudgetAlerts = false
	return env.injector.Repositories.Users.Update(ctx, user)
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = t.replacePlaceholders(value)
	return nil
}

func (t *testContext) iClearTheAccessToken() error {
	t.accessToken = ""
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) iSaveTheResponseFieldAs(field, name string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	t.vars[name] = fmt.Sprintf("%v", value)
	return nil
}

// replacePlaceholders substitutes {{name}} with saved values and the current tokens.
func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	for name, value := range t.vars {
		content = strings.ReplaceAll(content, "{{"+name+"}}", value)
	}
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, env.server.URL+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}
	var parsed any
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = parsed
	}
	return nil
}

func (t *testContext) theSchedulerRuns() error {
	_, err := env.injector.Scheduler.RunOnce(context.Background())
	return err
}

func (t *testContext) theEmailWorkerRuns() error {
	env.injector.EmailWorker.ProcessNow(context.Background())
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	switch t.response.body.(type) {
	case map[string]any, []any:
		return nil
	}
	return fmt.Errorf("response is not JSON: %v", t.response.body)
}

func (t *testContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}

	expectedValue = t.replacePlaceholders(expectedValue)
	if actual := fmt.Sprintf("%v", value); actual != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actual)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if getFieldValue(t.response.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	items, ok := getFieldValue(t.response.body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, t.response.body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	m, ok := env.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(m).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := env.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	if count := entitySlicePtr.Elem().Len(); count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) theEmailAPIShouldHaveReceivedRequests(count int) error {
	if got := len(env.emailAPI.Requests(http.MethodPost, "/emails")); got != count {
		return fmt.Errorf("expected %d email requests, got %d", count, got)
	}
	return nil
}

func (t *testContext) theEmailAPIRequestFieldShouldContain(index int, field, expected string) error {
	requests := env.emailAPI.Requests(http.MethodPost, "/emails")
	if index < 1 || index > len(requests) {
		return fmt.Errorf("email request %d not received (got %d)", index, len(requests))
	}
	value := fmt.Sprintf("%v", getFieldValue(requests[index-1].Body, field))
	if !strings.Contains(value, expected) {
		return fmt.Errorf("email request %d field '%s' = %q does not contain %q", index, field, value, expected)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	var field = object
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}
		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}
		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}
	return field
}
