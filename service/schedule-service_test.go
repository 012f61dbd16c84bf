package service

import (
	"context"
	"errors"
	"testing"

	"sportsfest/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompletionClient struct {
	response string
	err      error
}

func (s *stubCompletionClient) Complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	return s.response, s.err
}

func newStubbedScheduleService(t *testing.T, response string, err error) (*ScheduleService, *repository.SettingRepository) {
	t.Helper()
	db := newTestDB(t)
	service := NewScheduleService(db)
	service.newClient = func(apiKey string) completionClient {
		return &stubCompletionClient{response: response, err: err}
	}
	settingRepository := repository.NewSettingRepository(db)
	require.NoError(t, settingRepository.SetSetting(repository.SettingOpenAIAPIKey, "sk-test"))
	return service, settingRepository
}

const wellFormedScheduleResponse = "Here is your schedule:\n```json\n" +
	`{"format": "knockout", "rounds": [{"name": "Final", "matches": [{"team1": "Thunderbolts", "team2": "Falcons"}]}]}` +
	"\n```"

func TestGenerateScheduleStoresValidPayload(t *testing.T) {
	service, _ := newStubbedScheduleService(t, wellFormedScheduleResponse, nil)

	schedule, err := service.GenerateSchedule(context.Background(), "Cricket", "boys",
		[]string{"Thunderbolts", "Falcons"}, "single knockout", "admin")
	require.NoError(t, err)

	assert.Equal(t, repository.ValidationStatusValid, schedule.ValidationStatus)
	assert.Equal(t, "admin", schedule.GeneratedBy)
	assert.JSONEq(t,
		`{"format": "knockout", "rounds": [{"name": "Final", "matches": [{"team1": "Thunderbolts", "team2": "Falcons"}]}]}`,
		schedule.Payload)
}

func TestGenerateScheduleKeepsUnexpectedJSONAsUnvalidated(t *testing.T) {
	service, _ := newStubbedScheduleService(t,
		`{"tournament": "Cricket", "fixtures": ["A vs B"]}`, nil)

	schedule, err := service.GenerateSchedule(context.Background(), "Cricket", "boys",
		[]string{"A", "B"}, "", "admin")
	require.NoError(t, err)
	assert.Equal(t, repository.ValidationStatusUnvalidatedJson, schedule.ValidationStatus)
}

func TestGenerateScheduleUpsertsPerGameAndGender(t *testing.T) {
	service, _ := newStubbedScheduleService(t, wellFormedScheduleResponse, nil)

	first, err := service.GenerateSchedule(context.Background(), "Cricket", "boys",
		[]string{"A", "B"}, "", "admin")
	require.NoError(t, err)
	second, err := service.GenerateSchedule(context.Background(), "Cricket", "boys",
		[]string{"A", "B", "C"}, "", "admin")
	require.NoError(t, err)
	assert.Equal(t, first.Id, second.Id)

	schedules, err := service.GetSchedules()
	require.NoError(t, err)
	assert.Len(t, schedules, 1)
}

func TestGenerateScheduleErrors(t *testing.T) {
	service, settingRepository := newStubbedScheduleService(t, "no json here at all", nil)

	_, err := service.GenerateSchedule(context.Background(), "Cricket", "boys",
		[]string{"OnlyTeam"}, "", "admin")
	assert.ErrorContains(t, err, "two teams")

	_, err = service.GenerateSchedule(context.Background(), "Cricket", "boys",
		[]string{"A", "B"}, "", "admin")
	assert.ErrorContains(t, err, "Could not parse")

	service.newClient = func(apiKey string) completionClient {
		return &stubCompletionClient{err: errors.New("rate limited")}
	}
	_, err = service.GenerateSchedule(context.Background(), "Cricket", "boys",
		[]string{"A", "B"}, "", "admin")
	assert.ErrorContains(t, err, "rate limited")

	require.NoError(t, settingRepository.SetSetting(repository.SettingOpenAIAPIKey, ""))
	_, err = service.GenerateSchedule(context.Background(), "Cricket", "boys",
		[]string{"A", "B"}, "", "admin")
	assert.ErrorContains(t, err, "not configured")
}

func TestExtractJSONObject(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected string
		ok       bool
	}{
		{
			name:     "bare object",
			text:     `{"a": 1}`,
			expected: `{"a": 1}`,
			ok:       true,
		},
		{
			name:     "fenced and wrapped in prose",
			text:     "Sure!\n```json\n{\"a\": 1}\n```\nLet me know.",
			expected: `{"a": 1}`,
			ok:       true,
		},
		{
			name:     "nested objects",
			text:     `prefix {"a": {"b": {"c": 1}}} suffix`,
			expected: `{"a": {"b": {"c": 1}}}`,
			ok:       true,
		},
		{
			name:     "braces inside strings",
			text:     `{"a": "curly } brace { inside"}`,
			expected: `{"a": "curly } brace { inside"}`,
			ok:       true,
		},
		{
			name: "no object",
			text: "plain prose only",
			ok:   false,
		},
		{
			name: "unbalanced",
			text: `{"a": 1`,
			ok:   false,
		},
		{
			name: "balanced but invalid",
			text: `{a: 1}`,
			ok:   false,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			payload, ok := extractJSONObject(testCase.text)
			assert.Equal(t, testCase.ok, ok)
			if testCase.ok {
				assert.Equal(t, testCase.expected, payload)
			}
		})
	}
}
