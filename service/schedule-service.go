package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"sportsfest/app_error"
	"sportsfest/client"
	"sportsfest/metrics"
	"sportsfest/repository"

	"gorm.io/gorm"
)

const schedulerSystemPrompt = "You are a tournament scheduler. Respond with a single JSON object and nothing else. " +
	"The object must have the shape {\"format\": string, \"groups\": [{\"name\": string, \"teams\": [string]}] (optional), " +
	"\"rounds\": [{\"name\": string, \"matches\": [{\"team1\": string, \"team2\": string, \"time\": string (optional), \"venue\": string (optional)}]}]}."

// SchedulePayload is the shape the model is asked to produce. A response
// that decodes into it strictly is stored as valid; any other parseable
// JSON object is stored verbatim as unvalidated_json.
type SchedulePayload struct {
	Format string          `json:"format"`
	Groups []ScheduleGroup `json:"groups,omitempty"`
	Rounds []ScheduleRound `json:"rounds"`
}

type ScheduleGroup struct {
	Name  string   `json:"name"`
	Teams []string `json:"teams"`
}

type ScheduleRound struct {
	Name    string          `json:"name"`
	Matches []ScheduleMatch `json:"matches"`
}

type ScheduleMatch struct {
	Team1 string `json:"team1"`
	Team2 string `json:"team2"`
	Time  string `json:"time,omitempty"`
	Venue string `json:"venue,omitempty"`
}

type completionClient interface {
	Complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}

type ScheduleService struct {
	scheduleRepository *repository.ScheduleRepository
	settingRepository  *repository.SettingRepository
	newClient          func(apiKey string) completionClient
}

func NewScheduleService(db *gorm.DB) *ScheduleService {
	return &ScheduleService{
		scheduleRepository: repository.NewScheduleRepository(db),
		settingRepository:  repository.NewSettingRepository(db),
		newClient: func(apiKey string) completionClient {
			return client.NewAIClient(apiKey)
		},
	}
}

// GenerateSchedule delegates the actual scheduling to the external model:
// the prompt carries the roster and the caller's instructions, and whatever
// JSON object comes back is stored as the current schedule for the pair.
func (s *ScheduleService) GenerateSchedule(ctx context.Context, game string, gender string, teams []string, instructions string, actor string) (*repository.MatchSchedule, error) {
	if len(teams) < 2 {
		return nil, app_error.New(400, "At least two teams are required")
	}
	apiKey, err := s.settingRepository.GetSetting(repository.SettingOpenAIAPIKey)
	if err != nil {
		return nil, err
	}
	if apiKey == "" {
		return nil, app_error.New(400, "OpenAI API key is not configured. Set openai_api_key in settings first.")
	}

	userPrompt := fmt.Sprintf("Game: %s (%s)\nTeams:\n- %s\n\nInstructions: %s",
		game, gender, strings.Join(teams, "\n- "), instructions)
	response, err := s.newClient(apiKey).Complete(ctx, schedulerSystemPrompt, userPrompt)
	if err != nil {
		metrics.ScheduleGenerationCounter.WithLabelValues("upstream_error").Inc()
		return nil, app_error.New(500, "Schedule generation failed: %s", err.Error())
	}

	payload, ok := extractJSONObject(response)
	if !ok {
		metrics.ScheduleGenerationCounter.WithLabelValues("unparsable").Inc()
		return nil, app_error.New(500, "Could not parse a schedule from the model response: %s", response)
	}
	validationStatus := repository.ValidationStatusUnvalidatedJson
	if decodesStrictly(payload) {
		validationStatus = repository.ValidationStatusValid
	}

	schedule, err := s.scheduleRepository.UpsertSchedule(&repository.MatchSchedule{
		Game:             game,
		Gender:           gender,
		Payload:          payload,
		ValidationStatus: validationStatus,
		GeneratedBy:      actor,
	})
	if err != nil {
		return nil, err
	}
	metrics.ScheduleGenerationCounter.WithLabelValues("ok").Inc()
	return schedule, nil
}

func (s *ScheduleService) GetSchedules() ([]*repository.MatchSchedule, error) {
	return s.scheduleRepository.GetAllSchedules()
}

func (s *ScheduleService) GetSchedule(game string, gender string) (*repository.MatchSchedule, error) {
	return s.scheduleRepository.GetScheduleByGameAndGender(game, gender)
}

func (s *ScheduleService) DeleteSchedule(id int) error {
	return s.scheduleRepository.DeleteSchedule(id)
}

// extractJSONObject finds the first balanced JSON object in free text and
// verifies it parses. Models tend to wrap their JSON in prose or markdown
// fences.
func extractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		char := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch char {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					candidate := text[start : i+1]
					if json.Valid([]byte(candidate)) {
						return candidate, true
					}
					return "", false
				}
			}
		}
	}
	return "", false
}

func decodesStrictly(payload string) bool {
	decoder := json.NewDecoder(bytes.NewReader([]byte(payload)))
	decoder.DisallowUnknownFields()
	parsed := SchedulePayload{}
	if err := decoder.Decode(&parsed); err != nil {
		return false
	}
	return len(parsed.Rounds) > 0
}
