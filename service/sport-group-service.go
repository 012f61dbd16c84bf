package service

import (
	"net/url"
	"strconv"
	"strings"

	"sportsfest/app_error"
	"sportsfest/repository"

	"gorm.io/gorm"
)

type SportGroupService struct {
	sportGroupRepository *repository.SportGroupRepository
}

func NewSportGroupService(db *gorm.DB) *SportGroupService {
	return &SportGroupService{
		sportGroupRepository: repository.NewSportGroupRepository(db),
	}
}

func (s *SportGroupService) GetGroups() ([]*repository.SportGroup, error) {
	return s.sportGroupRepository.GetAllGroups()
}

func (s *SportGroupService) SaveGroup(group *repository.SportGroup) (*repository.SportGroup, error) {
	if group.Game == "" || group.Gender == "" {
		return nil, app_error.New(400, "Game and gender are required")
	}
	if group.GroupUrl == "" {
		return nil, app_error.New(400, "Group URL is required")
	}
	existing, err := s.sportGroupRepository.GetAllGroups()
	if err != nil {
		return nil, err
	}
	for _, other := range existing {
		if other.Id != group.Id && other.Game == group.Game && other.Gender == group.Gender {
			return nil, app_error.New(400, "A group for %s (%s) already exists", group.Game, group.Gender)
		}
	}
	return s.sportGroupRepository.SaveGroup(group)
}

func (s *SportGroupService) GetGroup(id int) (*repository.SportGroup, error) {
	return s.sportGroupRepository.GetGroupById(id)
}

func (s *SportGroupService) DeleteGroup(id int) error {
	return s.sportGroupRepository.DeleteGroup(id)
}

// GroupParticipant carries the registration attributes interpolated into
// the message template.
type GroupParticipant struct {
	Name      string
	RegNumber int
	Roll      string
	Phone     string
	TeamName  string
	Gender    string
}

type GroupMessage struct {
	Game             string
	GroupUrl         string
	CoordinatorName  string
	CoordinatorPhone string
	Message          string
	WhatsappLink     string
}

// Lookup is a pure projection: for each selected game with an active group
// matching the participant's gender, interpolate the template and derive the
// wa.me deep link. Nothing is persisted.
func (s *SportGroupService) Lookup(participant GroupParticipant, games []string) ([]*GroupMessage, error) {
	if len(games) == 0 {
		return []*GroupMessage{}, nil
	}
	groups, err := s.sportGroupRepository.GetActiveGroups(participant.Gender, games)
	if err != nil {
		return nil, err
	}
	messages := make([]*GroupMessage, 0, len(groups))
	for _, group := range groups {
		message := interpolateTemplate(group.MessageTemplate, group.Game, participant)
		messages = append(messages, &GroupMessage{
			Game:             group.Game,
			GroupUrl:         group.GroupUrl,
			CoordinatorName:  group.CoordinatorName,
			CoordinatorPhone: group.CoordinatorPhone,
			Message:          message,
			WhatsappLink:     whatsappLink(group.CoordinatorPhone, message),
		})
	}
	return messages, nil
}

func interpolateTemplate(template string, game string, participant GroupParticipant) string {
	replacer := strings.NewReplacer(
		"{game}", game,
		"{regNum}", strconv.Itoa(participant.RegNumber),
		"{name}", participant.Name,
		"{roll}", participant.Roll,
		"{phone}", participant.Phone,
		"{teamName}", participant.TeamName,
	)
	return replacer.Replace(template)
}

// whatsappLink builds a wa.me deep link from the digits of the coordinator
// phone and the percent-encoded message.
func whatsappLink(phone string, message string) string {
	digits := strings.Builder{}
	for _, char := range phone {
		if char >= '0' && char <= '9' {
			digits.WriteRune(char)
		}
	}
	// QueryEscape turns spaces into '+', which WhatsApp renders literally.
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + digits.String() + "?text=" + encoded
}
