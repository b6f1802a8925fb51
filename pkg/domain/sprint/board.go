package sprint

import "strings"

// DefaultStoryPointsField is the custom field most Jira Cloud sites use for
// story points.
const DefaultStoryPointsField = "customfield_10016"

var (
	DefaultGroomedStatuses   = []string{"TO PLAN", "TO COMMIT"}
	DefaultUngroomedStatuses = []string{"TO GROOM", "TO REFINE"}
	DefaultDoneStatuses      = []string{"Done"}
)

// CustomFields maps board-specific tracker fields and grooming statuses.
type CustomFields struct {
	StoryPoints     string   `yaml:"storyPoints,omitempty" json:"storyPoints,omitempty" toml:"storyPoints"`
	GroomedStatus   []string `yaml:"groomedStatus,omitempty" json:"groomedStatus,omitempty" toml:"groomedStatus"`
	UngroomedStatus []string `yaml:"ungroomedStatus,omitempty" json:"ungroomedStatus,omitempty" toml:"ungroomedStatus"`
}

// SprintOverride holds per-sprint settings keyed by sprint name.
type SprintOverride struct {
	TotalBusinessDays *int     `yaml:"totalBusinessDays,omitempty" json:"totalBusinessDays,omitempty" toml:"totalBusinessDays"`
	TeamVelocity      *float64 `yaml:"teamVelocity,omitempty" json:"teamVelocity,omitempty" toml:"teamVelocity"`
	Notes             string   `yaml:"notes,omitempty" json:"notes,omitempty" toml:"notes"`
}

// BoardConfig is the per-board configuration. It is loaded once and treated
// as immutable for the run.
type BoardConfig struct {
	ID                  int                       `yaml:"id" json:"id" toml:"id"`
	Name                string                    `yaml:"name" json:"name" toml:"name"`
	DefaultTeamVelocity *float64                  `yaml:"defaultTeamVelocity,omitempty" json:"defaultTeamVelocity,omitempty" toml:"defaultTeamVelocity"`
	CustomFields        CustomFields              `yaml:"customFields,omitempty" json:"customFields,omitempty" toml:"customFields"`
	FinishLineStatuses  []string                  `yaml:"finishLineStatuses,omitempty" json:"finishLineStatuses,omitempty" toml:"finishLineStatuses"`
	DoneStatuses        []string                  `yaml:"doneStatuses,omitempty" json:"doneStatuses,omitempty" toml:"doneStatuses"`
	StatusOrder         []string                  `yaml:"statusOrder,omitempty" json:"statusOrder,omitempty" toml:"statusOrder"`
	Sprints             map[string]SprintOverride `yaml:"sprints,omitempty" json:"sprints,omitempty" toml:"sprints"`
}

// StoryPointsField returns the configured field id or the default.
func (b BoardConfig) StoryPointsField() string {
	if b.CustomFields.StoryPoints != "" {
		return b.CustomFields.StoryPoints
	}
	return DefaultStoryPointsField
}

func (b BoardConfig) GroomedStatuses() []string {
	if len(b.CustomFields.GroomedStatus) > 0 {
		return b.CustomFields.GroomedStatus
	}
	return DefaultGroomedStatuses
}

func (b BoardConfig) UngroomedStatuses() []string {
	if len(b.CustomFields.UngroomedStatus) > 0 {
		return b.CustomFields.UngroomedStatus
	}
	return DefaultUngroomedStatuses
}

func (b BoardConfig) Done() []string {
	if len(b.DoneStatuses) > 0 {
		return b.DoneStatuses
	}
	return DefaultDoneStatuses
}

// IsFinishLine reports whether status counts as crossed the finish line.
func (b BoardConfig) IsFinishLine(status string) bool {
	return ContainsFold(b.FinishLineStatuses, status)
}

// TeamVelocity resolves velocity for a sprint: sprint override, then board
// default. ok is false when neither is set or the value is not positive.
func (b BoardConfig) TeamVelocity(sprintName string) (v float64, ok bool) {
	if o, found := b.Sprints[sprintName]; found && o.TeamVelocity != nil && *o.TeamVelocity > 0 {
		return *o.TeamVelocity, true
	}
	if b.DefaultTeamVelocity != nil && *b.DefaultTeamVelocity > 0 {
		return *b.DefaultTeamVelocity, true
	}
	return 0, false
}

// TotalBusinessDaysOverride returns the configured sprint length, if any.
func (b BoardConfig) TotalBusinessDaysOverride(sprintName string) (int, bool) {
	if o, found := b.Sprints[sprintName]; found && o.TotalBusinessDays != nil {
		return *o.TotalBusinessDays, true
	}
	return 0, false
}

// Notes returns the free-form notes configured for a sprint.
func (b BoardConfig) Notes(sprintName string) string {
	return b.Sprints[sprintName].Notes
}

// ContainsFold reports whether list holds s, ignoring case and surrounding space.
func ContainsFold(list []string, s string) bool {
	s = strings.TrimSpace(s)
	for _, v := range list {
		if strings.EqualFold(strings.TrimSpace(v), s) {
			return true
		}
	}
	return false
}
