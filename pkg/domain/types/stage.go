package types

import (
	"fmt"
	"strings"
)

// Stage is the NPI build stage of a notice
type Stage string

const (
	StageEVT Stage = "EVT"
	StageDVT Stage = "DVT"
	StagePVT Stage = "PVT"
	StageMP  Stage = "MP"
)

// AllStages returns the stage vocabulary in scan order
func AllStages() []Stage {
	return []Stage{
		StageEVT,
		StageDVT,
		StagePVT,
		StageMP,
	}
}

// IsValid checks if the stage is in the vocabulary
func (s Stage) IsValid() bool {
	switch s {
	case StageEVT,
		StageDVT,
		StagePVT,
		StageMP:
		return true
	default:
		return false
	}
}

// String returns the string representation of the stage
func (s Stage) String() string {
	return string(s)
}

// ParseStage parses a case-insensitive string into a Stage
func ParseStage(s string) (Stage, error) {
	stage := Stage(strings.ToUpper(strings.TrimSpace(s)))
	if !stage.IsValid() {
		return "", fmt.Errorf("invalid stage: %s", s)
	}
	return stage, nil
}
