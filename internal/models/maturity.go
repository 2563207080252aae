package models

// MaturityLevel is one of the five named readiness tiers.
type MaturityLevel string

const (
	LevelAgentReady          MaturityLevel = "Agent-Ready (Level 5)"
	LevelIntegrationReady    MaturityLevel = "Integration-Ready (Level 4)"
	LevelDigitalizationReady MaturityLevel = "Digitalization-Ready (Level 3)"
	LevelFoundationBuilding  MaturityLevel = "Foundation-Building (Level 2)"
	LevelPreDigital          MaturityLevel = "Pre-Digital (Level 1)"
)
