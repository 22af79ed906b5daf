package config

const (
	WindowWidth  = 1024
	WindowHeight = 640
	TPS          = 60

	SampleRing = 4096

	// Button dimensions
	ButtonWidth  = 170
	ButtonHeight = 36
	ButtonX      = 20
	ButtonY      = 40
	ButtonGap    = 10

	// Extra height of buttons that print their interaction state
	ButtonStateHeight = 20

	// Scene projection
	FocalLength = 6.0
	WorldScale  = 90.0 // pixels per scene unit at depth 0
	BallRadius  = 0.35 // scene units at scale 1

	// Anchor widget
	AnchorMinSize   = 0.25
	AnchorMaxSize   = 4.0
	AnchorWheelStep = 0.1
	SpringFrequency = 6.0
	SpringDamping   = 0.6

	// Ball motion and colour
	RiseSpeed       = 0.6 // scene units per second
	ColorShiftSpeed = 0.01

	// Feedback shown on buttons after a click or key command.
	FeedbackTime = 2.0 // seconds
)
