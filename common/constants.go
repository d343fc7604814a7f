package common

const (
	TPS = 60
	// FixedStep is the simulation step in seconds.
	FixedStep = 1.0 / TPS

	BaseWidth  = 1280
	BaseHeight = 720

	PixelsPerUnit = 32
	// CameraFollow is the fraction of the remaining distance the camera covers each step.
	CameraFollow = 0.1
)
