package tui

const (
	// Input Dimensions
	InputWidth = 60

	// Layout Offsets and Padding
	DefaultPaddingX = 1
	DefaultPaddingY = 0

	// Panel sizing
	SourcesPanelHeight = 6
	LogPanelMinHeight  = 6

	// Channel Buffers
	EventChannelBuffer = 100

	// Log scrollback kept in memory
	MaxLogLines = 2000
)
