package config

// Layout constants
const (
	// Panel layout
	LeftPanelWidthRatio = 0.6

	// Table dimensions
	DefaultColumnNameWidth    = 40
	DefaultColumnProjectWidth = 22
	DefaultColumnCreatedWidth = 16
	DefaultTableHeight        = 20

	// Display truncation
	FileNameTruncateLength = 37

	// Project catalog: the picker fetches one fixed page and never paginates
	ProjectsPageLimit = 100

	// Dialog dimensions
	DialogDefaultWidth = 50
	DialogLargeWidth   = 70

	// Preview rendering
	PreviewMaxColumns = 64
	PreviewMaxRows    = 48
)
