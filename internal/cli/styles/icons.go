package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconVersion   = "" // tag
	IconGitBranch = "" // git branch
	IconCalendar  = "" // calendar
	IconGithub    = "" // github
	IconHeart     = "" // heart
	IconGo        = "" // go gopher
	IconServer    = "" // server

	// Toasts
	IconCheck   = ""
	IconX       = ""
	IconWarning = ""
	IconInfo    = ""

	IconDatabase = ""
	IconKey      = ""
	IconTrash    = ""
	IconConfig   = ""
	IconClock    = ""
	IconSearch   = ""
	IconPencil   = ""
)
