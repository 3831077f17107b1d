package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconVersion   = "\uf02b" // tag
	IconGitBranch = "\ue725" // git branch
	IconCalendar  = "\uf073" // calendar
	IconGithub    = "\uf09b" // github
	IconGo        = "\ue627" // go gopher

	IconCheck   = "\uf00c" // check
	IconX       = "\uf00d" // x
	IconWarning = "\uf071" // warning
	IconInfo    = "\uf05a" // info
	IconConfig  = "\ue615" // config
	IconDesktop = "\uf108" // desktop
	IconEye     = "\uf06e" // eye

	IconCursor = "\uf054" // chevron-right
	IconClock  = "\uf017" // clock
)

// Swatch is the block drawn in the accent color.
const Swatch = "\u2588\u2588\u2588\u2588"
