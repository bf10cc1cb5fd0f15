package constant

// Set at build time with -ldflags "-X".
var (
	Version = "Custom Version"
	Commit  = "Unknown Git Commit ID"
)
