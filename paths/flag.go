package paths

import (
	"flag"
)

// SetupDirFlag creates a new string flag with the passed name with a sane
// default for the path to the directory, if found using the Find function.
// If not, the flag defaults to fallback.
func SetupDirFlag(fs *flag.FlagSet, dirName, flagName, fallback string, flagPtr *string) {
	def := Find(dirName)
	if def == "" {
		def = fallback
	}
	fs.StringVar(flagPtr, flagName, def, "Path to the "+dirName+" directory")
}
