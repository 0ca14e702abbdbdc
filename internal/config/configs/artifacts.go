package configs

// Artifacts configures how redirect scripts and landing pages are generated
// and where they are written. Scripts end up in <Dir>/scripts/<slug>.js and
// landing pages in <Dir>/pages/<slug>.html.
type Artifacts struct {
	// Dir is the base directory for generated artifacts. It is created on
	// startup if missing.
	Dir string `env:"DIR" envDefault:"public"`
	// Obfuscate wraps the generated script logic into an equivalent but
	// harder-to-read form. When enabled, an unobfuscated loader stub is
	// emitted next to the script.
	Obfuscate bool `env:"OBFUSCATE" envDefault:"false"`
	// OrphanCleanup removes the old slug's artifacts when a campaign is
	// renamed. When off, renamed campaigns leave the previous files behind.
	OrphanCleanup bool `env:"ORPHAN_CLEANUP" envDefault:"true"`
	// RedirectDelayMs is the presentation delay applied by generated
	// scripts before navigating to the tracking link.
	RedirectDelayMs int `env:"REDIRECT_DELAY_MS" envDefault:"2000"`
	// PageDelayMs is the delay used by generated landing pages.
	PageDelayMs int `env:"PAGE_DELAY_MS" envDefault:"3000"`
	// CleanURL strips query and fragment components from the tracking link
	// before navigation, so attribution parameters are not leaked.
	CleanURL bool `env:"CLEAN_URL" envDefault:"false"`
}
