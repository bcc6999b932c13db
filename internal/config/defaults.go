package config

const (
	defaultStateDir       = "~/.local/share/flacsmith/state"
	defaultLogDir         = "~/.local/share/flacsmith/logs"
	defaultWorkers        = 4
	defaultBarWidth       = 30
	defaultVerifyTool     = "flac"
	defaultTimeoutSeconds = 300
	defaultFailureChannel = "failures"
	defaultAttentionChann = "attention"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

func defaultVerifyArgs() []string {
	return []string{"-t", "-s"}
}

func defaultExtensions() []string {
	return []string{".flac"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Engine: Engine{
			Workers:  defaultWorkers,
			BarWidth: defaultBarWidth,
		},
		Verify: Verify{
			Tool:           defaultVerifyTool,
			Args:           defaultVerifyArgs(),
			Extensions:     defaultExtensions(),
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Journal: Journal{
			FailureChannel:   defaultFailureChannel,
			AttentionChannel: defaultAttentionChann,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
