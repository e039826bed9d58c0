package config

// CLI flag 名称，与 [Config] 的 json / flag tag 一致。
const (
	FlagFormat          = "format"
	FlagNoneTransparent = "none_values_are_transparent"
	FlagMetadataKey     = "metadata_key"
	FlagStrategy        = "strategy"
	FlagNoTemplates     = "no-templates"
	FlagTimeout         = "timeout"
	FlagConcurrency     = "concurrency"
	FlagVerbose         = "verbose"
	FlagPostmortem      = "postmortem"
	FlagRoot            = "root"
	FlagName            = "name"
	FlagFolder          = "folder"
)
