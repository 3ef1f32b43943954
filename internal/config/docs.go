package config

// DocsConfig controls the documentation build and deployment step.
type DocsConfig struct {
	SourceDir    string `yaml:"source_dir,omitempty"`    // docs source tree, relative to the project root
	BuildCommand string `yaml:"build_command,omitempty"` // external command producing the static site
	OutputDir    string `yaml:"output_dir,omitempty"`    // where BuildCommand leaves the rendered site
	DeployRepo   string `yaml:"deploy_repo"`             // git URL of the hosting repository
	DeployBranch string `yaml:"deploy_branch,omitempty"` // branch holding the published site
	AuthorName   string `yaml:"author_name,omitempty"`
	AuthorEmail  string `yaml:"author_email,omitempty"`
	TokenEnv     string `yaml:"token_env,omitempty"` // env var with a push token for DeployRepo
}
