package config

type REPLConfig struct {
	Prompt string
	Color  bool
}

func NewREPLConfig() *REPLConfig {
	return &REPLConfig{
		Prompt: "db > ",
		Color:  false,
	}
}
