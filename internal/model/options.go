package model

// Options configures the behaviour of the Builder. Options are constructed by
// the public adapter in pkg/model and passed into New.
type Options struct {
	// Messages overrides validator message templates. Empty entries keep the
	// defaults.
	Messages Messages

	// SanitizeText strips markup from labels and option labels.
	SanitizeText bool
}

func defaultOptions() Options {
	return Options{
		Messages: DefaultMessages(),
	}
}
