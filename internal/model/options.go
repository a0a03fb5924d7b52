package model

// DefaultStep is the input increment of numeric layout fields.
const DefaultStep = "0.5"

// Options configures the behaviour of the Builder. Options are constructed by
// the public adapter in pkg/model and passed into New.
type Options struct {
	Labeler func(string) string
	Step    string
}

func defaultOptions() Options {
	return Options{
		Labeler: DefaultLabeler,
		Step:    DefaultStep,
	}
}
